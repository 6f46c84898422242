package dataroom

import (
	"fmt"
	"path"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/gabriel-vasile/mimetype"
	validation "github.com/go-ozzo/ozzo-validation/v4"

	"dataroom/internal/config"
	"dataroom/internal/domain"
	models "dataroom/internal/domain/models/dataroom"
)

// forbiddenNameChars cannot appear in folder or file names
const forbiddenNameChars = `/\:*?"<>|`

var validNamePattern = regexp.MustCompile(`^[^/\\:*?"<>|]+$`)

// ValidateName checks a folder or file name: 1..255 characters, none of / \ : * ? " < > |
func ValidateName(name string) error {
	if strings.TrimSpace(name) == "" {
		return domain.NewValidation(domain.ErrInvalidName, "name is required")
	}
	err := validation.Validate(name,
		validation.RuneLength(1, config.MaxNameLength).
			Error(fmt.Sprintf("name must be at most %d characters", config.MaxNameLength)),
		validation.Match(validNamePattern).
			Error(`name cannot contain / \ : * ? " < > |`),
	)
	if err != nil {
		return domain.NewValidation(domain.ErrInvalidName, err.Error())
	}
	return nil
}

// ValidateRoomName checks a room name after trimming; any characters are allowed
func ValidateRoomName(name string) error {
	err := validation.Validate(strings.TrimSpace(name),
		validation.Required.Error("data room name is required"),
		validation.RuneLength(1, config.MaxRoomNameLength).
			Error(fmt.Sprintf("data room name must be at most %d characters", config.MaxRoomNameLength)),
	)
	if err != nil {
		return domain.NewValidation(domain.ErrInvalidName, err.Error())
	}
	return nil
}

// splitExt splits name into stem and extension ("report.pdf" → "report", ".pdf").
// A leading dot does not start an extension.
func splitExt(name string) (string, string) {
	ext := path.Ext(name)
	if ext == name {
		return name, ""
	}
	return strings.TrimSuffix(name, ext), ext
}

// maxRenameSuffix is the widest " (n)" an auto-rename reserves room for
const maxRenameSuffix = len(" (9999999999)")

// UniqueName returns name if it is not taken, otherwise "stem (n)ext" for the
// smallest n >= 1 that is free. Deterministic given the same taken set.
// The stem is cut by runes when needed so candidates stay within MaxNameLength.
func UniqueName(name string, taken map[string]struct{}) string {
	if _, ok := taken[name]; !ok {
		return name
	}
	stem, ext := splitExt(name)
	extLen := utf8.RuneCountInString(ext)
	for n := 1; ; n++ {
		suffix := fmt.Sprintf(" (%d)", n)
		candidate := fitStem(stem, extLen+len(suffix)) + suffix + ext
		if _, ok := taken[candidate]; !ok {
			return candidate
		}
	}
}

// renamePrefix is a prefix shared by name and every candidate UniqueName can
// produce for it. Loading siblings that start with it is enough to rename.
func renamePrefix(name string) string {
	stem, ext := splitExt(name)
	return fitStem(stem, utf8.RuneCountInString(ext)+maxRenameSuffix)
}

// fitStem keeps at most MaxNameLength-reserve runes of stem
func fitStem(stem string, reserve int) string {
	limit := max(config.MaxNameLength-reserve, 1)
	runes := []rune(stem)
	if len(runes) <= limit {
		return stem
	}
	return string(runes[:limit])
}

// EnsureExtension appends the original file's extension to newName unless
// newName already ends with it (case-insensitive).
func EnsureExtension(newName, originalName string) string {
	_, ext := splitExt(originalName)
	if ext == "" {
		return newName
	}
	if strings.EqualFold(path.Ext(newName), ext) {
		return newName
	}
	return newName + ext
}

// SanitizeUploadName reduces a client-declared file name to a safe base name:
// directory components are dropped, forbidden characters become "_".
func SanitizeUploadName(declared string) (string, error) {
	name := declared
	if i := strings.LastIndexAny(name, `/\`); i >= 0 {
		name = name[i+1:]
	}
	name = strings.Map(func(r rune) rune {
		if strings.ContainsRune(forbiddenNameChars, r) || r < 0x20 {
			return '_'
		}
		return r
	}, name)
	name = strings.TrimSpace(name)

	if name == "" || name == "." || name == ".." {
		return "", domain.NewValidation(domain.ErrInvalidName, "file name is required")
	}
	if err := ValidateName(name); err != nil {
		return "", err
	}
	return name, nil
}

// CheckUpload enforces the upload policy: size limit first, then a .pdf name
// and PDF magic bytes.
func CheckUpload(declaredName string, data []byte, maxBytes int64) error {
	if int64(len(data)) > maxBytes {
		return domain.NewValidation(domain.ErrFileTooLarge,
			fmt.Sprintf("file exceeds the maximum size of %d bytes", maxBytes))
	}
	if !strings.EqualFold(path.Ext(declaredName), ".pdf") {
		return domain.NewValidation(domain.ErrUnsupportedFileType, "only PDF files are allowed")
	}
	if !mimetype.Detect(data).Is(models.MimeTypePDF) {
		return domain.NewValidation(domain.ErrUnsupportedFileType, "file content is not a PDF")
	}
	return nil
}
