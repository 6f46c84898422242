package dataroom

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dataroom/internal/domain"
)

func TestValidateName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"simple", "Legal", false},
		{"unicode", "Contrats été", false},
		{"spaces inside", "Q1 Reports", false},
		{"max length", strings.Repeat("é", 255), false},
		{"empty", "", true},
		{"whitespace only", "   ", true},
		{"too long", strings.Repeat("a", 256), true},
		{"slash", "a/b", true},
		{"backslash", `a\b`, true},
		{"colon", "a:b", true},
		{"star", "a*b", true},
		{"question", "a?b", true},
		{"quote", `a"b`, true},
		{"lt", "a<b", true},
		{"gt", "a>b", true},
		{"pipe", "a|b", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateName(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, domain.ErrInvalidName)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateRoomName(t *testing.T) {
	assert.NoError(t, ValidateRoomName("Acme / Series A: due diligence"))
	assert.ErrorIs(t, ValidateRoomName("  "), domain.ErrInvalidName)
	assert.ErrorIs(t, ValidateRoomName(strings.Repeat("x", 256)), domain.ErrInvalidName)
}

func TestUniqueName(t *testing.T) {
	long := strings.Repeat("a", 251)
	taken := func(names ...string) map[string]struct{} {
		m := make(map[string]struct{})
		for _, n := range names {
			m[n] = struct{}{}
		}
		return m
	}

	tests := []struct {
		name  string
		input string
		taken map[string]struct{}
		want  string
	}{
		{"free", "a.pdf", taken(), "a.pdf"},
		{"first collision", "a.pdf", taken("a.pdf"), "a (1).pdf"},
		{"second collision", "a.pdf", taken("a.pdf", "a (1).pdf"), "a (2).pdf"},
		{"fills gap", "a.pdf", taken("a.pdf", "a (2).pdf"), "a (1).pdf"},
		{"no extension", "notes", taken("notes"), "notes (1)"},
		{"multiple dots", "v1.2.pdf", taken("v1.2.pdf"), "v1.2 (1).pdf"},
		{"long stem is cut", long + ".pdf", taken(long + ".pdf"), long[:247] + " (1).pdf"},
		{"long stem cut per suffix", long + ".pdf",
			taken(long+".pdf", long[:247]+" (1).pdf", long[:247]+" (2).pdf", long[:247]+" (3).pdf",
				long[:247]+" (4).pdf", long[:247]+" (5).pdf", long[:247]+" (6).pdf", long[:247]+" (7).pdf",
				long[:247]+" (8).pdf", long[:247]+" (9).pdf"),
			long[:246] + " (10).pdf"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, UniqueName(tt.input, tt.taken))
		})
	}
}

func TestEnsureExtension(t *testing.T) {
	tests := []struct {
		newName, original, want string
	}{
		{"b", "a.pdf", "b.pdf"},
		{"b.pdf", "a.pdf", "b.pdf"},
		{"b.PDF", "a.pdf", "b.PDF"},
		{"b.txt", "a.pdf", "b.txt.pdf"},
		{"b", "noext", "b"},
	}

	for _, tt := range tests {
		if got := EnsureExtension(tt.newName, tt.original); got != tt.want {
			t.Errorf("EnsureExtension(%q, %q) = %q, want %q", tt.newName, tt.original, got, tt.want)
		}
	}
}

func TestSanitizeUploadName(t *testing.T) {
	tests := []struct {
		input   string
		want    string
		wantErr bool
	}{
		{"report.pdf", "report.pdf", false},
		{"../../etc/report.pdf", "report.pdf", false},
		{`C:\Users\me\report.pdf`, "report.pdf", false},
		{"a:b*c.pdf", "a_b_c.pdf", false},
		{"  spaced.pdf  ", "spaced.pdf", false},
		{"dir/", "", true},
		{"..", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := SanitizeUploadName(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, domain.ErrInvalidName)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCheckUpload(t *testing.T) {
	pdf := []byte("%PDF-1.4\n%test\n")

	assert.NoError(t, CheckUpload("a.pdf", pdf, 1024))
	assert.NoError(t, CheckUpload("A.PDF", pdf, 1024))
	assert.ErrorIs(t, CheckUpload("a.txt", pdf, 1024), domain.ErrUnsupportedFileType)
	assert.ErrorIs(t, CheckUpload("a.pdf", []byte("hello world"), 1024), domain.ErrUnsupportedFileType)
	assert.ErrorIs(t, CheckUpload("a.pdf", pdf, 4), domain.ErrFileTooLarge)
}

func TestUniqueNameStaysWithinLimit(t *testing.T) {
	taken := make(map[string]struct{})
	name := strings.Repeat("é", 251) + ".pdf"
	for i := 0; i < 12; i++ {
		got := UniqueName(name, taken)
		require.NoError(t, ValidateName(got), got)
		assert.True(t, strings.HasPrefix(got, renamePrefix(name)))
		taken[got] = struct{}{}
	}
	assert.Len(t, taken, 12)

	assert.Equal(t, "report", renamePrefix("report.pdf"))
}
