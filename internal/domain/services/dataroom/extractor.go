package dataroom

import "context"

// TextExtractor pulls searchable text out of stored content.
// A nil text with a nil error means the content has no extractable text.
type TextExtractor interface {
	ExtractText(ctx context.Context, contentRef, mimeType string) (*string, error)
}
