package jsonstore

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/idilsaglam/tada/internal/model"
)

// JSON snapshot of a list, human-readable. Write-only: the list lives for
// the process, nothing is ever read back.

// Write encodes items as an indented JSON array followed by a newline.
// A nil slice is written as [] rather than null.
func Write(w io.Writer, items []model.Item) error {
	if items == nil {
		items = []model.Item{}
	}
	b, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return fmt.Errorf("json marshal: %w", err)
	}
	b = append(b, '\n')
	if _, err := w.Write(b); err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}
	return nil
}
