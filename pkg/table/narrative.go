package table

import (
	"fmt"
	"os"
)

// LoadNarrative reads the current narrative from a UTF-8 text file.
func LoadNarrative(path string) (string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read narrative: %w", err)
	}
	return string(b), nil
}

// SaveNarrative overwrites the narrative file wholesale.
func SaveNarrative(path, text string) error {
	if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
		return fmt.Errorf("write narrative: %w", err)
	}
	return nil
}
