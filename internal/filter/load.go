package filter

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/tidwall/jsonc"
)

// LoadPatterns reads a pattern file: a JSON array of globs that may carry
// comments and trailing commas. Blank entries are dropped and every glob is
// compiled, so a bad pattern is reported against the file it came from.
func LoadPatterns(path string) ([]string, error) {
	raw, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("pattern file: %w", err)
	}

	var entries []string
	if err := json.Unmarshal(jsonc.ToJSON(raw), &entries); err != nil {
		return nil, fmt.Errorf("pattern file %q: expected an array of strings: %w", path, err)
	}

	globs := entries[:0]

	for _, e := range entries {
		e = strings.TrimSpace(e)
		if e == "" {
			continue
		}

		if _, err := Compile(e); err != nil {
			return nil, fmt.Errorf("pattern file %q: %w", path, err)
		}

		globs = append(globs, e)
	}

	return globs, nil
}
