package filter

import (
	"fmt"
	"regexp"
	"strings"
)

// Pattern is a compiled glob matched against whole slash-separated paths.
//
// Unlike filepath.Match, "*" and "?" also match "/", as with find -path:
// "src/*.txt" matches "src/a/b.txt". "[...]" is a character class, "[!...]"
// its negation, and "\" escapes the next character.
type Pattern struct {
	raw string
	re  *regexp.Regexp
}

// Compile parses a glob pattern. A leading "./" is ignored.
func Compile(glob string) (Pattern, error) {
	glob = strings.TrimPrefix(glob, "./")

	expr, err := translate(glob)
	if err != nil {
		return Pattern{}, fmt.Errorf("pattern %q: %w", glob, err)
	}

	re, err := regexp.Compile(expr)
	if err != nil {
		return Pattern{}, fmt.Errorf("pattern %q: %w", glob, err)
	}

	return Pattern{raw: glob, re: re}, nil
}

// Match reports whether path matches the pattern.
func (p Pattern) Match(path string) bool {
	return p.re.MatchString(path)
}

func (p Pattern) String() string {
	return p.raw
}

// Patterns matches a path against any of several patterns.
type Patterns []Pattern

// CompileAll compiles every glob.
func CompileAll(globs []string) (Patterns, error) {
	out := make(Patterns, 0, len(globs))

	for _, g := range globs {
		p, err := Compile(g)
		if err != nil {
			return nil, err
		}

		out = append(out, p)
	}

	return out, nil
}

// MatchAny reports whether any pattern matches path.
func (ps Patterns) MatchAny(path string) bool {
	for _, p := range ps {
		if p.Match(path) {
			return true
		}
	}

	return false
}

func translate(glob string) (string, error) {
	var b strings.Builder

	b.WriteByte('^')

	for i := 0; i < len(glob); i++ {
		switch c := glob[i]; c {
		case '*':
			b.WriteString(".*")
		case '?':
			b.WriteByte('.')
		case '\\':
			if i+1 == len(glob) {
				return "", fmt.Errorf("trailing backslash")
			}

			i++
			b.WriteString(regexp.QuoteMeta(glob[i : i+1]))
		case '[':
			end := classEnd(glob, i)
			if end < 0 {
				return "", fmt.Errorf("unclosed character class")
			}

			class := glob[i+1 : end]
			if strings.HasPrefix(class, "!") {
				class = "^" + class[1:]
			}

			b.WriteString("[" + strings.ReplaceAll(class, `\`, `\\`) + "]")

			i = end
		default:
			b.WriteString(regexp.QuoteMeta(glob[i : i+1]))
		}
	}

	b.WriteByte('$')

	return b.String(), nil
}

// classEnd returns the index of the "]" closing the class opened at start,
// or -1. A "]" right after "[" or "[!" is literal.
func classEnd(glob string, start int) int {
	i := start + 1
	if i < len(glob) && glob[i] == '!' {
		i++
	}

	if i < len(glob) && glob[i] == ']' {
		i++
	}

	if end := strings.IndexByte(glob[i:], ']'); end >= 0 {
		return i + end
	}

	return -1
}
