package utils

import "errors"

var ErrNoJSONObject = errors.New("no JSON object found in text")

// ExtractJSONObject returns the first balanced {...} region in s. Model
// output is often wrapped in prose or markdown fences, so the raw text cannot
// be handed to the JSON decoder directly. String literals (including escaped
// quotes) are skipped when counting braces.
func ExtractJSONObject(s string) (string, error) {
	start := -1
	depth := 0
	inString := false
	escaped := false

	for i := 0; i < len(s); i++ {
		c := s[i]

		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}

		switch c {
		case '"':
			if start >= 0 {
				inString = true
			}
		case '{':
			if start < 0 {
				start = i
			}
			depth++
		case '}':
			if start < 0 {
				continue
			}
			depth--
			if depth == 0 {
				return s[start : i+1], nil
			}
		}
	}
	return "", ErrNoJSONObject
}
