package llm

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ExtractJSON decodes the first JSON object found in a model reply into T.
// Markdown fences and prose around the object are ignored; comments and
// trailing commas inside it are dropped before decoding. validator, when
// set, runs on the decoded value.
func ExtractJSON[T any](raw string, validator func(T) error) (T, error) {
	var zero T

	obj, ok := firstObject(raw)
	if !ok {
		return zero, fmt.Errorf("%w: no JSON object in reply", ErrInvalidOutput)
	}

	var out T
	if err := json.Unmarshal([]byte(obj), &out); err != nil {
		return zero, fmt.Errorf("%w: %v", ErrInvalidOutput, err)
	}
	if validator != nil {
		if err := validator(out); err != nil {
			return zero, fmt.Errorf("%w: validation failed: %v", ErrInvalidOutput, err)
		}
	}
	return out, nil
}

// firstObject copies the first balanced {...} out of s in one pass,
// skipping // and /* */ comments and any comma that directly precedes a
// closing bracket. Braces and commas inside string literals are kept.
func firstObject(s string) (string, bool) {
	start := strings.IndexByte(s, '{')
	if start < 0 {
		return "", false
	}

	var (
		b        strings.Builder
		depth    int
		inString bool
		escaped  bool
		comma    bool // seen outside a string, not yet written
	)
	b.Grow(len(s) - start)

	for i := start; i < len(s); i++ {
		c := s[i]

		if inString {
			b.WriteByte(c)
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

		if c == '/' && i+1 < len(s) {
			switch s[i+1] {
			case '/':
				if end := strings.IndexByte(s[i:], '\n'); end >= 0 {
					i += end - 1
				} else {
					i = len(s)
				}
				continue
			case '*':
				if end := strings.Index(s[i+2:], "*/"); end >= 0 {
					i += end + 3
				} else {
					i = len(s)
				}
				continue
			}
		}

		switch c {
		case ' ', '\t', '\n', '\r':
			b.WriteByte(c)
			continue
		case ',':
			if comma {
				// Keep doubled commas so the decoder rejects them.
				b.WriteByte(',')
			}
			comma = true
			continue
		}

		if comma && c != '}' && c != ']' {
			b.WriteByte(',')
		}
		comma = false
		b.WriteByte(c)

		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return b.String(), true
			}
		}
	}
	return "", false
}
