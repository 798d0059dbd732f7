// Package relaxedjson decodes the JSON dialect sent by Essensys controllers,
// whose object keys are not always quoted ({version:"V1",ek:[{k:1,v:"0"}]}).
package relaxedjson

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

var ErrInvalidDocument = errors.New("invalid relaxed json document")

// Normalize rewrites bare identifier keys into quoted keys and returns
// strict JSON. String contents are never modified.
func Normalize(data []byte) ([]byte, error) {
	var out bytes.Buffer
	out.Grow(len(data) + 16)

	for i := 0; i < len(data); {
		c := data[i]
		switch {
		case c == '"':
			end, err := scanString(data, i)
			if err != nil {
				return nil, err
			}
			out.Write(data[i:end])
			i = end
		case isIdentStart(c):
			end := i + 1
			for end < len(data) && isIdentPart(data[end]) {
				end++
			}
			if isKey(data, end) {
				out.WriteByte('"')
				out.Write(data[i:end])
				out.WriteByte('"')
			} else {
				out.Write(data[i:end])
			}
			i = end
		default:
			out.WriteByte(c)
			i++
		}
	}

	normalized := out.Bytes()
	if !json.Valid(normalized) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidDocument, truncate(data))
	}
	return normalized, nil
}

// Unmarshal decodes relaxed JSON into v.
func Unmarshal(data []byte, v any) error {
	normalized, err := Normalize(data)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(normalized, v); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidDocument, err)
	}
	return nil
}

// scanString returns the offset just past the closing quote of the string
// starting at data[start].
func scanString(data []byte, start int) (int, error) {
	for i := start + 1; i < len(data); i++ {
		switch data[i] {
		case '\\':
			i++
		case '"':
			return i + 1, nil
		}
	}
	return 0, fmt.Errorf("%w: unterminated string at offset %d", ErrInvalidDocument, start)
}

func isKey(data []byte, from int) bool {
	for i := from; i < len(data); i++ {
		switch data[i] {
		case ' ', '\t', '\r', '\n':
			continue
		case ':':
			return true
		default:
			return false
		}
	}
	return false
}

func isIdentStart(c byte) bool {
	return c == '_' || c == '$' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isIdentPart(c byte) bool {
	return isIdentStart(c) || (c >= '0' && c <= '9')
}

func truncate(data []byte) []byte {
	const limit = 64
	if len(data) > limit {
		return data[:limit]
	}
	return data
}
