package analysis

import (
	"fmt"
	"unicode/utf8"
)

// DecodeError reports the first byte that is not part of a valid UTF-8 sequence.
type DecodeError struct {
	Offset int
	Byte   byte
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("invalid UTF-8 byte 0x%02x at offset %d", e.Byte, e.Offset)
}

// DecodeSource converts an uploaded payload to text. The bytes are returned
// unchanged as a string when they are valid UTF-8.
func DecodeSource(b []byte) (string, error) {
	if utf8.Valid(b) {
		return string(b), nil
	}
	for i := 0; i < len(b); {
		r, size := utf8.DecodeRune(b[i:])
		if r == utf8.RuneError && size <= 1 {
			return "", &DecodeError{Offset: i, Byte: b[i]}
		}
		i += size
	}
	return "", &DecodeError{}
}
