package clipboard

import (
	"errors"
	"fmt"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/transform"
)

// DecodeError reports clipboard bytes that are not valid UTF-8 text.
type DecodeError struct {
	Step   string
	Size   int // total bytes received
	Offset int // offset of the first invalid byte
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("%s: clipboard data is not valid UTF-8 text (invalid byte at offset %d of %d)", e.Step, e.Offset, e.Size)
}

// Decode validates data as UTF-8 and returns it as a string.
func Decode(step string, data []byte) (string, error) {
	out, _, err := transform.Bytes(encoding.UTF8Validator, data)
	if err != nil {
		if !errors.Is(err, encoding.ErrInvalidUTF8) {
			return "", fmt.Errorf("%s: decode clipboard text: %w", step, err)
		}
		return "", &DecodeError{Step: step, Size: len(data), Offset: firstInvalid(data)}
	}
	return string(out), nil
}

// firstInvalid returns the offset of the first byte that does not start a
// valid UTF-8 sequence.
func firstInvalid(data []byte) int {
	for i := 0; i < len(data); {
		r, size := utf8.DecodeRune(data[i:])
		if r == utf8.RuneError && size <= 1 {
			return i
		}
		i += size
	}
	return len(data)
}
