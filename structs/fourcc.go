package structs

import "fmt"

// Fourcc is a four-character code packed little-endian into 32 bits.
type Fourcc uint32

// MakeFourcc packs four characters.
func MakeFourcc(a, b, c, d byte) Fourcc {
	return Fourcc(a) | Fourcc(b)<<8 | Fourcc(c)<<16 | Fourcc(d)<<24
}

// ParseFourcc packs a four-byte string, e.g. "I420".
func ParseFourcc(s string) (Fourcc, error) {
	if len(s) != 4 {
		return 0, fmt.Errorf("fourcc %q: %w", s, ErrSyntax)
	}

	return MakeFourcc(s[0], s[1], s[2], s[3]), nil
}

func (f Fourcc) String() string {
	return string([]byte{byte(f), byte(f >> 8), byte(f >> 16), byte(f >> 24)})
}
