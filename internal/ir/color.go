package ir

import (
	"fmt"
	"strings"
)

// NormalizeHex canonicalizes a 6-digit RGB hex string to lowercase with a
// leading '#'. The input may omit the '#' and use either case. Alpha
// channels and shorthand forms are rejected.
func NormalizeHex(s string) (string, error) {
	h := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(h) != 6 {
		return "", fmt.Errorf("invalid hex color %q: want 6 hex digits", s)
	}
	for _, r := range h {
		switch {
		case r >= '0' && r <= '9':
		case r >= 'a' && r <= 'f':
		case r >= 'A' && r <= 'F':
		default:
			return "", fmt.Errorf("invalid hex color %q: bad digit %q", s, r)
		}
	}
	return "#" + strings.ToLower(h), nil
}

// HexRGB splits a normalized hex color into its red, green, and blue bytes.
func HexRGB(s string) (r, g, b uint8, err error) {
	n, err := NormalizeHex(s)
	if err != nil {
		return 0, 0, 0, err
	}
	var ri, gi, bi int
	if _, err := fmt.Sscanf(n[1:], "%02x%02x%02x", &ri, &gi, &bi); err != nil {
		return 0, 0, 0, fmt.Errorf("invalid hex color %q: %w", s, err)
	}
	return uint8(ri), uint8(gi), uint8(bi), nil
}
