package lib

import (
	"errors"
	"image/color"
	"strconv"
	"strings"

	"golang.org/x/image/colornames"
)

var errBadColor = errors.New("unrecognized color")

// ParseColor accepts an SVG color name, "transparent", or a hex triplet
// (#rgb, #rrggbb, #rrggbbaa).
func ParseColor(spec string) (color.Color, error) {
	s := strings.ToLower(strings.TrimSpace(spec))

	if s == "transparent" {
		return color.NRGBA{}, nil
	}

	if c, ok := colornames.Map[s]; ok {
		return c, nil
	}

	if !strings.HasPrefix(s, "#") {
		return nil, errBadColor
	}

	hex := s[1:]

	// expand #rgb shorthand
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}

	if len(hex) == 6 {
		hex += "ff"
	}

	if len(hex) != 8 {
		return nil, errBadColor
	}

	v, err := strconv.ParseUint(hex, 16, 32)

	if err != nil {
		return nil, errBadColor
	}

	return color.NRGBA{
		R: uint8(v >> 24),
		G: uint8(v >> 16),
		B: uint8(v >> 8),
		A: uint8(v),
	}, nil
}
