package lib

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseColor(t *testing.T) {
	cases := []struct {
		in   string
		want color.NRGBA
	}{
		{"black", color.NRGBA{0, 0, 0, 255}},
		{"White", color.NRGBA{255, 255, 255, 255}},
		{" red ", color.NRGBA{255, 0, 0, 255}},
		{"#000000", color.NRGBA{0, 0, 0, 255}},
		{"#FFFFFF", color.NRGBA{255, 255, 255, 255}},
		{"#1e90ff", color.NRGBA{0x1e, 0x90, 0xff, 255}},
		{"#f0a", color.NRGBA{0xff, 0x00, 0xaa, 255}},
		{"#11223380", color.NRGBA{0x11, 0x22, 0x33, 0x80}},
		{"transparent", color.NRGBA{}},
	}

	for _, c := range cases {
		got, err := ParseColor(c.in)
		require.NoError(t, err, c.in)
		assert.Equal(t, c.want, color.NRGBAModel.Convert(got), c.in)
	}
}

func TestParseColorRejects(t *testing.T) {
	for _, in := range []string{"", "blurple", "#12", "#12345", "#gggggg", "000000", "#1234567890"} {
		_, err := ParseColor(in)
		assert.Error(t, err, in)
	}
}
