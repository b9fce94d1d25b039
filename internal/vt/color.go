package vt

import "github.com/micro-editor/tcell/v2"

// basic16 is the standard xterm 0-15 basic/bright palette, in the order CSI
// SGR 30-37/90-97 reference it.
var basic16 = [16]int32{
	0x000000, 0x800000, 0x008000, 0x808000,
	0x000080, 0x800080, 0x008080, 0xc0c0c0,
	0x808080, 0xff0000, 0x00ff00, 0xffff00,
	0x0000ff, 0xff00ff, 0x00ffff, 0xffffff,
}

// xterm256 resolves an xterm 256-color palette index to an RGB color: 0-15
// basic, 16-231 a 6x6x6 cube, 232-255 a 24-step grayscale ramp.
func xterm256(n int) tcell.Color {
	switch {
	case n < 16:
		return tcell.NewHexColor(basic16[n])
	case n < 232:
		n -= 16
		r := cubeLevel(n / 36)
		g := cubeLevel((n / 6) % 6)
		b := cubeLevel(n % 6)
		return tcell.NewRGBColor(int32(r), int32(g), int32(b))
	default:
		level := 8 + (n-232)*10
		return tcell.NewRGBColor(int32(level), int32(level), int32(level))
	}
}

func cubeLevel(i int) int {
	if i == 0 {
		return 0
	}
	return 55 + i*40
}
