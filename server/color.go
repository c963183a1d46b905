package server

// Color 三通道颜色，alpha 固定为 255
type Color struct {
	R, G, B uint8
}

var (
	ColorBlack = Color{0, 0, 0}
	ColorRed   = Color{255, 0, 0}
)

func (c Color) rgba() [4]byte {
	return [4]byte{c.R, c.G, c.B, 255}
}
