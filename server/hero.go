package server

import "math"

// Hero 唯一可控实体。位置不做边界裁剪，可以离开画布，绘制时由 DrawRect 裁剪。
type Hero struct {
	X        float64
	Y        float64
	HalfSize float64
	Color    Color
}

// NewHero 在画布中心创建实体
func NewHero(canvasW, canvasH int, halfSize float64) *Hero {
	return &Hero{
		X:        0.5 * float64(canvasW),
		Y:        0.5 * float64(canvasH),
		HalfSize: halfSize,
		Color:    ColorRed,
	}
}

// Update 按方向键直接位移 speed；相反方向同时按下时相互抵消
func (h *Hero) Update(keys *KeyState, speed float64) {
	if keys.Pressed(KeyArrowLeft) {
		h.X -= speed
	}
	if keys.Pressed(KeyArrowUp) {
		h.Y -= speed
	}
	if keys.Pressed(KeyArrowRight) {
		h.X += speed
	}
	if keys.Pressed(KeyArrowDown) {
		h.Y += speed
	}
}

// Draw 以实体位置为中心画一个 2*HalfSize 的实心方块（坐标向下取整）
func (h *Hero) Draw(c *Canvas) {
	x := int(math.Floor(h.X - h.HalfSize))
	y := int(math.Floor(h.Y - h.HalfSize))
	size := int(2 * h.HalfSize)
	c.DrawRect(x, y, size, size, h.Color)
}
