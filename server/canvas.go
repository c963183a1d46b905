package server

import "strconv"

const (
	// CanvasWidth / CanvasHeight 与页面中 canvas 元素的尺寸一致
	CanvasWidth  = 256
	CanvasHeight = 256
	canvasDepth  = 4
)

// Canvas 固定尺寸的 RGBA 像素缓冲，按行优先存储
type Canvas struct {
	width  int
	height int
	data   []byte
	text   []byte // Serialize 复用的输出缓冲
}

// NewCanvas 创建 width×height 的画布，初始全零
func NewCanvas(width, height int) *Canvas {
	return &Canvas{
		width:  width,
		height: height,
		data:   make([]byte, width*height*canvasDepth),
	}
}

func (c *Canvas) Width() int  { return c.width }
func (c *Canvas) Height() int { return c.height }

// Pixels 返回底层字节（不拷贝）
func (c *Canvas) Pixels() []byte { return c.data }

// SetPixel 写入单个像素；调用方保证 0<=x<W, 0<=y<H
func (c *Canvas) SetPixel(x, y int, col Color) {
	i := (x + y*c.width) * canvasDepth
	v := col.rgba()
	copy(c.data[i:i+canvasDepth], v[:])
}

// DrawRect 填充矩形，先将四边裁剪到画布内，完全越界时不做任何写入
func (c *Canvas) DrawRect(x, y, w, h int, col Color) {
	x0 := clampInt(x, 0, c.width)
	y0 := clampInt(y, 0, c.height)
	x1 := clampInt(x+w, 0, c.width)
	y1 := clampInt(y+h, 0, c.height)
	for yi := y0; yi < y1; yi++ {
		for xi := x0; xi < x1; xi++ {
			c.SetPixel(xi, yi, col)
		}
	}
}

// Clear 用黑色填满画布
func (c *Canvas) Clear() {
	c.DrawRect(0, 0, c.width, c.height, ColorBlack)
}

// Serialize 输出 "[r,g,b,a,...]" 文本，客户端直接作为 Uint8ClampedArray 的 JSON 数组解析。
// 返回的切片在下一次调用前有效。
func (c *Canvas) Serialize() []byte {
	buf := c.text[:0]
	buf = append(buf, '[')
	for i, v := range c.data {
		if i > 0 {
			buf = append(buf, ',')
		}
		buf = strconv.AppendUint(buf, uint64(v), 10)
	}
	buf = append(buf, ']')
	c.text = buf
	return buf
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
