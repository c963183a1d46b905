package server

import "testing"

func keysFor(codes ...int) KeyState {
	body := make([]byte, KeyCount)
	for i := range body {
		body[i] = '0'
	}
	for _, c := range codes {
		body[c] = '1'
	}
	return DecodeKeyState(body)
}

func TestDecodeKeyState(t *testing.T) {
	ks := DecodeKeyState([]byte("0001x1"))
	for code, want := range map[int]bool{0: false, 3: true, 4: false, 5: true, 6: false, 255: false} {
		if got := ks.Pressed(code); got != want {
			t.Errorf("code %d: got %v, want %v", code, got, want)
		}
	}
	if ks.Pressed(-1) || ks.Pressed(KeyCount) {
		t.Error("out of range key codes must read as released")
	}

	empty := DecodeKeyState(nil)
	if empty != (KeyState{}) {
		t.Error("empty body should decode to all released")
	}

	long := make([]byte, KeyCount+10)
	for i := range long {
		long[i] = '1'
	}
	all := DecodeKeyState(long)
	if !all.Pressed(KeyCount - 1) {
		t.Error("last slot should be pressed")
	}
}

func TestHeroUpdate(t *testing.T) {
	testCases := []struct {
		name   string
		keys   KeyState
		dx, dy float64
	}{
		{"no keys", keysFor(), 0, 0},
		{"right", keysFor(KeyArrowRight), 8, 0},
		{"left", keysFor(KeyArrowLeft), -8, 0},
		{"up", keysFor(KeyArrowUp), 0, -8},
		{"down", keysFor(KeyArrowDown), 0, 8},
		{"up and right", keysFor(KeyArrowUp, KeyArrowRight), 8, -8},
		{"opposing cancel", keysFor(KeyArrowLeft, KeyArrowRight, KeyArrowUp, KeyArrowDown), 0, 0},
		{"unrelated keys", keysFor(32, 65, 90), 0, 0},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			h := NewHero(CanvasWidth, CanvasHeight, 4)
			x0, y0 := h.X, h.Y
			h.Update(&tc.keys, 8)
			if h.X-x0 != tc.dx || h.Y-y0 != tc.dy {
				t.Errorf("moved (%v,%v), want (%v,%v)", h.X-x0, h.Y-y0, tc.dx, tc.dy)
			}
		})
	}
}

func TestHeroLeavesCanvas(t *testing.T) {
	h := NewHero(16, 16, 4)
	keys := keysFor(KeyArrowLeft)
	for i := 0; i < 10; i++ {
		h.Update(&keys, 8)
	}
	if h.X != 8-80 {
		t.Fatalf("position must not be clamped, got x=%v", h.X)
	}

	c := NewCanvas(16, 16)
	h.Draw(c)
	if n := countColor(c, ColorRed); n != 0 {
		t.Errorf("off-canvas hero painted %d pixels", n)
	}
}

func TestHeroDraw(t *testing.T) {
	c := NewCanvas(CanvasWidth, CanvasHeight)
	h := NewHero(CanvasWidth, CanvasHeight, 4)
	h.Draw(c)

	if n := countColor(c, ColorRed); n != 64 {
		t.Fatalf("painted %d pixels, want 64", n)
	}
	// 中心 (128,128)，方块覆盖 [124,132)
	for _, p := range [][2]int{{124, 124}, {131, 131}} {
		if pixelAt(c, p[0], p[1]) != ColorRed.rgba() {
			t.Errorf("pixel %v should be painted", p)
		}
	}
	for _, p := range [][2]int{{123, 124}, {132, 131}, {124, 132}} {
		if pixelAt(c, p[0], p[1]) == ColorRed.rgba() {
			t.Errorf("pixel %v should not be painted", p)
		}
	}

	// 负坐标向下取整
	h.X, h.Y = -0.5, -0.5
	c = NewCanvas(16, 16)
	h.Draw(c)
	if n := countColor(c, ColorRed); n != 9 {
		t.Errorf("painted %d pixels at (-0.5,-0.5), want 9", n)
	}
}
