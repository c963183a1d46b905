package server

import (
	"sync"
	"time"
)

// World 进程内唯一的模拟世界：一块画布 + 一个实体。
// 会话循环是唯一的写入者；管理端口的处理器会并发读取，因此用互斥锁保护。
// 世界状态跨会话保留，新连接不会重置。
type World struct {
	mu     sync.Mutex
	canvas *Canvas
	hero   *Hero
	speed  float64
	tick   uint64

	metrics *Metrics
	frames  *FrameHub // 可为 nil
}

// NewWorld 创建世界并把实体放在画布中心
func NewWorld(width, height int, speed, halfSize float64) *World {
	return &World{
		canvas: NewCanvas(width, height),
		hero:   NewHero(width, height, halfSize),
		speed:  speed,
	}
}

// Step 推进一个 tick：更新实体 → 清屏 → 绘制 → 序列化。
// 返回的文本帧在下一次 Step 之前有效。
func (w *World) Step(keys *KeyState) []byte {
	start := time.Now()
	w.mu.Lock()
	w.hero.Update(keys, w.speed)
	w.canvas.Clear()
	w.hero.Draw(w.canvas)
	w.tick++
	frame := w.canvas.Serialize()
	if w.frames != nil && w.frames.Len() > 0 {
		w.frames.Broadcast(w.canvas.Pixels())
	}
	w.mu.Unlock()

	if w.metrics != nil {
		w.metrics.AddFrame(time.Since(start).Nanoseconds())
	}
	return frame
}

// WorldSnapshot 供监控接口读取
type WorldSnapshot struct {
	Tick  uint64  `json:"tick"`
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Speed float64 `json:"speed"`
}

func (w *World) Snapshot() WorldSnapshot {
	w.mu.Lock()
	defer w.mu.Unlock()
	return WorldSnapshot{Tick: w.tick, X: w.hero.X, Y: w.hero.Y, Speed: w.speed}
}

// Speed 当前每 tick 位移
func (w *World) Speed() float64 {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.speed
}

// SetSpeed 热更新位移步长，下一个 tick 生效
func (w *World) SetSpeed(speed float64) {
	w.mu.Lock()
	w.speed = speed
	w.mu.Unlock()
}

// CopyPixels 返回当前画布像素的副本
func (w *World) CopyPixels() []byte {
	w.mu.Lock()
	defer w.mu.Unlock()
	return append([]byte(nil), w.canvas.Pixels()...)
}
