package server

import (
	"sync/atomic"
)

// Metrics 记录服务运行期的关键指标（用于监控与调试）
type Metrics struct {
	SessionsAccepted int64 // 已接受的连接数
	PeerClosed       int64 // 对端关闭结束的会话数
	ReadErrors       int64 // 读错误结束的会话数
	WriteErrors      int64 // 写错误结束的会话数
	PageRequests     int64 // GET / 次数
	FrameRequests    int64 // POST / 次数
	UnknownRequests  int64 // 无法识别的请求数
	FramesRendered   int64 // 渲染的帧数（tick 数）
	TotalRenderNs    int64 // 渲染累计耗时（纳秒）
	TotalPaceSleepNs int64 // 节拍等待累计耗时（纳秒）
}

func (m *Metrics) IncSessions()    { atomic.AddInt64(&m.SessionsAccepted, 1) }
func (m *Metrics) IncPeerClosed()  { atomic.AddInt64(&m.PeerClosed, 1) }
func (m *Metrics) IncReadErrors()  { atomic.AddInt64(&m.ReadErrors, 1) }
func (m *Metrics) IncWriteErrors() { atomic.AddInt64(&m.WriteErrors, 1) }
func (m *Metrics) AddPaceSleep(ns int64) {
	atomic.AddInt64(&m.TotalPaceSleepNs, ns)
}
func (m *Metrics) AddFrame(ns int64) {
	atomic.AddInt64(&m.FramesRendered, 1)
	atomic.AddInt64(&m.TotalRenderNs, ns)
}

// IncRoute 按分发结果计数
func (m *Metrics) IncRoute(r Route) {
	switch r {
	case RoutePage:
		atomic.AddInt64(&m.PageRequests, 1)
	case RouteFrame:
		atomic.AddInt64(&m.FrameRequests, 1)
	default:
		atomic.AddInt64(&m.UnknownRequests, 1)
	}
}

// Snapshot 返回只读副本，便于 HTTP 输出
func (m *Metrics) Snapshot() map[string]any {
	frames := atomic.LoadInt64(&m.FramesRendered)
	total := atomic.LoadInt64(&m.TotalRenderNs)
	var avgMs float64
	if frames > 0 {
		avgMs = float64(total) / float64(frames) / 1e6
	}
	return map[string]any{
		"sessions_accepted": atomic.LoadInt64(&m.SessionsAccepted),
		"peer_closed":       atomic.LoadInt64(&m.PeerClosed),
		"read_errors":       atomic.LoadInt64(&m.ReadErrors),
		"write_errors":      atomic.LoadInt64(&m.WriteErrors),
		"page_requests":     atomic.LoadInt64(&m.PageRequests),
		"frame_requests":    atomic.LoadInt64(&m.FrameRequests),
		"unknown_requests":  atomic.LoadInt64(&m.UnknownRequests),
		"frames_rendered":   frames,
		"avg_render_ms":     avgMs,
		"pace_sleep_ms":     float64(atomic.LoadInt64(&m.TotalPaceSleepNs)) / 1e6,
	}
}
