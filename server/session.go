package server

import (
	"context"
	"errors"
	"io"
	"net"

	"go.uber.org/zap"
)

// SessionEnd 会话结束的原因
type SessionEnd int

const (
	EndPeerClosed SessionEnd = iota
	EndReadError
	EndWriteError
	EndCanceled
)

func (e SessionEnd) String() string {
	switch e {
	case EndPeerClosed:
		return "peer closed"
	case EndReadError:
		return "read error"
	case EndWriteError:
		return "write error"
	case EndCanceled:
		return "canceled"
	default:
		return "unknown"
	}
}

// Session 单个连接上的 读取 → 分发 → 按节拍发送 循环
type Session struct {
	conn    net.Conn
	world   *World
	pacer   *Pacer
	metrics *Metrics
	buf     []byte
	log     *zap.SugaredLogger
}

// Run 循环处理请求直到对端关闭、读写出错或 ctx 取消。
// 每次读取的字节即视为一个完整请求，不跨读取累积。
func (s *Session) Run(ctx context.Context) SessionEnd {
	// ctx 取消时关闭连接以打断阻塞的 Read
	stop := context.AfterFunc(ctx, func() { _ = s.conn.Close() })
	defer stop()

	for {
		// TODO: 按 Content-Length 累积被拆分到多个 TCP 段的 POST body
		n, readErr := s.conn.Read(s.buf)
		if n == 0 {
			return s.endRead(ctx, readErr)
		}

		response := s.respond(s.buf[:n])

		slept, err := s.pacer.Wait(ctx)
		if err != nil {
			return EndCanceled
		}
		s.metrics.AddPaceSleep(slept.Nanoseconds())

		if _, err := s.conn.Write(response); err != nil {
			if ctx.Err() != nil {
				return EndCanceled
			}
			s.log.Warnf("write failed: %v", err)
			s.metrics.IncWriteErrors()
			return EndWriteError
		}

		if readErr != nil {
			return s.endRead(ctx, readErr)
		}
	}
}

// endRead 读取返回 0 字节或出错时决定会话如何结束
func (s *Session) endRead(ctx context.Context, err error) SessionEnd {
	switch {
	case ctx.Err() != nil:
		return EndCanceled
	case err == nil || errors.Is(err, io.EOF):
		s.log.Info("Peer shutdown")
		s.metrics.IncPeerClosed()
		return EndPeerClosed
	default:
		s.log.Warnf("read failed: %v", err)
		s.metrics.IncReadErrors()
		return EndReadError
	}
}

// respond 按请求行分发并编码完整响应
func (s *Session) respond(raw []byte) []byte {
	req := ParseRequest(raw)
	s.metrics.IncRoute(req.Route)

	var body []byte
	switch req.Route {
	case RoutePage:
		body = Page()
	case RouteFrame:
		keys := DecodeKeyState(req.Body)
		body = s.world.Step(&keys)
	default:
		s.log.Debugf("unrecognized request line %q", req.Line)
	}
	return BuildResponse(body)
}
