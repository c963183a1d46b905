package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"sync/atomic"

	"github.com/google/uuid"

	"miniframe/config"
)

var (
	// ErrSocketSetup socket/setsockopt/bind/listen 失败，启动阶段致命
	ErrSocketSetup = errors.New("socket setup failed")
	// ErrAccept accept 失败，接受循环随之结束
	ErrAccept = errors.New("accept failed")
)

// Server 持有唯一的世界状态，一次只服务一个连接
type Server struct {
	cfg          *config.Config
	world        *World
	metrics      *Metrics
	frames       *FrameHub
	paceInterval atomic.Int64 // 纳秒
}

// NewServer 按配置创建世界与指标
func NewServer(cfg *config.Config) *Server {
	s := &Server{
		cfg:     cfg,
		world:   NewWorld(CanvasWidth, CanvasHeight, cfg.Game.Speed, cfg.Game.HeroHalfSize),
		metrics: &Metrics{},
		frames:  NewFrameHub(),
	}
	s.paceInterval.Store(int64(cfg.Game.PaceInterval))
	s.world.metrics = s.metrics
	s.world.frames = s.frames
	return s
}

func (s *Server) World() *World     { return s.world }
func (s *Server) Metrics() *Metrics { return s.metrics }
func (s *Server) Frames() *FrameHub { return s.frames }

// Listen 创建 IPv4 监听 socket（SO_REUSEADDR，backlog 取自配置）
func Listen(cfg *config.Config) (net.Listener, error) {
	ln, err := listenTCP4(cfg.Server.Host, cfg.Server.Port, cfg.Server.Backlog)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSocketSetup, err)
	}
	return ln, nil
}

// Serve 逐个接受连接，每个连接的会话跑完并关闭后才接受下一个。
// ctx 取消时关闭监听并返回 nil；accept 出错返回包装了 ErrAccept 的错误。
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	stop := context.AfterFunc(ctx, func() { _ = ln.Close() })
	defer stop()

	Log.Infof("listening on %s; open http://%s/", ln.Addr(), ln.Addr())
	for {
		conn, err := ln.Accept()
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return fmt.Errorf("%w: %v", ErrAccept, err)
		}
		s.ServeConn(ctx, conn)
	}
}

// ServeConn 在当前 goroutine 上运行一个会话，结束后关闭连接
func (s *Server) ServeConn(ctx context.Context, conn net.Conn) SessionEnd {
	defer conn.Close()
	s.metrics.IncSessions()

	sess := &Session{
		conn:    conn,
		world:   s.world,
		pacer:   NewPacer(&s.paceInterval),
		metrics: s.metrics,
		buf:     make([]byte, s.cfg.Server.ReadBufferSize),
		log:     Log.With("session", uuid.NewString(), "remote", conn.RemoteAddr().String()),
	}
	sess.log.Info("session started")
	end := sess.Run(ctx)
	sess.log.Infof("session ended: %s", end)
	return end
}
