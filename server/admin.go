package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"
)

// AdminHandler 管理与监控接口：/healthz /metrics /admin/config /ws/frames
func (s *Server) AdminHandler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/admin/config", s.HandleAdminConfig)
	mux.HandleFunc("/metrics", s.HandleMetrics)
	mux.HandleFunc("/ws/frames", s.frames.HandleWS)
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("ok"))
	})
	return mux
}

// HandleAdminConfig 读取与热更新运行参数
// GET  /admin/config  返回当前配置
// POST /admin/config  以 JSON 载荷更新部分字段
func (s *Server) HandleAdminConfig(w http.ResponseWriter, r *http.Request) {
	type cfg struct {
		Speed          *float64 `json:"speed,omitempty"`
		PaceIntervalMs *int64   `json:"paceIntervalMs,omitempty"`
	}

	switch r.Method {
	case http.MethodGet:
		speed := s.world.Speed()
		paceMs := time.Duration(s.paceInterval.Load()).Milliseconds()
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(cfg{Speed: &speed, PaceIntervalMs: &paceMs})
		return
	case http.MethodPost:
		var body cfg
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}
		if body.Speed != nil && *body.Speed < 0 {
			http.Error(w, "speed must not be negative", http.StatusBadRequest)
			return
		}
		if body.PaceIntervalMs != nil && *body.PaceIntervalMs <= 0 {
			http.Error(w, "paceIntervalMs must be positive", http.StatusBadRequest)
			return
		}
		if body.Speed != nil {
			s.world.SetSpeed(*body.Speed)
		}
		if body.PaceIntervalMs != nil {
			s.paceInterval.Store(int64(time.Duration(*body.PaceIntervalMs) * time.Millisecond))
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{"ok": true})
		Log.Infof("config updated: speed=%.2f pace=%v",
			s.world.Speed(), time.Duration(s.paceInterval.Load()))
		return
	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
}

// HandleMetrics 输出世界状态与运行指标
// GET /metrics
func (s *Server) HandleMetrics(w http.ResponseWriter, r *http.Request) {
	payload := map[string]any{
		"world":      s.world.Snapshot(),
		"spectators": s.frames.Len(),
		"metrics":    s.metrics.Snapshot(),
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(payload)
}

// ServeAdmin 在 addr 上运行管理端口，ctx 取消后优雅关闭
func (s *Server) ServeAdmin(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.AdminHandler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		Log.Infof("admin listening on %s", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.frames.CloseAll()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
