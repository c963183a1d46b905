package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"miniframe/config"
	"miniframe/server"
)

// miniframe 入口：单连接 TCP 服务，浏览器轮询 POST / 获取渲染帧
func main() {
	var (
		configPath = flag.String("config", "", "optional YAML config file")
		host       = flag.String("host", "", "listen IPv4 address (default 0.0.0.0)")
		port       = flag.Int("port", -1, "listen port (default 8080)")
		adminAddr  = flag.String("admin", "", "admin/metrics listen address, disabled when empty")
	)
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	// 命令行参数覆盖配置
	if *host != "" {
		cfg.Server.Host = *host
	}
	if *port >= 0 {
		cfg.Server.Port = *port
	}
	if *adminAddr != "" {
		cfg.Admin.Addr = *adminAddr
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	if err := server.InitLogger(cfg.Log.Level, cfg.Log.File); err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}
	defer server.SyncLogger()

	os.Exit(run(cfg))
}

func run(cfg *config.Config) int {
	ln, err := server.Listen(cfg)
	if err != nil {
		server.Log.Errorf("%v", err)
		return 1
	}

	// 优雅退出（Ctrl+C）
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	srv := server.NewServer(cfg)
	if cfg.Admin.Addr != "" {
		go func() {
			if err := srv.ServeAdmin(ctx, cfg.Admin.Addr); err != nil {
				server.Log.Errorf("admin: %v", err)
			}
		}()
	}

	// accept 失败只结束接受循环，按正常退出处理
	if err := srv.Serve(ctx, ln); err != nil {
		server.Log.Errorf("%v", err)
	}
	server.Log.Info("Shutting down...")
	return 0
}
