package config

import (
	"fmt"
	"net"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config 进程的全部配置
type Config struct {
	Server ServerConfig `yaml:"server"`
	Game   GameConfig   `yaml:"game"`
	Log    LogConfig    `yaml:"log"`
	Admin  AdminConfig  `yaml:"admin"`
}

// ServerConfig 游戏端口（裸 TCP，单连接）
type ServerConfig struct {
	Host           string `yaml:"host"`             // 仅支持 IPv4 字面量
	Port           int    `yaml:"port"`             // 0 表示由内核分配（测试用）
	Backlog        int    `yaml:"backlog"`          // listen 队列长度
	ReadBufferSize int    `yaml:"read_buffer_size"` // 单次读取的最大字节数
}

// GameConfig 模拟与节奏
type GameConfig struct {
	PaceInterval time.Duration `yaml:"pace_interval"` // 两次响应之间的最小间隔
	Speed        float64       `yaml:"speed"`         // 每个 tick 的位移
	HeroHalfSize float64       `yaml:"hero_half_size"`
}

// LogConfig 日志输出
type LogConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"` // 为空时只输出到控制台
}

// AdminConfig 管理端口，Addr 为空则不启动
type AdminConfig struct {
	Addr string `yaml:"addr"`
}

// Default 返回默认配置
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Host:           "0.0.0.0",
			Port:           8080,
			Backlog:        1,
			ReadBufferSize: 4096,
		},
		Game: GameConfig{
			PaceInterval: 100 * time.Millisecond,
			Speed:        8.0,
			HeroHalfSize: 4.0,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Load 依次应用：默认值 → YAML 文件（path 非空时）→ 环境变量，最后校验
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	cfg.Server.Host = getEnvOrDefault("SERVER_HOST", cfg.Server.Host)
	cfg.Server.Port = getEnvAsIntOrDefault("PORT", cfg.Server.Port)
	if ms := getEnvAsIntOrDefault("PACE_INTERVAL_MS", -1); ms >= 0 {
		cfg.Game.PaceInterval = time.Duration(ms) * time.Millisecond
	}
	cfg.Log.Level = getEnvOrDefault("LOG_LEVEL", cfg.Log.Level)
	cfg.Log.File = getEnvOrDefault("LOG_FILE", cfg.Log.File)
	cfg.Admin.Addr = getEnvOrDefault("ADMIN_ADDR", cfg.Admin.Addr)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// Validate 校验配置的合法性
func (c *Config) Validate() error {
	ip := net.ParseIP(c.Server.Host)
	if ip == nil || ip.To4() == nil {
		return fmt.Errorf("server host must be an IPv4 address: %q", c.Server.Host)
	}
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid port: %d", c.Server.Port)
	}
	if c.Server.Backlog < 1 {
		return fmt.Errorf("invalid backlog: %d", c.Server.Backlog)
	}
	if c.Server.ReadBufferSize < 1 {
		return fmt.Errorf("invalid read buffer size: %d", c.Server.ReadBufferSize)
	}
	if c.Game.PaceInterval <= 0 {
		return fmt.Errorf("pace interval must be positive: %v", c.Game.PaceInterval)
	}
	if c.Game.Speed < 0 {
		return fmt.Errorf("speed must not be negative: %v", c.Game.Speed)
	}
	if c.Game.HeroHalfSize <= 0 {
		return fmt.Errorf("hero half size must be positive: %v", c.Game.HeroHalfSize)
	}
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown log level: %q", c.Log.Level)
	}
	return nil
}

// ServerAddress 返回游戏端口的监听地址
func (c *Config) ServerAddress() string {
	return net.JoinHostPort(c.Server.Host, strconv.Itoa(c.Server.Port))
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}
