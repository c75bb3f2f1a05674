package bootstrap

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Addr          string        `mapstructure:"ADDR"`
	WebDir        string        `mapstructure:"WEB_DIR"`
	WebMobileDir  string        `mapstructure:"WEB_MOBILE_DIR"`
	HumanSide     string        `mapstructure:"HUMAN_SIDE"`
	OpponentDelay time.Duration `mapstructure:"OPPONENT_DELAY"`
	Seed          int64         `mapstructure:"SEED"`
	Store         string        `mapstructure:"STORE"`
	RedisUrl      string        `mapstructure:"REDIS_URL"`
	GameTTL       time.Duration `mapstructure:"GAME_TTL"`
	MongoUri      string        `mapstructure:"MONGO_URI"`
	MongoDB       string        `mapstructure:"MONGO_DB"`
	LogDev        bool          `mapstructure:"LOG_DEV"`
	OpenBrowser   bool          `mapstructure:"OPEN_BROWSER"`
}

const (
	StoreMemory = "memory"
	StoreRedis  = "redis"
)

var defaults = map[string]any{
	"ADDR":           ":2888",
	"WEB_DIR":        "./web",
	"WEB_MOBILE_DIR": "",
	"HUMAN_SIDE":     "red",
	"OPPONENT_DELAY": "800ms",
	"SEED":           0,
	"STORE":          StoreMemory,
	"REDIS_URL":      "localhost:6379",
	"GAME_TTL":       "24h",
	"MONGO_URI":      "",
	"MONGO_DB":       "xiangqi",
	"LOG_DEV":        false,
	"OPEN_BROWSER":   true,
}

// Setup 读配置：默认值 < 配置文件 < 环境变量。cfgPath 为空时只用默认值和环境变量。
func Setup(cfgPath string) (*Config, error) {
	v := viper.New()
	for k, val := range defaults {
		v.SetDefault(k, val)
	}
	v.AutomaticEnv()

	if cfgPath != "" {
		v.SetConfigFile(cfgPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", cfgPath, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	cfg.HumanSide = strings.ToLower(strings.TrimSpace(cfg.HumanSide))
	if cfg.HumanSide != "red" && cfg.HumanSide != "black" {
		return nil, fmt.Errorf("HUMAN_SIDE must be red or black, got %q", cfg.HumanSide)
	}
	cfg.Store = strings.ToLower(strings.TrimSpace(cfg.Store))
	if cfg.Store != StoreMemory && cfg.Store != StoreRedis {
		return nil, fmt.Errorf("STORE must be %s or %s, got %q", StoreMemory, StoreRedis, cfg.Store)
	}
	if cfg.OpponentDelay < 0 {
		cfg.OpponentDelay = 0
	}
	return &cfg, nil
}
