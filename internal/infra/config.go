package infra

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// TokenConfig locates one token: its on-network identity and the gateway
// URL its ledger answers on.
type TokenConfig struct {
	ID      string `yaml:"id" validate:"required"`
	Gateway string `yaml:"gateway" validate:"required,url"`
}

// Config holds the whole application configuration. Identities can be
// overridden with environment variables after loading.
type Config struct {
	App struct {
		Name    string `yaml:"name"`
		Version string `yaml:"version"`
	} `yaml:"app"`

	Trading struct {
		Mode               string  `yaml:"mode" validate:"required,oneof=PAPER REAL"`
		MarketTolerance    float64 `yaml:"market_tolerance" validate:"gt=0,lte=1"`
		TriggeredTolerance float64 `yaml:"triggered_tolerance" validate:"gt=0,lte=1"`
	} `yaml:"trading"`

	Exchange struct {
		ID      string `yaml:"id" validate:"required"`
		Gateway string `yaml:"gateway" validate:"required,url"`
	} `yaml:"exchange"`

	Tokens struct {
		XTC  TokenConfig `yaml:"xtc"`
		WICP TokenConfig `yaml:"wicp"`
	} `yaml:"tokens"`

	Identity struct {
		Controller string `yaml:"controller" validate:"required"`
		Self       string `yaml:"self" validate:"required"`
	} `yaml:"identity"`

	Scheduler struct {
		TickIntervalSec    int   `yaml:"tick_interval_sec" validate:"gt=0"`
		RecheckIntervalSec int   `yaml:"recheck_interval_sec" validate:"gt=0"`
		MaxPending         int   `yaml:"max_pending" validate:"gt=0"`
		ConsumeOnFailure   *bool `yaml:"consume_on_failure"`
	} `yaml:"scheduler"`

	Storage struct {
		DBPath string `yaml:"db_path"`
	} `yaml:"storage"`

	Logging struct {
		Level string `yaml:"level"`
	} `yaml:"logging"`
}

// LoadConfig reads and parses the config file, applies env overrides and
// defaults, and validates the result.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	overrideWithEnv(&cfg)
	applyDefaults(&cfg)

	if err := validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.App.Name == "" {
		cfg.App.Name = "dexbot"
	}
	if cfg.Trading.MarketTolerance == 0 {
		cfg.Trading.MarketTolerance = 0.99
	}
	if cfg.Trading.TriggeredTolerance == 0 {
		cfg.Trading.TriggeredTolerance = 0.995
	}
	if cfg.Scheduler.TickIntervalSec == 0 {
		cfg.Scheduler.TickIntervalSec = 5
	}
	if cfg.Scheduler.RecheckIntervalSec == 0 {
		cfg.Scheduler.RecheckIntervalSec = 10
	}
	if cfg.Scheduler.MaxPending == 0 {
		cfg.Scheduler.MaxPending = 1024
	}
	if cfg.Scheduler.ConsumeOnFailure == nil {
		t := true
		cfg.Scheduler.ConsumeOnFailure = &t
	}
	if cfg.Storage.DBPath == "" {
		cfg.Storage.DBPath = "dexbot.db"
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
}

// overrideWithEnv lets deploy-specific identities come from the environment
// instead of the config file.
func overrideWithEnv(cfg *Config) {
	if v := os.Getenv("DEXBOT_CONTROLLER"); v != "" {
		cfg.Identity.Controller = v
	}
	if v := os.Getenv("DEXBOT_SELF"); v != "" {
		cfg.Identity.Self = v
	}
	if v := os.Getenv("DEXBOT_EXCHANGE_GATEWAY"); v != "" {
		cfg.Exchange.Gateway = v
	}
	if v := os.Getenv("DEXBOT_XTC_GATEWAY"); v != "" {
		cfg.Tokens.XTC.Gateway = v
	}
	if v := os.Getenv("DEXBOT_WICP_GATEWAY"); v != "" {
		cfg.Tokens.WICP.Gateway = v
	}
}
