package infra

import (
	"os"
	"path/filepath"
	"testing"
)

const validYAML = `
trading:
  mode: "PAPER"
exchange:
  id: "exch-1"
  gateway: "http://127.0.0.1:8000"
tokens:
  xtc:
    id: "xtc-1"
    gateway: "http://127.0.0.1:8000"
  wicp:
    id: "wicp-1"
    gateway: "http://127.0.0.1:8000"
identity:
  controller: "ctl-1"
  self: "self-1"
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadConfigAppliesDefaults(t *testing.T) {
	cfg, err := LoadConfig(writeConfig(t, validYAML))
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if cfg.App.Name != "dexbot" {
		t.Errorf("default app name = %q", cfg.App.Name)
	}
	if cfg.Trading.MarketTolerance != 0.99 {
		t.Errorf("default market tolerance = %v", cfg.Trading.MarketTolerance)
	}
	if cfg.Trading.TriggeredTolerance != 0.995 {
		t.Errorf("default triggered tolerance = %v", cfg.Trading.TriggeredTolerance)
	}
	if cfg.Scheduler.TickIntervalSec != 5 {
		t.Errorf("default tick interval = %d", cfg.Scheduler.TickIntervalSec)
	}
	if cfg.Scheduler.RecheckIntervalSec != 10 {
		t.Errorf("default recheck interval = %d", cfg.Scheduler.RecheckIntervalSec)
	}
	if cfg.Scheduler.MaxPending != 1024 {
		t.Errorf("default max pending = %d", cfg.Scheduler.MaxPending)
	}
	if cfg.Scheduler.ConsumeOnFailure == nil || !*cfg.Scheduler.ConsumeOnFailure {
		t.Error("default consume_on_failure should be true")
	}
	if cfg.Storage.DBPath != "dexbot.db" {
		t.Errorf("default db path = %q", cfg.Storage.DBPath)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("default log level = %q", cfg.Logging.Level)
	}
}

func TestLoadConfigExplicitConsumeFalseSurvivesDefaults(t *testing.T) {
	cfg, err := LoadConfig(writeConfig(t, validYAML+`
scheduler:
  consume_on_failure: false
`))
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.Scheduler.ConsumeOnFailure == nil || *cfg.Scheduler.ConsumeOnFailure {
		t.Error("explicit consume_on_failure=false was overwritten by defaults")
	}
}

func TestLoadConfigRejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"bad mode", `
trading:
  mode: "LIVE"
exchange:
  id: "e"
  gateway: "http://h"
tokens:
  xtc: {id: "x", gateway: "http://h"}
  wicp: {id: "w", gateway: "http://h"}
identity:
  controller: "c"
  self: "s"
`},
		{"tolerance above one", `
trading:
  mode: "PAPER"
  market_tolerance: 1.5
exchange:
  id: "e"
  gateway: "http://h"
tokens:
  xtc: {id: "x", gateway: "http://h"}
  wicp: {id: "w", gateway: "http://h"}
identity:
  controller: "c"
  self: "s"
`},
		{"missing controller", `
trading:
  mode: "PAPER"
exchange:
  id: "e"
  gateway: "http://h"
tokens:
  xtc: {id: "x", gateway: "http://h"}
  wicp: {id: "w", gateway: "http://h"}
identity:
  self: "s"
`},
		{"gateway not a url", `
trading:
  mode: "PAPER"
exchange:
  id: "e"
  gateway: "not a url"
tokens:
  xtc: {id: "x", gateway: "http://h"}
  wicp: {id: "w", gateway: "http://h"}
identity:
  controller: "c"
  self: "s"
`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := LoadConfig(writeConfig(t, tt.yaml)); err == nil {
				t.Error("invalid config accepted")
			}
		})
	}
}

func TestLoadConfigEnvOverrides(t *testing.T) {
	t.Setenv("DEXBOT_CONTROLLER", "env-controller")
	t.Setenv("DEXBOT_EXCHANGE_GATEWAY", "http://10.0.0.1:9000")

	cfg, err := LoadConfig(writeConfig(t, validYAML))
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.Identity.Controller != "env-controller" {
		t.Errorf("controller = %q, want env override", cfg.Identity.Controller)
	}
	if cfg.Exchange.Gateway != "http://10.0.0.1:9000" {
		t.Errorf("gateway = %q, want env override", cfg.Exchange.Gateway)
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("missing file accepted")
	}
}
