package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const validYAML = `
environment: test
server:
  port: 8080
assets:
  - symbol: SPY
    name: "S&P 500 (SPY)"
    volatility: 0.0009
    start_price: 500.00
  - symbol: GLD
    name: "Gold (GLD)"
    volatility: 0.0007
    start_price: 190.00
  - symbol: BTC
    name: "Bitcoin (BTC-USD)"
    volatility: 0.0025
    start_price: 50000.00
  - symbol: TLT
    name: "Treasuries (TLT)"
    volatility: 0.0010
    start_price: 95.00
stream:
  enabled: true
  interval: 2s
`

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadValid(t *testing.T) {
	c, err := Load(writeConfig(t, validYAML))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(c.Assets) != 4 || c.Assets[2].Symbol != "BTC" {
		t.Fatalf("assets: %+v", c.Assets)
	}
	if c.Assets[2].StartPrice != 50000 || c.Assets[2].Volatility != 0.0025 {
		t.Fatalf("BTC config: %+v", c.Assets[2])
	}
	if !c.Stream.Enabled || c.Stream.Interval.Seconds() != 2 {
		t.Fatalf("stream: %+v", c.Stream)
	}
}

func TestLoadRejectsEmptyAssets(t *testing.T) {
	_, err := Load(writeConfig(t, "environment: test\nassets: []\n"))
	if err == nil || !strings.Contains(err.Error(), "assets") {
		t.Fatalf("expected assets error, got %v", err)
	}
}

func TestLoadRejectsBadVolatility(t *testing.T) {
	bad := strings.Replace(validYAML, "volatility: 0.0007", "volatility: 0", 1)
	_, err := Load(writeConfig(t, bad))
	if err == nil || !strings.Contains(err.Error(), "volatility") {
		t.Fatalf("expected volatility error, got %v", err)
	}
}

func TestLoadRejectsKafkaWithoutBrokers(t *testing.T) {
	bad := validYAML + "\nkafka:\n  enabled: true\n  brokers: []\n  topic: t\n"
	_, err := Load(writeConfig(t, bad))
	if err == nil || !strings.Contains(err.Error(), "kafka.brokers") {
		t.Fatalf("expected kafka error, got %v", err)
	}
}

func TestLoadRejectsUnknownCacheBackend(t *testing.T) {
	bad := validYAML + "\ncache:\n  backend: memcached\n"
	_, err := Load(writeConfig(t, bad))
	if err == nil || !strings.Contains(err.Error(), "cache.backend") {
		t.Fatalf("expected cache backend error, got %v", err)
	}
}

func TestLoadWithEnvOverrides(t *testing.T) {
	t.Setenv("PORT", "9191")
	t.Setenv("SIM_SEED", "42")
	c, err := LoadWithEnv(writeConfig(t, validYAML))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if c.Server.Port != 9191 {
		t.Fatalf("port override: %d", c.Server.Port)
	}
	if c.Simulator.Seed != 42 {
		t.Fatalf("seed override: %d", c.Simulator.Seed)
	}
}
