package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/AscendTech4H/iqclaw/control"
)

func writeConfig(t *testing.T, data string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadAppliesDefaults(t *testing.T) {
	path := writeConfig(t, `
serial:
  device: /dev/ttyUSB1
control:
  deadband: 8
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}

	if cfg.Serial.Device != "/dev/ttyUSB1" {
		t.Fatalf("expected device from file, got %s", cfg.Serial.Device)
	}
	if cfg.Serial.Baud != 115200 {
		t.Fatalf("expected default baud 115200, got %d", cfg.Serial.Baud)
	}
	if cfg.Control.Period != 20*time.Millisecond {
		t.Fatalf("expected default period 20ms, got %s", cfg.Control.Period)
	}
	if cfg.Ports.LeftDrive != 6 || cfg.Ports.RightDrive != 12 || !cfg.Ports.RightReversed {
		t.Fatalf("unexpected default ports %+v", cfg.Ports)
	}

	lim := cfg.Limits()
	want := control.DefaultLimits()
	want.Deadband = 8
	if lim != want {
		t.Fatalf("expected limits %+v, got %+v", want, lim)
	}
}

func TestLoadDurationsAndZeroClawMax(t *testing.T) {
	path := writeConfig(t, `
control:
  period: 10ms
  clamp_hold: 500ms
  claw_max_deg: 0
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.Control.Period != 10*time.Millisecond {
		t.Fatalf("expected period 10ms, got %s", cfg.Control.Period)
	}
	if cfg.Control.ClampHold != 500*time.Millisecond {
		t.Fatalf("expected clamp hold 500ms, got %s", cfg.Control.ClampHold)
	}
	if got := cfg.Limits().ClawMax; got != 0 {
		t.Fatalf("explicit zero claw max was replaced by %v", got)
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	cases := map[string]string{
		"duplicate": `
ports:
  left_drive: 1
  right_drive: 1
  claw: 2
  sonar: 3
`,
		"range": `
ports:
  left_drive: 1
  right_drive: 13
  claw: 2
  sonar: 3
`,
		"claw bounds": `
control:
  claw_min_deg: 5
  claw_max_deg: 1
`,
		"clamp velocity": `
control:
  clamp_velocity: 150
`,
		"read timeout": `
serial:
  read_timeout: -5ms
`,
		"timeout": `
control:
  period: 100ms
  controller_timeout: 50ms
`,
	}
	for name, data := range cases {
		if _, err := Load(writeConfig(t, data)); err == nil {
			t.Fatalf("%s: expected validation error", name)
		}
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err == nil || !os.IsNotExist(err) {
		t.Fatalf("expected not-exist error, got %v", err)
	}
}

func TestLoadBadYAML(t *testing.T) {
	_, err := Load(writeConfig(t, "serial: [\n"))
	if err == nil || !strings.Contains(err.Error(), "parse") {
		t.Fatalf("expected parse error, got %v", err)
	}
}

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
	if cfg.Serial.ReadTimeout != 100*time.Millisecond {
		t.Fatalf("expected default read timeout 100ms, got %s", cfg.Serial.ReadTimeout)
	}
}

func TestValidateRejectsBlockingRead(t *testing.T) {
	cfg := Default()
	cfg.Serial.ReadTimeout = 0
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for zero read timeout")
	}
}

func TestExampleConfigLoads(t *testing.T) {
	cfg, err := Load(filepath.Join("..", "bottomside", "config.example.yaml"))
	if err != nil {
		t.Fatalf("load example: %v", err)
	}
	if cfg.Serial.ReadTimeout != 200*time.Millisecond {
		t.Fatalf("expected read timeout 200ms, got %s", cfg.Serial.ReadTimeout)
	}
	if cfg.Limits() != control.DefaultLimits() {
		t.Fatalf("example limits drifted from defaults: %+v", cfg.Limits())
	}
}
