//Package config loads the robot's YAML configuration.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/AscendTech4H/iqclaw/control"
	"gopkg.in/yaml.v3"
)

//Config is the bottom side configuration file
type Config struct {
	Serial  SerialConfig  `yaml:"serial"`
	HTTP    HTTPConfig    `yaml:"http"`
	Ports   PortsConfig   `yaml:"ports"`
	Control ControlConfig `yaml:"control"`
	Screen  ScreenConfig  `yaml:"screen"`
}

//SerialConfig is the link to the brain
type SerialConfig struct {
	Device      string        `yaml:"device"`
	Baud        int           `yaml:"baud"`
	ReadTimeout time.Duration `yaml:"read_timeout"`
}

//HTTPConfig is where the bottom side serves controls, info and metrics
type HTTPConfig struct {
	Addr string `yaml:"addr"`
}

//PortsConfig says which brain port each device is plugged into
type PortsConfig struct {
	LeftDrive     uint8 `yaml:"left_drive"`
	RightDrive    uint8 `yaml:"right_drive"`
	LeftReversed  bool  `yaml:"left_reversed"`
	RightReversed bool  `yaml:"right_reversed"`
	Claw          uint8 `yaml:"claw"`
	ClawReversed  bool  `yaml:"claw_reversed"`
	Sonar         uint8 `yaml:"sonar"`
}

//ControlConfig holds the control loop timing and thresholds
type ControlConfig struct {
	Period             time.Duration `yaml:"period"`
	Deadband           int           `yaml:"deadband"`
	ClawMinDeg         *float64      `yaml:"claw_min_deg"`
	ClawMaxDeg         *float64      `yaml:"claw_max_deg"`
	ClampVelocity      int           `yaml:"clamp_velocity"`
	ClampHold          time.Duration `yaml:"clamp_hold"`
	AutoGrabDistanceMM int           `yaml:"autograb_distance_mm"`
	ControllerTimeout  time.Duration `yaml:"controller_timeout"`
}

//ScreenConfig is the debug screen layout
type ScreenConfig struct {
	Title string `yaml:"title"`
}

//MaxPort is the highest port number on the brain
const MaxPort = 12

//Default returns the configuration used when no file is given
func Default() *Config {
	var cfg Config
	cfg.applyDefaults()
	return &cfg
}

//Load reads, defaults and validates the config at path
func Load(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) applyDefaults() {
	def := control.DefaultLimits()

	if c.Serial.Device == "" {
		c.Serial.Device = "/dev/ttyACM0"
	}
	if c.Serial.Baud == 0 {
		c.Serial.Baud = 115200
	}
	if c.Serial.ReadTimeout == 0 {
		c.Serial.ReadTimeout = 100 * time.Millisecond
	}
	if c.HTTP.Addr == "" {
		c.HTTP.Addr = ":8080"
	}
	if c.Ports == (PortsConfig{}) {
		c.Ports = PortsConfig{
			LeftDrive:     6,
			RightDrive:    12,
			RightReversed: true,
			Claw:          8,
			Sonar:         3,
		}
	}
	if c.Control.Period == 0 {
		c.Control.Period = 20 * time.Millisecond
	}
	if c.Control.Deadband == 0 {
		c.Control.Deadband = def.Deadband
	}
	if c.Control.ClawMinDeg == nil {
		c.Control.ClawMinDeg = &def.ClawMin
	}
	if c.Control.ClawMaxDeg == nil {
		c.Control.ClawMaxDeg = &def.ClawMax
	}
	if c.Control.ClampVelocity == 0 {
		c.Control.ClampVelocity = def.ClampVelocity
	}
	if c.Control.ClampHold == 0 {
		c.Control.ClampHold = def.ClampHold
	}
	if c.Control.AutoGrabDistanceMM == 0 {
		c.Control.AutoGrabDistanceMM = def.AutoGrabDistance
	}
	if c.Control.ControllerTimeout == 0 {
		c.Control.ControllerTimeout = 250 * time.Millisecond
	}
	if c.Screen.Title == "" {
		c.Screen.Title = "CLAW BOT: v1.0"
	}
}

//Validate checks a config after defaults have been applied
func (c *Config) Validate() error {
	if c.Serial.Device == "" {
		return fmt.Errorf("serial.device is required")
	}
	if c.Serial.Baud <= 0 {
		return fmt.Errorf("serial.baud must be positive, got %d", c.Serial.Baud)
	}
	if c.Serial.ReadTimeout <= 0 {
		//a zero timeout blocks the control loop forever on a silent brain
		return fmt.Errorf("serial.read_timeout must be positive, got %s", c.Serial.ReadTimeout)
	}
	if c.HTTP.Addr == "" {
		return fmt.Errorf("http.addr is required")
	}
	if err := c.Ports.validate(); err != nil {
		return fmt.Errorf("ports: %w", err)
	}

	cc := c.Control
	if cc.Period <= 0 {
		return fmt.Errorf("control.period must be positive")
	}
	if cc.Deadband <= 0 {
		return fmt.Errorf("control.deadband must be positive, got %d", cc.Deadband)
	}
	if *cc.ClawMinDeg >= *cc.ClawMaxDeg {
		return fmt.Errorf("control.claw_min_deg (%v) must be below claw_max_deg (%v)", *cc.ClawMinDeg, *cc.ClawMaxDeg)
	}
	if cc.ClampVelocity < 1 || cc.ClampVelocity > control.MaxVelocity {
		return fmt.Errorf("control.clamp_velocity must be in 1..%d, got %d", control.MaxVelocity, cc.ClampVelocity)
	}
	if cc.ClampHold <= 0 {
		return fmt.Errorf("control.clamp_hold must be positive")
	}
	if cc.AutoGrabDistanceMM < 0 {
		return fmt.Errorf("control.autograb_distance_mm must not be negative")
	}
	if cc.ControllerTimeout <= cc.Period {
		return fmt.Errorf("control.controller_timeout (%s) must exceed control.period (%s)", cc.ControllerTimeout, cc.Period)
	}
	return nil
}

func (p PortsConfig) validate() error {
	seen := map[uint8]string{}
	for _, port := range []struct {
		name string
		num  uint8
	}{
		{"left_drive", p.LeftDrive},
		{"right_drive", p.RightDrive},
		{"claw", p.Claw},
		{"sonar", p.Sonar},
	} {
		if port.num < 1 || port.num > MaxPort {
			return fmt.Errorf("%s port %d out of range 1..%d", port.name, port.num, MaxPort)
		}
		if other, dup := seen[port.num]; dup {
			return fmt.Errorf("%s and %s both use port %d", other, port.name, port.num)
		}
		seen[port.num] = port.name
	}
	return nil
}

//Limits converts the control section for control.NewLoop
func (c *Config) Limits() control.Limits {
	return control.Limits{
		Deadband:         c.Control.Deadband,
		ClawMin:          *c.Control.ClawMinDeg,
		ClawMax:          *c.Control.ClawMaxDeg,
		ClampVelocity:    c.Control.ClampVelocity,
		ClampHold:        c.Control.ClampHold,
		AutoGrabDistance: c.Control.AutoGrabDistanceMM,
	}
}
