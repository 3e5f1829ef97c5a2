package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/warthog618/go-gpiocdev/device/rpi"
	"gopkg.in/yaml.v3"
)

type Config struct {
	GPIO     GPIOConfig      `yaml:"gpio"`
	PWM      PWMConfig       `yaml:"pwm"`
	Channels []ChannelConfig `yaml:"channels"`
}

type GPIOConfig struct {
	// Backend is one of gpiocdev, rpio, periph, sim.
	Backend  string `yaml:"backend"`
	Chip     string `yaml:"chip"`
	Consumer string `yaml:"consumer"`
}

type PWMConfig struct {
	PulseTime time.Duration `yaml:"pulse_time"`
	// Priority is the SCHED_RR priority for workers. 0 selects the default,
	// -1 leaves workers in the normal scheduling class.
	Priority         int           `yaml:"priority"`
	HandshakeTimeout time.Duration `yaml:"handshake_timeout"`
}

type ChannelConfig struct {
	// Pin is the BCM line offset. Ignored when Name is set.
	Pin int `yaml:"pin"`
	// Name is an optional Raspberry Pi pin name such as "GPIO18" or "J8p12".
	Name  string `yaml:"name"`
	Range int    `yaml:"range"`
	Value int    `yaml:"value"`
}

const (
	DefaultBackend   = "gpiocdev"
	DefaultConsumer  = "softpwm"
	DefaultPulseTime = 100 * time.Microsecond
	DefaultPriority  = 90
	DefaultRange     = 100
)

var validBackends = []string{"gpiocdev", "rpio", "periph", "sim"}

// Default returns a config with every default applied and no channels.
func Default() Config {
	var cfg Config
	_ = applyDefaults(&cfg)
	return cfg
}

func Load(path string) (Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}

	var cfg Config
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return Config{}, err
	}
	if err := applyDefaults(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func applyDefaults(cfg *Config) error {
	cfg.GPIO.Backend = strings.ToLower(strings.TrimSpace(cfg.GPIO.Backend))
	if cfg.GPIO.Backend == "" {
		cfg.GPIO.Backend = DefaultBackend
	}
	if !contains(validBackends, cfg.GPIO.Backend) {
		return fmt.Errorf("gpio.backend must be one of %s", strings.Join(validBackends, ", "))
	}
	if cfg.GPIO.Consumer == "" {
		cfg.GPIO.Consumer = DefaultConsumer
	}

	if cfg.PWM.PulseTime < 0 {
		return fmt.Errorf("pwm.pulse_time must be > 0")
	}
	if cfg.PWM.PulseTime == 0 {
		cfg.PWM.PulseTime = DefaultPulseTime
	}
	if cfg.PWM.Priority < -1 {
		return fmt.Errorf("pwm.priority must be >= -1")
	}
	if cfg.PWM.Priority == 0 {
		cfg.PWM.Priority = DefaultPriority
	}
	if cfg.PWM.HandshakeTimeout <= 0 {
		cfg.PWM.HandshakeTimeout = 1 * time.Second
	}

	seen := make(map[int]bool, len(cfg.Channels))
	for i := range cfg.Channels {
		ch := &cfg.Channels[i]
		if name := strings.TrimSpace(ch.Name); name != "" {
			pin, err := rpi.Pin(name)
			if err != nil {
				return fmt.Errorf("channels[%d].name %q: %w", i, name, err)
			}
			ch.Pin = pin
		}
		if ch.Pin < 0 {
			return fmt.Errorf("channels[%d].pin must be >= 0", i)
		}
		if seen[ch.Pin] {
			return fmt.Errorf("channels[%d].pin %d is used by another channel", i, ch.Pin)
		}
		seen[ch.Pin] = true
		if ch.Range < 0 {
			return fmt.Errorf("channels[%d].range must be > 0", i)
		}
		if ch.Range == 0 {
			ch.Range = DefaultRange
		}
	}
	return nil
}

func contains(xs []string, s string) bool {
	for _, x := range xs {
		if x == s {
			return true
		}
	}
	return false
}
