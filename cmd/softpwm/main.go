package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"periph.io/x/conn/v3/physic"

	"softpwm"
	"softpwm/gpio"
	"softpwm/internal/config"
)

var openGPIOFn = gpio.Open

type overrides struct {
	backend string
	pin     int
	rng     int
	value   string
}

func main() {
	var configPath string
	var ov overrides
	flag.StringVar(&configPath, "config", "", "Path to YAML config (optional)")
	flag.StringVar(&ov.backend, "backend", "", "GPIO backend: gpiocdev, rpio, periph, sim")
	flag.IntVar(&ov.pin, "pin", -1, "Run a single channel on this BCM pin instead of the configured channels")
	flag.IntVar(&ov.rng, "range", 200, "Range of the -pin channel")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: %s [flags] [value]\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()
	ov.value = flag.Arg(0)

	cfg := config.Default()
	if configPath != "" {
		var err error
		cfg, err = config.Load(configPath)
		if err != nil {
			log.Fatalf("config load failed: %v", err)
		}
	}
	cfg, err := applyOverrides(cfg, ov)
	if err != nil {
		log.Fatalf("%v", err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, cfg); err != nil {
		log.Fatalf("softpwm: %v", err)
	}
}

func applyOverrides(cfg config.Config, ov overrides) (config.Config, error) {
	if ov.backend != "" {
		cfg.GPIO.Backend = ov.backend
	}
	if ov.pin >= 0 {
		cfg.Channels = []config.ChannelConfig{{Pin: ov.pin, Range: ov.rng}}
	}
	if ov.value != "" {
		v, err := strconv.Atoi(ov.value)
		if err != nil {
			return cfg, fmt.Errorf("invalid value %q: %w", ov.value, err)
		}
		for i := range cfg.Channels {
			cfg.Channels[i].Value = v
		}
	}
	if len(cfg.Channels) == 0 {
		return cfg, fmt.Errorf("no channels configured (use -pin or a config file)")
	}
	return cfg, nil
}

// run creates every configured channel and blocks until ctx is done. All
// channels are stopped, leaving their pins LOW, before it returns.
func run(ctx context.Context, cfg config.Config) error {
	dev, err := openGPIOFn(gpio.Config{
		Backend:  cfg.GPIO.Backend,
		Chip:     cfg.GPIO.Chip,
		Consumer: cfg.GPIO.Consumer,
	})
	if err != nil {
		return err
	}
	defer dev.Close()

	mgr := softpwm.New(dev, softpwm.Config{
		PulseTime:        cfg.PWM.PulseTime,
		Priority:         cfg.PWM.Priority,
		HandshakeTimeout: cfg.PWM.HandshakeTimeout,
	})
	defer mgr.Close()

	log.Printf("softpwm starting backend=%s pulse_time=%s", cfg.GPIO.Backend, cfg.PWM.PulseTime)
	for _, ch := range cfg.Channels {
		if err := mgr.Create(ch.Pin, ch.Value, ch.Range); err != nil {
			return fmt.Errorf("create pin %d: %w", ch.Pin, err)
		}
		period := mgr.Period(ch.Range)
		log.Printf("pin %d: range=%d value=%d period=%s freq=%s",
			ch.Pin, ch.Range, mgr.Value(ch.Pin), period, physic.PeriodToFrequency(period))
	}

	<-ctx.Done()
	log.Printf("softpwm stopping")
	return nil
}
