// Command yakio-monitor prints the telemetry a micro:bit running the yakio
// firmware sends over its USB serial port.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"yakio/host/config"
	"yakio/host/monitor"
	"yakio/host/serial"
)

var (
	configPath = flag.String("config", "", "JSON configuration file")
	device     = flag.String("device", config.DefaultDevice, "Serial device path")
	baud       = flag.Int("baud", serial.DefaultBaud, "Baud rate")
	timeout    = flag.Int("timeout", config.DefaultReadTimeoutMs, "Read timeout in milliseconds")
	quiet      = flag.Bool("quiet", false, "Do not print heartbeats")
	raw        = flag.Bool("raw", false, "Print LED frames as hex instead of a grid")
	replay     = flag.String("replay", "", "Decode a captured byte stream instead of a device")
)

func main() {
	flag.Parse()

	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	var port serial.Port
	if *replay != "" {
		port, err = monitor.OpenReplay(*replay)
	} else {
		fmt.Fprintf(os.Stderr, "Connecting to %s at %d baud...\n", cfg.Device, cfg.Baud)
		port, err = serial.Open(cfg.Serial())
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	mon := monitor.New(port, os.Stdout, monitor.Options{
		Render:    cfg.Render(),
		Quiet:     cfg.Quiet,
		StopOnEOF: *replay != "",
		Errors:    os.Stderr,
	})

	if err := run(mon); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	s := mon.Stats()
	fmt.Fprintf(os.Stderr, "frames=%d messages=%d lost=%d resyncs=%d errors=%d\n",
		s.Frames, s.Messages, s.Lost, s.Resyncs, s.Errors)
}

// run reads until the port fails, the replay ends or the user interrupts
func run(mon *monitor.Monitor) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	finished := make(chan struct{})

	g.Go(func() error {
		defer close(finished)
		return mon.Run(ctx)
	})

	// Closing the port is the only way to unblock a pending read.
	g.Go(func() error {
		select {
		case <-ctx.Done():
		case <-finished:
		}
		return mon.Close()
	})

	return g.Wait()
}

// loadConfig merges the optional file with the flags the user set
func loadConfig() (*config.Config, error) {
	cfg := config.Default()
	if *configPath != "" {
		var err error
		if cfg, err = config.LoadFile(*configPath); err != nil {
			return nil, err
		}
	}

	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "device":
			cfg.Device = *device
		case "baud":
			cfg.Baud = *baud
		case "timeout":
			cfg.ReadTimeoutMs = *timeout
		case "quiet":
			cfg.Quiet = *quiet
		case "raw":
			render := !*raw
			cfg.RenderFrames = &render
		}
	})
	return cfg, nil
}
