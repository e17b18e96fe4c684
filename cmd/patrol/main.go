package main

import (
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/df-mc/dragonfly/server/block"
	"github.com/ethaniccc/float32-cube/cube"
	"github.com/getsentry/sentry-go"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/joho/godotenv"
	"github.com/patrol-mc/patrol/patrol"
	"github.com/patrol-mc/patrol/sim"
	"github.com/patrol-mc/patrol/tick"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	var configPath string
	cmd := &cobra.Command{
		Use:           "patrol",
		Short:         "Walks a simulated agent along a patrol route in an in-memory world",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE: func(_ *cobra.Command, _ []string) error {
			return run(configPath)
		},
	}
	cmd.Flags().StringVarP(&configPath, "config", "c", "", "path to a yaml route configuration")
	return cmd
}

func run(configPath string) error {
	_ = godotenv.Load()
	if dsn := os.Getenv("SENTRY_DSN"); dsn != "" {
		if err := sentry.Init(sentry.ClientOptions{Dsn: dsn}); err != nil {
			return err
		}
		defer sentry.Flush(2 * time.Second)
	}

	log := logrus.New()
	log.Formatter = &logrus.TextFormatter{ForceColors: true}
	log.Level = logrus.DebugLevel

	cfg := patrol.DefaultConfig()
	if configPath != "" {
		var err error
		if cfg, err = patrol.ReadConfig(configPath); err != nil {
			return err
		}
	}

	loop := tick.NewLoop(log, cfg.TickRate)
	defer loop.Close()

	w := sim.NewWorld()
	// A single-block wall across the first leg's path, so the demo shows a
	// step-up climb.
	w.SetBlock(cube.Pos{0, 0, -2}, block.Stone{})

	a := sim.NewAgent(log, w, mgl32.Vec3{0.5, 0, 0.5})
	stepHandle := loop.RunEvery(a.Step, 1)
	defer loop.Cancel(stepHandle)

	watcher := patrol.NewWatcher(log, loop, cfg)
	q, ok := watcher.HandleSpawn(patrol.Spawn{Agent: a, Kind: cfg.Match.Kind, Beneath: cfg.Match.Beneath})
	if !ok {
		return errors.New("patrol: demo spawn did not match the configured condition")
	}

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	select {
	case <-q.Done():
		log.Info("patrol: route finished")
	case <-sig:
		log.Info("patrol: interrupted, stopping route")
		<-q.Stop()
	}
	return nil
}
