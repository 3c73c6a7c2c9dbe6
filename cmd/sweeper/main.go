package main

import (
	"flag"
	"fmt"
	"hash/maphash"
	"io"
	"log/slog"
	"math/rand/v2"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/snowzach/rotatefilehook"

	"github.com/vancomm/sweeper/internal/config"
	"github.com/vancomm/sweeper/internal/mines"
)

var log = logrus.New()

var (
	logPath string
	seed    uint64
)

func init() {
	flag.StringVar(&logPath, "log", "sweeper.log", "log file path")
	flag.Uint64Var(&seed, "seed", 0, "mine placement seed, 0 picks one at random")
}

// setupLogging keeps the terminal clean: everything goes to a rotated file.
func setupLogging() error {
	level := logrus.InfoLevel
	if config.Development() {
		level = logrus.DebugLevel
	}
	log.SetLevel(level)
	log.SetOutput(io.Discard)

	hook, err := rotatefilehook.NewRotateFileHook(rotatefilehook.RotateFileConfig{
		Filename:   logPath,
		MaxSize:    5, // megabytes
		MaxBackups: 3,
		MaxAge:     28, // days
		Level:      level,
		Formatter:  &logrus.TextFormatter{DisableColors: true},
	})
	if err != nil {
		return fmt.Errorf("unable to open log file: %w", err)
	}
	log.AddHook(hook)
	return nil
}

func main() {
	flag.Parse()

	if err := setupLogging(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	engineLog := log.WriterLevel(logrus.DebugLevel)
	defer engineLog.Close()
	mines.Log = slog.New(slog.NewTextHandler(engineLog, &slog.HandlerOptions{Level: slog.LevelDebug}))

	defaults, err := config.NewGame()
	if err != nil {
		log.Fatal(err)
	}
	if seed == 0 {
		seed = defaults.Seed
	}
	if seed == 0 {
		seed = new(maphash.Hash).Sum64()
	}
	log.WithFields(logrus.Fields{
		"seed":     seed,
		"defaults": fmt.Sprintf("%dx%d/%d", defaults.Width, defaults.Height, defaults.MineCount),
	}).Info("starting up")

	c := newClient(os.Stdout, rand.New(rand.NewPCG(seed, seed)))
	c.handle(fmt.Sprintf("n %d %d %d", defaults.Width, defaults.Height, defaults.MineCount))
	if err := c.run(os.Stdin); err != nil {
		log.Error("input failed: ", err)
		os.Exit(1)
	}
}
