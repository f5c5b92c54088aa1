package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/term"

	"github.com/JDLundy87/stardust-drifter/internal/config"
	"github.com/JDLundy87/stardust-drifter/internal/loop/client"
	gameconfig "github.com/JDLundy87/stardust-drifter/internal/loop/config"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}

// run plays one local game. Every failure is returned so main can report it
// on stderr after the terminal has been restored.
func run() error {
	if err := config.Load(); err != nil {
		return fmt.Errorf("load .env: %w", err)
	}

	// The terminal belongs to the game, so logs only go to a file when asked.
	var logOut io.Writer = io.Discard
	if path := config.GetEnv("STARDUST_LOG_FILE", ""); path != "" {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		defer f.Close()
		logOut = f
	}
	logger := config.NewLogger(logOut, "game")

	tuning := gameconfig.FromEnv()
	if err := tuning.Validate(); err != nil {
		return err
	}

	fd := int(os.Stdin.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return fmt.Errorf("enable raw mode: %w", err)
	}
	defer func() {
		_ = term.Restore(fd, oldState)
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	c, err := client.NewClient(bufio.NewReader(os.Stdin), os.Stdout, client.ClientOptions{
		Tuning: tuning,
		Logger: logger,
	})
	if err != nil {
		logger.Error("create client", "err", err)
		return fmt.Errorf("create client: %w", err)
	}
	if err := c.Run(ctx); err != nil {
		logger.Error("game error", "err", err)
		return fmt.Errorf("game: %w", err)
	}
	return nil
}
