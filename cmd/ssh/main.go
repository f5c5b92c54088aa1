package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/activeterm"
	"github.com/charmbracelet/wish/logging"

	"github.com/JDLundy87/stardust-drifter/internal/config"
	"github.com/JDLundy87/stardust-drifter/internal/draw"
	"github.com/JDLundy87/stardust-drifter/internal/loop/client"
	gameconfig "github.com/JDLundy87/stardust-drifter/internal/loop/config"
)

const (
	defaultHost        = "::"
	defaultPort        = "2222"
	defaultHostKeyPath = "/app/keys/host_key"

	drainTimeout = 15 * time.Second
)

// sessionHost tracks the independent game sessions. Sessions share nothing
// but the shutdown signal.
type sessionHost struct {
	logger *log.Logger
	tuning gameconfig.Tuning

	// mu orders admit against drain so no session is added once draining
	// has started.
	mu       sync.Mutex
	draining bool
	sessions sync.WaitGroup

	// shutdown is closed to show every session the shutdown screen; stop
	// cancels whatever is still running after the drain timeout.
	shutdown chan struct{}
	stop     context.Context
}

func main() {
	if err := config.Load(); err != nil {
		fmt.Fprintf(os.Stderr, "failed to load .env: %v\n", err)
		os.Exit(1)
	}
	logger := config.NewLogger(os.Stderr, "ssh")

	host := config.GetEnv("SSH_HOST", defaultHost)
	port := config.GetEnv("SSH_PORT", defaultPort)
	hostKeyPath := config.GetEnv("SSH_HOST_KEY", defaultHostKeyPath)
	logger.Info("ssh config", "host", host, "port", port, "hostKeyPath", hostKeyPath)

	tuning := gameconfig.FromEnv()
	if err := tuning.Validate(); err != nil {
		logger.Fatal("invalid game configuration", "err", err)
	}

	stop, cancelSessions := context.WithCancel(context.Background())
	defer cancelSessions()
	h := newSessionHost(logger, tuning, stop)

	opts := []ssh.Option{
		wish.WithAddress(net.JoinHostPort(host, port)),
		wish.WithMiddleware(
			h.gameMiddleware,
			activeterm.Middleware(),
			logging.MiddlewareWithLogger(logger),
		),
		// Set TCP_NODELAY to reduce latency for game input
		ssh.WrapConn(func(ctx ssh.Context, conn net.Conn) net.Conn {
			if tcpConn, ok := conn.(*net.TCPConn); ok {
				_ = tcpConn.SetNoDelay(true)
			}
			return conn
		}),
	}
	if hostKeyPath != "" {
		opts = append(opts, wish.WithHostKeyPath(hostKeyPath))
	}

	s, err := wish.NewServer(opts...)
	if err != nil {
		logger.Fatal("failed to create server", "err", err)
	}

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	logger.Info("starting ssh server", "addr", net.JoinHostPort(host, port))
	go func() {
		if err := s.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			logger.Fatal("server error", "err", err)
		}
	}()

	<-done
	logger.Info("shutting down server")

	// Show the shutdown screen and give players a moment to leave.
	if !h.drain(drainTimeout) {
		logger.Warn("sessions still open after drain timeout, closing them")
	}
	cancelSessions()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.Shutdown(ctx); err != nil {
		logger.Error("shutdown error", "err", err)
	}
}

func newSessionHost(logger *log.Logger, tuning gameconfig.Tuning, stop context.Context) *sessionHost {
	return &sessionHost{
		logger:   logger,
		tuning:   tuning,
		shutdown: make(chan struct{}),
		stop:     stop,
	}
}

// drain signals every session to shut down and waits for them to finish.
// It reports whether all sessions ended before the timeout.
func (h *sessionHost) drain(timeout time.Duration) bool {
	h.mu.Lock()
	if !h.draining {
		h.draining = true
		close(h.shutdown)
	}
	h.mu.Unlock()

	finished := make(chan struct{})
	go func() {
		h.sessions.Wait()
		close(finished)
	}()

	select {
	case <-finished:
		return true
	case <-time.After(timeout):
		return false
	}
}

// admit registers a new session. It reports false once draining has begun.
func (h *sessionHost) admit() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.draining {
		return false
	}
	h.sessions.Add(1)
	return true
}

// gameMiddleware runs one independent game per SSH session.
func (h *sessionHost) gameMiddleware(next ssh.Handler) ssh.Handler {
	return func(sess ssh.Session) {
		pty, winCh, ok := sess.Pty()
		if !ok {
			fmt.Fprintln(sess, "Error: PTY required. Please connect with: ssh -t user@host")
			return
		}

		if !h.admit() {
			fmt.Fprintln(sess, "The server is shutting down. Please reconnect in a moment.")
			return
		}
		defer h.sessions.Done()

		logger := h.logger.With("user", sess.User())
		logger.Info("new game session", "terminal", pty.Term, "width", pty.Window.Width, "height", pty.Window.Height)

		// Create a terminal size tracker that updates on window changes
		sizeTracker := newSizeTracker(pty.Window.Width, pty.Window.Height)
		go func() {
			for win := range winCh {
				sizeTracker.update(win.Width, win.Height)
			}
		}()

		ctx, cancel := context.WithCancel(sess.Context())
		defer cancel()
		defer context.AfterFunc(h.stop, cancel)()

		c, err := client.NewClient(bufio.NewReader(sess), sess, client.ClientOptions{
			TermSizeFunc: sizeTracker.getSize,
			Username:     sess.User(),
			Tuning:       h.tuning,
			Logger:       logger,
			Shutdown:     h.shutdown,
		})
		if err != nil {
			logger.Error("create client", "err", err)
			return
		}
		if err := c.Run(ctx); err != nil {
			logger.Error("game error", "err", err)
		}

		logger.Info("session ended")
		next(sess)
	}
}

// sizeTracker tracks terminal size from SSH window change events.
type sizeTracker struct {
	mu     sync.RWMutex
	width  int
	height int
}

func newSizeTracker(width, height int) *sizeTracker {
	return &sizeTracker{width: width, height: height}
}

func (s *sizeTracker) update(width, height int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.width = width
	s.height = height
}

func (s *sizeTracker) getSize() (int, int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.width, s.height, nil
}

// Ensure sizeTracker.getSize satisfies draw.TermSizeFunc
var _ draw.TermSizeFunc = (*sizeTracker)(nil).getSize
