package main

import (
	_ "embed"
	"fmt"
	"html/template"
	"net"
	"net/http"
	"os"
	"time"

	"github.com/charmbracelet/log"

	"github.com/JDLundy87/stardust-drifter/internal/config"
	gameconfig "github.com/JDLundy87/stardust-drifter/internal/loop/config"
)

const (
	defaultHost = "0.0.0.0"
	defaultPort = "8080"
)

//go:embed index.html
var pageSource string

var page = template.Must(template.New("index").Parse(pageSource))

// landing holds what the page shows about the SSH server.
type landing struct {
	SSHHost        string
	SSHPort        string
	StarReward     int
	BaseScore      int
	CometLevel     int
	TransitionSecs float64
}

func newLanding(sshHost, sshPort string, tuning gameconfig.Tuning) landing {
	return landing{
		SSHHost:        sshHost,
		SSHPort:        sshPort,
		StarReward:     tuning.StarReward,
		BaseScore:      tuning.BaseScoreThreshold,
		CometLevel:     tuning.CometStartLevel,
		TransitionSecs: tuning.LevelTransitionDelay.Seconds(),
	}
}

func handler(data landing, logger *log.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := page.Execute(w, data); err != nil {
			logger.Error("render page", "err", err)
		}
	})
}

func main() {
	if err := config.Load(); err != nil {
		fmt.Fprintf(os.Stderr, "failed to load .env: %v\n", err)
		os.Exit(1)
	}
	logger := config.NewLogger(os.Stderr, "web")

	host := config.GetEnv("WEB_HOST", defaultHost)
	port := config.GetEnv("WEB_PORT", defaultPort)
	data := newLanding(
		config.GetEnv("SSH_DISPLAY_HOST", "your-server.com"),
		config.GetEnv("SSH_PORT", "2222"),
		gameconfig.FromEnv(),
	)

	srv := &http.Server{
		Addr:              net.JoinHostPort(host, port),
		Handler:           handler(data, logger),
		ReadHeaderTimeout: 5 * time.Second,
	}
	logger.Info("starting web server", "addr", srv.Addr)
	if err := srv.ListenAndServe(); err != nil {
		logger.Fatal("server error", "err", err)
	}
}
