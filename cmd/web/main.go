package main

import (
	"context"
	_ "embed"
	"errors"
	"math/rand"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/tomz197/invaders/internal/config"
	"github.com/tomz197/invaders/internal/spectate"
)

const (
	defaultHost = "0.0.0.0"
	defaultPort = "8080"
)

//go:embed index.html
var htmlPage string

func main() {
	logger := config.NewLogger(os.Stderr, "web")

	host := config.GetEnv("WEB_HOST", defaultHost)
	port := config.GetEnv("WEB_PORT", defaultPort)
	sshHost := config.GetEnv("SSH_DISPLAY_HOST", "your-server.com")
	fps := config.GetEnvInt("SPECTATE_FPS", spectate.DefaultFPS)

	seed := int64(config.GetEnvInt("INVADERS_SEED", 0))
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	hub, err := spectate.NewHub(spectate.Options{
		FPS:    fps,
		Logger: logger,
		Rand:   rand.New(rand.NewSource(seed)),
	})
	if err != nil {
		logger.Fatal("failed to create spectator hub", "err", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := hub.Run(ctx); err != nil {
			logger.Error("spectator hub stopped", "err", err)
		}
	}()

	srv := &http.Server{
		Addr:              net.JoinHostPort(host, port),
		Handler:           newMux(sshHost, hub),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("Starting web server", "addr", "http://"+srv.Addr, "spectateFPS", fps)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server error", "err", err)
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down web server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown error", "err", err)
	}
}

// newMux serves the landing page and the spectator feed.
func newMux(sshHost string, feed http.Handler) *http.ServeMux {
	page := strings.ReplaceAll(htmlPage, "{{.SSHHost}}", sshHost)

	mux := http.NewServeMux()
	mux.Handle("/spectate", feed)
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte(page))
	})
	return mux
}
