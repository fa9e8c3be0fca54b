package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"hash/fnv"
	"math/rand"
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
	"github.com/tomz197/invaders/internal/config"
	"github.com/tomz197/invaders/internal/draw"
	"github.com/tomz197/invaders/internal/loop"
	lconfig "github.com/tomz197/invaders/internal/loop/config"
)

const (
	defaultHost        = "::"
	defaultPort        = "2222"
	defaultHostKeyPath = "/app/keys/host_key"
)

func main() {
	logger := config.NewLogger(os.Stderr, "ssh")

	host := config.GetEnv("SSH_HOST", defaultHost)
	port := config.GetEnv("SSH_PORT", defaultPort)
	hostKeyPath := config.GetEnv("SSH_HOST_KEY", defaultHostKeyPath)
	sessionOpts := sessionOptions()
	logger.Info("SSH config", "host", host, "port", port, "hostKeyPath", hostKeyPath,
		"idleWarn", sessionOpts.InactivityWarn, "idleDisconnect", sessionOpts.InactivityDisconnect)

	// Cancelled on SIGTERM; running games show the shutdown notice and exit.
	shutdownCtx, startShutdown := context.WithCancel(context.Background())
	defer startShutdown()

	games := &sessionGroup{}
	opts := []ssh.Option{
		wish.WithAddress(net.JoinHostPort(host, port)),
		wish.WithMiddleware(
			gameMiddleware(shutdownCtx, games, sessionOpts, logger),
			activeterm.Middleware(),
			logging.StructuredMiddlewareWithLogger(logger, log.InfoLevel),
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

	logger.Info("Starting SSH server", "addr", net.JoinHostPort(host, port))
	go func() {
		if err := s.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			logger.Fatal("server error", "err", err)
		}
	}()

	<-done
	logger.Info("Shutting down server...", "sessions", games.count())

	// Notify players and give them the shutdown screen before closing connections.
	startShutdown()
	if !games.wait(lconfig.ShutdownDisplaySeconds*time.Second + 10*time.Second) {
		logger.Warn("sessions still running after shutdown notice", "sessions", games.count())
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := s.Shutdown(ctx); err != nil {
		logger.Fatal("shutdown error", "err", err)
	}
}

// sessionOptions reads the server-wide game options from the environment.
func sessionOptions() loop.Options {
	return loop.Options{
		InactivityWarn:       config.GetEnvDuration("INACTIVITY_WARN", lconfig.InactivityWarnUser),
		InactivityDisconnect: config.GetEnvDuration("INACTIVITY_DISCONNECT", lconfig.InactivityDisconnectUser),
	}
}

// gameMiddleware runs an independent game for every SSH session.
// base carries the server-wide options; terminal, logger and seed are per session.
func gameMiddleware(shutdownCtx context.Context, games *sessionGroup, base loop.Options, logger *log.Logger) wish.Middleware {
	return func(next ssh.Handler) ssh.Handler {
		return func(sess ssh.Session) {
			pty, winCh, ok := sess.Pty()
			if !ok {
				fmt.Fprintln(sess, "Error: PTY required. Please connect with: ssh -t user@host")
				return
			}

			games.add()
			defer games.done()

			sessLogger := logger.With("user", sess.User(), "remote", sess.RemoteAddr().String())
			sessLogger.Info("New game session", "terminal", pty.Term, "width", pty.Window.Width, "height", pty.Window.Height)

			// Create a terminal size tracker that updates on window changes
			sizeTracker := newSizeTracker(pty.Window.Width, pty.Window.Height)

			// Listen for window size changes in a goroutine
			go func() {
				for win := range winCh {
					sizeTracker.update(win.Width, win.Height)
				}
			}()

			reader := bufio.NewReader(sess)
			opts := base
			opts.TermSizeFunc = sizeTracker.getSize
			opts.Logger = sessLogger
			opts.Rand = rand.New(rand.NewSource(sessionSeed(sess)))

			err := loop.Run(shutdownCtx, reader, sess, opts)
			if err != nil {
				sessLogger.Error("Game error", "err", err)
			}

			sessLogger.Info("Session ended")
			next(sess)
		}
	}
}

// sessionSeed mixes the clock with the remote address so simultaneous sessions differ.
func sessionSeed(sess ssh.Session) int64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(sess.RemoteAddr().String()))
	return time.Now().UnixNano() ^ int64(h.Sum64())
}

// sessionGroup counts running games so shutdown can wait for them.
type sessionGroup struct {
	mu     sync.Mutex
	active int
	wg     sync.WaitGroup
}

func (g *sessionGroup) add() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.active++
	g.wg.Add(1)
}

func (g *sessionGroup) done() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.active--
	g.wg.Done()
}

func (g *sessionGroup) count() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.active
}

// wait blocks until every game has ended or the timeout passes.
func (g *sessionGroup) wait(timeout time.Duration) bool {
	ch := make(chan struct{})
	go func() {
		g.wg.Wait()
		close(ch)
	}()
	select {
	case <-ch:
		return true
	case <-time.After(timeout):
		return false
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
