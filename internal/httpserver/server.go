package httpserver

import (
	"context"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

const (
	readHeaderTimeout = 5 * time.Second
	idleTimeout       = 2 * time.Minute
	readyPingTimeout  = time.Second
)

// Server serves the storefront pages and commands.
type Server struct {
	httpServer *http.Server
	logger     *log.Logger
}

// New builds the storefront router and binds it to addr.
func New(addr string, logger *log.Logger, deps Deps) (*Server, error) {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	router, err := buildRouter(logger, deps)
	if err != nil {
		return nil, err
	}

	return &Server{
		httpServer: &http.Server{
			Addr:              addr,
			Handler:           router,
			ReadHeaderTimeout: readHeaderTimeout,
			IdleTimeout:       idleTimeout,
			ErrorLog:          logger,
		},
		logger: logger,
	}, nil
}

// ListenAndServe blocks until the listener fails or Shutdown is called.
func (s *Server) ListenAndServe() error {
	return s.httpServer.ListenAndServe()
}

// Shutdown stops accepting visitors and waits for in-flight commands.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

func healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// readyHandler reports whether carts can be persisted right now.
func readyHandler(slots pinger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if slots == nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "reason": "slot store not configured"})
			return
		}
		ctx, cancel := context.WithTimeout(c.Request.Context(), readyPingTimeout)
		defer cancel()
		if err := slots.Ping(ctx); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "reason": "slot store not reachable", "error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	}
}
