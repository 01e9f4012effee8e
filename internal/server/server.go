// Package server exposes finished runs from a journal database over a
// small read-only JSON API.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/rustyeddy/backtester/internal/logger"
	"github.com/rustyeddy/backtester/journal"
)

const defaultAddr = ":9991"

// Store is the read side of a journal.
type Store interface {
	ListRuns(ctx context.Context) ([]journal.RunRecord, error)
	GetRun(ctx context.Context, runID string) (journal.RunRecord, error)
	ListTradesByRunID(ctx context.Context, runID string) ([]journal.TradeRecord, error)
	ListEquityByRunID(ctx context.Context, runID string) ([]journal.EquitySnapshot, error)
}

type Config struct {
	Addr  string
	Store Store
}

type Server struct {
	addr   string
	store  Store
	router *gin.Engine
}

func New(cfg Config) (*Server, error) {
	if cfg.Store == nil {
		return nil, errors.New("server: store is required")
	}
	if cfg.Addr == "" {
		cfg.Addr = defaultAddr
	}

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())

	s := &Server{
		addr:   cfg.Addr,
		store:  cfg.Store,
		router: router,
	}
	s.registerRoutes()
	return s, nil
}

// Handler returns the routed gin engine, mainly for tests.
func (s *Server) Handler() http.Handler { return s.router }

func (s *Server) registerRoutes() {
	s.router.GET("/healthz", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": true}) })
	api := s.router.Group("/api")
	api.GET("/runs", s.handleRunList)
	api.GET("/runs/:id", s.handleRunDetail)
	api.GET("/runs/:id/trades", s.handleRunTrades)
	api.GET("/runs/:id/equity", s.handleRunEquity)
}

// Start serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	srv := &http.Server{Addr: s.addr, Handler: s.router}
	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()
	logger.Infof("journal viewer listening on %s", s.addr)

	select {
	case <-ctx.Done():
		shCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shCtx)
		return nil
	case err := <-errCh:
		return err
	}
}

func (s *Server) handleRunList(c *gin.Context) {
	runs, err := s.store.ListRuns(c.Request.Context())
	if err != nil {
		s.fail(c, err)
		return
	}
	out := make([]runView, 0, len(runs))
	for _, r := range runs {
		out = append(out, newRunView(r))
	}
	c.JSON(http.StatusOK, gin.H{"runs": out})
}

func (s *Server) handleRunDetail(c *gin.Context) {
	run, err := s.store.GetRun(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"run": newRunView(run)})
}

func (s *Server) handleRunTrades(c *gin.Context) {
	ctx := c.Request.Context()
	runID := c.Param("id")
	if _, err := s.store.GetRun(ctx, runID); err != nil {
		s.fail(c, err)
		return
	}
	trades, err := s.store.ListTradesByRunID(ctx, runID)
	if err != nil {
		s.fail(c, err)
		return
	}
	out := make([]tradeView, 0, len(trades))
	for _, t := range trades {
		out = append(out, newTradeView(t))
	}
	c.JSON(http.StatusOK, gin.H{"run_id": runID, "trades": out})
}

func (s *Server) handleRunEquity(c *gin.Context) {
	ctx := c.Request.Context()
	runID := c.Param("id")
	if _, err := s.store.GetRun(ctx, runID); err != nil {
		s.fail(c, err)
		return
	}
	points, err := s.store.ListEquityByRunID(ctx, runID)
	if err != nil {
		s.fail(c, err)
		return
	}
	out := make([]equityView, 0, len(points))
	for _, e := range points {
		out = append(out, newEquityView(e))
	}
	c.JSON(http.StatusOK, gin.H{"run_id": runID, "equity": out})
}

func (s *Server) fail(c *gin.Context, err error) {
	if errors.Is(err, journal.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "run not found"})
		return
	}
	logger.Errorf("%s %s: %v", c.Request.Method, c.Request.URL.Path, err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
}
