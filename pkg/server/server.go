package server

import (
	"context"

	"github.com/charmbracelet/log"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/maxHolsch/Open-Race-Blind-Charging/pkg/oracle"
	"github.com/maxHolsch/Open-Race-Blind-Charging/pkg/utils"
)

const historyFile = "RedactionHistory.json"

// Server exposes the extraction/reconciliation/redaction pipeline over HTTP.
// It is the presentation-layer collaborator: the core packages only ever see
// plain narrative strings and table rows.
type Server struct {
	Echo   *echo.Echo
	Oracle oracle.Oracle
	Ctx    context.Context

	// NarrativePath and TablePath locate the persisted narrative text file
	// and the two-column entity table CSV.
	NarrativePath string
	TablePath     string

	// Structured enables strict JSON response formats on extraction calls.
	Structured bool

	History []HistoryEntry
}

func NewServer(ctx context.Context, o oracle.Oracle, narrativePath, tablePath string) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Logger())
	e.Use(middleware.CORS())

	s := &Server{
		Echo:          e,
		Oracle:        o,
		Ctx:           ctx,
		NarrativePath: narrativePath,
		TablePath:     tablePath,
	}

	s.registerRoutes()
	return s
}

func (s *Server) registerRoutes() {
	s.Echo.GET("/", s.handleGetRoot)

	api := s.Echo.Group("/api")
	api.POST("/extract", s.handlePostExtract)     // narrative -> numbered entity table
	api.POST("/reconcile", s.handlePostReconcile) // table + narrative -> SSE alias progress
	api.POST("/redact", s.handlePostRedact)       // table + narrative -> redacted text + deltas

	api.GET("/narrative", s.handleGetNarrative)
	api.PUT("/narrative", s.handlePutNarrative)
	api.GET("/table", s.handleGetTable)
	api.PUT("/table", s.handlePutTable)
}

func (s *Server) Start(addr string) error {
	log.Info("server listening", "addr", addr)
	return s.Echo.Start(addr)
}

func (s *Server) Shutdown(ctx context.Context) error {
	log.Info("shutting down server")

	saveErr := utils.Save(historyFile, s.History)
	if err := s.Echo.Shutdown(ctx); err != nil {
		return err
	}

	return saveErr
}
