package server

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/labstack/echo/v4"
	"github.com/segmentio/ksuid"

	"github.com/maxHolsch/Open-Race-Blind-Charging/pkg/alias"
	"github.com/maxHolsch/Open-Race-Blind-Charging/pkg/extract"
	"github.com/maxHolsch/Open-Race-Blind-Charging/pkg/redact"
	"github.com/maxHolsch/Open-Race-Blind-Charging/pkg/table"
	"github.com/maxHolsch/Open-Race-Blind-Charging/pkg/utils"
)

var tableHeader = []string{"Info", "Role"}

const maxHistoryEntries = 50

type narrativeReq struct {
	Narrative string      `json:"narrative"`
	Rows      []table.Row `json:"rows,omitempty"`
}

type tableResponse struct {
	Header []string    `json:"header"`
	Rows   []table.Row `json:"rows"`
}

// HistoryEntry records one completed redaction run.
type HistoryEntry struct {
	ID        string `json:"id"`
	Narrative string `json:"narrative"`
	Redacted  string `json:"redacted"`
	Rows      int    `json:"rows"`
	CreatedAt string `json:"created_at"`
}

// POST /api/extract
func (s *Server) handlePostExtract(c echo.Context) error {
	var req narrativeReq
	if err := c.Bind(&req); err != nil {
		log.Warn("invalid JSON in /api/extract", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid json")
	}
	req.Narrative = strings.TrimSpace(req.Narrative)
	if req.Narrative == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "narrative is required")
	}

	pipeline := extract.NewPipeline(s.Oracle)
	pipeline.Structured = s.Structured

	tbl, err := pipeline.Extract(c.Request().Context(), req.Narrative)
	if err != nil {
		if errors.Is(err, extract.ErrNoData) {
			log.Warn("no entities extracted", "chars", len(req.Narrative))
			return c.JSON(http.StatusUnprocessableEntity, utils.ErrJSON("no entities extracted from narrative"))
		}
		log.Error("extraction failed", "error", err)
		return c.JSON(http.StatusBadGateway, utils.ErrJSON("extraction failed"))
	}

	log.Info("extraction complete", "rows", tbl.Len())
	return c.JSON(http.StatusOK, tableResponse{Header: tableHeader, Rows: tbl.Rows()})
}

// POST /api/reconcile
//
// Streams per-pair verdicts over SSE; the pairwise loop can issue
// rows × candidates oracle calls, so progress events matter here.
func (s *Server) handlePostReconcile(c echo.Context) error {
	var req narrativeReq
	if err := c.Bind(&req); err != nil {
		log.Warn("invalid JSON in /api/reconcile", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid json")
	}
	req.Narrative = strings.TrimSpace(req.Narrative)
	if req.Narrative == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "narrative is required")
	}

	tbl, err := s.requestTable(req)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, utils.ErrJSON("failed reading entity table"))
	}

	w := utils.NewSSEWriter(c)
	defer w.Close()

	reconciler := alias.NewReconciler(s.Oracle)
	reconciler.Progress = func(ev alias.Event) {
		if err := w.Event("pair", ev); err != nil {
			log.Warn("SSE write error", "error", err)
		}
	}

	out := reconciler.Reconcile(c.Request().Context(), tbl, req.Narrative)
	log.Info("reconciliation complete", "before", tbl.Len(), "after", out.Len())

	return w.Event("done", tableResponse{Header: tableHeader, Rows: out.Rows()})
}

// POST /api/redact
func (s *Server) handlePostRedact(c echo.Context) error {
	var req narrativeReq
	if err := c.Bind(&req); err != nil {
		log.Warn("invalid JSON in /api/redact", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid json")
	}
	if req.Narrative == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "narrative is required")
	}

	tbl, err := s.requestTable(req)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, utils.ErrJSON("failed reading entity table"))
	}

	rows := tbl.Rows()
	redacted := redact.Redact(req.Narrative, rows)
	deltas := redact.Diff(req.Narrative, redacted)

	entry := HistoryEntry{
		ID:        ksuid.New().String(),
		Narrative: utils.LimitStr(req.Narrative, 2048),
		Redacted:  utils.LimitStr(redacted, 2048),
		Rows:      len(rows),
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
	}
	s.History = append([]HistoryEntry{entry}, s.History...)
	if len(s.History) > maxHistoryEntries {
		s.History = s.History[:maxHistoryEntries]
	}

	log.Info("redaction complete", "rows", len(rows), "chars", len(redacted), "id", entry.ID)
	return c.JSON(http.StatusOK, map[string]any{
		"redacted": redacted,
		"deltas":   deltas,
		"entry":    entry,
	})
}

// PUT /api/narrative
func (s *Server) handlePutNarrative(c echo.Context) error {
	var req narrativeReq
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid json")
	}
	if err := table.SaveNarrative(s.NarrativePath, req.Narrative); err != nil {
		log.Error("failed saving narrative", "error", err)
		return c.JSON(http.StatusInternalServerError, utils.ErrJSON("failed saving narrative"))
	}
	return c.JSON(http.StatusOK, map[string]any{"saved": true, "chars": len(req.Narrative)})
}

// PUT /api/table
func (s *Server) handlePutTable(c echo.Context) error {
	var req narrativeReq
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid json")
	}
	tbl := table.New(req.Rows...)
	if err := table.SaveCSV(s.TablePath, tbl); err != nil {
		log.Error("failed saving entity table", "error", err)
		return c.JSON(http.StatusInternalServerError, utils.ErrJSON("failed saving entity table"))
	}
	return c.JSON(http.StatusOK, map[string]any{"saved": true, "rows": tbl.Len()})
}

// requestTable resolves the entity table for a request: rows in the body win,
// otherwise the persisted CSV is read. A read failure halts the operation;
// reconciliation and redaction never run on partially-read data.
func (s *Server) requestTable(req narrativeReq) (*table.Table, error) {
	if len(req.Rows) > 0 {
		return table.New(req.Rows...), nil
	}
	tbl, err := table.LoadCSV(s.TablePath)
	if err != nil {
		log.Error("failed reading entity table", "path", s.TablePath, "error", err)
		return nil, err
	}
	return tbl, nil
}
