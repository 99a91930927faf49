package server

import (
	"errors"
	"io/fs"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/maxHolsch/Open-Race-Blind-Charging/pkg/table"
	"github.com/maxHolsch/Open-Race-Blind-Charging/pkg/utils"
)

func (s *Server) handleGetRoot(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"service": "Race-Blind Charging API",
		"status":  "ok",
	})
}

// GET /api/narrative
func (s *Server) handleGetNarrative(c echo.Context) error {
	narrative, err := table.LoadNarrative(s.NarrativePath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return echo.NewHTTPError(http.StatusNotFound, "narrative not found")
		}
		return c.JSON(http.StatusInternalServerError, utils.ErrJSON("failed reading narrative"))
	}
	return c.JSON(http.StatusOK, map[string]string{"narrative": narrative})
}

// GET /api/table
func (s *Server) handleGetTable(c echo.Context) error {
	tbl, err := table.LoadCSV(s.TablePath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return echo.NewHTTPError(http.StatusNotFound, "entity table not found")
		}
		return c.JSON(http.StatusInternalServerError, utils.ErrJSON("failed reading entity table"))
	}
	return c.JSON(http.StatusOK, tableResponse{Header: tableHeader, Rows: tbl.Rows()})
}
