package ui

import (
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/temurag74-ship-it/CA-AirBoard-Dashboard/adapters/export"
	"github.com/temurag74-ship-it/CA-AirBoard-Dashboard/domain/program"
	"github.com/temurag74-ship-it/CA-AirBoard-Dashboard/internal/errors"
)

const (
	defaultRecordLimit = 500
	maxRecordLimit     = 5000
)

// handleIndex renders the dashboard page. Charts are drawn client-side
// from the /api/summary payload.
func (s *Server) handleIndex(c *gin.Context) {
	s.renderTemplate(c, "index.html", gin.H{
		"Title": "Air Board Program Summary Dashboard",
	})
}

// handleHealth reports the data store status.
func (s *Server) handleHealth(c *gin.Context) {
	loaded, rows, loadedAt := s.store.Status()
	payload := gin.H{
		"status": "loading",
		"rows":   rows,
	}
	if loaded {
		payload["status"] = "loaded"
		payload["loaded_at"] = loadedAt.Format("2006-01-02 15:04:05")
	}
	c.JSON(http.StatusOK, payload)
}

// handleOptions returns the sidebar inventory: distinct categorical values
// plus date and amount ranges over the full (unfiltered) table.
func (s *Server) handleOptions(c *gin.Context) {
	table, ok := s.table(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, program.Facets(table))
}

// handleSummary runs one filter-then-aggregate pass for the request's
// FilterState, stores the state on the session, and returns the KPI and
// chart payloads. An empty filtered subset is a normal response with zero
// KPIs and empty chart arrays.
func (s *Server) handleSummary(c *gin.Context) {
	table, ok := s.table(c)
	if !ok {
		return
	}

	state, _, err := parseFilterState(c)
	if err != nil {
		s.clientError(c, err)
		return
	}
	s.sessions.SetState(s.sessionID(c), state)

	filtered := program.Apply(table, state)
	c.JSON(http.StatusOK, gin.H{
		"row_count":         len(filtered),
		"kpis":              program.KPIs(filtered),
		"by_year":           program.ByYear(filtered),
		"by_equipment_type": program.ByEquipmentType(filtered),
		"top_new_makes":     program.TopNewEquipmentMakes(filtered, s.cfg.Data.TopNMakes),
		"by_program":        program.IncentiveDistributionByProgram(filtered),
	})
}

// handleRecords returns the filtered rows for the data table view.
func (s *Server) handleRecords(c *gin.Context) {
	table, ok := s.table(c)
	if !ok {
		return
	}

	state, _, err := parseFilterState(c)
	if err != nil {
		s.clientError(c, err)
		return
	}
	s.sessions.SetState(s.sessionID(c), state)

	filtered := program.Apply(table, state)

	limit := defaultRecordLimit
	if v := c.Query("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			limit = n
			if limit > maxRecordLimit {
				limit = maxRecordLimit
			}
		}
	}
	rows := filtered
	if len(rows) > limit {
		rows = rows[:limit]
	}

	c.JSON(http.StatusOK, gin.H{
		"columns": program.Columns,
		"rows":    rows,
		"total":   len(filtered),
	})
}

// handleExportCSV streams the filtered subset as CSV.
func (s *Server) handleExportCSV(c *gin.Context) {
	filtered, ok := s.filteredForExport(c)
	if !ok {
		return
	}

	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", `attachment; filename="`+export.CSVFilename+`"`)
	if err := export.WriteCSV(c.Writer, filtered); err != nil {
		// Headers are already on the wire; in-memory state is unaffected.
		log.Printf("[Export] CSV export failed: %v", err)
	}
}

// handleExportXLSX streams the filtered subset as a single-sheet workbook.
func (s *Server) handleExportXLSX(c *gin.Context) {
	filtered, ok := s.filteredForExport(c)
	if !ok {
		return
	}

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", `attachment; filename="`+export.XLSXFilename+`"`)
	if err := export.WriteXLSX(c.Writer, filtered); err != nil {
		log.Printf("[Export] XLSX export failed: %v", err)
	}
}

// filteredForExport resolves the subset an export should carry: explicit
// query params win, otherwise the session's last stored FilterState, so
// the download buttons reflect whatever the dashboard currently shows.
func (s *Server) filteredForExport(c *gin.Context) (program.Table, bool) {
	table, ok := s.table(c)
	if !ok {
		return nil, false
	}

	state, hasParams, err := parseFilterState(c)
	if err != nil {
		s.clientError(c, err)
		return nil, false
	}
	if !hasParams {
		state = s.sessions.State(s.sessionID(c))
	}

	return program.Apply(table, state), true
}

// table fetches the shared table, answering 503 while the source is
// unavailable.
func (s *Server) table(c *gin.Context) (program.Table, bool) {
	table, err := s.store.Table(c.Request.Context())
	if err != nil {
		log.Printf("[table] Data source unavailable: %v", err)
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"error": err.Error(),
			"code":  errors.GetCode(err),
		})
		return nil, false
	}
	return table, true
}

func (s *Server) clientError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{
		"error": err.Error(),
		"code":  errors.GetCode(err),
	})
}
