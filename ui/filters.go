package ui

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/temurag74-ship-it/CA-AirBoard-Dashboard/domain/program"
	"github.com/temurag74-ship-it/CA-AirBoard-Dashboard/internal/errors"
)

const queryDateLayout = "2006-01-02"

// filterParams are the query keys that carry filter selections. Categorical
// keys repeat for multi-select (?program=A&program=B).
var filterParams = []string{
	"from", "to",
	"program", "equipment_type", "old_make", "new_make",
	"min_amount", "max_amount",
}

// parseFilterState builds a FilterState from request query params. The
// second return reports whether any filter param was present at all, so
// exports can fall back to the session's stored state. Malformed values are
// filter-state errors: the interaction is rejected with a 400, nothing
// crashes and the session state stays untouched.
func parseFilterState(c *gin.Context) (program.FilterState, bool, error) {
	state := program.FilterState{
		Programs:       c.QueryArray("program"),
		EquipmentTypes: c.QueryArray("equipment_type"),
		OldMakes:       c.QueryArray("old_make"),
		NewMakes:       c.QueryArray("new_make"),
	}

	if v := c.Query("from"); v != "" {
		t, err := time.Parse(queryDateLayout, v)
		if err != nil {
			return state, true, errors.FilterState("invalid 'from' date: " + v)
		}
		state.From = &t
	}
	if v := c.Query("to"); v != "" {
		t, err := time.Parse(queryDateLayout, v)
		if err != nil {
			return state, true, errors.FilterState("invalid 'to' date: " + v)
		}
		state.To = &t
	}

	if v := c.Query("min_amount"); v != "" {
		amt, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return state, true, errors.FilterState("invalid 'min_amount': " + v)
		}
		state.MinAmount = &amt
	}
	if v := c.Query("max_amount"); v != "" {
		amt, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return state, true, errors.FilterState("invalid 'max_amount': " + v)
		}
		state.MaxAmount = &amt
	}

	query := c.Request.URL.Query()
	hasParams := false
	for _, key := range filterParams {
		if _, ok := query[key]; ok {
			hasParams = true
			break
		}
	}

	return state.Normalize(), hasParams, nil
}
