package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"cadr/internal/service"

	"github.com/gin-gonic/gin"
)

const (
	errFromInvalid  = "invalid 'from' time; use RFC3339 or YYYY-MM-DD"
	errToInvalid    = "invalid 'to' time; use RFC3339 or YYYY-MM-DD"
	errLimitInvalid = "invalid 'limit'; use a non-negative integer"

	layoutDateTime = "2006-01-02 15:04:05"
	layoutDate     = "2006-01-02"
)

// isDateOnly reports whether the query string represents a date without time component.
func isDateOnly(s string) bool {
	return !strings.ContainsAny(s, "T ")
}

// logFilter reads from, to, type and limit from the query string. It
// writes a 400 and returns false on a malformed value.
func logFilter(c *gin.Context) (service.LogFilter, bool) {
	f := service.LogFilter{
		Type:        c.Query("type"),
		RunID:       c.Query("run_id"),
		RecordingID: c.Query("recording_id"),
	}
	var err error
	if qs := c.Query("from"); qs != "" {
		if f.From, err = parseQueryTime(qs); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": errFromInvalid})
			return f, false
		}
	}
	if qs := c.Query("to"); qs != "" {
		if f.To, err = parseQueryTime(qs); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": errToInvalid})
			return f, false
		}
		// date-only 'to' covers the whole day
		if isDateOnly(qs) {
			f.To = f.To.Add(24*time.Hour - time.Nanosecond).UTC()
		}
	}
	if qs := c.Query("limit"); qs != "" {
		if f.Limit, err = strconv.Atoi(qs); err != nil || f.Limit < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": errLimitInvalid})
			return f, false
		}
	}
	return f, true
}

func (h *Handler) writeEvents(c *gin.Context, f service.LogFilter) {
	events, err := h.services.EventLog.List(c.Request.Context(), f)
	if err != nil {
		h.fail(c, "logs_list_failed", err,
			"from", f.From, "to", f.To, "type", f.Type,
			"run_id", f.RunID, "recording_id", f.RecordingID)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"count":  len(events),
		"events": events,
	})
}

// @Summary      List logs
// @Description  Filter the audit log by date (RFC3339, 'YYYY-MM-DD HH:MM:SS', or 'YYYY-MM-DD'), event type, run or recording. If 'to' is date-only, it is treated as end-of-day inclusive.
// @Tags         logs
// @Produce      json
// @Param        from          query   string  false  "Start of range"  example(2025-08-01)
// @Param        to            query   string  false  "End of range. Date-only treated as end of day."  example(2025-08-31)
// @Param        type          query   string  false  "Event type"  Enums(ANALYSIS,RECORDING_START,RECORDING_STOP,ERROR)
// @Param        run_id        query   string  false  "Only events of this run"
// @Param        recording_id  query   string  false  "Only events of this recording"
// @Param        limit         query   int     false  "Maximum number of events (default and cap 1000)"
// @Success      200   {object}  map[string]interface{}  "count, events"
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /api/v1/logs [get]
// @Security     BearerAuth
func (h *Handler) getLogs(c *gin.Context) {
	f, ok := logFilter(c)
	if !ok {
		return
	}
	h.writeEvents(c, f)
}

// @Summary      Run events
// @Description  Audit entries linked to a stored run.
// @Tags         runs
// @Produce      json
// @Param        id     path   string  true   "Run ID"
// @Param        type   query  string  false  "Event type"
// @Param        limit  query  int     false  "Maximum number of events"
// @Success      200  {object}  map[string]interface{}  "count, events"
// @Failure      400  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /api/v1/runs/{id}/events [get]
// @Security     BearerAuth
func (h *Handler) runEvents(c *gin.Context) {
	id := c.Param("id")
	if _, err := h.services.Analysis.GetRun(c.Request.Context(), id); err != nil {
		h.fail(c, "run_get_failed", err, "run_id", id)
		return
	}
	f, ok := logFilter(c)
	if !ok {
		return
	}
	f.RunID = id
	h.writeEvents(c, f)
}

// @Summary      Recording events
// @Description  Audit entries linked to a recording: start, stop and any analyses of it.
// @Tags         recordings
// @Produce      json
// @Param        id     path   string  true   "Recording ID"
// @Param        type   query  string  false  "Event type"
// @Param        limit  query  int     false  "Maximum number of events"
// @Success      200  {object}  map[string]interface{}  "count, events"
// @Failure      400  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /api/v1/recordings/{id}/events [get]
// @Security     BearerAuth
func (h *Handler) recordingEvents(c *gin.Context) {
	id := c.Param("id")
	if _, err := h.services.Chamber.Recording(c.Request.Context(), id); err != nil {
		h.fail(c, "recording_get_failed", err, "recording_id", id)
		return
	}
	f, ok := logFilter(c)
	if !ok {
		return
	}
	f.RecordingID = id
	h.writeEvents(c, f)
}

func parseQueryTime(s string) (time.Time, error) {
	for _, layout := range []string{time.RFC3339, layoutDateTime, layoutDate} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf(
		"invalid time format %q, expected one of: "+
			"RFC3339 (e.g. 2025-08-27T15:04:05Z), "+
			"'YYYY-MM-DD HH:MM:SS', "+
			"'YYYY-MM-DD'",
		s,
	)
}
