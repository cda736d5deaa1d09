package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"alpr_gateway/internal/repository"
	"alpr_gateway/internal/service"

	"github.com/gin-gonic/gin"
)

// RecordRequest is a detection reported by the recognition engine.
type RecordRequest struct {
	Plate     string `json:"plate" binding:"required" example:"A123BC77"`
	Point     string `json:"point" example:"Gate"`
	Direction string `json:"direction,omitempty" example:"IN"`
	// Unix seconds; the gateway clock is used when omitted.
	Timestamp int64 `json:"ts,omitempty" example:"1714564800"`
}

// DedupeRequest selects the window a manual dedupe run cleans.
type DedupeRequest struct {
	// Point without direction; empty means every point.
	Point string `json:"point" example:"Gate"`
	Since string `json:"since" binding:"required" example:"2024-05-01 08:00:00"`
	// Defaults to now.
	Until string `json:"until,omitempty" example:"2024-05-01 09:00:00"`
}

// queryInt reads an integer query parameter; missing or malformed values give def.
func queryInt(c *gin.Context, key string, def int) int {
	v, err := strconv.Atoi(strings.TrimSpace(c.Query(key)))
	if err != nil {
		return def
	}
	return v
}

// @Summary      Detection history
// @Description  Newest first. Date-only bounds cover the whole day. limit is clamped to [1, 200].
// @Tags         history
// @Produce      json
// @Param        search  query   string  false  "Plate substring"
// @Param        from    query   string  false  "Lower bound ('YYYY-MM-DD', 'YYYY-MM-DD HH:MM:SS', 'YYYY-MM-DDTHH:MM' or RFC3339)"  example(2024-05-01)
// @Param        to      query   string  false  "Upper bound, inclusive"  example(2024-05-31)
// @Param        limit   query   int     false  "Page size"  default(50)
// @Param        offset  query   int     false  "Rows to skip"  default(0)
// @Success      200  {object}  models.HistoryPage
// @Failure      400  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/history [get]
func (h *Handler) getHistory(c *gin.Context) {
	q := service.HistoryQuery{
		Search: c.Query("search"),
		From:   c.Query("from"),
		To:     c.Query("to"),
		Limit:  queryInt(c, "limit", service.DefaultHistoryLimit),
		Offset: queryInt(c, "offset", 0),
	}
	page, err := h.services.History.Query(c.Request.Context(), q)
	if err != nil {
		h.respondServiceError(c, "history_query_failed", err, "search", q.Search, "from", q.From, "to", q.To)
		return
	}
	c.JSON(http.StatusOK, page)
}

// @Summary      Record a detection
// @Description  Normalizes the plate and completes a missing region from the people registry. A repeat within the repeat interval is acknowledged but not stored.
// @Tags         history
// @Accept       json
// @Produce      json
// @Param        body  body   RecordRequest  true  "Detection"
// @Success      201   {object}  map[string]interface{}  "status, event"
// @Success      200   {object}  map[string]interface{}  "status=skipped, event"
// @Failure      400   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /api/history [post]
func (h *Handler) recordDetection(c *gin.Context) {
	var req RecordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidBodyPref + err.Error()})
		return
	}
	p := service.RecordParams{Plate: req.Plate, Point: req.Point, Direction: req.Direction}
	if req.Timestamp > 0 {
		p.At = time.Unix(req.Timestamp, 0)
	}

	res, err := h.services.History.Record(c.Request.Context(), p)
	if err != nil {
		h.respondServiceError(c, "history_record_failed", err, "plate", req.Plate, "point", req.Point)
		return
	}
	if res.Skipped {
		c.JSON(http.StatusOK, gin.H{"status": "skipped", "event": res.Event})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"status": statusOK, "event": res.Event})
}

// @Summary      Remove duplicate detections
// @Description  Within [since, until] keeps only the earliest row of each plate/point pair.
// @Tags         history
// @Accept       json
// @Produce      json
// @Param        body  body   DedupeRequest  true  "Window"
// @Success      200   {object}  map[string]interface{}  "status, removed"
// @Failure      400   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /api/history/dedupe [post]
func (h *Handler) dedupeHistory(c *gin.Context) {
	var req DedupeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidBodyPref + err.Error()})
		return
	}
	since, err := parseBodyTime(req.Since)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	var until time.Time
	if req.Until != "" {
		if until, err = parseBodyTime(req.Until); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}

	n, err := h.services.History.Dedupe(c.Request.Context(), service.DedupeParams{Point: req.Point, Since: since, Until: until})
	if err != nil {
		h.respondServiceError(c, "history_dedupe_failed", err, "point", req.Point)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": statusOK, "removed": n})
}

// parseBodyTime accepts the stored layout in gateway local time or RFC3339.
func parseBodyTime(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.ParseInLocation(repository.TimestampLayout, s, time.Local); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("invalid time %q, expected 'YYYY-MM-DD HH:MM:SS' or RFC3339", s)
}
