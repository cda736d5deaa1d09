package handlers

import (
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// @Summary      Health check
// @Tags         system
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /health [get]
func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": statusOK,
	})
}

// @Summary      Upstream status
// @Description  Last MQTT broker and CPAI server probe: "OK", "unreachable" or "unknown" before the first probe.
// @Tags         system
// @Produce      json
// @Success      200  {object}  models.GatewayStatus
// @Failure      500  {object}  map[string]string
// @Router       /api/status [get]
func (h *Handler) getStatus(c *gin.Context) {
	st, err := h.services.Status.GetStatus(c.Request.Context())
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, errInternal, "status_get_failed", err)
		return
	}
	c.JSON(http.StatusOK, st)
}

// @Summary      Operator log
// @Description  Recent log lines, oldest first. Debug lines are hidden unless debug=true.
// @Tags         system
// @Produce      json
// @Param        debug  query   bool  false  "Include debug lines"
// @Success      200  {object}  map[string][]string  "log"
// @Router       /api/log [get]
func (h *Handler) getLog(c *gin.Context) {
	showDebug, _ := strconv.ParseBool(c.DefaultQuery("debug", "false"))
	c.JSON(http.StatusOK, gin.H{"log": h.services.Logs.Lines(showDebug)})
}

// @Summary      Get settings
// @Tags         settings
// @Produce      json
// @Success      200  {object}  models.Settings
// @Failure      500  {object}  map[string]string
// @Router       /api/settings [get]
func (h *Handler) getSettings(c *gin.Context) {
	st, err := h.services.Settings.Get(c.Request.Context())
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, errInternal, "settings_get_failed", err)
		return
	}
	c.JSON(http.StatusOK, st)
}

// @Summary      Update settings
// @Description  Partial update: keys present in the body overwrite, the rest is kept. "debug" switches log verbosity immediately.
// @Tags         settings
// @Accept       json
// @Produce      json
// @Param        body  body   models.Settings  true  "Settings patch"
// @Success      200   {object}  map[string]interface{}  "status, settings"
// @Failure      400   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /api/settings [post]
func (h *Handler) updateSettings(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidBodyPref + err.Error()})
		return
	}
	st, err := h.services.Settings.Update(c.Request.Context(), body)
	if err != nil {
		h.respondServiceError(c, "settings_update_failed", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": statusOK, "settings": st})
}
