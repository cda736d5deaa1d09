package handlers

import (
	"net/http"
	"strconv"

	"alpr_gateway/internal/models"

	"github.com/gin-gonic/gin"
)

func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidID})
		return 0, false
	}
	return id, true
}

// @Summary      List people
// @Tags         people
// @Produce      json
// @Param        search  query   string  false  "Case-insensitive substring over all fields"
// @Success      200  {object}  map[string][]models.Person  "people"
// @Failure      500  {object}  map[string]string
// @Router       /api/people [get]
func (h *Handler) listPeople(c *gin.Context) {
	people, err := h.services.People.List(c.Request.Context(), c.Query("search"))
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, errInternal, "people_list_failed", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"people": people})
}

// @Summary      Add or replace a person
// @Description  A body with an id replaces that row; the car number is stored normalized.
// @Tags         people
// @Accept       json
// @Produce      json
// @Param        body  body   models.Person  true  "Person"
// @Success      200   {object}  map[string]interface{}  "status, person"
// @Failure      400   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /api/people [post]
func (h *Handler) savePerson(c *gin.Context) {
	var req models.Person
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidBodyPref + err.Error()})
		return
	}
	p, err := h.services.People.Save(c.Request.Context(), req)
	if err != nil {
		h.respondServiceError(c, "person_save_failed", err, "car_number", req.CarNumber)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": statusOK, "person": p})
}

// @Summary      Delete a person
// @Tags         people
// @Produce      json
// @Param        id  path  int  true  "Person id"
// @Success      200  {object}  map[string]string
// @Failure      400  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /api/people/{id} [delete]
func (h *Handler) deletePerson(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.services.People.Delete(c.Request.Context(), id); err != nil {
		h.respondServiceError(c, "person_delete_failed", err, "id", id)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": statusOK})
}

// @Summary      List access points
// @Description  Each point carries its snapshot file names and MQTT branches.
// @Tags         points
// @Produce      json
// @Param        search  query   string  false  "Case-insensitive substring over all fields"
// @Success      200  {object}  map[string][]models.AccessPoint  "points"
// @Failure      500  {object}  map[string]string
// @Router       /api/points [get]
func (h *Handler) listPoints(c *gin.Context) {
	points, err := h.services.Points.List(c.Request.Context(), c.Query("search"))
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, errInternal, "points_list_failed", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"points": points})
}

// @Summary      Add or replace an access point
// @Description  mqtt_topic defaults to the name.
// @Tags         points
// @Accept       json
// @Produce      json
// @Param        body  body   models.AccessPoint  true  "Access point"
// @Success      200   {object}  map[string]interface{}  "status, point"
// @Failure      400   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /api/points [post]
func (h *Handler) savePoint(c *gin.Context) {
	var req models.AccessPoint
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidBodyPref + err.Error()})
		return
	}
	p, err := h.services.Points.Save(c.Request.Context(), req)
	if err != nil {
		h.respondServiceError(c, "point_save_failed", err, "name", req.Name)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": statusOK, "point": p})
}

// @Summary      Delete an access point
// @Tags         points
// @Produce      json
// @Param        id  path  int  true  "Point id"
// @Success      200  {object}  map[string]string
// @Failure      400  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /api/points/{id} [delete]
func (h *Handler) deletePoint(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.services.Points.Delete(c.Request.Context(), id); err != nil {
		h.respondServiceError(c, "point_delete_failed", err, "id", id)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": statusOK})
}
