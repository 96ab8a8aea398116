package api

import (
	"net/http"
	"time"

	reqdto "salon-booking/internal/handler/dto/request"
	resdto "salon-booking/internal/handler/dto/response"
	"salon-booking/internal/handler/httperr"
	"salon-booking/internal/handler/middleware"
	"salon-booking/internal/usecase/commands"
	"salon-booking/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type AvailabilityHandler struct {
	cmds commands.ScheduleCommands
	q    queries.AvailabilityQueries
}

func NewAvailabilityHandler(cmds commands.ScheduleCommands, q queries.AvailabilityQueries) *AvailabilityHandler {
	return &AvailabilityHandler{cmds: cmds, q: q}
}

// @Summary Get available slots
// @Description Free slots of a staff member for a service on a date, plus the booked intervals
// @Tags availability
// @Produce json
// @Param staffId path string true "Staff ID"
// @Param serviceId query string true "Service ID"
// @Param date query string true "Date (YYYY-MM-DD)"
// @Success 200 {object} queries.AvailableSlotsView
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /availability/{staffId}/slots [get]
func (h *AvailabilityHandler) GetSlots(c *gin.Context) {
	staffID, err := uuid.Parse(c.Param("staffId"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid staff id", nil)
		return
	}
	serviceID, err := uuid.Parse(c.Query("serviceId"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid service id", nil)
		return
	}
	date, err := time.Parse(time.DateOnly, c.Query("date"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid date, expected YYYY-MM-DD", nil)
		return
	}

	view, err := h.q.GetAvailableSlots(c.Request.Context(), staffID, serviceID, date)
	if err != nil {
		httperr.AbortWithUsecaseError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// @Summary List weekly availability
// @Description Active weekly windows of a staff member ordered by day
// @Tags availability
// @Produce json
// @Param staffId path string true "Staff ID"
// @Success 200 {array} resdto.AvailabilityWindowResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /staff/{staffId}/availability [get]
func (h *AvailabilityHandler) List(c *gin.Context) {
	staffID, err := uuid.Parse(c.Param("staffId"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid staff id", nil)
		return
	}

	views, err := h.q.ListWeeklyAvailability(c.Request.Context(), staffID)
	if err != nil {
		httperr.AbortWithUsecaseError(c, err)
		return
	}
	resp, err := resdto.FromWindowViews(views)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// @Summary Set weekly availability
// @Description Create or replace the window for one day of the week
// @Tags availability
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.SetAvailabilityRequest true "Availability window"
// @Success 200 {object} resdto.AvailabilityWindowResponse
// @Failure 400 {object} httperr.Response
// @Failure 401 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /availability [put]
func (h *AvailabilityHandler) Set(c *gin.Context) {
	actor, ok := middleware.GetPrincipal(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errUnauthenticated, "Unauthorized", nil)
		return
	}
	var req reqdto.SetAvailabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	in, err := req.ToInput(actor)
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid time of day", nil)
		return
	}

	window, err := h.cmds.SetWeeklyAvailability(c.Request.Context(), in)
	if err != nil {
		httperr.AbortWithUsecaseError(c, err)
		return
	}
	resp, err := resdto.FromWindowView(queries.ToWindowView(window))
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		return
	}
	c.JSON(http.StatusOK, resp)
}
