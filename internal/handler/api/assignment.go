package api

import (
	"net/http"

	reqdto "salon-booking/internal/handler/dto/request"
	resdto "salon-booking/internal/handler/dto/response"
	"salon-booking/internal/handler/httperr"
	"salon-booking/internal/handler/middleware"
	"salon-booking/internal/usecase/commands"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type AssignmentHandler struct {
	cmds commands.ScheduleCommands
}

func NewAssignmentHandler(cmds commands.ScheduleCommands) *AssignmentHandler {
	return &AssignmentHandler{cmds: cmds}
}

// @Summary Assign service to staff
// @Description Create or update a staff member's offering of a service with optional overrides (admin only)
// @Tags staff
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param staffId path string true "Staff ID"
// @Param serviceId path string true "Service ID"
// @Param request body reqdto.AssignServiceRequest true "Overrides"
// @Success 200 {object} resdto.AssignmentResponse
// @Failure 400 {object} httperr.Response
// @Failure 401 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /staff/{staffId}/services/{serviceId} [put]
func (h *AssignmentHandler) Assign(c *gin.Context) {
	staffID, err := uuid.Parse(c.Param("staffId"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid staff id", nil)
		return
	}
	serviceID, err := uuid.Parse(c.Param("serviceId"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid service id", nil)
		return
	}
	actor, ok := middleware.GetPrincipal(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errUnauthenticated, "Unauthorized", nil)
		return
	}
	var req reqdto.AssignServiceRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, bindErr, "Invalid request", nil)
		return
	}

	asg, err := h.cmds.AssignService(c.Request.Context(), req.ToInput(staffID, serviceID, actor))
	if err != nil {
		httperr.AbortWithUsecaseError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromAssignment(asg))
}
