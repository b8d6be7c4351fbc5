package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	cellarapp "github.com/vintrade/backend/internal/application/cellar"
)

// MovementHandler handles inventory movement API endpoints
type MovementHandler struct {
	BaseHandler
	movementService *cellarapp.MovementService
}

// NewMovementHandler creates a new MovementHandler
func NewMovementHandler(movementService *cellarapp.MovementService) *MovementHandler {
	return &MovementHandler{
		movementService: movementService,
	}
}

// Record godoc
// @Summary      Record an inventory movement
// @Description  Apply a physical movement to bottles or cases. A movement carrying an already processed WMS event ID is returned unchanged instead of applied twice.
// @Tags         cellar
// @Accept       json
// @Produce      json
// @Param        request body cellar.RecordMovementRequest true "Movement request"
// @Success      201 {object} dto.Response{data=cellar.MovementResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /cellar/movements [post]
func (h *MovementHandler) Record(c *gin.Context) {
	var req cellarapp.RecordMovementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.movementService.RecordMovement(c.Request.Context(), &req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	if resp.Replayed {
		h.Success(c, resp)
		return
	}
	h.Created(c, resp)
}

// List godoc
// @Summary      List the movement ledger
// @Description  Page through recorded movements, newest first. Filter to one bottle with the bottle_id query parameter.
// @Tags         cellar
// @Accept       json
// @Produce      json
// @Param        bottle_id query string false "Bottle ID" format(uuid)
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Page size" default(20) maximum(100)
// @Success      200 {object} dto.Response{data=[]cellar.MovementResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /cellar/movements [get]
func (h *MovementHandler) List(c *gin.Context) {
	filter, err := bindListFilter(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	var bottleID *uuid.UUID
	if raw := c.Query("bottle_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			h.BadRequest(c, "Invalid bottle ID format")
			return
		}
		bottleID = &id
	}

	movements, err := h.movementService.ListMovements(c.Request.Context(), bottleID, filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, movements)
}
