package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	cellarapp "github.com/vintrade/backend/internal/application/cellar"
)

// ExceptionHandler handles inventory exception API endpoints
type ExceptionHandler struct {
	BaseHandler
	exceptionService *cellarapp.ExceptionService
}

// NewExceptionHandler creates a new ExceptionHandler
func NewExceptionHandler(exceptionService *cellarapp.ExceptionService) *ExceptionHandler {
	return &ExceptionHandler{
		exceptionService: exceptionService,
	}
}

// Raise godoc
// @Summary      Raise an inventory exception
// @Description  Queue an operational anomaly for manual review
// @Tags         exceptions
// @Accept       json
// @Produce      json
// @Param        request body cellar.RaiseExceptionRequest true "Exception request"
// @Success      201 {object} dto.Response{data=cellar.ExceptionResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /cellar/exceptions [post]
func (h *ExceptionHandler) Raise(c *gin.Context) {
	var req cellarapp.RaiseExceptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.exceptionService.Raise(c.Request.Context(), &req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, resp)
}

// Resolve godoc
// @Summary      Resolve an inventory exception
// @Description  Close an exception after review, recording who resolved it and how
// @Tags         exceptions
// @Accept       json
// @Produce      json
// @Param        id path string true "Exception ID" format(uuid)
// @Param        request body cellar.ResolveExceptionRequest true "Resolution request"
// @Success      200 {object} dto.Response{data=cellar.ExceptionResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /cellar/exceptions/{id}/resolve [post]
func (h *ExceptionHandler) Resolve(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid exception ID format")
		return
	}

	var req cellarapp.ResolveExceptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.exceptionService.Resolve(c.Request.Context(), id, &req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, resp)
}

// GetByID godoc
// @Summary      Get inventory exception by ID
// @Tags         exceptions
// @Accept       json
// @Produce      json
// @Param        id path string true "Exception ID" format(uuid)
// @Success      200 {object} dto.Response{data=cellar.ExceptionResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /cellar/exceptions/{id} [get]
func (h *ExceptionHandler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid exception ID format")
		return
	}

	resp, err := h.exceptionService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, resp)
}

// ListOpen godoc
// @Summary      List open inventory exceptions
// @Description  Retrieve the queue of unresolved exceptions, oldest first
// @Tags         exceptions
// @Accept       json
// @Produce      json
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Page size" default(20) maximum(100)
// @Success      200 {object} dto.Response{data=[]cellar.ExceptionResponse,meta=dto.Meta}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /cellar/exceptions [get]
func (h *ExceptionHandler) ListOpen(c *gin.Context) {
	filter, err := bindListFilter(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.exceptionService.ListOpen(c.Request.Context(), filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.SuccessWithMeta(c, result.Items, result.Total, result.Page, result.PageSize)
}
