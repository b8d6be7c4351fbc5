package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	cellarapp "github.com/vintrade/backend/internal/application/cellar"
)

// InboundHandler handles inbound batch and serialization API endpoints
type InboundHandler struct {
	BaseHandler
	inboundService  *cellarapp.InboundService
	manifestService *cellarapp.ManifestImportService
}

// NewInboundHandler creates a new InboundHandler
func NewInboundHandler(inboundService *cellarapp.InboundService, manifestService *cellarapp.ManifestImportService) *InboundHandler {
	return &InboundHandler{
		inboundService:  inboundService,
		manifestService: manifestService,
	}
}

// RegisterBatch godoc
// @Summary      Register an inbound batch
// @Description  Record a received delivery against an allocation before serialization
// @Tags         cellar
// @Accept       json
// @Produce      json
// @Param        request body cellar.RegisterBatchRequest true "Batch registration request"
// @Success      201 {object} dto.Response{data=cellar.BatchResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /cellar/batches [post]
func (h *InboundHandler) RegisterBatch(c *gin.Context) {
	var req cellarapp.RegisterBatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.inboundService.RegisterBatch(c.Request.Context(), &req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, resp)
}

// GetBatch godoc
// @Summary      Get inbound batch by ID
// @Tags         cellar
// @Accept       json
// @Produce      json
// @Param        id path string true "Batch ID" format(uuid)
// @Success      200 {object} dto.Response{data=cellar.BatchResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /cellar/batches/{id} [get]
func (h *InboundHandler) GetBatch(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid batch ID format")
		return
	}

	resp, err := h.inboundService.GetBatch(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, resp)
}

// SerializeBatch godoc
// @Summary      Serialize an inbound batch
// @Description  Assign serial numbers to the batch's bottles and optionally group them into sealed cases. A count below the expected quantity queues a shortfall exception.
// @Tags         cellar
// @Accept       json
// @Produce      json
// @Param        id path string true "Batch ID" format(uuid)
// @Param        request body cellar.SerializeBatchRequest true "Serialization request"
// @Success      200 {object} dto.Response{data=cellar.SerializeBatchResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /cellar/batches/{id}/serialize [post]
func (h *InboundHandler) SerializeBatch(c *gin.Context) {
	batchID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid batch ID format")
		return
	}

	var req cellarapp.SerializeBatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.inboundService.SerializeBatch(c.Request.Context(), batchID, &req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, resp)
}

// CorrectSerialization godoc
// @Summary      Correct a recorded serial
// @Description  Replace a wrongly captured serial number on a bottle. The original record is kept for audit.
// @Tags         cellar
// @Accept       json
// @Produce      json
// @Param        id path string true "Bottle ID" format(uuid)
// @Param        request body cellar.CorrectSerializationRequest true "Correction request"
// @Success      200 {object} dto.Response{data=cellar.BottleResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /cellar/bottles/{id}/correct-serial [post]
func (h *InboundHandler) CorrectSerialization(c *gin.Context) {
	bottleID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid bottle ID format")
		return
	}

	var req cellarapp.CorrectSerializationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.inboundService.CorrectSerialization(c.Request.Context(), bottleID, &req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, resp)
}

// ImportBatchManifest godoc
// @Summary      Import a batch manifest
// @Description  Register inbound batches in bulk from a CSV manifest with allocation_id, location_id, purchase_order_ref and expected_quantity columns
// @Tags         cellar
// @Accept       multipart/form-data
// @Produce      json
// @Param        file formData file true "CSV manifest"
// @Success      200 {object} dto.Response{data=cellar.ManifestImportResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /cellar/batches/import [post]
func (h *InboundHandler) ImportBatchManifest(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.BadRequest(c, "Missing or invalid user ID")
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		h.BadRequest(c, "Manifest file is required")
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		h.BadRequest(c, "Cannot read manifest file")
		return
	}
	defer file.Close()

	resp, err := h.manifestService.ImportBatchManifest(c.Request.Context(), userID,
		fileHeader.Filename, fileHeader.Size, file)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, resp)
}

// ImportSerialManifest godoc
// @Summary      Serialize a batch from a serial manifest
// @Description  Serialize a received batch from an uploaded CSV of serial numbers. The variant, format and ownership form fields apply to every serial in the file.
// @Tags         cellar
// @Accept       multipart/form-data
// @Produce      json
// @Param        id path string true "Batch ID" format(uuid)
// @Param        file formData file true "CSV serial manifest"
// @Param        wine_variant_id formData string true "Wine variant ID" format(uuid)
// @Param        format_id formData string true "Format ID" format(uuid)
// @Param        ownership formData string true "Ownership type"
// @Success      200 {object} dto.Response{data=cellar.SerializeBatchResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /cellar/batches/{id}/serialize-manifest [post]
func (h *InboundHandler) ImportSerialManifest(c *gin.Context) {
	batchID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid batch ID format")
		return
	}
	userID, err := getUserID(c)
	if err != nil {
		h.BadRequest(c, "Missing or invalid user ID")
		return
	}

	var meta cellarapp.SerialManifestRequest
	if err := c.ShouldBind(&meta); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		h.BadRequest(c, "Manifest file is required")
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		h.BadRequest(c, "Cannot read manifest file")
		return
	}
	defer file.Close()

	resp, err := h.manifestService.ImportSerialManifest(c.Request.Context(), userID, batchID,
		&meta, fileHeader.Filename, fileHeader.Size, file)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, resp)
}
