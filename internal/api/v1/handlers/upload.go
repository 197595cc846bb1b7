package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"audioscribe/internal/api/middleware"
	"audioscribe/internal/api/v1/dto"
	"audioscribe/internal/api/v1/services"
)

// UploadHandler handles audio uploads and the job listing
type UploadHandler struct {
	service services.UploadService
}

// NewUploadHandler creates a new upload handler
func NewUploadHandler(service services.UploadService) *UploadHandler {
	return &UploadHandler{
		service: service,
	}
}

// Upload handles POST /api/v1/upload
//
// @Summary Upload an audio file
// @Description Stores an audio file and creates a pending transcription job. The file size is checked against the caller's plan.
// @Tags upload
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param file formData file true "Audio file"
// @Param title formData string false "Job title, derived from the filename when empty"
// @Success 200 {object} dto.UploadResponse "Upload stored, job pending"
// @Failure 400 {object} errors.APIError "Missing file or invalid file type"
// @Failure 401 {object} errors.APIError "Unauthorized"
// @Failure 404 {object} errors.APIError "User profile not found"
// @Failure 413 {object} errors.APIError "File size exceeds plan limit"
// @Failure 500 {object} errors.APIError "Storage or database failure"
// @Router /upload [post]
func (h *UploadHandler) Upload(c *gin.Context) {
	var req dto.UploadRequest
	if err := middleware.ValidateForm(c, &req); err != nil {
		middleware.HandleError(c, err)
		return
	}

	file, f, err := audioFormFile(c)
	if err != nil {
		middleware.HandleError(c, err)
		return
	}
	defer f.Close()

	response, err := h.service.Upload(c.Request.Context(), middleware.UserID(c), req, file)
	if err != nil {
		middleware.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// List handles GET /api/v1/upload
//
// @Summary List transcription jobs
// @Description Returns the caller's jobs, newest first, one page at a time
// @Tags upload
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number" default(1) minimum(1)
// @Param limit query int false "Items per page" default(10) minimum(1) maximum(100)
// @Param status query string false "Filter by status" Enums(pending,processing,completed,failed,all)
// @Success 200 {object} dto.PaginatedTranscriptionsResponse "One page of jobs"
// @Failure 400 {object} errors.APIError "Invalid query parameters"
// @Failure 401 {object} errors.APIError "Unauthorized"
// @Failure 500 {object} errors.APIError "Database failure"
// @Header 200 {string} X-Total-Count "Total number of matching jobs"
// @Router /upload [get]
func (h *UploadHandler) List(c *gin.Context) {
	var query dto.ListTranscriptionsQuery
	if err := middleware.ValidateQuery(c, &query); err != nil {
		middleware.HandleError(c, err)
		return
	}

	response, err := h.service.List(c.Request.Context(), middleware.UserID(c), query)
	if err != nil {
		middleware.HandleError(c, err)
		return
	}

	c.Header("X-Total-Count", strconv.Itoa(response.Pagination.Total))
	c.JSON(http.StatusOK, response)
}
