package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"audioscribe/internal/api/middleware"
	"audioscribe/internal/api/v1/dto"
	"audioscribe/internal/api/v1/services"
)

// TranscriptionHandler handles transcription runs and job lookups
type TranscriptionHandler struct {
	service services.TranscriptionService
}

// NewTranscriptionHandler creates a new transcription handler
func NewTranscriptionHandler(service services.TranscriptionService) *TranscriptionHandler {
	return &TranscriptionHandler{
		service: service,
	}
}

// Transcribe handles POST /api/v1/transcribe
//
// @Summary Transcribe an uploaded job
// @Description Runs a pending job through the transcription engine and charges credits for the audio duration. A job is transcribed at most once.
// @Tags transcriptions
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param file formData file true "Audio file"
// @Param transcriptionId formData string true "Job id returned by the upload"
// @Param language formData string false "Language code, auto-detected when empty" default(auto)
// @Param prompt formData string false "Context hint for the engine"
// @Success 200 {object} dto.TranscribeResponse "Transcript and credits charged"
// @Failure 400 {object} errors.APIError "Missing file or fields"
// @Failure 401 {object} errors.APIError "Unauthorized"
// @Failure 402 {object} errors.APIError "Insufficient credits"
// @Failure 404 {object} errors.APIError "Profile or job not found"
// @Failure 409 {object} errors.APIError "Job is not pending"
// @Failure 500 {object} errors.APIError "Transcription or database failure"
// @Router /transcribe [post]
func (h *TranscriptionHandler) Transcribe(c *gin.Context) {
	var req dto.TranscribeRequest
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

	response, err := h.service.Transcribe(c.Request.Context(), middleware.UserID(c), req, file)
	if err != nil {
		middleware.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// Get handles GET /api/v1/transcriptions/:id
//
// @Summary Get a transcription job
// @Description Returns one of the caller's jobs with its transcript once completed
// @Tags transcriptions
// @Produce json
// @Security BearerAuth
// @Param id path string true "Job id"
// @Success 200 {object} dto.TranscriptionResponse "Job details"
// @Failure 401 {object} errors.APIError "Unauthorized"
// @Failure 404 {object} errors.APIError "Transcription not found"
// @Failure 500 {object} errors.APIError "Database failure"
// @Router /transcriptions/{id} [get]
func (h *TranscriptionHandler) Get(c *gin.Context) {
	response, err := h.service.Get(c.Request.Context(), middleware.UserID(c), c.Param("id"))
	if err != nil {
		middleware.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}
