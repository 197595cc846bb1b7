package handlers

import (
	"mime/multipart"

	"github.com/gin-gonic/gin"

	"audioscribe/internal/api/errors"
	"audioscribe/internal/api/v1/dto"
	"audioscribe/internal/app/util/format"
)

// audioFormFile opens the multipart "file" part. The caller must close the
// returned file.
func audioFormFile(c *gin.Context) (dto.AudioFile, multipart.File, error) {
	header, err := c.FormFile("file")
	if err != nil {
		return dto.AudioFile{}, nil, errors.NewBadRequestError("No file provided")
	}

	f, err := header.Open()
	if err != nil {
		return dto.AudioFile{}, nil, errors.NewBadRequestError("Unable to read uploaded file")
	}

	contentType := header.Header.Get("Content-Type")
	if contentType == "" || contentType == "application/octet-stream" {
		if guessed := format.MIMEFromFilename(header.Filename); guessed != "" {
			contentType = guessed
		}
	}

	return dto.AudioFile{
		Filename:    header.Filename,
		ContentType: contentType,
		Size:        header.Size,
		Content:     f,
	}, f, nil
}
