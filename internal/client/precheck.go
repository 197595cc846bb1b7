package client

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"audioscribe/internal/app/util/format"
)

var (
	// ErrInvalidFileType is returned for files that are not a supported audio format
	ErrInvalidFileType = errors.New("invalid file type, please choose an audio file")

	// ErrFileTooLarge is returned for files above the plan's upload ceiling
	ErrFileTooLarge = errors.New("file too large")
)

// LocalFile is an audio file that passed the pre-check
type LocalFile struct {
	Path        string
	Filename    string
	ContentType string
	Size        int64
}

// Precheck validates path before any bytes are sent: the extension must map
// to an audio type and the size must not exceed maxSize. A maxSize of zero
// skips the size check.
func Precheck(path string, maxSize int64) (*LocalFile, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat %s: %w", path, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%s is a directory", path)
	}

	name := filepath.Base(path)
	contentType := format.MIMEFromFilename(name)
	if !format.IsAudioMIME(contentType) {
		return nil, fmt.Errorf("%s: %w", name, ErrInvalidFileType)
	}

	if maxSize > 0 && info.Size() > maxSize {
		return nil, fmt.Errorf("%w: %s exceeds the %s limit", ErrFileTooLarge,
			format.FormatFileSize(info.Size()), format.FormatFileSize(maxSize))
	}

	return &LocalFile{
		Path:        path,
		Filename:    name,
		ContentType: contentType,
		Size:        info.Size(),
	}, nil
}
