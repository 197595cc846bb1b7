package storage

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"

	"audioscribe/internal/app/util/format"
)

// BlobStore keeps uploaded audio files
type BlobStore interface {
	// Put writes size bytes from r under key with the given content type.
	Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) error

	// URL returns the public location of key. It does not check existence.
	URL(key string) string

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
}

// AudioKey builds the storage key audio/{userID}/{uuid}.{ext} for an
// uploaded file. The extension is omitted when the filename has none.
func AudioKey(userID, filename string) string {
	key := fmt.Sprintf("audio/%s/%s", userID, uuid.NewString())
	if ext := format.Extension(filename); ext != "" && !strings.Contains(ext, "/") {
		key += "." + ext
	}
	return key
}
