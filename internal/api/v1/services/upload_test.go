package services

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	apierrors "audioscribe/internal/api/errors"
	"audioscribe/internal/api/v1/dto"
	"audioscribe/internal/app/metrics"
	"audioscribe/internal/app/model"
	"audioscribe/internal/app/plans"
	"audioscribe/internal/app/repository"
	"audioscribe/internal/app/storage"
	"audioscribe/internal/app/testutil"
)

func audioFile(name, contentType string, size int64) dto.AudioFile {
	return dto.AudioFile{
		Filename:    name,
		ContentType: contentType,
		Size:        size,
		Content:     bytes.NewReader(make([]byte, size)),
	}
}

func requireAPIError(t *testing.T, err error, status int) *apierrors.APIError {
	t.Helper()
	var apiErr *apierrors.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, status, apiErr.HTTPStatus())
	return apiErr
}

func newUploadService(store repository.Store, blobs storage.BlobStore) UploadService {
	return NewUploadService(store, blobs, plans.Default(), metrics.New(), zap.NewNop())
}

func TestUpload_Success(t *testing.T) {
	store := testutil.NewMockStore(t)
	blobs := storage.NewMemoryStore("http://blob.test")
	ctx := context.Background()

	store.On("GetProfile", ctx, "user-1").Return(testutil.FreeProfile("user-1", 100), nil)

	var created *model.Transcription
	store.On("CreateTranscription", ctx, mock.AnythingOfType("*model.Transcription")).
		Run(func(args mock.Arguments) {
			created = args.Get(1).(*model.Transcription)
		}).
		Return(nil)

	resp, err := newUploadService(store, blobs).Upload(ctx, "user-1", dto.UploadRequest{},
		audioFile("my_recording-01.mp3", "audio/mpeg", 2048))
	require.NoError(t, err)

	assert.True(t, resp.Success)
	assert.Equal(t, "My Recording 01", resp.Transcription.Title)
	assert.Equal(t, "my_recording-01.mp3", resp.Transcription.OriginalFilename)
	assert.Equal(t, int64(2048), resp.Transcription.FileSize)
	assert.Equal(t, model.StatusPending, resp.Transcription.Status)

	require.NotNil(t, created)
	assert.True(t, strings.HasPrefix(created.StorageKey, "audio/user-1/"))
	assert.True(t, strings.HasSuffix(created.StorageKey, ".mp3"))
	assert.Equal(t, "http://blob.test/"+created.StorageKey, created.FileURL)
	assert.Equal(t, "user-1", created.UserID)

	obj, ok := blobs.Get(created.StorageKey)
	require.True(t, ok)
	assert.Len(t, obj.Data, 2048)
	assert.Equal(t, "audio/mpeg", obj.ContentType)
}

func TestUpload_ExplicitTitle(t *testing.T) {
	store := testutil.NewMockStore(t)
	ctx := context.Background()

	store.On("GetProfile", ctx, "user-1").Return(testutil.FreeProfile("user-1", 100), nil)
	store.On("CreateTranscription", ctx, mock.MatchedBy(func(tr *model.Transcription) bool {
		return tr.Title == "Weekly sync"
	})).Return(nil)

	resp, err := newUploadService(store, storage.NewMemoryStore("")).Upload(ctx, "user-1",
		dto.UploadRequest{Title: "  Weekly sync "}, audioFile("x.wav", "audio/wav", 10))
	require.NoError(t, err)
	assert.Equal(t, "Weekly sync", resp.Transcription.Title)
}

func TestUpload_FileTooLargeForFreeTier(t *testing.T) {
	store := testutil.NewMockStore(t)
	blobs := testutil.NewMockBlobStore(t)
	ctx := context.Background()

	store.On("GetProfile", ctx, "user-1").Return(testutil.FreeProfile("user-1", 100), nil)

	_, err := newUploadService(store, blobs).Upload(ctx, "user-1", dto.UploadRequest{},
		dto.AudioFile{Filename: "big.mp3", ContentType: "audio/mpeg", Size: 30 * 1024 * 1024, Content: strings.NewReader("")})

	apiErr := requireAPIError(t, err, http.StatusRequestEntityTooLarge)
	assert.Equal(t, apierrors.CodeFileTooLarge, apiErr.Code)
	assert.Equal(t, int64(26214400), apiErr.Details["maxSize"])
	assert.Equal(t, int64(31457280), apiErr.Details["currentSize"])
	blobs.AssertNotCalled(t, "Put", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestUpload_TierCeilings(t *testing.T) {
	tests := []struct {
		name    string
		tier    model.Tier
		size    int64
		allowed bool
	}{
		{"free at limit", model.TierFree, 25 * 1024 * 1024, true},
		{"pro above free limit", model.TierPro, 30 * 1024 * 1024, true},
		{"pro above pro limit", model.TierPro, 100*1024*1024 + 1, false},
		{"unknown tier held to free limit", model.Tier("platinum"), 30 * 1024 * 1024, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := testutil.NewMockStore(t)
			ctx := context.Background()
			store.On("GetProfile", ctx, "user-1").Return(testutil.ProfileWithTier("user-1", tt.tier, 100), nil)
			if tt.allowed {
				store.On("CreateTranscription", ctx, mock.Anything).Return(nil)
			}

			file := dto.AudioFile{Filename: "a.mp3", ContentType: "audio/mpeg", Size: tt.size, Content: strings.NewReader("")}
			if tt.allowed {
				file.Content = bytes.NewReader(make([]byte, tt.size))
			}
			_, err := newUploadService(store, storage.NewMemoryStore("")).Upload(ctx, "user-1", dto.UploadRequest{}, file)
			if tt.allowed {
				assert.NoError(t, err)
			} else {
				requireAPIError(t, err, http.StatusRequestEntityTooLarge)
			}
		})
	}
}

func TestUpload_InvalidFileType(t *testing.T) {
	store := testutil.NewMockStore(t)
	blobs := testutil.NewMockBlobStore(t)
	ctx := context.Background()

	store.On("GetProfile", ctx, "user-1").Return(testutil.FreeProfile("user-1", 100), nil)

	_, err := newUploadService(store, blobs).Upload(ctx, "user-1", dto.UploadRequest{},
		audioFile("notes.txt", "text/plain", 10))

	apiErr := requireAPIError(t, err, http.StatusBadRequest)
	assert.Equal(t, apierrors.CodeInvalidFileType, apiErr.Code)
}

func TestUpload_ProfileNotFound(t *testing.T) {
	store := testutil.NewMockStore(t)
	ctx := context.Background()
	store.On("GetProfile", ctx, "ghost").Return(nil, repository.ErrNotFound)

	_, err := newUploadService(store, testutil.NewMockBlobStore(t)).Upload(ctx, "ghost", dto.UploadRequest{},
		audioFile("a.mp3", "audio/mpeg", 10))
	requireAPIError(t, err, http.StatusNotFound)
}

func TestUpload_InsertFailureRemovesBlob(t *testing.T) {
	store := testutil.NewMockStore(t)
	blobs := testutil.NewMockBlobStore(t)
	ctx := context.Background()

	store.On("GetProfile", ctx, "user-1").Return(testutil.FreeProfile("user-1", 100), nil)

	var putKey string
	blobs.On("Put", ctx, mock.AnythingOfType("string"), mock.Anything, int64(10), "audio/mpeg").
		Run(func(args mock.Arguments) { putKey = args.String(1) }).
		Return(nil)
	store.On("CreateTranscription", ctx, mock.Anything).Return(errors.New("connection reset"))
	blobs.On("Delete", mock.Anything, mock.MatchedBy(func(key string) bool { return key == putKey })).Return(nil).Once()

	_, err := newUploadService(store, blobs).Upload(ctx, "user-1", dto.UploadRequest{},
		audioFile("a.mp3", "audio/mpeg", 10))

	apiErr := requireAPIError(t, err, http.StatusInternalServerError)
	assert.Equal(t, apierrors.CodeDatabaseError, apiErr.Code)
	assert.NotEmpty(t, putKey)
}

func TestUpload_CompensationFailureStillReportsInsertError(t *testing.T) {
	store := testutil.NewMockStore(t)
	blobs := testutil.NewMockBlobStore(t)
	ctx := context.Background()

	store.On("GetProfile", ctx, "user-1").Return(testutil.FreeProfile("user-1", 100), nil)
	blobs.On("Put", ctx, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)
	store.On("CreateTranscription", ctx, mock.Anything).Return(errors.New("insert failed"))
	blobs.On("Delete", mock.Anything, mock.Anything).Return(errors.New("bucket unreachable"))

	_, err := newUploadService(store, blobs).Upload(ctx, "user-1", dto.UploadRequest{},
		audioFile("a.mp3", "audio/mpeg", 10))

	apiErr := requireAPIError(t, err, http.StatusInternalServerError)
	assert.Equal(t, "insert failed", apiErr.Details["error"])
}

func TestUpload_StorageFailureCreatesNoRecord(t *testing.T) {
	store := testutil.NewMockStore(t)
	blobs := testutil.NewMockBlobStore(t)
	ctx := context.Background()

	store.On("GetProfile", ctx, "user-1").Return(testutil.FreeProfile("user-1", 100), nil)
	blobs.On("Put", ctx, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(errors.New("timeout"))

	_, err := newUploadService(store, blobs).Upload(ctx, "user-1", dto.UploadRequest{},
		audioFile("a.mp3", "audio/mpeg", 10))

	apiErr := requireAPIError(t, err, http.StatusInternalServerError)
	assert.Equal(t, apierrors.CodeStorageError, apiErr.Code)
	store.AssertNotCalled(t, "CreateTranscription", mock.Anything, mock.Anything)
}

func TestList(t *testing.T) {
	store := testutil.NewMockStore(t)
	ctx := context.Background()

	page := []model.Transcription{*testutil.PendingTranscription("user-1", "t1")}
	store.On("ListTranscriptions", ctx, repository.ListTranscriptionsParams{
		UserID: "user-1",
		Status: model.StatusCompleted,
		Limit:  10,
		Offset: 10,
	}).Return(page, 21, nil)

	resp, err := newUploadService(store, storage.NewMemoryStore("")).List(ctx, "user-1",
		dto.ListTranscriptionsQuery{Page: 2, Limit: 10, Status: "completed"})
	require.NoError(t, err)

	assert.Len(t, resp.Transcriptions, 1)
	assert.Equal(t, dto.PaginationResponse{Page: 2, Limit: 10, Total: 21, Pages: 3}, resp.Pagination)
}

func TestList_StoreFailure(t *testing.T) {
	store := testutil.NewMockStore(t)
	ctx := context.Background()
	store.On("ListTranscriptions", ctx, mock.Anything).Return(nil, 0, errors.New("down"))

	_, err := newUploadService(store, storage.NewMemoryStore("")).List(ctx, "user-1",
		dto.ListTranscriptionsQuery{Page: 1, Limit: 10})
	requireAPIError(t, err, http.StatusInternalServerError)
}
