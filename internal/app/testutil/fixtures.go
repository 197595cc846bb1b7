package testutil

import (
	"bytes"
	"mime/multipart"
	"net/textproto"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"audioscribe/internal/app/model"
)

// FreeProfile returns a free-tier profile with credits
func FreeProfile(id string, credits int) *model.Profile {
	return ProfileWithTier(id, model.TierFree, credits)
}

// ProfileWithTier returns a profile on tier with credits
func ProfileWithTier(id string, tier model.Tier, credits int) *model.Profile {
	now := time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC)
	return &model.Profile{
		ID:               id,
		Email:            id + "@example.com",
		SubscriptionTier: tier,
		CreditsRemaining: credits,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
}

// PendingTranscription returns a freshly uploaded job
func PendingTranscription(userID, id string) *model.Transcription {
	return &model.Transcription{
		ID:               id,
		UserID:           userID,
		Title:            "Podcast Episode 001",
		OriginalFilename: "podcast_episode_001.mp3",
		FileURL:          "http://localhost:9000/audio-files/audio/" + userID + "/" + id + ".mp3",
		StorageKey:       "audio/" + userID + "/" + id + ".mp3",
		FileSizeBytes:    1024 * 1024,
		ContentType:      "audio/mpeg",
		Status:           model.StatusPending,
	}
}

// FormFile is one file part of a multipart body
type FormFile struct {
	Field       string
	Filename    string
	ContentType string
	Content     []byte
}

// MultipartBody builds a multipart/form-data body and returns it with its
// Content-Type header value.
func MultipartBody(t *testing.T, fields map[string]string, files ...FormFile) (*bytes.Buffer, string) {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	for name, value := range fields {
		require.NoError(t, writer.WriteField(name, value))
	}

	for _, f := range files {
		header := make(textproto.MIMEHeader)
		header.Set("Content-Disposition", `form-data; name="`+f.Field+`"; filename="`+f.Filename+`"`)
		if f.ContentType != "" {
			header.Set("Content-Type", f.ContentType)
		}
		part, err := writer.CreatePart(header)
		require.NoError(t, err)
		_, err = part.Write(f.Content)
		require.NoError(t, err)
	}

	require.NoError(t, writer.Close())
	return body, writer.FormDataContentType()
}
