package format

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestIsAudioMIME(t *testing.T) {
	tests := []struct {
		contentType string
		want        bool
	}{
		{"audio/mpeg", true},
		{"audio/mp3", true},
		{"audio/x-wav", true},
		{"audio/wave", true},
		{"audio/flac", true},
		{"audio/x-flac", true},
		{"audio/m4a", true},
		{"audio/mp4", true},
		{"video/mp4", false},
		{"application/octet-stream", false},
		{"AUDIO/MPEG", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.contentType, func(t *testing.T) {
			assert.Equal(t, tt.want, IsAudioMIME(tt.contentType))
		})
	}
}

func TestMIMEFromFilename(t *testing.T) {
	assert.Equal(t, "audio/mpeg", MIMEFromFilename("song.MP3"))
	assert.Equal(t, "audio/wav", MIMEFromFilename("/tmp/take-2.wav"))
	assert.Equal(t, "audio/m4a", MIMEFromFilename("memo.m4a"))
	assert.Equal(t, "", MIMEFromFilename("notes.txt"))
	assert.Equal(t, "", MIMEFromFilename("README"))
}

func TestExtension(t *testing.T) {
	assert.Equal(t, "mp3", Extension("a.b.mp3"))
	assert.Equal(t, "", Extension("noext"))
	assert.Equal(t, "", Extension("trailing."))
}

func TestFormatFileSize(t *testing.T) {
	tests := []struct {
		name  string
		bytes int64
		want  string
	}{
		{"zero", 0, "0 Bytes"},
		{"bytes", 1023, "1023 Bytes"},
		{"one kilobyte", 1024, "1 KB"},
		{"fractional kilobytes", 1536, "1.5 KB"},
		{"free tier ceiling", 25 * 1024 * 1024, "25 MB"},
		{"two decimals", 1234567, "1.18 MB"},
		{"gigabytes", 1610612736, "1.5 GB"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatFileSize(tt.bytes))
		})
	}
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		seconds float64
		want    string
	}{
		{0, "0:00"},
		{9, "0:09"},
		{75, "1:15"},
		{125.7, "2:05"},
		{3600, "1:00:00"},
		{3661, "1:01:01"},
		{36000 + 59*60 + 59, "10:59:59"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatDuration(tt.seconds), "seconds=%v", tt.seconds)
	}
}

func TestFormatDate(t *testing.T) {
	ts := time.Date(2024, time.March, 5, 14, 7, 0, 0, time.UTC)
	assert.Equal(t, "Mar 5, 2024, 02:07 PM", FormatDate(ts))

	morning := time.Date(2023, time.December, 25, 9, 30, 0, 0, time.UTC)
	assert.Equal(t, "Dec 25, 2023, 09:30 AM", FormatDate(morning))
}

func TestGenerateTitle(t *testing.T) {
	tests := []struct {
		filename string
		want     string
	}{
		{"my_recording-01.mp3", "My Recording 01"},
		{"meeting notes.wav", "Meeting Notes"},
		{"interview.final.m4a", "Interview.Final"},
		{"noextension", "Noextension"},
		{"trailing.", "Trailing."},
		{"already Capitalized.ogg", "Already Capitalized"},
		{"o'brien-call.mp3", "O'Brien Call"},
		{"__lead.mp3", "  Lead"},
	}

	for _, tt := range tests {
		t.Run(tt.filename, func(t *testing.T) {
			assert.Equal(t, tt.want, GenerateTitle(tt.filename))
		})
	}
}
