package format

import (
	"fmt"
	"math"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/samber/lo"
)

// AudioMIMETypes is the whitelist of content types accepted for upload.
var AudioMIMETypes = []string{
	"audio/mp3",
	"audio/mpeg",
	"audio/wav",
	"audio/wave",
	"audio/x-wav",
	"audio/aac",
	"audio/ogg",
	"audio/webm",
	"audio/flac",
	"audio/x-flac",
	"audio/m4a",
	"audio/mp4",
}

// extension -> content type, as browsers report it for the supported formats
var mimeByExtension = map[string]string{
	"mp3":  "audio/mpeg",
	"wav":  "audio/wav",
	"aac":  "audio/aac",
	"ogg":  "audio/ogg",
	"webm": "audio/webm",
	"flac": "audio/flac",
	"m4a":  "audio/m4a",
	"mp4":  "audio/mp4",
}

var sizeUnits = []string{"Bytes", "KB", "MB", "GB"}

// IsAudioMIME reports whether contentType is on the audio whitelist.
func IsAudioMIME(contentType string) bool {
	return lo.Contains(AudioMIMETypes, contentType)
}

// MIMEFromFilename guesses the audio content type from a file extension.
// It returns "" for extensions outside the supported formats.
func MIMEFromFilename(name string) string {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(name), "."))
	return mimeByExtension[ext]
}

// Extension returns the text after the last dot of name, or "" if name has no dot.
func Extension(name string) string {
	idx := strings.LastIndex(name, ".")
	if idx < 0 || idx == len(name)-1 {
		return ""
	}
	return name[idx+1:]
}

// FormatFileSize renders a byte count as "0 Bytes", "1.5 KB", "25 MB" and so on.
// Values are rounded to two decimals with trailing zeros dropped.
func FormatFileSize(bytes int64) string {
	if bytes <= 0 {
		return "0 Bytes"
	}

	i := int(math.Floor(math.Log(float64(bytes)) / math.Log(1024)))
	if i >= len(sizeUnits) {
		i = len(sizeUnits) - 1
	}

	value := float64(bytes) / math.Pow(1024, float64(i))
	value = math.Round(value*100) / 100

	return strconv.FormatFloat(value, 'f', -1, 64) + " " + sizeUnits[i]
}

// FormatDuration renders seconds as H:MM:SS, or M:SS below one hour.
func FormatDuration(seconds float64) string {
	if seconds < 0 {
		seconds = 0
	}
	total := int(math.Floor(seconds))
	hours := total / 3600
	minutes := (total % 3600) / 60
	secs := total % 60

	if hours > 0 {
		return fmt.Sprintf("%d:%02d:%02d", hours, minutes, secs)
	}
	return fmt.Sprintf("%d:%02d", minutes, secs)
}

// FormatDate renders t like "Jan 2, 2006, 03:04 PM".
func FormatDate(t time.Time) string {
	return t.Format("Jan 2, 2006, 03:04 PM")
}

// GenerateTitle derives a display title from an uploaded filename:
// the extension is stripped, underscores and hyphens become spaces and
// every word start is upper-cased.
func GenerateTitle(filename string) string {
	name := stripExtension(filename)
	name = strings.NewReplacer("_", " ", "-", " ").Replace(name)

	var b strings.Builder
	b.Grow(len(name))
	prevWord := false
	for _, r := range name {
		word := isWordChar(r)
		if word && !prevWord && r >= 'a' && r <= 'z' {
			r -= 'a' - 'A'
		}
		b.WriteRune(r)
		prevWord = word
	}
	return b.String()
}

// stripExtension drops a trailing ".ext" where ext is non-empty and holds no '/' or '.'.
func stripExtension(name string) string {
	idx := strings.LastIndex(name, ".")
	if idx < 0 || idx == len(name)-1 {
		return name
	}
	if strings.Contains(name[idx+1:], "/") {
		return name
	}
	return name[:idx]
}

// word characters are ASCII letters, digits and underscore
func isWordChar(r rune) bool {
	return r == '_' ||
		(r >= 'a' && r <= 'z') ||
		(r >= 'A' && r <= 'Z') ||
		(r >= '0' && r <= '9')
}
