package client

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"os"
	"strings"
	"time"

	"github.com/vbauerster/mpb/v8"
	"github.com/vbauerster/mpb/v8/decor"

	"audioscribe/internal/api/v1/dto"
)

// Upload sends a pre-checked file and returns the pending job
func (c *Client) Upload(ctx context.Context, file *LocalFile, title string) (*dto.UploadResponse, error) {
	fields := map[string]string{}
	if title != "" {
		fields["title"] = title
	}

	var out dto.UploadResponse
	if err := c.postFile(ctx, "/upload", "Uploading", file, fields, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// TranscribeOptions are the optional fields of a transcription request
type TranscribeOptions struct {
	Language string
	Prompt   string
}

// Transcribe sends the audio of an uploaded job to be transcribed
func (c *Client) Transcribe(ctx context.Context, file *LocalFile, transcriptionID string, opts TranscribeOptions) (*dto.TranscribeResponse, error) {
	fields := map[string]string{"transcriptionId": transcriptionID}
	if opts.Language != "" {
		fields["language"] = opts.Language
	}
	if opts.Prompt != "" {
		fields["prompt"] = opts.Prompt
	}

	var out dto.TranscribeResponse
	if err := c.postFile(ctx, "/transcribe", "Transcribing", file, fields, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// postFile streams a multipart body holding fields and the file
func (c *Client) postFile(ctx context.Context, path, action string, file *LocalFile, fields map[string]string, out interface{}) error {
	f, err := os.Open(file.Path)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", file.Path, err)
	}
	defer f.Close()

	var (
		audio    io.Reader = f
		progress *mpb.Progress
		bar      *mpb.Bar
	)
	if c.progress != nil && file.Size > 0 {
		progress, bar = newUploadBar(c.progress, action+" "+file.Filename, file.Size)
		audio = bar.ProxyReader(f)
	}

	pr, pw := io.Pipe()
	writer := multipart.NewWriter(pw)
	go func() {
		pw.CloseWithError(writeMultipart(writer, fields, file, audio))
	}()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, pr)
	if err != nil {
		pr.Close()
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	err = c.do(req, out)
	if progress != nil {
		if err != nil {
			bar.Abort(false)
		}
		progress.Wait()
	}
	return err
}

func writeMultipart(writer *multipart.Writer, fields map[string]string, file *LocalFile, audio io.Reader) error {
	for name, value := range fields {
		if err := writer.WriteField(name, value); err != nil {
			return err
		}
	}

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename="%s"`, escapeQuotes(file.Filename)))
	header.Set("Content-Type", file.ContentType)
	part, err := writer.CreatePart(header)
	if err != nil {
		return err
	}
	if _, err := io.Copy(part, audio); err != nil {
		return err
	}
	return writer.Close()
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

func escapeQuotes(s string) string {
	return quoteEscaper.Replace(s)
}

func newUploadBar(w io.Writer, description string, size int64) (*mpb.Progress, *mpb.Bar) {
	progress := mpb.New(
		mpb.WithOutput(w),
		mpb.WithRefreshRate(120*time.Millisecond),
	)
	bar := progress.AddBar(size,
		mpb.PrependDecorators(
			decor.Name(description+" ", decor.WC{W: len(description) + 1, C: decor.DindentRight}),
			decor.CountersKibiByte("% .1f / % .1f", decor.WCSyncWidth),
		),
		mpb.AppendDecorators(
			decor.NewPercentage("%.1f", decor.WCSyncSpace),
			decor.OnComplete(
				decor.EwmaETA(decor.ET_STYLE_GO, 30, decor.WCSyncWidth), " ✓ ",
			),
		),
	)
	return progress, bar
}
