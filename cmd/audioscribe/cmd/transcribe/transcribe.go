package transcribe

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"audioscribe/internal/app/util/format"
	"audioscribe/internal/client"
)

var (
	serverURL string
	token     string
	title     string
	language  string
	prompt    string
	quiet     bool
)

func init() {
	Cmd.Flags().StringVarP(&serverURL, "server", "s", "http://localhost:8080", "API base URL")
	Cmd.Flags().StringVar(&token, "token", os.Getenv("AUDIOSCRIBE_TOKEN"), "session token (default $AUDIOSCRIBE_TOKEN)")
	Cmd.Flags().StringVar(&title, "title", "", "job title (default: derived from the filename)")
	Cmd.Flags().StringVarP(&language, "language", "l", "", "language code (default: auto-detect)")
	Cmd.Flags().StringVarP(&prompt, "prompt", "p", "", "context hint for the engine")
	Cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "hide progress bars")
}

// Cmd represents the transcribe command
var Cmd = &cobra.Command{
	Use:   "transcribe <audio file>",
	Short: "Upload and transcribe a local audio file",
	Long: `Upload and transcribe a local audio file through the API

- The file type and the plan's size limit are checked before uploading
- The file is uploaded, then transcribed, and the transcript is printed`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if token == "" {
			return fmt.Errorf("a session token is required (--token or AUDIOSCRIBE_TOKEN)")
		}

		var opts []client.Option
		if !quiet {
			opts = append(opts, client.WithProgress(cmd.ErrOrStderr()))
		}
		c := client.New(serverURL, token, opts...)
		ctx := cmd.Context()

		profile, err := c.Profile(ctx)
		if err != nil {
			return err
		}

		file, err := client.Precheck(args[0], profile.Plan.MaxUploadSize)
		if err != nil {
			return err
		}

		uploaded, err := c.Upload(ctx, file, title)
		if err != nil {
			return err
		}

		result, err := c.Transcribe(ctx, file, uploaded.Transcription.ID, client.TranscribeOptions{
			Language: language,
			Prompt:   prompt,
		})
		if err != nil {
			return err
		}

		errOut := cmd.ErrOrStderr()
		fmt.Fprintf(errOut, "%s: %s, language %s, %d credits used, %d remaining\n",
			uploaded.Transcription.Title,
			format.FormatDuration(result.Transcription.Duration),
			result.Transcription.Language,
			result.CreditsUsed,
			result.CreditsRemaining,
		)
		fmt.Fprintln(cmd.OutOrStdout(), result.Transcription.Text)
		return nil
	},
}
