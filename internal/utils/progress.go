package utils

import (
	"io"
	"os"

	"github.com/schollz/progressbar/v3"
)

// Standard progress bar descriptions
const (
	DescExtracting = "Extracting"
	DescBundling   = "Bundling"
	DescCopying    = "Copying"
)

// ProgressOptions configures NewProgressBarWithOptions
type ProgressOptions struct {
	// Output is where the bar renders. Defaults to os.Stdout so the bar
	// never shares a stream with the console logger.
	Output io.Writer
	// Disabled renders nothing while keeping the bar usable.
	Disabled bool
}

// NewProgressBarWithOptions creates a consistently styled progress bar.
// A negative total renders a spinner.
func NewProgressBarWithOptions(total int, description string, opts ProgressOptions) *progressbar.ProgressBar {
	var output io.Writer = os.Stdout
	if opts.Output != nil {
		output = opts.Output
	}
	if opts.Disabled {
		output = io.Discard
	}

	options := []progressbar.Option{
		progressbar.OptionSetDescription(description),
		progressbar.OptionSetWriter(output),
		progressbar.OptionShowCount(),
		progressbar.OptionOnCompletion(func() {
			_, _ = io.WriteString(output, "\n")
		}),
	}

	if total < 0 {
		options = append(options,
			progressbar.OptionSpinnerType(14),
			progressbar.OptionSetRenderBlankState(true),
		)
	} else {
		options = append(options,
			progressbar.OptionShowIts(),
		)
	}

	return progressbar.NewOptions(total, options...)
}
