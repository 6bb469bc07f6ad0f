// Package output delivers the finished prompt document to stdout, a file, or the clipboard.
package output

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"syscall"

	"go.uber.org/zap"

	"github.com/temirov/promptdump/internal/services/clipboard"
	"github.com/temirov/promptdump/internal/types"
	"github.com/temirov/promptdump/internal/utils"
)

const (
	fileReportFormat      = "Output written to: %s, %s characters long."
	clipboardReportFormat = "Output copied to clipboard, %s characters long."

	errorStdoutFormat    = "writing to stdout: %w"
	errorFileFormat      = "writing to file %s: %w"
	errorClipboardFormat = "copying to clipboard: %w"
)

// Sink receives the assembled prompt document.
type Sink interface {
	Write(document string) error
}

// NewSink selects the sink for an output target: "-" is stdout, an empty target is
// the clipboard, and anything else is a file path.
func NewSink(target string, stdout io.Writer, copier clipboard.Copier, logger *zap.Logger) Sink {
	if logger == nil {
		logger = zap.NewNop()
	}
	switch target {
	case types.OutputStdout:
		return &StdoutSink{Writer: stdout}
	case "":
		return &ClipboardSink{Copier: copier, Logger: logger}
	default:
		return &FileSink{Path: target, Logger: logger}
	}
}

// StdoutSink writes the document to a stream, terminating it with a newline.
// A reader that goes away early is not an error.
type StdoutSink struct {
	Writer io.Writer
}

// Write implements Sink.
func (sink *StdoutSink) Write(document string) error {
	payload := document
	if !strings.HasSuffix(payload, "\n") {
		payload += "\n"
	}
	if _, writeError := io.WriteString(sink.Writer, payload); writeError != nil {
		if IsBrokenPipe(writeError) {
			return nil
		}
		return fmt.Errorf(errorStdoutFormat, writeError)
	}
	return nil
}

// FileSink writes the document to Path and reports the absolute path and length.
type FileSink struct {
	Path   string
	Logger *zap.Logger
}

// Write implements Sink.
func (sink *FileSink) Write(document string) error {
	if writeError := os.WriteFile(sink.Path, []byte(document), 0o644); writeError != nil {
		return fmt.Errorf(errorFileFormat, sink.Path, writeError)
	}
	absolutePath, absoluteError := filepath.Abs(sink.Path)
	if absoluteError != nil {
		absolutePath = sink.Path
	}
	sink.Logger.Info(fmt.Sprintf(fileReportFormat, absolutePath, formatLength(document)))
	return nil
}

// ClipboardSink copies the document to the clipboard and reports its length.
type ClipboardSink struct {
	Copier clipboard.Copier
	Logger *zap.Logger
}

// Write implements Sink.
func (sink *ClipboardSink) Write(document string) error {
	if sink.Copier == nil {
		return fmt.Errorf(errorClipboardFormat, errors.New("no clipboard available"))
	}
	if copyError := sink.Copier.Copy(document); copyError != nil {
		return fmt.Errorf(errorClipboardFormat, copyError)
	}
	sink.Logger.Info(fmt.Sprintf(clipboardReportFormat, formatLength(document)))
	return nil
}

// IsBrokenPipe reports whether err means the reading end of the output went away.
func IsBrokenPipe(err error) bool {
	return errors.Is(err, syscall.EPIPE) || errors.Is(err, os.ErrClosed)
}

func formatLength(document string) string {
	return utils.FormatCount(int64(utils.CharacterCount(document)))
}
