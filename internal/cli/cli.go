// Package cli holds the commands of the careers command line tool.
package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/fadilmartias/careers/internal/model"
	"github.com/fadilmartias/careers/internal/util"
	"github.com/fatih/color"
)

var (
	okColor   = color.New(color.FgGreen)
	errColor  = color.New(color.FgRed)
	dimColor  = color.New(color.Faint)
	boldColor = color.New(color.Bold)
)

func statusColor(status model.Status) string {
	switch status {
	case model.StatusNew:
		return color.New(color.FgCyan).Sprint(status)
	case model.StatusReviewed:
		return color.New(color.FgBlue).Sprint(status)
	case model.StatusContacted:
		return color.New(color.FgYellow).Sprint(status)
	case model.StatusHired:
		return color.New(color.FgGreen).Sprint(status)
	case model.StatusRejected:
		return color.New(color.FgRed).Sprint(status)
	default:
		return string(status)
	}
}

// userError prints the user-facing message of err and returns a short error
// for cobra, so internals never reach the terminal.
func userError(w io.Writer, err error) error {
	errColor.Fprintf(w, "✗ %s\n", util.UserMessage(err))
	if details := detailsOf(err); details != "" {
		dimColor.Fprintf(w, "  %s\n", details)
	}
	return fmt.Errorf("%s", util.KindOf(err))
}

func detailsOf(err error) string {
	var appErr *util.AppError
	if !errors.As(err, &appErr) || appErr.Details == nil {
		return ""
	}
	return fmt.Sprint(appErr.Details)
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
