package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
)

var (
	okMark   = color.New(color.FgGreen, color.Bold).SprintFunc()
	failMark = color.New(color.FgRed, color.Bold).SprintFunc()
)

// printSuccess prints a line prefixed with a green check mark
func printSuccess(format string, args ...any) {
	fprintSuccess(os.Stdout, format, args...)
}

func fprintSuccess(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, "%s %s\n", okMark("✓"), fmt.Sprintf(format, args...))
}

// printFailure prints a line prefixed with a red cross
func printFailure(format string, args ...any) {
	fmt.Printf("%s %s\n", failMark("✗"), fmt.Sprintf(format, args...))
}
