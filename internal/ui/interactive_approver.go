package ui

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/vvka-141/flc/pkg/flc"
)

// InteractiveApprover implements the Approver interface for console-based
// interactive confirmation. It asks y/N before any file is rewritten.
type InteractiveApprover struct {
	input   io.Reader
	output  io.Writer
	verbose bool
}

// NewInteractiveApprover creates an InteractiveApprover on stdin and stderr.
func NewInteractiveApprover(verbose bool) flc.Approver {
	return &InteractiveApprover{input: os.Stdin, output: os.Stderr, verbose: verbose}
}

// RequestApproval asks whether count files under root may be rewritten.
// Only "y" or "yes" (any case) approves.
func (a *InteractiveApprover) RequestApproval(ctx context.Context, root string, count int) (bool, error) {
	fmt.Fprintf(a.output, "\nAbout to add the license header to %d %s under %s.\n", count, plural(count), root)
	fmt.Fprintln(a.output, "Files are replaced atomically; the original content is kept below the header.")
	fmt.Fprint(a.output, "Proceed? [y/N]: ")

	// Read user input with context cancellation support
	inputChan := make(chan string, 1)
	errChan := make(chan error, 1)

	go func() {
		reader := bufio.NewReader(a.input)
		input, err := reader.ReadString('\n')
		if err != nil && (err != io.EOF || input == "") {
			errChan <- err
			return
		}
		inputChan <- strings.TrimSpace(input)
	}()

	select {
	case <-ctx.Done():
		return false, ctx.Err()
	case err := <-errChan:
		return false, fmt.Errorf("failed to read input: %w", err)
	case input := <-inputChan:
		switch strings.ToLower(input) {
		case "y", "yes":
			fmt.Fprintln(a.output, "✓ Confirmed.")
			return true, nil
		}
		fmt.Fprintln(a.output, "✗ Cancelled. No files were changed.")
		return false, nil
	}
}

func plural(n int) string {
	if n == 1 {
		return "file"
	}
	return "files"
}

// Verify InteractiveApprover implements the Approver interface at compile time
var _ flc.Approver = (*InteractiveApprover)(nil)
