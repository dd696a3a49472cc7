package ui

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/vvka-141/flc/pkg/flc"
)

// ForcedApprover implements the Approver interface for --yes and
// non-interactive sessions. It approves without asking.
type ForcedApprover struct {
	output  io.Writer
	verbose bool
}

// NewForcedApprover creates a ForcedApprover that reports to stderr.
func NewForcedApprover(verbose bool) flc.Approver {
	return &ForcedApprover{output: os.Stderr, verbose: verbose}
}

// RequestApproval approves unless ctx is already done.
func (a *ForcedApprover) RequestApproval(ctx context.Context, root string, count int) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	if a.verbose {
		fmt.Fprintf(a.output, "[VERBOSE] fix approved without prompt: %d %s under %s\n", count, plural(count), root)
	}
	return true, nil
}

// Verify ForcedApprover implements the Approver interface at compile time
var _ flc.Approver = (*ForcedApprover)(nil)
