package flc

import "context"

// Approver confirms a fix run before any file is rewritten.
//
// Implementations:
//   - ForcedApprover: approves immediately (--yes or non-interactive sessions)
//   - InteractiveApprover: prompts on the terminal and waits for y/N
type Approver interface {
	// RequestApproval asks whether count files under root may be rewritten.
	// Returns false without error when the user declines.
	RequestApproval(ctx context.Context, root string, count int) (bool, error)
}
