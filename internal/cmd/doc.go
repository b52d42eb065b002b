// Package cmd provides helpers for executing shell commands with proper error handling.
//
// This package wraps [os/exec.Cmd] to capture stderr and include it in error
// messages, making command failures more informative for users.
//
// # Usage
//
//	out, err := cmd.OutputContext(ctx, "", "git", "--version")
//	if err != nil {
//	    // err contains stderr output if available
//	    return fmt.Errorf("git version: %w", err)
//	}
//
//	// For commands whose output is shown to the user (pull, push, ...):
//	out, err := cmd.CombinedContext(ctx, repoPath, "git", "pull")
//	var exitErr *cmd.ExitError
//	if errors.As(err, &exitErr) {
//	    // exitErr.Output holds what git printed
//	}
//
// Every *Context helper logs the command and its duration through the
// context logger when verbose mode is on.
//
// # Design Notes
//
// ngm shells out to the git CLI rather than using a Go git library.
// This keeps user configuration (SSH keys, credential helpers, hooks)
// working exactly as it does on the command line.
package cmd
