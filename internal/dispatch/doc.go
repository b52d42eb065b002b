// Package dispatch runs one git command against many repositories at once.
//
// [Dispatch] starts one goroutine per repository immediately and returns an
// [Operation] handle for each. Handles settle independently: a failing
// repository never cancels its siblings. Callers either block on [Wait] or
// hand the operations to a progress display that observes them as they settle.
//
// Failures are values, not errors: every [Outcome] is either a success
// carrying the mapped result or a failure carrying a [*GitError] that names
// the originating repository and the captured command output. The caller
// decides at print time whether a partial failure fails the command, using
// [Failures] or [Err].
package dispatch
