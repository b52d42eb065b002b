// Package git provides git operations via the git CLI.
//
// All invocations go through a [Runner], so commands can be exercised against
// a fake in tests. [ExecRunner] is the production implementation and shells
// out to the configured binary rather than using a Go git library. This keeps
// user configuration (SSH keys, credential helpers, aliases) intact.
//
// # Discovery and Indexing
//
//   - [Discover]: find repository roots below a directory, in parallel
//   - [IndexRepository]: read remotes and branch, compute the identity
//   - [IndexAll]: index many repositories with isolated failures
//
// # Status
//
//   - [ParseStatus]: parse `git status --porcelain -b` output
//   - [HasChanges]: clean vs dirty predicate
//   - [QueryStatus]: run and parse a status query
//
// # Subcommands
//
// [Command] names the subcommands that are dispatched across repositories
// (pull, push, checkout, add, commit). Their output is not interpreted beyond
// success or failure.
package git
