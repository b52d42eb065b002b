// Package repo defines the Repository record and its content-derived identity.
//
// A repository's ID is the md5 hex digest of its JSON-serialized discovery
// attributes (path, remotes, branch, derived url). Two repositories are equal
// exactly when their recomputed IDs match; this replaces deep comparison
// everywhere (re-index change detection in particular).
//
// Known branches are deliberately left out of the identity: they grow as the
// user checks out branches and must not make a repository look "changed".
package repo
