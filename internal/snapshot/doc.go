// Package snapshot holds the persisted view of a workspace: every known
// repository keyed by identity, plus the named projects grouping them.
//
// A Snapshot is treated as immutable once built. Mutations such as
// [Snapshot.CreateProject] or [Reconcile] return a new Snapshot and leave
// the receiver untouched, so records shared with in-flight operations are
// never modified. Nothing reaches disk until [Save] is called.
//
// The snapshot lives at <root>/.ngm/.ngm-map.json. Writes are atomic and
// serialized across processes with an flock on a sibling lock file.
package snapshot
