// Package git wraps the version-control collaborator for switchctl.
//
// Mutating operations (init, commit, checkout, branch create/delete, hard
// reset, untracked-file removal) shell out to the installed git client, whose
// working-tree semantics are exactly what the tool needs. Subprocess access is
// split into two explicit entry points with distinct result types: Run for
// success/fail operations and Output for captured queries.
//
// Read-only inspection (repository detection, branch existence, head-tree
// comparison) goes through go-git, which reads the on-disk repository
// directly without spawning a process.
package git
