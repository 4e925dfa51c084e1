// Package git wraps the git CLI for the operations dx needs: status
// dashboard fields, diffs and commit logs for generated messages, and
// release tags.
//
// All functions shell out to git via the cmd package; dx never parses
// .git internals itself.
package git
