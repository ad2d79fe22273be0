// Package git wraps the git command-line executable. It discovers
// repository roots on disk, applies git subcommands across many
// repositories, and parses git's text output into structured records.
//
// All git invocations pass the target repository with -C and an
// argument vector; the process working directory is never changed and
// no shell is involved.
package git
