// Package clierror provides structured error handling for CLI commands.
//
// CLI errors include an exit code, user-facing message, and optional
// troubleshooting hints. This separates internal error details from
// what gets displayed to operators. The taxonomy keeps "not signed
// in", "signed in but not allowed", and "backend unreachable" on
// different exit codes so wrapping scripts can react differently.
//
// # Usage
//
//	if err != nil {
//	    return clierror.FromError(err)
//	}
package clierror
