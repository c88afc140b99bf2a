// Package cli provides the interactive taskkeeper command-line client.
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
// Typical flow: register or login, then list, add, complete and delete
// tasks. Passwords are read from the terminal without echo.
//
// See App and runREPL for details.
package cli
