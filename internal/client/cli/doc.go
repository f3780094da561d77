// Package cli provides the interactive Ignite command-line client.
//
// It wires configuration, the local store, the remote API client and the
// account, idea and profile services behind a small REPL. A background
// watcher probes the server and keeps the prompt's online/offline marker
// current; every command still works offline through the local fallbacks.
//
// Commands: help, signup, login, logout, whoami, getstarted, verify,
// resend, idea, ideas, profile, exit.
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
package cli
