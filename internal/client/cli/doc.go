// Package cli provides the interactive ATS CV command-line client.
//
// It wires configuration, the local store, the AI gateway and the services
// into a REPL driven by the navigation router. The prompt shows the signed-in
// account and the current screen.
//
// Key features:
//   - Sign up / Login / Logout
//   - Profile editing, or extraction from pasted CV text
//   - Generate a CV for a job description; list, open and revise CVs
//   - Markdown export, and for Pro accounts cloud backup
//   - Simulated card checkout that unlocks Pro
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
package cli
