// Package driving defines the interfaces that UIs call IN to the core.
//
// These are the "driving" or "primary" ports in hexagonal architecture.
// The CLI commands and the TUI depend on these interfaces; core services
// implement them.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driving
