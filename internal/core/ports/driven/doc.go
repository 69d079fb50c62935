// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
//   - Backend: the persistence protocol client, i.e. every HTTP exchange
//     with the Article Avenue backend
//   - ConfigStore: application configuration
//   - WorkspaceStore: local autosave buffers for in-progress edits
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driven
