// Package services implements the driving ports on top of the driven
// ones: authoring rules (save gating, the draft-promotion saga, the
// per-article in-flight guard), the cached session, the public feed,
// author pages, and local autosave.
package services
