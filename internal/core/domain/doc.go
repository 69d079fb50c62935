// Package domain holds the core types of the Avenue client: the
// rich-text document model, articles and their lifecycle, categories,
// sessions, and author profiles. It has no dependencies on transport or
// storage; adapters translate to and from these types at the edges.
package domain
