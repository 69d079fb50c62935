package domain

import "time"

// DraftBuffer is a locally autosaved editing session. Buffers let an
// interrupted compose session be recovered before anything reaches the
// backend; they are deleted once a save or publish succeeds.
type DraftBuffer struct {
	// ID is a client-assigned identifier for the buffer.
	ID string

	// ArticleID is the backend record being edited, 0 for a new article.
	ArticleID int64

	// Kind is the lifecycle state of the record being edited; empty for
	// a new article.
	Kind ArticleKind

	Title    string
	Category Category

	// Body and Description hold the serialized transport form of the
	// two documents.
	Body        []byte
	Description []byte

	Filename string

	UpdatedAt time.Time
}

// PendingPublish is the persisted second half of an interrupted draft
// promotion: the draft record is already deleted from the backend and
// only the completed create remains. It outlives the process so the
// resume command works from a fresh run.
type PendingPublish struct {
	// Token is the resume token handed to the user.
	Token string

	Username string
	Title    string
	Category Category

	// Body and Description hold the serialized transport form of the
	// two documents.
	Body        []byte
	Description []byte

	// Thumbnail holds the materialized image bytes, if any.
	Thumbnail []byte
	Filename  string

	CreatedAt time.Time
}
