package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnsupportedType indicates an unknown block type, inline style,
	// or category string at the boundary.
	ErrUnsupportedType = errors.New("unsupported type")

	// ErrMalformedDocument indicates a document that fails referential
	// integrity, such as a block referencing an entity absent from the
	// entity map. Decode treats this as a fatal parse failure rather
	// than silently dropping the block.
	ErrMalformedDocument = errors.New("malformed document")

	// ErrMalformedResponse indicates a backend response body that could
	// not be parsed or was missing an expected field.
	ErrMalformedResponse = errors.New("malformed response")

	// Validation errors. These surface to the user and block the
	// network call entirely.

	// ErrEmptyDocument indicates both the body and the description are
	// empty, so there is nothing to save.
	ErrEmptyDocument = errors.New("article has no content")

	// ErrMissingTitle indicates a publish was attempted without a title.
	ErrMissingTitle = errors.New("article has no title")

	// ErrInvalidCategory indicates a category string outside the closed
	// set of categories.
	ErrInvalidCategory = errors.New("invalid category")

	// ErrEmptyResponse indicates an author application with no text.
	ErrEmptyResponse = errors.New("empty response")

	// Session errors.

	// ErrNotAuthenticated indicates no signed-in session is available.
	ErrNotAuthenticated = errors.New("not authenticated")

	// ErrUnauthorized indicates the backend rejected the session
	// (401/403). The cached session must be invalidated when this is
	// observed on any call.
	ErrUnauthorized = errors.New("unauthorized")

	// Mutation ordering.

	// ErrSaveInFlight indicates another mutating request for the same
	// article is still pending. Mutations are serialized per article id.
	ErrSaveInFlight = errors.New("save already in flight for this article")
)
