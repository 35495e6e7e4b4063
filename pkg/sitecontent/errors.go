package sitecontent

import (
	"errors"
	"fmt"
)

// Error types
var (
	// ErrCollectionNotFound indicates a collection key has no stored record.
	// Callers that treat absent configuration as "no items yet" should check
	// for this and substitute an empty collection.
	ErrCollectionNotFound = errors.New("collection not found")

	// ErrLeadNotFound indicates a lead was not found
	ErrLeadNotFound = errors.New("lead not found")

	// ErrProductNotFound indicates a product was not found
	ErrProductNotFound = errors.New("product not found")

	// ErrAnnouncementNotFound indicates an announcement was not found
	ErrAnnouncementNotFound = errors.New("announcement not found")

	// ErrTapeNotFound indicates a DJ tape was not found
	ErrTapeNotFound = errors.New("tape not found")

	// ErrPostNotFound indicates a blog post was not found
	ErrPostNotFound = errors.New("post not found")

	// ErrOrderNotFound indicates an order was not found
	ErrOrderNotFound = errors.New("order not found")

	// ErrSessionNotFound indicates a chat session was not found
	ErrSessionNotFound = errors.New("chat session not found")

	// ErrDuplicateSlug indicates a blog post slug is already taken
	ErrDuplicateSlug = errors.New("slug already in use")

	// ErrInvalidStatus indicates a status value outside the entity's set
	ErrInvalidStatus = errors.New("invalid status")

	// ErrEmptyKey indicates a collection operation was given an empty key
	ErrEmptyKey = errors.New("collection key is empty")

	// ErrObjectNotFound indicates a media object does not exist in the blob store
	ErrObjectNotFound = errors.New("object not found")
)

// CollectionError represents an error related to collection operations
type CollectionError struct {
	Key string
	Op  string
	Err error
}

func (e *CollectionError) Error() string {
	return fmt.Sprintf("collection operation %s failed for key %q: %v", e.Op, e.Key, e.Err)
}

func (e *CollectionError) Unwrap() error {
	return e.Err
}

// EntityError represents an error related to admin entity operations
type EntityError struct {
	Entity string
	ID     string
	Op     string
	Err    error
}

func (e *EntityError) Error() string {
	return fmt.Sprintf("%s operation %s failed for %s: %v", e.Entity, e.Op, e.ID, e.Err)
}

func (e *EntityError) Unwrap() error {
	return e.Err
}
