// Package server provides the HTTP REST API for the CV wizard.
package server

import (
	"fmt"
	"net/http"
)

// ErrSessionNotFound indicates the wizard session does not exist or has expired
type ErrSessionNotFound struct {
	ID string
}

func (e *ErrSessionNotFound) Error() string {
	return fmt.Sprintf("session not found: %s", e.ID)
}

// ErrEntryNotFound indicates an education or experience entry was not found
type ErrEntryNotFound struct {
	EntryID string
}

func (e *ErrEntryNotFound) Error() string {
	return fmt.Sprintf("entry not found: %s", e.EntryID)
}

// ErrRewriteInProgress indicates a rewrite for the same target is already running
type ErrRewriteInProgress struct {
	Target string
}

func (e *ErrRewriteInProgress) Error() string {
	return fmt.Sprintf("a rewrite is already in progress for %s", e.Target)
}

// ErrCapReached indicates a bounded list is already at its maximum size
type ErrCapReached struct {
	What string
	Max  int
}

func (e *ErrCapReached) Error() string {
	return fmt.Sprintf("cannot add %s: maximum of %d reached", e.What, e.Max)
}

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// ErrRewritingDisabled indicates the server was started without an API key
type ErrRewritingDisabled struct{}

func (e *ErrRewritingDisabled) Error() string {
	return "AI rewriting is not configured on this server"
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	switch err.(type) {
	case *ErrSessionNotFound, *ErrEntryNotFound:
		return http.StatusNotFound
	case *ErrRewriteInProgress, *ErrCapReached:
		return http.StatusConflict
	case *ErrValidation:
		return http.StatusBadRequest
	case *ErrRewritingDisabled:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
