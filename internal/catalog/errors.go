package catalog

import "fmt"

// ServerErrorMessage is the fixed plain-text body for every 500 response.
// The misspelling is kept bit-exact for clients that match on it.
const ServerErrorMessage = "An error occured on the server. Try again later!"

// MissingParamsMessage is the fixed 400 body when a form submission omits a
// required field.
const MissingParamsMessage = "Did not include all POST parameters of name, email, and feedback!"

// NotFoundError reports a category or id lookup miss. The message carries the
// value exactly as the caller gave it, original casing included.
type NotFoundError struct {
	Msg string
}

func (e *NotFoundError) Error() string { return e.Msg }

// ValidationError reports a form submission that failed presence checks.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

// StorageError reports a failed read or write of a backing document.
type StorageError struct {
	Op   string // "read" or "write"
	Path string
	Err  error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }
