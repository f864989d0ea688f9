package services

import "fmt"

// ValidationError is a local input failure detected before any gateway call
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// UploadError identifies the proof file whose upload aborted a submission.
// Files uploaded before it are left in the media store.
type UploadError struct {
	FileName string
	Index    int
	Err      error
}

func (e *UploadError) Error() string {
	return fmt.Sprintf("Failed to upload file %q: %v", e.FileName, e.Err)
}

func (e *UploadError) Unwrap() error {
	return e.Err
}

// PersistError is a gateway write failure. Message is what the user sees.
type PersistError struct {
	Message string
	Err     error
}

func (e *PersistError) Error() string {
	return e.Message
}

func (e *PersistError) Unwrap() error {
	return e.Err
}

// QueryError is a gateway read failure against one collection
type QueryError struct {
	Collection string
	Err        error
}

func (e *QueryError) Error() string {
	return fmt.Sprintf("failed to query %s: %v", e.Collection, e.Err)
}

func (e *QueryError) Unwrap() error {
	return e.Err
}
