package domain

import "fmt"

// FetchError reports a document that could not be retrieved. It aborts the
// whole index build; no partial index is returned.
type FetchError struct {
	URL string
	Err error
}

func (e *FetchError) Error() string { return fmt.Sprintf("fetch %s: %v", e.URL, e.Err) }

func (e *FetchError) Unwrap() error { return e.Err }

// ParseError reports a document whose content could not be decoded.
type ParseError struct {
	URL string
	Err error
}

func (e *ParseError) Error() string { return fmt.Sprintf("parse %s: %v", e.URL, e.Err) }

func (e *ParseError) Unwrap() error { return e.Err }

// EmptyIndexError reports a similarity query against an index with zero
// chunks. The caller may choose to continue without snippet augmentation.
type EmptyIndexError struct {
	Query string
}

func (e *EmptyIndexError) Error() string {
	return fmt.Sprintf("similarity search %q: index has no chunks", e.Query)
}

// CompletionError reports a failed call to the external completion service.
// Conversation state stays consistent: the user turn is recorded, the
// assistant turn is not.
type CompletionError struct {
	Model string
	Err   error
}

func (e *CompletionError) Error() string { return fmt.Sprintf("completion %s: %v", e.Model, e.Err) }

func (e *CompletionError) Unwrap() error { return e.Err }
