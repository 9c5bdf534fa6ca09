// Package apperr defines the tagged errors returned by extraction, scraping and
// completion so that transports can pick a response status without string matching.
package apperr

import "errors"

// Kind classifies a failure.
type Kind string

const (
	// KindInvalidInput is a client-caused failure, such as a missing field.
	KindInvalidInput Kind = "invalid_input"
	// KindExtraction means a stored document could not be read or parsed.
	KindExtraction Kind = "extraction"
	// KindScrape means a web page could not be fetched or had no usable text.
	KindScrape Kind = "scrape"
	// KindCompletion means the completion endpoint failed or answered malformed data.
	KindCompletion Kind = "completion"
	// KindInternal covers everything else (temp file I/O and untagged errors).
	KindInternal Kind = "internal"
)

// Error is a tagged error. Msg is safe to show to callers; Err is the optional cause.
type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Err != nil {
		return e.Msg + ": " + e.Err.Error()
	}
	return e.Msg
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Err
}

// New returns an error of the given kind without a cause.
func New(kind Kind, msg string) *Error {
	return &Error{Kind: kind, Msg: msg}
}

// Wrap tags cause with kind. The resulting message is "msg: cause".
func Wrap(kind Kind, cause error, msg string) *Error {
	return &Error{Kind: kind, Msg: msg, Err: cause}
}

// KindOf returns the kind of the first *Error in err's chain, or KindInternal.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// Is reports whether err carries the given kind.
func Is(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}
