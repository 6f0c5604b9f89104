package core

import "errors"

var (
	// ErrNoFileName is returned by Save when the document has never been
	// loaded from or saved to a path.
	ErrNoFileName = errors.New("no file name")

	// ErrInvalidEncoding is returned by Load when the source is not valid
	// UTF-8.
	ErrInvalidEncoding = errors.New("invalid utf-8 content")
)
