package books

import "errors"

// Sentinel errors returned by the books package. Each aborts the
// download of the issue it occurred in; batch operations report the
// failure and continue with the next issue.
var (
	// ErrInvalidLocator indicates the input address yields no
	// usable document identifier.
	ErrInvalidLocator = errors.New("books: invalid document locator")

	// ErrMetadataUnavailable indicates the landing page is missing
	// the metadata container. This is the only fatal parse
	// condition; individual missing fields simply stay empty.
	ErrMetadataUnavailable = errors.New("books: metadata could not be parsed")

	// ErrParse indicates a malformed numeric or JSON field in data
	// received from the document service.
	ErrParse = errors.New("books: malformed response data")
)
