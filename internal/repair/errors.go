package repair

import "errors"

var (
	// ErrNoJSONFound indicates the raw text contains no balanced JSON
	// object at all. Nothing can be salvaged.
	ErrNoJSONFound = errors.New("no json object found in response")

	// ErrMalformedSchema indicates the text could not be coerced into the
	// slide deck schema even after all repair passes. The caller should
	// retry the upstream model call.
	ErrMalformedSchema = errors.New("malformed slide deck schema")

	// ErrEmptyDeck indicates every slide in the document was individually
	// invalid and dropped.
	ErrEmptyDeck = errors.New("slide deck contains no usable slides")
)
