package extraction

import "errors"

var (
	// ErrParserAlreadyRegistered indicates a second parser for the same source
	ErrParserAlreadyRegistered = errors.New("parser already registered for source")

	// ErrNoParser indicates a source without a registered parser
	ErrNoParser = errors.New("no parser registered for source")

	// ErrSourceReportedError indicates the marketplace payload carries an error status
	ErrSourceReportedError = errors.New("source payload reports an error")

	// ErrMalformedCardPayload indicates a card payload that is not a JSON object
	ErrMalformedCardPayload = errors.New("malformed card payload")
)
