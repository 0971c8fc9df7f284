package gateway

import "github.com/m-mizutani/goerr/v2"

var (
	// ErrHTMLResponse is returned when the gateway answers with an HTML page
	// (typically a proxy login or error page) instead of JSON
	ErrHTMLResponse = goerr.New("gateway returned HTML instead of JSON")

	// ErrUnexpectedStatus is returned for non-2xx responses
	ErrUnexpectedStatus = goerr.New("unexpected gateway status")

	// ErrSearchFailed is returned when a search envelope reports failure
	ErrSearchFailed = goerr.New("gateway search failed")

	// ErrNoEndpoint is returned for fields that have no lookup endpoint
	ErrNoEndpoint = goerr.New("field has no lookup endpoint")
)

// Context keys for error values
const (
	URLKey    = "url"
	StatusKey = "status"
	FieldKey  = "field"
	BodyKey   = "body"
)
