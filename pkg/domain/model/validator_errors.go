package model

import (
	"strings"

	"github.com/m-mizutani/goerr/v2"
)

// Validation errors
var (
	ErrInvalidCriteria = goerr.New("invalid search criteria")
	ErrUnknownField    = goerr.New("unknown filter field")
	ErrUnknownScreen   = goerr.New("unknown screen")
)

// Context keys for error values
const (
	CriteriaFieldKey = "criteria_field"
	FieldIDKey       = "field_id"
	ScreenKey        = "screen"
)

// ValidationErrors is the full list of reasons a search cannot be submitted
type ValidationErrors []string

func (e ValidationErrors) Error() string {
	return strings.Join(e, "; ")
}

// Is lets errors.Is match any ValidationErrors against ErrInvalidCriteria
func (e ValidationErrors) Is(target error) bool {
	return target == ErrInvalidCriteria
}

// Details returns the individual messages for API responses
func (e ValidationErrors) Details() []string {
	return []string(e)
}
