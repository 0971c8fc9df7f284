package model

import (
	"strings"

	"github.com/secmon-lab/inquiry/pkg/domain/types"
)

// EmptyFilterID is the placeholder option selected when a dropdown has no
// value. It never constrains a search.
const EmptyFilterID = "Empty"

// FilterField is a dropdown category shown on a screen
type FilterField struct {
	FieldID   types.FieldID `json:"fieldId"`
	FieldDesc string        `json:"fieldDesc"`
}

// FilterValue is one selectable option within a filter field
type FilterValue struct {
	FieldID    types.FieldID `json:"fieldId"`
	FilterID   string        `json:"filterId"`
	FilterDesc string        `json:"filterDesc"`
}

// FilterValueSet is the resolved option list of a field.
// Degraded is set when the list came from a fallback after a failed lookup.
type FilterValueSet struct {
	Field    types.FieldID `json:"fieldId"`
	Values   []FilterValue `json:"values"`
	Cached   bool          `json:"cached"`
	Degraded bool          `json:"degraded"`
}

// FieldsOf returns the filter fields shown on a screen
func FieldsOf(screen types.Screen) []FilterField {
	ids := screen.Fields()
	fields := make([]FilterField, 0, len(ids))
	for _, id := range ids {
		fields = append(fields, FilterField{FieldID: id, FieldDesc: id.Desc()})
	}
	return fields
}

// IsFilterSet reports whether a dropdown selection constrains a search
func IsFilterSet(v string) bool {
	v = strings.TrimSpace(v)
	return v != "" && v != EmptyFilterID
}

// filterOrBlank maps the placeholder selection to an empty string
func filterOrBlank(v string) string {
	if !IsFilterSet(v) {
		return ""
	}
	return strings.TrimSpace(v)
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
