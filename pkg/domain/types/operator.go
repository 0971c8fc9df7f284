package types

import "fmt"

// LogicalOperator joins a filter row to the rows before it
type LogicalOperator string

const (
	LogicalAnd LogicalOperator = "AND"
	LogicalOr  LogicalOperator = "OR"
)

// IsValid checks if the operator is valid. Empty is accepted for the first row.
func (o LogicalOperator) IsValid() bool {
	switch o {
	case "", LogicalAnd, LogicalOr:
		return true
	default:
		return false
	}
}

// String returns the string representation of the operator
func (o LogicalOperator) String() string {
	return string(o)
}

// ComparisonOperator compares a field against the row value
type ComparisonOperator string

const (
	CompareEquals      ComparisonOperator = "equals"
	CompareContains    ComparisonOperator = "contains"
	CompareStartsWith  ComparisonOperator = "startsWith"
	CompareEndsWith    ComparisonOperator = "endsWith"
	CompareGreaterThan ComparisonOperator = "greaterThan"
	CompareLessThan    ComparisonOperator = "lessThan"
)

// AllComparisonOperators returns all comparison operators
func AllComparisonOperators() []ComparisonOperator {
	return []ComparisonOperator{
		CompareEquals,
		CompareContains,
		CompareStartsWith,
		CompareEndsWith,
		CompareGreaterThan,
		CompareLessThan,
	}
}

// IsValid checks if the operator is valid
func (o ComparisonOperator) IsValid() bool {
	for _, op := range AllComparisonOperators() {
		if o == op {
			return true
		}
	}
	return false
}

// String returns the string representation of the operator
func (o ComparisonOperator) String() string {
	return string(o)
}

// ParseComparisonOperator parses a string into a ComparisonOperator.
// Empty means equals.
func ParseComparisonOperator(s string) (ComparisonOperator, error) {
	if s == "" {
		return CompareEquals, nil
	}
	op := ComparisonOperator(s)
	if !op.IsValid() {
		return "", fmt.Errorf("invalid comparison operator: %s", s)
	}
	return op, nil
}

// OrderType is a production order state shown in the schedule
type OrderType string

const (
	OrderTypeFirmed  OrderType = "Firmed"
	OrderTypeShipped OrderType = "Shipped"
	OrderTypePlanned OrderType = "Planned"
)

// PivotOrderTypes returns order types in the row order of the weekly view
func PivotOrderTypes() []OrderType {
	return []OrderType{OrderTypeFirmed, OrderTypeShipped, OrderTypePlanned}
}

// String returns the string representation of the order type
func (o OrderType) String() string {
	return string(o)
}
