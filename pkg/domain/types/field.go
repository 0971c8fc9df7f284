package types

import "fmt"

// FieldID identifies a dropdown filter category. Values follow the
// identifiers the backend gateways and legacy report generator expect.
type FieldID string

const (
	// PO item inquiry
	FieldBuyer        FieldID = "Buyno"
	FieldPOItemVendor FieldID = "pomVendorNum"
	FieldPOItemStatus FieldID = "Staic"
	FieldPOItemWhse   FieldID = "Whse"

	// Production schedule and POs paid
	FieldItem               FieldID = "Item"
	FieldVendor             FieldID = "Vendor"
	FieldWarehouse          FieldID = "Warehouse"
	FieldDRP                FieldID = "DRP"
	FieldFC                 FieldID = "FC"
	FieldOffice             FieldID = "Office"
	FieldProductionResource FieldID = "ProductionResource"
	FieldItemClass          FieldID = "ItemClass"
	FieldPOStatus           FieldID = "POStatus"
)

var fieldDescriptions = map[FieldID]string{
	FieldBuyer:              "Buyer",
	FieldPOItemVendor:       "Vendor",
	FieldPOItemStatus:       "Status",
	FieldPOItemWhse:         "Warehouse",
	FieldItem:               "Item",
	FieldVendor:             "Vendor",
	FieldWarehouse:          "Warehouse",
	FieldDRP:                "DRP Planner",
	FieldFC:                 "FC Planner",
	FieldOffice:             "Office",
	FieldProductionResource: "Production Resource",
	FieldItemClass:          "Item Class",
	FieldPOStatus:           "Status",
}

// AllFieldIDs returns every known filter field
func AllFieldIDs() []FieldID {
	return []FieldID{
		FieldBuyer,
		FieldPOItemVendor,
		FieldPOItemStatus,
		FieldPOItemWhse,
		FieldItem,
		FieldVendor,
		FieldWarehouse,
		FieldDRP,
		FieldFC,
		FieldOffice,
		FieldProductionResource,
		FieldItemClass,
		FieldPOStatus,
	}
}

// IsValid checks if the field ID is known
func (f FieldID) IsValid() bool {
	_, ok := fieldDescriptions[f]
	return ok
}

// Desc returns the display label of the field
func (f FieldID) Desc() string {
	return fieldDescriptions[f]
}

// HasValues reports whether the field is populated from a value list.
// Item is a free-text row type and has no dropdown.
func (f FieldID) HasValues() bool {
	return f.IsValid() && f != FieldItem
}

// String returns the string representation of the field ID
func (f FieldID) String() string {
	return string(f)
}

// ParseFieldID parses a string into a FieldID
func ParseFieldID(s string) (FieldID, error) {
	id := FieldID(s)
	if !id.IsValid() {
		return "", fmt.Errorf("invalid field ID: %s", s)
	}
	return id, nil
}
