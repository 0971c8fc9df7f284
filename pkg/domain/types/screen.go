package types

import "fmt"

// Screen identifies one inquiry screen
type Screen string

const (
	ScreenPOItems            Screen = "po-items"
	ScreenProductionSchedule Screen = "production-schedule"
	ScreenPOsPaid            Screen = "pos-paid"
)

// AllScreens returns all inquiry screens
func AllScreens() []Screen {
	return []Screen{
		ScreenPOItems,
		ScreenProductionSchedule,
		ScreenPOsPaid,
	}
}

// IsValid checks if the screen is valid
func (s Screen) IsValid() bool {
	switch s {
	case ScreenPOItems,
		ScreenProductionSchedule,
		ScreenPOsPaid:
		return true
	default:
		return false
	}
}

// Fields returns the dropdown fields a screen loads on mount, in display order
func (s Screen) Fields() []FieldID {
	switch s {
	case ScreenPOItems:
		return []FieldID{FieldBuyer, FieldPOItemVendor, FieldPOItemStatus, FieldPOItemWhse}
	case ScreenProductionSchedule:
		return []FieldID{
			FieldVendor,
			FieldWarehouse,
			FieldProductionResource,
			FieldItemClass,
			FieldDRP,
			FieldFC,
			FieldOffice,
		}
	case ScreenPOsPaid:
		return []FieldID{FieldVendor, FieldWarehouse, FieldPOStatus}
	default:
		return nil
	}
}

// Title returns the human readable screen name
func (s Screen) Title() string {
	switch s {
	case ScreenPOItems:
		return "PO Item Inquiry"
	case ScreenProductionSchedule:
		return "Production Schedule"
	case ScreenPOsPaid:
		return "POs Paid Inquiry"
	default:
		return string(s)
	}
}

// String returns the string representation of the screen
func (s Screen) String() string {
	return string(s)
}

// ParseScreen parses a string into a Screen
func ParseScreen(s string) (Screen, error) {
	screen := Screen(s)
	if !screen.IsValid() {
		return "", fmt.Errorf("invalid screen: %s", s)
	}
	return screen, nil
}
