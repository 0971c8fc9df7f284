package usecase

import (
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/inquiry/pkg/domain/types"
)

// SchemaVersion is bumped whenever a lookup response schema changes
const SchemaVersion = 1

// FieldSchema declares how a filter field's lookup response is read.
//
// The record array is the top-level array, else the first of ArrayKeys
// holding an array, else the first array-valued property in document order.
// Each element's identifier is the first non-empty IDKeys property. The
// description is the joined NameParts, else the first non-empty DescKeys
// property, else the identifier when DescFallbackToID is set.
type FieldSchema struct {
	Field            types.FieldID
	Version          int
	ArrayKeys        []string
	IDKeys           []string
	DescKeys         []string
	NameParts        [][]string
	DescFallbackToID bool
	// ActiveKey drops elements whose property is the boolean false
	ActiveKey string
	// RequireDesc drops elements without a description
	RequireDesc bool
}

func arrayKeys(plural string) []string {
	return []string{"data", plural, "items", "results", "list", "records"}
}

var warehouseSchema = FieldSchema{
	Version:   SchemaVersion,
	ArrayKeys: arrayKeys("warehouses"),
	IDKeys: []string{
		"whseCode", "warehouseCode", "warehouse_code", "WarehouseCode", "WAREHOUSE_CODE",
		"code", "id", "whse", "whseId", "whse_id", "WhseCode", "WhseId", "WHSE_CODE", "WHSE_ID", "Code", "ID",
	},
	DescKeys: []string{
		"whseDescription", "warehouseName", "warehouse_name", "WarehouseName", "WAREHOUSE_NAME",
		"description", "desc", "name", "label", "Description", "DESC", "Name", "Label",
		"WhseDescription", "whse_description", "WHSE_DESCRIPTION",
	},
	DescFallbackToID: true,
}

var statusSchema = FieldSchema{
	Version:          SchemaVersion,
	ArrayKeys:        arrayKeys("statuses"),
	IDKeys:           []string{"statusCode", "code"},
	DescKeys:         []string{"statusDescription", "description"},
	DescFallbackToID: true,
}

var plannerSchema = FieldSchema{
	Version:          SchemaVersion,
	ArrayKeys:        arrayKeys("planners"),
	IDKeys:           []string{"plannerCode"},
	DescKeys:         []string{"plannerName"},
	DescFallbackToID: true,
}

func withField(s FieldSchema, id types.FieldID) *FieldSchema {
	s.Field = id
	return &s
}

var fieldSchemas = map[types.FieldID]*FieldSchema{
	types.FieldBuyer: {
		Field:     types.FieldBuyer,
		Version:   SchemaVersion,
		ArrayKeys: arrayKeys("buyers"),
		IDKeys: []string{
			"buyerNum", "buyerNumber", "buyno", "id", "code", "buyerCode", "buyerId",
			"buyer_id", "buyer_num", "buyer_number", "BuyerNum", "BuyerNumber", "BuyerId", "BUYER_NUM", "BUYER_ID",
		},
		NameParts: [][]string{
			{"firstName", "first_name", "fname", "FirstName", "FIRST_NAME"},
			{"lastName", "last_name", "lname", "LastName", "LAST_NAME"},
		},
		DescKeys: []string{
			"name", "buyerName", "buyer_name", "BuyerName", "BUYER_NAME",
			"description", "desc", "Description", "DESC",
		},
		DescFallbackToID: true,
	},
	types.FieldPOItemVendor: {
		Field:            types.FieldPOItemVendor,
		Version:          SchemaVersion,
		ArrayKeys:        arrayKeys("vendors"),
		IDKeys:           []string{"vendorNum", "vendorNumber", "id", "code", "vendorCode"},
		DescKeys:         []string{"vendorName", "name", "description", "desc", "label"},
		DescFallbackToID: true,
	},
	types.FieldPOItemStatus: withField(statusSchema, types.FieldPOItemStatus),
	types.FieldPOItemWhse:   withField(warehouseSchema, types.FieldPOItemWhse),
	types.FieldWarehouse:    withField(warehouseSchema, types.FieldWarehouse),
	types.FieldVendor: {
		Field:       types.FieldVendor,
		Version:     SchemaVersion,
		ArrayKeys:   arrayKeys("vendors"),
		IDKeys:      []string{"vendorNumber", "vendorId"},
		DescKeys:    []string{"vendorName", "name"},
		ActiveKey:   "isActive",
		RequireDesc: true,
	},
	types.FieldItemClass: {
		Field:     types.FieldItemClass,
		Version:   SchemaVersion,
		ArrayKeys: arrayKeys("itemClasses"),
		IDKeys:    []string{"itemClass"},
		DescKeys:  []string{"itemClass"},
	},
	types.FieldDRP: withField(plannerSchema, types.FieldDRP),
	types.FieldFC:  withField(plannerSchema, types.FieldFC),
	types.FieldOffice: {
		Field:     types.FieldOffice,
		Version:   SchemaVersion,
		ArrayKeys: arrayKeys("offices"),
		IDKeys:    []string{"officeCode", "code"},
		DescKeys:  []string{"officeName", "name", "description"},
	},
	types.FieldPOStatus: withField(statusSchema, types.FieldPOStatus),
}

// SchemaOf returns the response schema of a field, or nil when the field
// is not resolved from a lookup response
func SchemaOf(field types.FieldID) *FieldSchema {
	return fieldSchemas[field]
}

// ValidateSchemas checks that every lookup field has a usable schema of
// the current version
func ValidateSchemas() error {
	for _, id := range types.AllFieldIDs() {
		if !id.HasValues() || id == types.FieldProductionResource {
			continue
		}
		s := SchemaOf(id)
		if s == nil {
			return goerr.New("missing response schema", goerr.V(FieldIDKey, id))
		}
		if s.Field != id || s.Version != SchemaVersion || len(s.IDKeys) == 0 {
			return goerr.New("invalid response schema",
				goerr.V(FieldIDKey, id), goerr.V("version", s.Version))
		}
	}
	return nil
}
