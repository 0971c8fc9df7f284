package gateway

import (
	"net/url"

	"github.com/secmon-lab/inquiry/pkg/domain/types"
)

const commonPrefix = "/api/v1/inquiry-common"

// endpoint is the lookup endpoint of a filter field
type endpoint struct {
	path   string
	params func(c *Client) url.Values
}

func vhsParam(name string) func(c *Client) url.Values {
	return func(_ *Client) url.Values {
		return url.Values{"vhsName": []string{name}}
	}
}

var endpoints = map[types.FieldID]endpoint{
	types.FieldBuyer:        {path: commonPrefix + "/buyers"},
	types.FieldPOItemVendor: {path: commonPrefix + "/dom-vendors", params: vhsParam("MASTERYY")},
	types.FieldPOItemStatus: {path: commonPrefix + "/dom-statuses"},
	types.FieldPOItemWhse:   {path: commonPrefix + "/warehouses"},
	types.FieldWarehouse:    {path: commonPrefix + "/warehouses"},
	types.FieldVendor:       {path: commonPrefix + "/vendors", params: vhsParam("masteryy")},
	types.FieldItemClass:    {path: commonPrefix + "/class-items"},
	types.FieldDRP:          {path: commonPrefix + "/drp-planners"},
	types.FieldFC:           {path: commonPrefix + "/fc-planners"},
	types.FieldPOStatus:     {path: commonPrefix + "/po-statuses"},
	types.FieldOffice: {
		path: commonPrefix + "/offices",
		params: func(c *Client) url.Values {
			return url.Values{"vhsName": []string{c.vhsName}, "userName": []string{c.user}}
		},
	},
}

// HasEndpoint reports whether a field is resolved through the gateway
func HasEndpoint(field types.FieldID) bool {
	_, ok := endpoints[field]
	return ok
}

func poItemSearchPath(env string) string {
	return "/api/po-item-inquiry-dom/" + url.PathEscape(env) + "/search"
}

func productionScheduleSearchPath(env string) string {
	return "/api/ProductionSchedule/" + url.PathEscape(env) + "/search"
}

func posPaidSearchPath(env string) string {
	return "/api/POsPaid/" + url.PathEscape(env) + "/search"
}
