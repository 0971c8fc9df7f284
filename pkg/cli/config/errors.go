package config

import "github.com/m-mizutani/goerr/v2"

// Sentinel errors for configuration validation
var (
	ErrConfigNotFound    = goerr.New("configuration file not found")
	ErrInvalidConfig     = goerr.New("invalid configuration")
	ErrDuplicateFieldID  = goerr.New("duplicate field ID")
	ErrDuplicateOptionID = goerr.New("duplicate option ID")
	ErrInvalidFieldID    = goerr.New("invalid field ID")
	ErrMissingOptions    = goerr.New("field requires static or fallback options")
	ErrMissingName       = goerr.New("option id and name are required")
	ErrInvalidReportURL  = goerr.New("invalid report generator URL")
	ErrInvalidBackend    = goerr.New("invalid backend")
	ErrMissingSetting    = goerr.New("required setting is missing")
)

// Context keys for error values
const (
	ConfigPathKey  = "config_path"
	FieldIDKey     = "field_id"
	OptionIDKey    = "option_id"
	FieldIndexKey  = "field_index"
	OptionIndexKey = "option_index"
	BackendKey     = "backend"
	SettingKey     = "setting"
)
