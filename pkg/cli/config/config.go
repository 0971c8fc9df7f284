package config

import (
	"errors"
	"io/fs"
	"net/url"
	"os"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/pelletier/go-toml/v2"
	domainConfig "github.com/secmon-lab/inquiry/pkg/domain/model/config"
	"github.com/secmon-lab/inquiry/pkg/domain/types"
	"github.com/urfave/cli/v3"
)

// AppConfig represents the application configuration file
type AppConfig struct {
	Report ReportConfig  `toml:"report"`
	Fields []FieldConfig `toml:"field"`
}

// ReportConfig configures the report generator hand-off
type ReportConfig struct {
	URL             string `toml:"url"`
	EnvironmentCode string `toml:"environment_code"`
	VHSName         string `toml:"vhs_name"`
	User            string `toml:"user"`
}

// FieldConfig overrides the option list of one filter field
type FieldConfig struct {
	ID       string         `toml:"id"`
	Static   []OptionConfig `toml:"static"`
	Fallback []OptionConfig `toml:"fallback"`
}

// OptionConfig is one dropdown option
type OptionConfig struct {
	ID   string `toml:"id"`
	Name string `toml:"name"`
}

// Validate checks if the ReportConfig is valid
func (r *ReportConfig) Validate() error {
	if r.URL == "" {
		return nil
	}
	u, err := url.Parse(r.URL)
	if err != nil {
		return goerr.Wrap(ErrInvalidReportURL, "failed to parse report URL", goerr.V("url", r.URL), goerr.V("reason", err.Error()))
	}
	if u.Scheme == "" && !strings.HasPrefix(u.Path, "/") {
		return goerr.Wrap(ErrInvalidReportURL, "report URL must be absolute or rooted", goerr.V("url", r.URL))
	}
	return nil
}

// Validate checks if the FieldConfig is valid
func (f *FieldConfig) Validate(index int) error {
	id := types.FieldID(f.ID)
	if !id.HasValues() {
		return goerr.Wrap(ErrInvalidFieldID, "field has no option list",
			goerr.V(FieldIDKey, f.ID), goerr.V(FieldIndexKey, index))
	}
	if len(f.Static) == 0 && len(f.Fallback) == 0 {
		return goerr.Wrap(ErrMissingOptions, "field defines no options",
			goerr.V(FieldIDKey, f.ID), goerr.V(FieldIndexKey, index))
	}
	for _, opts := range [][]OptionConfig{f.Static, f.Fallback} {
		seen := make(map[string]bool, len(opts))
		for i, o := range opts {
			if o.ID == "" || o.Name == "" {
				return goerr.Wrap(ErrMissingName, "incomplete option",
					goerr.V(FieldIDKey, f.ID), goerr.V(OptionIndexKey, i))
			}
			if seen[o.ID] {
				return goerr.Wrap(ErrDuplicateOptionID, "duplicate option",
					goerr.V(FieldIDKey, f.ID), goerr.V(OptionIDKey, o.ID))
			}
			seen[o.ID] = true
		}
	}
	return nil
}

// Validate checks if the AppConfig is valid
func (a *AppConfig) Validate() error {
	if err := a.Report.Validate(); err != nil {
		return goerr.Wrap(err, "invalid report settings")
	}

	fieldIDs := make(map[string]bool)
	for i := range a.Fields {
		f := &a.Fields[i]
		if err := f.Validate(i); err != nil {
			return goerr.Wrap(err, "invalid field")
		}
		if fieldIDs[f.ID] {
			return goerr.Wrap(ErrDuplicateFieldID, "field defined twice", goerr.V(FieldIDKey, f.ID))
		}
		fieldIDs[f.ID] = true
	}
	return nil
}

// LoadAppConfiguration loads the application configuration from a TOML file
func LoadAppConfiguration(path string) (*AppConfig, error) {
	// #nosec G304 - path is expected to be provided by CLI argument
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, goerr.Wrap(ErrConfigNotFound, "config file does not exist", goerr.V(ConfigPathKey, path))
	}
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read config file", goerr.V(ConfigPathKey, path))
	}

	var config AppConfig
	if err := toml.Unmarshal(data, &config); err != nil {
		return nil, goerr.Wrap(ErrInvalidConfig, "failed to parse TOML config",
			goerr.V(ConfigPathKey, path), goerr.V("reason", err.Error()))
	}

	if err := config.Validate(); err != nil {
		return nil, goerr.Wrap(err, "config validation failed", goerr.V(ConfigPathKey, path))
	}

	return &config, nil
}

// ToFilterSchema converts AppConfig to the domain filter schema
func (a *AppConfig) ToFilterSchema() *domainConfig.FilterSchema {
	fields := make([]domainConfig.FieldDefinition, len(a.Fields))
	for i, f := range a.Fields {
		fields[i] = domainConfig.FieldDefinition{
			ID:       types.FieldID(f.ID),
			Static:   toOptions(f.Static),
			Fallback: toOptions(f.Fallback),
		}
	}

	return &domainConfig.FilterSchema{
		Fields: fields,
		Report: domainConfig.ReportSettings{
			URL:             a.Report.URL,
			EnvironmentCode: a.Report.EnvironmentCode,
			VHSName:         a.Report.VHSName,
			User:            a.Report.User,
		},
	}
}

func toOptions(opts []OptionConfig) []domainConfig.FieldOption {
	if len(opts) == 0 {
		return nil
	}
	out := make([]domainConfig.FieldOption, len(opts))
	for i, o := range opts {
		out[i] = domainConfig.FieldOption{ID: o.ID, Name: o.Name}
	}
	return out
}

// App holds the --config flag
type App struct {
	path string
}

func (x *App) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "config",
			Aliases:     []string{"c"},
			Usage:       "Application config file (TOML) with field options and report settings",
			Destination: &x.path,
			Sources:     cli.EnvVars("INQUIRY_CONFIG"),
		},
	}
}

// Configure loads the config file. Without --config the built-in defaults
// are used and the returned schema is empty.
func (x *App) Configure() (*domainConfig.FilterSchema, error) {
	if x.path == "" {
		return &domainConfig.FilterSchema{}, nil
	}
	cfg, err := LoadAppConfiguration(x.path)
	if err != nil {
		return nil, err
	}
	return cfg.ToFilterSchema(), nil
}
