package config_test

import (
	"errors"
	"testing"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/inquiry/pkg/cli/config"
)

func TestConfigErrors_SentinelIdentification(t *testing.T) {
	tests := []struct {
		name          string
		err           error
		sentinelError error
		wantMatch     bool
	}{
		{
			name:          "ErrConfigNotFound can be identified",
			err:           goerr.Wrap(config.ErrConfigNotFound, "failed to load config"),
			sentinelError: config.ErrConfigNotFound,
			wantMatch:     true,
		},
		{
			name:          "ErrInvalidBackend can be identified",
			err:           goerr.Wrap(config.ErrInvalidBackend, "unknown backend"),
			sentinelError: config.ErrInvalidBackend,
			wantMatch:     true,
		},
		{
			name:          "ErrMissingSetting can be identified through two wraps",
			err:           goerr.Wrap(goerr.Wrap(config.ErrMissingSetting, "no url"), "configure failed"),
			sentinelError: config.ErrMissingSetting,
			wantMatch:     true,
		},
		{
			name:          "Different sentinel errors do not match",
			err:           goerr.Wrap(config.ErrConfigNotFound, "failed to load config"),
			sentinelError: config.ErrInvalidConfig,
			wantMatch:     false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			matched := errors.Is(tt.err, tt.sentinelError)
			gt.Value(t, matched).Equal(tt.wantMatch)
		})
	}
}

func TestConfigErrors_ContextValues(t *testing.T) {
	err := goerr.Wrap(config.ErrDuplicateFieldID, "duplicate field",
		goerr.V(config.FieldIDKey, "Vendor"))

	var ge *goerr.Error
	gt.Bool(t, errors.As(err, &ge)).True()
	gt.Value(t, ge.Values()[config.FieldIDKey]).Equal(any("Vendor"))
}
