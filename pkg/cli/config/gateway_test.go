package config_test

import (
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/inquiry/pkg/cli/config"
	"github.com/secmon-lab/inquiry/pkg/service/gateway"
)

func TestGatewayConfigure(t *testing.T) {
	t.Run("mock backend", func(t *testing.T) {
		gw, err := config.NewGatewayForTest("mock", "", 1).Configure()
		gt.NoError(t, err).Required()
		_, ok := gw.(*gateway.Mock)
		gt.Bool(t, ok).True()
	})

	t.Run("http backend requires url", func(t *testing.T) {
		_, err := config.NewGatewayForTest("http", "", 1).Configure()
		gt.Error(t, err).Is(config.ErrMissingSetting)
	})

	t.Run("http backend with retry", func(t *testing.T) {
		gw, err := config.NewGatewayForTest("http", "https://gateway.example.com", 3).Configure()
		gt.NoError(t, err).Required()
		_, ok := gw.(*gateway.Client)
		gt.Bool(t, ok).True()
	})

	t.Run("unknown backend", func(t *testing.T) {
		_, err := config.NewGatewayForTest("grpc", "", 1).Configure()
		gt.Error(t, err).Is(config.ErrInvalidBackend)
	})
}

func TestRepositoryConfigure(t *testing.T) {
	t.Run("memory backend", func(t *testing.T) {
		repo, err := config.NewRepositoryForTest("memory", "").Configure(t.Context())
		gt.NoError(t, err).Required()
		gt.NoError(t, repo.Close())
	})

	t.Run("firestore requires project", func(t *testing.T) {
		_, err := config.NewRepositoryForTest("firestore", "").Configure(t.Context())
		gt.Error(t, err).Is(config.ErrMissingSetting)
	})

	t.Run("unknown backend", func(t *testing.T) {
		_, err := config.NewRepositoryForTest("sqlite", "").Configure(t.Context())
		gt.Error(t, err).Is(config.ErrInvalidBackend)
	})
}
