package cmd

import (
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/donaldgifford/server-price-alerts/internal/config"
	"github.com/donaldgifford/server-price-alerts/internal/notify"
	"github.com/donaldgifford/server-price-alerts/internal/store"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestOpenStore(t *testing.T) {
	t.Parallel()

	t.Run("memory", func(t *testing.T) {
		t.Parallel()

		st, pool, closeFn, err := openStore(t.Context(), config.DatabaseConfig{Driver: config.DriverMemory})
		require.NoError(t, err)
		assert.IsType(t, &store.MemoryStore{}, st)
		assert.Nil(t, pool)
		require.NoError(t, closeFn(t.Context()))
	})

	t.Run("unknown driver", func(t *testing.T) {
		t.Parallel()

		_, _, _, err := openStore(t.Context(), config.DatabaseConfig{Driver: "sqlite"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), `unsupported database driver "sqlite"`)
	})
}

func TestOpenCatalog(t *testing.T) {
	t.Parallel()

	t.Run("http source", func(t *testing.T) {
		t.Parallel()

		p, closeFn, err := openCatalog(t.Context(), config.CatalogConfig{
			Source:   config.CatalogSourceHTTP,
			BaseURL:  "http://localhost:8090",
			CacheTTL: time.Minute,
			Timeout:  time.Second,
		}, nil, quietLogger())
		require.NoError(t, err)
		assert.NotNil(t, p)
		require.NoError(t, closeFn(t.Context()))
	})

	t.Run("postgres source without pool", func(t *testing.T) {
		t.Parallel()

		_, _, err := openCatalog(t.Context(), config.CatalogConfig{
			Source: config.CatalogSourcePostgres,
		}, nil, quietLogger())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "catalog.dsn is required")
	})

	t.Run("unknown source", func(t *testing.T) {
		t.Parallel()

		_, _, err := openCatalog(t.Context(), config.CatalogConfig{Source: "ftp"}, nil, quietLogger())
		require.Error(t, err)
	})
}

func TestBuildTransport(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		cfg      config.NotificationsConfig
		wantType any
		wantLen  int
	}{
		{
			name:     "nothing enabled logs only",
			cfg:      config.NotificationsConfig{},
			wantType: &notify.NoOpTransport{},
		},
		{
			name: "discord only",
			cfg: config.NotificationsConfig{
				Discord: config.DiscordConfig{Enabled: true, BotToken: "token", APIBase: "http://localhost"},
			},
			wantType: &notify.DiscordTransport{},
		},
		{
			name: "discord and kafka",
			cfg: config.NotificationsConfig{
				Discord: config.DiscordConfig{Enabled: true, BotToken: "token"},
				Kafka:   config.KafkaConfig{Enabled: true, Brokers: []string{"localhost:9092"}, Topic: "price-alerts"},
			},
			wantType: notify.MultiTransport{},
			wantLen:  2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			tr, closeFn := buildTransport(tt.cfg, quietLogger())
			assert.IsType(t, tt.wantType, tr)
			if multi, ok := tr.(notify.MultiTransport); ok {
				assert.Len(t, multi, tt.wantLen)
			}
			require.NoError(t, closeFn(t.Context()))
		})
	}
}

func TestVersionCommand(t *testing.T) {
	t.Parallel()

	cmd := versionCommand()
	var out strings.Builder
	cmd.SetOut(&out)
	cmd.Run(cmd, nil)

	assert.Equal(t, "server-price-alerts dev\n", out.String())
}
