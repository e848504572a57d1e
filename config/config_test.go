package config_test

import (
	"net/http"
	"testing"
	"time"

	"github.com/andyle182810/lightcloud/config"
	"github.com/andyle182810/lightcloud/lightapi"
	"github.com/andyle182810/lightcloud/testutil"
	"github.com/stretchr/testify/require"
)

func TestFromEnvironment_Defaults(t *testing.T) {
	t.Parallel()

	cfg, err := config.FromEnvironment(map[string]string{})

	require.NoError(t, err)
	require.Equal(t, "info", cfg.LogLevel)
	require.False(t, cfg.LogConsole)
	require.Empty(t, cfg.APIKey)
	require.Equal(t, lightapi.DefaultBaseURL, cfg.BaseURL)
	require.False(t, cfg.Concurrent)
	require.Zero(t, cfg.Timeout)
	require.Empty(t, cfg.ClientOptions())
}

func TestFromEnvironment_ReadsValues(t *testing.T) {
	t.Parallel()

	cfg, err := config.FromEnvironment(map[string]string{
		"LOG_LEVEL":            "debug",
		"LIGHT_API_KEY":        "c0ffee",
		"LIGHT_API_BASE_URL":   "https://lights.internal/v1/",
		"LIGHT_API_CONCURRENT": "true",
		"LIGHT_API_TIMEOUT":    "5s",
	})

	require.NoError(t, err)
	require.Equal(t, "debug", cfg.LogLevel)
	require.Equal(t, lightapi.Config{
		APIKey:     "c0ffee",
		BaseURL:    "https://lights.internal/v1/",
		Concurrent: true,
	}, cfg.ClientConfig())
	require.Equal(t, 5*time.Second, cfg.Timeout)
	require.Len(t, cfg.ClientOptions(), 1)
}

func TestFromEnvironment_RejectsMalformedValues(t *testing.T) {
	t.Parallel()

	_, err := config.FromEnvironment(map[string]string{"LIGHT_API_CONCURRENT": "maybe"})

	require.Error(t, err)
}

func TestNew_ReadsProcessEnvironment(t *testing.T) {
	t.Setenv("LIGHT_API_KEY", "from-env")
	t.Setenv("LIGHT_API_CONCURRENT", "true")

	cfg, err := config.New()

	require.NoError(t, err)
	require.Equal(t, "from-env", cfg.APIKey)
	require.True(t, cfg.Concurrent)
}

func TestConfig_NewClientWithoutKeyFails(t *testing.T) {
	t.Parallel()

	cfg, err := config.FromEnvironment(map[string]string{})
	require.NoError(t, err)

	_, err = cfg.NewClient()

	require.ErrorIs(t, err, lightapi.ErrConfiguration)
}

func TestConfig_NewClientTalksToConfiguredAPI(t *testing.T) {
	t.Parallel()

	stub := testutil.NewAPIStub(t)
	key := testutil.RandomAPIKey()

	cfg, err := config.FromEnvironment(map[string]string{
		"LIGHT_API_KEY":      key,
		"LIGHT_API_BASE_URL": stub.URL(),
		"LIGHT_API_TIMEOUT":  "2s",
	})
	require.NoError(t, err)

	client, err := cfg.NewClient()
	require.NoError(t, err)

	defer client.Close() //nolint:errcheck

	_, err = client.PerformRequest(t.Context(), http.MethodPost, "lights/{}/toggle", []string{"all"})

	require.NoError(t, err)
	require.Equal(t, "Bearer "+key, stub.LastRequest(t).Authorization)
}
