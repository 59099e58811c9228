package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/localekit/pkg/config"
)

func TestLoad(t *testing.T) {
	t.Run("defaults apply without environment", func(t *testing.T) {
		var cfg config.Build
		require.NoError(t, config.Load(&cfg))
		assert.Equal(t, "config/locales", cfg.MessagesDir)
		assert.Equal(t, config.TargetServer, cfg.Target)
		assert.Empty(t, cfg.DefaultLocale)
		assert.Nil(t, cfg.AllowList())
	})

	t.Run("reads the environment surface", func(t *testing.T) {
		t.Setenv("LOCALEKIT_MESSAGES_DIR", "i18n/messages")
		t.Setenv("LOCALEKIT_DEFAULT_LOCALE", "de")
		t.Setenv("LOCALEKIT_LOCALES", "de fr  pt-BR")
		t.Setenv("LOCALEKIT_BUILD_TARGET", "browser")

		var cfg config.Build
		require.NoError(t, config.Load(&cfg))
		assert.Equal(t, "i18n/messages", cfg.MessagesDir)
		assert.Equal(t, "de", cfg.DefaultLocale)
		assert.Equal(t, []string{"de", "fr", "pt-BR"}, cfg.AllowList())
		assert.Equal(t, config.TargetBrowser, cfg.Target)
		assert.True(t, cfg.Target.Browser())
	})

	t.Run("nil pointer is rejected", func(t *testing.T) {
		err := config.Load[config.Build](nil)
		require.ErrorIs(t, err, config.ErrNilPointer)
	})
}

func TestTarget(t *testing.T) {
	t.Parallel()

	assert.True(t, config.TargetBrowser.Browser())
	assert.False(t, config.TargetServer.Browser())
	assert.True(t, config.TargetServer.Valid())
	assert.False(t, config.Target("wasm").Valid())
}
