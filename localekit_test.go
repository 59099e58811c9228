package localekit_test

import (
	"bytes"
	"os"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/localekit"
	"github.com/dmitrymomot/localekit/pkg/config"
	"github.com/dmitrymomot/localekit/pkg/locales"
)

func writeMessages(t *testing.T, names ...string) string {
	t.Helper()

	dir := t.TempDir()
	for _, n := range names {
		require.NoError(t, os.WriteFile(filepath.Join(dir, n), []byte("greeting: hi\n"), 0o644))
	}
	return dir
}

func TestConfigure(t *testing.T) {
	t.Parallel()

	t.Run("produces three rules two aliases and constants", func(t *testing.T) {
		t.Parallel()
		dir := writeMessages(t, "fr.yml", "de.yml")

		cfg, err := localekit.Configure(
			localekit.WithMessagesDir(dir),
			localekit.WithTarget(config.TargetBrowser),
		)
		require.NoError(t, err)

		require.Len(t, cfg.Rules, 3)
		require.Len(t, cfg.Aliases, 2)
		assert.Equal(t, locales.Set{"en", "de", "fr"}, cfg.Locales())
		assert.Equal(t, "en", cfg.Constants.DefaultLocale)
		assert.Equal(t, "browser", cfg.Constants.BuildTarget)

		abs, err := filepath.Abs(dir)
		require.NoError(t, err)
		assert.Equal(t, abs, cfg.Constants.MessagesDir)
		assert.Equal(t, abs, cfg.Rules[2].Directory)
	})

	t.Run("missing message directory is fatal", func(t *testing.T) {
		t.Parallel()
		_, err := localekit.Configure(localekit.WithMessagesDir("testdata/nope"))
		require.Error(t, err)
		require.ErrorIs(t, err, locales.ErrUnreadableDir)
	})

	t.Run("default locale override applies when available", func(t *testing.T) {
		t.Parallel()
		dir := writeMessages(t, "fr.yml", "de.yml")

		cfg, err := localekit.Configure(
			localekit.WithMessagesDir(dir),
			localekit.WithDefaultLocale("de"),
		)
		require.NoError(t, err)
		assert.Equal(t, "de", cfg.Constants.DefaultLocale)
	})

	t.Run("absent override falls back to first entry", func(t *testing.T) {
		t.Parallel()
		dir := writeMessages(t, "fr.yml")

		cfg, err := localekit.Configure(
			localekit.WithMessagesDir(dir),
			localekit.WithDefaultLocale("de"),
		)
		require.NoError(t, err)
		assert.Equal(t, "en", cfg.Constants.DefaultLocale)
	})

	t.Run("allow list narrows the build", func(t *testing.T) {
		t.Parallel()
		dir := writeMessages(t, "fr.yml", "de.yml", "pl.yml")

		cfg, err := localekit.Configure(
			localekit.WithMessagesDir(dir),
			localekit.WithAllowList("fr"),
		)
		require.NoError(t, err)
		assert.Equal(t, locales.Set{"en", "fr"}, cfg.Locales())
	})

	t.Run("message rule matches exactly the active files", func(t *testing.T) {
		t.Parallel()
		dir := writeMessages(t, "fr.yml", "de.yml", "ja.yml")

		cfg, err := localekit.Configure(
			localekit.WithMessagesDir(dir),
			localekit.WithAllowList("fr", "de"),
		)
		require.NoError(t, err)

		rule := cfg.Rules[2]
		re := regexp.MustCompile(rule.ModulePattern)
		assert.True(t, re.MatchString(filepath.ToSlash(filepath.Join(dir, "fr.yml"))))
		assert.True(t, re.MatchString(filepath.ToSlash(filepath.Join(dir, "de.yml"))))
		assert.True(t, re.MatchString(filepath.ToSlash(filepath.Join(dir, "en.yml"))))
		assert.False(t, re.MatchString(filepath.ToSlash(filepath.Join(dir, "ja.yml"))))
	})

	t.Run("data rules use languages minus the base", func(t *testing.T) {
		t.Parallel()
		dir := writeMessages(t, "fr.yml", "pt-BR.yml", "en-GB.yml")

		cfg, err := localekit.Configure(localekit.WithMessagesDir(dir))
		require.NoError(t, err)

		re := regexp.MustCompile(cfg.Rules[0].ModulePattern)
		assert.True(t, re.MatchString("locale-data/fr.js"))
		assert.True(t, re.MatchString("locale-data/pt.js"))
		// Base-language data ships with the library bundle already.
		assert.False(t, re.MatchString("locale-data/en.js"))
	})

	t.Run("context rule matchers notify through the logger wiring", func(t *testing.T) {
		t.Parallel()
		dir := writeMessages(t, "fr.yml")

		cfg, err := localekit.Configure(localekit.WithMessagesDir(dir))
		require.NoError(t, err)

		rule := cfg.Rules[2]
		assert.True(t, rule.MatchContext(rule.Directory))
		assert.False(t, rule.MatchContext("/some/other/dir"))
		assert.True(t, rule.MatchModule("fr.yml") || rule.MatchModule("./fr.yml"))
	})

	t.Run("custom libraries drive rules and aliases", func(t *testing.T) {
		t.Parallel()
		dir := writeMessages(t, "fr.yml")

		cfg, err := localekit.Configure(
			localekit.WithMessagesDir(dir),
			localekit.WithFormatLibrary(localekit.Library{
				Name:     "fmtlib",
				DataDir:  "vendor/fmtlib/data",
				DataFree: "fmtlib/core",
			}),
		)
		require.NoError(t, err)

		assert.Equal(t, "vendor/fmtlib/data", cfg.Rules[0].Directory)
		assert.Equal(t, localekit.Alias{From: "fmtlib", To: "fmtlib/core"}, cfg.Aliases[0])
	})
}

func TestConstantsDefine(t *testing.T) {
	t.Parallel()

	dir := writeMessages(t, "fr.yml")

	cfg, err := localekit.Configure(localekit.WithMessagesDir(dir))
	require.NoError(t, err)

	defs := cfg.Constants.Define()
	assert.Equal(t, `"server"`, defs["LOCALEKIT_BUILD_TARGET"])
	assert.Equal(t, `"en"`, defs["LOCALEKIT_DEFAULT_LOCALE"])
	assert.Equal(t, `["en","fr"]`, defs["LOCALEKIT_LOCALES"])
	assert.Contains(t, defs["LOCALEKIT_MESSAGES_DIR"], dir)
}

func TestConfigureIdempotence(t *testing.T) {
	t.Parallel()

	dir := writeMessages(t, "fr.yml", "de.yml")

	configure := func() *localekit.Config {
		cfg, err := localekit.Configure(
			localekit.WithMessagesDir(dir),
			localekit.WithDefaultLocale("de"),
			localekit.WithTarget(config.TargetBrowser),
		)
		require.NoError(t, err)
		return cfg
	}

	a, b := configure(), configure()

	var bufA, bufB bytes.Buffer
	require.NoError(t, a.WriteJSON(&bufA))
	require.NoError(t, b.WriteJSON(&bufB))
	require.Equal(t, bufA.Bytes(), bufB.Bytes())
}
