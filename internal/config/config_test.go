package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"
)

func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("CLIENTTABLE_CONFIG", "")
	t.Chdir(t.TempDir())
	return home
}

func TestLoadDefaults(t *testing.T) {
	home := isolate(t)

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, filepath.Join(home, ".local", "share", "clienttable", "clients.db"), cfg.Database.Path)
	require.Equal(t, 10, cfg.View.PageSize)
	require.Equal(t, BackendSQLite, cfg.Storage.Backend)
	require.Equal(t, language.English, cfg.UI.LocaleTag())
	require.Equal(t, slog.LevelInfo, cfg.Log.SlogLevel())
}

func TestLoadFileAndEnv(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[view]
page_size = 20

[storage]
backend = "file"

[ui]
locale = "de"
`), 0o600))
	t.Setenv("CLIENTTABLE_CONFIG", path)
	t.Setenv("CLIENTTABLE_LOG_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, 20, cfg.View.PageSize)
	require.Equal(t, BackendFile, cfg.Storage.Backend)
	require.Equal(t, language.German, cfg.UI.LocaleTag())
	require.Equal(t, slog.LevelDebug, cfg.Log.SlogLevel())
}

func TestLoadReadsDotEnv(t *testing.T) {
	isolate(t)
	require.NoError(t, os.WriteFile(".env", []byte("CLIENTTABLE_VIEW_PAGE_SIZE=15\n"), 0o600))
	t.Cleanup(func() { _ = os.Unsetenv("CLIENTTABLE_VIEW_PAGE_SIZE") })

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, 15, cfg.View.PageSize)
}

func TestValidate(t *testing.T) {
	valid := Config{
		Database: DatabaseConfig{Path: "x.db"},
		Storage:  StorageConfig{Backend: BackendMemory},
		View:     ViewConfig{PageSize: 10},
		UI:       UIConfig{Locale: "en-AU"},
		Log:      LogConfig{Level: "warn"},
	}
	require.NoError(t, valid.Validate())

	cases := map[string]func(*Config){
		"zero page size": func(c *Config) { c.View.PageSize = 0 },
		"huge page size": func(c *Config) { c.View.PageSize = 10_000 },
		"bad backend":    func(c *Config) { c.Storage.Backend = "redis" },
		"no db path":     func(c *Config) { c.Database.Path = "" },
		"bad locale":     func(c *Config) { c.UI.Locale = "not a locale!" },
		"bad log level":  func(c *Config) { c.Log.Level = "loud" },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			c := valid
			mutate(&c)
			require.Error(t, c.Validate())
		})
	}
}

func TestSaveRoundTrip(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	t.Setenv("CLIENTTABLE_CONFIG", path)

	cfg, err := Load()
	require.NoError(t, err)
	cfg.View.PageSize = 42
	cfg.Storage.Backend = BackendFile
	require.NoError(t, Save(cfg))

	again, err := Load()
	require.NoError(t, err)
	require.Equal(t, cfg, again)
}
