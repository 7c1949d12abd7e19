package commands

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wichananm65/estate-crm/internal/config"
)

func withConfig(t *testing.T, cfg config.Config, err error) {
	t.Helper()
	prev := loadConfig
	loadConfig = func() (config.Config, error) { return cfg, err }
	t.Cleanup(func() { loadConfig = prev })
}

func TestRootCmd_Subcommands(t *testing.T) {
	names := map[string]bool{}
	for _, c := range RootCmd().Commands() {
		names[c.Name()] = true
	}
	assert.True(t, names["serve"])
	assert.True(t, names["migrate"])
	assert.True(t, names["notify"])
}

func TestMigrateCmd_RequiresDatabase(t *testing.T) {
	withConfig(t, config.Config{LogLevel: "error"}, nil)

	root := RootCmd()
	root.SetArgs([]string{"migrate"})
	root.SetOut(&bytes.Buffer{})
	err := root.ExecuteContext(t.Context())
	assert.ErrorIs(t, err, config.ErrMissingDatabaseURL)
}

func TestNotifyCmd_ConfigError(t *testing.T) {
	boom := errors.New("boom")
	withConfig(t, config.Config{}, boom)

	root := RootCmd()
	root.SetArgs([]string{"notify"})
	err := root.ExecuteContext(t.Context())
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
}

func TestOpenCache_FallsBackToMemory(t *testing.T) {
	withConfig(t, config.Config{LogLevel: "error"}, nil)

	e, err := newEnv()
	require.NoError(t, err)
	defer e.close()

	require.NoError(t, e.openCache(t.Context()))
	assert.NotNil(t, e.cache)
	assert.Nil(t, e.redis)
}

func TestServeCmd_Flags(t *testing.T) {
	cmd := ServeCmd()
	assert.NotNil(t, cmd.Flags().Lookup("addr"))
	assert.NotNil(t, cmd.Flags().Lookup("memory"))
}
