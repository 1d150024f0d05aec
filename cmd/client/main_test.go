package main

import (
	"net"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/termchat/internal/config"
)

// newChatCmd returns a command with fresh chat flags and configPath set to a
// file under a temp dir.
func newChatCmd(t *testing.T) *cobra.Command {
	t.Helper()
	t.Setenv("TERMCHAT_SERVER", "")
	t.Setenv("TERMCHAT_LOG_FILE", "")
	t.Setenv("TERMCHAT_LOG_LEVEL", "")

	old := configPath
	configPath = filepath.Join(t.TempDir(), "config.yaml")
	t.Cleanup(func() { configPath = old })

	cmd := &cobra.Command{Use: "client"}
	addChatFlags(cmd)
	return cmd
}

func TestLoadConfigDefaults(t *testing.T) {
	cmd := newChatCmd(t)
	require.NoError(t, cmd.ParseFlags(nil))

	cfg, err := loadConfig(cmd)
	require.NoError(t, err)
	assert.Equal(t, config.DefaultConfig().Server, cfg.Server)
	assert.True(t, cfg.UI.ExitOnDisconnect)
}

func TestLoadConfigFlagsOverride(t *testing.T) {
	cmd := newChatCmd(t)
	require.NoError(t, cmd.ParseFlags([]string{
		"--server", "ws://chat.example:8080/ws",
		"--tick", "100ms",
		"--keep-open",
		"--name", "alice",
		"--log-file", "",
		"--log-level", "debug",
	}))

	cfg, err := loadConfig(cmd)
	require.NoError(t, err)
	assert.Equal(t, "ws://chat.example:8080/ws", cfg.Server.Address)
	assert.Equal(t, "100ms", cfg.UI.TickRate)
	assert.False(t, cfg.UI.ExitOnDisconnect)
	assert.Equal(t, "alice", cfg.UI.SelfLabel)
	assert.Equal(t, "", cfg.Logging.File)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestLoadConfigFileThenFlags(t *testing.T) {
	cmd := newChatCmd(t)
	fileCfg := config.DefaultConfig()
	fileCfg.Server.Address = "10.0.0.1:9000"
	fileCfg.UI.SelfLabel = "bob"
	require.NoError(t, fileCfg.Save(configPath))

	require.NoError(t, cmd.ParseFlags([]string{"--name", "carol"}))
	cfg, err := loadConfig(cmd)
	require.NoError(t, err)
	assert.Equal(t, "10.0.0.1:9000", cfg.Server.Address)
	assert.Equal(t, "carol", cfg.UI.SelfLabel)
}

func TestLoadConfigRejectsInvalid(t *testing.T) {
	cmd := newChatCmd(t)
	require.NoError(t, cmd.ParseFlags([]string{"--log-level", "chatty"}))

	_, err := loadConfig(cmd)
	assert.Error(t, err)
}

func TestRunChatConnectFailureIsNotAnError(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := ln.Addr().String()
	require.NoError(t, ln.Close())

	cmd := newChatCmd(t)
	require.NoError(t, cmd.ParseFlags([]string{"--server", addr, "--log-file", ""}))

	assert.NoError(t, runChat(cmd, nil))
}

func TestConfigInit(t *testing.T) {
	newChatCmd(t)
	forceInit = false
	t.Cleanup(func() { forceInit = false })

	require.NoError(t, initConfig(configInitCmd, nil))
	_, err := os.Stat(configPath)
	require.NoError(t, err)

	assert.Error(t, initConfig(configInitCmd, nil), "refuses to overwrite")

	forceInit = true
	assert.NoError(t, initConfig(configInitCmd, nil))

	cfg, err := config.Load(configPath)
	require.NoError(t, err)
	assert.Equal(t, config.DefaultConfig().Server, cfg.Server)
}
