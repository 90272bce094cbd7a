package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "mibprofile.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("HOME", t.TempDir())

	cfg, err := Load(New(), "")
	require.NoError(t, err)

	d := Defaults()
	assert.Equal(t, d.ProfilesRoot, cfg.ProfilesRoot)
	assert.Equal(t, d.Extensions, cfg.Extensions)
	assert.Equal(t, d.MIBRepository, cfg.MIBRepository)
	assert.Empty(t, cfg.MIBSources)
	assert.Equal(t, d.HTTPTimeout, cfg.HTTPTimeout)
	assert.True(t, cfg.Clipboard)
	assert.False(t, cfg.SystemMIBs)
}

func TestLoadPrecedence(t *testing.T) {
	file := writeConfig(t, `
profiles_root: /from/file
mib_repository: https://mibs.example.com/@mib@
extensions: [".mib", ".txt"]
http_timeout: 5s
clipboard: false
system_mibs: true
`)
	t.Setenv("MIBPROFILE_MIB_REPOSITORY", "https://env.example.com/@mib@")
	t.Setenv("MIBPROFILE_PROFILES_ROOT", "/from/env")

	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.String("profiles-root", "", "")
	fs.String("unbound", "", "")
	require.NoError(t, fs.Parse([]string{"--profiles-root", "/from/flag"}))

	v := New()
	require.NoError(t, BindFlags(v, fs, map[string]string{
		KeyProfilesRoot: "profiles-root",
		KeyClipboard:    "no-such-flag",
	}))

	cfg, err := Load(v, file)
	require.NoError(t, err)

	assert.Equal(t, "/from/flag", cfg.ProfilesRoot)
	assert.Equal(t, "https://env.example.com/@mib@", cfg.MIBRepository)
	assert.Equal(t, []string{".mib", ".txt"}, cfg.Extensions)
	assert.Equal(t, 5*time.Second, cfg.HTTPTimeout)
	assert.False(t, cfg.Clipboard)
	assert.True(t, cfg.SystemMIBs)
}

func TestLoadUnsetFlagKeepsLowerLayers(t *testing.T) {
	file := writeConfig(t, "profiles_root: /from/file\n")

	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.String("profiles-root", "", "")
	require.NoError(t, fs.Parse(nil))

	v := New()
	require.NoError(t, BindFlags(v, fs, map[string]string{KeyProfilesRoot: "profiles-root"}))

	cfg, err := Load(v, file)
	require.NoError(t, err)
	assert.Equal(t, "/from/file", cfg.ProfilesRoot)
}

func TestLoadEnvList(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("HOME", t.TempDir())
	t.Setenv("MIBPROFILE_MIB_SOURCES", "/usr/share/snmp/mibs,/opt/mibs")

	cfg, err := Load(New(), "")
	require.NoError(t, err)
	assert.Equal(t, []string{"/usr/share/snmp/mibs", "/opt/mibs"}, cfg.MIBSources)
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(New(), filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	bad := writeConfig(t, "profiles_root: [unterminated\n")
	_, err = Load(New(), bad)
	assert.Error(t, err)
}
