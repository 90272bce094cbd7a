// Package config loads mibprofile settings from defaults, an optional YAML
// file, MIBPROFILE_* environment variables and command-line flags, in that
// order of increasing precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment variable, e.g. MIBPROFILE_PROFILES_ROOT.
const EnvPrefix = "MIBPROFILE"

// Setting keys.
const (
	KeyProfilesRoot  = "profiles_root"
	KeyExtensions    = "extensions"
	KeyMIBRepository = "mib_repository"
	KeyMIBSources    = "mib_sources"
	KeyHTTPTimeout   = "http_timeout"
	KeyClipboard     = "clipboard"
	KeySystemMIBs    = "system_mibs"
)

// Config holds the resolved settings.
type Config struct {
	// ProfilesRoot is where relative profile names resolve.
	ProfilesRoot string `mapstructure:"profiles_root"`
	// Extensions are the MIB source file extensions listed by generate.
	Extensions []string `mapstructure:"extensions"`
	// MIBRepository is the remote MIB URL template; @mib@ is replaced by the
	// module name. Empty disables remote fetching.
	MIBRepository string `mapstructure:"mib_repository"`
	// MIBSources are extra local directories searched for MIB sources.
	MIBSources  []string      `mapstructure:"mib_sources"`
	HTTPTimeout time.Duration `mapstructure:"http_timeout"`
	// Clipboard publishes output to the system clipboard when set.
	Clipboard bool `mapstructure:"clipboard"`
	// SystemMIBs adds the net-snmp and libsmi MIB directories of the host
	// to the local sources.
	SystemMIBs bool `mapstructure:"system_mibs"`
}

// Defaults returns the built-in settings.
func Defaults() Config {
	return Config{
		ProfilesRoot:  ".",
		Extensions:    []string{".my"},
		MIBRepository: "https://raw.githubusercontent.com/projx/snmp-mibs/master/@mib@",
		MIBSources:    []string{},
		HTTPTimeout:   30 * time.Second,
		Clipboard:     true,
	}
}

// New returns a viper instance holding the defaults and reading the
// environment.
func New() *viper.Viper {
	v := viper.New()
	d := Defaults()
	v.SetDefault(KeyProfilesRoot, d.ProfilesRoot)
	v.SetDefault(KeyExtensions, d.Extensions)
	v.SetDefault(KeyMIBRepository, d.MIBRepository)
	v.SetDefault(KeyMIBSources, d.MIBSources)
	v.SetDefault(KeyHTTPTimeout, d.HTTPTimeout)
	v.SetDefault(KeyClipboard, d.Clipboard)
	v.SetDefault(KeySystemMIBs, d.SystemMIBs)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	return v
}

// BindFlags binds setting keys to flags. Flags that are not defined in fs
// are ignored. A bound flag overrides the other layers only when set.
func BindFlags(v *viper.Viper, fs *pflag.FlagSet, keys map[string]string) error {
	for key, name := range keys {
		flag := fs.Lookup(name)
		if flag == nil {
			continue
		}
		if err := v.BindPFlag(key, flag); err != nil {
			return fmt.Errorf("binding flag %s: %w", name, err)
		}
	}
	return nil
}

// Load reads the config file and decodes the merged settings.
//
// When file is empty, $XDG_CONFIG_HOME/mibprofile/config.yaml (or the
// platform equivalent) is read if it exists.
func Load(v *viper.Viper, file string) (*Config, error) {
	if file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", file, err)
		}
	} else if dir, err := os.UserConfigDir(); err == nil {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(filepath.Join(dir, "mibprofile"))
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("reading config: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	return &cfg, nil
}
