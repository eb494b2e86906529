package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/atticlabs/attic/internal/branding"
	"github.com/atticlabs/attic/internal/userdata"
	"github.com/spf13/viper"
)

const (
	fileName = "config"
	fileType = "yaml"
)

// Recognized configuration keys.
const (
	KeyBaseInstallDir = "base_install_dir"
	KeyWinePath       = "wine_path"
	KeyAPIURL         = "api_url"
	KeyUsername       = "username"
	KeyPassword       = "password"
)

// Settings is a snapshot of the configuration, threaded explicitly through
// commands instead of being read piecemeal mid-operation.
type Settings struct {
	BaseInstallDir string
	WinePath       string
	APIURL         string
	Username       string
	Password       string
}

// Dir returns the path to the attic config directory (~/.attic/).
func Dir() string {
	if v := os.Getenv(branding.EnvVar("HOME")); v != "" {
		return v
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", branding.HomeDir())
	}
	return filepath.Join(home, branding.HomeDir())
}

// FilePath returns the full path to the config file (~/.attic/config.yaml).
func FilePath() string {
	return filepath.Join(Dir(), fileName+"."+fileType)
}

// EnsureDir creates the config directory if it does not exist.
func EnsureDir() error {
	dir := Dir()
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("creating config directory %s: %w", dir, err)
	}
	return nil
}

// Load initializes Viper to read from the config file and environment.
func Load() {
	viper.SetConfigFile(FilePath())
	viper.SetConfigType(fileType)
	viper.SetEnvPrefix(branding.EnvPrefix())
	viper.AutomaticEnv()

	// Ignore error if config file doesn't exist yet.
	_ = viper.ReadInConfig()
}

// Get returns a config value by key. Returns empty string if not set.
func Get(key string) string {
	return viper.GetString(key)
}

// Set writes a config key-value pair and saves the config file.
func Set(key, value string) error {
	if err := EnsureDir(); err != nil {
		return err
	}

	viper.Set(key, value)

	configFile := FilePath()

	// The file holds cached credentials; it must never be readable by
	// anyone but the owner.
	if _, err := os.Stat(configFile); os.IsNotExist(err) {
		f, err := os.OpenFile(configFile, os.O_CREATE|os.O_WRONLY, userdata.FilePermSecure)
		if err != nil {
			return fmt.Errorf("creating config file %s: %w", configFile, err)
		}
		f.Close()
	}

	if err := viper.WriteConfigAs(configFile); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	// Tighten files created by earlier versions or by hand.
	if err := os.Chmod(configFile, userdata.FilePermSecure); err != nil {
		return fmt.Errorf("restricting config file permissions: %w", err)
	}

	return nil
}

// Current returns a snapshot of all recognized settings. APIURL falls back to
// the branded default when unset.
func Current() Settings {
	s := Settings{
		BaseInstallDir: Get(KeyBaseInstallDir),
		WinePath:       Get(KeyWinePath),
		APIURL:         Get(KeyAPIURL),
		Username:       Get(KeyUsername),
		Password:       Get(KeyPassword),
	}
	if s.APIURL == "" {
		s.APIURL = branding.APIURL()
	}
	if s.WinePath == "" {
		s.WinePath = "wine"
	}
	return s
}
