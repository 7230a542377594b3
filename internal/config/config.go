// Package config assembles installer and launcher settings from defaults,
// an optional TOML file and the environment.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/vtx-plugins/vtx-installer/internal/messages"
)

// Defaults.
const (
	DefaultBinary    = "vtx"
	DefaultRepo      = "vtx-plugins/vtx-cli"
	DefaultVersion   = "latest"
	DefaultMaxBytes  = int64(512 * 1024 * 1024)
	defaultDirName   = ".vtx"
	defaultFileName  = "config.toml"
	defaultBinSubdir = "bin"
)

// Environment variables read by Load.
const (
	EnvBinary         = "VTX_BINARY"
	EnvVersion        = "VTX_VERSION"
	EnvVersionCompat  = "VERSION"
	EnvRepo           = "VTX_REPO"
	EnvRepoCompat     = "REPO"
	EnvToken          = "VTX_GITHUB_TOKEN"
	EnvTokenCompat    = "GITHUB_TOKEN"
	EnvInstallDir     = "VTX_INSTALL_DIR"
	EnvNoPath         = "NO_PATH"
	EnvQuiet          = "QUIET"
	EnvDebug          = "VTX_DEBUG"
	EnvConfig         = "VTX_CONFIG"
	EnvReleaseHost    = "VTX_RELEASE_HOST"
	EnvAPIHost        = "VTX_API_HOST"
	EnvOS             = "VTX_OS"
	EnvArch           = "VTX_ARCH"
	EnvMaxBytes       = "VTX_MAX_DOWNLOAD_BYTES"
	EnvFallbackBinary = "VTX_FALLBACK_BINARY"
	EnvPath           = "PATH"
)

// Config is the resolved configuration of one process.
type Config struct {
	// Binary is the executable name and the archive name prefix.
	Binary string

	Version          string
	Repo             string
	Token            string
	InstallDir       string
	NoPath           bool
	Quiet            bool
	Debug            bool
	ReleaseHost      string
	APIHost          string
	OS               string
	Arch             string
	MaxDownloadBytes int64
	FallbackBinary   string

	// ConfigPath is the config file consulted, whether or not it existed.
	ConfigPath string

	// SearchPath is the PATH value, used for the post-install hint.
	SearchPath string
}

// fileConfig mirrors the keys accepted in config.toml.
type fileConfig struct {
	Binary           string `toml:"binary"`
	Version          string `toml:"version"`
	Repo             string `toml:"repo"`
	InstallDir       string `toml:"install_dir"`
	NoPath           *bool  `toml:"no_path"`
	Quiet            *bool  `toml:"quiet"`
	ReleaseHost      string `toml:"release_host"`
	APIHost          string `toml:"api_host"`
	MaxDownloadBytes int64  `toml:"max_download_bytes"`
	FallbackBinary   string `toml:"fallback_binary"`
}

// BinaryName returns the configured executable name, defaulting to "vtx".
func (c Config) BinaryName() string {
	if c.Binary == "" {
		return DefaultBinary
	}
	return c.Binary
}

// BinaryPath returns the installed executable path.
func (c Config) BinaryPath(windows bool) string {
	name := c.BinaryName()
	if windows {
		name += ".exe"
	}
	return filepath.Join(c.InstallDir, name)
}

// Load builds a Config. Precedence is environment, then config file, then defaults.
// A missing config file is ignored unless VTX_CONFIG names it explicitly.
func Load(sys System) (Config, error) {
	home, err := sys.HomeDir()
	if err != nil {
		return Config{}, fmt.Errorf(messages.ConfigResolveHomeFmt, err)
	}

	cfg := Config{
		Binary:           DefaultBinary,
		Version:          DefaultVersion,
		Repo:             DefaultRepo,
		InstallDir:       filepath.Join(home, defaultDirName, defaultBinSubdir),
		MaxDownloadBytes: DefaultMaxBytes,
		ConfigPath:       filepath.Join(home, defaultDirName, defaultFileName),
		SearchPath:       sys.Getenv(EnvPath),
	}

	explicit := strings.TrimSpace(sys.Getenv(EnvConfig))
	if explicit != "" {
		cfg.ConfigPath = expandHome(explicit, home)
	}
	if err := applyFile(sys, &cfg, home, explicit != ""); err != nil {
		return Config{}, err
	}
	if err := applyEnv(sys, &cfg, home); err != nil {
		return Config{}, err
	}
	if strings.ContainsAny(cfg.Binary, `/\`) || cfg.Binary == "." || cfg.Binary == ".." {
		return Config{}, fmt.Errorf(messages.ConfigInvalidBinaryFmt, cfg.Binary)
	}
	return cfg, nil
}

func applyFile(sys System, cfg *Config, home string, required bool) error {
	data, err := sys.ReadFile(cfg.ConfigPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) && !required {
			return nil
		}
		return fmt.Errorf(messages.ConfigReadFileFmt, cfg.ConfigPath, err)
	}

	var fc fileConfig
	if err := toml.Unmarshal(data, &fc); err != nil {
		return fmt.Errorf(messages.ConfigParseFileFmt, cfg.ConfigPath, err)
	}
	decoder := toml.NewDecoder(bytes.NewReader(data))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&fileConfig{}); err != nil {
		return fmt.Errorf(messages.ConfigUnknownKeysFmt, cfg.ConfigPath, err)
	}

	setString(&cfg.Binary, fc.Binary)
	setString(&cfg.Version, fc.Version)
	setString(&cfg.Repo, fc.Repo)
	if dir := strings.TrimSpace(fc.InstallDir); dir != "" {
		cfg.InstallDir = expandHome(dir, home)
	}
	if fc.NoPath != nil {
		cfg.NoPath = *fc.NoPath
	}
	if fc.Quiet != nil {
		cfg.Quiet = *fc.Quiet
	}
	setString(&cfg.ReleaseHost, fc.ReleaseHost)
	setString(&cfg.APIHost, fc.APIHost)
	if fc.MaxDownloadBytes < 0 {
		return fmt.Errorf(messages.ConfigInvalidBytesFmt, "max_download_bytes", strconv.FormatInt(fc.MaxDownloadBytes, 10))
	}
	if fc.MaxDownloadBytes > 0 {
		cfg.MaxDownloadBytes = fc.MaxDownloadBytes
	}
	if fb := strings.TrimSpace(fc.FallbackBinary); fb != "" {
		cfg.FallbackBinary = expandHome(fb, home)
	}
	return nil
}

func applyEnv(sys System, cfg *Config, home string) error {
	setString(&cfg.Binary, sys.Getenv(EnvBinary))
	setString(&cfg.Version, firstEnv(sys, EnvVersion, EnvVersionCompat))
	setString(&cfg.Repo, firstEnv(sys, EnvRepo, EnvRepoCompat))
	setString(&cfg.Token, firstEnv(sys, EnvToken, EnvTokenCompat))
	if dir := strings.TrimSpace(sys.Getenv(EnvInstallDir)); dir != "" {
		cfg.InstallDir = expandHome(dir, home)
	}
	if v, ok := envBool(sys, EnvNoPath); ok {
		cfg.NoPath = v
	}
	if v, ok := envBool(sys, EnvQuiet); ok {
		cfg.Quiet = v
	}
	if v, ok := envBool(sys, EnvDebug); ok {
		cfg.Debug = v
	}
	setString(&cfg.ReleaseHost, sys.Getenv(EnvReleaseHost))
	setString(&cfg.APIHost, sys.Getenv(EnvAPIHost))
	setString(&cfg.OS, sys.Getenv(EnvOS))
	setString(&cfg.Arch, sys.Getenv(EnvArch))
	if raw := strings.TrimSpace(sys.Getenv(EnvMaxBytes)); raw != "" {
		v, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || v <= 0 {
			return fmt.Errorf(messages.ConfigInvalidBytesFmt, EnvMaxBytes, raw)
		}
		cfg.MaxDownloadBytes = v
	}
	if fb := strings.TrimSpace(sys.Getenv(EnvFallbackBinary)); fb != "" {
		cfg.FallbackBinary = expandHome(fb, home)
	}
	return nil
}

// IsTruthy reports whether a boolean environment value counts as set.
func IsTruthy(raw string) bool {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", "0", "false", "no", "off":
		return false
	default:
		return true
	}
}

// envBool returns the boolean value of key and whether key was set at all.
func envBool(sys System, key string) (bool, bool) {
	raw := sys.Getenv(key)
	if raw == "" {
		return false, false
	}
	return IsTruthy(raw), true
}

func firstEnv(sys System, keys ...string) string {
	for _, key := range keys {
		if v := strings.TrimSpace(sys.Getenv(key)); v != "" {
			return v
		}
	}
	return ""
}

func setString(dst *string, v string) {
	if v = strings.TrimSpace(v); v != "" {
		*dst = v
	}
}

// expandHome replaces a leading "~" with home.
func expandHome(path string, home string) string {
	if path == "~" {
		return home
	}
	if strings.HasPrefix(path, "~/") || strings.HasPrefix(path, "~"+string(os.PathSeparator)) {
		return filepath.Join(home, path[2:])
	}
	return path
}
