// Package config loads the generator configuration from config file,
// environment, and flags into an explicit struct passed to every entry
// point. Precedence follows the usual Viper order: defaults < appupgen.yaml
// < APPUPGEN_* environment variables < flags.
package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Flag and config key names shared by the CLI and the manager.
const (
	KeyReleaseName     = "release-name"
	KeyPreviousRoot    = "previous"
	KeyPreviousVersion = "previous-version"
	KeyCurrentRoot     = "current"
	KeyBaseDir         = "base-dir"
	KeyBuildDir        = "build-dir"
	KeyTargetDir       = "target-dir"
	KeyParallel        = "parallel"
	KeyVerbose         = "verbose"
)

// Configuration errors.
var (
	// ErrReleaseNameRequired is returned when no release name is configured.
	ErrReleaseNameRequired = errors.New("release name is required")

	// ErrPreviousRootRequired is returned when no previous release root is
	// configured.
	ErrPreviousRootRequired = errors.New("previous release root is required")
)

// Generate holds every input of a generate run. All paths are resolved; no
// entry point consults ambient process state beyond this struct.
type Generate struct {
	// ReleaseName is the release name shared by both snapshots.
	ReleaseName string
	// PreviousRoot is the previous release tree.
	PreviousRoot string
	// PreviousVersion overrides version discovery for the previous tree.
	// Empty means discover.
	PreviousVersion string
	// CurrentRoot is the current release tree. Empty means the conventional
	// <BaseDir>/rel/<ReleaseName> location.
	CurrentRoot string
	// BaseDir is the project base directory.
	BaseDir string
	// BuildDir is the active build output directory holding per-component
	// ebin directories; it is the second default emit target.
	BuildDir string
	// TargetDir, when set, replaces the default dual-write emit locations
	// with a single directory.
	TargetDir string
	// Parallel enables concurrent per-component plan synthesis.
	Parallel bool
	// Verbose enables debug logging.
	Verbose bool
}

// Manager loads Generate configurations through a Viper instance bound to a
// command's flag set.
type Manager struct {
	Viper *viper.Viper
}

// NewManager initializes a manager with config file search paths and
// environment handling, and binds the given flag set.
func NewManager(flags *pflag.FlagSet) (*Manager, error) {
	viperInstance := viper.New()
	viperInstance.SetConfigName("appupgen")
	viperInstance.SetConfigType("yaml")
	viperInstance.AddConfigPath(".")
	viperInstance.SetEnvPrefix("APPUPGEN")
	viperInstance.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viperInstance.AutomaticEnv()

	err := viperInstance.BindPFlags(flags)
	if err != nil {
		return nil, fmt.Errorf("binding flags: %w", err)
	}

	return &Manager{Viper: viperInstance}, nil
}

// Load reads the configuration, applies conventional defaults, and validates
// the required inputs.
func (m *Manager) Load() (*Generate, error) {
	err := m.Viper.ReadInConfig()
	if err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	cfg := &Generate{
		ReleaseName:     m.Viper.GetString(KeyReleaseName),
		PreviousRoot:    m.Viper.GetString(KeyPreviousRoot),
		PreviousVersion: m.Viper.GetString(KeyPreviousVersion),
		CurrentRoot:     m.Viper.GetString(KeyCurrentRoot),
		BaseDir:         m.Viper.GetString(KeyBaseDir),
		BuildDir:        m.Viper.GetString(KeyBuildDir),
		TargetDir:       m.Viper.GetString(KeyTargetDir),
		Parallel:        m.Viper.GetBool(KeyParallel),
		Verbose:         m.Viper.GetBool(KeyVerbose),
	}

	ApplyDefaults(cfg)

	err = Validate(cfg)
	if err != nil {
		return nil, err
	}

	return cfg, nil
}

// ApplyDefaults fills the conventional locations for fields left empty.
func ApplyDefaults(cfg *Generate) {
	if cfg.BaseDir == "" {
		cfg.BaseDir = "."
	}

	if cfg.CurrentRoot == "" && cfg.ReleaseName != "" {
		cfg.CurrentRoot = filepath.Join(cfg.BaseDir, "rel", cfg.ReleaseName)
	}

	if cfg.BuildDir == "" {
		cfg.BuildDir = filepath.Join(cfg.BaseDir, "_build", "default", "lib")
	}
}

// Validate checks the required inputs are present.
func Validate(cfg *Generate) error {
	if cfg.ReleaseName == "" {
		return ErrReleaseNameRequired
	}

	if cfg.PreviousRoot == "" {
		return ErrPreviousRootRequired
	}

	return nil
}
