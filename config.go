package scenekit

import (
	jlconfig "github.com/JeremyLoy/config"
	"github.com/rotisserie/eris"
	"github.com/rs/zerolog"
)

// EditorConfig carries the environment-driven settings of scene tooling
// built on this package.
type EditorConfig struct {
	// ProjectDir is the project base directory save paths are checked
	// against. Empty runs standalone.
	ProjectDir string `config:"SCENEKIT_PROJECT_DIR"`
	// LogLevel is a zerolog level name ("debug", "info", ...).
	LogLevel string `config:"SCENEKIT_LOG_LEVEL"`
	// LogPretty switches logs to human-readable console output.
	LogPretty bool `config:"SCENEKIT_LOG_PRETTY"`
	// BackupOnSave keeps the previous file contents as "<path>.bak" before
	// each save.
	BackupOnSave bool `config:"SCENEKIT_BACKUP_ON_SAVE"`
}

// LoadEditorConfig loads matching SCENEKIT_* environment variables into an
// EditorConfig and validates it.
func LoadEditorConfig() (EditorConfig, error) {
	cfg := EditorConfig{
		LogLevel: zerolog.InfoLevel.String(),
	}
	if err := jlconfig.FromEnv().To(&cfg); err != nil {
		return cfg, eris.Wrap(err, "load editor config")
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate checks field values that have a constrained domain.
func (c EditorConfig) Validate() error {
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		return eris.Wrapf(err, "invalid log level %q", c.LogLevel)
	}
	return nil
}
