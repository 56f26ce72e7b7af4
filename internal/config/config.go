package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all gsdev settings for one working tree.
type Config struct {
	Project ProjectConfig `mapstructure:"project"`
	Python  PythonConfig  `mapstructure:"python"`
	Tools   ToolsConfig   `mapstructure:"tools"`
	Test    TestConfig    `mapstructure:"test"`
	Clean   CleanConfig   `mapstructure:"clean"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// ProjectConfig names the package and its well-known directories, all
// relative to the working tree.
type ProjectConfig struct {
	Name        string `mapstructure:"name"`
	PackageDir  string `mapstructure:"package_dir"`
	DistDir     string `mapstructure:"dist_dir"`
	DocsDir     string `mapstructure:"docs_dir"`
	UnpackedDir string `mapstructure:"unpacked_dir"`
}

// PythonConfig selects the interpreter every python -m invocation goes
// through.
type PythonConfig struct {
	Interpreter string `mapstructure:"interpreter"`
}

// ToolsConfig names the external executables gsdev drives directly.
type ToolsConfig struct {
	Ruff      string `mapstructure:"ruff"`
	PreCommit string `mapstructure:"precommit"`
	Sphinx    string `mapstructure:"sphinx"`
}

// TestConfig tunes the pytest invocation and the retry policy applied to
// the default test task.
type TestConfig struct {
	SlowMarker string        `mapstructure:"slow_marker"`
	Workers    string        `mapstructure:"workers"`
	Retries    int           `mapstructure:"retries"`
	RetryDelay time.Duration `mapstructure:"retry_delay"`
}

// CleanConfig lists what the cleaner deletes: file base-name patterns and
// directory base names.
type CleanConfig struct {
	FilePatterns []string `mapstructure:"file_patterns"`
	DirNames     []string `mapstructure:"dir_names"`
}

// LoggingConfig selects the log level and output format.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Load reads configuration for the working tree rooted at workdir.
//
// Sources, in increasing precedence: built-in defaults, the config file
// (workdir/.gsdev.yaml unless file names an explicit path), then GSDEV_*
// environment variables. A missing default config file is fine; an explicit
// one must exist.
func Load(workdir, file string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("GSDEV")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", file, err)
		}
	} else {
		v.SetConfigName(".gsdev")
		v.SetConfigType("yaml")
		v.AddConfigPath(workdir)
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("reading config: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("project.name", "gridstatusio")
	v.SetDefault("project.package_dir", "gridstatusio")
	v.SetDefault("project.dist_dir", "dist")
	v.SetDefault("project.docs_dir", "docs")
	v.SetDefault("project.unpacked_dir", "unpacked_sdist")

	v.SetDefault("python.interpreter", "python3")

	v.SetDefault("tools.ruff", "ruff")
	v.SetDefault("tools.precommit", "pre-commit")
	v.SetDefault("tools.sphinx", "sphinx-build")

	v.SetDefault("test.slow_marker", "slow")
	v.SetDefault("test.workers", "auto")
	v.SetDefault("test.retries", 5)
	v.SetDefault("test.retry_delay", "3s")

	v.SetDefault("clean.file_patterns", []string{"*.pyc", "*.pyo", "*~", ".coverage.*"})
	v.SetDefault("clean.dir_names", []string{"__pycache__", ".pytest_cache", ".ruff_cache"})

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "text")
}

func (c *Config) validate() error {
	switch {
	case c.Project.Name == "":
		return errors.New("config: project.name must not be empty")
	case c.Project.PackageDir == "":
		return errors.New("config: project.package_dir must not be empty")
	case c.Project.DistDir == "":
		return errors.New("config: project.dist_dir must not be empty")
	case c.Project.DocsDir == "":
		return errors.New("config: project.docs_dir must not be empty")
	case c.Project.UnpackedDir == "":
		return errors.New("config: project.unpacked_dir must not be empty")
	case c.Python.Interpreter == "":
		return errors.New("config: python.interpreter must not be empty")
	case c.Test.Workers == "":
		return errors.New("config: test.workers must not be empty")
	case c.Test.SlowMarker == "":
		return errors.New("config: test.slow_marker must not be empty")
	case c.Test.Retries < 0:
		return fmt.Errorf("config: test.retries must not be negative, got %d", c.Test.Retries)
	case c.Test.RetryDelay < 0:
		return fmt.Errorf("config: test.retry_delay must not be negative, got %s", c.Test.RetryDelay)
	}
	for _, p := range c.Clean.FilePatterns {
		if _, err := filepath.Match(p, "probe"); err != nil {
			return fmt.Errorf("config: bad clean.file_patterns entry %q: %w", p, err)
		}
	}
	return nil
}
