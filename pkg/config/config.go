package config

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
)

// Environment variables that override the config file.
const (
	EnvHistory      = "CAREER_KIT_HISTORY"
	EnvQuestionBank = "CAREER_KIT_QUESTION_BANK"
	EnvAddr         = "CAREER_KIT_ADDR"
)

const (
	configDirName    = ".career-kit"
	configFileName   = "config.json"
	historyDirName   = "history"
	defaultAddr      = ":8080"
	defaultOutputDir = "./applications"
)

// Config represents the application configuration.
type Config struct {
	Name                 string        `json:"name"`
	HistoryLocation      string        `json:"history_location"`
	QuestionBankLocation string        `json:"question_bank_location,omitempty"`
	Server               ServerConfig  `json:"server"`
	Defaults             DefaultConfig `json:"defaults"`
	Seed                 *uint64       `json:"seed,omitempty"`
}

// ServerConfig holds HTTP API settings.
type ServerConfig struct {
	Addr string `json:"addr"`
}

// DefaultConfig holds default values for commands.
type DefaultConfig struct {
	OutputDir string `json:"output_dir"`
}

// DefaultPath returns $HOME/.career-kit/config.json.
func DefaultPath() (path string, err error) {
	var homeDir string
	homeDir, err = os.UserHomeDir()
	if err != nil {
		err = errors.Wrap(err, "failed to get user home directory")
		return path, err
	}
	path = filepath.Join(homeDir, configDirName, configFileName)
	return path, err
}

// Default returns the built-in configuration.
func Default() (cfg Config, err error) {
	var homeDir string
	homeDir, err = os.UserHomeDir()
	if err != nil {
		err = errors.Wrap(err, "failed to get user home directory")
		return cfg, err
	}

	cfg = Config{
		Name:            "your-name",
		HistoryLocation: filepath.Join(homeDir, configDirName, historyDirName),
		Server: ServerConfig{
			Addr: defaultAddr,
		},
		Defaults: DefaultConfig{
			OutputDir: defaultOutputDir,
		},
	}
	return cfg, err
}

// Load reads configuration from file with environment variable overrides.
// Without an explicit path, a missing default file yields the built-in
// configuration; an explicit path must exist.
func Load(configPath string) (cfg Config, err error) {
	cfg, err = Default()
	if err != nil {
		return cfg, err
	}

	path := configPath
	if path == "" {
		path, err = DefaultPath()
		if err != nil {
			return cfg, err
		}
	}

	var data []byte
	data, err = os.ReadFile(path)
	switch {
	case err == nil:
		err = json.Unmarshal(data, &cfg)
		if err != nil {
			err = errors.Wrapf(err, "failed to parse config file: %s", path)
			return cfg, err
		}
	case os.IsNotExist(err) && configPath == "":
		err = nil
	case os.IsNotExist(err):
		err = errors.Errorf("config file not found: %s (run 'career-kit init' to create)", path)
		return cfg, err
	default:
		err = errors.Wrapf(err, "failed to read config file: %s", path)
		return cfg, err
	}

	cfg.applyEnv()

	err = cfg.Validate()
	if err != nil {
		err = errors.Wrap(err, "config validation failed")
		return cfg, err
	}

	return cfg, err
}

func (c *Config) applyEnv() {
	if location := os.Getenv(EnvHistory); location != "" {
		c.HistoryLocation = location
	}
	if location := os.Getenv(EnvQuestionBank); location != "" {
		c.QuestionBankLocation = location
	}
	if addr := os.Getenv(EnvAddr); addr != "" {
		c.Server.Addr = addr
	}
}

// Validate checks the configuration and fills in defaults for optional
// settings.
func (c *Config) Validate() (err error) {
	if c.HistoryLocation == "" {
		err = errors.New("history_location is required in config")
		return err
	}

	if c.QuestionBankLocation != "" {
		_, err = os.Stat(c.QuestionBankLocation)
		if os.IsNotExist(err) {
			err = errors.Errorf("question bank file not found: %s", c.QuestionBankLocation)
			return err
		}
		if err != nil {
			err = errors.Wrapf(err, "failed to stat question bank file: %s", c.QuestionBankLocation)
			return err
		}
	}

	if c.Server.Addr == "" {
		c.Server.Addr = defaultAddr
	}

	if c.Defaults.OutputDir == "" {
		c.Defaults.OutputDir = defaultOutputDir
	}

	return err
}

// InitConfig creates a default configuration file.
func InitConfig(configPath string) (err error) {
	path := configPath
	if path == "" {
		path, err = DefaultPath()
		if err != nil {
			return err
		}
	}

	// Create directory if it doesn't exist
	dir := filepath.Dir(path)
	err = os.MkdirAll(dir, 0750)
	if err != nil {
		err = errors.Wrapf(err, "failed to create config directory: %s", dir)
		return err
	}

	// Check if file already exists
	_, err = os.Stat(path)
	if err == nil {
		err = errors.Errorf("config file already exists: %s", path)
		return err
	}

	var defaultConfig Config
	defaultConfig, err = Default()
	if err != nil {
		return err
	}

	var data []byte
	data, err = json.MarshalIndent(defaultConfig, "", "  ")
	if err != nil {
		err = errors.Wrap(err, "failed to marshal default config")
		return err
	}

	err = os.WriteFile(path, data, 0600)
	if err != nil {
		err = errors.Wrapf(err, "failed to write config file: %s", path)
		return err
	}

	return err
}
