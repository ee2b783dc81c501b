// Config loading for the storykeeper CLI.
package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/petar-djukic/storykeeper/internal/spellcheck"
	"github.com/petar-djukic/storykeeper/pkg/types"
)

const (
	configFileName = "config"
	configFileType = "yaml"
	configFileExt  = "config.yaml"

	envPrefix = "STORYKEEPER"
)

// Config keys.
const (
	cfgKeyDatabase       = "database"
	cfgKeyLogLevel       = "log_level"
	cfgKeyWordList       = "spellcheck.wordlist"
	cfgKeyDictionaryMode = "import.dictionary_mode"
	cfgKeyContextsMode   = "import.contexts_mode"
)

const defaultLogLevel = "warn"

// configFile holds the structure written to config.yaml.
type configFile struct {
	Database   string           `yaml:"database,omitempty"`
	LogLevel   string           `yaml:"log_level"`
	Spellcheck spellcheckConfig `yaml:"spellcheck"`
	Import     importConfig     `yaml:"import"`
}

type spellcheckConfig struct {
	WordList string `yaml:"wordlist"`
}

type importConfig struct {
	DictionaryMode string `yaml:"dictionary_mode"`
	ContextsMode   string `yaml:"contexts_mode"`
}

func defaultConfigFile() configFile {
	return configFile{
		LogLevel:   defaultLogLevel,
		Spellcheck: spellcheckConfig{WordList: spellcheck.DefaultWordList},
		Import: importConfig{
			DictionaryMode: string(types.ImportMerge),
			ContextsMode:   string(types.ImportMerge),
		},
	}
}

// loadConfig reads config.yaml from configDir using Viper. A missing
// config.yaml is not an error; defaults and STORYKEEPER_* environment
// variables still apply.
func loadConfig(configDir string) (*viper.Viper, error) {
	def := defaultConfigFile()

	v := viper.New()
	v.SetDefault(cfgKeyDatabase, "")
	v.SetDefault(cfgKeyLogLevel, def.LogLevel)
	v.SetDefault(cfgKeyWordList, def.Spellcheck.WordList)
	v.SetDefault(cfgKeyDictionaryMode, def.Import.DictionaryMode)
	v.SetDefault(cfgKeyContextsMode, def.Import.ContextsMode)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetConfigName(configFileName)
	v.SetConfigType(configFileType)
	v.AddConfigPath(configDir)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return v, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}
	return v, nil
}

// writeConfigIfMissing creates config.yaml with default values if the file
// does not exist. It reports whether a file was written.
func writeConfigIfMissing(configDir string) (bool, error) {
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return false, fmt.Errorf("create config directory: %w", err)
	}

	path := filepath.Join(configDir, configFileExt)
	if _, err := os.Stat(path); err == nil {
		return false, nil
	} else if !os.IsNotExist(err) {
		return false, fmt.Errorf("stat config file: %w", err)
	}

	cfg := defaultConfigFile()
	data, err := yaml.Marshal(&cfg)
	if err != nil {
		return false, fmt.Errorf("marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return false, fmt.Errorf("write config: %w", err)
	}
	return true, nil
}
