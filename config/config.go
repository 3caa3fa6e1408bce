// Package config is an app level configuration facade. Values come from an
// optional JSON config file with environment variable overrides
package config

import (
	"encoding/json"
	"io/ioutil"
	"os"

	"github.com/pkg/errors"
)

// Default config file, relative to the working dir
const defaultConfigFile = "config/default.json"

// Log represents logger specific options
type Log struct {
	Level string `json:"level"`
}

// Classifier represents the external classification API settings.
// APIKey is a required credential
type Classifier struct {
	API    string `json:"api"`
	APIKey string `json:"apiKey"`
	Model  string `json:"model"`
}

// Storage represents storage settings
type Storage struct {
	Driver string `json:"driver"`
	DSN    string `json:"dsn"`
}

// AppConfig is a toplevel config structure
type AppConfig struct {
	Log        Log        `json:"log"`
	Classifier Classifier `json:"classifier"`
	Storage    Storage    `json:"storage"`
}

func envOverride(target *string, name string) {
	if value, ok := os.LookupEnv(name); ok {
		*target = value
	}
}

// LoadAppConfig will load and initialize app config structure.
// A missing classifier API key is a fatal startup condition
func LoadAppConfig() (*AppConfig, error) {
	appCfg := AppConfig{
		Log:        Log{Level: "info"},
		Classifier: Classifier{API: "https://api.openai.com", Model: "gpt-4o-mini"},
		Storage:    Storage{Driver: "sqlite3", DSN: "statements.db"},
	}

	configFile := defaultConfigFile
	envOverride(&configFile, "STP_CONFIG_FILE")
	if buffer, err := ioutil.ReadFile(configFile); err == nil {
		if err := json.Unmarshal(buffer, &appCfg); err != nil {
			return nil, errors.Wrapf(err, "Failed to parse config file %v", configFile)
		}
	} else if !os.IsNotExist(err) {
		return nil, errors.Wrapf(err, "Failed to read config file %v", configFile)
	}

	envOverride(&appCfg.Log.Level, "STP_LOG_LEVEL")
	envOverride(&appCfg.Classifier.API, "STP_CLASSIFIER_API")
	envOverride(&appCfg.Classifier.APIKey, "STP_CLASSIFIER_API_KEY")
	envOverride(&appCfg.Classifier.Model, "STP_CLASSIFIER_MODEL")
	envOverride(&appCfg.Storage.Driver, "STP_STORAGE_DRIVER")
	envOverride(&appCfg.Storage.DSN, "STP_STORAGE_DSN")

	if appCfg.Classifier.APIKey == "" {
		return nil, errors.New("Classifier API key is not set (STP_CLASSIFIER_API_KEY)")
	}

	return &appCfg, nil
}
