package config

import (
	"os"
	"time"

	"emperror.dev/errors"
	"github.com/spf13/viper"
)

type GitHub struct {
	BaseUrl   string
	Timeout   time.Duration
	UserAgent string
}

type Output struct {
	// Timestamps appends a relative timestamp to every activity line.
	Timestamps bool
}

var Cfg = struct {
	GitHub GitHub
	Output Output
}{
	GitHub: GitHub{
		BaseUrl:   "https://api.github.com",
		Timeout:   10 * time.Second,
		UserAgent: "gh-activity",
	},
}

// Load initializes the configuration values.
// It may optionally be called with a list of additional paths to check for the
// config file.
// Returns a boolean indicating whether or not a config file was loaded and an
// error if one occurred.
func Load(paths []string) (bool, error) {
	loaded, err := loadFromFile(paths)
	loadFromEnv()
	return loaded, err
}

func loadFromFile(paths []string) (bool, error) {
	config := viper.New()

	config.SetConfigName("config")

	// Reasonable places to look for config files.
	config.AddConfigPath("$XDG_CONFIG_HOME/gh-activity")
	config.AddConfigPath("$HOME/.config/gh-activity")
	config.AddConfigPath("$GH_ACTIVITY_HOME")
	for _, path := range paths {
		config.AddConfigPath(path)
	}

	if err := config.ReadInConfig(); err != nil {
		if errors.As(err, &viper.ConfigFileNotFoundError{}) {
			return false, nil
		}
		return false, err
	}

	if err := config.Unmarshal(&Cfg); err != nil {
		return true, errors.Wrap(err, "failed to read gh-activity configs")
	}

	return true, nil
}

func loadFromEnv() {
	if apiURL := os.Getenv("GH_ACTIVITY_API_URL"); apiURL != "" {
		Cfg.GitHub.BaseUrl = apiURL
	}
	if timeout := os.Getenv("GH_ACTIVITY_TIMEOUT"); timeout != "" {
		if d, err := time.ParseDuration(timeout); err == nil {
			Cfg.GitHub.Timeout = d
		}
	}
}
