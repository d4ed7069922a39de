package cmd

import (
	"log"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	app = "jobscout"
)

type Config struct {
	Listen  string         `mapstructure:"listen"`
	Search  *SearchConfig  `mapstructure:"search"`
	AI      *AIConfig      `mapstructure:"ai"`
	Session *SessionConfig `mapstructure:"session"`
}

type SearchConfig struct {
	Provider   string `mapstructure:"provider"`
	APIKey     string `mapstructure:"api-key"`
	APIKeyFile string `mapstructure:"api-key-file"`
	MaxResults int    `mapstructure:"max-results"`
	Topic      string `mapstructure:"topic"`
	TimeoutSec int    `mapstructure:"timeout-seconds"`
	MaxRetries int    `mapstructure:"max-retries"`
}

type AIConfig struct {
	Provider  string        `mapstructure:"provider"`
	Summaries bool          `mapstructure:"summaries"`
	Gemini    *GeminiConfig `mapstructure:"gemini"`
}

type GeminiConfig struct {
	APIKey     string `mapstructure:"api-key"`
	APIKeyFile string `mapstructure:"api-key-file"`
	Model      string `mapstructure:"model"`
	MaxRetries int    `mapstructure:"max-retries"`
}

type SessionConfig struct {
	Store      string       `mapstructure:"store"`
	Secret     string       `mapstructure:"secret"`
	SecretFile string       `mapstructure:"secret-file"`
	TTLMinutes int          `mapstructure:"ttl-minutes"`
	Redis      *RedisConfig `mapstructure:"redis"`
}

type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

var (
	// Used for flags.
	cfgFile string

	rootCmd = &cobra.Command{
		Use:   app,
		Short: "jobscout matches a job seeker's profile to listings, with AI chat and PDF export",
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is jobscout.yaml in current directory)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")

	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName(app + ".yaml")
	}

	// The config file is optional: every credential can come from the
	// environment. A present but unparseable file is fatal.
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			log.Fatal(err)
		}
	}
}

func getConfig() (*Config, error) {
	var config *Config
	err := viper.Unmarshal(&config)
	if err != nil {
		return config, err
	}

	if config == nil {
		config = &Config{}
	}
	if config.Search == nil {
		config.Search = &SearchConfig{}
	}
	if config.AI == nil {
		config.AI = &AIConfig{}
	}
	if config.AI.Gemini == nil {
		config.AI.Gemini = &GeminiConfig{}
	}
	if config.Session == nil {
		config.Session = &SessionConfig{}
	}

	return config, nil
}
