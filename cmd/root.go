package cmd

import (
	"errors"
	"io/fs"
	"log"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/spigell/hiring-dna/internal/filtering"
	"github.com/spigell/hiring-dna/internal/matching"
	"github.com/spigell/hiring-dna/internal/profile"
	"github.com/spigell/hiring-dna/internal/scoring"
)

const (
	app = "hiring-dna"
)

type Config struct {
	Data        *DataConfig              `mapstructure:"data"`
	CurrentYear int                      `mapstructure:"current-year"`
	ExcludeFile string                   `mapstructure:"exclude-file"`
	Profile     *ProfileConfig           `mapstructure:"profile"`
	Scoring     *ScoringConfig           `mapstructure:"scoring"`
	Prefilter   filtering.SimilarOptions `mapstructure:"prefilter"`
	AI          *AIConfig                `mapstructure:"ai"`
}

type DataConfig struct {
	Attorneys     string `mapstructure:"attorneys"`
	HiringHistory string `mapstructure:"hiring-history"`
}

type ProfileConfig struct {
	MinHires int `mapstructure:"min-hires"`
}

type ScoringConfig struct {
	Shortlist     int `mapstructure:"shortlist"`
	MaxResults    int `mapstructure:"max-results"`
	TopCandidates int `mapstructure:"top-candidates"`
}

type AIConfig struct {
	Enabled  bool          `mapstructure:"enabled"`
	Provider string        `mapstructure:"provider"`
	Gemini   *GeminiConfig `mapstructure:"gemini"`
}

type GeminiConfig struct {
	APIKeyFile   string `mapstructure:"api-key-file"`
	Model        string `mapstructure:"model"`
	MaxRetries   int    `mapstructure:"max-retries"`
	MaxLogLength int    `mapstructure:"max-log-length"`
}

var (
	// Used for flags.
	cfgFile string
	envFile string

	rootCmd = &cobra.Command{
		Use:   app,
		Short: "hiring-dna matches attorneys to law firms by their lateral hiring history",
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	envs := map[string]string{
		"data.attorneys":         "HIRING_DNA_ATTORNEYS",
		"data.hiring-history":    "HIRING_DNA_HISTORY",
		"ai.gemini.api-key-file": "GEMINI_API_KEY_FILE",
	}
	for key, env := range envs {
		if err := viper.BindEnv(key, env); err != nil {
			log.Fatalf("binding %s environment variable: %v", env, err)
		}
	}

	viper.SetDefault("profile.min-hires", profile.DefaultMinHires)
	viper.SetDefault("scoring.shortlist", matching.DefaultShortlist)
	viper.SetDefault("scoring.max-results", matching.DefaultMaxResults)
	viper.SetDefault("scoring.top-candidates", scoring.DefaultTopCandidates)
	viper.SetDefault("prefilter.min-criteria", filtering.DefaultMinCriteria)
	viper.SetDefault("prefilter.max-pool", filtering.DefaultMaxPool)
	viper.SetDefault("prefilter.min-pool", filtering.DefaultMinPool)
	viper.SetDefault("ai.provider", "gemini")

	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is hiring-dna.yaml in current directory)")
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "a dotenv file with environment variables, skipped when missing")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")

	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
}

func initConfig() {
	if versionCmd.CalledAs() != "" {
		return
	}

	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			log.Fatalf("loading %s: %v", envFile, err)
		}
	}

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName(app)
		viper.SetConfigType("yaml")
	}

	// Without an explicit --config the file is optional and env vars may carry everything.
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
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

	return config, nil
}
