package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/hiring-dna/internal/ai"
	"github.com/spigell/hiring-dna/internal/ai/gemini"
	"github.com/spigell/hiring-dna/internal/logger"
	"github.com/spigell/hiring-dna/internal/matching"
	"github.com/spigell/hiring-dna/internal/population"
	"github.com/spigell/hiring-dna/internal/profile"
	"github.com/spigell/hiring-dna/internal/secrets"
)

var errExit = errors.New("exit requested")

// setup builds the logger and the decoded config shared by every data command.
func setup() (*zap.Logger, *Config) {
	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}
	if config == nil {
		logger.Fatal("config is required")
	}

	logger.Info("starting the hiring-dna", zap.String("version", buildVersion()))

	// do not bother error since there is a valid parseable config
	pretty, _ := json.MarshalIndent(config, "", "  ")
	logger.Debug(fmt.Sprintf("starting with config: \n %s", pretty))

	return logger, config
}

// newEngine loads the population and wires the matching engine. The narrator is
// attached only when requested and configured; failures to build it are logged.
func newEngine(ctx context.Context, config *Config, logger *zap.Logger, withNarrator bool) *matching.Engine {
	if config.Data == nil || strings.TrimSpace(config.Data.Attorneys) == "" {
		logger.Fatal("attorneys data file is required",
			zap.String("hint", "set HIRING_DNA_ATTORNEYS environment variable or the 'data.attorneys' key in the configuration file"),
		)
	}

	pop, err := population.Load(config.Data.Attorneys, config.Data.HiringHistory)
	if err != nil {
		logger.Fatal("loading population", zap.Error(err))
	}
	logger.Info("population loaded",
		zap.Int("attorneys", pop.Candidates.Len()),
		zap.Int("hires", pop.Events.Len()),
	)

	opts := []matching.Option{
		matching.WithLogger(logger.Named("matching")),
		matching.WithCurrentYear(config.CurrentYear),
		matching.WithExcludeFile(config.ExcludeFile),
		matching.WithSimilarOptions(config.Prefilter),
	}
	if config.Profile != nil {
		opts = append(opts, matching.WithProfileOptions(profile.WithMinHires(config.Profile.MinHires)))
	}
	if config.Scoring != nil {
		opts = append(opts,
			matching.WithShortlist(config.Scoring.Shortlist),
			matching.WithMaxResults(config.Scoring.MaxResults),
			matching.WithTopCandidates(config.Scoring.TopCandidates),
		)
	}

	if withNarrator && config.AI != nil && config.AI.Enabled {
		narrator, err := newNarrator(ctx, config.AI, logger.Named("ai"))
		if err != nil {
			logger.Warn("skipping AI narrative", zap.Error(err))
		} else {
			opts = append(opts, matching.WithNarrator(narrator))
		}
	}

	return matching.New(pop, opts...)
}

func newNarrator(ctx context.Context, cfg *AIConfig, log *zap.Logger) (ai.Narrator, error) {
	provider := strings.TrimSpace(strings.ToLower(cfg.Provider))
	if provider != "" && provider != gemini.Provider {
		return nil, fmt.Errorf("unsupported ai provider: %s", cfg.Provider)
	}
	if cfg.Gemini == nil {
		return nil, errors.New("gemini configuration is required when ai is enabled")
	}

	apiKey, err := secrets.Load(secrets.Source{
		Name: "gemini api key",
		File: cfg.Gemini.APIKeyFile,
		Env:  "GEMINI_API_KEY",
	})
	if err != nil {
		return nil, fmt.Errorf("%w (set ai.gemini.api-key-file, GEMINI_API_KEY_FILE or GEMINI_API_KEY)", err)
	}

	genLogger := log.With(zap.Int("ai_retry_attempts", cfg.Gemini.MaxRetries))
	generator, err := gemini.NewGenerator(ctx, apiKey, cfg.Gemini.Model, cfg.Gemini.MaxRetries, genLogger)
	if err != nil {
		return nil, err
	}

	narratorLogger := logger.WithAIFields(log, gemini.Provider, generator.Model())
	return gemini.NewNarrator(generator, narratorLogger, cfg.Gemini.MaxLogLength), nil
}

// readText returns the contents of path, or stdin when path is "-".
func readText(path string) (string, error) {
	if path == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("reading stdin: %w", err)
		}
		return string(data), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", path, err)
	}
	return string(data), nil
}

func logJSON(logger *zap.Logger, message string, v any, fields ...zap.Field) {
	pretty, _ := json.MarshalIndent(v, "", "  ")
	logger.Info(message+"\n"+string(pretty), fields...)
}
