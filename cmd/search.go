package cmd

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/hiring-dna/internal/matching"
	"github.com/spigell/hiring-dna/internal/population"
	"github.com/spigell/hiring-dna/internal/scoring"
)

const (
	PromptReportByTier        = "Report by tier"
	PromptShowSummary         = "Show summary"
	PromptResultsToFile       = "Dump results to file"
	PromptAppendToExcludeFile = "Append shortlist to exclude file"
	PromptExit                = "Exit"
)

var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Rank attorneys against a job description",
	Run: func(cmd *cobra.Command, _ []string) {
		search(cmd)
	},
}

func init() {
	rootCmd.AddCommand(searchCmd)

	searchCmd.Flags().String("jd-file", "-", "file with the job description, - reads stdin")
	searchCmd.Flags().String("firm", "", "hiring firm name, skips firm extraction from the job description")
	searchCmd.Flags().Bool("skip-patterns", false, "do not apply firm hiring patterns")
	searchCmd.Flags().Bool("no-ai", false, "do not ask the AI provider for a narrative")
	searchCmd.Flags().BoolP("auto-approve", "y", false, "do not ask for actions, dump results to file and exit")
	searchCmd.Flags().StringP("exclude-file", "e", "", "special file with candidates to exclude. Default is unset.")

	viper.BindPFlag("exclude-file", searchCmd.Flags().Lookup("exclude-file"))
}

func search(cmd *cobra.Command) {
	ctx := context.Background()
	logger, config := setup()

	jdFile, _ := cmd.Flags().GetString("jd-file")
	text, err := readText(jdFile)
	if err != nil {
		logger.Fatal("reading job description", zap.Error(err))
	}

	noAI, _ := cmd.Flags().GetBool("no-ai")
	engine := newEngine(ctx, config, logger, !noAI)

	firm, _ := cmd.Flags().GetString("firm")
	skipPatterns, _ := cmd.Flags().GetBool("skip-patterns")

	result, err := engine.Search(ctx, matching.SearchRequest{
		JobDescription: text,
		Firm:           firm,
		SkipPatterns:   skipPatterns,
		UseNarrator:    !noAI,
	})
	if err != nil {
		logger.Fatal("search failed", zap.Error(err))
	}

	logger.Info("search finished",
		zap.Int("total", result.Funnel.Total),
		zap.Int("filtered", result.Funnel.Filtered),
		zap.Int("matched", result.Funnel.Matched),
		zap.Int("results", len(result.Results)),
	)

	if len(result.Results) == 0 {
		logger.Info(result.Summary)
		logger.Info("exiting", zap.String("reason", "no candidates matched"))
		return
	}

	if autoApprove, _ := cmd.Flags().GetBool("auto-approve"); autoApprove {
		if err := dumpResults(logger, result); err != nil {
			logger.Fatal("exiting", zap.Error(err))
		}
		logger.Info(summaryText(result))
		return
	}

	items := []string{PromptReportByTier, PromptShowSummary, PromptResultsToFile}
	if config.ExcludeFile != "" {
		items = append(items, PromptAppendToExcludeFile)
	}
	prompt := promptui.Select{
		Label: "What next?",
		Items: append(items, PromptExit),
	}

	for {
		_, action, err := prompt.Run()
		if err != nil {
			logger.Fatal("exiting", zap.Error(err))
		}

		if err := handleSearchAction(action, logger, config, result); err != nil {
			if errors.Is(err, errExit) {
				return
			}
			logger.Fatal("exiting", zap.Error(err))
		}
	}
}

func handleSearchAction(action string, logger *zap.Logger, config *Config, result *matching.SearchResult) error {
	switch action {
	case PromptReportByTier:
		logJSON(logger, "candidates by tier", matching.TierSummaries(result.Results), zap.Int("candidates count", len(result.Results)))
		return nil
	case PromptShowSummary:
		logger.Info(summaryText(result))
		return nil
	case PromptResultsToFile:
		return dumpResults(logger, result)
	case PromptAppendToExcludeFile:
		return appendToExcludeFile(logger, config.ExcludeFile, result.Results)
	case PromptExit:
		logger.Info("exiting", zap.String("reason", "got exit from prompt"))
		return errExit
	default:
		return fmt.Errorf("invalid action: %s", action)
	}
}

func summaryText(result *matching.SearchResult) string {
	if result.Narrative == nil {
		return result.Summary
	}

	var b strings.Builder
	b.WriteString(result.Narrative.Summary)
	for _, c := range result.Narrative.Candidates {
		fmt.Fprintf(&b, "\n%d. %s (%s) [%s]: %s", c.Rank, c.Name, c.CurrentFirm, c.Tier, c.Summary)
	}
	return b.String()
}

func dumpResults(logger *zap.Logger, result *matching.SearchResult) error {
	filename, err := population.DumpToTmpFile("hiring-dna-search-*.json", result)
	if err != nil {
		return fmt.Errorf("dump results to file: %w", err)
	}
	logger.Info("dumping result to file", zap.String("filename", filename))
	return nil
}

func appendToExcludeFile(logger *zap.Logger, path string, results []scoring.Result) error {
	excluded, err := population.GetExcludedCandidatesFromFile(path)
	if err != nil {
		return err
	}

	shortlist := &population.Candidates{}
	for _, r := range results {
		shortlist.Items = append(shortlist.Items, r.Candidate)
	}
	excluded.Append(shortlist.ToExcluded())

	if err := excluded.ToFile(path); err != nil {
		return err
	}

	logger.Info("appended to exclude file", zap.String("filename", path), zap.Int("count", shortlist.Len()))
	return nil
}
