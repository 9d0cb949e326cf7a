package cmd

import (
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spigell/hiring-dna/internal/logger"
)

var resolveCmd = &cobra.Command{
	Use:   "resolve [text]",
	Short: "Resolve firm and school names or extract requirements from text",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		resolve(cmd, args)
	},
}

func init() {
	rootCmd.AddCommand(resolveCmd)

	resolveCmd.Flags().String("firm", "", "firm name to resolve against firms with hiring history")
	resolveCmd.Flags().String("school", "", "school alias to resolve")
	resolveCmd.Flags().String("jd-file", "", "file with a job description to extract requirements from, - reads stdin")
}

func resolve(cmd *cobra.Command, args []string) {
	log, config := setup()
	engine := newEngine(cmd.Context(), config, log, false)

	if firm, _ := cmd.Flags().GetString("firm"); strings.TrimSpace(firm) != "" {
		match, ok := engine.Profiles().Match(firm, false)
		if !ok {
			log.Info("firm not resolved", logger.FirmFields(firm, "")...)
		} else {
			log.Info("firm resolved", logger.MatchFields(firm, match.Firm, match.Score)...)
		}
	}

	if school, _ := cmd.Flags().GetString("school"); strings.TrimSpace(school) != "" {
		log.Info("school resolved",
			zap.String("query", school),
			zap.String("school", engine.Schools().Resolve(school)),
		)
	}

	text := ""
	if len(args) > 0 {
		text = args[0]
	}
	if jdFile, _ := cmd.Flags().GetString("jd-file"); jdFile != "" {
		var err error
		if text, err = readText(jdFile); err != nil {
			log.Fatal("reading job description", zap.Error(err))
		}
	}

	if strings.TrimSpace(text) != "" {
		logJSON(log, "extracted requirements", engine.Extractor().Extract(text))
	}
}
