package cmd

import (
	"strings"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spigell/hiring-dna/internal/logger"
	"github.com/spigell/hiring-dna/internal/matching"
)

var profileCmd = &cobra.Command{
	Use:   "profile [firm]",
	Short: "Show the hiring profile of a firm and the attorneys matching it best",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		showProfile(cmd, args)
	},
}

func init() {
	rootCmd.AddCommand(profileCmd)

	profileCmd.Flags().Int("top", 0, "how many attorneys to show (default is scoring.top-candidates)")
	profileCmd.Flags().BoolP("auto-approve", "y", false, "do not ask to choose a firm when the name does not resolve")
}

func showProfile(cmd *cobra.Command, args []string) {
	log, config := setup()

	if top, _ := cmd.Flags().GetInt("top"); top > 0 {
		if config.Scoring == nil {
			config.Scoring = &ScoringConfig{}
		}
		config.Scoring.TopCandidates = top
	}

	engine := newEngine(cmd.Context(), config, log, false)

	name := ""
	if len(args) > 0 {
		name = strings.TrimSpace(args[0])
	}

	if _, ok := engine.Profiles().Resolve(name); !ok || name == "" {
		if autoApprove, _ := cmd.Flags().GetBool("auto-approve"); autoApprove {
			log.Fatal("no hiring profile for firm", logger.FirmFields(name, "")...)
		}

		selected, err := chooseFirm(engine)
		if err != nil {
			log.Fatal("exiting", zap.Error(err))
		}
		name = selected
	}

	shortlist, ok := engine.TopCandidates(name)
	if !ok {
		log.Fatal("no hiring profile for firm", logger.FirmFields(name, "")...)
	}

	logJSON(log, "hiring profile", shortlist.Profile, logger.FirmFields(shortlist.Query, shortlist.Firm)...)
	logJSON(log, "top candidates", shortlist.Results, zap.Int("candidates count", len(shortlist.Results)))
}

func chooseFirm(engine *matching.Engine) (string, error) {
	firms := engine.Profiles().Firms()

	prompt := promptui.Select{
		Label: "Choose a firm and press ENTER (/ to search)",
		Items: firms,
		Size:  15,
		Searcher: func(input string, index int) bool {
			return strings.Contains(strings.ToLower(firms[index]), strings.ToLower(strings.TrimSpace(input)))
		},
	}

	_, selected, err := prompt.Run()
	return selected, err
}
