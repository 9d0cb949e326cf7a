package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var similarCmd = &cobra.Command{
	Use:   "similar <candidate-id>",
	Short: "List attorneys whose profiles resemble the given one",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		similar(cmd, args[0])
	},
}

func init() {
	rootCmd.AddCommand(similarCmd)

	similarCmd.Flags().Int("min-criteria", 0, "how many soft criteria a candidate has to meet")
	similarCmd.Flags().Int("max-pool", 0, "the largest pool to return")
	similarCmd.Flags().Int("min-pool", 0, "relax filters when the pool is smaller than this")

	viper.BindPFlag("prefilter.min-criteria", similarCmd.Flags().Lookup("min-criteria"))
	viper.BindPFlag("prefilter.max-pool", similarCmd.Flags().Lookup("max-pool"))
	viper.BindPFlag("prefilter.min-pool", similarCmd.Flags().Lookup("min-pool"))
}

func similar(cmd *cobra.Command, id string) {
	logger, config := setup()
	engine := newEngine(cmd.Context(), config, logger, false)

	result, err := engine.Similar(cmd.Context(), id)
	if err != nil {
		logger.Fatal("finding similar profiles", zap.Error(err))
	}

	logJSON(logger, "similar profiles", result.Pool.Items,
		zap.String("source", result.Source.Name()),
		zap.Int("candidates count", result.Pool.Len()),
	)
}
