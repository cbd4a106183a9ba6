package cli

import (
	"github.com/spf13/cobra"

	"github.com/chartpool/chartpool/pkg/logger"
)

func RootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "chartpool",
		Short: "Chart series configuration validator",
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			logLevel, logJSON, err := logger.GetLoggerConfig(cmd)
			if err != nil {
				logLevel, logJSON = "info", false
			}
			logger.SetupLogger(logLevel, logJSON)
		},
	}

	root.PersistentFlags().String("log-level", "info", "log level (debug, info, warn, error)")
	root.PersistentFlags().Bool("log-json", false, "log in JSON format")

	root.AddCommand(
		ValidateCmd(),
	)

	return root
}
