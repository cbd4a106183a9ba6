package cli

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/chartpool/chartpool/engine/series"
	"github.com/chartpool/chartpool/pkg/logger"
)

func ValidateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate a chart series configuration file",
		RunE: func(cmd *cobra.Command, _ []string) error {
			path, err := cmd.Flags().GetString("file")
			if err != nil {
				return fmt.Errorf("failed to get file flag: %w", err)
			}
			return runValidate(path)
		},
	}
	cmd.Flags().StringP("file", "f", "chartpool.yaml", "path to the configuration file")
	return cmd
}

func runValidate(path string) error {
	log := logger.GetDefault()
	cfg, err := LoadConfig(path)
	if err != nil {
		return err
	}
	sources, err := BuildSources(cfg)
	if err != nil {
		return err
	}
	log.Debug("configuration loaded", "models", len(cfg.Models), "sources", len(sources))

	if len(cfg.Series) > 0 {
		input, err := resolveGroups(cfg.Series, sources, false)
		if err != nil {
			return err
		}
		pool, err := series.CleanDataPool(input)
		if err != nil {
			return fmt.Errorf("series validation failed: %w", err)
		}
		log.Info("series validated", "count", len(pool), "names", poolNames(pool))
	}

	if len(cfg.PivotSeries) > 0 {
		input, err := resolveGroups(cfg.PivotSeries, sources, true)
		if err != nil {
			return err
		}
		pool, err := series.CleanPivotDataPool(input)
		if err != nil {
			return fmt.Errorf("pivot series validation failed: %w", err)
		}
		log.Info("pivot series validated", "count", len(pool), "names", pivotPoolNames(pool))
	}

	if len(cfg.Series) == 0 && len(cfg.PivotSeries) == 0 {
		log.Warn("no series declared, nothing to validate")
	}
	return nil
}

func poolNames(pool series.DataPool) []string {
	names := make([]string, 0, len(pool))
	for name := range pool {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func pivotPoolNames(pool series.PivotDataPool) []string {
	names := make([]string, 0, len(pool))
	for name := range pool {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
