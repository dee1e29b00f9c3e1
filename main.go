package main

import (
	"os"

	"github.com/UnitVectorY-Labs/languagerankings/internal/config"
	"github.com/UnitVectorY-Labs/languagerankings/internal/crawler"
	"github.com/UnitVectorY-Labs/languagerankings/internal/generator"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

func main() {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           log.InfoLevel,
	})

	if err := rootCommand(logger).Execute(); err != nil {
		logger.Error("language-rankings failed", "err", err)
		os.Exit(1)
	}
}

func rootCommand(logger *log.Logger) *cobra.Command {
	return &cobra.Command{
		Use:   "language-rankings",
		Short: "Render a donut chart of a GitHub user's most used languages",
		Long: `language-rankings sums the language bytes of every repository owned by
GITHUB_USER, colors them with GitHub Linguist's palette and writes the
result to visualization.png. Set GITHUB_TOKEN to avoid anonymous rate limits.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if level, err := log.ParseLevel(cfg.LogLevel); err == nil {
				logger.SetLevel(level)
			} else {
				logger.Warn("Unknown log level, using info", "level", cfg.LogLevel)
			}

			result, err := crawler.Run(cmd.Context(), crawler.Options{
				User:          cfg.User,
				Token:         cfg.Token,
				BaseURL:       cfg.APIURL,
				LinguistOwner: config.LinguistOwner,
				LinguistRepo:  config.LinguistRepo,
				LinguistPath:  config.LinguistFilePath,
			}, logger)
			if err != nil {
				return err
			}

			return generator.Run(result, generator.Options{
				TopK:   cfg.TopK,
				Output: cfg.Output,
				Style:  generator.DefaultChartStyle(),
			}, logger)
		},
	}
}
