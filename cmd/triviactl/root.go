package main

import (
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/gokatarajesh/trivia-api/internal/logging"
)

var rootCmd = &cobra.Command{
	Use:           "triviactl",
	Short:         "Operator tooling for the trivia API",
	Long:          "triviactl applies schema migrations, imports questions from Open Trivia DB and issues editor tokens.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("log-level", "info", "Log level (debug, info, warn, error)")

	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(tokenCmd)
}

func commandLogger(cmd *cobra.Command) zerolog.Logger {
	level, _ := cmd.Flags().GetString("log-level")
	return logging.New("triviactl", "cli", level)
}
