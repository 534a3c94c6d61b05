package main

import (
	"fmt"
	"net/http"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"

	"github.com/gokatarajesh/trivia-api/internal/config"
	"github.com/gokatarajesh/trivia-api/internal/db/repository"
	sqlcgen "github.com/gokatarajesh/trivia-api/internal/db/sqlc"
	"github.com/gokatarajesh/trivia-api/internal/importer"
)

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Import questions into the bank",
	Long:  "Fetches questions from Open Trivia DB (default), The Trivia API or a YAML/JSON file and stores those whose category maps onto a seeded category.",
	RunE:  runImport,
}

func init() {
	importCmd.Flags().Int("amount", 10, "Number of questions to fetch (1-50; 0 reads a whole file)")
	importCmd.Flags().String("difficulty", "", "Restrict to easy, medium or hard")
	importCmd.Flags().String("source", "opentdb", "Upstream to import from (opentdb, triviaapi, file)")
	importCmd.Flags().String("file", "", "Question file for --source file")
}

func runImport(cmd *cobra.Command, args []string) error {
	logger := commandLogger(cmd)

	amount, _ := cmd.Flags().GetInt("amount")
	name, _ := cmd.Flags().GetString("source")
	if name == "file" {
		if amount < 0 {
			return fmt.Errorf("--amount must not be negative, got %d", amount)
		}
	} else if amount < 1 || amount > 50 {
		return fmt.Errorf("--amount must be between 1 and 50, got %d", amount)
	}
	difficulty, _ := cmd.Flags().GetString("difficulty")
	switch difficulty {
	case "", "easy", "medium", "hard":
	default:
		return fmt.Errorf("--difficulty must be easy, medium or hard, got %q", difficulty)
	}

	pg, err := config.Section[config.Postgres]()
	if err != nil {
		return err
	}
	source, err := newSource(cmd, name)
	if err != nil {
		return err
	}

	pool, err := pgxpool.New(cmd.Context(), pg.DSN())
	if err != nil {
		return fmt.Errorf("connect postgres: %w", err)
	}
	defer pool.Close()

	queries := sqlcgen.New(pool)
	im := importer.New(source,
		repository.NewCategoryRepository(queries),
		repository.NewQuestionRepository(queries),
		logger,
	)

	res, err := im.Run(cmd.Context(), amount, difficulty)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "fetched %d, imported %d, skipped %d\n", res.Fetched, res.Imported, res.Skipped)
	return nil
}

func newSource(cmd *cobra.Command, name string) (importer.Source, error) {
	switch name {
	case "opentdb":
		upstream, err := config.Section[config.OpenTDB]()
		if err != nil {
			return nil, err
		}
		return importer.NewOpenTDBClient(upstream.BaseURL, &http.Client{Timeout: upstream.Timeout}), nil
	case "triviaapi":
		upstream, err := config.Section[config.TriviaAPI]()
		if err != nil {
			return nil, err
		}
		return importer.NewTriviaAPIClient(upstream.BaseURL, upstream.APIKey, nil), nil
	case "file":
		path, _ := cmd.Flags().GetString("file")
		if path == "" {
			return nil, fmt.Errorf("--file is required for --source file")
		}
		return importer.NewFileSource(path), nil
	default:
		return nil, fmt.Errorf("--source must be opentdb, triviaapi or file, got %q", name)
	}
}
