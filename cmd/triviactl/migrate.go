package main

import (
	"context"
	"database/sql"
	"fmt"
	"io/fs"
	"path/filepath"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"github.com/gokatarajesh/trivia-api/db/migrations"
	"github.com/gokatarajesh/trivia-api/internal/config"
	"github.com/gokatarajesh/trivia-api/internal/trivia"
)

var migrateCmd = &cobra.Command{
	Use:       "migrate [up|down|status]",
	Short:     "Apply or inspect database migrations",
	Long:      "Runs goose migrations against PG_* settings. The embedded migrations are used unless --dir is given.",
	Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	ValidArgs: []string{"up", "down", "status"},
	RunE:      runMigrate,
}

func init() {
	migrateCmd.Flags().String("dir", "", "Read migrations from this directory instead of the embedded set")
}

func runMigrate(cmd *cobra.Command, args []string) error {
	logger := commandLogger(cmd)

	pg, err := config.Section[config.Postgres]()
	if err != nil {
		return err
	}

	var (
		fsys fs.FS = migrations.FS
		dir        = "."
	)
	if d, _ := cmd.Flags().GetString("dir"); d != "" {
		abs, err := filepath.Abs(d)
		if err != nil {
			return fmt.Errorf("resolve migration dir: %w", err)
		}
		fsys, dir = nil, abs
	}

	db, err := sql.Open("pgx", pg.DSN())
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()

	if err := db.PingContext(cmd.Context()); err != nil {
		return fmt.Errorf("ping database: %w", err)
	}

	goose.SetBaseFS(fsys)
	goose.SetTableName("goose_db_version")
	if err := goose.SetDialect("postgres"); err != nil {
		return err
	}

	logger.Info().
		Str("host", pg.Host).
		Str("database", pg.Database).
		Str("command", args[0]).
		Msg("running migrations")

	switch args[0] {
	case "up":
		err = goose.UpContext(cmd.Context(), db, dir)
	case "down":
		err = goose.DownContext(cmd.Context(), db, dir)
	case "status":
		err = goose.StatusContext(cmd.Context(), db, dir)
	}
	if err != nil {
		return fmt.Errorf("migrate %s: %w", args[0], err)
	}
	logger.Info().Str("command", args[0]).Msg("migrations finished")

	if args[0] != "status" {
		if err := invalidateCategoryCache(cmd.Context()); err != nil {
			logger.Warn().Err(err).Msg("category cache not invalidated; it refreshes after CATEGORY_CACHE_TTL")
		}
	}
	return nil
}

// invalidateCategoryCache drops the API's cached category mapping so migrated
// categories show up immediately. Without REDIS_ADDR there is nothing to drop.
func invalidateCategoryCache(ctx context.Context) error {
	rc, err := config.Section[config.Redis]()
	if err != nil {
		return err
	}
	if rc.Addr == "" {
		return nil
	}
	client := redis.NewClient(&redis.Options{Addr: rc.Addr, DB: rc.DB})
	defer client.Close()
	return dropCategories(ctx, trivia.NewCategoryCache(client, rc.TTL))
}

func dropCategories(ctx context.Context, cache trivia.CategoryCache) error {
	if err := cache.Invalidate(ctx); err != nil {
		return fmt.Errorf("invalidate category cache: %w", err)
	}
	return nil
}
