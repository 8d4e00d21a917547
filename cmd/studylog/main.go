// Command studylog runs study log maintenance tasks: migrations, exports,
// offline summaries and date checks.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"

	"github.com/comitanigiacomo/studylog-engine/internal/adapters/repository"
	"github.com/comitanigiacomo/studylog-engine/internal/cli"
	"github.com/comitanigiacomo/studylog-engine/internal/config"
	"github.com/comitanigiacomo/studylog-engine/internal/core/domain"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	var db *sqlx.DB
	open := func(ctx context.Context) (*sqlx.DB, error) {
		if db != nil {
			return db, nil
		}
		cfg, err := config.LoadTools()
		if err != nil {
			return nil, err
		}
		conn, err := sqlx.ConnectContext(ctx, "pgx", cfg.Database.DSN())
		if err != nil {
			return nil, fmt.Errorf("connecting to database: %w", err)
		}
		conn.SetMaxOpenConns(cfg.Database.MaxConns)
		conn.SetConnMaxLifetime(5 * time.Minute)
		db = conn
		return db, nil
	}

	app := &cli.App{
		Migrate: func(ctx context.Context) error {
			conn, err := open(ctx)
			if err != nil {
				return err
			}
			return repository.Migrate(ctx, conn)
		},
		Entries: func(ctx context.Context) (domain.LogEntryRepository, error) {
			conn, err := open(ctx)
			if err != nil {
				return nil, err
			}
			return repository.NewPostgresLogEntryRepository(conn), nil
		},
		Now: time.Now,
	}

	err := cli.NewRootCmd(app).ExecuteContext(ctx)
	if db != nil {
		db.Close()
	}
	stop()

	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
