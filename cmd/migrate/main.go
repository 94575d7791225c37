// Command migrate applies, lists or cleans up the idolmatch schema.
//
//	migrate                 apply pending migrations
//	migrate -status         list known migrations and when they ran
//	migrate -purge          also delete expired idempotency keys
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"text/tabwriter"
	"time"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/ryunskeee/idolmatch/internal/config"
	"github.com/ryunskeee/idolmatch/internal/repo"
	"github.com/ryunskeee/idolmatch/internal/sysutil"
)

func main() {
	var (
		status = flag.Bool("status", false, "print migration status and exit")
		purge  = flag.Bool("purge", false, "delete expired idempotency keys after migrating")
		driver = flag.String("driver", "", "override DB_DRIVER")
		dsn    = flag.String("dsn", "", "override DB_DSN")
	)
	flag.Parse()

	cfg, err := config.Load()
	sysutil.SetupLogger(os.Stderr, "migrate", cfg.LogLevel, cfg.LogPretty)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}

	db, err := repo.OpenDB(repo.Options{
		Driver: sysutil.FirstNonEmpty(*driver, cfg.DB.Driver),
		DSN:    sysutil.FirstNonEmpty(*dsn, cfg.DB.DSN),
		Silent: true,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("open database")
	}

	ctx := context.Background()
	if *status {
		if err := printStatus(ctx, os.Stdout, db); err != nil {
			log.Fatal().Err(err).Msg("migration status")
		}
		return
	}
	if err := apply(ctx, db, *purge); err != nil {
		log.Fatal().Err(err).Msg("migrate")
	}
}

func apply(ctx context.Context, db *gorm.DB, purge bool) error {
	n, err := repo.Migrate(ctx, db)
	if err != nil {
		return err
	}
	log.Info().Int("applied", n).Msg("migrations complete")
	if !purge {
		return nil
	}
	purged, err := repo.PurgeExpiredIdempotency(ctx, db, time.Now().UTC())
	if err != nil {
		return err
	}
	log.Info().Int64("purged", purged).Msg("expired idempotency keys removed")
	return nil
}

func printStatus(ctx context.Context, w io.Writer, db *gorm.DB) error {
	rows, err := repo.Migrations(ctx, db)
	if err != nil {
		return err
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "VERSION\tNAME\tAPPLIED")
	for _, m := range rows {
		applied := "pending"
		if m.AppliedAt != nil {
			applied = m.AppliedAt.UTC().Format(time.RFC3339)
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\n", m.Version, m.Name, applied)
	}
	return tw.Flush()
}
