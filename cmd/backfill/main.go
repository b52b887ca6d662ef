// Command backfill loads historical review activity into the action
// database so leaderboards cover months before this service existed. Input
// is a ticket comment export, one tab-separated "timestamp, ticket id,
// comment head" line each; the markers in the comment heads, legacy
// spellings included, identify which comments were review activity.
//
// By default the parsed actions are printed. With --execute they are
// recorded in the database.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	flag "github.com/spf13/pflag"

	sqliteadapter "github.com/chevah/github-hooks-server/internal/adapter/driven/sqlite"
	"github.com/chevah/github-hooks-server/internal/application"
)

func main() {
	dbPath := flag.String("db", "hooks.db", "path to the action database")
	execute := flag.Bool("execute", false, "record the parsed actions instead of printing them")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintf(os.Stderr, "usage: backfill [--db path] [--execute] <export.tsv>\n")
		os.Exit(2)
	}

	if err := run(flag.Arg(0), *dbPath, *execute); err != nil {
		slog.Error("backfill failed", "error", err)
		os.Exit(1)
	}
}

func run(exportPath, dbPath string, execute bool) error {
	f, err := os.Open(exportPath)
	if err != nil {
		return err
	}
	defer f.Close()

	actions, err := application.ImportActions(f)
	if err != nil {
		return fmt.Errorf("parsing export %s: %w", exportPath, err)
	}
	slog.Info("export parsed", "path", exportPath, "actions", len(actions))

	if !execute {
		for _, a := range actions {
			fmt.Printf("%s\t%s\t%s\tticket %d\tPR #%d\n",
				a.OccurredAt.Format(time.RFC3339), a.Kind, a.Author, a.Ticket, a.PRNumber)
		}
		return nil
	}

	db, err := sqliteadapter.NewDB(dbPath)
	if err != nil {
		return err
	}
	defer db.Close()
	if err := sqliteadapter.RunMigrations(db.Writer); err != nil {
		return err
	}

	repo := sqliteadapter.NewActionRepo(db)
	ctx := context.Background()
	for _, a := range actions {
		if err := repo.Record(ctx, a); err != nil {
			return err
		}
	}
	slog.Info("actions recorded", "count", len(actions), "db", dbPath)
	return nil
}
