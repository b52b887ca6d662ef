// Command replay feeds a saved webhook delivery through the reconciliation
// pipeline. By default it runs dry: the payload is mapped to its semantic
// event and handled against stub collaborators that print the calls they
// would have made. With --execute it uses the real GitHub and Trac clients,
// which is how a failed delivery logged by the server gets replayed.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	gh "github.com/google/go-github/v82/github"
	flag "github.com/spf13/pflag"

	githubadapter "github.com/chevah/github-hooks-server/internal/adapter/driven/github"
	sqliteadapter "github.com/chevah/github-hooks-server/internal/adapter/driven/sqlite"
	tracadapter "github.com/chevah/github-hooks-server/internal/adapter/driven/trac"
	httphandler "github.com/chevah/github-hooks-server/internal/adapter/driving/http"
	"github.com/chevah/github-hooks-server/internal/application"
	"github.com/chevah/github-hooks-server/internal/config"
	"github.com/chevah/github-hooks-server/internal/domain/model"
)

func main() {
	eventType := flag.String("event", "", "GitHub event type of the payload (pull_request, pull_request_review, issue_comment)")
	execute := flag.Bool("execute", false, "run against the real collaborators instead of printing intended calls")
	labels := flag.StringSlice("labels", nil, "labels to report as current in dry-run mode")
	branch := flag.String("branch", "", "head branch to use when the payload carries none")
	flag.Parse()

	if flag.NArg() != 1 || *eventType == "" {
		fmt.Fprintf(os.Stderr, "usage: replay --event <type> [--execute] [--labels l1,l2] [--branch b] <payload.json>\n")
		os.Exit(2)
	}

	if err := run(flag.Arg(0), *eventType, *execute, *labels, *branch); err != nil {
		slog.Error("replay failed", "error", err)
		os.Exit(1)
	}
}

func run(path, eventType string, execute bool, labels []string, branch string) error {
	payload, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	parsed, err := gh.ParseWebHook(eventType, payload)
	if err != nil {
		return fmt.Errorf("parsing payload as %q: %w", eventType, err)
	}

	event := httphandler.MapWebHook(parsed)
	if event.BranchName == "" {
		event.BranchName = branch
	}

	slog.Info("event mapped",
		"kind", event.Kind,
		"repo", event.RepoFullName,
		"pr", event.PRNumber,
		"branch", event.BranchName,
		"sender", event.SenderLogin,
	)

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	var reconciler *application.Reconciler
	if execute {
		cfg, err := config.Load()
		if err != nil {
			return err
		}

		db, err := sqliteadapter.NewDB(cfg.DBPath)
		if err != nil {
			return err
		}
		defer db.Close()
		if err := sqliteadapter.RunMigrations(db.Writer); err != nil {
			return err
		}

		tracClient, err := tracadapter.NewClient(cfg.TracURL, cfg.ExternalTimeout)
		if err != nil {
			return err
		}
		defer tracClient.Close()

		reconciler = application.NewReconciler(
			githubadapter.NewClient(cfg.GitHubToken),
			tracClient,
			sqliteadapter.NewActionRepo(db),
			slog.Default(),
		)
	} else {
		stub := &dryRunCollaborators{current: model.NewLabelSet(labels...)}
		reconciler = application.NewReconciler(stub, stub, stub, slog.Default())
	}

	outcome := reconciler.Handle(ctx, event)

	slog.Info("outcome",
		"disposition", outcome.Disposition,
		"labels", outcome.Labels.Sorted(),
		"comment", outcome.Comment,
	)
	if outcome.Disposition == model.DispositionError {
		return fmt.Errorf("delivery handled with errors: label=%v comment=%v", outcome.LabelErr, outcome.CommentErr)
	}
	return nil
}

// dryRunCollaborators implements all three driven ports by printing the
// calls the pipeline would make.
type dryRunCollaborators struct {
	current model.LabelSet
}

func (d *dryRunCollaborators) GetLabels(_ context.Context, repo string, pr int) (model.LabelSet, error) {
	fmt.Printf("dry-run: read labels of %s#%d: %v\n", repo, pr, d.current.Sorted())
	return d.current, nil
}

func (d *dryRunCollaborators) UpdateLabels(_ context.Context, repo string, pr int, remove, add []string) error {
	fmt.Printf("dry-run: update labels of %s#%d: remove %v, add %v\n", repo, pr, remove, add)
	return nil
}

func (d *dryRunCollaborators) AppendComment(_ context.Context, ticketID uint32, text string) error {
	fmt.Printf("dry-run: append to ticket %d:\n%s\n", ticketID, text)
	return nil
}

func (d *dryRunCollaborators) Record(_ context.Context, action model.Action) error {
	fmt.Printf("dry-run: record %s action by %s\n", action.Kind, action.Author)
	return nil
}

func (d *dryRunCollaborators) ListBetween(_ context.Context, _, _ time.Time) ([]model.Action, error) {
	return nil, nil
}
