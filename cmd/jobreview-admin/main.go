// Command jobreview-admin inspects and updates the job ad store from a shell.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/jobpilot/jobreview/config"
	"github.com/jobpilot/jobreview/internal/bootstrap"
	"github.com/jobpilot/jobreview/internal/domain/model"
	"github.com/jobpilot/jobreview/internal/service"
)

// counter, pager and recorder are the slices of the review services the commands use.
type counter interface {
	Count(ctx context.Context) (service.CountSummary, error)
}

type pager interface {
	FetchPage(ctx context.Context, req model.PageRequest) (*model.JobAdPage, error)
}

type recorder interface {
	Record(ctx context.Context, id string, dateAdded int64, decision model.Decision) (model.JobAd, error)
}

// app bundles what the commands need once config is loaded.
type app struct {
	Counter  counter
	Pager    pager
	Recorder recorder
	PageSize int
}

// appFactory builds the app lazily so --help works without store configuration.
type appFactory func(ctx context.Context, logger *slog.Logger) (*app, error)

func main() {
	logger := bootstrap.InitLoggerTo(os.Stderr, slog.LevelWarn)
	if err := newRootCmd(newApp, logger).Execute(); err != nil {
		os.Exit(1) //nolint:forbidigo // CLI must signal failure to shell scripts
	}
}

func newRootCmd(factory appFactory, logger *slog.Logger) *cobra.Command {
	root := &cobra.Command{
		Use:          "jobreview-admin",
		Short:        "Inspect and update unprocessed job ads",
		SilenceUsage: true,
	}
	var current *app
	load := func(cmd *cobra.Command) (*app, error) {
		if current != nil {
			return current, nil
		}
		a, err := factory(cmd.Context(), logger)
		if err != nil {
			return nil, err
		}
		current = a
		return a, nil
	}

	root.AddCommand(
		newCountCmd(load),
		newListCmd(load),
		newDecideCmd(load),
	)
	return root
}

// newApp wires the admin commands against the configured DynamoDB table. Decisions from
// the CLI never touch review sessions, so session state stays in memory.
func newApp(ctx context.Context, logger *slog.Logger) (*app, error) {
	cfg, err := bootstrap.LoadConfig()
	if err != nil {
		return nil, err
	}
	cfg.State.Backend = config.StateBackendMemory

	dynamo, err := bootstrap.ConnectDynamo(ctx, bootstrap.DynamoConnectConfig{Dynamo: cfg.Dynamo, Logger: logger})
	if err != nil {
		return nil, fmt.Errorf("connect dynamodb: %w", err)
	}
	svcs, err := bootstrap.NewServices(&bootstrap.ServiceDeps{Config: &cfg, Dynamo: dynamo, Logger: logger})
	if err != nil {
		return nil, err
	}
	return &app{
		Counter:  svcs.Listing,
		Pager:    svcs.Jobs,
		Recorder: svcs.Decisions,
		PageSize: cfg.Listing.PageSize,
	}, nil
}
