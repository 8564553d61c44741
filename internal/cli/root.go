// Package cli implements identityctl, which runs resolution queries against the configured
// sources and prints the JSON result.
package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"custid/internal/bootstrap"
	"custid/internal/identity/models"
	"custid/internal/platform/config"
	"custid/internal/platform/logger"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Tenant  string
	Verbose bool
}

// Builder constructs the application for one command run. Tests swap it for an in-memory app.
type Builder func(ctx context.Context, cfg config.Server, logger *slog.Logger) (*bootstrap.App, error)

// defaultBuilder reads configuration from the environment, as the server does.
func defaultBuilder(ctx context.Context, cfg config.Server, logger *slog.Logger) (*bootstrap.App, error) {
	return bootstrap.Build(ctx, cfg, logger, nil)
}

// NewRootCommand creates the root command.
func NewRootCommand() *cobra.Command {
	return newRootCommand(defaultBuilder)
}

func newRootCommand(build Builder) *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "identityctl",
		Short: "Resolve customers across storefront, bookings and support",
		Long: `Run read-only identity lookups against the configured sources.

Sources are selected by the same environment variables the server reads
(DATABASE_URL, REDIS_URL). Output is always JSON.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&opts.Tenant, "tenant", "", "tenant UUID scoping the lookup (required)")
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "log to stderr")
	_ = cmd.MarkPersistentFlagRequired("tenant")

	cmd.AddCommand(newEmailCommand(opts, build))
	cmd.AddCommand(newPhoneCommand(opts, build))
	cmd.AddCommand(newReferenceCommand(opts, build))
	cmd.AddCommand(newAmbiguousCommand(opts, build))

	return cmd
}

// run parses the scope, builds the app, runs query and prints its result.
func run(cmd *cobra.Command, opts *RootOptions, build Builder, query func(ctx context.Context, app *bootstrap.App, scope models.TenantScope) (any, error)) error {
	scope, err := models.ParseTenantScope(opts.Tenant)
	if err != nil {
		return err
	}

	cfg, err := config.FromEnv()
	if err != nil {
		return err
	}
	log := slog.New(slog.DiscardHandler)
	if opts.Verbose {
		log = logger.NewWithWriter(cmd.ErrOrStderr(), cfg.LogLevel)
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	app, err := build(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer app.Close()

	result, err := query(ctx, app, scope)
	if err != nil {
		return err
	}
	return writeJSON(cmd.OutOrStdout(), result)
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode result: %w", err)
	}
	return nil
}
