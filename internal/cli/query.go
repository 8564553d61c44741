package cli

import (
	"context"

	"github.com/spf13/cobra"

	"custid/internal/bootstrap"
	"custid/internal/identity/models"
)

func newEmailCommand(opts *RootOptions, build Builder) *cobra.Command {
	return &cobra.Command{
		Use:   "email <address>",
		Short: "Resolve the customers holding an email address",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, opts, build, func(ctx context.Context, app *bootstrap.App, scope models.TenantScope) (any, error) {
				return app.Service.GetByEmail(ctx, scope, args[0])
			})
		},
	}
}

func newPhoneCommand(opts *RootOptions, build Builder) *cobra.Command {
	return &cobra.Command{
		Use:   "phone <number>",
		Short: "Resolve the customers holding a phone number",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, opts, build, func(ctx context.Context, app *bootstrap.App, scope models.TenantScope) (any, error) {
				return app.Service.GetByPhone(ctx, scope, args[0])
			})
		},
	}
}

func newReferenceCommand(opts *RootOptions, build Builder) *cobra.Command {
	return &cobra.Command{
		Use:   "reference <code>",
		Short: "Resolve the customer behind an order, booking or ticket reference",
		Long: `Resolve the customer behind a reference code.

Sources are tried in priority order (storefront, bookings, support); a code
reused by two sources resolves to the first. Prints null when no source
holds the code.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, opts, build, func(ctx context.Context, app *bootstrap.App, scope models.TenantScope) (any, error) {
				return app.Service.ResolveFromOrderReference(ctx, scope, args[0])
			})
		},
	}
}

func newAmbiguousCommand(opts *RootOptions, build Builder) *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "ambiguous",
		Short: "List identifiers mapping to conflicting contact details",
		Long: `List emails and phones that map to more than one value of the other
identifier. Only the most recent storefront orders are sampled
(AMBIGUITY_SCAN_WINDOW); this is not an exhaustive audit.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, opts, build, func(ctx context.Context, app *bootstrap.App, scope models.TenantScope) (any, error) {
				return app.Service.ListAmbiguous(ctx, scope, limit)
			})
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 0, "maximum entries, 0 for the default (capped by AMBIGUITY_MAX_RESULTS)")
	return cmd
}
