package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/fx"

	"github.com/polkiloo/deeshop/internal/di"
	"github.com/polkiloo/deeshop/internal/usecase"
)

func promoteCmd() *cobra.Command {
	var email string
	cmd := &cobra.Command{
		Use:   "promote",
		Short: "Grant the administrator role to a registered account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			var auth *usecase.AuthUseCase
			app := fx.New(
				fx.Provide(func() context.Context { return ctx }),
				fx.Supply(cmd.Flags()),
				di.Core(),
				fx.Populate(&auth),
			)
			if err := app.Err(); err != nil {
				return err
			}
			if err := app.Start(ctx); err != nil {
				return err
			}
			defer func() { _ = app.Stop(context.Background()) }()

			if err := auth.Promote(ctx, email); err != nil {
				return fmt.Errorf("promote %s: %w", email, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s is now an administrator\n", email)
			return nil
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "Email of the account to promote")
	_ = cmd.MarkFlagRequired("email")
	return cmd
}
