package commands

import (
	"github.com/spf13/cobra"

	"github.com/jhoicas/pos-backoffice-api/internal/infrastructure/postgres"
)

func migrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Aplica o revierte las migraciones de PostgreSQL",
	}

	up := &cobra.Command{
		Use:   "up",
		Short: "Aplica todas las migraciones pendientes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			mg, err := postgres.NewMigrator(cfg.DB.ConnectionString(), log)
			if err != nil {
				return err
			}
			defer mg.Close()
			return mg.Up()
		},
	}

	var steps int
	down := &cobra.Command{
		Use:   "down",
		Short: "Revierte las últimas migraciones",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			mg, err := postgres.NewMigrator(cfg.DB.ConnectionString(), log)
			if err != nil {
				return err
			}
			defer mg.Close()
			return mg.Down(steps)
		},
	}
	down.Flags().IntVarP(&steps, "steps", "n", 1, "número de migraciones a revertir")

	cmd.AddCommand(up, down)
	return cmd
}
