// Package commands implementa posctl, la herramienta de operación del back-office:
// migraciones, vista previa de impuestos y carga inicial de datos.
package commands

import (
	"github.com/spf13/cobra"

	"github.com/jhoicas/pos-backoffice-api/pkg/config"
	"github.com/jhoicas/pos-backoffice-api/pkg/logger"
)

var (
	cfg *config.Config
	log *logger.Logger

	logLevel string
)

// Execute construye el árbol de comandos y lo ejecuta.
func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "posctl",
		Short:         "Operación del back-office POS",
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			c, err := config.Load()
			if err != nil {
				return err
			}
			cfg = c
			level := cfg.App.LogLevel
			if logLevel != "" {
				level = logLevel
			}
			log = logger.New(logger.Config{Env: cfg.App.Env, Level: level, Output: cmd.ErrOrStderr()})
			return nil
		},
	}
	root.PersistentFlags().StringVar(&logLevel, "log-level", "", "nivel de log (por defecto LOG_LEVEL)")

	root.AddCommand(migrateCmd(), previewCmd(), seedCmd())
	return root
}
