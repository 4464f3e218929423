package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/jhoicas/pos-backoffice-api/internal/application/billing"
	"github.com/jhoicas/pos-backoffice-api/internal/application/dto"
)

func previewCmd() *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "preview",
		Short: "Calcula el desglose de impuestos de una solicitud JSON sin guardarla",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var r io.Reader = cmd.InOrStdin()
			if file != "" && file != "-" {
				f, err := os.Open(file)
				if err != nil {
					return err
				}
				defer f.Close()
				r = f
			}
			return runPreview(r, cmd.OutOrStdout())
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "archivo JSON con la solicitud (por defecto stdin)")
	return cmd
}

// runPreview lee un dto.TaxPreviewRequest y escribe el desglose como JSON indentado.
func runPreview(r io.Reader, w io.Writer) error {
	var in dto.TaxPreviewRequest
	if err := json.NewDecoder(r).Decode(&in); err != nil {
		return fmt.Errorf("decode request: %w", err)
	}
	out, err := billing.PreviewTaxes(in)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
