package commands

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/jhoicas/pos-backoffice-api/internal/application/billing"
	"github.com/jhoicas/pos-backoffice-api/internal/application/dto"
	"github.com/jhoicas/pos-backoffice-api/internal/application/usecase"
	"github.com/jhoicas/pos-backoffice-api/internal/domain"
	"github.com/jhoicas/pos-backoffice-api/internal/infrastructure/postgres"
)

// seedFile datos iniciales: perfil de la tienda, clientes y catálogo.
type seedFile struct {
	StoreProfile *dto.StoreProfileRequest    `json:"store_profile"`
	Customers    []dto.CreateCustomerRequest `json:"customers"`
	Products     []dto.CreateProductRequest  `json:"products"`
}

// seeder casos de uso que reciben los datos.
type seeder struct {
	store     *usecase.StoreProfileUseCase
	customers *billing.CustomerUseCase
	products  *usecase.ProductUseCase
}

func seedCmd() *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Carga perfil de tienda, clientes y productos desde un archivo JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(file)
			if err != nil {
				return err
			}
			defer f.Close()

			ctx := cmd.Context()
			pool, err := postgres.NewPool(ctx, cfg.DB)
			if err != nil {
				return err
			}
			defer pool.Close()

			trxRepo := postgres.NewTransactionRepository(pool)
			s := seeder{
				store:     usecase.NewStoreProfileUseCase(postgres.NewStoreProfileRepository(pool)),
				customers: billing.NewCustomerUseCase(postgres.NewCustomerRepository(pool)),
				products:  usecase.NewProductUseCase(postgres.NewProductRepository(pool), trxRepo),
			}
			return s.run(ctx, f, cmd.OutOrStdout())
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "seed.json", "archivo JSON con los datos")
	return cmd
}

// run inserta los datos en orden. Los productos con código existente se omiten,
// así el comando se puede repetir sobre la misma base.
func (s seeder) run(ctx context.Context, r io.Reader, w io.Writer) error {
	var data seedFile
	if err := json.NewDecoder(r).Decode(&data); err != nil {
		return fmt.Errorf("decode seed file: %w", err)
	}

	if data.StoreProfile != nil {
		if _, err := s.store.Upsert(ctx, *data.StoreProfile); err != nil {
			return fmt.Errorf("store profile: %w", err)
		}
		fmt.Fprintln(w, "perfil de tienda actualizado")
	}

	for i, c := range data.Customers {
		if _, err := s.customers.Create(ctx, c); err != nil {
			return fmt.Errorf("customers[%d]: %w", i, err)
		}
	}

	skipped := 0
	for i, p := range data.Products {
		if _, err := s.products.Create(ctx, p); err != nil {
			if errors.Is(err, domain.ErrDuplicate) {
				skipped++
				continue
			}
			return fmt.Errorf("products[%d]: %w", i, err)
		}
	}

	fmt.Fprintf(w, "clientes: %d, productos: %d (omitidos %d)\n",
		len(data.Customers), len(data.Products)-skipped, skipped)
	return nil
}
