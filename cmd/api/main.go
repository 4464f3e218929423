package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jhoicas/pos-backoffice-api/internal/application/billing"
	"github.com/jhoicas/pos-backoffice-api/internal/application/usecase"
	"github.com/jhoicas/pos-backoffice-api/internal/domain/repository"
	"github.com/jhoicas/pos-backoffice-api/internal/infrastructure/memory"
	infrapdf "github.com/jhoicas/pos-backoffice-api/internal/infrastructure/pdf"
	"github.com/jhoicas/pos-backoffice-api/internal/infrastructure/postgres"
	"github.com/jhoicas/pos-backoffice-api/internal/infrastructure/storage"
	httpRouter "github.com/jhoicas/pos-backoffice-api/internal/interfaces/http"
	"github.com/jhoicas/pos-backoffice-api/pkg/config"
	"github.com/jhoicas/pos-backoffice-api/pkg/logger"
)

// repositories agrupa los adaptadores de persistencia del driver elegido.
type repositories struct {
	txRunner  billing.BillingTxRunner
	customers repository.CustomerRepository
	products  repository.ProductRepository
	trx       repository.TransactionRepository
	documents repository.DocumentRepository
	store     repository.StoreProfileRepository
	close     func()
}

func newRepositories(ctx context.Context, cfg *config.Config, log *logger.Logger) (*repositories, error) {
	if cfg.Storage.Driver == config.StorageDriverMemory {
		log.Warn().Msg("almacenamiento en memoria: los datos se pierden al reiniciar")
		s := memory.NewStore()
		return &repositories{
			txRunner:  s,
			customers: s.Customers(),
			products:  s.Products(),
			trx:       s.Transactions(),
			documents: s.Documents(),
			store:     s.StoreProfile(),
			close:     func() {},
		}, nil
	}

	if cfg.DB.MigrationsAuto {
		mg, err := postgres.NewMigrator(cfg.DB.ConnectionString(), log)
		if err != nil {
			return nil, err
		}
		err = mg.Up()
		if cerr := mg.Close(); cerr != nil {
			log.Warn().Err(cerr).Msg("cerrar migrador")
		}
		if err != nil {
			return nil, err
		}
	}

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		return nil, err
	}
	return &repositories{
		txRunner:  postgres.NewTxRunner(pool),
		customers: postgres.NewCustomerRepository(pool),
		products:  postgres.NewProductRepository(pool),
		trx:       postgres.NewTransactionRepository(pool),
		documents: postgres.NewDocumentRepository(pool),
		store:     postgres.NewStoreProfileRepository(pool),
		close:     pool.Close,
	}, nil
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("storage", cfg.Storage.Driver).
		Msg("iniciando aplicación")

	ctx := context.Background()
	repos, err := newRepositories(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("inicializar almacenamiento")
	}
	defer repos.close()

	contents, err := storage.NewFileStore(cfg.Documents.Dir)
	if err != nil {
		log.Fatal().Err(err).Str("dir", cfg.Documents.Dir).Msg("directorio de documentos")
	}

	transactionUC := billing.NewTransactionUseCase(
		repos.txRunner, repos.trx, repos.customers, repos.products, repos.documents, log,
		billing.TransactionOptions{PriceDivergenceWarnPct: cfg.Billing.PriceDivergenceWarnPct},
	)
	// PDF: documentos comerciales y fiscales de la transacción
	documentUC := billing.NewDocumentUseCase(
		repos.txRunner, repos.trx, repos.customers, repos.products, repos.store, repos.documents,
		infrapdf.NewRenderer(), contents, log,
	)
	customerUC := billing.NewCustomerUseCase(repos.customers)
	productUC := usecase.NewProductUseCase(repos.products, repos.trx)
	storeProfileUC := usecase.NewStoreProfileUseCase(repos.store)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
		ErrorHandler: httpRouter.ErrorHandler(log),
	})
	app.Use(recover.New())
	app.Use(httpRouter.AccessLog(log))

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "POS Back-office API",
	}))

	httpRouter.Router(app, httpRouter.RouterDeps{
		TransactionUC:  transactionUC,
		DocumentUC:     documentUC,
		CustomerUC:     customerUC,
		ProductUC:      productUC,
		StoreProfileUC: storeProfileUC,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
