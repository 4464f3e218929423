package billing

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/pos-backoffice-api/internal/application/dto"
	"github.com/jhoicas/pos-backoffice-api/internal/domain"
	"github.com/jhoicas/pos-backoffice-api/internal/domain/entity"
	"github.com/jhoicas/pos-backoffice-api/internal/domain/repository"
	"github.com/jhoicas/pos-backoffice-api/pkg/logger"
)

// DocumentUseCase emite documentos (número + contenido + registro) y sirve su contenido.
type DocumentUseCase struct {
	txRunner     BillingTxRunner
	trxRepo      repository.TransactionRepository
	customerRepo repository.CustomerRepository
	productRepo  repository.ProductRepository
	storeRepo    repository.StoreProfileRepository
	docRepo      repository.DocumentRepository
	renderer     DocumentRenderer
	contents     DocumentContentStore
	log          *logger.Logger
	now          func() time.Time
}

// NewDocumentUseCase construye el caso de uso inyectando todas sus dependencias.
func NewDocumentUseCase(
	txRunner BillingTxRunner,
	trxRepo repository.TransactionRepository,
	customerRepo repository.CustomerRepository,
	productRepo repository.ProductRepository,
	storeRepo repository.StoreProfileRepository,
	docRepo repository.DocumentRepository,
	renderer DocumentRenderer,
	contents DocumentContentStore,
	log *logger.Logger,
) *DocumentUseCase {
	return &DocumentUseCase{
		txRunner:     txRunner,
		trxRepo:      trxRepo,
		customerRepo: customerRepo,
		productRepo:  productRepo,
		storeRepo:    storeRepo,
		docRepo:      docRepo,
		renderer:     renderer,
		contents:     contents,
		log:          log,
		now:          time.Now,
	}
}

// IssueDocument asigna número, renderiza, guarda el contenido y registra el documento.
//
// Retorna:
//   - domain.ErrInvalidInput si el tipo de documento no existe.
//   - domain.ErrNotFound     si la transacción o el perfil de la tienda no existen.
//   - domain.ErrAllocationConflict si el número asignado ya estaba registrado.
//
// Cualquier fallo deshace el incremento del contador.
func (uc *DocumentUseCase) IssueDocument(ctx context.Context, transactionID string, in dto.IssueDocumentRequest) (*dto.DocumentResponse, error) {
	if err := dto.Validate(in); err != nil {
		return nil, err
	}

	// ── 1. Datos de la transacción ───────────────────────────────────────────
	trx, err := uc.trxRepo.GetByID(ctx, transactionID)
	if err != nil {
		return nil, fmt.Errorf("get transaction: %w", err)
	}
	if trx == nil {
		return nil, domain.NewNotFound("transaction", transactionID)
	}
	store, err := uc.storeRepo.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("get store profile: %w", err)
	}
	if store == nil {
		return nil, domain.NewNotFound("store_profile", "")
	}
	customer, err := uc.customerRepo.GetByID(ctx, trx.CustomerID)
	if err != nil {
		return nil, fmt.Errorf("get customer: %w", err)
	}
	if customer == nil {
		return nil, domain.NewNotFound("customer", trx.CustomerID)
	}
	items, err := uc.documentItems(ctx, trx)
	if err != nil {
		return nil, err
	}

	// ── 2. Número, contenido y registro en una sola transacción ──────────────
	now := uc.now().UTC()
	var (
		doc *entity.Document
		ref string
	)
	err = uc.txRunner.RunDocument(ctx, func(seqRepo repository.DocumentSequenceRepository, docRepo repository.DocumentRepository) error {
		number, err := NextNumber(ctx, seqRepo, in.DocumentType, now)
		if err != nil {
			return err
		}
		content, err := uc.renderer.Render(ctx, DocumentData{
			DocumentType:   in.DocumentType,
			DocumentNumber: number,
			IssuedAt:       now,
			Transaction:    trx,
			Customer:       customer,
			Store:          store,
			Items:          items,
		})
		if err != nil {
			return fmt.Errorf("render document: %w", err)
		}
		ref, err = uc.contents.Save(ctx, contentName(trx, number, uc.renderer.Extension()), content)
		if err != nil {
			return fmt.Errorf("store document content: %w", err)
		}
		d := &entity.Document{
			ID:            uuid.New().String(),
			TransactionID: trx.ID,
			Type:          in.DocumentType,
			Number:        number,
			ContentRef:    ref,
			CreatedAt:     now,
		}
		if err := docRepo.Create(ctx, d); err != nil {
			return fmt.Errorf("insert document: %w", err)
		}
		doc = d
		return nil
	})
	if err != nil {
		if ref != "" {
			if rmErr := uc.contents.Remove(ctx, ref); rmErr != nil {
				uc.log.Warn().Err(rmErr).Str("content_ref", ref).Msg("no se pudo eliminar el contenido huérfano")
			}
		}
		return nil, err
	}

	uc.log.Info().
		Str("transaction_id", trx.ID).
		Str("document_type", doc.Type).
		Str("document_number", doc.Number).
		Msg("documento emitido")

	resp := toDocumentResponse(doc)
	return &resp, nil
}

// GetDocumentContent devuelve el contenido almacenado y un nombre de archivo para la descarga.
func (uc *DocumentUseCase) GetDocumentContent(ctx context.Context, documentID string) (*dto.DocumentContent, error) {
	doc, err := uc.docRepo.GetByID(ctx, documentID)
	if err != nil {
		return nil, fmt.Errorf("get document: %w", err)
	}
	if doc == nil {
		return nil, domain.NewNotFound("document", documentID)
	}
	data, err := uc.contents.Open(ctx, doc.ContentRef)
	if err != nil {
		return nil, fmt.Errorf("open document content: %w", err)
	}
	return &dto.DocumentContent{
		Filename:    strings.ReplaceAll(doc.Number, "/", "-") + "." + uc.renderer.Extension(),
		ContentType: uc.renderer.ContentType(),
		Data:        data,
	}, nil
}

func (uc *DocumentUseCase) documentItems(ctx context.Context, trx *entity.Transaction) ([]DocumentItem, error) {
	cache := make(map[string]*entity.Product)
	out := make([]DocumentItem, 0, len(trx.Items))
	for _, it := range trx.Items {
		p, ok := cache[it.ProductID]
		if !ok {
			var err error
			p, err = uc.productRepo.GetByID(ctx, it.ProductID)
			if err != nil {
				return nil, fmt.Errorf("get product: %w", err)
			}
			cache[it.ProductID] = p
		}
		item := DocumentItem{LineItem: it, ProductName: "Produk " + it.ProductID}
		if p != nil {
			item.ProductCode = p.Code
			item.ProductName = p.Name
			item.ProductType = p.Type
		}
		out = append(out, item)
	}
	return out, nil
}

// contentName nombre estable del archivo: <código trx>_<número con guiones>.<ext>.
func contentName(trx *entity.Transaction, number, ext string) string {
	return fmt.Sprintf("%s_%s.%s", trx.Code, strings.ReplaceAll(number, "/", "-"), ext)
}

func toDocumentResponse(d *entity.Document) dto.DocumentResponse {
	return dto.DocumentResponse{
		ID:             d.ID,
		TransactionID:  d.TransactionID,
		DocumentType:   d.Type,
		DocumentNumber: d.Number,
		ContentRef:     d.ContentRef,
		CreatedAt:      d.CreatedAt,
	}
}
