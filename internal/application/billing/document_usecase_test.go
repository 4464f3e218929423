package billing_test

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/pos-backoffice-api/internal/application/billing"
	"github.com/jhoicas/pos-backoffice-api/internal/application/dto"
	"github.com/jhoicas/pos-backoffice-api/internal/domain"
	"github.com/jhoicas/pos-backoffice-api/internal/domain/entity"
	"github.com/jhoicas/pos-backoffice-api/internal/domain/repository"
	"github.com/jhoicas/pos-backoffice-api/internal/infrastructure/memory"
	"github.com/jhoicas/pos-backoffice-api/pkg/logger"
)

type mockRenderer struct{ mock.Mock }

func (m *mockRenderer) Render(ctx context.Context, data billing.DocumentData) ([]byte, error) {
	args := m.Called(ctx, data)
	b, _ := args.Get(0).([]byte)
	return b, args.Error(1)
}

func (m *mockRenderer) ContentType() string { return "application/pdf" }
func (m *mockRenderer) Extension() string   { return "pdf" }

// contentMap almacén de contenido en memoria.
type contentMap struct {
	mu   sync.Mutex
	data map[string][]byte
}

func newContentMap() *contentMap { return &contentMap{data: map[string][]byte{}} }

func (c *contentMap) Save(_ context.Context, name string, data []byte) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[name] = data
	return name, nil
}

func (c *contentMap) Open(_ context.Context, ref string) ([]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	b, ok := c.data[ref]
	if !ok {
		return nil, domain.NewNotFound("document_content", ref)
	}
	return b, nil
}

func (c *contentMap) Remove(_ context.Context, ref string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.data, ref)
	return nil
}

func (c *contentMap) len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.data)
}

type documentFixture struct {
	store    *memory.Store
	renderer *mockRenderer
	contents *contentMap
	uc       *billing.DocumentUseCase
	trxID    string
	trxCode  string
}

func newDocumentFixture(t *testing.T) *documentFixture {
	t.Helper()
	s := seedStore(t)
	trx, err := newTransactionUseCase(s, nil, nil).CreateTransaction(context.Background(), scenarioA())
	require.NoError(t, err)

	r := &mockRenderer{}
	c := newContentMap()
	uc := billing.NewDocumentUseCase(s, s.Transactions(), s.Customers(), s.Products(), s.StoreProfile(),
		s.Documents(), r, c, logger.Nop())
	return &documentFixture{store: s, renderer: r, contents: c, uc: uc, trxID: trx.ID, trxCode: trx.TransactionCode}
}

func TestIssueDocument_NumeracionConsecutiva(t *testing.T) {
	f := newDocumentFixture(t)
	f.renderer.On("Render", mock.Anything, mock.MatchedBy(func(d billing.DocumentData) bool {
		return d.Store != nil && d.Customer != nil && len(d.Items) == 2 && d.Items[0].ProductName == "Kertas A4"
	})).Return([]byte("%PDF-1.4"), nil)

	ctx := context.Background()
	first, err := f.uc.IssueDocument(ctx, f.trxID, dto.IssueDocumentRequest{DocumentType: entity.DocumentTypeInvoice})
	require.NoError(t, err)
	second, err := f.uc.IssueDocument(ctx, f.trxID, dto.IssueDocumentRequest{DocumentType: entity.DocumentTypeInvoice})
	require.NoError(t, err)
	receipt, err := f.uc.IssueDocument(ctx, f.trxID, dto.IssueDocumentRequest{DocumentType: entity.DocumentTypeReceipt})
	require.NoError(t, err)

	assert.Regexp(t, `^INV/0001/\d{2}/\d{4}$`, first.DocumentNumber)
	assert.Regexp(t, `^INV/0002/\d{2}/\d{4}$`, second.DocumentNumber)
	assert.Regexp(t, `^KWT/0001/\d{2}/\d{4}$`, receipt.DocumentNumber)
	assert.Contains(t, first.ContentRef, f.trxCode+"_INV-0001-")
	assert.Equal(t, 3, f.contents.len())

	content, err := f.uc.GetDocumentContent(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, "application/pdf", content.ContentType)
	assert.Equal(t, []byte("%PDF-1.4"), content.Data)
	assert.Regexp(t, `^INV-0001-\d{2}-\d{4}\.pdf$`, content.Filename)

	trx, err := newTransactionUseCase(f.store, nil, nil).GetTransaction(ctx, f.trxID)
	require.NoError(t, err)
	assert.Len(t, trx.Documents, 3)
	f.renderer.AssertNumberOfCalls(t, "Render", 3)
}

func TestIssueDocument_FalloAlRenderizarDevuelveElContador(t *testing.T) {
	f := newDocumentFixture(t)
	ctx := context.Background()
	f.renderer.On("Render", mock.Anything, mock.Anything).Return(nil, errors.New("font missing")).Once()
	f.renderer.On("Render", mock.Anything, mock.Anything).Return([]byte("%PDF"), nil)

	_, err := f.uc.IssueDocument(ctx, f.trxID, dto.IssueDocumentRequest{DocumentType: entity.DocumentTypeInvoice})
	require.Error(t, err)
	assert.Zero(t, f.contents.len())

	doc, err := f.uc.IssueDocument(ctx, f.trxID, dto.IssueDocumentRequest{DocumentType: entity.DocumentTypeInvoice})
	require.NoError(t, err)
	assert.Regexp(t, `^INV/0001/`, doc.DocumentNumber)
}

// conflictRunner hace que el registro del documento falle después de guardar el contenido.
type conflictRunner struct{ *memory.Store }

type conflictDocRepo struct{ repository.DocumentRepository }

func (conflictDocRepo) Create(context.Context, *entity.Document) error {
	return fmt.Errorf("insert: %w", domain.ErrAllocationConflict)
}

func (r conflictRunner) RunDocument(ctx context.Context, fn func(repository.DocumentSequenceRepository, repository.DocumentRepository) error) error {
	return r.Store.RunDocument(ctx, func(seq repository.DocumentSequenceRepository, docs repository.DocumentRepository) error {
		return fn(seq, conflictDocRepo{docs})
	})
}

func TestIssueDocument_ConflictoEliminaContenidoHuerfano(t *testing.T) {
	f := newDocumentFixture(t)
	f.renderer.On("Render", mock.Anything, mock.Anything).Return([]byte("%PDF"), nil)
	s := f.store
	uc := billing.NewDocumentUseCase(conflictRunner{s}, s.Transactions(), s.Customers(), s.Products(), s.StoreProfile(),
		s.Documents(), f.renderer, f.contents, logger.Nop())

	_, err := uc.IssueDocument(context.Background(), f.trxID, dto.IssueDocumentRequest{DocumentType: entity.DocumentTypeHandoverReport})
	assert.ErrorIs(t, err, domain.ErrAllocationConflict)
	assert.Zero(t, f.contents.len())
}

func TestIssueDocument_Errores(t *testing.T) {
	f := newDocumentFixture(t)
	ctx := context.Background()

	_, err := f.uc.IssueDocument(ctx, f.trxID, dto.IssueDocumentRequest{DocumentType: "NOTA_DINAS"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = f.uc.IssueDocument(ctx, "nope", dto.IssueDocumentRequest{DocumentType: entity.DocumentTypeInvoice})
	var nf *domain.NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, "transaction", nf.Entity)

	_, err = f.uc.GetDocumentContent(ctx, "nope")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	f.renderer.AssertNotCalled(t, "Render", mock.Anything, mock.Anything)
}

func TestIssueDocument_SinPerfilDeTienda(t *testing.T) {
	s := memory.NewStore()
	ctx := context.Background()
	now := time.Now().UTC()
	require.NoError(t, s.Customers().Create(ctx, &entity.Customer{ID: "cus-1", InstitutionName: "SD 5", CreatedAt: now, UpdatedAt: now}))
	require.NoError(t, s.Products().Create(ctx, &entity.Product{ID: "p1", Code: "BRG-001", Name: "Pensil", Type: entity.ProductTypeGoods, Price: dec("100000"), CreatedAt: now, UpdatedAt: now}))
	require.NoError(t, s.Products().Create(ctx, &entity.Product{ID: "p2", Code: "JSA-001", Name: "Servis", Type: entity.ProductTypeService, Price: dec("200000"), CreatedAt: now, UpdatedAt: now}))
	trx, err := newTransactionUseCase(s, nil, nil).CreateTransaction(ctx, scenarioA())
	require.NoError(t, err)

	r := &mockRenderer{}
	uc := billing.NewDocumentUseCase(s, s.Transactions(), s.Customers(), s.Products(), s.StoreProfile(),
		s.Documents(), r, newContentMap(), logger.Nop())
	_, err = uc.IssueDocument(ctx, trx.ID, dto.IssueDocumentRequest{DocumentType: entity.DocumentTypeInvoice})

	var nf *domain.NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, "store_profile", nf.Entity)
}

func TestNextNumber_ConcurrenteEsMonotono(t *testing.T) {
	s := memory.NewStore()
	issued := time.Date(2025, time.March, 14, 0, 0, 0, 0, time.UTC)
	const n = 40

	var (
		mu      sync.Mutex
		numbers []string
		wg      sync.WaitGroup
	)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := s.RunDocument(context.Background(), func(seq repository.DocumentSequenceRepository, _ repository.DocumentRepository) error {
				num, err := billing.NextNumber(context.Background(), seq, entity.DocumentTypeTaxInvoice, issued)
				if err != nil {
					return err
				}
				mu.Lock()
				numbers = append(numbers, num)
				mu.Unlock()
				return nil
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	sort.Strings(numbers)
	require.Len(t, numbers, n)
	for i, num := range numbers {
		assert.Equal(t, fmt.Sprintf("FP/%04d/03/2025", i+1), num)
	}
}

func TestNextNumber_TipoDesconocidoNoConsumeContador(t *testing.T) {
	s := memory.NewStore()
	ctx := context.Background()
	_, err := billing.NextNumber(ctx, s.Sequences(), "MEMO", time.Now())
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	num, err := billing.NextNumber(ctx, s.Sequences(), entity.DocumentTypeInvoice, time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, "INV/0001/01/2025", num)
}
