// Package memory implementa los puertos de persistencia en memoria.
// Se usa en pruebas y con STORAGE_DRIVER=memory.
//
// Las transacciones trabajan sobre una copia del estado y la publican al confirmar;
// un mutex las serializa, de modo que el contador de documentos avanza sin huecos
// ni duplicados y un error deja el estado intacto.
package memory

import (
	"context"
	"sync"

	"github.com/jhoicas/pos-backoffice-api/internal/domain/entity"
	"github.com/jhoicas/pos-backoffice-api/internal/domain/repository"
)

type state struct {
	customers    map[string]entity.Customer
	products     map[string]entity.Product
	transactions map[string]entity.Transaction
	documents    map[string]entity.Document
	sequences    map[string]int64
	profile      *entity.StoreProfile
}

func newState() *state {
	return &state{
		customers:    make(map[string]entity.Customer),
		products:     make(map[string]entity.Product),
		transactions: make(map[string]entity.Transaction),
		documents:    make(map[string]entity.Document),
		sequences:    make(map[string]int64),
	}
}

func (s *state) clone() *state {
	c := newState()
	for k, v := range s.customers {
		c.customers[k] = v
	}
	for k, v := range s.products {
		c.products[k] = v
	}
	for k, v := range s.transactions {
		c.transactions[k] = copyTransaction(v)
	}
	for k, v := range s.documents {
		c.documents[k] = v
	}
	for k, v := range s.sequences {
		c.sequences[k] = v
	}
	if s.profile != nil {
		p := *s.profile
		c.profile = &p
	}
	return c
}

func copyTransaction(t entity.Transaction) entity.Transaction {
	t.Items = append([]entity.LineItem(nil), t.Items...)
	if t.ServiceValue != nil {
		v := *t.ServiceValue
		t.ServiceValue = &v
	}
	return t
}

// scope da acceso al estado: el confirmado (Store) o la copia de una transacción (txScope).
type scope interface {
	read(fn func(st *state))
	write(fn func(st *state) error) error
}

// Store almacén en memoria. El valor cero no es usable; usar NewStore.
type Store struct {
	txMu sync.Mutex // serializa escrituras y transacciones
	mu   sync.RWMutex
	st   *state
}

// NewStore crea un almacén vacío.
func NewStore() *Store {
	return &Store{st: newState()}
}

func (s *Store) read(fn func(st *state)) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	fn(s.st)
}

func (s *Store) write(fn func(st *state) error) error {
	s.txMu.Lock()
	defer s.txMu.Unlock()
	s.mu.Lock()
	defer s.mu.Unlock()
	work := s.st.clone()
	if err := fn(work); err != nil {
		return err
	}
	s.st = work
	return nil
}

// inTx ejecuta fn sobre una copia privada y la publica si fn no devuelve error.
func (s *Store) inTx(ctx context.Context, fn func(sc scope) error) error {
	s.txMu.Lock()
	defer s.txMu.Unlock()

	s.mu.RLock()
	work := s.st.clone()
	s.mu.RUnlock()

	if err := fn(&txScope{st: work}); err != nil {
		return err
	}
	// Un contexto cancelado durante fn equivale a rollback.
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	s.st = work
	s.mu.Unlock()
	return nil
}

type txScope struct{ st *state }

func (t *txScope) read(fn func(st *state)) { fn(t.st) }

func (t *txScope) write(fn func(st *state) error) error { return fn(t.st) }

// RunBilling ejecuta fn con repositorios ligados a una transacción.
// Dentro de fn no se deben usar los repositorios de Store (el mutex no es reentrante).
func (s *Store) RunBilling(ctx context.Context, fn func(
	customerRepo repository.CustomerRepository,
	productRepo repository.ProductRepository,
	trxRepo repository.TransactionRepository,
) error) error {
	return s.inTx(ctx, func(sc scope) error {
		return fn(&CustomerRepository{sc: sc}, &ProductRepository{sc: sc}, &TransactionRepository{sc: sc})
	})
}

// RunDocument ejecuta fn con el contador y los documentos ligados a una transacción.
func (s *Store) RunDocument(ctx context.Context, fn func(
	seqRepo repository.DocumentSequenceRepository,
	docRepo repository.DocumentRepository,
) error) error {
	return s.inTx(ctx, func(sc scope) error {
		return fn(&DocumentSequenceRepository{sc: sc}, &DocumentRepository{sc: sc})
	})
}

// Repositorios fuera de transacción.

func (s *Store) Customers() *CustomerRepository         { return &CustomerRepository{sc: s} }
func (s *Store) Products() *ProductRepository           { return &ProductRepository{sc: s} }
func (s *Store) Transactions() *TransactionRepository   { return &TransactionRepository{sc: s} }
func (s *Store) Documents() *DocumentRepository         { return &DocumentRepository{sc: s} }
func (s *Store) Sequences() *DocumentSequenceRepository { return &DocumentSequenceRepository{sc: s} }
func (s *Store) StoreProfile() *StoreProfileRepository  { return &StoreProfileRepository{sc: s} }
