package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/jhoicas/pos-backoffice-api/internal/domain"
	"github.com/jhoicas/pos-backoffice-api/internal/domain/entity"
	"github.com/jhoicas/pos-backoffice-api/internal/domain/repository"
)

var (
	_ repository.CustomerRepository         = (*CustomerRepository)(nil)
	_ repository.ProductRepository          = (*ProductRepository)(nil)
	_ repository.TransactionRepository      = (*TransactionRepository)(nil)
	_ repository.DocumentRepository         = (*DocumentRepository)(nil)
	_ repository.DocumentSequenceRepository = (*DocumentSequenceRepository)(nil)
	_ repository.StoreProfileRepository     = (*StoreProfileRepository)(nil)
)

// page aplica limit/offset sobre una lista ya ordenada.
func page[T any](list []T, limit, offset int) []T {
	if offset >= len(list) {
		return []T{}
	}
	list = list[offset:]
	if limit > 0 && limit < len(list) {
		list = list[:limit]
	}
	return list
}

// ── Customer ────────────────────────────────────────────────────────────────

// CustomerRepository implementación en memoria.
type CustomerRepository struct{ sc scope }

func (r *CustomerRepository) Create(ctx context.Context, c *entity.Customer) error {
	return r.sc.write(func(st *state) error {
		if _, ok := st.customers[c.ID]; ok {
			return fmt.Errorf("%w: customer %s", domain.ErrDuplicate, c.ID)
		}
		st.customers[c.ID] = *c
		return nil
	})
}

func (r *CustomerRepository) GetByID(ctx context.Context, id string) (*entity.Customer, error) {
	var out *entity.Customer
	r.sc.read(func(st *state) {
		if c, ok := st.customers[id]; ok {
			out = &c
		}
	})
	return out, nil
}

func (r *CustomerRepository) List(ctx context.Context, limit, offset int) ([]*entity.Customer, error) {
	var all []*entity.Customer
	r.sc.read(func(st *state) {
		for _, c := range st.customers {
			c := c
			all = append(all, &c)
		}
	})
	sort.Slice(all, func(i, j int) bool { return all[i].InstitutionName < all[j].InstitutionName })
	return page(all, limit, offset), nil
}

// ── Product ─────────────────────────────────────────────────────────────────

// ProductRepository implementación en memoria.
type ProductRepository struct{ sc scope }

func (r *ProductRepository) Create(ctx context.Context, p *entity.Product) error {
	return r.sc.write(func(st *state) error {
		for _, existing := range st.products {
			if existing.Code == p.Code {
				return fmt.Errorf("%w: código de producto %q", domain.ErrDuplicate, p.Code)
			}
		}
		st.products[p.ID] = *p
		return nil
	})
}

func (r *ProductRepository) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	var out *entity.Product
	r.sc.read(func(st *state) {
		if p, ok := st.products[id]; ok {
			out = &p
		}
	})
	return out, nil
}

func (r *ProductRepository) GetByCode(ctx context.Context, code string) (*entity.Product, error) {
	var out *entity.Product
	r.sc.read(func(st *state) {
		for _, p := range st.products {
			if p.Code == code {
				p := p
				out = &p
				return
			}
		}
	})
	return out, nil
}

func (r *ProductRepository) List(ctx context.Context, limit, offset int) ([]*entity.Product, error) {
	var all []*entity.Product
	r.sc.read(func(st *state) {
		for _, p := range st.products {
			p := p
			all = append(all, &p)
		}
	})
	sort.Slice(all, func(i, j int) bool { return all[i].Code < all[j].Code })
	return page(all, limit, offset), nil
}

// Delete equivale a la FK de transaction_items: un producto referenciado no se borra.
func (r *ProductRepository) Delete(ctx context.Context, id string) error {
	return r.sc.write(func(st *state) error {
		if _, ok := st.products[id]; !ok {
			return domain.NewNotFound("product", id)
		}
		if countItems(st, id) > 0 {
			return fmt.Errorf("%w: producto %s", domain.ErrReferentialConflict, id)
		}
		delete(st.products, id)
		return nil
	})
}

func countItems(st *state, productID string) int64 {
	var n int64
	for _, t := range st.transactions {
		for _, it := range t.Items {
			if it.ProductID == productID {
				n++
			}
		}
	}
	return n
}

// ── Transaction ─────────────────────────────────────────────────────────────

// TransactionRepository implementación en memoria.
type TransactionRepository struct{ sc scope }

func (r *TransactionRepository) Create(ctx context.Context, trx *entity.Transaction) error {
	return r.sc.write(func(st *state) error {
		if _, ok := st.customers[trx.CustomerID]; !ok {
			return domain.NewNotFound("customer", trx.CustomerID)
		}
		for _, t := range st.transactions {
			if t.Code == trx.Code {
				return fmt.Errorf("%w: transaction_code %s", domain.ErrDuplicate, trx.Code)
			}
		}
		for _, it := range trx.Items {
			if _, ok := st.products[it.ProductID]; !ok {
				return domain.NewNotFound("product", it.ProductID)
			}
		}
		st.transactions[trx.ID] = copyTransaction(*trx)
		return nil
	})
}

func (r *TransactionRepository) GetByID(ctx context.Context, id string) (*entity.Transaction, error) {
	var out *entity.Transaction
	r.sc.read(func(st *state) {
		if t, ok := st.transactions[id]; ok {
			t = copyTransaction(t)
			out = &t
		}
	})
	return out, nil
}

func (r *TransactionRepository) List(ctx context.Context, f repository.TransactionFilter) ([]*entity.Transaction, int, error) {
	var all []*entity.Transaction
	r.sc.read(func(st *state) {
		for _, t := range st.transactions {
			if f.CustomerID != "" && t.CustomerID != f.CustomerID {
				continue
			}
			if f.DateFrom != nil && t.Date.Before(*f.DateFrom) {
				continue
			}
			if f.DateTo != nil && !t.Date.Before(*f.DateTo) {
				continue
			}
			t = copyTransaction(t)
			all = append(all, &t)
		}
	})
	sort.Slice(all, func(i, j int) bool {
		if !all[i].CreatedAt.Equal(all[j].CreatedAt) {
			return all[i].CreatedAt.After(all[j].CreatedAt)
		}
		return all[i].Code > all[j].Code
	})
	return page(all, f.Limit, f.Offset), len(all), nil
}

func (r *TransactionRepository) CountItemsByProduct(ctx context.Context, productID string) (int64, error) {
	var n int64
	r.sc.read(func(st *state) { n = countItems(st, productID) })
	return n, nil
}

// ── Document ────────────────────────────────────────────────────────────────

// DocumentRepository implementación en memoria.
type DocumentRepository struct{ sc scope }

func (r *DocumentRepository) Create(ctx context.Context, d *entity.Document) error {
	return r.sc.write(func(st *state) error {
		if _, ok := st.transactions[d.TransactionID]; !ok {
			return domain.NewNotFound("transaction", d.TransactionID)
		}
		for _, existing := range st.documents {
			if existing.Type == d.Type && existing.Number == d.Number {
				return fmt.Errorf("%w: %s %s", domain.ErrAllocationConflict, d.Type, d.Number)
			}
		}
		st.documents[d.ID] = *d
		return nil
	})
}

func (r *DocumentRepository) GetByID(ctx context.Context, id string) (*entity.Document, error) {
	var out *entity.Document
	r.sc.read(func(st *state) {
		if d, ok := st.documents[id]; ok {
			out = &d
		}
	})
	return out, nil
}

func (r *DocumentRepository) ListByTransactionIDs(ctx context.Context, ids []string) ([]*entity.Document, error) {
	want := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		want[id] = struct{}{}
	}
	var out []*entity.Document
	r.sc.read(func(st *state) {
		for _, d := range st.documents {
			if _, ok := want[d.TransactionID]; ok {
				d := d
				out = append(out, &d)
			}
		}
	})
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].Number < out[j].Number
	})
	return out, nil
}

// ── DocumentSequence ────────────────────────────────────────────────────────

// DocumentSequenceRepository contador por tipo. Fuera de una transacción cada
// llamada se confirma de inmediato.
type DocumentSequenceRepository struct{ sc scope }

func (r *DocumentSequenceRepository) Next(ctx context.Context, documentType string) (int64, error) {
	var next int64
	err := r.sc.write(func(st *state) error {
		st.sequences[documentType]++
		next = st.sequences[documentType]
		return nil
	})
	return next, err
}

// ── StoreProfile ────────────────────────────────────────────────────────────

// StoreProfileRepository perfil único en memoria.
type StoreProfileRepository struct{ sc scope }

func (r *StoreProfileRepository) Get(ctx context.Context) (*entity.StoreProfile, error) {
	var out *entity.StoreProfile
	r.sc.read(func(st *state) {
		if st.profile != nil {
			p := *st.profile
			out = &p
		}
	})
	return out, nil
}

func (r *StoreProfileRepository) Upsert(ctx context.Context, p *entity.StoreProfile) error {
	return r.sc.write(func(st *state) error {
		cp := *p
		st.profile = &cp
		return nil
	})
}
