package service_test

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"sync"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/tuanvumaihuynh/chicken-vending/internal/model"
	"github.com/tuanvumaihuynh/chicken-vending/internal/repository"
	"github.com/tuanvumaihuynh/chicken-vending/internal/storage/db"
)

// memStore is an in-memory stand-in for the products, transactions and
// outbox_messages tables. A transaction holds mu for its whole duration, which
// gives the same serialisation as the row lock taken by the real queries.
type memStore struct {
	mu sync.Mutex

	products      map[int64]model.Product
	transactions  []model.Transaction
	outboxMsgs    []repository.CreateOutboxMsgParams
	nextProductID int64
	nextTxID      int64

	// failOn makes the named operation return the error.
	failOn map[string]error
}

type memSnapshot struct {
	products      map[int64]model.Product
	transactions  []model.Transaction
	outboxMsgs    []repository.CreateOutboxMsgParams
	nextProductID int64
	nextTxID      int64
}

func newMemStore() *memStore {
	return &memStore{
		products: map[int64]model.Product{},
		failOn:   map[string]error{},
	}
}

func (s *memStore) snapshot() memSnapshot {
	return memSnapshot{
		products:      maps.Clone(s.products),
		transactions:  slices.Clone(s.transactions),
		outboxMsgs:    slices.Clone(s.outboxMsgs),
		nextProductID: s.nextProductID,
		nextTxID:      s.nextTxID,
	}
}

func (s *memStore) restore(snap memSnapshot) {
	s.products = snap.products
	s.transactions = snap.transactions
	s.outboxMsgs = snap.outboxMsgs
	s.nextProductID = snap.nextProductID
	s.nextTxID = snap.nextTxID
}

func (s *memStore) seed(products ...model.Product) []model.Product {
	s.mu.Lock()
	defer s.mu.Unlock()

	seeded := make([]model.Product, 0, len(products))
	for _, p := range products {
		s.nextProductID++
		p.ID = s.nextProductID
		if p.Status == "" {
			p.Status = model.ProductStatusActive
		}
		s.products[p.ID] = p
		seeded = append(seeded, p)
	}
	return seeded
}

func (s *memStore) product(id int64) model.Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.products[id]
}

func (s *memStore) ledger() []model.Transaction {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.transactions)
}

func (s *memStore) outbox() []repository.CreateOutboxMsgParams {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.outboxMsgs)
}

func (s *memStore) fail(op string) error {
	return s.failOn[op]
}

// memDB implements db.DB on top of a memStore. The embedded interface is nil;
// only WithTx is ever called by the services.
type memDB struct {
	db.DB
	store *memStore
	inTx  bool
}

func (d *memDB) WithTx(_ context.Context, txFunc func(db.DB) error) error {
	if d.inTx {
		return txFunc(d)
	}

	d.store.mu.Lock()
	defer d.store.mu.Unlock()

	snap := d.store.snapshot()
	if err := txFunc(&memDB{store: d.store, inTx: true}); err != nil {
		d.store.restore(snap)
		return err
	}
	return nil
}

// lock takes the store mutex unless the caller already holds it through WithTx.
func lock(d db.DB, store *memStore) func() {
	if m, ok := d.(*memDB); ok && m.inTx {
		return func() {}
	}
	store.mu.Lock()
	return store.mu.Unlock
}

type memProductRepo struct {
	db    db.DB
	store *memStore
}

func (r memProductRepo) WithDB(d db.DB) repository.ProductRepository {
	return memProductRepo{db: d, store: r.store}
}

func (r memProductRepo) CreateProduct(_ context.Context, p model.Product) (model.Product, error) {
	defer lock(r.db, r.store)()
	if err := r.store.fail("CreateProduct"); err != nil {
		return model.Product{}, err
	}
	r.store.nextProductID++
	p.ID = r.store.nextProductID
	r.store.products[p.ID] = p
	return p, nil
}

func (r memProductRepo) ListActiveProducts(context.Context) ([]model.Product, error) {
	defer lock(r.db, r.store)()
	var out []model.Product
	for _, id := range slices.Sorted(maps.Keys(r.store.products)) {
		if p := r.store.products[id]; p.Status == model.ProductStatusActive {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r memProductRepo) GetActiveProduct(_ context.Context, id int64) (model.Product, error) {
	defer lock(r.db, r.store)()
	return r.getActive(id)
}

func (r memProductRepo) GetActiveProductForUpdate(_ context.Context, id int64) (model.Product, error) {
	defer lock(r.db, r.store)()
	return r.getActive(id)
}

func (r memProductRepo) getActive(id int64) (model.Product, error) {
	p, ok := r.store.products[id]
	if !ok || p.Status != model.ProductStatusActive {
		return model.Product{}, fmt.Errorf("get product: %w", repository.ErrNotFound)
	}
	return p, nil
}

func (r memProductRepo) UpdateProduct(_ context.Context, p model.Product) (model.Product, error) {
	defer lock(r.db, r.store)()
	if _, err := r.getActive(p.ID); err != nil {
		return model.Product{}, err
	}
	r.store.products[p.ID] = p
	return p, nil
}

func (r memProductRepo) UpdateProductStock(_ context.Context, params repository.UpdateProductStockParams) error {
	defer lock(r.db, r.store)()
	if err := r.store.fail("UpdateProductStock"); err != nil {
		return err
	}
	p, err := r.getActive(params.ID)
	if err != nil {
		return err
	}
	if params.StockKg.IsNegative() {
		return stockCheckViolation()
	}
	p.StockKg = params.StockKg
	r.store.products[p.ID] = p
	return nil
}

func (r memProductRepo) UpdateProductStatus(_ context.Context, params repository.UpdateProductStatusParams) error {
	defer lock(r.db, r.store)()
	p, ok := r.store.products[params.ID]
	if !ok || p.Status != params.From {
		return fmt.Errorf("update status: %w", repository.ErrNotFound)
	}
	p.Status = params.To
	r.store.products[p.ID] = p
	return nil
}

type memTransactionRepo struct {
	db    db.DB
	store *memStore
}

func (r memTransactionRepo) WithDB(d db.DB) repository.TransactionRepository {
	return memTransactionRepo{db: d, store: r.store}
}

func (r memTransactionRepo) CreateTransaction(_ context.Context, tx model.Transaction) (model.Transaction, error) {
	defer lock(r.db, r.store)()
	if err := r.store.fail("CreateTransaction"); err != nil {
		return model.Transaction{}, err
	}
	r.store.nextTxID++
	tx.ID = r.store.nextTxID
	r.store.transactions = append(r.store.transactions, tx)
	return tx, nil
}

func (r memTransactionRepo) GetTransaction(_ context.Context, id int64) (model.Transaction, error) {
	defer lock(r.db, r.store)()
	for _, tx := range r.store.transactions {
		if tx.ID == id {
			return tx, nil
		}
	}
	return model.Transaction{}, fmt.Errorf("get transaction: %w", repository.ErrNotFound)
}

func (r memTransactionRepo) ListTransactions(_ context.Context, params repository.ListTransactionsParams) ([]model.Transaction, error) {
	defer lock(r.db, r.store)()
	var out []model.Transaction
	for i := len(r.store.transactions) - 1; i >= 0 && int32(len(out)) < params.Limit; i-- {
		tx := r.store.transactions[i]
		if params.ProductID != nil && tx.ProductID != *params.ProductID {
			continue
		}
		out = append(out, tx)
	}
	return out, nil
}

type memOutboxMsgRepo struct {
	db    db.DB
	store *memStore
}

func (r memOutboxMsgRepo) WithDB(d db.DB) repository.OutboxMsgRepository {
	return memOutboxMsgRepo{db: d, store: r.store}
}

func (r memOutboxMsgRepo) CreateOutboxMsg(_ context.Context, params repository.CreateOutboxMsgParams) error {
	defer lock(r.db, r.store)()
	if err := r.store.fail("CreateOutboxMsg"); err != nil {
		return err
	}
	r.store.outboxMsgs = append(r.store.outboxMsgs, params)
	return nil
}

func (r memOutboxMsgRepo) ListUnprocessedOutboxMsgs(context.Context, repository.ListUnprocessedOutboxMsgsParams) ([]repository.ListUnprocessedOutboxMsgsResult, error) {
	return nil, nil
}

func (r memOutboxMsgRepo) MarkOutboxMsgsRelayed(context.Context, []repository.OutboxMsgRelayResult) error {
	return nil
}

type fixture struct {
	store *memStore
	db    *memDB

	productRepo     memProductRepo
	transactionRepo memTransactionRepo
	outboxMsgRepo   memOutboxMsgRepo
}

func newFixture() fixture {
	store := newMemStore()
	d := &memDB{store: store}
	return fixture{
		store:           store,
		db:              d,
		productRepo:     memProductRepo{db: d, store: store},
		transactionRepo: memTransactionRepo{db: d, store: store},
		outboxMsgRepo:   memOutboxMsgRepo{db: d, store: store},
	}
}

// stockCheckViolation is the error postgres returns when an update breaks the
// products_stock_non_negative constraint.
func stockCheckViolation() error {
	return &pgconn.PgError{
		Severity:       "ERROR",
		Code:           "23514",
		Message:        `new row for relation "products" violates check constraint "products_stock_non_negative"`,
		TableName:      "products",
		ConstraintName: "products_stock_non_negative",
	}
}
