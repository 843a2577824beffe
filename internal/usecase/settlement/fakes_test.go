package settlement

import (
	"context"
	"testing"
	"time"

	"github.com/LavaJover/booking-settlement-service/internal/domain"
	"github.com/LavaJover/booking-settlement-service/internal/usecase"
)

// memState is the in-memory database shared by the fake repositories.
// memTxManager snapshots it before each unit of work and restores the
// snapshot on error, mirroring a rolled-back transaction.
type memState struct {
	orders   map[string]*domain.Order
	wallets  map[string]*domain.Wallet
	byUser   map[string]string
	entries  []*domain.LedgerEntry
	counters map[string]*domain.CancellationCounter

	// failChanges makes the next N ChangeStatus calls fail with a
	// concurrency conflict.
	failChanges int
}

func newMemState() *memState {
	return &memState{
		orders:   make(map[string]*domain.Order),
		wallets:  make(map[string]*domain.Wallet),
		byUser:   make(map[string]string),
		counters: make(map[string]*domain.CancellationCounter),
	}
}

func (st *memState) snapshot() *memState {
	snap := newMemState()
	for id, o := range st.orders {
		snap.orders[id] = cloneOrder(o)
	}
	for id, w := range st.wallets {
		snap.wallets[id] = cloneWallet(w)
	}
	for u, id := range st.byUser {
		snap.byUser[u] = id
	}
	snap.entries = make([]*domain.LedgerEntry, len(st.entries))
	for i, e := range st.entries {
		entry := *e
		snap.entries[i] = &entry
	}
	for u, c := range st.counters {
		counter := *c
		snap.counters[u] = &counter
	}
	snap.failChanges = st.failChanges
	return snap
}

func (st *memState) restore(snap *memState) {
	st.orders = snap.orders
	st.wallets = snap.wallets
	st.byUser = snap.byUser
	st.entries = snap.entries
	st.counters = snap.counters
}

func cloneOrder(o *domain.Order) *domain.Order {
	c := *o
	return &c
}

func cloneWallet(w *domain.Wallet) *domain.Wallet {
	c := *w
	return &c
}

type memStore struct {
	st *memState
}

func (s *memStore) Orders() domain.OrderRepository     { return &memOrderRepo{st: s.st} }
func (s *memStore) Wallets() domain.WalletRepository   { return &memWalletRepo{st: s.st} }
func (s *memStore) Ledger() domain.LedgerRepository    { return &memLedgerRepo{st: s.st} }
func (s *memStore) Counters() domain.CounterRepository { return &memCounterRepo{st: s.st} }

type memTxManager struct {
	st *memState
}

func (m *memTxManager) Do(ctx context.Context, fn func(ctx context.Context, s domain.Store) error) error {
	snap := m.st.snapshot()
	if err := fn(ctx, &memStore{st: m.st}); err != nil {
		m.st.restore(snap)
		return err
	}
	return nil
}

type memOrderRepo struct {
	st *memState
}

func (r *memOrderRepo) Create(ctx context.Context, order *domain.Order) error {
	r.st.orders[order.ID] = cloneOrder(order)
	return nil
}

func (r *memOrderRepo) GetByID(ctx context.Context, orderID string) (*domain.Order, error) {
	o, ok := r.st.orders[orderID]
	if !ok {
		return nil, domain.NewNotFound("order", orderID)
	}
	return cloneOrder(o), nil
}

func (r *memOrderRepo) GetByIDForUpdate(ctx context.Context, orderID string) (*domain.Order, error) {
	return r.GetByID(ctx, orderID)
}

func (r *memOrderRepo) ChangeStatus(ctx context.Context, orderID string, change domain.StatusChange) error {
	if r.st.failChanges > 0 {
		r.st.failChanges--
		return domain.NewConflict("simulated status race")
	}
	o, ok := r.st.orders[orderID]
	if !ok {
		return domain.NewNotFound("order", orderID)
	}
	if o.Status != change.From {
		return domain.NewConflict("order status changed concurrently")
	}
	o.Status = change.To
	if change.FundedAt != nil {
		o.FundedAt = change.FundedAt
	}
	if change.CancelledBy != nil {
		o.CancelledBy = change.CancelledBy
	}
	if change.CancelReason != nil {
		o.CancelReason = change.CancelReason
	}
	if change.CancelledAt != nil {
		o.CancelledAt = change.CancelledAt
	}
	if change.CompletedAt != nil {
		o.CompletedAt = change.CompletedAt
	}
	o.UpdatedAt = time.Now()
	return nil
}

func (r *memOrderRepo) ListByCustomer(ctx context.Context, customerID string, filter domain.OrderFilter) ([]*domain.Order, int64, error) {
	return r.list(func(o *domain.Order) bool { return o.CustomerID == customerID }, filter)
}

func (r *memOrderRepo) ListByProvider(ctx context.Context, providerID string, filter domain.OrderFilter) ([]*domain.Order, int64, error) {
	return r.list(func(o *domain.Order) bool { return o.ProviderID == providerID }, filter)
}

func (r *memOrderRepo) list(match func(*domain.Order) bool, filter domain.OrderFilter) ([]*domain.Order, int64, error) {
	var out []*domain.Order
	for _, o := range r.st.orders {
		if !match(o) {
			continue
		}
		if len(filter.Statuses) > 0 {
			found := false
			for _, s := range filter.Statuses {
				if o.Status == s {
					found = true
					break
				}
			}
			if !found {
				continue
			}
		}
		out = append(out, cloneOrder(o))
	}
	return out, int64(len(out)), nil
}

func (r *memOrderRepo) FindOverdue(ctx context.Context, deadline time.Time) ([]*domain.Order, error) {
	var out []*domain.Order
	for _, o := range r.st.orders {
		if o.Status == domain.StatusAccepted && o.FundedAt != nil && o.ServiceDate.Before(deadline) {
			out = append(out, cloneOrder(o))
		}
	}
	return out, nil
}

type memWalletRepo struct {
	st *memState
}

func (r *memWalletRepo) GetByID(ctx context.Context, walletID string) (*domain.Wallet, error) {
	w, ok := r.st.wallets[walletID]
	if !ok {
		return nil, domain.NewNotFound("wallet", walletID)
	}
	return cloneWallet(w), nil
}

func (r *memWalletRepo) GetByUserID(ctx context.Context, userID string) (*domain.Wallet, error) {
	id, ok := r.st.byUser[userID]
	if !ok {
		return nil, domain.NewNotFound("wallet for user", userID)
	}
	return r.GetByID(ctx, id)
}

func (r *memWalletRepo) Debit(ctx context.Context, walletID string, amount domain.Money) error {
	w, ok := r.st.wallets[walletID]
	if !ok {
		return domain.NewNotFound("wallet", walletID)
	}
	if w.Balance < amount {
		return domain.NewInsufficientFunds(walletID, amount)
	}
	w.Balance -= amount
	return nil
}

func (r *memWalletRepo) Credit(ctx context.Context, walletID string, amount domain.Money) error {
	w, ok := r.st.wallets[walletID]
	if !ok {
		return domain.NewNotFound("wallet", walletID)
	}
	w.Balance += amount
	return nil
}

type memLedgerRepo struct {
	st *memState
}

func (r *memLedgerRepo) Append(ctx context.Context, entry *domain.LedgerEntry) error {
	e := *entry
	r.st.entries = append(r.st.entries, &e)
	return nil
}

func (r *memLedgerRepo) ListByWallet(ctx context.Context, walletID string, page, limit int64) ([]*domain.LedgerEntry, int64, error) {
	var out []*domain.LedgerEntry
	for _, e := range r.st.entries {
		if e.WalletID == walletID {
			entry := *e
			out = append(out, &entry)
		}
	}
	return out, int64(len(out)), nil
}

func (r *memLedgerRepo) ListByOrder(ctx context.Context, orderID string) ([]*domain.LedgerEntry, error) {
	var out []*domain.LedgerEntry
	for _, e := range r.st.entries {
		if e.OrderID != nil && *e.OrderID == orderID {
			entry := *e
			out = append(out, &entry)
		}
	}
	return out, nil
}

func (r *memLedgerRepo) SumByWallet(ctx context.Context, walletID string) (domain.Money, error) {
	var sum domain.Money
	for _, e := range r.st.entries {
		if e.WalletID == walletID {
			sum += e.Amount
		}
	}
	return sum, nil
}

type memCounterRepo struct {
	st *memState
}

func (r *memCounterRepo) Increment(ctx context.Context, userID string, threshold int64) (*domain.CancellationCounter, error) {
	c, ok := r.st.counters[userID]
	if !ok {
		c = &domain.CancellationCounter{UserID: userID}
		r.st.counters[userID] = c
	}
	c.CancellationsCount++
	if c.CancellationsCount > threshold {
		c.IsSuspect = true
	}
	c.UpdatedAt = time.Now()
	counter := *c
	return &counter, nil
}

func (r *memCounterRepo) GetByUserID(ctx context.Context, userID string) (*domain.CancellationCounter, error) {
	c, ok := r.st.counters[userID]
	if !ok {
		return nil, domain.NewNotFound("cancellation counter", userID)
	}
	counter := *c
	return &counter, nil
}

type fakeCatalog struct {
	services map[string]*domain.Service
}

func (f *fakeCatalog) GetService(ctx context.Context, serviceID string) (*domain.Service, error) {
	svc, ok := f.services[serviceID]
	if !ok {
		return nil, domain.NewNotFound("service", serviceID)
	}
	s := *svc
	return &s, nil
}

type fakeUsers struct {
	accounts map[string]*domain.Account
}

func (f *fakeUsers) GetAccount(ctx context.Context, userID string) (*domain.Account, error) {
	acc, ok := f.accounts[userID]
	if !ok {
		return nil, domain.NewNotFound("account", userID)
	}
	a := *acc
	return &a, nil
}

type notifiedEvent struct {
	orderID string
	event   domain.OrderEventType
}

type fakeNotifier struct {
	events []notifiedEvent
	err    error
}

func (f *fakeNotifier) Notify(ctx context.Context, orderID string, event domain.OrderEventType) error {
	if f.err != nil {
		return f.err
	}
	f.events = append(f.events, notifiedEvent{orderID: orderID, event: event})
	return nil
}

type fakeNumbers struct {
	assigned []string
	released []string
	err      error
}

func (f *fakeNumbers) Assign(ctx context.Context, orderID string) error {
	if f.err != nil {
		return f.err
	}
	f.assigned = append(f.assigned, orderID)
	return nil
}

func (f *fakeNumbers) Release(ctx context.Context, orderID string) error {
	if f.err != nil {
		return f.err
	}
	f.released = append(f.released, orderID)
	return nil
}

const (
	testCustomerID = "cust-1"
	testProviderID = "prov-1"
	testPlatformID = "platform"
	testServiceID  = "svc-1"

	testPrice      = domain.Money(60000)
	testCommission = domain.Money(6000)
	testBalance    = domain.Money(100000)
)

type env struct {
	uc      *DefaultSettlementUsecase
	st      *memState
	notes   *fakeNotifier
	numbers *fakeNumbers
}

func newEnv(t *testing.T) *env {
	t.Helper()

	st := newMemState()
	seedWallet(st, "w-cust", testCustomerID, testBalance)
	seedWallet(st, "w-prov", testProviderID, 0)
	seedWallet(st, "w-plat", testPlatformID, 0)

	catalog := &fakeCatalog{services: map[string]*domain.Service{
		testServiceID: {
			ID:         testServiceID,
			ProviderID: testProviderID,
			Price:      testPrice,
			Currency:   "RUB",
			Active:     true,
		},
	}}
	users := &fakeUsers{accounts: map[string]*domain.Account{
		testCustomerID: {ID: testCustomerID, Active: true},
		testProviderID: {ID: testProviderID, Active: true, Verified: true},
	}}

	ledger, err := usecase.NewWalletLedger()
	if err != nil {
		t.Fatalf("NewWalletLedger: %v", err)
	}
	commission, err := usecase.NewCommissionEngine(1000)
	if err != nil {
		t.Fatalf("NewCommissionEngine: %v", err)
	}

	notes := &fakeNotifier{}
	numbers := &fakeNumbers{}

	uc := NewDefaultSettlementUsecase(
		&memTxManager{st: st},
		ledger,
		commission,
		usecase.NewAbusePolicy(3),
		catalog,
		users,
		notes,
		numbers,
		nil,
		testPlatformID,
		24*time.Hour,
	)

	return &env{uc: uc, st: st, notes: notes, numbers: numbers}
}

func seedWallet(st *memState, walletID, userID string, balance domain.Money) {
	st.wallets[walletID] = &domain.Wallet{
		ID:       walletID,
		UserID:   userID,
		Balance:  balance,
		Currency: "RUB",
	}
	st.byUser[userID] = walletID
}

func (e *env) balance(t *testing.T, userID string) domain.Money {
	t.Helper()
	id, ok := e.st.byUser[userID]
	if !ok {
		t.Fatalf("no wallet for user %s", userID)
	}
	return e.st.wallets[id].Balance
}

func (e *env) counter(userID string) *domain.CancellationCounter {
	return e.st.counters[userID]
}

func (e *env) createOrder(t *testing.T) *domain.Order {
	t.Helper()
	order, err := e.uc.Create(context.Background(), &CreateOrderInput{
		CustomerID:  testCustomerID,
		ServiceID:   testServiceID,
		ServiceDate: time.Now().Add(48 * time.Hour),
		Address:     "Tverskaya 1",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	return order
}
