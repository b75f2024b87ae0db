// Package cart owns the in-memory shopping cart. Mutations are applied
// optimistically: the local view changes first, the matching remote call is
// issued afterwards, and the result is reconciled against it. Every mutation
// is gated on the observed session status — guests cannot mutate the cart.
package cart

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/me/unishop/pkg/model"
)

// Remote is the subset of the API client the cart depends on.
type Remote interface {
	FetchCart(ctx context.Context, token string) ([]model.CartItem, error)
	AddItem(ctx context.Context, token, productID string, quantity int) error
	RemoveItem(ctx context.Context, token, productID string) error
	UpdateQuantity(ctx context.Context, token, productID string, quantity int) error
	ClearCart(ctx context.Context, token string) error
}

// Notifier receives user-facing outcomes. It is implemented by the UI layer
// (the CLI here) and by test fakes.
type Notifier interface {
	// AuthRequired signals that a mutation was dropped because no
	// authenticated session exists, and that the user should be taken to
	// the login entry point.
	AuthRequired()
	// OperationFailed signals that a remote cart call failed. productID is
	// empty for whole-cart operations (refresh, clear).
	OperationFailed(op, productID string, err error)
}

// itemSeq tracks request ordering for one product. Responses carry the
// sequence they were issued with; anything older than lastApplied is stale
// and discarded, and compensation only runs for the latest issued mutation.
type itemSeq struct {
	lastIssued  uint64
	lastApplied uint64
}

// undo captures the exact local change of one optimistic mutation so a
// remote failure can revert it.
type undo struct {
	productID string
	prevItem  model.CartItem // valid when existed
	prevIndex int            // position for re-insert on remove compensation
	existed   bool
}

// Manager is the cart state machine.
type Manager struct {
	remote   Remote
	notifier Notifier
	logger   *slog.Logger

	mu         sync.Mutex
	state      model.CartState
	seqs       map[string]*itemSeq
	fetchEpoch uint64        // invalidates in-flight refreshes; bumped on clear and on each new refresh
	sess       model.Session // latest observed session snapshot
	authed     bool          // whether sess authorizes remote calls

	wg sync.WaitGroup
}

// NewManager creates an empty cart gated on an unauthenticated session.
// Wire it to the session manager with HandleSessionChange.
func NewManager(remote Remote, notifier Notifier, logger *slog.Logger) *Manager {
	return &Manager{
		remote:   remote,
		notifier: notifier,
		logger:   logger.With("component", "cart"),
		state:    model.CartState{Items: []model.CartItem{}, SyncStatus: model.SyncIdle},
		seqs:     make(map[string]*itemSeq),
		sess:     model.Session{Status: model.StatusUnauthenticated},
	}
}

// State returns a copy of the current cart state.
func (m *Manager) State() model.CartState {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state.Clone()
}

// Wait blocks until all in-flight remote calls have reconciled. Used by the
// CLI before exit and by tests to observe quiescence.
func (m *Manager) Wait() {
	m.wg.Wait()
}

// authorizedLike reports whether a status permits carrying the token on
// remote calls. A refresh in flight does not eject the cart.
func authorizedLike(s model.SessionStatus) bool {
	return s == model.StatusAuthenticated || s == model.StatusRefreshing
}

// HandleSessionChange observes session transitions. Entering the
// authenticated state triggers a full remote refresh; leaving it clears the
// local cart immediately without a remote call. Register this with
// session.Manager.Subscribe.
func (m *Manager) HandleSessionChange(s model.Session) {
	m.mu.Lock()
	wasAuthed := m.authed
	m.sess = s
	m.authed = authorizedLike(s.Status)
	nowAuthed := m.authed
	m.mu.Unlock()

	switch {
	case !wasAuthed && nowAuthed:
		m.wg.Add(1)
		go func() {
			defer m.wg.Done()
			m.Refresh(context.Background())
		}()
	case wasAuthed && !nowAuthed:
		m.clearLocal()
	}
}

func (m *Manager) clearLocal() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state.Items = []model.CartItem{}
	m.state.RecomputeTotals()
	m.state.SyncStatus = model.SyncIdle
	m.seqs = make(map[string]*itemSeq)
	m.fetchEpoch++
	m.logger.Debug("local cart cleared")
}

// Refresh replaces the local cart wholesale with the server's copy. The
// server is authoritative, so the per-item sequence trackers reset to the
// new baseline.
func (m *Manager) Refresh(ctx context.Context) error {
	m.mu.Lock()
	if !m.authed {
		m.mu.Unlock()
		return model.ErrAuthRequired
	}
	token := m.sess.Token
	m.fetchEpoch++
	epoch := m.fetchEpoch
	m.state.SyncStatus = model.SyncLoading
	m.mu.Unlock()

	items, err := m.remote.FetchCart(ctx, token)

	m.mu.Lock()
	defer m.mu.Unlock()
	if epoch != m.fetchEpoch {
		// Superseded by a local clear (sign-out) or a newer refresh while the
		// fetch was in flight; the response must not repopulate the cart.
		m.logger.Debug("stale cart fetch discarded")
		return nil
	}
	m.state.SyncStatus = model.SyncIdle
	if err != nil {
		m.logger.Warn("cart refresh failed", "error", err)
		m.notifier.OperationFailed("refresh", "", err)
		return err
	}
	if items == nil {
		items = []model.CartItem{}
	}
	m.state.Items = items
	m.state.RecomputeTotals()
	m.seqs = make(map[string]*itemSeq)
	m.logger.Debug("cart refreshed", "items", len(items))
	return nil
}

// gate checks the observed session status. When the session is not
// authenticated the caller's intent is dropped (not queued) and the sink is
// notified exactly once.
func (m *Manager) gate() (string, error) {
	m.mu.Lock()
	authed := m.authed
	token := m.sess.Token
	m.mu.Unlock()

	if !authed {
		m.notifier.AuthRequired()
		return "", model.ErrAuthRequired
	}
	return token, nil
}

// Add puts quantity units of the product into the cart. If the product is
// already present its quantity is incremented; the cart never holds two
// entries for the same product.
func (m *Manager) Add(ctx context.Context, product model.Product, quantity int) error {
	token, err := m.gate()
	if err != nil {
		return err
	}
	if quantity <= 0 {
		return fmt.Errorf("%w: add quantity must be positive, got %d", model.ErrValidation, quantity)
	}

	m.mu.Lock()
	var u undo
	u.productID = product.ID
	if idx := m.state.Find(product.ID); idx >= 0 {
		u.existed = true
		u.prevItem = m.state.Items[idx]
		u.prevIndex = idx
		m.state.Items[idx].Quantity += quantity
	} else {
		m.state.Items = append(m.state.Items, product.ToCartItem(quantity))
	}
	m.state.RecomputeTotals()
	seq := m.issueLocked(product.ID)
	m.mu.Unlock()

	m.dispatch("add", product.ID, seq, u, func() error {
		return m.remote.AddItem(ctx, token, product.ID, quantity)
	})
	return nil
}

// Remove deletes the product from the cart.
func (m *Manager) Remove(ctx context.Context, productID string) error {
	token, err := m.gate()
	if err != nil {
		return err
	}

	m.mu.Lock()
	idx := m.state.Find(productID)
	if idx < 0 {
		m.mu.Unlock()
		return fmt.Errorf("%w: product %s is not in the cart", model.ErrValidation, productID)
	}
	u := undo{productID: productID, prevItem: m.state.Items[idx], prevIndex: idx, existed: true}
	m.state.Items = append(m.state.Items[:idx], m.state.Items[idx+1:]...)
	m.state.RecomputeTotals()
	seq := m.issueLocked(productID)
	m.mu.Unlock()

	m.dispatch("remove", productID, seq, u, func() error {
		return m.remote.RemoveItem(ctx, token, productID)
	})
	return nil
}

// UpdateQuantity sets the product's quantity. The session gate runs first,
// as for every mutation; zero delegates to Remove and negative values are
// rejected before any state change or network call.
func (m *Manager) UpdateQuantity(ctx context.Context, productID string, quantity int) error {
	token, err := m.gate()
	if err != nil {
		return err
	}
	if quantity < 0 {
		return fmt.Errorf("%w: quantity must be >= 0, got %d", model.ErrValidation, quantity)
	}
	if quantity == 0 {
		return m.Remove(ctx, productID)
	}

	m.mu.Lock()
	idx := m.state.Find(productID)
	if idx < 0 {
		m.mu.Unlock()
		return fmt.Errorf("%w: product %s is not in the cart", model.ErrValidation, productID)
	}
	u := undo{productID: productID, prevItem: m.state.Items[idx], prevIndex: idx, existed: true}
	m.state.Items[idx].Quantity = quantity
	m.state.RecomputeTotals()
	seq := m.issueLocked(productID)
	m.mu.Unlock()

	m.dispatch("update", productID, seq, u, func() error {
		return m.remote.UpdateQuantity(ctx, token, productID, quantity)
	})
	return nil
}

// Clear empties the cart. Clearing is treated as safe and rarely contested:
// a remote failure is reported but the local cart is not restored.
func (m *Manager) Clear(ctx context.Context) error {
	token, err := m.gate()
	if err != nil {
		return err
	}

	m.mu.Lock()
	// Clearing supersedes every in-flight per-item mutation: bump each
	// known product's sequence so late responses cannot resurrect items.
	for id := range m.seqs {
		m.issueLocked(id)
	}
	for i := range m.state.Items {
		m.issueLocked(m.state.Items[i].ProductID)
	}
	m.state.Items = []model.CartItem{}
	m.state.RecomputeTotals()
	m.mu.Unlock()

	m.wg.Add(1)
	go func() {
		defer m.wg.Done()
		if err := m.remote.ClearCart(ctx, token); err != nil {
			m.logger.Warn("remote clear failed", "error", err)
			m.notifier.OperationFailed("clear", "", err)
		}
	}()
	return nil
}

// issueLocked allocates the next sequence number for a product. Callers hold m.mu.
func (m *Manager) issueLocked(productID string) uint64 {
	s, ok := m.seqs[productID]
	if !ok {
		s = &itemSeq{}
		m.seqs[productID] = s
	}
	s.lastIssued++
	return s.lastIssued
}

// dispatch runs the remote call asynchronously and reconciles its result
// against local state under the per-product sequence rules:
//   - a response older than lastApplied is stale and discarded outright;
//   - a failure compensates the local change only while it is still the
//     latest issued mutation for that product — once a newer mutation has
//     superseded it, the failure is logged and reported but not reverted.
func (m *Manager) dispatch(op, productID string, seq uint64, u undo, call func() error) {
	m.wg.Add(1)
	go func() {
		defer m.wg.Done()
		err := call()

		m.mu.Lock()
		defer m.mu.Unlock()

		s := m.seqs[productID]
		if s == nil || seq < s.lastApplied {
			m.logger.Debug("stale response discarded", "op", op, "product_id", productID, "seq", seq)
			return
		}
		s.lastApplied = seq

		if err == nil {
			// Local state already reflects the intended outcome.
			return
		}

		if seq != s.lastIssued {
			// Superseded by a newer mutation; the user has moved past this state.
			m.logger.Warn("remote call failed after being superseded", "op", op, "product_id", productID, "error", err)
			m.notifier.OperationFailed(op, productID, err)
			return
		}

		m.compensateLocked(u)
		m.logger.Warn("remote call failed, local change reverted", "op", op, "product_id", productID, "error", err)
		m.notifier.OperationFailed(op, productID, err)
	}()
}

// compensateLocked reverts exactly the local change recorded in u.
// Callers hold m.mu.
func (m *Manager) compensateLocked(u undo) {
	idx := m.state.Find(u.productID)
	switch {
	case u.existed && idx >= 0:
		m.state.Items[idx] = u.prevItem
	case u.existed && idx < 0:
		// Re-insert a removed item at its former position.
		pos := u.prevIndex
		if pos > len(m.state.Items) {
			pos = len(m.state.Items)
		}
		m.state.Items = append(m.state.Items[:pos], append([]model.CartItem{u.prevItem}, m.state.Items[pos:]...)...)
	case !u.existed && idx >= 0:
		// The optimistic change inserted a new entry; take it back out.
		m.state.Items = append(m.state.Items[:idx], m.state.Items[idx+1:]...)
	}
	m.state.RecomputeTotals()
}
