// Package controller implements the list-view data controller behind every
// admin collection screen: query state, debounced search, page-aware fetching
// with a last-committed-wins race guard, guarded mutations, a single-slot
// notifier, and a detail loader.
//
// The controller is headless. It owns state and transitions; rendering is the
// caller's job via State snapshots and the optional change callback.
package controller

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/sekolahdigital/tamuadmin/internal/domain"
)

// Source is the backend boundary for one resource collection. T is the row
// type, F the create/update form type. Mutations return the backend's
// success message, which takes precedence over the controller defaults.
type Source[T any, F any] interface {
	List(ctx context.Context, q domain.ListQuery) (*domain.PageResult[T], error)
	Get(ctx context.Context, id int) (*T, error)
	Create(ctx context.Context, form F) (string, error)
	Update(ctx context.Context, id int, form F) (string, error)
	Delete(ctx context.Context, id int) (string, error)
}

// Messages are the fallback notification texts for one resource. Empty
// fields fall back to neutral English defaults; resource modules supply
// localized texts.
type Messages struct {
	FetchFailed  string
	DetailFailed string
	CreateOK     string
	CreateFailed string
	UpdateOK     string
	UpdateFailed string
	DeleteOK     string
	DeleteFailed string
}

func (m *Messages) applyDefaults() {
	def := func(s *string, fallback string) {
		if *s == "" {
			*s = fallback
		}
	}
	def(&m.FetchFailed, "failed to load data")
	def(&m.DetailFailed, "failed to load record")
	def(&m.CreateOK, "record created")
	def(&m.CreateFailed, "failed to create record")
	def(&m.UpdateOK, "record updated")
	def(&m.UpdateFailed, "failed to update record")
	def(&m.DeleteOK, "record deleted")
	def(&m.DeleteFailed, "failed to delete record")
}

// Config assembles a Controller.
type Config[T any, F any] struct {
	Source    Source[T, F]
	Messages  Messages
	Debounce  time.Duration // settle time for search input, DefaultDebounce when zero
	NotifyTTL time.Duration // notification lifetime, DefaultNotifyTTL when zero
}

// DetailState is the overlay showing one full record.
type DetailState[T any] struct {
	Open    bool
	Loading bool
	Record  *T
}

// State is an immutable snapshot of the controller for rendering.
type State[T any] struct {
	Rows        []T
	Loading     bool
	Submitting  bool
	Query       domain.ListQuery // committed query, the one results belong to
	RawSearch   string           // live input, ahead of Query.Search while debouncing
	CurrentPage int
	LastPage    int
	Total       int
	From        int
	To          int
	PendingDel  int // id armed for deletion, 0 when none
	Detail      DetailState[T]
}

// ErrSubmitting is returned when a mutation is requested while another one
// is still in flight.
var ErrSubmitting = domain.NewAppError(domain.CodeValidation, "another submission is in progress", nil)

// ErrNoPendingDelete is returned by ConfirmDelete when no row is armed.
var ErrNoPendingDelete = domain.NewAppError(domain.CodeValidation, "no delete pending confirmation", nil)

// Controller drives one collection screen.
type Controller[T any, F any] struct {
	src  Source[T, F]
	msgs Messages

	notifier *Notifier
	deb      *Debouncer

	mu        sync.Mutex
	query     domain.ListQuery
	rawSearch string

	rows    []T
	curPage int
	lastPg  int
	total   int
	from    int
	to      int

	loading    bool
	submitting bool
	pendingDel int

	detail     DetailState[T]
	detailSeq  uint64
	fetchSeq   uint64 // last issued fetch
	appliedSeq uint64 // last applied fetch
	cancelCur  context.CancelFunc

	closed   bool
	baseCtx  context.Context
	cancel   context.CancelFunc
	onChange func()
}

// New creates a Controller with an initial default query. No fetch is issued;
// callers run Refresh once the screen mounts.
func New[T any, F any](cfg Config[T, F]) *Controller[T, F] {
	cfg.Messages.applyDefaults()
	ctx, cancel := context.WithCancel(context.Background())
	c := &Controller[T, F]{
		src:      cfg.Source,
		msgs:     cfg.Messages,
		notifier: NewNotifier(cfg.NotifyTTL),
		query:    domain.NewListQuery(),
		rows:     []T{},
		curPage:  1,
		lastPg:   1,
		baseCtx:  ctx,
		cancel:   cancel,
	}
	c.deb = NewDebouncer(cfg.Debounce, c.commitSearch)
	return c
}

// Notifier exposes the notification slot for rendering and dismissal.
func (c *Controller[T, F]) Notifier() *Notifier { return c.notifier }

// SetOnChange registers a callback invoked after every state transition.
func (c *Controller[T, F]) SetOnChange(fn func()) {
	c.mu.Lock()
	c.onChange = fn
	c.mu.Unlock()
}

// State returns a snapshot for rendering. Rows shares the underlying array;
// treat it as read-only.
func (c *Controller[T, F]) State() State[T] {
	c.mu.Lock()
	defer c.mu.Unlock()
	return State[T]{
		Rows:        c.rows,
		Loading:     c.loading,
		Submitting:  c.submitting,
		Query:       c.query.Clone(),
		RawSearch:   c.rawSearch,
		CurrentPage: c.curPage,
		LastPage:    c.lastPg,
		Total:       c.total,
		From:        c.from,
		To:          c.to,
		PendingDel:  c.pendingDel,
		Detail:      c.detail,
	}
}

// Close cancels in-flight work and ignores further input.
func (c *Controller[T, F]) Close() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	if c.cancelCur != nil {
		c.cancelCur()
	}
	c.mu.Unlock()

	c.deb.Stop()
	c.cancel()
}

// SetQuery replaces the whole committed query and fetches once. Used when a
// screen restores saved state instead of starting from the defaults.
func (c *Controller[T, F]) SetQuery(ctx context.Context, q domain.ListQuery) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	q = q.Clone()
	if q.Page < 1 {
		q.Page = 1
	}
	q.RowsPerPage = domain.ClampRowsPerPage(q.RowsPerPage)
	c.query = q
	c.rawSearch = q.Search
	c.mu.Unlock()

	c.Refresh(ctx)
}

// SetSearch records the live input and starts the debounce window. The
// committed query only changes once the input settles.
func (c *Controller[T, F]) SetSearch(value string) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.rawSearch = value
	c.mu.Unlock()

	c.notifyChange()
	c.deb.Trigger(value)
}

// FlushSearch commits the pending search immediately, skipping the rest of
// the debounce window.
func (c *Controller[T, F]) FlushSearch() { c.deb.Flush() }

// commitSearch is the debounce callback: the settled value becomes the
// committed search and paging restarts from page 1.
func (c *Controller[T, F]) commitSearch(value string) {
	c.mu.Lock()
	if c.closed || c.query.Search == value {
		c.mu.Unlock()
		return
	}
	c.query.Search = value
	c.query.Page = 1
	ctx := c.baseCtx
	c.mu.Unlock()

	c.Refresh(ctx)
}

// SetFilter sets a named filter. An empty value removes the filter. Any
// change restarts paging from page 1 and refetches.
func (c *Controller[T, F]) SetFilter(ctx context.Context, name, value string) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	cur, ok := c.query.Filters[name]
	if (value == "" && !ok) || (ok && cur == value) {
		c.mu.Unlock()
		return
	}
	if value == "" {
		delete(c.query.Filters, name)
	} else {
		c.query.Filters[name] = value
	}
	c.query.Page = 1
	c.mu.Unlock()

	c.Refresh(ctx)
}

// ClearFilters drops every filter and the search text, then refetches from
// page 1.
func (c *Controller[T, F]) ClearFilters(ctx context.Context) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.query.Filters = map[string]string{}
	c.query.Search = ""
	c.rawSearch = ""
	c.query.Page = 1
	c.mu.Unlock()

	c.Refresh(ctx)
}

// SetRowsPerPage changes the page size, clamped to the allowed options, and
// restarts from page 1.
func (c *Controller[T, F]) SetRowsPerPage(ctx context.Context, n int) {
	n = domain.ClampRowsPerPage(n)
	c.mu.Lock()
	if c.closed || c.query.RowsPerPage == n {
		c.mu.Unlock()
		return
	}
	c.query.RowsPerPage = n
	c.query.Page = 1
	c.mu.Unlock()

	c.Refresh(ctx)
}

// SetPage navigates to the given page, clamped to [1, last known page].
func (c *Controller[T, F]) SetPage(ctx context.Context, page int) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	if page < 1 {
		page = 1
	}
	if c.lastPg > 0 && page > c.lastPg {
		page = c.lastPg
	}
	if c.query.Page == page {
		c.mu.Unlock()
		return
	}
	c.query.Page = page
	c.mu.Unlock()

	c.Refresh(ctx)
}

// NextPage advances one page when not already on the last.
func (c *Controller[T, F]) NextPage(ctx context.Context) {
	c.mu.Lock()
	page := c.query.Page + 1
	c.mu.Unlock()
	c.SetPage(ctx, page)
}

// PrevPage goes back one page when not already on the first.
func (c *Controller[T, F]) PrevPage(ctx context.Context) {
	c.mu.Lock()
	page := c.query.Page - 1
	c.mu.Unlock()
	c.SetPage(ctx, page)
}

// Refresh fetches the current committed query. Concurrent calls are safe:
// each fetch gets a sequence number and cancels the previous in-flight
// request, and a response is only applied when no newer fetch has been
// applied. The rendered rows therefore always belong to the newest query.
func (c *Controller[T, F]) Refresh(ctx context.Context) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.fetchSeq++
	seq := c.fetchSeq
	q := c.query.Clone()
	if c.cancelCur != nil {
		c.cancelCur()
	}
	fctx, cancel := context.WithCancel(ctx)
	c.cancelCur = cancel
	c.loading = true
	c.mu.Unlock()
	c.notifyChange()

	res, err := c.src.List(fctx, q)
	cancel()

	c.mu.Lock()
	if c.closed || seq <= c.appliedSeq {
		c.mu.Unlock()
		return
	}
	if err != nil && (errors.Is(err, context.Canceled) || fctx.Err() != nil) {
		// Superseded by a newer fetch; the newer response owns the screen.
		c.mu.Unlock()
		return
	}
	c.appliedSeq = seq
	c.loading = seq != c.fetchSeq

	if err != nil {
		// Only the rows are cleared; the last known pagination stays so
		// prev/next keep their anchor while the error is shown.
		c.rows = []T{}
		c.mu.Unlock()
		c.notifier.Show(domain.NotifyError, c.failureText(err, c.msgs.FetchFailed))
		c.notifyChange()
		return
	}

	c.rows = res.Rows
	c.curPage = res.CurrentPage
	c.lastPg = res.LastPage
	c.total = res.Total
	c.from = res.From
	c.to = res.To
	c.mu.Unlock()
	c.notifyChange()
}

// failureText picks the notification text for a failed operation: any
// backend message, including one carried by a 5xx body, is surfaced
// verbatim. Only message-less failures (no response at all) fall back to
// the resource default.
func (c *Controller[T, F]) failureText(err error, fallback string) string {
	var appErr *domain.AppError
	if errors.As(err, &appErr) && appErr.Message != "" {
		return appErr.Message
	}
	return fallback
}

func (c *Controller[T, F]) notifyChange() {
	c.mu.Lock()
	fn := c.onChange
	c.mu.Unlock()
	if fn != nil {
		fn()
	}
}
