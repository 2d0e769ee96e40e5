package catalogsync

import (
	"context"
	"fmt"
	"sync"
	"time"

	"promostore/internal/domain"
	applog "promostore/internal/log"
	"promostore/internal/metrics"
	"promostore/internal/repos"
	"promostore/internal/vendor"
)

const (
	DefaultInterval = 6 * time.Hour
	DefaultPageSize = 100

	// finishTimeout bounds the write that closes a run log entry.
	finishTimeout = 10 * time.Second
)

// VendorSource is the subset of the vendor client a sync needs.
type VendorSource interface {
	Categories(ctx context.Context) ([]vendor.Category, error)
	BrandingMethods(ctx context.Context) ([]vendor.BrandingMethod, error)
	Products(ctx context.Context, page, pageSize int) (vendor.Page[vendor.Product], error)
}

// RunLog records one entry per sync phase.
type RunLog interface {
	Start(ctx context.Context, t domain.SyncType) (domain.SyncRunLog, error)
	Complete(ctx context.Context, id string, records int) error
	Fail(ctx context.Context, id, msg string) error
}

type State int

const (
	Idle State = iota
	Scheduled
)

func (s State) String() string {
	if s == Scheduled {
		return "scheduled"
	}
	return "idle"
}

// Ticker is the part of time.Ticker the scheduler uses.
type Ticker interface {
	C() <-chan time.Time
	Stop()
}

type timeTicker struct{ t *time.Ticker }

func (t timeTicker) C() <-chan time.Time { return t.t.C }
func (t timeTicker) Stop()               { t.t.Stop() }

func newTimeTicker(d time.Duration) Ticker { return timeTicker{t: time.NewTicker(d)} }

type Option func(*Scheduler)

func WithInterval(d time.Duration) Option {
	return func(s *Scheduler) {
		if d > 0 {
			s.interval = d
		}
	}
}

func WithPageSize(n int) Option {
	return func(s *Scheduler) {
		if n > 0 {
			s.pageSize = n
		}
	}
}

// WithTicker replaces the ticker factory.
func WithTicker(fn func(time.Duration) Ticker) Option {
	return func(s *Scheduler) { s.newTicker = fn }
}

// WithAfterSync registers a hook that runs after every SyncAll, whatever its
// outcome. Used to drop cached catalog reads.
func WithAfterSync(fn func()) Option {
	return func(s *Scheduler) { s.afterSync = fn }
}

// Scheduler mirrors the vendor catalog into the store, on demand and on a
// fixed interval.
type Scheduler struct {
	source    VendorSource
	store     repos.CatalogStore
	runs      RunLog
	interval  time.Duration
	pageSize  int
	newTicker func(time.Duration) Ticker
	afterSync func()
	now       func() time.Time

	mu     sync.Mutex
	state  State
	ticker Ticker
	done   chan struct{}
	wg     sync.WaitGroup
}

func NewScheduler(source VendorSource, store repos.CatalogStore, runs RunLog, opts ...Option) *Scheduler {
	s := &Scheduler{
		source:    source,
		store:     store,
		runs:      runs,
		interval:  DefaultInterval,
		pageSize:  DefaultPageSize,
		newTicker: newTimeTicker,
		now:       func() time.Time { return time.Now().UTC() },
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

func (s *Scheduler) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Start runs one sync right away and then one per interval. Calling Start on
// a running scheduler does nothing.
func (s *Scheduler) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == Scheduled {
		return
	}
	s.ticker = s.newTicker(s.interval)
	s.done = make(chan struct{})
	s.state = Scheduled
	applog.Info(nil, "sync.scheduler.start", map[string]any{"interval": s.interval.String()})

	s.wg.Add(1)
	go s.loop(s.ticker, s.done)
}

// Stop disarms the timer. A sync already in progress runs to completion.
// Calling Stop on an idle scheduler does nothing.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == Idle {
		return
	}
	s.ticker.Stop()
	close(s.done)
	s.ticker = nil
	s.done = nil
	s.state = Idle
	applog.Info(nil, "sync.scheduler.stop", nil)
}

// Wait blocks until the background loop has exited, including any sync it
// was running when Stop was called.
func (s *Scheduler) Wait() { s.wg.Wait() }

func (s *Scheduler) loop(t Ticker, done <-chan struct{}) {
	defer s.wg.Done()
	s.runScheduled()
	for {
		select {
		case <-done:
			return
		case <-t.C():
			select {
			case <-done:
				return
			default:
			}
			s.runScheduled()
		}
	}
}

// runScheduled detaches from any caller context so Stop never cancels a run.
// Failures are already logged by SyncAll.
func (s *Scheduler) runScheduled() {
	_ = s.SyncAll(context.Background())
}

// SyncAll runs categories, branding methods and products in that order. The
// first failing phase stops the run and its error is returned; the timer loop
// discards it, since the failure is already logged and in the run log.
func (s *Scheduler) SyncAll(ctx context.Context) error {
	start := time.Now()
	applog.Info(nil, "sync.all.start", nil)
	if s.afterSync != nil {
		defer s.afterSync()
	}

	phases := []func(context.Context) error{
		s.SyncCategories,
		s.SyncBrandingMethods,
		s.SyncProducts,
	}
	for _, phase := range phases {
		if err := phase(ctx); err != nil {
			applog.Error(nil, "sync.all.fail", err, map[string]any{"duration_ms": time.Since(start).Milliseconds()})
			return err
		}
	}
	applog.Info(nil, "sync.all.ok", map[string]any{"duration_ms": time.Since(start).Milliseconds()})
	return nil
}

func (s *Scheduler) SyncCategories(ctx context.Context) error {
	return s.runPhase(ctx, domain.SyncCategories, func(ctx context.Context) (int, error) {
		items, err := s.source.Categories(ctx)
		if err != nil {
			return 0, err
		}
		out := make([]domain.Category, 0, len(items))
		for _, c := range items {
			out = append(out, CategoryFromVendor(c))
		}
		if err := s.store.BulkInsertCategories(ctx, out); err != nil {
			return 0, err
		}
		return len(out), nil
	})
}

func (s *Scheduler) SyncBrandingMethods(ctx context.Context) error {
	return s.runPhase(ctx, domain.SyncBrandingMethods, func(ctx context.Context) (int, error) {
		items, err := s.source.BrandingMethods(ctx)
		if err != nil {
			return 0, err
		}
		out := make([]domain.BrandingMethod, 0, len(items))
		for _, m := range items {
			out = append(out, BrandingMethodFromVendor(m))
		}
		if err := s.store.BulkInsertBrandingMethods(ctx, out); err != nil {
			return 0, err
		}
		return len(out), nil
	})
}

// SyncProducts pages through the vendor catalog and replaces the local
// product set in one write, so a failure part way leaves the previous
// catalog untouched.
func (s *Scheduler) SyncProducts(ctx context.Context) error {
	return s.runPhase(ctx, domain.SyncProducts, func(ctx context.Context) (int, error) {
		now := s.now()
		all := []domain.Product{}
		for page := 1; ; page++ {
			res, err := s.source.Products(ctx, page, s.pageSize)
			if err != nil {
				return 0, fmt.Errorf("page %d: %w", page, err)
			}
			for _, p := range res.Items {
				all = append(all, ProductFromVendor(p, now))
			}
			applog.Info(nil, "sync.products.page", map[string]any{
				"page": page, "count": len(res.Items), "processed": len(all),
			})
			if !res.HasMore || len(res.Items) == 0 {
				break
			}
		}
		if err := s.store.ReplaceProducts(ctx, all); err != nil {
			return 0, err
		}
		return len(all), nil
	})
}

// runPhase wraps one phase in its run log entry. The entry always ends
// completed or failed, and a failed phase returns its error.
func (s *Scheduler) runPhase(ctx context.Context, t domain.SyncType, fn func(context.Context) (int, error)) error {
	entry, err := s.runs.Start(ctx, t)
	if err != nil {
		return fmt.Errorf("start %s sync log: %w", t, err)
	}
	began := time.Now()
	applog.Info(nil, "sync."+string(t)+".start", map[string]any{"log_id": entry.ID})

	n, err := guard(ctx, fn)
	dur := time.Since(began)

	// The entry must be closed even when ctx was what ended the phase.
	fctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), finishTimeout)
	defer cancel()
	if err != nil {
		msg := err.Error()
		if msg == "" {
			msg = "unknown error"
		}
		if ferr := s.runs.Fail(fctx, entry.ID, msg); ferr != nil {
			applog.Error(nil, "sync.log.fail", ferr, map[string]any{"log_id": entry.ID})
		}
		metrics.RecordSync(string(t), string(domain.SyncFailed), 0, dur)
		applog.Error(nil, "sync."+string(t)+".fail", err, map[string]any{"log_id": entry.ID})
		return fmt.Errorf("sync %s: %w", t, err)
	}

	if err := s.runs.Complete(fctx, entry.ID, n); err != nil {
		applog.Error(nil, "sync.log.fail", err, map[string]any{"log_id": entry.ID})
	}
	metrics.RecordSync(string(t), string(domain.SyncCompleted), n, dur)
	applog.Info(nil, "sync."+string(t)+".ok", map[string]any{"log_id": entry.ID, "records": n, "duration_ms": dur.Milliseconds()})
	return nil
}

// guard turns a panic inside a phase into an error so the log entry is
// still closed.
func guard(ctx context.Context, fn func(context.Context) (int, error)) (n int, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return fn(ctx)
}
