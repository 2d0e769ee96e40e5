package catalogsync_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"promostore/internal/catalogsync"
	"promostore/internal/domain"
	"promostore/internal/repos"
	"promostore/internal/vendor"
)

type fakeSource struct {
	categories []vendor.Category
	methods    []vendor.BrandingMethod
	products   []vendor.Product

	categoriesErr error
	brandingErr   error
	productsErrAt int // page that fails; 0 = none
	panicOn       string
	// cancel, when set, is called from Categories to end the caller's context.
	cancel context.CancelFunc

	categoryCalls atomic.Int32
	pageCalls     atomic.Int32

	// block, when set, holds Categories until it is closed.
	block   chan struct{}
	entered chan struct{}
}

func (f *fakeSource) Categories(ctx context.Context) ([]vendor.Category, error) {
	f.categoryCalls.Add(1)
	if f.cancel != nil {
		f.cancel()
		return nil, ctx.Err()
	}
	if f.block != nil {
		f.entered <- struct{}{}
		<-f.block
		if err := ctx.Err(); err != nil {
			return nil, err
		}
	}
	if f.panicOn == "categories" {
		panic("boom")
	}
	return f.categories, f.categoriesErr
}

func (f *fakeSource) BrandingMethods(context.Context) ([]vendor.BrandingMethod, error) {
	return f.methods, f.brandingErr
}

func (f *fakeSource) Products(_ context.Context, page, pageSize int) (vendor.Page[vendor.Product], error) {
	f.pageCalls.Add(1)
	if page == f.productsErrAt {
		return vendor.Page[vendor.Product]{}, errors.New("vendor timeout")
	}
	start := (page - 1) * pageSize
	if start > len(f.products) {
		start = len(f.products)
	}
	end := start + pageSize
	if end > len(f.products) {
		end = len(f.products)
	}
	return vendor.Page[vendor.Product]{
		Items:   f.products[start:end],
		Page:    page,
		Total:   len(f.products),
		HasMore: end < len(f.products),
	}, nil
}

func vendorProducts(n int) []vendor.Product {
	out := make([]vendor.Product, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, vendor.Product{
			ID:       fmt.Sprintf("P%03d", i),
			Name:     fmt.Sprintf("Product %03d", i),
			Price:    decimal.RequireFromString("10.00"),
			Category: "Apparel",
			Variants: []vendor.Variant{{Color: "Red", Sizes: []string{"M"}, Stock: 2}},
		})
	}
	return out
}

type harness struct {
	store *repos.MemCatalog
	logs  *repos.SyncLogRepo
	src   *fakeSource
}

func newHarness(t *testing.T, src *fakeSource) harness {
	t.Helper()
	db, err := repos.OpenDB(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return harness{store: repos.NewMemCatalog(), logs: repos.NewSyncLogRepo(db), src: src}
}

func (h harness) scheduler(opts ...catalogsync.Option) *catalogsync.Scheduler {
	return catalogsync.NewScheduler(h.src, h.store, h.logs, opts...)
}

// logsByType returns every log entry, oldest first, grouped by type.
func (h harness) logsByType(t *testing.T) map[domain.SyncType][]domain.SyncRunLog {
	t.Helper()
	all, err := h.logs.ListLatest(context.Background(), 1000)
	require.NoError(t, err)
	out := map[domain.SyncType][]domain.SyncRunLog{}
	for i := len(all) - 1; i >= 0; i-- {
		out[all[i].SyncType] = append(out[all[i].SyncType], all[i])
	}
	return out
}

func TestSyncAllMirrorsCatalogAndLogsEachPhase(t *testing.T) {
	h := newHarness(t, &fakeSource{
		categories: []vendor.Category{{ID: "C1", Name: "Apparel"}, {ID: "C2", Name: "Drinkware"}},
		methods:    []vendor.BrandingMethod{{ID: "B1", Name: "Screen Print", MinimumQuantity: 50}},
		products:   vendorProducts(250),
	})
	hookCalls := 0
	s := h.scheduler(catalogsync.WithAfterSync(func() { hookCalls++ }))

	require.NoError(t, s.SyncAll(context.Background()))

	products, err := h.store.ListProducts(context.Background(), repos.ProductFilter{})
	require.NoError(t, err)
	assert.Len(t, products, 250)
	assert.Equal(t, int32(3), h.src.pageCalls.Load())
	assert.Equal(t, 1, hookCalls)

	logs := h.logsByType(t)
	want := map[domain.SyncType]int{domain.SyncCategories: 2, domain.SyncBrandingMethods: 1, domain.SyncProducts: 250}
	for typ, n := range want {
		require.Len(t, logs[typ], 1, typ)
		l := logs[typ][0]
		assert.Equal(t, domain.SyncCompleted, l.Status, typ)
		assert.Equal(t, n, l.RecordsProcessed, typ)
		assert.NotNil(t, l.CompletedAt, typ)
		assert.Empty(t, l.ErrorMessage, typ)
	}
}

func TestPhaseFailureIsLoggedReturnedAndStopsTheRun(t *testing.T) {
	vendorErr := &vendor.RequestError{Endpoint: "/branding/GetAll", Status: 502}
	h := newHarness(t, &fakeSource{
		categories:  []vendor.Category{{ID: "C1", Name: "Apparel"}},
		brandingErr: vendorErr,
		products:    vendorProducts(3),
	})
	s := h.scheduler()

	err := s.SyncAll(context.Background())
	var reqErr *vendor.RequestError
	require.ErrorAs(t, err, &reqErr)

	logs := h.logsByType(t)
	require.Len(t, logs[domain.SyncCategories], 1)
	assert.Equal(t, domain.SyncCompleted, logs[domain.SyncCategories][0].Status)

	require.Len(t, logs[domain.SyncBrandingMethods], 1)
	failed := logs[domain.SyncBrandingMethods][0]
	assert.Equal(t, domain.SyncFailed, failed.Status)
	assert.Equal(t, vendorErr.Error(), failed.ErrorMessage)
	assert.NotNil(t, failed.CompletedAt)

	assert.Empty(t, logs[domain.SyncProducts])
	assert.Equal(t, int32(0), h.src.pageCalls.Load())
}

func TestProductFailureKeepsPreviousCatalog(t *testing.T) {
	h := newHarness(t, &fakeSource{products: vendorProducts(150)})
	s := h.scheduler()
	require.NoError(t, s.SyncProducts(context.Background()))

	h.src.products = vendorProducts(300)
	h.src.productsErrAt = 2
	err := s.SyncProducts(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "vendor timeout")

	products, err := h.store.ListProducts(context.Background(), repos.ProductFilter{})
	require.NoError(t, err)
	assert.Len(t, products, 150)

	logs := h.logsByType(t)[domain.SyncProducts]
	require.Len(t, logs, 2)
	assert.Equal(t, domain.SyncCompleted, logs[0].Status)
	assert.Equal(t, domain.SyncFailed, logs[1].Status)
	assert.Contains(t, logs[1].ErrorMessage, "vendor timeout")
}

func TestEmptyProductListingReplacesWithNothing(t *testing.T) {
	h := newHarness(t, &fakeSource{products: vendorProducts(5)})
	s := h.scheduler()
	require.NoError(t, s.SyncProducts(context.Background()))

	h.src.products = nil
	require.NoError(t, s.SyncProducts(context.Background()))

	products, err := h.store.ListProducts(context.Background(), repos.ProductFilter{})
	require.NoError(t, err)
	assert.Empty(t, products)
	logs := h.logsByType(t)[domain.SyncProducts]
	require.Len(t, logs, 2)
	assert.Equal(t, 0, logs[1].RecordsProcessed)
}

func TestPanicInPhaseStillClosesLog(t *testing.T) {
	h := newHarness(t, &fakeSource{panicOn: "categories"})
	s := h.scheduler()

	err := s.SyncCategories(context.Background())
	require.Error(t, err)

	logs := h.logsByType(t)[domain.SyncCategories]
	require.Len(t, logs, 1)
	assert.Equal(t, domain.SyncFailed, logs[0].Status)
	assert.Equal(t, "panic: boom", logs[0].ErrorMessage)
}

func TestCancelledPhaseStillClosesLog(t *testing.T) {
	h := newHarness(t, &fakeSource{})
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	h.src.cancel = cancel

	err := h.scheduler().SyncCategories(ctx)
	require.ErrorIs(t, err, context.Canceled)

	logs := h.logsByType(t)[domain.SyncCategories]
	require.Len(t, logs, 1)
	assert.Equal(t, domain.SyncFailed, logs[0].Status)
	assert.Equal(t, context.Canceled.Error(), logs[0].ErrorMessage)
	assert.NotNil(t, logs[0].CompletedAt)
}

func TestIDlessRecordsKeepOneRowAcrossSyncs(t *testing.T) {
	h := newHarness(t, &fakeSource{
		categories: []vendor.Category{{Name: "Bags"}},
		methods:    []vendor.BrandingMethod{{Name: "Embroidery"}},
	})
	s := h.scheduler()
	for i := 0; i < 3; i++ {
		require.NoError(t, s.SyncCategories(context.Background()))
		require.NoError(t, s.SyncBrandingMethods(context.Background()))
	}

	cats, err := h.store.ListCategories(context.Background())
	require.NoError(t, err)
	assert.Len(t, cats, 1)
	methods, err := h.store.ListBrandingMethods(context.Background())
	require.NoError(t, err)
	assert.Len(t, methods, 1)
}

func TestCategoriesAreAddedNotReplaced(t *testing.T) {
	h := newHarness(t, &fakeSource{categories: []vendor.Category{{ID: "C1", Name: "Apparel"}}})
	s := h.scheduler()
	require.NoError(t, s.SyncCategories(context.Background()))

	h.src.categories = []vendor.Category{{ID: "C2", Name: "Drinkware"}}
	require.NoError(t, s.SyncCategories(context.Background()))

	cats, err := h.store.ListCategories(context.Background())
	require.NoError(t, err)
	assert.Len(t, cats, 2)
}

type fakeTicker struct {
	ch      chan time.Time
	stopped atomic.Bool
}

func (f *fakeTicker) C() <-chan time.Time { return f.ch }
func (f *fakeTicker) Stop()               { f.stopped.Store(true) }

func TestStartIsIdempotentAndEachTickSyncsOnce(t *testing.T) {
	h := newHarness(t, &fakeSource{})
	var (
		mu      sync.Mutex
		tickers []*fakeTicker
		gotDur  time.Duration
	)
	s := h.scheduler(
		catalogsync.WithInterval(time.Minute),
		catalogsync.WithTicker(func(d time.Duration) catalogsync.Ticker {
			mu.Lock()
			defer mu.Unlock()
			gotDur = d
			ft := &fakeTicker{ch: make(chan time.Time)}
			tickers = append(tickers, ft)
			return ft
		}),
	)
	assert.Equal(t, catalogsync.Idle, s.State())

	s.Start()
	s.Start()
	assert.Equal(t, catalogsync.Scheduled, s.State())

	mu.Lock()
	require.Len(t, tickers, 1)
	ft := tickers[0]
	assert.Equal(t, time.Minute, gotDur)
	mu.Unlock()

	// immediate run on start
	require.Eventually(t, func() bool { return h.src.categoryCalls.Load() == 1 }, time.Second, 5*time.Millisecond)

	ft.ch <- time.Now()
	require.Eventually(t, func() bool { return h.src.categoryCalls.Load() == 2 }, time.Second, 5*time.Millisecond)

	s.Stop()
	s.Stop()
	s.Wait()
	assert.Equal(t, catalogsync.Idle, s.State())
	assert.True(t, ft.stopped.Load())
	assert.Equal(t, int32(2), h.src.categoryCalls.Load())

	logs := h.logsByType(t)
	assert.Len(t, logs[domain.SyncCategories], 2)
	assert.Len(t, logs[domain.SyncProducts], 2)
}

func TestStopLetsInFlightSyncFinish(t *testing.T) {
	src := &fakeSource{
		categories: []vendor.Category{{ID: "C1", Name: "Apparel"}},
		products:   vendorProducts(1),
		block:      make(chan struct{}),
		entered:    make(chan struct{}, 1),
	}
	h := newHarness(t, src)
	s := h.scheduler(catalogsync.WithTicker(func(time.Duration) catalogsync.Ticker {
		return &fakeTicker{ch: make(chan time.Time)}
	}))

	s.Start()
	<-src.entered
	s.Stop()
	close(src.block)
	s.Wait()

	logs := h.logsByType(t)
	for _, typ := range []domain.SyncType{domain.SyncCategories, domain.SyncBrandingMethods, domain.SyncProducts} {
		require.Len(t, logs[typ], 1, typ)
		assert.Equal(t, domain.SyncCompleted, logs[typ][0].Status, typ)
	}
}

func TestSchedulerCanRestartAfterStop(t *testing.T) {
	h := newHarness(t, &fakeSource{})
	created := atomic.Int32{}
	s := h.scheduler(catalogsync.WithTicker(func(time.Duration) catalogsync.Ticker {
		created.Add(1)
		return &fakeTicker{ch: make(chan time.Time)}
	}))

	s.Start()
	s.Stop()
	s.Start()
	s.Stop()
	s.Wait()
	assert.Equal(t, int32(2), created.Load())
}
