package service

import (
	"context"
	"errors"
	"sync"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/stockmanager/admin-console/internal/core/domain"
	"github.com/stockmanager/admin-console/internal/core/ports"
	"github.com/stockmanager/admin-console/internal/metrics"
)

const viewProducts = "products"

// LoadTask is one in-flight product list load.
type LoadTask struct {
	cancel context.CancelFunc
	done   chan struct{}
}

// Cancel aborts the load. Safe to call more than once.
func (t *LoadTask) Cancel() { t.cancel() }

// Done is closed once the load has finished or been discarded.
func (t *LoadTask) Done() <-chan struct{} { return t.done }

// ProductList is the view-model of one product list mount. Results of a load
// that was superseded or unmounted are dropped.
type ProductList struct {
	catalog ports.CatalogReader
	logger  zerolog.Logger

	mu         sync.Mutex
	filter     domain.ViewFilterState
	products   []domain.Product
	categories []domain.Category
	loading    bool
	failed     bool
	task       *LoadTask
}

func NewProductList(catalog ports.CatalogReader, logger zerolog.Logger) *ProductList {
	return &ProductList{
		catalog:    catalog,
		logger:     logger,
		filter:     domain.DefaultViewFilterState(),
		products:   []domain.Product{},
		categories: []domain.Category{},
	}
}

// SetFilter replaces the list controls. Filtering needs no reload.
func (l *ProductList) SetFilter(f domain.ViewFilterState) {
	if f.StockFilter == "" {
		f.StockFilter = domain.StockFilterAll
	}
	if f.SortOrder == "" {
		f.SortOrder = domain.SortByName
	}
	l.mu.Lock()
	l.filter = f
	l.mu.Unlock()
}

// Mount starts loading products and categories concurrently. Any earlier
// load is cancelled.
func (l *ProductList) Mount(ctx context.Context) *LoadTask {
	ctx, cancel := context.WithCancel(ctx)
	task := &LoadTask{cancel: cancel, done: make(chan struct{})}

	l.mu.Lock()
	if l.task != nil {
		l.task.Cancel()
	}
	l.task = task
	l.loading = true
	l.mu.Unlock()

	go l.load(ctx, task)
	return task
}

// Unmount cancels the in-flight load; its result will be discarded.
func (l *ProductList) Unmount() {
	l.mu.Lock()
	task := l.task
	l.task = nil
	l.mu.Unlock()
	if task != nil {
		task.Cancel()
	}
}

func (l *ProductList) load(ctx context.Context, task *LoadTask) {
	defer close(task.done)
	defer task.cancel()

	var products []domain.Product
	var categories []domain.Category
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		products, err = l.catalog.ListProducts(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		categories, err = l.catalog.ListCategories(gctx)
		return err
	})
	err := g.Wait()

	l.mu.Lock()
	defer l.mu.Unlock()
	if l.task != task {
		metrics.ListLoadsTotal.WithLabelValues(viewProducts, "cancelled").Inc()
		return
	}
	l.task = nil
	l.loading = false

	if err != nil {
		if !errors.Is(err, context.Canceled) {
			l.logger.Error().Err(err).Msg("failed to load product list")
		}
		l.failed = true
		l.products = []domain.Product{}
		l.categories = []domain.Category{}
		metrics.ListLoadsTotal.WithLabelValues(viewProducts, "failed").Inc()
		return
	}
	l.failed = false
	l.products = nonNil(products)
	l.categories = nonNil(categories)
	metrics.ListLoadsTotal.WithLabelValues(viewProducts, "ok").Inc()
}

// View renders the current state through the filter pipeline.
func (l *ProductList) View() domain.ProductListView {
	l.mu.Lock()
	defer l.mu.Unlock()
	return domain.ProductListView{
		Loading:    l.loading,
		Failed:     l.failed,
		Filter:     l.filter,
		Products:   ApplyFilters(l.products, l.filter),
		Categories: append([]domain.Category{}, l.categories...),
		Total:      len(l.products),
	}
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}

// ProductListLoader serves the product list page: one mount per request.
type ProductListLoader struct {
	catalog ports.CatalogReader
	logger  zerolog.Logger
}

func NewProductListLoader(catalog ports.CatalogReader, logger zerolog.Logger) *ProductListLoader {
	return &ProductListLoader{catalog: catalog, logger: logger}
}

// LoadProductList mounts a list, waits for the load and renders it. If ctx
// ends first the list is unmounted and the loading view is returned.
func (s *ProductListLoader) LoadProductList(ctx context.Context, filter domain.ViewFilterState) domain.ProductListView {
	list := NewProductList(s.catalog, s.logger)
	list.SetFilter(filter)
	task := list.Mount(ctx)
	select {
	case <-task.Done():
	case <-ctx.Done():
		list.Unmount()
	}
	return list.View()
}
