package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/stockmanager/admin-console/internal/core/domain"
	"github.com/stockmanager/admin-console/internal/core/ports"
	"github.com/stockmanager/admin-console/internal/metrics"
)

const viewCategories = "categories"

// InventoryService runs the explicit product and category actions. Nothing is
// cached: callers reload the list after a change.
type InventoryService struct {
	api      ports.InventoryAPI
	session  ports.SessionReader
	notifier ports.Notifier
	logger   zerolog.Logger
}

func NewInventoryService(api ports.InventoryAPI, session ports.SessionReader, notifier ports.Notifier, logger zerolog.Logger) *InventoryService {
	return &InventoryService{api: api, session: session, notifier: notifier, logger: logger}
}

// authorize mirrors the backend's manager permission so a Reader gets an
// answer without a round trip.
func (s *InventoryService) authorize(op string) error {
	snap := s.session.Snapshot()
	if snap.User == nil {
		return fmt.Errorf("%s: %w", op, domain.ErrNotAuthenticated)
	}
	if !snap.User.CanManageInventory() {
		s.notifier.Error("You do not have permission to perform this action")
		return fmt.Errorf("%s: %w", op, domain.ErrForbidden)
	}
	return nil
}

func (s *InventoryService) GetProduct(ctx context.Context, id int64) (domain.Product, error) {
	p, err := s.api.GetProduct(ctx, id)
	if err != nil {
		s.logger.Warn().Err(err).Int64("product_id", id).Msg("failed to load product")
		s.notifier.Error("Failed to load product details")
	}
	return p, err
}

func (s *InventoryService) CreateProduct(ctx context.Context, in domain.ProductInput) (domain.Product, error) {
	if err := s.authorize("create product"); err != nil {
		return domain.Product{}, err
	}
	p, err := s.api.CreateProduct(ctx, in)
	if err != nil {
		s.fail(err, "Failed to save product")
		return domain.Product{}, err
	}
	s.logger.Info().Int64("product_id", p.ID).Msg("product created")
	s.notifier.Success("Product created")
	return p, nil
}

func (s *InventoryService) UpdateProduct(ctx context.Context, id int64, in domain.ProductInput) (domain.Product, error) {
	if err := s.authorize("update product"); err != nil {
		return domain.Product{}, err
	}
	p, err := s.api.UpdateProduct(ctx, id, in)
	if err != nil {
		s.fail(err, "Failed to save product")
		return domain.Product{}, err
	}
	s.logger.Info().Int64("product_id", id).Msg("product updated")
	s.notifier.Success("Product updated")
	return p, nil
}

func (s *InventoryService) DeleteProduct(ctx context.Context, id int64) error {
	if err := s.authorize("delete product"); err != nil {
		return err
	}
	if err := s.api.DeleteProduct(ctx, id); err != nil {
		s.fail(err, "Failed to delete product")
		return err
	}
	s.logger.Info().Int64("product_id", id).Msg("product deleted")
	s.notifier.Success("Product deleted")
	return nil
}

// ListCategories fails soft: the page renders an empty list.
func (s *InventoryService) ListCategories(ctx context.Context) domain.CategoryListView {
	categories, err := s.api.ListCategories(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to load categories")
		s.notifier.Error("Failed to load categories")
		metrics.ListLoadsTotal.WithLabelValues(viewCategories, "failed").Inc()
		return domain.CategoryListView{Failed: true, Categories: []domain.Category{}}
	}
	metrics.ListLoadsTotal.WithLabelValues(viewCategories, "ok").Inc()
	return domain.CategoryListView{Categories: nonNil(categories)}
}

func (s *InventoryService) GetCategory(ctx context.Context, id int64) (domain.Category, error) {
	c, err := s.api.GetCategory(ctx, id)
	if err != nil {
		s.logger.Warn().Err(err).Int64("category_id", id).Msg("failed to load category")
		s.notifier.Error("Failed to load category details")
	}
	return c, err
}

func (s *InventoryService) CreateCategory(ctx context.Context, in domain.CategoryInput) (domain.Category, error) {
	if err := s.authorize("create category"); err != nil {
		return domain.Category{}, err
	}
	c, err := s.api.CreateCategory(ctx, in)
	if err != nil {
		s.logger.Warn().Err(err).Msg("failed to create category")
		s.notifier.Error("Failed to save category")
		return domain.Category{}, err
	}
	s.notifier.Success("Category created")
	return c, nil
}

func (s *InventoryService) UpdateCategory(ctx context.Context, id int64, in domain.CategoryInput) (domain.Category, error) {
	if err := s.authorize("update category"); err != nil {
		return domain.Category{}, err
	}
	c, err := s.api.UpdateCategory(ctx, id, in)
	if err != nil {
		s.logger.Warn().Err(err).Int64("category_id", id).Msg("failed to update category")
		s.notifier.Error("Failed to save category")
		return domain.Category{}, err
	}
	s.notifier.Success("Category updated")
	return c, nil
}

func (s *InventoryService) DeleteCategory(ctx context.Context, id int64) error {
	if err := s.authorize("delete category"); err != nil {
		return err
	}
	if err := s.api.DeleteCategory(ctx, id); err != nil {
		s.logger.Warn().Err(err).Int64("category_id", id).Msg("failed to delete category")
		s.notifier.Error("Failed to delete category")
		return err
	}
	s.notifier.Success("Category deleted")
	return nil
}

// fail reports a product action failure with the backend's message.
func (s *InventoryService) fail(err error, prefix string) {
	s.logger.Warn().Err(err).Msg(prefix)
	s.notifier.Error(prefix + ": " + domain.UserMessage(err))
}
