package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Skotchmaster/furnico/internal/cache"
	"github.com/Skotchmaster/furnico/internal/events"
	"github.com/Skotchmaster/furnico/internal/models"
	"github.com/Skotchmaster/furnico/internal/repo"
	"github.com/Skotchmaster/furnico/internal/search"
	"github.com/Skotchmaster/furnico/internal/transport"
	"github.com/Skotchmaster/furnico/pkg/logging"
	"github.com/Skotchmaster/furnico/pkg/util"
)

// CatalogService serves products. Search and Cache are optional.
type CatalogService struct {
	Repo   *repo.GormRepo
	Events events.Publisher
	Search search.Index
	Cache  cache.Products
}

// AllCategories is the storefront's "no filter" category value.
const AllCategories = "All"

func (s *CatalogService) ListProducts(ctx context.Context, category string, page, size int) (*transport.ProductPage, error) {
	category = strings.TrimSpace(category)
	if strings.EqualFold(category, AllCategories) {
		category = ""
	}
	page = util.ClampPage(page)
	offset, limit := util.Calculate(page, size)

	key := fmt.Sprintf("%s:%d:%d", category, page, limit)
	if s.Cache != nil {
		var cached transport.ProductPage
		if s.Cache.GetList(ctx, key, &cached) {
			return &cached, nil
		}
	}

	total, items, err := s.Repo.ListProducts(ctx, category, offset, limit)
	if err != nil {
		return nil, err
	}
	out := &transport.ProductPage{
		Data: make([]transport.ProductResponse, 0, len(items)),
		Meta: util.NewMeta(page, offset, limit, total),
	}
	for i := range items {
		out.Data = append(out.Data, transport.NewProductResponse(&items[i], false))
	}

	if s.Cache != nil {
		s.Cache.SetList(ctx, key, out)
	}
	return out, nil
}

func (s *CatalogService) GetProduct(ctx context.Context, id uuid.UUID) (*transport.ProductResponse, error) {
	if s.Cache != nil {
		var cached transport.ProductResponse
		if s.Cache.GetProduct(ctx, id, &cached) {
			return &cached, nil
		}
	}

	p, err := s.Repo.GetProduct(ctx, id, true)
	if err != nil {
		return nil, notFoundOr(err, "product")
	}
	out := transport.NewProductResponse(p, true)
	if s.Cache != nil {
		s.Cache.SetProduct(ctx, id, out)
	}
	return &out, nil
}

func (s *CatalogService) Categories(ctx context.Context) ([]string, error) {
	return s.Repo.Categories(ctx)
}

// SearchProducts prefers the search index and falls back to a LIKE scan
// when the index is absent or failing.
func (s *CatalogService) SearchProducts(ctx context.Context, q string, page, size int) (*transport.ProductPage, error) {
	q = strings.TrimSpace(q)
	if q == "" {
		return nil, fmt.Errorf("%w: query is required", ErrValidation)
	}
	page = util.ClampPage(page)
	offset, limit := util.Calculate(page, size)

	var (
		total int64
		items []models.Product
		err   error
	)
	if s.Search != nil {
		total, items, err = s.searchIndex(ctx, q, offset, limit)
		if err != nil {
			logging.FromContext(ctx).Warn("search_index_failed", "error", err)
		}
	}
	if s.Search == nil || err != nil {
		total, items, err = s.Repo.SearchProducts(ctx, q, offset, limit)
		if err != nil {
			return nil, err
		}
	}

	out := &transport.ProductPage{
		Data: make([]transport.ProductResponse, 0, len(items)),
		Meta: util.NewMeta(page, offset, limit, total),
	}
	for i := range items {
		out.Data = append(out.Data, transport.NewProductResponse(&items[i], false))
	}
	return out, nil
}

func (s *CatalogService) searchIndex(ctx context.Context, q string, offset, limit int) (int64, []models.Product, error) {
	total, ids, err := s.Search.Search(ctx, q, offset, limit)
	if err != nil {
		return 0, nil, err
	}
	byID, err := s.Repo.ProductsByIDs(ctx, ids)
	if err != nil {
		return 0, nil, err
	}
	items := make([]models.Product, 0, len(ids))
	for _, id := range ids {
		if p, ok := byID[id]; ok {
			items = append(items, p)
		}
	}
	return total, items, nil
}

func (s *CatalogService) CreateProduct(ctx context.Context, req transport.CreateProductRequest) (*transport.ProductResponse, error) {
	if req.Price == nil {
		return nil, fmt.Errorf("%w: price is required", ErrValidation)
	}
	if req.Price.IsNegative() {
		return nil, fmt.Errorf("%w: price cannot be negative", ErrValidation)
	}
	if req.Stock == nil || *req.Stock < 0 {
		return nil, fmt.Errorf("%w: stock must be a non-negative integer", ErrValidation)
	}
	images := req.Images
	if images == nil {
		images = []string{}
	}

	p := &models.Product{
		Title:       strings.TrimSpace(req.Title),
		Description: req.Description,
		Price:       req.Price.Round(2),
		Stock:       *req.Stock,
		Category:    strings.TrimSpace(req.Category),
		Images:      models.StringList(images),
		ModelURL:    emptyToNil(req.ModelURL),
	}
	if err := s.Repo.CreateProduct(ctx, p); err != nil {
		return nil, err
	}

	s.afterWrite(ctx, p, "product.created")
	out := transport.NewProductResponse(p, false)
	return &out, nil
}

// UpdateProduct writes only the supplied columns so concurrent stock
// reservations are never overwritten.
func (s *CatalogService) UpdateProduct(ctx context.Context, id uuid.UUID, req transport.UpdateProductRequest) (*transport.ProductResponse, error) {
	fields := map[string]any{}
	if req.Title != nil {
		fields["title"] = strings.TrimSpace(*req.Title)
	}
	if req.Description != nil {
		fields["description"] = *req.Description
	}
	if req.Price != nil {
		if req.Price.IsNegative() {
			return nil, fmt.Errorf("%w: price cannot be negative", ErrValidation)
		}
		fields["price"] = req.Price.Round(2)
	}
	if req.Stock != nil {
		if *req.Stock < 0 {
			return nil, fmt.Errorf("%w: stock must be a non-negative integer", ErrValidation)
		}
		fields["stock"] = *req.Stock
	}
	if req.Category != nil {
		fields["category"] = strings.TrimSpace(*req.Category)
	}
	if req.Images != nil {
		fields["images"] = models.StringList(*req.Images)
	}
	if req.ModelURL != nil {
		fields["model_url"] = emptyToNil(req.ModelURL)
	}

	if len(fields) > 0 {
		if err := s.Repo.UpdateProductFields(ctx, id, fields); err != nil {
			return nil, notFoundOr(err, "product")
		}
	}
	p, err := s.Repo.GetProduct(ctx, id, false)
	if err != nil {
		return nil, notFoundOr(err, "product")
	}
	if len(fields) > 0 {
		s.afterWrite(ctx, p, "product.updated")
	}
	out := transport.NewProductResponse(p, false)
	return &out, nil
}

func (s *CatalogService) UpdateStock(ctx context.Context, id uuid.UUID, stock int) (*transport.ProductResponse, error) {
	if stock < 0 {
		return nil, fmt.Errorf("%w: stock must be a non-negative integer", ErrValidation)
	}
	if err := s.Repo.UpdateStock(ctx, id, stock); err != nil {
		return nil, notFoundOr(err, "product")
	}
	p, err := s.Repo.GetProduct(ctx, id, false)
	if err != nil {
		return nil, notFoundOr(err, "product")
	}
	s.afterWrite(ctx, p, "product.stock_updated")
	out := transport.NewProductResponse(p, false)
	return &out, nil
}

func (s *CatalogService) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	if err := s.Repo.DeleteProduct(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: product not found", ErrNotFound)
		}
		return err
	}

	if s.Cache != nil {
		s.Cache.Invalidate(ctx, id)
	}
	if s.Search != nil {
		if err := s.Search.DeleteProduct(ctx, id); err != nil {
			logging.FromContext(ctx).Warn("search_delete_failed", "product_id", id, "error", err)
		}
	}
	publish(ctx, s.Events, events.TopicProducts, id.String(), "product.deleted", map[string]any{"product_id": id})
	return nil
}

// InvalidateProduct drops cached views after stock moves made elsewhere.
func (s *CatalogService) InvalidateProduct(ctx context.Context, id uuid.UUID) {
	if s != nil && s.Cache != nil {
		s.Cache.Invalidate(ctx, id)
	}
}

func (s *CatalogService) afterWrite(ctx context.Context, p *models.Product, eventType string) {
	if s.Cache != nil {
		s.Cache.Invalidate(ctx, p.ID)
	}
	if s.Search != nil {
		if err := s.Search.IndexProduct(ctx, p); err != nil {
			logging.FromContext(ctx).Warn("search_index_failed", "product_id", p.ID, "error", err)
		}
	}
	publish(ctx, s.Events, events.TopicProducts, p.ID.String(), eventType, map[string]any{
		"product_id": p.ID,
		"title":      p.Title,
		"price":      p.Price.StringFixed(2),
		"stock":      p.Stock,
		"category":   p.Category,
	})
}

// Reindex pushes every product into the search index.
func (s *CatalogService) Reindex(ctx context.Context) (int, error) {
	if s.Search == nil {
		return 0, fmt.Errorf("%w: search index", ErrNotConfigured)
	}
	const batch = 200
	n := 0
	for offset := 0; ; offset += batch {
		_, items, err := s.Repo.ListProducts(ctx, "", offset, batch)
		if err != nil {
			return n, err
		}
		for i := range items {
			if err := s.Search.IndexProduct(ctx, &items[i]); err != nil {
				return n, err
			}
			n++
		}
		if len(items) < batch {
			return n, nil
		}
	}
}

func emptyToNil(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}
