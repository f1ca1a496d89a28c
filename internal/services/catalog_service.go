package services

import (
	"database/sql"
	"errors"

	"shopforge/internal/domain"
	"shopforge/internal/repos"
)

const (
	DefaultPageSize  = 12
	FeaturedPageSize = 8
)

type CatalogService struct {
	Prods   *repos.ProductRepo
	Reviews *repos.ReviewRepo
}

func NewCatalogService(prods *repos.ProductRepo, reviews *repos.ReviewRepo) *CatalogService {
	return &CatalogService{Prods: prods, Reviews: reviews}
}

// ProductPage carries the 1-indexed pagination envelope.
type ProductPage struct {
	Items      []domain.Product `json:"items"`
	Total      int              `json:"total"`
	Page       int              `json:"page"`
	PageSize   int              `json:"pageSize"`
	TotalPages int              `json:"totalPages"`
}

func (s *CatalogService) List(f repos.ProductFilter, sort string, page, pageSize int) (ProductPage, error) {
	if page < 1 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	f.ActiveOnly = true

	total, err := s.Prods.Count(f)
	if err != nil {
		return ProductPage{}, err
	}
	items, err := s.Prods.List(f, sort, pageSize, (page-1)*pageSize)
	if err != nil {
		return ProductPage{}, err
	}
	pages := (total + pageSize - 1) / pageSize
	return ProductPage{Items: items, Total: total, Page: page, PageSize: pageSize, TotalPages: pages}, nil
}

func (s *CatalogService) Featured(page int) (ProductPage, error) {
	featured := true
	return s.List(repos.ProductFilter{Featured: &featured}, "newest", page, FeaturedPageSize)
}

func (s *CatalogService) Get(id string) (domain.Product, []domain.Review, error) {
	p, err := s.Prods.Get(id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Product{}, nil, &domain.NotFoundError{Resource: "product", ID: id}
		}
		return domain.Product{}, nil, err
	}
	reviews, err := s.Reviews.ListByProduct(id)
	if err != nil {
		return domain.Product{}, nil, err
	}
	return p, reviews, nil
}
