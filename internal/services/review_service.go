package services

import (
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"shopforge/internal/domain"
	"shopforge/internal/repos"
)

type ReviewService struct {
	Reviews *repos.ReviewRepo
	Prods   *repos.ProductRepo
}

func NewReviewService(reviews *repos.ReviewRepo, prods *repos.ProductRepo) *ReviewService {
	return &ReviewService{Reviews: reviews, Prods: prods}
}

// Add records one review per user per product and recomputes the product's
// derived rating.
func (s *ReviewService) Add(user *domain.User, productID string, rating int, comment string) (domain.Review, error) {
	p, err := s.Prods.Get(productID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Review{}, &domain.NotFoundError{Resource: "product", ID: productID}
		}
		return domain.Review{}, err
	}
	if !p.Active {
		return domain.Review{}, &domain.ProductUnavailableError{ProductID: p.ID, Name: p.Name}
	}

	already, err := s.Reviews.HasReviewed(productID, user.ID)
	if err != nil {
		return domain.Review{}, err
	}
	if already {
		return domain.Review{}, &domain.ValidationError{Problems: []string{"you have already reviewed this product"}}
	}

	rev := domain.Review{
		ID:        uuid.NewString(),
		ProductID: productID,
		UserID:    user.ID,
		UserName:  user.Name,
		Rating:    rating,
		Comment:   comment,
	}
	if err := s.Reviews.Add(rev); err != nil {
		return domain.Review{}, err
	}
	return rev, nil
}
