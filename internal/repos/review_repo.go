package repos

import (
	"github.com/jmoiron/sqlx"

	"shopforge/internal/domain"
)

type ReviewRepo struct{ db *sqlx.DB }

func NewReviewRepo(db *sqlx.DB) *ReviewRepo { return &ReviewRepo{db: db} }

func (r *ReviewRepo) HasReviewed(productID, userID string) (bool, error) {
	var n int
	err := r.db.Get(&n, `SELECT COUNT(*) FROM reviews WHERE product_id=? AND user_id=?`, productID, userID)
	return n > 0, err
}

// Add inserts the review and recomputes the product's derived rating in the
// same transaction, so rating always equals the mean of its reviews.
func (r *ReviewRepo) Add(rev domain.Review) error {
	tx, err := r.db.Beginx()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec(`
		INSERT INTO reviews(id,product_id,user_id,user_name,rating,comment,created_at)
		VALUES(?,?,?,?,?,?,CURRENT_TIMESTAMP)
	`, rev.ID, rev.ProductID, rev.UserID, rev.UserName, rev.Rating, rev.Comment); err != nil {
		return err
	}

	if _, err := tx.Exec(`
		UPDATE products SET
		  rating = (SELECT AVG(rating) FROM reviews WHERE product_id = ?),
		  num_reviews = (SELECT COUNT(*) FROM reviews WHERE product_id = ?),
		  updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`, rev.ProductID, rev.ProductID, rev.ProductID); err != nil {
		return err
	}

	return tx.Commit()
}

func (r *ReviewRepo) ListByProduct(productID string) ([]domain.Review, error) {
	out := []domain.Review{}
	err := r.db.Select(&out, `
		SELECT id, product_id, user_id, user_name, rating, comment, created_at
		FROM reviews WHERE product_id = ?
		ORDER BY datetime(created_at) DESC
	`, productID)
	return out, err
}
