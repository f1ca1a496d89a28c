package domain

type Product struct {
	ID          string  `db:"id" json:"id"`
	Name        string  `db:"name" json:"name"`
	Description string  `db:"description" json:"description"`
	Brand       string  `db:"brand" json:"brand"`
	Category    string  `db:"category" json:"category"`
	Price       float64 `db:"price" json:"price"`
	Stock       int     `db:"stock" json:"stock"`
	Image       string  `db:"image" json:"image"`
	Featured    bool    `db:"featured" json:"featured"`
	Active      bool    `db:"active" json:"isActive"`
	Rating      float64 `db:"rating" json:"rating"`
	NumReviews  int     `db:"num_reviews" json:"numReviews"`
	CreatedAt   string  `db:"created_at" json:"createdAt"`
	UpdatedAt   string  `db:"updated_at" json:"updatedAt,omitempty"`
}

// Categories is the closed set accepted for products.
var Categories = []string{
	"Electronics", "Clothing", "Books", "Home", "Sports", "Toys", "Beauty", "Other",
}

func ValidCategory(s string) bool {
	for _, c := range Categories {
		if c == s {
			return true
		}
	}
	return false
}

type Review struct {
	ID        string `db:"id" json:"id"`
	ProductID string `db:"product_id" json:"productId"`
	UserID    string `db:"user_id" json:"userId"`
	UserName  string `db:"user_name" json:"userName"`
	Rating    int    `db:"rating" json:"rating"`
	Comment   string `db:"comment" json:"comment"`
	CreatedAt string `db:"created_at" json:"createdAt"`
}
