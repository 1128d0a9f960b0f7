package repository

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/bkaya/campus-market/internal/models"
)

// ErrNotFound is returned when a query matches no row. For ownership-guarded
// mutations this also covers rows owned by someone else: the predicate
// matches id and owner together, so the two cases are indistinguishable here.
var ErrNotFound = errors.New("not found")

// Repository provides database operations
type Repository struct {
	db *sql.DB
}

// NewRepository initializes a new repository
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// Ping reports whether the database is reachable
func (r *Repository) Ping() error {
	return r.db.Ping()
}

// CreateUser creates a new user in the database
func (r *Repository) CreateUser(user *models.User) error {
	query := `
		INSERT INTO users (username, email, password_hash, created_at)
		VALUES ($1, $2, $3, CURRENT_TIMESTAMP)
		RETURNING id, created_at`
	err := r.db.QueryRow(query, user.Username, user.Email, user.PasswordHash).
		Scan(&user.ID, &user.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// FindUserByEmail retrieves a user by email
func (r *Repository) FindUserByEmail(email string) (*models.User, error) {
	user := &models.User{}
	query := `
		SELECT id, username, email, password_hash, created_at
		FROM users
		WHERE email = $1`
	err := r.db.QueryRow(query, email).
		Scan(&user.ID, &user.Username, &user.Email, &user.PasswordHash, &user.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return user, nil
}

// CreateProduct inserts a new listing owned by product.UserID
func (r *Repository) CreateProduct(product *models.Product) error {
	query := `
		INSERT INTO products (title, price, description, image_url, user_id, category_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, CURRENT_TIMESTAMP)
		RETURNING id, created_at`
	err := r.db.QueryRow(query,
		product.Title, product.Price, product.Description, product.ImageURL,
		product.UserID, product.CategoryID).
		Scan(&product.ID, &product.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}
	return nil
}

// ListProducts returns every listing newest-first, enriched with the owner's
// username and the category name
func (r *Repository) ListProducts() ([]models.Product, error) {
	query := `
		SELECT products.id, products.title, products.price, products.description,
		       products.image_url, products.user_id, products.category_id,
		       products.created_at, users.username, categories.name AS category
		FROM products
		JOIN users ON products.user_id = users.id
		JOIN categories ON products.category_id = categories.id
		ORDER BY products.id DESC`
	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	defer rows.Close()

	products := []models.Product{}
	for rows.Next() {
		var p models.Product
		var description, imageURL sql.NullString
		if err := rows.Scan(&p.ID, &p.Title, &p.Price, &description, &imageURL,
			&p.UserID, &p.CategoryID, &p.CreatedAt, &p.Username, &p.Category); err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		p.Description = description.String
		p.ImageURL = imageURL.String
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	return products, nil
}

// GetProductByID returns one listing enriched with the owner's username and
// email and the category name
func (r *Repository) GetProductByID(id int64) (*models.Product, error) {
	p := &models.Product{}
	var description, imageURL sql.NullString
	query := `
		SELECT products.id, products.title, products.price, products.description,
		       products.image_url, products.user_id, products.category_id,
		       products.created_at, users.username, users.email, categories.name AS category
		FROM products
		JOIN users ON products.user_id = users.id
		JOIN categories ON products.category_id = categories.id
		WHERE products.id = $1`
	err := r.db.QueryRow(query, id).
		Scan(&p.ID, &p.Title, &p.Price, &description, &imageURL,
			&p.UserID, &p.CategoryID, &p.CreatedAt, &p.Username, &p.Email, &p.Category)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get product: %w", err)
	}
	p.Description = description.String
	p.ImageURL = imageURL.String
	return p, nil
}

// UpdateProduct rewrites a listing's fields. The predicate matches both the
// listing id and the owner, so a foreign or missing listing yields
// ErrNotFound without a separate read.
func (r *Repository) UpdateProduct(id, userID int64, product *models.Product) (*models.Product, error) {
	updated := &models.Product{}
	var description, imageURL sql.NullString
	query := `
		UPDATE products
		SET title = $1, price = $2, description = $3, image_url = $4, category_id = $5
		WHERE id = $6 AND user_id = $7
		RETURNING id, title, price, description, image_url, user_id, category_id, created_at`
	err := r.db.QueryRow(query,
		product.Title, product.Price, product.Description, product.ImageURL,
		product.CategoryID, id, userID).
		Scan(&updated.ID, &updated.Title, &updated.Price, &description, &imageURL,
			&updated.UserID, &updated.CategoryID, &updated.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update product: %w", err)
	}
	updated.Description = description.String
	updated.ImageURL = imageURL.String
	return updated, nil
}

// DeleteProduct removes a listing. Same owner-in-predicate contract as
// UpdateProduct.
func (r *Repository) DeleteProduct(id, userID int64) (*models.Product, error) {
	deleted := &models.Product{}
	var description, imageURL sql.NullString
	query := `
		DELETE FROM products
		WHERE id = $1 AND user_id = $2
		RETURNING id, title, price, description, image_url, user_id, category_id, created_at`
	err := r.db.QueryRow(query, id, userID).
		Scan(&deleted.ID, &deleted.Title, &deleted.Price, &description, &imageURL,
			&deleted.UserID, &deleted.CategoryID, &deleted.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to delete product: %w", err)
	}
	deleted.Description = description.String
	deleted.ImageURL = imageURL.String
	return deleted, nil
}

// SellerSummary aggregates a seller's listings for the daily digest.
type SellerSummary struct {
	UserID   int64
	Username string
	Email    string
	Listings int
	Total    float64
}

// SellerSummaries returns per-seller listing counts and total asking price
// for sellers with at least one listing
func (r *Repository) SellerSummaries() ([]SellerSummary, error) {
	query := `
		SELECT users.id, users.username, users.email,
		       COUNT(products.id), COALESCE(SUM(products.price), 0)
		FROM users
		JOIN products ON products.user_id = users.id
		GROUP BY users.id, users.username, users.email
		ORDER BY users.id`
	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to load seller summaries: %w", err)
	}
	defer rows.Close()

	var summaries []SellerSummary
	for rows.Next() {
		var s SellerSummary
		if err := rows.Scan(&s.UserID, &s.Username, &s.Email, &s.Listings, &s.Total); err != nil {
			return nil, fmt.Errorf("failed to scan seller summary: %w", err)
		}
		summaries = append(summaries, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to load seller summaries: %w", err)
	}
	return summaries, nil
}
