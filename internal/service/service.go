package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/bkaya/campus-market/internal/auth"
	"github.com/bkaya/campus-market/internal/config"
	"github.com/bkaya/campus-market/internal/models"
	"github.com/bkaya/campus-market/internal/repository"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

// passwordHashCost is the fixed bcrypt cost for stored credentials.
const passwordHashCost = 10

// minPasswordLength is the registration password floor.
const minPasswordLength = 6

// defaultCategoryID is assigned when a listing omits its category.
const defaultCategoryID = 1

// Service handles business logic
type Service struct {
	repo   *repository.Repository
	log    *logrus.Logger
	config *config.Config
}

// NewService initializes a new service
func NewService(repo *repository.Repository, log *logrus.Logger, cfg *config.Config) *Service {
	return &Service{repo: repo, log: log, config: cfg}
}

// Ping reports whether the backing store is reachable.
func (s *Service) Ping() error {
	return s.repo.Ping()
}

// Register validates the input, checks the email is unused and creates the
// user with a hashed password. The email check and the insert are separate
// statements; concurrent identical registrations can race past the check and
// fall through to the unique constraint on the table.
func (s *Service) Register(username, email, password string) (*models.User, error) {
	if username == "" || email == "" || password == "" {
		return nil, fmt.Errorf("%w: username, email and password are required", ErrValidation)
	}
	if !strings.Contains(email, "@") {
		return nil, fmt.Errorf("%w: invalid email format", ErrValidation)
	}
	if len(password) < minPasswordLength {
		return nil, fmt.Errorf("%w: password must be at least %d characters", ErrValidation, minPasswordLength)
	}

	_, err := s.repo.FindUserByEmail(email)
	if err == nil {
		return nil, ErrEmailTaken
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), passwordHashCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hashedPassword),
	}
	if err := s.repo.CreateUser(user); err != nil {
		return nil, err
	}

	s.log.Infof("User registered: %s", user.Email)
	return user, nil
}

// Login authenticates a user and returns a signed token plus the user.
// Unknown email and wrong password return the same error.
func (s *Service) Login(email, password string) (string, *models.User, error) {
	if email == "" || password == "" {
		return "", nil, fmt.Errorf("%w: email and password are required", ErrValidation)
	}

	user, err := s.repo.FindUserByEmail(email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", nil, ErrInvalidCredentials
	}

	token, err := auth.GenerateToken(user.ID, user.Email, []byte(s.config.JWTSecret))
	if err != nil {
		return "", nil, err
	}

	s.log.Infof("User logged in: %s", user.Email)
	return token, user, nil
}

// ProductInput carries the client-supplied listing fields. Price is a
// pointer so a missing price and an explicit 0 (free listing) are distinct.
type ProductInput struct {
	Title       string
	Price       *float64
	Description string
	ImageURL    string
	CategoryID  int64
}

// CreateProduct creates a listing owned by the acting identity.
func (s *Service) CreateProduct(ident auth.Identity, in ProductInput) (*models.Product, error) {
	if in.Title == "" || in.Price == nil {
		return nil, fmt.Errorf("%w: title and price are required", ErrValidation)
	}

	categoryID := in.CategoryID
	if categoryID == 0 {
		categoryID = defaultCategoryID
	}

	product := &models.Product{
		Title:       in.Title,
		Price:       *in.Price,
		Description: in.Description,
		ImageURL:    in.ImageURL,
		UserID:      ident.ID,
		CategoryID:  categoryID,
	}
	if err := s.repo.CreateProduct(product); err != nil {
		return nil, err
	}

	s.log.Infof("Product %d created by user %d", product.ID, ident.ID)
	return product, nil
}

// ListProducts returns the full catalog, enriched and newest-first.
func (s *Service) ListProducts() ([]models.Product, error) {
	return s.repo.ListProducts()
}

// GetProduct returns one enriched listing.
func (s *Service) GetProduct(id int64) (*models.Product, error) {
	product, err := s.repo.GetProductByID(id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrNotFound
	}
	return product, err
}

// UpdateProduct rewrites a listing the acting identity owns. Ownership is
// checked inside the update statement itself; zero matched rows means the
// listing is missing or foreign, reported as ErrNotOwner either way.
func (s *Service) UpdateProduct(ident auth.Identity, id int64, in ProductInput) (*models.Product, error) {
	categoryID := in.CategoryID
	if categoryID == 0 {
		categoryID = defaultCategoryID
	}
	var price float64
	if in.Price != nil {
		price = *in.Price
	}

	product := &models.Product{
		Title:       in.Title,
		Price:       price,
		Description: in.Description,
		ImageURL:    in.ImageURL,
		CategoryID:  categoryID,
	}
	updated, err := s.repo.UpdateProduct(id, ident.ID, product)
	if errors.Is(err, repository.ErrNotFound) {
		s.log.Warnf("Update of product %d denied for user %d", id, ident.ID)
		return nil, ErrNotOwner
	}
	if err != nil {
		return nil, err
	}

	s.log.Infof("Product %d updated by user %d", id, ident.ID)
	return updated, nil
}

// DeleteProduct removes a listing the acting identity owns, with the same
// owner-in-predicate contract as UpdateProduct.
func (s *Service) DeleteProduct(ident auth.Identity, id int64) (*models.Product, error) {
	deleted, err := s.repo.DeleteProduct(id, ident.ID)
	if errors.Is(err, repository.ErrNotFound) {
		s.log.Warnf("Delete of product %d denied for user %d", id, ident.ID)
		return nil, ErrNotOwner
	}
	if err != nil {
		return nil, err
	}

	s.log.Infof("Product %d deleted by user %d", id, ident.ID)
	return deleted, nil
}
