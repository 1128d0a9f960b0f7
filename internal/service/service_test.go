package service

import (
	"database/sql"
	"io"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/bkaya/campus-market/internal/auth"
	"github.com/bkaya/campus-market/internal/config"
	"github.com/bkaya/campus-market/internal/repository"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newServiceWithMock(t *testing.T) (*Service, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	logger := logrus.New()
	logger.SetOutput(io.Discard)
	cfg := &config.Config{JWTSecret: "test-secret"}
	return NewService(repository.NewRepository(db), logger, cfg), mock, db
}

func hashOf(t *testing.T, password string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(hash)
}

func TestRegister_Validation(t *testing.T) {
	svc, _, db := newServiceWithMock(t)
	defer db.Close()

	cases := []struct {
		name     string
		username string
		email    string
		password string
	}{
		{"missing username", "", "alice@x.com", "secret1"},
		{"missing email", "alice", "", "secret1"},
		{"missing password", "alice", "alice@x.com", ""},
		{"email without at sign", "alice", "alice.x.com", "secret1"},
		{"short password", "alice", "alice@x.com", "12345"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Register(tc.username, tc.email, tc.password)
			assert.ErrorIs(t, err, ErrValidation)
		})
	}
}

func TestRegister_EmailTaken(t *testing.T) {
	svc, mock, db := newServiceWithMock(t)
	defer db.Close()

	rows := sqlmock.NewRows([]string{"id", "username", "email", "password_hash", "created_at"}).
		AddRow(int64(1), "alice", "alice@x.com", "hash", time.Now())
	mock.ExpectQuery("SELECT id, username, email, password_hash, created_at").
		WithArgs("alice@x.com").
		WillReturnRows(rows)

	_, err := svc.Register("alice2", "alice@x.com", "secret1")
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestRegister_Success(t *testing.T) {
	svc, mock, db := newServiceWithMock(t)
	defer db.Close()

	mock.ExpectQuery("SELECT id, username, email, password_hash, created_at").
		WithArgs("alice@x.com").
		WillReturnError(sql.ErrNoRows)
	mock.ExpectQuery("INSERT INTO users").
		WithArgs("alice", "alice@x.com", sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(int64(1), time.Now()))

	user, err := svc.Register("alice", "alice@x.com", "secret1")
	require.NoError(t, err)
	assert.Equal(t, int64(1), user.ID)
	// stored hash must verify against the original password and never equal it
	assert.NotEqual(t, "secret1", user.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("secret1")))
}

func TestLogin_UnknownEmailAndWrongPasswordAreIdentical(t *testing.T) {
	svc, mock, db := newServiceWithMock(t)
	defer db.Close()

	mock.ExpectQuery("SELECT id, username, email, password_hash, created_at").
		WithArgs("ghost@x.com").
		WillReturnError(sql.ErrNoRows)
	_, _, errUnknown := svc.Login("ghost@x.com", "whatever")

	rows := sqlmock.NewRows([]string{"id", "username", "email", "password_hash", "created_at"}).
		AddRow(int64(1), "alice", "alice@x.com", hashOf(t, "secret1"), time.Now())
	mock.ExpectQuery("SELECT id, username, email, password_hash, created_at").
		WithArgs("alice@x.com").
		WillReturnRows(rows)
	_, _, errWrongPassword := svc.Login("alice@x.com", "wrong")

	assert.ErrorIs(t, errUnknown, ErrInvalidCredentials)
	assert.ErrorIs(t, errWrongPassword, ErrInvalidCredentials)
	assert.Equal(t, errUnknown.Error(), errWrongPassword.Error())
}

func TestLogin_Success(t *testing.T) {
	svc, mock, db := newServiceWithMock(t)
	defer db.Close()

	rows := sqlmock.NewRows([]string{"id", "username", "email", "password_hash", "created_at"}).
		AddRow(int64(1), "alice", "alice@x.com", hashOf(t, "secret1"), time.Now())
	mock.ExpectQuery("SELECT id, username, email, password_hash, created_at").
		WithArgs("alice@x.com").
		WillReturnRows(rows)

	token, user, err := svc.Login("alice@x.com", "secret1")
	require.NoError(t, err)
	assert.Equal(t, "alice", user.Username)

	ident, err := auth.ParseToken(token, []byte("test-secret"))
	require.NoError(t, err)
	assert.Equal(t, int64(1), ident.ID)
	assert.Equal(t, "alice@x.com", ident.Email)
}

func TestCreateProduct_Validation(t *testing.T) {
	svc, _, db := newServiceWithMock(t)
	defer db.Close()

	ident := auth.Identity{ID: 7, Email: "alice@x.com"}

	_, err := svc.CreateProduct(ident, ProductInput{Price: floatPtr(10)})
	assert.ErrorIs(t, err, ErrValidation, "missing title")

	_, err = svc.CreateProduct(ident, ProductInput{Title: "Book"})
	assert.ErrorIs(t, err, ErrValidation, "missing price")
}

func TestCreateProduct_ZeroPriceIsDonation(t *testing.T) {
	svc, mock, db := newServiceWithMock(t)
	defer db.Close()

	mock.ExpectQuery("INSERT INTO products").
		WithArgs("Book", 0.0, "", "", int64(7), int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(int64(3), time.Now()))

	product, err := svc.CreateProduct(auth.Identity{ID: 7}, ProductInput{Title: "Book", Price: floatPtr(0)})
	require.NoError(t, err)
	assert.Equal(t, 0.0, product.Price)
	assert.Equal(t, int64(7), product.UserID)
	assert.Equal(t, int64(1), product.CategoryID, "category defaults to 1")
}

func TestUpdateProduct_NotOwner(t *testing.T) {
	svc, mock, db := newServiceWithMock(t)
	defer db.Close()

	mock.ExpectQuery("UPDATE products").
		WithArgs("Book", 5.0, "", "", int64(1), int64(3), int64(8)).
		WillReturnError(sql.ErrNoRows)

	_, err := svc.UpdateProduct(auth.Identity{ID: 8}, 3, ProductInput{Title: "Book", Price: floatPtr(5)})
	assert.ErrorIs(t, err, ErrNotOwner)
}

func TestDeleteProduct_NotOwner(t *testing.T) {
	svc, mock, db := newServiceWithMock(t)
	defer db.Close()

	mock.ExpectQuery("DELETE FROM products").
		WithArgs(int64(3), int64(8)).
		WillReturnError(sql.ErrNoRows)

	_, err := svc.DeleteProduct(auth.Identity{ID: 8}, 3)
	assert.ErrorIs(t, err, ErrNotOwner)
}

func TestGetProduct_NotFound(t *testing.T) {
	svc, mock, db := newServiceWithMock(t)
	defer db.Close()

	mock.ExpectQuery("SELECT products.id, products.title").
		WithArgs(int64(99)).
		WillReturnError(sql.ErrNoRows)

	_, err := svc.GetProduct(99)
	assert.ErrorIs(t, err, ErrNotFound)
}

func floatPtr(f float64) *float64 { return &f }
