package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"golang.org/x/crypto/bcrypt"

	"poputkaBack/internal/models"
	"poputkaBack/internal/repositories"
	"poputkaBack/utils"
)

func newUserService(t *testing.T) (*UserService, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	tokenManager, err := utils.NewManager("test-secret")
	if err != nil {
		t.Fatalf("token manager: %v", err)
	}
	return &UserService{
		UserRepo:     &repositories.UserRepository{DB: db},
		TokenManager: tokenManager,
		JWTSecret:    "test-secret",
	}, mock
}

func userByEmailRow(id int, email, passwordHash string) *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "email", "name", "phone", "password", "role", "rating", "is_verified", "avatar_path", "created_at",
	}).AddRow(id, email, "Test User", "+77001234567", passwordHash, "user", 0.0, false, nil, time.Now())
}

func TestSignUpDuplicateEmail(t *testing.T) {
	svc, mock := newUserService(t)

	mock.ExpectQuery("FROM users WHERE email").
		WithArgs("taken@example.com").
		WillReturnRows(userByEmailRow(1, "taken@example.com", "hash"))

	_, err := svc.SignUp(context.Background(), models.SignUpRequest{
		Email:    "taken@example.com",
		Name:     "Someone",
		Password: "password123",
	})
	if !errors.Is(err, models.ErrDuplicateEmail) {
		t.Fatalf("err = %v; want ErrDuplicateEmail", err)
	}
}

func TestSignInUnknownEmail(t *testing.T) {
	svc, mock := newUserService(t)

	mock.ExpectQuery("FROM users WHERE email").
		WithArgs("nobody@example.com").
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "email", "name", "phone", "password", "role", "rating", "is_verified", "avatar_path", "created_at",
		}))

	_, err := svc.SignIn(context.Background(), models.SignInRequest{
		Email:    "nobody@example.com",
		Password: "password123",
	})
	if !errors.Is(err, models.ErrInvalidCredentials) {
		t.Fatalf("err = %v; want ErrInvalidCredentials", err)
	}
}

func TestSignInWrongPassword(t *testing.T) {
	svc, mock := newUserService(t)

	hash, err := bcrypt.GenerateFromPassword([]byte("correct-password"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("bcrypt: %v", err)
	}
	mock.ExpectQuery("FROM users WHERE email").
		WithArgs("user@example.com").
		WillReturnRows(userByEmailRow(1, "user@example.com", string(hash)))

	_, err = svc.SignIn(context.Background(), models.SignInRequest{
		Email:    "user@example.com",
		Password: "wrong-password",
	})
	if !errors.Is(err, models.ErrInvalidCredentials) {
		t.Fatalf("err = %v; want ErrInvalidCredentials", err)
	}
}

func TestSignInSuccess(t *testing.T) {
	svc, mock := newUserService(t)

	hash, err := bcrypt.GenerateFromPassword([]byte("correct-password"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("bcrypt: %v", err)
	}
	mock.ExpectQuery("FROM users WHERE email").
		WithArgs("user@example.com").
		WillReturnRows(userByEmailRow(1, "user@example.com", string(hash)))
	mock.ExpectExec("INSERT INTO sessions").
		WithArgs(1, "user", sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))

	resp, err := svc.SignIn(context.Background(), models.SignInRequest{
		Email:    "user@example.com",
		Password: "correct-password",
	})
	if err != nil {
		t.Fatalf("SignIn: %v", err)
	}
	if resp.AccessToken == "" || resp.RefreshToken == "" {
		t.Error("tokens should be issued")
	}
	if resp.User.Password != "" {
		t.Error("password hash must not leave the service")
	}
}
