package services

import (
	"context"
	"fmt"
	"time"

	"github.com/dgrijalva/jwt-go"
	"golang.org/x/crypto/bcrypt"

	"poputkaBack/internal/models"
	"poputkaBack/internal/repositories"
	"poputkaBack/utils"
)

const (
	accessTokenTTL  = 15 * time.Minute
	refreshTokenTTL = 30 * 24 * time.Hour
)

type UserService struct {
	UserRepo     *repositories.UserRepository
	TokenManager *utils.Manager
	JWTSecret    string
}

func (s *UserService) SignUp(ctx context.Context, req models.SignUpRequest) (models.AuthResponse, error) {
	existing, err := s.UserRepo.GetUserByEmail(ctx, req.Email)
	if err != nil {
		return models.AuthResponse{}, err
	}
	if existing.ID != 0 {
		return models.AuthResponse{}, models.ErrDuplicateEmail
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), 12)
	if err != nil {
		return models.AuthResponse{}, err
	}

	user := models.User{
		Email:    req.Email,
		Name:     req.Name,
		Phone:    req.Phone,
		Password: string(hashed),
		Role:     "user",
	}
	id, err := s.UserRepo.CreateUser(ctx, user)
	if err != nil {
		return models.AuthResponse{}, err
	}

	created, err := s.UserRepo.GetUserByID(ctx, id)
	if err != nil {
		return models.AuthResponse{}, err
	}
	return s.issueTokens(ctx, created)
}

func (s *UserService) SignIn(ctx context.Context, req models.SignInRequest) (models.AuthResponse, error) {
	user, err := s.UserRepo.GetUserByEmail(ctx, req.Email)
	if err != nil {
		return models.AuthResponse{}, err
	}
	if user.ID == 0 {
		return models.AuthResponse{}, models.ErrInvalidCredentials
	}

	err = bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password))
	if err != nil {
		return models.AuthResponse{}, models.ErrInvalidCredentials
	}

	user.Password = ""
	return s.issueTokens(ctx, user)
}

func (s *UserService) GetUserByID(ctx context.Context, id int) (models.User, error) {
	user, err := s.UserRepo.GetUserByID(ctx, id)
	if err != nil {
		return models.User{}, err
	}
	user.Password = ""
	return user, nil
}

// UploadAvatar stores the image in object storage and saves the public URL
// on the user.
func (s *UserService) UploadAvatar(ctx context.Context, userID int, file []byte) (string, error) {
	fileName := fmt.Sprintf("user_%d_%d.jpg", userID, time.Now().Unix())
	url, err := utils.UploadFileToS3(file, fileName, "avatars")
	if err != nil {
		return "", err
	}
	if err = s.UserRepo.UpdateAvatar(ctx, userID, url); err != nil {
		return "", err
	}
	return url, nil
}

func (s *UserService) RegisterFCMToken(ctx context.Context, userID int, token string) error {
	return s.UserRepo.UpdateFCMToken(ctx, userID, token)
}

func (s *UserService) issueTokens(ctx context.Context, user models.User) (models.AuthResponse, error) {
	claims := models.Claims{
		UserID: uint(user.ID),
		Role:   user.Role,
		StandardClaims: jwt.StandardClaims{
			ExpiresAt: time.Now().Add(accessTokenTTL).Unix(),
		},
	}
	accessToken, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.JWTSecret))
	if err != nil {
		return models.AuthResponse{}, err
	}

	refreshToken, err := s.TokenManager.NewRefreshToken()
	if err != nil {
		return models.AuthResponse{}, err
	}

	session := models.Session{
		UserID:       user.ID,
		Role:         user.Role,
		RefreshToken: refreshToken,
		ExpiresAt:    time.Now().Add(refreshTokenTTL),
	}
	if err = s.UserRepo.CreateSession(ctx, session); err != nil {
		return models.AuthResponse{}, err
	}

	user.Password = ""
	return models.AuthResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User:         user,
	}, nil
}
