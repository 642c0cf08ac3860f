package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"

	"github.com/saran8796/survey-application/internal/model"
	"github.com/saran8796/survey-application/internal/repository"
)

// DefaultTokenTTL matches the long-lived session tokens handed to browser clients
const DefaultTokenTTL = 100 * time.Hour

// AuthService registers users and issues/validates their tokens
type AuthService struct {
	users     repository.UserRepo
	jwtSecret []byte
	tokenTTL  time.Duration
	now       func() time.Time
}

// NewAuthService creates a new auth service
func NewAuthService(users repository.UserRepo, secret string, ttl time.Duration) *AuthService {
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	return &AuthService{
		users:     users,
		jwtSecret: []byte(secret),
		tokenTTL:  ttl,
		now:       time.Now,
	}
}

// Register creates an account and returns a token for it
func (s *AuthService) Register(ctx context.Context, req model.RegisterRequest) (*model.TokenResponse, error) {
	username := strings.TrimSpace(req.Username)
	email := strings.TrimSpace(req.Email)
	if username == "" || email == "" || req.Password == "" {
		return nil, &ValidationError{Invalid: []string{"username, email and password are required"}}
	}

	existing, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrDuplicateEmail
	}
	existing, err = s.users.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrDuplicateUsername
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Username:  username,
		Email:     email,
		Password:  string(hash),
		FullName:  strings.TrimSpace(req.FullName),
		CreatedAt: s.now(),
	}
	if err := s.users.Create(ctx, user); err != nil {
		switch {
		case errors.Is(err, repository.ErrEmailTaken):
			return nil, ErrDuplicateEmail
		case errors.Is(err, repository.ErrUsernameTaken):
			return nil, ErrDuplicateUsername
		}
		return nil, err
	}

	return s.issue(user.ID)
}

// Login accepts either the email or the username together with the password
func (s *AuthService) Login(ctx context.Context, req model.LoginRequest) (*model.TokenResponse, error) {
	user, err := s.users.GetByEmailOrUsername(ctx, strings.TrimSpace(req.EmailOrUsername))
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return s.issue(user.ID)
}

// VerifyToken validates a token and returns the user id it carries
func (s *AuthService) VerifyToken(tokenString string) (primitive.ObjectID, error) {
	if tokenString == "" {
		return primitive.NilObjectID, ErrUnauthorized
	}

	token, err := jwt.ParseWithClaims(tokenString, &model.UserClaims{}, func(token *jwt.Token) (interface{}, error) {
		return s.jwtSecret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(s.now))
	if err != nil {
		return primitive.NilObjectID, ErrUnauthorized
	}

	claims, ok := token.Claims.(*model.UserClaims)
	if !ok || !token.Valid {
		return primitive.NilObjectID, ErrUnauthorized
	}

	userID, err := primitive.ObjectIDFromHex(claims.UserID)
	if err != nil {
		return primitive.NilObjectID, ErrUnauthorized
	}
	return userID, nil
}

// CurrentUser loads the token holder's account
func (s *AuthService) CurrentUser(ctx context.Context, userID primitive.ObjectID) (*model.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrNotFound
	}
	return user, nil
}

func (s *AuthService) issue(userID primitive.ObjectID) (*model.TokenResponse, error) {
	now := s.now()
	claims := &model.UserClaims{
		UserID: userID.Hex(),
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return nil, err
	}
	return &model.TokenResponse{Token: tokenString}, nil
}
