package user

import (
	"context"
	"fmt"
	"time"

	"roomly/models"
	"roomly/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const tokenTTL = 72 * time.Hour

// AuthTokenPrefix keys the Redis auth cache entries holding token hashes.
const AuthTokenPrefix = "authToken:"

// Register creates a new account and returns a signed token.
func (s *DefaultUserService) Register(username, email, password string) (*AuthResponse, error) {
	logger := utils.GetLogger()

	if existing, err := s.Repo.GetByEmail(email); err != nil {
		return nil, fmt.Errorf("failed to check email %s: %w", email, err)
	} else if existing != nil {
		return nil, fmt.Errorf("email %s is already registered", email)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	usr := &models.User{
		ID:           uuid.New().String(),
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
	}
	if err := s.Repo.Create(usr); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	logger.Info("user registered", zap.String("userID", usr.ID), zap.String("email", email))

	return s.issueToken(usr)
}

// Authenticate verifies credentials and returns a signed token.
func (s *DefaultUserService) Authenticate(email, password string) (*AuthResponse, error) {
	usr, err := s.Repo.GetByEmail(email)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch user with email %s: %w", email, err)
	}
	if usr == nil {
		return nil, fmt.Errorf("invalid credentials")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(usr.PasswordHash), []byte(password)); err != nil {
		return nil, fmt.Errorf("invalid credentials")
	}
	return s.issueToken(usr)
}

// issueToken signs a JWT and caches its hash so the middleware can check
// revocation without a database round trip.
func (s *DefaultUserService) issueToken(usr *models.User) (*AuthResponse, error) {
	token, err := utils.GenerateToken(usr.ID, usr.Email, tokenTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	authCache := utils.GetAuthCacheClient()
	ctx := context.Background()
	if err := authCache.Set(ctx, AuthTokenPrefix+usr.ID, utils.HashToken(token), tokenTTL).Err(); err != nil {
		utils.GetLogger().Warn("failed to cache auth token", zap.String("userID", usr.ID), zap.Error(err))
	}

	return &AuthResponse{
		ID:       usr.ID,
		Token:    token,
		Username: usr.Username,
		Email:    usr.Email,
	}, nil
}

// GetUserByID fetches an account by ID.
func (s *DefaultUserService) GetUserByID(userID string) (*models.User, error) {
	usr, err := s.Repo.GetByID(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch user %s: %w", userID, err)
	}
	if usr == nil {
		return nil, fmt.Errorf("user with id %s not found", userID)
	}
	return usr, nil
}

// RevokeAuthToken drops the cached token hash, invalidating outstanding
// tokens for the user.
func (s *DefaultUserService) RevokeAuthToken(userID string) error {
	authCache := utils.GetAuthCacheClient()
	if err := authCache.Del(context.Background(), AuthTokenPrefix+userID).Err(); err != nil {
		return fmt.Errorf("failed to revoke token for user %s: %w", userID, err)
	}
	return nil
}
