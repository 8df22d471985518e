package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"ridebooking/internal/domain"
	internalRedis "ridebooking/internal/redis"
	"ridebooking/internal/repository"
)

const bcryptCost = 10

// Claims is the JWT payload carried by issued tokens.
type Claims struct {
	UserID string      `json:"user_id"`
	Role   domain.Role `json:"role"`
	jwt.RegisteredClaims
}

// AuthService handles sign-up, sign-in, sign-out and credential
// verification. Signed-out tokens are tracked in the revocation store until
// their own expiry.
type AuthService struct {
	userRepo    repository.UserRepository
	revocations internalRedis.RevocationStoreInterface
	secret      []byte
	tokenTTL    time.Duration
}

// NewAuthService creates a new AuthService.
func NewAuthService(
	userRepo repository.UserRepository,
	revocations internalRedis.RevocationStoreInterface,
	secret string,
	tokenTTL time.Duration,
) *AuthService {
	return &AuthService{
		userRepo:    userRepo,
		revocations: revocations,
		secret:      []byte(secret),
		tokenTTL:    tokenTTL,
	}
}

// SignUpRequest contains the parameters for registering a user.
type SignUpRequest struct {
	Name         string
	Email        string
	Password     string
	Phone        string
	Role         domain.Role
	LicensePlate *string
	VehicleModel *string
}

// SignUp registers a new user with a bcrypt-hashed password.
func (s *AuthService) SignUp(ctx context.Context, req SignUpRequest) (*domain.User, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, fmt.Errorf("%w: a valid email is required", ErrInvalidInput)
	}
	if len(req.Password) < 6 {
		return nil, fmt.Errorf("%w: password must be at least 6 characters", ErrInvalidInput)
	}
	if !domain.ValidRole(req.Role) {
		return nil, fmt.Errorf("%w: unknown role", ErrInvalidInput)
	}

	if _, err := s.userRepo.GetByEmail(ctx, email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcryptCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		ID:           uuid.New().String(),
		Name:         req.Name,
		Email:        email,
		Phone:        req.Phone,
		PasswordHash: string(hash),
		Role:         req.Role,
		LicensePlate: req.LicensePlate,
		VehicleModel: req.VehicleModel,
		CreatedAt:    time.Now(),
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// SignIn verifies the credentials and returns a signed token.
func (s *AuthService) SignIn(ctx context.Context, email, password string) (string, error) {
	user, err := s.userRepo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", ErrInvalidCredentials
		}
		return "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", ErrInvalidCredentials
	}

	now := time.Now()
	claims := Claims{
		UserID: user.ID,
		Role:   user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// SignOut revokes the token for the remainder of its lifetime.
func (s *AuthService) SignOut(ctx context.Context, token string) error {
	claims, err := s.parseToken(token)
	if err != nil {
		return err
	}

	ttl := time.Until(claims.ExpiresAt.Time)
	return s.revocations.Revoke(ctx, token, ttl)
}

// Verify resolves a bearer token into a Principal, rejecting expired,
// malformed and revoked tokens.
func (s *AuthService) Verify(ctx context.Context, token string) (Principal, error) {
	claims, err := s.parseToken(token)
	if err != nil {
		return Principal{}, err
	}

	revoked, err := s.revocations.IsRevoked(ctx, token)
	if err != nil {
		return Principal{}, err
	}
	if revoked {
		return Principal{}, ErrTokenRevoked
	}

	return Principal{UserID: claims.UserID, Role: claims.Role}, nil
}

func (s *AuthService) parseToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnauthenticated, err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("%w: invalid token", ErrUnauthenticated)
	}

	return claims, nil
}
