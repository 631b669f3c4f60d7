// Package identity implements authentication and staff account management.
package identity

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/librestock/backend/internal/domain/identity"
	"github.com/librestock/backend/internal/domain/shared"
	"github.com/librestock/backend/internal/infrastructure/auth"
)

// TokenService issues and validates token pairs. Implemented by the JWT
// service.
type TokenService interface {
	GenerateTokenPair(input auth.GenerateTokenInput) (*auth.TokenPair, error)
	ValidateRefreshToken(tokenString string) (*auth.Claims, error)
	GetAccessTokenExpiration() time.Duration
}

// AuthService handles login, token refresh and logout
type AuthService struct {
	userRepo  identity.UserRepository
	tokens    TokenService
	blacklist auth.TokenBlacklist
}

// NewAuthService creates a new AuthService
func NewAuthService(userRepo identity.UserRepository, tokens TokenService, blacklist auth.TokenBlacklist) *AuthService {
	if blacklist == nil {
		blacklist = auth.NewInMemoryTokenBlacklist()
	}
	return &AuthService{
		userRepo:  userRepo,
		tokens:    tokens,
		blacklist: blacklist,
	}
}

// Login authenticates a user by email and password and issues a token pair.
// Wrong email and wrong password are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, shared.NewDomainError("INVALID_CREDENTIALS", "Invalid email or password")
	}
	if !user.CheckPassword(req.Password) {
		return nil, shared.NewDomainError("INVALID_CREDENTIALS", "Invalid email or password")
	}
	if !user.IsActive {
		return nil, shared.NewDomainError("ACCOUNT_DISABLED", "Account has been disabled")
	}

	pair, err := s.tokens.GenerateTokenPair(auth.GenerateTokenInput{
		UserID: user.ID,
		Email:  user.Email,
		Role:   string(user.Role),
	})
	if err != nil {
		return nil, err
	}

	return &LoginResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		TokenType:    pair.TokenType,
		ExpiresIn:    int64(s.tokens.GetAccessTokenExpiration().Seconds()),
		User:         ToUserResponse(user),
	}, nil
}

// Refresh exchanges a valid refresh token for a new pair. The used refresh
// token is revoked so each one works once.
func (s *AuthService) Refresh(ctx context.Context, req RefreshRequest) (*RefreshResponse, error) {
	claims, err := s.tokens.ValidateRefreshToken(req.RefreshToken)
	if err != nil {
		return nil, shared.NewDomainError("INVALID_TOKEN", "Refresh token is invalid or expired")
	}

	revoked, err := s.blacklist.IsRevoked(ctx, claims.ID)
	if err != nil {
		return nil, err
	}
	if !revoked && claims.IssuedAt != nil {
		revoked, err = s.blacklist.IsRevokedForUser(ctx, claims.UserID, claims.IssuedAt.Time)
		if err != nil {
			return nil, err
		}
	}
	if revoked {
		return nil, shared.NewDomainError("INVALID_TOKEN", "Refresh token has been revoked")
	}

	userID, err := claims.GetUserUUID()
	if err != nil {
		return nil, shared.NewDomainError("INVALID_TOKEN", "Refresh token is invalid or expired")
	}
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, shared.NewDomainError("INVALID_TOKEN", "Refresh token is invalid or expired")
	}
	if !user.IsActive {
		return nil, shared.NewDomainError("ACCOUNT_DISABLED", "Account has been disabled")
	}

	pair, err := s.tokens.GenerateTokenPair(auth.GenerateTokenInput{
		UserID: user.ID,
		Email:  user.Email,
		Role:   string(user.Role),
	})
	if err != nil {
		return nil, err
	}

	if ttl := time.Until(claims.GetExpiresAtTime()); ttl > 0 {
		if err := s.blacklist.Revoke(ctx, claims.ID, ttl); err != nil {
			return nil, err
		}
	}

	return &RefreshResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		TokenType:    pair.TokenType,
		ExpiresIn:    int64(s.tokens.GetAccessTokenExpiration().Seconds()),
	}, nil
}

// Logout revokes the presented access token for its remaining lifetime
func (s *AuthService) Logout(ctx context.Context, jti string, expiresAt time.Time) error {
	ttl := time.Until(expiresAt)
	if ttl <= 0 {
		return nil
	}
	return s.blacklist.Revoke(ctx, jti, ttl)
}

// Me returns the authenticated user's account
func (s *AuthService) Me(ctx context.Context, userID uuid.UUID) (*UserResponse, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	response := ToUserResponse(user)
	return &response, nil
}
