package auth

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/agentkit/agentkit/internal/db"
	"github.com/agentkit/agentkit/internal/svc"
	"github.com/agentkit/agentkit/internal/types"
)

var (
	ErrEmailTaken          = errors.New("email already registered")
	ErrInvalidCredentials  = errors.New("invalid email or password")
	ErrInvalidRefreshToken = errors.New("invalid or expired refresh token")
)

// generateID creates a random ID
func generateID() string {
	b := make([]byte, 16)
	rand.Read(b)
	return hex.EncodeToString(b)
}

// generateToken creates a random opaque token
func generateToken() string {
	b := make([]byte, 32)
	rand.Read(b)
	return hex.EncodeToString(b)
}

// hashToken hashes a refresh token for storage; only the hash hits the database
func hashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

// issueTokens signs an access token and stores a fresh refresh token for the user
func issueTokens(ctx context.Context, svcCtx *svc.ServiceContext, user db.User) (*types.AuthResponse, error) {
	now := time.Now()
	accessExpiry := now.Add(time.Duration(svcCtx.Config.Auth.AccessExpire) * time.Second)
	refreshExpiry := now.Add(time.Duration(svcCtx.Config.Auth.RefreshTokenExpire) * time.Second)

	claims := jwt.MapClaims{
		"userId": user.ID,
		"email":  user.Email,
		"iat":    now.Unix(),
		"exp":    accessExpiry.Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	accessToken, err := token.SignedString([]byte(svcCtx.Config.Auth.AccessSecret))
	if err != nil {
		return nil, err
	}

	refreshToken := generateToken()
	if err := svcCtx.DB.CreateRefreshToken(ctx, db.CreateRefreshTokenParams{
		ID:        generateID(),
		UserID:    user.ID,
		TokenHash: hashToken(refreshToken),
		ExpiresAt: refreshExpiry,
	}); err != nil {
		return nil, err
	}

	return &types.AuthResponse{
		Token:        accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    svcCtx.Config.Auth.AccessExpire,
		User: types.UserInfo{
			Id:        user.ID,
			Email:     user.Email,
			Name:      user.Name,
			CreatedAt: user.CreatedAt.UTC().Format(time.RFC3339),
		},
	}, nil
}
