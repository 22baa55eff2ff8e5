package auth

import (
	"context"
	"errors"
	"time"

	"github.com/agentkit/agentkit/internal/db"
	"github.com/agentkit/agentkit/internal/logging"
	"github.com/agentkit/agentkit/internal/svc"
	"github.com/agentkit/agentkit/internal/types"
)

type RefreshTokenLogic struct {
	logging.Logger
	ctx    context.Context
	svcCtx *svc.ServiceContext
}

func NewRefreshTokenLogic(ctx context.Context, svcCtx *svc.ServiceContext) *RefreshTokenLogic {
	return &RefreshTokenLogic{
		Logger: logging.WithContext(ctx),
		ctx:    ctx,
		svcCtx: svcCtx,
	}
}

// RefreshToken rotates a valid refresh token: the old one is revoked and a
// fresh access/refresh pair is issued.
func (l *RefreshTokenLogic) RefreshToken(req *types.RefreshRequest) (*types.AuthResponse, error) {
	if req.RefreshToken == "" {
		return nil, ErrInvalidRefreshToken
	}

	stored, err := l.svcCtx.DB.GetRefreshTokenByHash(l.ctx, hashToken(req.RefreshToken))
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return nil, ErrInvalidRefreshToken
		}
		return nil, err
	}

	if stored.RevokedAt.Valid || time.Now().After(stored.ExpiresAt) {
		return nil, ErrInvalidRefreshToken
	}

	user, err := l.svcCtx.DB.GetUserByID(l.ctx, stored.UserID)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return nil, ErrInvalidRefreshToken
		}
		return nil, err
	}

	if err := l.svcCtx.DB.RevokeRefreshToken(l.ctx, stored.ID); err != nil {
		l.Errorf("Failed to revoke rotated refresh token: %v", err)
	}

	return issueTokens(l.ctx, l.svcCtx, user)
}
