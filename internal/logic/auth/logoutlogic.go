package auth

import (
	"context"
	"errors"

	"github.com/agentkit/agentkit/internal/db"
	"github.com/agentkit/agentkit/internal/logging"
	"github.com/agentkit/agentkit/internal/middleware"
	"github.com/agentkit/agentkit/internal/svc"
	"github.com/agentkit/agentkit/internal/types"
)

type LogoutLogic struct {
	logging.Logger
	ctx    context.Context
	svcCtx *svc.ServiceContext
}

func NewLogoutLogic(ctx context.Context, svcCtx *svc.ServiceContext) *LogoutLogic {
	return &LogoutLogic{
		Logger: logging.WithContext(ctx),
		ctx:    ctx,
		svcCtx: svcCtx,
	}
}

// Logout revokes the presented refresh token, or all of the user's tokens
// when none is given. The access token stays valid until it expires.
func (l *LogoutLogic) Logout(req *types.LogoutRequest) (*types.LogoutResponse, error) {
	userID := middleware.GetUserID(l.ctx)

	if req.RefreshToken != "" {
		stored, err := l.svcCtx.DB.GetRefreshTokenByHash(l.ctx, hashToken(req.RefreshToken))
		if err != nil {
			if errors.Is(err, db.ErrNotFound) {
				// Already gone, nothing to revoke
				return &types.LogoutResponse{Success: true}, nil
			}
			return nil, err
		}
		if stored.UserID != userID {
			return nil, ErrInvalidRefreshToken
		}
		if err := l.svcCtx.DB.RevokeRefreshToken(l.ctx, stored.ID); err != nil {
			return nil, err
		}
		return &types.LogoutResponse{Success: true}, nil
	}

	if err := l.svcCtx.DB.RevokeRefreshTokensForUser(l.ctx, userID); err != nil {
		return nil, err
	}
	return &types.LogoutResponse{Success: true}, nil
}
