package apikey

import (
	"context"

	"github.com/agentkit/agentkit/internal/logging"
	"github.com/agentkit/agentkit/internal/middleware"
	"github.com/agentkit/agentkit/internal/realtime"
	"github.com/agentkit/agentkit/internal/svc"
	"github.com/agentkit/agentkit/internal/types"
)

type DeleteAPIKeyLogic struct {
	logging.Logger
	ctx    context.Context
	svcCtx *svc.ServiceContext
}

func NewDeleteAPIKeyLogic(ctx context.Context, svcCtx *svc.ServiceContext) *DeleteAPIKeyLogic {
	return &DeleteAPIKeyLogic{
		Logger: logging.WithContext(ctx),
		ctx:    ctx,
		svcCtx: svcCtx,
	}
}

func (l *DeleteAPIKeyLogic) DeleteAPIKey(req *types.DeleteAPIKeyRequest) (*types.DeleteAPIKeyResponse, error) {
	userID := middleware.GetUserID(l.ctx)

	if err := l.svcCtx.Keys.Delete(l.ctx, userID, req.Provider); err != nil {
		return nil, err
	}

	l.Infof("API key removed for provider %s (user %s)", req.Provider, userID)
	l.svcCtx.Notify(userID, realtime.ActivityKeyDeleted, map[string]interface{}{
		"provider": req.Provider,
	})
	return &types.DeleteAPIKeyResponse{Success: true}, nil
}
