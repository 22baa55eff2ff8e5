package apikey

import (
	"context"

	"github.com/agentkit/agentkit/internal/logging"
	"github.com/agentkit/agentkit/internal/middleware"
	"github.com/agentkit/agentkit/internal/realtime"
	"github.com/agentkit/agentkit/internal/svc"
	"github.com/agentkit/agentkit/internal/types"
)

type SetAPIKeyLogic struct {
	logging.Logger
	ctx    context.Context
	svcCtx *svc.ServiceContext
}

func NewSetAPIKeyLogic(ctx context.Context, svcCtx *svc.ServiceContext) *SetAPIKeyLogic {
	return &SetAPIKeyLogic{
		Logger: logging.WithContext(ctx),
		ctx:    ctx,
		svcCtx: svcCtx,
	}
}

func (l *SetAPIKeyLogic) SetAPIKey(req *types.SetAPIKeyRequest) (*types.SetAPIKeyResponse, error) {
	userID := middleware.GetUserID(l.ctx)

	masked, err := l.svcCtx.Keys.Set(l.ctx, userID, req.Provider, req.Key, req.Label)
	if err != nil {
		return nil, err
	}

	l.Infof("API key stored for provider %s (user %s)", req.Provider, userID)
	l.svcCtx.Notify(userID, realtime.ActivityKeySaved, map[string]interface{}{
		"provider": req.Provider,
	})

	return &types.SetAPIKeyResponse{
		Provider:  req.Provider,
		MaskedKey: masked,
	}, nil
}
