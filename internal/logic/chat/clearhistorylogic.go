package chat

import (
	"context"

	"github.com/agentkit/agentkit/internal/logging"
	"github.com/agentkit/agentkit/internal/middleware"
	"github.com/agentkit/agentkit/internal/realtime"
	"github.com/agentkit/agentkit/internal/svc"
	"github.com/agentkit/agentkit/internal/types"
)

type ClearHistoryLogic struct {
	logging.Logger
	ctx    context.Context
	svcCtx *svc.ServiceContext
}

func NewClearHistoryLogic(ctx context.Context, svcCtx *svc.ServiceContext) *ClearHistoryLogic {
	return &ClearHistoryLogic{
		Logger: logging.WithContext(ctx),
		ctx:    ctx,
		svcCtx: svcCtx,
	}
}

// ClearHistory wipes chat history for one persona, or everything when no
// agent is given.
func (l *ClearHistoryLogic) ClearHistory(req *types.ClearHistoryRequest) (*types.ClearHistoryResponse, error) {
	userID := middleware.GetUserID(l.ctx)

	removed, err := l.svcCtx.History.Clear(l.ctx, userID, req.Agent)
	if err != nil {
		return nil, err
	}

	l.Infof("Chat history cleared: user %s agent %q removed %d", userID, req.Agent, removed)
	l.svcCtx.Notify(userID, realtime.ActivityHistoryCleared, map[string]interface{}{
		"agent":   req.Agent,
		"removed": removed,
	})

	return &types.ClearHistoryResponse{Success: true, Removed: removed}, nil
}
