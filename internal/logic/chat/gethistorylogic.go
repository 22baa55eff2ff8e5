package chat

import (
	"context"
	"time"

	"github.com/agentkit/agentkit/internal/chat"
	"github.com/agentkit/agentkit/internal/logging"
	"github.com/agentkit/agentkit/internal/middleware"
	"github.com/agentkit/agentkit/internal/svc"
	"github.com/agentkit/agentkit/internal/types"
)

type GetHistoryLogic struct {
	logging.Logger
	ctx    context.Context
	svcCtx *svc.ServiceContext
}

func NewGetHistoryLogic(ctx context.Context, svcCtx *svc.ServiceContext) *GetHistoryLogic {
	return &GetHistoryLogic{
		Logger: logging.WithContext(ctx),
		ctx:    ctx,
		svcCtx: svcCtx,
	}
}

// GetHistory returns past exchanges, newest last. An agent filter narrows
// the result to one persona; limit caps how many exchanges come back.
func (l *GetHistoryLogic) GetHistory(req *types.GetHistoryRequest) (*types.GetHistoryResponse, error) {
	userID := middleware.GetUserID(l.ctx)

	limit := req.Limit
	if limit <= 0 && l.svcCtx.DB != nil {
		if row, err := l.svcCtx.DB.GetPreferences(l.ctx, userID); err == nil && row.ChatHistoryLimit > 0 {
			limit = int(row.ChatHistoryLimit)
		}
	}
	if limit <= 0 {
		limit = 50
	}

	var turns []chat.Turn
	if req.Agent != "" {
		turns = l.svcCtx.History.ForPersona(l.ctx, userID, req.Agent, limit)
	} else {
		turns = l.svcCtx.History.All(l.ctx, userID, limit)
	}

	out := make([]types.ChatTurn, 0, len(turns))
	for _, t := range turns {
		out = append(out, types.ChatTurn{
			Agent:     t.PersonaName,
			Message:   t.UserMessage,
			Response:  t.AgentResponse,
			Model:     t.Model,
			CreatedAt: t.CreatedAt.UTC().Format(time.RFC3339),
		})
	}

	return &types.GetHistoryResponse{
		Agent: req.Agent,
		Turns: out,
		Total: len(out),
	}, nil
}
