package chat

import (
	"context"

	"github.com/agentkit/agentkit/internal/chat"
	"github.com/agentkit/agentkit/internal/logging"
	"github.com/agentkit/agentkit/internal/middleware"
	"github.com/agentkit/agentkit/internal/realtime"
	"github.com/agentkit/agentkit/internal/svc"
	"github.com/agentkit/agentkit/internal/types"
)

type SendMessageLogic struct {
	logging.Logger
	ctx    context.Context
	svcCtx *svc.ServiceContext
}

func NewSendMessageLogic(ctx context.Context, svcCtx *svc.ServiceContext) *SendMessageLogic {
	return &SendMessageLogic{
		Logger: logging.WithContext(ctx),
		ctx:    ctx,
		svcCtx: svcCtx,
	}
}

func (l *SendMessageLogic) SendMessage(req *types.SendMessageRequest) (*types.SendMessageResponse, error) {
	userID := middleware.GetUserID(l.ctx)

	result, err := l.svcCtx.Orchestrator.SendMessage(l.ctx, userID, chat.SendRequest{
		Agent:       req.Agent,
		Message:     req.Message,
		Model:       req.Model,
		Temperature: req.Temperature,
	})
	if err != nil {
		return nil, err
	}

	l.svcCtx.Notify(userID, realtime.ActivityMessageSent, map[string]interface{}{
		"agent": result.Agent,
		"model": result.Model,
	})

	return &types.SendMessageResponse{
		Agent:        result.Agent,
		Reply:        result.Reply,
		Model:        result.Model,
		PromptTokens: result.PromptTokens,
		ReplyTokens:  result.ReplyTokens,
	}, nil
}
