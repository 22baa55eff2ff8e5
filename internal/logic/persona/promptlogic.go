package persona

import (
	"context"

	"github.com/agentkit/agentkit/internal/logging"
	"github.com/agentkit/agentkit/internal/middleware"
	"github.com/agentkit/agentkit/internal/svc"
	"github.com/agentkit/agentkit/internal/types"
)

type PromptLogic struct {
	logging.Logger
	ctx    context.Context
	svcCtx *svc.ServiceContext
}

func NewPromptLogic(ctx context.Context, svcCtx *svc.ServiceContext) *PromptLogic {
	return &PromptLogic{
		Logger: logging.WithContext(ctx),
		ctx:    ctx,
		svcCtx: svcCtx,
	}
}

// Prompt returns the resolved system prompt for a persona. Unknown names get
// the generic fallback rather than an error so clients can always preview.
func (l *PromptLogic) Prompt(req *types.GetPersonaPromptRequest) (*types.GetPersonaPromptResponse, error) {
	userID := middleware.GetUserID(l.ctx)

	resolved := l.svcCtx.Personas.Prompt(l.ctx, userID, req.Name, l.svcCtx.Config.Chat.DefaultTemperature)

	return &types.GetPersonaPromptResponse{
		Name:         req.Name,
		SystemPrompt: resolved.System,
		Temperature:  resolved.Temperature,
		Source:       resolved.Source,
	}, nil
}
