package persona

import (
	"context"

	"github.com/agentkit/agentkit/internal/logging"
	"github.com/agentkit/agentkit/internal/middleware"
	"github.com/agentkit/agentkit/internal/persona"
	"github.com/agentkit/agentkit/internal/svc"
	"github.com/agentkit/agentkit/internal/types"
)

type GetPersonaLogic struct {
	logging.Logger
	ctx    context.Context
	svcCtx *svc.ServiceContext
}

func NewGetPersonaLogic(ctx context.Context, svcCtx *svc.ServiceContext) *GetPersonaLogic {
	return &GetPersonaLogic{
		Logger: logging.WithContext(ctx),
		ctx:    ctx,
		svcCtx: svcCtx,
	}
}

func (l *GetPersonaLogic) GetPersona(req *types.GetPersonaRequest) (*types.PersonaInfo, error) {
	userID := middleware.GetUserID(l.ctx)

	def, ok := l.svcCtx.Personas.Lookup(l.ctx, userID, req.Name)
	if !ok {
		return nil, persona.ErrNotFound
	}

	info := toPersonaInfo(def)
	return &info, nil
}
