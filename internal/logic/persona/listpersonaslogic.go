package persona

import (
	"context"

	"github.com/agentkit/agentkit/internal/logging"
	"github.com/agentkit/agentkit/internal/middleware"
	"github.com/agentkit/agentkit/internal/svc"
	"github.com/agentkit/agentkit/internal/types"
)

type ListPersonasLogic struct {
	logging.Logger
	ctx    context.Context
	svcCtx *svc.ServiceContext
}

func NewListPersonasLogic(ctx context.Context, svcCtx *svc.ServiceContext) *ListPersonasLogic {
	return &ListPersonasLogic{
		Logger: logging.WithContext(ctx),
		ctx:    ctx,
		svcCtx: svcCtx,
	}
}

// ListPersonas returns the merged catalog: built-ins in catalog order with
// the user's custom personas applied, optionally filtered by category.
func (l *ListPersonasLogic) ListPersonas(req *types.ListPersonasRequest) (*types.ListPersonasResponse, error) {
	userID := middleware.GetUserID(l.ctx)

	merged := l.svcCtx.Personas.Resolve(l.ctx, userID)
	names := l.svcCtx.Personas.ResolveNames(l.ctx, userID)

	personas := make([]types.PersonaInfo, 0, len(names))
	for _, name := range names {
		def, ok := merged[name]
		if !ok {
			continue
		}
		if req.Category != "" && def.Category != req.Category {
			continue
		}
		personas = append(personas, toPersonaInfo(def))
	}

	return &types.ListPersonasResponse{
		Personas: personas,
		Total:    len(personas),
	}, nil
}
