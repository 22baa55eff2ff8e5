package persona

import (
	"context"

	"github.com/agentkit/agentkit/internal/logging"
	"github.com/agentkit/agentkit/internal/middleware"
	"github.com/agentkit/agentkit/internal/realtime"
	"github.com/agentkit/agentkit/internal/svc"
	"github.com/agentkit/agentkit/internal/types"
)

type DeletePersonaLogic struct {
	logging.Logger
	ctx    context.Context
	svcCtx *svc.ServiceContext
}

func NewDeletePersonaLogic(ctx context.Context, svcCtx *svc.ServiceContext) *DeletePersonaLogic {
	return &DeletePersonaLogic{
		Logger: logging.WithContext(ctx),
		ctx:    ctx,
		svcCtx: svcCtx,
	}
}

// DeletePersona removes a custom persona. Deleting a custom that shadows a
// built-in uncovers the built-in again; built-ins themselves cannot be deleted.
func (l *DeletePersonaLogic) DeletePersona(req *types.DeletePersonaRequest) (*types.DeletePersonaResponse, error) {
	userID := middleware.GetUserID(l.ctx)

	if err := l.svcCtx.Personas.Store().Delete(l.ctx, userID, req.Name); err != nil {
		return nil, err
	}

	l.Infof("Custom persona deleted: %s (user %s)", req.Name, userID)
	l.svcCtx.Notify(userID, realtime.ActivityPersonaDeleted, map[string]interface{}{"name": req.Name})

	return &types.DeletePersonaResponse{Success: true}, nil
}
