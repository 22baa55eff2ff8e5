package persona

import (
	"context"

	"github.com/agentkit/agentkit/internal/logging"
	"github.com/agentkit/agentkit/internal/middleware"
	"github.com/agentkit/agentkit/internal/svc"
	"github.com/agentkit/agentkit/internal/types"
)

type CategoriesLogic struct {
	logging.Logger
	ctx    context.Context
	svcCtx *svc.ServiceContext
}

func NewCategoriesLogic(ctx context.Context, svcCtx *svc.ServiceContext) *CategoriesLogic {
	return &CategoriesLogic{
		Logger: logging.WithContext(ctx),
		ctx:    ctx,
		svcCtx: svcCtx,
	}
}

func (l *CategoriesLogic) Categories() (*types.PersonaCategoriesResponse, error) {
	userID := middleware.GetUserID(l.ctx)
	return &types.PersonaCategoriesResponse{
		Categories: l.svcCtx.Personas.GroupByCategory(l.ctx, userID),
	}, nil
}
