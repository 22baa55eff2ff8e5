package user

import (
	"context"
	"errors"

	"github.com/agentkit/agentkit/internal/db"
	"github.com/agentkit/agentkit/internal/logging"
	"github.com/agentkit/agentkit/internal/middleware"
	"github.com/agentkit/agentkit/internal/svc"
	"github.com/agentkit/agentkit/internal/types"
)

type GetPreferencesLogic struct {
	logging.Logger
	ctx    context.Context
	svcCtx *svc.ServiceContext
}

func NewGetPreferencesLogic(ctx context.Context, svcCtx *svc.ServiceContext) *GetPreferencesLogic {
	return &GetPreferencesLogic{
		Logger: logging.WithContext(ctx),
		ctx:    ctx,
		svcCtx: svcCtx,
	}
}

// GetPreferences returns stored preferences, or defaults when the user has
// never saved any.
func (l *GetPreferencesLogic) GetPreferences() (*types.Preferences, error) {
	userID := middleware.GetUserID(l.ctx)

	row, err := l.svcCtx.DB.GetPreferences(l.ctx, userID)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return &types.Preferences{
				DefaultModel:       l.svcCtx.Config.Chat.DefaultModel,
				DefaultTemperature: l.svcCtx.Config.Chat.DefaultTemperature,
				ChatHistoryLimit:   50,
				AutoSaveChats:      true,
			}, nil
		}
		return nil, err
	}

	return &types.Preferences{
		DefaultModel:       row.DefaultModel,
		DefaultTemperature: row.DefaultTemperature,
		ChatHistoryLimit:   int(row.ChatHistoryLimit),
		AutoSaveChats:      row.AutoSaveChats,
	}, nil
}
