package user

import (
	"context"
	"errors"
	"fmt"

	"github.com/agentkit/agentkit/internal/db"
	"github.com/agentkit/agentkit/internal/logging"
	"github.com/agentkit/agentkit/internal/middleware"
	"github.com/agentkit/agentkit/internal/persona"
	"github.com/agentkit/agentkit/internal/provider"
	"github.com/agentkit/agentkit/internal/svc"
	"github.com/agentkit/agentkit/internal/types"
)

type UpdatePreferencesLogic struct {
	logging.Logger
	ctx    context.Context
	svcCtx *svc.ServiceContext
}

func NewUpdatePreferencesLogic(ctx context.Context, svcCtx *svc.ServiceContext) *UpdatePreferencesLogic {
	return &UpdatePreferencesLogic{
		Logger: logging.WithContext(ctx),
		ctx:    ctx,
		svcCtx: svcCtx,
	}
}

// UpdatePreferences applies a partial update; omitted fields keep their
// current value.
func (l *UpdatePreferencesLogic) UpdatePreferences(req *types.UpdatePreferencesRequest) (*types.Preferences, error) {
	userID := middleware.GetUserID(l.ctx)

	current := db.PreferencesRow{
		UserID:             userID,
		DefaultModel:       l.svcCtx.Config.Chat.DefaultModel,
		DefaultTemperature: l.svcCtx.Config.Chat.DefaultTemperature,
		ChatHistoryLimit:   50,
		AutoSaveChats:      true,
	}
	if row, err := l.svcCtx.DB.GetPreferences(l.ctx, userID); err == nil {
		current = row
	} else if !errors.Is(err, db.ErrNotFound) {
		return nil, err
	}

	if req.DefaultModel != nil {
		if _, ok := provider.ProviderForModel(*req.DefaultModel); !ok {
			return nil, fmt.Errorf("unknown model: %s", *req.DefaultModel)
		}
		current.DefaultModel = *req.DefaultModel
	}
	if req.DefaultTemperature != nil {
		current.DefaultTemperature = persona.ClampTemperature(*req.DefaultTemperature)
	}
	if req.ChatHistoryLimit != nil {
		limit := *req.ChatHistoryLimit
		if limit < 1 {
			return nil, fmt.Errorf("chatHistoryLimit must be positive")
		}
		current.ChatHistoryLimit = int64(limit)
	}
	if req.AutoSaveChats != nil {
		current.AutoSaveChats = *req.AutoSaveChats
	}

	if err := l.svcCtx.DB.UpsertPreferences(l.ctx, db.UpsertPreferencesParams{
		UserID:             userID,
		DefaultModel:       current.DefaultModel,
		DefaultTemperature: current.DefaultTemperature,
		ChatHistoryLimit:   current.ChatHistoryLimit,
		AutoSaveChats:      current.AutoSaveChats,
	}); err != nil {
		return nil, err
	}

	return &types.Preferences{
		DefaultModel:       current.DefaultModel,
		DefaultTemperature: current.DefaultTemperature,
		ChatHistoryLimit:   int(current.ChatHistoryLimit),
		AutoSaveChats:      current.AutoSaveChats,
	}, nil
}
