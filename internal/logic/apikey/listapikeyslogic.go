package apikey

import (
	"context"
	"time"

	"github.com/agentkit/agentkit/internal/logging"
	"github.com/agentkit/agentkit/internal/middleware"
	"github.com/agentkit/agentkit/internal/svc"
	"github.com/agentkit/agentkit/internal/types"
)

type ListAPIKeysLogic struct {
	logging.Logger
	ctx    context.Context
	svcCtx *svc.ServiceContext
}

func NewListAPIKeysLogic(ctx context.Context, svcCtx *svc.ServiceContext) *ListAPIKeysLogic {
	return &ListAPIKeysLogic{
		Logger: logging.WithContext(ctx),
		ctx:    ctx,
		svcCtx: svcCtx,
	}
}

// ListAPIKeys returns stored keys in masked form; plaintext never leaves the server
func (l *ListAPIKeysLogic) ListAPIKeys() (*types.ListAPIKeysResponse, error) {
	userID := middleware.GetUserID(l.ctx)

	infos, err := l.svcCtx.Keys.List(l.ctx, userID)
	if err != nil {
		return nil, err
	}

	keys := make([]types.APIKeyInfo, 0, len(infos))
	for _, info := range infos {
		entry := types.APIKeyInfo{
			Provider:  info.Provider,
			MaskedKey: info.MaskedKey,
			Label:     info.Label,
			UseCount:  info.UseCount,
			CreatedAt: time.Unix(info.CreatedAt, 0).UTC().Format(time.RFC3339),
		}
		if info.LastUsedAt > 0 {
			entry.LastUsedAt = time.Unix(info.LastUsedAt, 0).UTC().Format(time.RFC3339)
		}
		keys = append(keys, entry)
	}

	return &types.ListAPIKeysResponse{Keys: keys}, nil
}
