package apikey

import (
	"context"
	"fmt"

	"github.com/agentkit/agentkit/internal/logging"
	"github.com/agentkit/agentkit/internal/provider"
	"github.com/agentkit/agentkit/internal/svc"
	"github.com/agentkit/agentkit/internal/types"
)

type ValidateAPIKeyLogic struct {
	logging.Logger
	ctx    context.Context
	svcCtx *svc.ServiceContext
}

func NewValidateAPIKeyLogic(ctx context.Context, svcCtx *svc.ServiceContext) *ValidateAPIKeyLogic {
	return &ValidateAPIKeyLogic{
		Logger: logging.WithContext(ctx),
		ctx:    ctx,
		svcCtx: svcCtx,
	}
}

// ValidateAPIKey checks a key's shape without storing it or calling the
// provider. Format-only: a well-formed key can still be rejected upstream.
func (l *ValidateAPIKeyLogic) ValidateAPIKey(req *types.ValidateAPIKeyRequest) (*types.ValidateAPIKeyResponse, error) {
	if _, ok := provider.GetProvider(req.Provider); !ok {
		return nil, fmt.Errorf("unsupported provider: %s", req.Provider)
	}

	valid, reason := provider.ValidateKeyFormat(req.Provider, req.Key)
	return &types.ValidateAPIKeyResponse{
		Provider: req.Provider,
		Valid:    valid,
		Reason:   reason,
	}, nil
}
