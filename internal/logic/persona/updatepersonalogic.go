package persona

import (
	"context"

	"github.com/agentkit/agentkit/internal/logging"
	"github.com/agentkit/agentkit/internal/middleware"
	"github.com/agentkit/agentkit/internal/persona"
	"github.com/agentkit/agentkit/internal/realtime"
	"github.com/agentkit/agentkit/internal/svc"
	"github.com/agentkit/agentkit/internal/types"
)

type UpdatePersonaLogic struct {
	logging.Logger
	ctx    context.Context
	svcCtx *svc.ServiceContext
}

func NewUpdatePersonaLogic(ctx context.Context, svcCtx *svc.ServiceContext) *UpdatePersonaLogic {
	return &UpdatePersonaLogic{
		Logger: logging.WithContext(ctx),
		ctx:    ctx,
		svcCtx: svcCtx,
	}
}

// UpdatePersona merges the request into an existing custom persona.
// Only custom personas can be updated; built-ins are immutable.
func (l *UpdatePersonaLogic) UpdatePersona(req *types.UpdatePersonaRequest) (*types.PersonaInfo, error) {
	userID := middleware.GetUserID(l.ctx)
	store := l.svcCtx.Personas.Store()

	existing, ok := store.Get(l.ctx, userID)[req.Name]
	if !ok {
		return nil, persona.ErrNotFound
	}

	def := existing.Clone()
	if req.Description != "" {
		def.Description = req.Description
	}
	if req.Emoji != "" {
		def.Emoji = req.Emoji
	}
	if req.Category != "" {
		def.Category = req.Category
	}
	if req.Specialties != nil {
		def.Specialties = req.Specialties
	}
	if req.QuickActions != nil {
		def.QuickActions = req.QuickActions
	}
	if req.SystemPrompt != "" {
		def.SystemPromptOverride = req.SystemPrompt
	}
	if req.Temperature != nil {
		def.Temperature = *req.Temperature
	}

	if err := store.Save(l.ctx, userID, def); err != nil {
		return nil, err
	}

	saved, ok := l.svcCtx.Personas.Lookup(l.ctx, userID, req.Name)
	if !ok {
		return nil, persona.ErrNotFound
	}

	l.svcCtx.Notify(userID, realtime.ActivityPersonaSaved, map[string]interface{}{"name": saved.Name})

	info := toPersonaInfo(saved)
	return &info, nil
}
