package persona

import (
	"context"
	"errors"

	"github.com/agentkit/agentkit/internal/logging"
	"github.com/agentkit/agentkit/internal/middleware"
	"github.com/agentkit/agentkit/internal/persona"
	"github.com/agentkit/agentkit/internal/realtime"
	"github.com/agentkit/agentkit/internal/svc"
	"github.com/agentkit/agentkit/internal/types"
)

// ErrAlreadyExists is returned when creating a custom persona whose name is
// already taken by another custom persona. Shadowing a built-in is allowed.
var ErrAlreadyExists = errors.New("persona already exists")

type CreatePersonaLogic struct {
	logging.Logger
	ctx    context.Context
	svcCtx *svc.ServiceContext
}

func NewCreatePersonaLogic(ctx context.Context, svcCtx *svc.ServiceContext) *CreatePersonaLogic {
	return &CreatePersonaLogic{
		Logger: logging.WithContext(ctx),
		ctx:    ctx,
		svcCtx: svcCtx,
	}
}

func (l *CreatePersonaLogic) CreatePersona(req *types.CreatePersonaRequest) (*types.PersonaInfo, error) {
	userID := middleware.GetUserID(l.ctx)
	store := l.svcCtx.Personas.Store()

	if store.Exists(l.ctx, userID, req.Name) {
		return nil, ErrAlreadyExists
	}

	temperature := l.svcCtx.Config.Chat.DefaultTemperature
	if req.Temperature != nil {
		temperature = *req.Temperature
	}

	def := persona.Definition{
		Name:                 req.Name,
		Description:          req.Description,
		Emoji:                req.Emoji,
		Category:             req.Category,
		Temperature:          temperature,
		Specialties:          req.Specialties,
		QuickActions:         req.QuickActions,
		SystemPromptOverride: req.SystemPrompt,
	}

	if err := store.Save(l.ctx, userID, def); err != nil {
		return nil, err
	}

	saved, ok := l.svcCtx.Personas.Lookup(l.ctx, userID, def.Name)
	if !ok {
		return nil, persona.ErrNotFound
	}

	l.Infof("Custom persona created: %s (user %s)", saved.Name, userID)
	l.svcCtx.Notify(userID, realtime.ActivityPersonaSaved, map[string]interface{}{"name": saved.Name})

	info := toPersonaInfo(saved)
	return &info, nil
}
