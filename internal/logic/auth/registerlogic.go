package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/agentkit/agentkit/internal/db"
	"github.com/agentkit/agentkit/internal/logging"
	"github.com/agentkit/agentkit/internal/svc"
	"github.com/agentkit/agentkit/internal/types"
)

const minPasswordLength = 8

type RegisterLogic struct {
	logging.Logger
	ctx    context.Context
	svcCtx *svc.ServiceContext
}

func NewRegisterLogic(ctx context.Context, svcCtx *svc.ServiceContext) *RegisterLogic {
	return &RegisterLogic{
		Logger: logging.WithContext(ctx),
		ctx:    ctx,
		svcCtx: svcCtx,
	}
}

func (l *RegisterLogic) Register(req *types.RegisterRequest) (*types.AuthResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, fmt.Errorf("a valid email is required")
	}
	if len(req.Password) < minPasswordLength {
		return nil, fmt.Errorf("password must be at least %d characters", minPasswordLength)
	}

	if _, err := l.svcCtx.DB.GetUserByEmail(l.ctx, email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, db.ErrNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	userID := generateID()
	if err := l.svcCtx.DB.CreateUser(l.ctx, db.CreateUserParams{
		ID:           userID,
		Email:        email,
		Name:         strings.TrimSpace(req.Name),
		PasswordHash: string(hash),
	}); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	// Seed preferences so the settings page has a row to edit
	if err := l.svcCtx.DB.UpsertPreferences(l.ctx, db.UpsertPreferencesParams{
		UserID:             userID,
		DefaultModel:       l.svcCtx.Config.Chat.DefaultModel,
		DefaultTemperature: l.svcCtx.Config.Chat.DefaultTemperature,
		ChatHistoryLimit:   50,
		AutoSaveChats:      true,
	}); err != nil {
		l.Errorf("Failed to seed preferences for %s: %v", userID, err)
	}

	user, err := l.svcCtx.DB.GetUserByID(l.ctx, userID)
	if err != nil {
		return nil, err
	}

	logging.Infof("User registered: %s", email)
	return issueTokens(l.ctx, l.svcCtx, user)
}
