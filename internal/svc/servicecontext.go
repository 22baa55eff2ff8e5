package svc

import (
	"github.com/agentkit/agentkit/internal/apikey"
	"github.com/agentkit/agentkit/internal/chat"
	"github.com/agentkit/agentkit/internal/config"
	"github.com/agentkit/agentkit/internal/credential"
	"github.com/agentkit/agentkit/internal/crypto"
	"github.com/agentkit/agentkit/internal/db"
	"github.com/agentkit/agentkit/internal/logging"
	"github.com/agentkit/agentkit/internal/persona"
	"github.com/agentkit/agentkit/internal/realtime"
)

// ServiceContext bundles everything handlers need: config, storage and
// the domain services built on top of it.
type ServiceContext struct {
	Config  config.Config
	Version string

	DB           *db.Store
	Personas     *persona.Registry
	History      *chat.History
	Keys         *apikey.Manager
	Orchestrator *chat.Orchestrator
	Hub          *realtime.Hub
}

// NewServiceContext initializes storage and services. An optional shared
// database can be passed in (used by tests and the CLI).
func NewServiceContext(c config.Config, database ...*db.Store) (*ServiceContext, error) {
	var db0 *db.Store
	if len(database) > 0 {
		db0 = database[0]
	}
	return newServiceContext(c, db0)
}

func newServiceContext(c config.Config, database *db.Store) (*ServiceContext, error) {
	if database == nil {
		var err error
		if c.IsDemoMode() {
			database, err = db.NewMemory()
			if err != nil {
				return nil, err
			}
			logging.Info("Demo mode: using in-memory database, data is lost on restart")
		} else {
			database, err = db.NewSQLite(c.Database.SQLitePath)
			if err != nil {
				return nil, err
			}
		}
	}

	// API keys at rest are encrypted with a machine-local key
	encKey, err := crypto.GetEncryptionKey(c.DataDir())
	if err != nil {
		return nil, err
	}
	credential.Init(encKey)

	registry := persona.NewRegistry(persona.NewStore(persona.NewSQLBackend(database)))
	history := chat.NewHistory(chat.NewSQLBackend(database))
	keys := apikey.NewManager(database)

	orchestrator := chat.NewOrchestrator(registry, history, keys, database, chat.Defaults{
		Model:       c.Chat.DefaultModel,
		Temperature: c.Chat.DefaultTemperature,
		MaxTokens:   c.Chat.MaxTokens,
		Window:      c.Chat.HistoryWindow,
		TokenBudget: c.Chat.TokenBudget,
	})

	svc := &ServiceContext{
		Config:       c,
		DB:           database,
		Personas:     registry,
		History:      history,
		Keys:         keys,
		Orchestrator: orchestrator,
	}

	if c.IsRealtimeEnabled() {
		svc.Hub = realtime.NewHub()
	}

	return svc, nil
}

// Notify pushes an activity event if realtime is enabled
func (s *ServiceContext) Notify(userID, activity string, payload map[string]interface{}) {
	if s.Hub == nil {
		return
	}
	s.Hub.Notify(userID, activity, payload)
}

// Close releases the database connection
func (s *ServiceContext) Close() {
	if s.DB != nil {
		if err := s.DB.Close(); err != nil {
			logging.Errorf("Failed to close database: %v", err)
		}
	}
}
