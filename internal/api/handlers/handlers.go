package handlers

import (
	"scamtrap-lab/internal/domain/services"
	"scamtrap-lab/internal/domain/services/ai"
	"scamtrap-lab/internal/infrastructure/cache"
	"scamtrap-lab/internal/infrastructure/database"
	"scamtrap-lab/internal/infrastructure/database/repository"
	"scamtrap-lab/internal/trap"
	"scamtrap-lab/pkg/logger"
)

// Handlers holds all API handlers
type Handlers struct {
	Health *HealthHandler
	Chat   *ChatHandler
	Device *DeviceHandler
	Intel  *IntelHandler
}

// Dependencies holds dependencies for handlers
type Dependencies struct {
	Aggregator *services.Aggregator
	Classifier *services.Classifier
	Composer   *ai.Composer
	Assembler  *services.Assembler
	TrapStore  trap.Store
	IntelRepo  repository.IntelRepository
	DB         *database.PostgresDB
	Cache      *cache.RedisCache
	Logger     *logger.Logger
}

// NewHandlers creates all handlers
func NewHandlers(deps Dependencies) *Handlers {
	return &Handlers{
		Health: NewHealthHandler(deps.DB, deps.Cache, deps.Logger),
		Chat:   NewChatHandler(deps),
		Device: NewDeviceHandler(deps.TrapStore, deps.IntelRepo, deps.Logger),
		Intel:  NewIntelHandler(deps.IntelRepo, deps.Logger),
	}
}
