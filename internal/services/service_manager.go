package services

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/sankalan-edu/campus-service/internal/config"
	"github.com/sankalan-edu/campus-service/internal/events"
	"github.com/sankalan-edu/campus-service/internal/inference"
	"github.com/sankalan-edu/campus-service/internal/repositories"
	"github.com/sankalan-edu/campus-service/internal/validator"
)

// ServiceManagerConfig carries every dependency the services need.
type ServiceManagerConfig struct {
	DB          *gorm.DB
	Repo        repositories.Repository
	RedisClient *redis.Client
	Logger      *slog.Logger
	Validator   *validator.Validator

	EventPublisher  events.EventPublisher
	InferenceClient *inference.Client

	Admin      config.AdminConfig
	Navigation config.NavigationConfig
}

// serviceManager implements ServiceManager.
type serviceManager struct {
	cfg ServiceManagerConfig

	profileService  ProfileService
	sessionService  SessionService
	roomService     RoomService
	quizService     QuizService
	paperService    PaperService
	materialService MaterialService
	eventService    EventService
	adminService    AdminService

	initialized bool
	shutdown    bool
	mu          sync.RWMutex
}

func NewServiceManager(cfg ServiceManagerConfig) ServiceManager {
	return &serviceManager{cfg: cfg}
}

// Initialize builds all services. Order matters only for the session
// service, which needs the room registry.
func (sm *serviceManager) Initialize(ctx context.Context) error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized {
		return nil
	}

	if sm.cfg.Repo == nil {
		return fmt.Errorf("repository is required")
	}
	if sm.cfg.EventPublisher == nil {
		sm.cfg.EventPublisher = events.NoopEventPublisher{}
	}

	sm.cfg.Logger.Info("Initializing service manager")

	sm.roomService = NewRoomService(sm.cfg.Logger, sm.cfg.Validator, sm.cfg.EventPublisher)
	sm.profileService = NewProfileService(sm.cfg.Repo, sm.cfg.DB, sm.cfg.Logger, sm.cfg.Validator, sm.cfg.EventPublisher)

	var store SessionStore
	if sm.cfg.RedisClient != nil {
		store = NewRedisSessionStore(sm.cfg.RedisClient, sm.cfg.Navigation.SessionTTL)
	} else {
		sm.cfg.Logger.Warn("Redis not configured, sessions are process-local")
		store = NewMemorySessionStore()
	}

	p := newPacer(sm.cfg.Navigation.PreCommitHold, sm.cfg.Navigation.PostCommitHold)
	sm.sessionService = NewSessionService(store, sm.cfg.Repo, sm.roomService, p, sm.cfg.Logger, sm.cfg.Validator, sm.cfg.EventPublisher)

	sm.quizService = NewQuizService(sm.cfg.InferenceClient, sm.cfg.Logger, sm.cfg.Validator, sm.cfg.EventPublisher)
	sm.paperService = NewPaperService(sm.cfg.Repo, sm.cfg.DB, sm.cfg.Logger, sm.cfg.Validator, sm.cfg.EventPublisher)
	sm.materialService = NewMaterialService(sm.cfg.Repo, sm.cfg.DB, sm.cfg.Logger, sm.cfg.Validator, sm.cfg.EventPublisher)
	sm.eventService = NewEventService(sm.cfg.Repo, sm.cfg.Logger, sm.cfg.Validator)
	sm.adminService = NewAdminService(sm.cfg.Repo, sm.roomService, sm.cfg.Admin, sm.cfg.Logger, sm.cfg.EventPublisher)

	sm.initialized = true
	sm.cfg.Logger.Info("Service manager initialized")

	return nil
}

func (sm *serviceManager) checkInitialized() {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if !sm.initialized {
		panic("service manager not initialized")
	}
}

func (sm *serviceManager) Profile() ProfileService {
	sm.checkInitialized()
	return sm.profileService
}

func (sm *serviceManager) Session() SessionService {
	sm.checkInitialized()
	return sm.sessionService
}

func (sm *serviceManager) Room() RoomService {
	sm.checkInitialized()
	return sm.roomService
}

func (sm *serviceManager) Quiz() QuizService {
	sm.checkInitialized()
	return sm.quizService
}

func (sm *serviceManager) Paper() PaperService {
	sm.checkInitialized()
	return sm.paperService
}

func (sm *serviceManager) Material() MaterialService {
	sm.checkInitialized()
	return sm.materialService
}

func (sm *serviceManager) Event() EventService {
	sm.checkInitialized()
	return sm.eventService
}

func (sm *serviceManager) Admin() AdminService {
	sm.checkInitialized()
	return sm.adminService
}

func (sm *serviceManager) HealthCheck(ctx context.Context) error {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if !sm.initialized {
		return fmt.Errorf("service manager not initialized")
	}
	if sm.shutdown {
		return fmt.Errorf("service manager is shut down")
	}

	if err := sm.cfg.Repo.Ping(ctx); err != nil {
		return fmt.Errorf("repository health check failed: %w", err)
	}

	return nil
}

func (sm *serviceManager) Shutdown(ctx context.Context) error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.shutdown {
		return nil
	}

	sm.cfg.Logger.Info("Shutting down service manager")

	if err := sm.cfg.EventPublisher.Close(); err != nil {
		sm.cfg.Logger.Error("Failed to close event publisher", "error", err)
	}

	sm.shutdown = true
	sm.cfg.Logger.Info("Service manager shut down completed")

	return nil
}
