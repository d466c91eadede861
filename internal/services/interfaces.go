package services

import (
	"context"
	"time"

	"github.com/sankalan-edu/campus-service/internal/models"
	"github.com/sankalan-edu/campus-service/internal/repositories"
	"github.com/sankalan-edu/campus-service/internal/validator"
)

// ===== REQUEST/RESPONSE DTOs =====

// Use business validator types
type OnboardingRequest = validator.OnboardingRequest
type ProfileUpdateRequest = validator.ProfileUpdateRequest
type QuizGenerateRequest = validator.QuizGenerateRequest
type RoomCreateRequest = validator.RoomCreateRequest
type PaperCreateRequest = validator.PaperCreateRequest
type PaperUpdateRequest = validator.PaperUpdateRequest
type MaterialCreateRequest = validator.MaterialCreateRequest
type MaterialUpdateRequest = validator.MaterialUpdateRequest
type EventCreateRequest = validator.EventCreateRequest

// ProfileResponse is the profile as returned to clients.
type ProfileResponse struct {
	ID         string              `json:"id"`
	Name       string              `json:"name"`
	Branch     models.Branch       `json:"branch"`
	Year       models.AcademicYear `json:"year"`
	Semester   models.Semester     `json:"semester"`
	Role       models.UserRole     `json:"role"`
	SoundMuted bool                `json:"sound_muted"`
	Complete   bool                `json:"complete"`
}

// NavigationResponse reports the outcome of a router operation. The hold
// durations are included so clients can reproduce the paced transition.
type NavigationResponse struct {
	From             models.View `json:"from"`
	View             models.View `json:"view"`
	Changed          bool        `json:"changed"`
	Paced            bool        `json:"paced"`
	PreCommitHoldMS  int64       `json:"pre_commit_hold_ms,omitempty"`
	PostCommitHoldMS int64       `json:"post_commit_hold_ms,omitempty"`
}

type SessionResponse struct {
	UserID   string          `json:"user_id"`
	View     models.View     `json:"view"`
	AuthMode models.AuthMode `json:"auth_mode,omitempty"`
	RoomID   string          `json:"room_id,omitempty"`
	Profile  ProfileResponse `json:"profile"`
}

type PaperListResponse struct {
	Papers []*models.Paper `json:"papers"`
	Total  int64           `json:"total"`
	Limit  int             `json:"limit"`
	Offset int             `json:"offset"`
}

type MaterialListResponse struct {
	Materials []*models.Material `json:"materials"`
	Total     int64              `json:"total"`
	Limit     int                `json:"limit"`
	Offset    int                `json:"offset"`
}

type EventListResponse struct {
	Events []*models.ClubEvent `json:"events"`
	Total  int64               `json:"total"`
}

type RoomResponse struct {
	Room        *models.Room `json:"room"`
	MemberCount int          `json:"member_count"`
}

type RoomListResponse struct {
	Rooms []RoomResponse `json:"rooms"`
	Total int            `json:"total"`
}

// AdminStatsResponse is the admin console overview.
type AdminStatsResponse struct {
	TotalProfiles    int64                   `json:"total_profiles"`
	TotalPapers      int64                   `json:"total_papers"`
	TotalMaterials   int64                   `json:"total_materials"`
	TotalEvents      int64                   `json:"total_events"`
	ActiveRooms      int                     `json:"active_rooms"`
	ProfilesByBranch map[models.Branch]int64 `json:"profiles_by_branch"`
	GeneratedAt      time.Time               `json:"generated_at"`
}

// AdminSessionResponse carries the minted console token plus the view the
// console client should land on.
type AdminSessionResponse struct {
	Token     string      `json:"token"`
	View      models.View `json:"view"`
	ExpiresAt time.Time   `json:"expires_at"`
}

// ===== SERVICE INTERFACES =====

// ProfileService owns the user profile store.
type ProfileService interface {
	Get(ctx context.Context, userID string) (*ProfileResponse, error)
	Update(ctx context.Context, userID string, req *ProfileUpdateRequest) (*ProfileResponse, error)
	SetSoundMuted(ctx context.Context, userID string, muted bool) error

	// SyncName adopts the identity provider's display name when it differs
	// from the stored one.
	SyncName(ctx context.Context, userID, name string) error
}

// SessionService is the view router. It owns the per-user session state and
// enforces the navigation guards.
type SessionService interface {
	Current(ctx context.Context, userID string) (*SessionResponse, error)

	// Navigate moves the session to the target view, applying guards and,
	// for transitions between authenticated views, the paced holds.
	Navigate(ctx context.Context, userID string, to models.View) (*NavigationResponse, error)

	// Resolve redirects a freshly signed-in session from landing or auth to
	// dashboard or onboarding. From any other view it is a no-op.
	Resolve(ctx context.Context, userID string) (*NavigationResponse, error)

	StartAuth(ctx context.Context, userID string, mode models.AuthMode) (*NavigationResponse, error)
	CompleteOnboarding(ctx context.Context, userID string, req *OnboardingRequest) (*NavigationResponse, error)
	SignOut(ctx context.Context, userID string) (*NavigationResponse, error)

	// Room view transitions keep the session's RoomID in step with the
	// registry.
	EnterRoom(ctx context.Context, userID, roomID string) (*NavigationResponse, error)
	LeaveRoom(ctx context.Context, userID string) (*NavigationResponse, error)
}

// RoomService is the in-process study room registry.
type RoomService interface {
	Create(ctx context.Context, userID string, req *RoomCreateRequest) (*RoomResponse, error)
	Get(ctx context.Context, roomID string) (*RoomResponse, error)
	List(ctx context.Context) (*RoomListResponse, error)
	Join(ctx context.Context, roomID, userID string) (*RoomResponse, error)
	Leave(ctx context.Context, roomID, userID string) error
	Close(ctx context.Context, roomID, userID string, admin bool) error
	ActiveCount() int
}

// QuizService generates mock tests through the inference backend.
type QuizService interface {
	Generate(ctx context.Context, userID string, req *QuizGenerateRequest) (*models.Quiz, error)
}

type PaperService interface {
	Get(ctx context.Context, id uint) (*models.Paper, error)
	List(ctx context.Context, filters repositories.PaperFilters) (*PaperListResponse, error)
	Subjects(ctx context.Context, branch models.Branch, semester models.Semester) ([]string, error)
	Create(ctx context.Context, userID string, req *PaperCreateRequest) (*models.Paper, error)
	Update(ctx context.Context, id uint, req *PaperUpdateRequest) (*models.Paper, error)
	Delete(ctx context.Context, id uint) error
	RecordView(ctx context.Context, id uint, userID string) error
	RecordDownload(ctx context.Context, id uint, userID string) error
}

type MaterialService interface {
	Get(ctx context.Context, id uint) (*models.Material, error)
	List(ctx context.Context, filters repositories.MaterialFilters) (*MaterialListResponse, error)
	Subjects(ctx context.Context, branch models.Branch, semester models.Semester) ([]string, error)
	Create(ctx context.Context, userID string, req *MaterialCreateRequest) (*models.Material, error)
	Update(ctx context.Context, id uint, req *MaterialUpdateRequest) (*models.Material, error)
	Delete(ctx context.Context, id uint) error
	RecordView(ctx context.Context, id uint, userID string) error
}

type EventService interface {
	List(ctx context.Context, filters repositories.EventFilters) (*EventListResponse, error)
	Create(ctx context.Context, userID string, req *EventCreateRequest) (*models.ClubEvent, error)
	Delete(ctx context.Context, id string) error
}

// AdminService backs the admin console.
type AdminService interface {
	// Login checks the configured console credential pair and mints a
	// short-lived admin session token.
	Login(ctx context.Context, username, password string) (*AdminSessionResponse, error)
	ValidateToken(ctx context.Context, token string) error

	Stats(ctx context.Context) (*AdminStatsResponse, error)

	// ExportStats renders the stats overview as an xlsx workbook.
	ExportStats(ctx context.Context) ([]byte, error)
}

// ServiceManager wires the services together with a shared lifecycle.
type ServiceManager interface {
	Profile() ProfileService
	Session() SessionService
	Room() RoomService
	Quiz() QuizService
	Paper() PaperService
	Material() MaterialService
	Event() EventService
	Admin() AdminService

	Initialize(ctx context.Context) error
	HealthCheck(ctx context.Context) error
	Shutdown(ctx context.Context) error
}
