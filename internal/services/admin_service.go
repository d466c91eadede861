package services

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/sankalan-edu/campus-service/internal/config"
	"github.com/sankalan-edu/campus-service/internal/events"
	"github.com/sankalan-edu/campus-service/internal/models"
	"github.com/sankalan-edu/campus-service/internal/repositories"
)

const adminSessionTTL = 2 * time.Hour

// adminService backs the admin console. Console login bypasses the identity
// provider entirely: it checks a single configured credential pair. Tokens
// are process-local and short-lived.
type adminService struct {
	repo      repositories.Repository
	rooms     RoomService
	logger    *slog.Logger
	publisher events.EventPublisher

	username string
	password string

	mu     sync.Mutex
	tokens map[string]time.Time
}

func NewAdminService(repo repositories.Repository, rooms RoomService, cfg config.AdminConfig, logger *slog.Logger, publisher events.EventPublisher) AdminService {
	return &adminService{
		repo:      repo,
		rooms:     rooms,
		logger:    logger,
		publisher: publisher,
		username:  cfg.Username,
		password:  cfg.Password,
		tokens:    make(map[string]time.Time),
	}
}

// Login validates the console credential pair with constant-time compares.
// Every outcome is logged loudly because this path sidesteps the identity
// provider.
func (s *adminService) Login(ctx context.Context, username, password string) (*AdminSessionResponse, error) {
	if s.username == "" || s.password == "" {
		s.logger.Warn("admin console login attempted but no credentials are configured")
		return nil, ErrUnauthorized
	}

	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(s.username)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(password), []byte(s.password)) == 1
	if !userOK || !passOK {
		s.logger.Warn("admin console login rejected", "username", username)
		s.publish(ctx, events.TypeAdminLoginFailure, "", map[string]string{"username": username})
		return nil, ErrUnauthorized
	}

	token, err := newAdminToken()
	if err != nil {
		return nil, fmt.Errorf("failed to mint admin token: %w", err)
	}

	expiresAt := time.Now().Add(adminSessionTTL)

	s.mu.Lock()
	s.pruneLocked()
	s.tokens[token] = expiresAt
	s.mu.Unlock()

	s.logger.Warn("admin console login accepted, identity provider bypassed", "username", username)
	s.publish(ctx, events.TypeAdminLogin, "", map[string]string{"username": username})

	return &AdminSessionResponse{
		Token:     token,
		View:      models.ViewAdminDashboard,
		ExpiresAt: expiresAt,
	}, nil
}

func (s *adminService) ValidateToken(ctx context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	expiresAt, ok := s.tokens[token]
	if !ok {
		return ErrUnauthorized
	}
	if time.Now().After(expiresAt) {
		delete(s.tokens, token)
		return ErrUnauthorized
	}
	return nil
}

func (s *adminService) pruneLocked() {
	now := time.Now()
	for token, expiresAt := range s.tokens {
		if now.After(expiresAt) {
			delete(s.tokens, token)
		}
	}
}

func newAdminToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}

func (s *adminService) Stats(ctx context.Context) (*AdminStatsResponse, error) {
	profiles, err := s.repo.Profile().Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count profiles: %w", err)
	}
	papers, err := s.repo.Paper().Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count papers: %w", err)
	}
	materials, err := s.repo.Material().Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count materials: %w", err)
	}
	clubEvents, err := s.repo.ClubEvent().Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count club events: %w", err)
	}
	byBranch, err := s.repo.Profile().CountByBranch(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count profiles by branch: %w", err)
	}

	return &AdminStatsResponse{
		TotalProfiles:    profiles,
		TotalPapers:      papers,
		TotalMaterials:   materials,
		TotalEvents:      clubEvents,
		ActiveRooms:      s.rooms.ActiveCount(),
		ProfilesByBranch: byBranch,
		GeneratedAt:      time.Now().UTC(),
	}, nil
}

// ExportStats renders the stats overview into an xlsx workbook with an
// overview sheet and a per-branch breakdown sheet.
func (s *adminService) ExportStats(ctx context.Context) ([]byte, error) {
	stats, err := s.Stats(ctx)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer f.Close()

	const overview = "Overview"
	if err := f.SetSheetName("Sheet1", overview); err != nil {
		return nil, fmt.Errorf("failed to build export workbook: %w", err)
	}

	rows := [][]interface{}{
		{"Metric", "Value"},
		{"Total profiles", stats.TotalProfiles},
		{"Total papers", stats.TotalPapers},
		{"Total materials", stats.TotalMaterials},
		{"Total club events", stats.TotalEvents},
		{"Active study rooms", stats.ActiveRooms},
		{"Generated at", stats.GeneratedAt.Format(time.RFC3339)},
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return nil, fmt.Errorf("failed to build export workbook: %w", err)
		}
		if err := f.SetSheetRow(overview, cell, &row); err != nil {
			return nil, fmt.Errorf("failed to build export workbook: %w", err)
		}
	}

	const branches = "Branches"
	if _, err := f.NewSheet(branches); err != nil {
		return nil, fmt.Errorf("failed to build export workbook: %w", err)
	}
	if err := f.SetSheetRow(branches, "A1", &[]interface{}{"Branch", "Profiles"}); err != nil {
		return nil, fmt.Errorf("failed to build export workbook: %w", err)
	}
	row := 2
	for _, branch := range models.Branches {
		count, ok := stats.ProfilesByBranch[branch]
		if !ok {
			continue
		}
		cell, err := excelize.CoordinatesToCellName(1, row)
		if err != nil {
			return nil, fmt.Errorf("failed to build export workbook: %w", err)
		}
		if err := f.SetSheetRow(branches, cell, &[]interface{}{string(branch), count}); err != nil {
			return nil, fmt.Errorf("failed to build export workbook: %w", err)
		}
		row++
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to serialize export workbook: %w", err)
	}

	return buf.Bytes(), nil
}

func (s *adminService) publish(ctx context.Context, eventType, userID string, data any) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, events.NewEvent(eventType, userID, data)); err != nil {
		s.logger.Warn("failed to publish admin event", "error", err, "type", eventType)
	}
}
