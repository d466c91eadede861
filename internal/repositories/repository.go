package repositories

import "context"

// Repository aggregates every repository in the service.
type Repository interface {
	// Profile store
	Profile() ProfileRepository

	// Catalogs
	Paper() PaperRepository
	Material() MaterialRepository
	ClubEvent() ClubEventRepository

	// Identity (read-only, owned by the identity provider)
	User() UserRepository

	// Transaction support
	WithTransaction(ctx context.Context, fn func(Repository) error) error

	// Health check
	Ping(ctx context.Context) error

	// Close connections
	Close() error
}

// RepositoryManager manages repository lifecycle.
type RepositoryManager interface {
	Initialize() error
	GetRepository() Repository
	HealthCheck(ctx context.Context) error
	Shutdown(ctx context.Context) error
}
