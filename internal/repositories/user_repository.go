package repositories

import (
	"context"

	"github.com/sankalan-edu/campus-service/internal/models"
)

// UserRepository reads user records from the identity provider. This service
// is not the owner of identity data, so the surface is read-only.
type UserRepository interface {
	GetByID(ctx context.Context, id string) (*models.IdentityUser, error)
	GetByEmail(ctx context.Context, email string) (*models.IdentityUser, error)

	ExistsByID(ctx context.Context, id string) (bool, error)
	HasRole(ctx context.Context, id string, role models.UserRole) (bool, error)
}
