package repository

import (
	"context"

	"github.com/jkorir-dev/duka-pos/internal/domain/entity"
)

// UserRepository is the persistence gateway for the user directory
// aggregate. Load returns an empty slice when no users have ever been
// saved, which is the signal for the bootstrap admin to be created.
type UserRepository interface {
	Load(ctx context.Context) ([]entity.User, error)
	Replace(ctx context.Context, users []entity.User) error
}
