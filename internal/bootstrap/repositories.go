package bootstrap

import (
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/pondkeeper/pondkeeper/internal/database/postgres"
	"github.com/pondkeeper/pondkeeper/internal/repository"
)

// Repositories holds all repository implementations used by the application.
// This provides a centralized location for repository initialization and
// makes dependency injection clearer.
type Repositories struct {
	Account repository.Account
}

// InitializeRepositories creates all repository implementations.
func InitializeRepositories(dbPool *pgxpool.Pool) *Repositories {
	return &Repositories{
		Account: postgres.NewAccountRepository(dbPool),
	}
}
