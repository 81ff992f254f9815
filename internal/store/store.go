// Package store holds the persistence implementations behind Repository.
package store

import (
	"context"
	"fmt"

	"creditline/internal/domain"
)

// Repository is the storage contract the services depend on. Implementations
// return domain errors (not_found, conflict) so callers never see driver
// specific failures for those cases.
type Repository interface {
	ListApplications(ctx context.Context) ([]domain.Application, error)
	GetApplication(ctx context.Context, id string) (domain.Application, error)
	ListApplicationsByEmail(ctx context.Context, email string) ([]domain.Application, error)
	CreateApplication(ctx context.Context, app domain.Application) error
	SaveApplication(ctx context.Context, app domain.Application) error

	GetUserByEmail(ctx context.Context, email string) (domain.User, error)
	CreateUser(ctx context.Context, user domain.User) error
}

func applicationNotFound(id string) error {
	return domain.NewNotFoundError(fmt.Sprintf("Application %s not found", id))
}

func userNotFound(email string) error {
	return domain.NewNotFoundError(fmt.Sprintf("User %s not found", email))
}
