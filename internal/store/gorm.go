package store

import (
	"context"
	"errors"
	"strings"

	"gorm.io/driver/mysql" // MySQL driver for GORM
	"gorm.io/gorm"         // GORM ORM library
	"gorm.io/gorm/clause"  // Row locking

	"creditline/internal/domain"
)

// GormStore persists applications and users through GORM
type GormStore struct {
	db *gorm.DB
}

var _ Repository = (*GormStore)(nil)

// OpenMySQL connects to MySQL with the settings GormStore relies on
func OpenMySQL(dsn string) (*gorm.DB, error) {
	return gorm.Open(mysql.Open(dsn), &gorm.Config{
		TranslateError:         true, // Map duplicate keys to gorm.ErrDuplicatedKey
		SkipDefaultTransaction: true, // Single statement writes need no wrapping transaction
	})
}

// NewGormStore wraps an open connection. The connection should be opened
// with TranslateError so duplicate keys surface as conflicts.
func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) ListApplications(ctx context.Context) ([]domain.Application, error) {
	var apps []domain.Application
	if err := s.db.WithContext(ctx).Order("seq asc").Find(&apps).Error; err != nil {
		return nil, err
	}
	return apps, nil
}

func (s *GormStore) GetApplication(ctx context.Context, id string) (domain.Application, error) {
	var app domain.Application
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&app).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.Application{}, applicationNotFound(id)
	}
	return app, err
}

func (s *GormStore) ListApplicationsByEmail(ctx context.Context, email string) ([]domain.Application, error) {
	apps := []domain.Application{}
	err := s.db.WithContext(ctx).
		Where("email = ?", strings.ToLower(email)).
		Order("seq asc").
		Find(&apps).Error
	if err != nil {
		return nil, err
	}
	return apps, nil
}

func (s *GormStore) CreateApplication(ctx context.Context, app domain.Application) error {
	err := s.db.WithContext(ctx).Create(&app).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return domain.NewConflictError("Application " + app.ID + " already exists")
	}
	return err
}

func (s *GormStore) SaveApplication(ctx context.Context, app domain.Application) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing domain.Application
		// Lock the row so concurrent processes cannot interleave updates
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).Where("id = ?", app.ID).First(&existing).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return applicationNotFound(app.ID)
		} else if err != nil {
			return err
		}
		return tx.Model(&existing).Select("*").Omit("id", "created_at", "seq").Updates(&app).Error
	})
}

func (s *GormStore) GetUserByEmail(ctx context.Context, email string) (domain.User, error) {
	var user domain.User
	err := s.db.WithContext(ctx).Where("email = ?", strings.ToLower(email)).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.User{}, userNotFound(email)
	}
	return user, err
}

func (s *GormStore) CreateUser(ctx context.Context, user domain.User) error {
	user.Email = strings.ToLower(user.Email)
	err := s.db.WithContext(ctx).Create(&user).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return domain.NewConflictError("Email already registered")
	}
	return err
}
