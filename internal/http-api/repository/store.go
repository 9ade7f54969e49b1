package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"
)

// Store groups the repositories that share one connection or transaction.
type Store interface {
	Users() UserRepository
	Phones() PhoneRepository
	// WithinTransaction runs fn against a Store bound to a single transaction,
	// committing when fn returns nil and rolling back otherwise.
	WithinTransaction(ctx context.Context, fn func(tx Store) error) error
	Ping(ctx context.Context) error
}

type gormStore struct {
	db     *gorm.DB
	users  UserRepository
	phones PhoneRepository
}

func NewStore(db *gorm.DB) Store {
	return &gormStore{
		db:     db,
		users:  NewUserRepository(db),
		phones: NewPhoneRepository(db),
	}
}

func (s *gormStore) Users() UserRepository {
	return s.users
}

func (s *gormStore) Phones() PhoneRepository {
	return s.phones
}

func (s *gormStore) WithinTransaction(ctx context.Context, fn func(tx Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewStore(tx))
	})
}

func (s *gormStore) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return fmt.Errorf("get sql.DB: %w", err)
	}
	return sqlDB.PingContext(ctx)
}
