package testutil

import (
	"context"

	"github.com/netbill/netbill/internal/domain/user"
	ierr "github.com/netbill/netbill/internal/errors"
	"github.com/netbill/netbill/internal/types"
)

// InMemoryUserStore implements user.Repository
type InMemoryUserStore struct {
	*InMemoryStore[*user.User]
}

func NewInMemoryUserStore() *InMemoryUserStore {
	return &InMemoryUserStore{
		InMemoryStore: NewInMemoryStore[*user.User](),
	}
}

func copyUser(u *user.User) *user.User {
	if u == nil {
		return nil
	}
	c := *u
	return &c
}

func userInScope(ctx context.Context, u *user.User) bool {
	return u.TenantID == types.GetTenantID(ctx) && u.Status != types.StatusDeleted
}

func (s *InMemoryUserStore) Create(ctx context.Context, u *user.User) error {
	return s.InMemoryStore.Create(ctx, u.ID, copyUser(u))
}

func (s *InMemoryUserStore) GetByID(ctx context.Context, id string) (*user.User, error) {
	u, err := s.InMemoryStore.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !userInScope(ctx, u) {
		return nil, ierr.NewError("user not found").
			WithHint("The requested user was not found").
			Mark(ierr.ErrNotFound)
	}
	return copyUser(u), nil
}

func (s *InMemoryUserStore) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	users, err := s.InMemoryStore.List(ctx, nil, func(ctx context.Context, u *user.User, _ interface{}) bool {
		return userInScope(ctx, u) && u.Email == email
	}, nil)
	if err != nil {
		return nil, err
	}
	if len(users) == 0 {
		return nil, ierr.NewError("user not found").
			WithHintf("No user with email %s", email).
			Mark(ierr.ErrNotFound)
	}
	return copyUser(users[0]), nil
}

func (s *InMemoryUserStore) Update(ctx context.Context, u *user.User) error {
	if _, err := s.GetByID(ctx, u.ID); err != nil {
		return err
	}
	return s.InMemoryStore.Update(ctx, u.ID, copyUser(u))
}

func (s *InMemoryUserStore) List(ctx context.Context) ([]*user.User, error) {
	return s.InMemoryStore.List(ctx, nil, func(ctx context.Context, u *user.User, _ interface{}) bool {
		return userInScope(ctx, u)
	}, func(i, j *user.User) bool {
		return i.CreatedAt.Before(j.CreatedAt)
	})
}
