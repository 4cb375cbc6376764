package test

import (
	"context"
	"errors"

	domainErrors "github.com/polkiloo/deeshop/internal/domain/errors"
	"github.com/polkiloo/deeshop/internal/domain/model"
	pkgAuth "github.com/polkiloo/deeshop/internal/pkg/auth"
)

// HasherStub provides deterministic hashing for tests.
type HasherStub struct {
	HashFn    func(string) (string, error)
	CompareFn func(string, string) error
}

func (h HasherStub) Hash(password string) (string, error) {
	if h.HashFn != nil {
		return h.HashFn(password)
	}
	return "hash:" + password, nil
}

func (h HasherStub) Compare(hash string, password string) error {
	if h.CompareFn != nil {
		return h.CompareFn(hash, password)
	}
	if hash != "hash:"+password {
		return errors.New("mismatch")
	}
	return nil
}

// StrategyStub issues and parses tokens via function overrides.
type StrategyStub struct {
	IssueFn func(int64) (string, error)
	ParseFn func(string) (int64, error)
	NameVal string
}

func (s StrategyStub) IssueToken(userID int64) (string, error) {
	if s.IssueFn != nil {
		return s.IssueFn(userID)
	}
	return "token", nil
}

func (s StrategyStub) ParseToken(token string) (int64, error) {
	if s.ParseFn != nil {
		return s.ParseFn(token)
	}
	return 1, nil
}

func (s StrategyStub) Name() string {
	if s.NameVal != "" {
		return s.NameVal
	}
	return "stub"
}

// SessionResolverStub resolves every token to a fixed user unless overridden.
type SessionResolverStub struct {
	User     *model.User
	ParseErr error
	UserErr  error
	ParseFn  func(string) (int64, error)
}

func (s SessionResolverStub) ParseToken(token string) (int64, error) {
	if s.ParseFn != nil {
		return s.ParseFn(token)
	}
	if s.ParseErr != nil {
		return 0, s.ParseErr
	}
	if s.User != nil {
		return s.User.ID, nil
	}
	return 1, nil
}

func (s SessionResolverStub) CurrentUser(_ context.Context, userID int64) (*model.User, error) {
	if s.UserErr != nil {
		return nil, s.UserErr
	}
	if s.User != nil {
		return s.User, nil
	}
	if userID == 0 {
		return nil, domainErrors.ErrNotFound
	}
	return &model.User{ID: userID, Name: "Customer", Email: "customer@example.com", Role: model.RoleCustomer}, nil
}

// Customer and Admin are ready-made accounts for HTTP tests.
var (
	Customer = &model.User{ID: 7, Name: "Dee", Email: "dee@example.com", Role: model.RoleCustomer}
	Admin    = &model.User{ID: 1, Name: "Boss", Email: "boss@example.com", Role: model.RoleAdmin}
)

var _ pkgAuth.PasswordHasher = HasherStub{}
var _ pkgAuth.Strategy = StrategyStub{}
