package test

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	domainErrors "github.com/polkiloo/deeshop/internal/domain/errors"
	"github.com/polkiloo/deeshop/internal/domain/model"
)

// UserRepositoryStub stores users in-memory for tests.
type UserRepositoryStub struct {
	Users map[string]*model.User
	ByID  map[int64]*model.User
	Next  int64
	Err   error
}

func NewUserRepositoryStub() *UserRepositoryStub {
	return &UserRepositoryStub{
		Users: make(map[string]*model.User),
		ByID:  make(map[int64]*model.User),
		Next:  1,
	}
}

func (s *UserRepositoryStub) Create(_ context.Context, name, email, passwordHash string) (*model.User, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if _, exists := s.Users[email]; exists {
		return nil, domainErrors.ErrAlreadyExists
	}
	if s.Next == 0 {
		s.Next = 1
	}
	user := &model.User{ID: s.Next, Name: name, Email: email, PasswordHash: passwordHash, Role: model.RoleCustomer, CreatedAt: time.Now()}
	s.Next++
	s.Users[email] = user
	s.ByID[user.ID] = user
	return user, nil
}

func (s *UserRepositoryStub) GetByEmail(_ context.Context, email string) (*model.User, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if user, ok := s.Users[email]; ok {
		return user, nil
	}
	return nil, domainErrors.ErrNotFound
}

func (s *UserRepositoryStub) GetByID(_ context.Context, id int64) (*model.User, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if user, ok := s.ByID[id]; ok {
		return user, nil
	}
	return nil, domainErrors.ErrNotFound
}

func (s *UserRepositoryStub) SetRole(_ context.Context, email string, role model.Role) error {
	if s.Err != nil {
		return s.Err
	}
	user, ok := s.Users[email]
	if !ok {
		return domainErrors.ErrNotFound
	}
	user.Role = role
	return nil
}

// OrderCreateCall captures one OrderRepositoryStub.Create invocation.
type OrderCreateCall struct {
	Order        model.Order
	Confirmation *model.Notification
}

// OrderStatusCall captures one OrderRepositoryStub.UpdateStatus invocation.
type OrderStatusCall struct {
	ID     uuid.UUID
	Status model.OrderStatus
}

// OrderRepositoryStub keeps orders in memory; Fn fields override behaviour.
type OrderRepositoryStub struct {
	CreateFn       func(context.Context, *model.Order, *model.Notification) (*model.Order, error)
	UpdateStatusFn func(context.Context, uuid.UUID, model.OrderStatus) error
	ListErr        error

	Orders      []model.Order
	Created     []OrderCreateCall
	StatusCalls []OrderStatusCall
}

func (s *OrderRepositoryStub) Create(ctx context.Context, order *model.Order, confirmation *model.Notification) (*model.Order, error) {
	s.Created = append(s.Created, OrderCreateCall{Order: *order, Confirmation: confirmation})
	if s.CreateFn != nil {
		return s.CreateFn(ctx, order, confirmation)
	}
	created := *order
	if created.ID == uuid.Nil {
		created.ID = uuid.New()
	}
	created.CreatedAt = time.Now()
	created.UpdatedAt = created.CreatedAt
	s.Orders = append(s.Orders, created)
	return &created, nil
}

func (s *OrderRepositoryStub) GetByID(_ context.Context, id uuid.UUID) (*model.Order, error) {
	for _, o := range s.Orders {
		if o.ID == id {
			order := o
			return &order, nil
		}
	}
	return nil, domainErrors.ErrNotFound
}

func (s *OrderRepositoryStub) ListAll(context.Context) ([]model.Order, error) {
	if s.ListErr != nil {
		return nil, s.ListErr
	}
	return newestFirst(s.Orders, func(model.Order) bool { return true }), nil
}

func (s *OrderRepositoryStub) ListByUser(_ context.Context, userID int64) ([]model.Order, error) {
	if s.ListErr != nil {
		return nil, s.ListErr
	}
	return newestFirst(s.Orders, func(o model.Order) bool { return o.UserID == userID }), nil
}

func (s *OrderRepositoryStub) UpdateStatus(ctx context.Context, id uuid.UUID, status model.OrderStatus) error {
	s.StatusCalls = append(s.StatusCalls, OrderStatusCall{ID: id, Status: status})
	if s.UpdateStatusFn != nil {
		return s.UpdateStatusFn(ctx, id, status)
	}
	for i := range s.Orders {
		if s.Orders[i].ID == id {
			s.Orders[i].Status = status
			s.Orders[i].UpdatedAt = time.Now()
			return nil
		}
	}
	return domainErrors.ErrNotFound
}

func newestFirst(orders []model.Order, keep func(model.Order) bool) []model.Order {
	out := make([]model.Order, 0, len(orders))
	for _, o := range orders {
		if keep(o) {
			out = append(out, o)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

// ProductRepositoryStub keeps products in memory.
type ProductRepositoryStub struct {
	Products map[uuid.UUID]model.Product
	Err      error
}

func NewProductRepositoryStub(products ...model.Product) *ProductRepositoryStub {
	s := &ProductRepositoryStub{Products: make(map[uuid.UUID]model.Product, len(products))}
	for _, p := range products {
		s.Products[p.ID] = p
	}
	return s
}

func (s *ProductRepositoryStub) Create(_ context.Context, product *model.Product) (*model.Product, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	created := *product
	if created.ID == uuid.Nil {
		created.ID = uuid.New()
	}
	created.CreatedAt = time.Now()
	s.Products[created.ID] = created
	return &created, nil
}

func (s *ProductRepositoryStub) GetByID(_ context.Context, id uuid.UUID) (*model.Product, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if p, ok := s.Products[id]; ok {
		return &p, nil
	}
	return nil, domainErrors.ErrNotFound
}

func (s *ProductRepositoryStub) GetByIDs(_ context.Context, ids []uuid.UUID) ([]model.Product, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	var out []model.Product
	for _, id := range ids {
		if p, ok := s.Products[id]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

func (s *ProductRepositoryStub) List(context.Context) ([]model.Product, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	out := make([]model.Product, 0, len(s.Products))
	for _, p := range s.Products {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

// NotificationFailure records a MarkFailed call.
type NotificationFailure struct {
	ID          int64
	Reason      string
	MaxAttempts int
}

// NotificationRepositoryStub serves queued batches and records outcomes.
type NotificationRepositoryStub struct {
	mu       sync.Mutex
	Batches  [][]model.Notification
	ClaimErr error
	MarkErr  error
	Sent     []int64
	Failed   []NotificationFailure
}

func (s *NotificationRepositoryStub) ClaimBatch(context.Context, int) ([]model.Notification, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ClaimErr != nil {
		return nil, s.ClaimErr
	}
	if len(s.Batches) == 0 {
		return nil, nil
	}
	batch := s.Batches[0]
	s.Batches = s.Batches[1:]
	return batch, nil
}

func (s *NotificationRepositoryStub) MarkSent(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.MarkErr != nil {
		return s.MarkErr
	}
	s.Sent = append(s.Sent, id)
	return nil
}

func (s *NotificationRepositoryStub) MarkFailed(_ context.Context, id int64, reason string, maxAttempts int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.MarkErr != nil {
		return s.MarkErr
	}
	s.Failed = append(s.Failed, NotificationFailure{ID: id, Reason: reason, MaxAttempts: maxAttempts})
	return nil
}
