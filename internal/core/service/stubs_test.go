package service

import (
	"context"
	"sort"
	"sync"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/Mirieri/nikonangombeghani-api/internal/core/domain"
)

var testHasher = NewBcryptHasher(bcrypt.MinCost)

type stubUserRepo struct {
	mu      sync.Mutex
	nextID  int64
	users   map[int64]*domain.User
	touched map[int64]time.Time
	getErr  error
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[int64]*domain.User), touched: make(map[int64]time.Time)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubUserRepo) Create(_ context.Context, in domain.NewUser) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Username == in.Username || u.Email == in.Email {
			return nil, domain.ErrIntegrity
		}
	}
	r.nextID++
	u := &domain.User{
		ID: r.nextID, Username: in.Username, Email: in.Email, PasswordHash: in.PasswordHash,
		Role: in.Role, Status: in.Status, Phone: in.Phone, Address: in.Address,
		CreatedAt: time.Now().UTC(),
	}
	r.users[u.ID] = u
	return cloneUser(u), nil
}

func (r *stubUserRepo) Get(_ context.Context, id int64) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.getErr != nil {
		return nil, r.getErr
	}
	u, ok := r.users[id]
	if !ok {
		return nil, domain.NotFound("user", id)
	}
	return cloneUser(u), nil
}

func (r *stubUserRepo) GetByUsername(_ context.Context, username string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.getErr != nil {
		return nil, r.getErr
	}
	for _, u := range r.users {
		if u.Username == username {
			return cloneUser(u), nil
		}
	}
	return nil, domain.NotFound("user", username)
}

func (r *stubUserRepo) List(_ context.Context, page domain.Page) ([]*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	ids := make([]int64, 0, len(r.users))
	for id := range r.users {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	out := []*domain.User{}
	for i := page.Offset; i < len(ids) && len(out) < page.Limit; i++ {
		out = append(out, cloneUser(r.users[ids[i]]))
	}
	return out, nil
}

func (r *stubUserRepo) Update(_ context.Context, id int64, c domain.UserChanges) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, domain.NotFound("user", id)
	}
	if c.Username != nil {
		u.Username = *c.Username
	}
	if c.Email != nil {
		u.Email = *c.Email
	}
	if c.PasswordHash != nil {
		u.PasswordHash = *c.PasswordHash
	}
	if c.Phone != nil {
		u.Phone = c.Phone
	}
	if c.Address != nil {
		u.Address = c.Address
	}
	if c.Status != nil {
		u.Status = *c.Status
	}
	last := time.Now().UTC()
	if c.LastLogin != nil {
		last = *c.LastLogin
	}
	u.LastLogin = &last
	return cloneUser(u), nil
}

func (r *stubUserRepo) Delete(_ context.Context, id int64) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, domain.NotFound("user", id)
	}
	delete(r.users, id)
	return u, nil
}

func (r *stubUserRepo) TouchLastLogin(_ context.Context, id int64, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.touched[id] = at
	return nil
}

// stubRepo is a generic in-memory repository. build turns a create input
// into an entity; apply merges a patch into one.
type stubRepo[E, C, P any] struct {
	mu      sync.Mutex
	rows    map[int64]*E
	nextID  int64
	build   func(id int64, in C) *E
	apply   func(e *E, p P)
	creates int
}

func newStubRepo[E, C, P any](build func(int64, C) *E, apply func(*E, P)) *stubRepo[E, C, P] {
	return &stubRepo[E, C, P]{rows: make(map[int64]*E), build: build, apply: apply}
}

func (r *stubRepo[E, C, P]) Create(_ context.Context, in C) (*E, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.creates++
	r.nextID++
	e := r.build(r.nextID, in)
	r.rows[r.nextID] = e
	clone := *e
	return &clone, nil
}

func (r *stubRepo[E, C, P]) Get(_ context.Context, id int64) (*E, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.rows[id]
	if !ok {
		return nil, domain.NotFound("row", id)
	}
	clone := *e
	return &clone, nil
}

func (r *stubRepo[E, C, P]) List(_ context.Context, page domain.Page) ([]*E, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []*E{}
	for id := int64(1); id <= r.nextID && len(out) < page.Limit; id++ {
		if e, ok := r.rows[id]; ok {
			clone := *e
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (r *stubRepo[E, C, P]) Update(_ context.Context, id int64, p P) (*E, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.rows[id]
	if !ok {
		return nil, domain.NotFound("row", id)
	}
	r.apply(e, p)
	clone := *e
	return &clone, nil
}

func (r *stubRepo[E, C, P]) Delete(_ context.Context, id int64) (*E, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.rows[id]
	if !ok {
		return nil, domain.NotFound("row", id)
	}
	delete(r.rows, id)
	return e, nil
}

func newStubCattleRepo() *stubRepo[domain.Cattle, domain.CattleCreate, domain.CattlePatch] {
	return newStubRepo(
		func(id int64, in domain.CattleCreate) *domain.Cattle {
			return &domain.Cattle{ID: id, UserID: in.UserID, Name: in.Name, Gender: in.Gender, Status: domain.CattleAvailable}
		},
		func(c *domain.Cattle, p domain.CattlePatch) {
			if p.Name != nil {
				c.Name = *p.Name
			}
			if p.Status != nil {
				c.Status = *p.Status
			}
		},
	)
}

func newStubMessageRepo() *stubRepo[domain.Message, domain.MessageCreate, struct{}] {
	return newStubRepo(
		func(id int64, in domain.MessageCreate) *domain.Message {
			return &domain.Message{ID: id, SenderID: &in.SenderID, ReceiverID: &in.ReceiverID, Content: in.Content, SentAt: time.Now()}
		},
		func(*domain.Message, struct{}) {},
	)
}

type stubNotificationRepo struct {
	*stubRepo[domain.Notification, domain.NotificationCreate, domain.NotificationPatch]
}

func newStubNotificationRepo() *stubNotificationRepo {
	return &stubNotificationRepo{newStubRepo(
		func(id int64, in domain.NotificationCreate) *domain.Notification {
			return &domain.Notification{ID: id, UserID: in.UserID, Message: in.Message, CreatedAt: time.Now()}
		},
		func(n *domain.Notification, p domain.NotificationPatch) {
			if p.Message != nil {
				n.Message = *p.Message
			}
			if p.ReadAt != nil {
				n.ReadAt = p.ReadAt
			}
		},
	)}
}

func (r *stubNotificationRepo) ListForUser(ctx context.Context, userID int64, page domain.Page) ([]*domain.Notification, error) {
	all, _ := r.List(ctx, domain.Page{Limit: domain.MaxPageLimit})
	out := []*domain.Notification{}
	for _, n := range all {
		if n.UserID == userID {
			out = append(out, n)
		}
	}
	return out, nil
}

func strPtr(s string) *string { return &s }
