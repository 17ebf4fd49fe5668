// Package memory provides map-backed repository implementations. They mirror
// the Postgres behavior the services depend on: "active" reads filter
// soft-deleted rows and misses surface as pgx.ErrNoRows. Intended for tests
// and local development without a database.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/community-service/internal/domain"
	"github.com/spec-kit/community-service/internal/repository"
)

// Members is an in-memory repository.MemberRepository.
type Members struct {
	mu   sync.Mutex
	rows map[string]*domain.Member
}

// NewMembers returns an empty member store.
func NewMembers() *Members {
	return &Members{rows: make(map[string]*domain.Member)}
}

func (m *Members) Create(_ context.Context, member *domain.Member) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	member.ID = uuid.NewString()
	member.CreatedAt = time.Now()
	member.UpdatedAt = member.CreatedAt
	clone := *member
	m.rows[member.ID] = &clone
	return nil
}

func (m *Members) GetActiveByID(_ context.Context, id string) (*domain.Member, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	member, ok := m.rows[id]
	if !ok || member.DeletedAt != nil {
		return nil, pgx.ErrNoRows
	}
	clone := *member
	return &clone, nil
}

func (m *Members) GetActiveByEmail(_ context.Context, email string) (*domain.Member, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, member := range m.rows {
		if member.Email == email && member.DeletedAt == nil {
			clone := *member
			return &clone, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (m *Members) ExistsActive(_ context.Context, id string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	member, ok := m.rows[id]
	return ok && member.DeletedAt == nil, nil
}

func (m *Members) UpdatePassword(_ context.Context, id, passwordHash string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	member, ok := m.rows[id]
	if !ok || member.DeletedAt != nil {
		return pgx.ErrNoRows
	}
	member.PasswordHash = passwordHash
	member.UpdatedAt = time.Now()
	return nil
}

func (m *Members) List(_ context.Context, limit, offset int) ([]domain.Member, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.Member
	for _, member := range m.rows {
		if member.DeletedAt == nil {
			out = append(out, *member)
		}
	}
	return out, nil
}

func (m *Members) SoftDelete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	member, ok := m.rows[id]
	if !ok || member.DeletedAt != nil {
		return pgx.ErrNoRows
	}
	now := time.Now()
	member.DeletedAt = &now
	return nil
}

// Moderators is an in-memory repository.ModeratorRepository.
type Moderators struct {
	mu   sync.Mutex
	rows map[string]*domain.Moderator
}

// NewModerators returns an empty moderator store.
func NewModerators() *Moderators {
	return &Moderators{rows: make(map[string]*domain.Moderator)}
}

func (m *Moderators) Create(_ context.Context, moderator *domain.Moderator) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	moderator.ID = uuid.NewString()
	moderator.CreatedAt = time.Now()
	moderator.UpdatedAt = moderator.CreatedAt
	clone := *moderator
	m.rows[moderator.ID] = &clone
	return nil
}

func (m *Moderators) GetActiveByID(_ context.Context, id string) (*domain.Moderator, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	moderator, ok := m.rows[id]
	if !ok || moderator.DeletedAt != nil {
		return nil, pgx.ErrNoRows
	}
	clone := *moderator
	return &clone, nil
}

func (m *Moderators) GetActiveByEmail(_ context.Context, email string) (*domain.Moderator, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, moderator := range m.rows {
		if moderator.Email == email && moderator.DeletedAt == nil {
			clone := *moderator
			return &clone, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (m *Moderators) ExistsActive(_ context.Context, id string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	moderator, ok := m.rows[id]
	return ok && moderator.DeletedAt == nil, nil
}

func (m *Moderators) UpdatePassword(_ context.Context, id, passwordHash string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	moderator, ok := m.rows[id]
	if !ok || moderator.DeletedAt != nil {
		return pgx.ErrNoRows
	}
	moderator.PasswordHash = passwordHash
	moderator.UpdatedAt = time.Now()
	return nil
}

func (m *Moderators) List(_ context.Context, includeRetired bool) ([]domain.Moderator, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.Moderator
	for _, moderator := range m.rows {
		if includeRetired || moderator.DeletedAt == nil {
			out = append(out, *moderator)
		}
	}
	return out, nil
}

func (m *Moderators) SoftDelete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	moderator, ok := m.rows[id]
	if !ok || moderator.DeletedAt != nil {
		return pgx.ErrNoRows
	}
	now := time.Now()
	moderator.DeletedAt = &now
	return nil
}

// Admins is an in-memory repository.AdminRepository. Admin accounts are
// provisioned out of band, so rows enter through Seed.
type Admins struct {
	mu   sync.Mutex
	rows map[string]*domain.Admin
}

// NewAdmins returns an empty admin store.
func NewAdmins() *Admins {
	return &Admins{rows: make(map[string]*domain.Admin)}
}

// Seed inserts an admin row, assigning an id when absent.
func (m *Admins) Seed(admin *domain.Admin) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if admin.ID == "" {
		admin.ID = uuid.NewString()
	}
	clone := *admin
	m.rows[admin.ID] = &clone
}

func (m *Admins) GetActiveByID(_ context.Context, id string) (*domain.Admin, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	admin, ok := m.rows[id]
	if !ok || admin.DeletedAt != nil {
		return nil, pgx.ErrNoRows
	}
	clone := *admin
	return &clone, nil
}

func (m *Admins) GetActiveByEmail(_ context.Context, email string) (*domain.Admin, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, admin := range m.rows {
		if admin.Email == email && admin.DeletedAt == nil {
			clone := *admin
			return &clone, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (m *Admins) ExistsActive(_ context.Context, id string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	admin, ok := m.rows[id]
	return ok && admin.DeletedAt == nil, nil
}

func (m *Admins) UpdatePassword(_ context.Context, id, passwordHash string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	admin, ok := m.rows[id]
	if !ok || admin.DeletedAt != nil {
		return pgx.ErrNoRows
	}
	admin.PasswordHash = passwordHash
	return nil
}

// Resets is an in-memory repository.PasswordResetRepository.
type Resets struct {
	mu   sync.Mutex
	rows map[string]*repository.PasswordResetToken
}

// NewResets returns an empty reset-token store.
func NewResets() *Resets {
	return &Resets{rows: make(map[string]*repository.PasswordResetToken)}
}

func (m *Resets) Create(_ context.Context, token *repository.PasswordResetToken) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	token.ID = uuid.NewString()
	token.CreatedAt = time.Now()
	clone := *token
	m.rows[token.ID] = &clone
	return nil
}

func (m *Resets) GetByToken(_ context.Context, token string) (*repository.PasswordResetToken, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, row := range m.rows {
		if row.Token == token {
			clone := *row
			return &clone, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (m *Resets) MarkUsed(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	row, ok := m.rows[id]
	if !ok {
		return pgx.ErrNoRows
	}
	now := time.Now()
	row.UsedAt = &now
	return nil
}

// Posts is an in-memory repository.PostRepository.
type Posts struct {
	mu   sync.Mutex
	rows map[string]*domain.Post
}

// NewPosts returns an empty post store.
func NewPosts() *Posts {
	return &Posts{rows: make(map[string]*domain.Post)}
}

func (m *Posts) Create(_ context.Context, post *domain.Post) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	post.ID = uuid.NewString()
	post.CreatedAt = time.Now()
	post.UpdatedAt = post.CreatedAt
	clone := *post
	m.rows[post.ID] = &clone
	return nil
}

func (m *Posts) GetByID(_ context.Context, id string) (*domain.Post, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	post, ok := m.rows[id]
	if !ok || post.DeletedAt != nil {
		return nil, pgx.ErrNoRows
	}
	clone := *post
	return &clone, nil
}

func (m *Posts) Update(_ context.Context, post *domain.Post) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	row, ok := m.rows[post.ID]
	if !ok || row.DeletedAt != nil {
		return pgx.ErrNoRows
	}
	row.Title = post.Title
	row.Body = post.Body
	row.UpdatedAt = time.Now()
	*post = *row
	return nil
}

func (m *Posts) SetStatus(_ context.Context, id string, status domain.PostStatus) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	post, ok := m.rows[id]
	if !ok || post.DeletedAt != nil {
		return pgx.ErrNoRows
	}
	post.Status = status
	return nil
}

func (m *Posts) SoftDelete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	post, ok := m.rows[id]
	if !ok || post.DeletedAt != nil {
		return pgx.ErrNoRows
	}
	now := time.Now()
	post.DeletedAt = &now
	return nil
}

func (m *Posts) ListByAuthor(_ context.Context, authorID string, limit, offset int) ([]domain.Post, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.Post
	for _, post := range m.rows {
		if post.AuthorID == authorID && post.DeletedAt == nil {
			out = append(out, *post)
		}
	}
	return out, nil
}

func (m *Posts) ListPublished(_ context.Context, limit, offset int) ([]domain.Post, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.Post
	for _, post := range m.rows {
		if post.Status == domain.PostStatusPublished && post.DeletedAt == nil {
			out = append(out, *post)
		}
	}
	return out, nil
}

var (
	_ repository.MemberRepository        = (*Members)(nil)
	_ repository.ModeratorRepository     = (*Moderators)(nil)
	_ repository.AdminRepository         = (*Admins)(nil)
	_ repository.PasswordResetRepository = (*Resets)(nil)
	_ repository.PostRepository          = (*Posts)(nil)
)
