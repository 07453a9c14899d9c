package staff

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/hms/hms/internal/platform/httperr"
)

type mockRepo struct {
	mu      sync.Mutex
	members map[uuid.UUID]*Member
}

func newMockRepo() *mockRepo { return &mockRepo{members: map[uuid.UUID]*Member{}} }

func (m *mockRepo) Create(ctx context.Context, mem *Member) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	mem.ID = uuid.New()
	mem.CreatedAt = time.Now()
	cp := *mem
	m.members[mem.ID] = &cp
	return nil
}

func (m *mockRepo) GetByID(ctx context.Context, id uuid.UUID) (*Member, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	mem, ok := m.members[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	cp := *mem
	return &cp, nil
}

func (m *mockRepo) List(ctx context.Context, limit, offset int) ([]*Member, int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var items []*Member
	for _, mem := range m.members {
		cp := *mem
		items = append(items, &cp)
	}
	return items, len(m.members), nil
}

func (m *mockRepo) Update(ctx context.Context, id uuid.UUID, p *Patch) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	mem, ok := m.members[id]
	if !ok {
		return pgx.ErrNoRows
	}
	if p.Name != nil {
		mem.Name = *p.Name
	}
	if p.Email != nil {
		mem.Email = p.Email
	}
	if p.Phone != nil {
		mem.Phone = p.Phone
	}
	if p.Role != nil {
		mem.Role = p.Role
	}
	if p.Department != nil {
		mem.Department = p.Department
	}
	return nil
}

func (m *mockRepo) Delete(ctx context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.members[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(m.members, id)
	return nil
}

func strPtr(s string) *string { return &s }

func TestCreate_RequiresName(t *testing.T) {
	svc := NewService(newMockRepo())

	if _, err := svc.Create(context.Background(), &Member{}); !httperr.IsKind(err, httperr.KindInvalidInput) {
		t.Fatalf("err = %v, want invalid input", err)
	}
}

func TestCreateGetRoundTrip(t *testing.T) {
	svc := NewService(newMockRepo())

	created, err := svc.Create(context.Background(), &Member{
		Name: "Sam", Department: strPtr("radiology"),
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	got, err := svc.Get(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Name != "Sam" || got.Department == nil || *got.Department != "radiology" {
		t.Fatalf("got %+v", got)
	}
}

func TestUpdate_MergePatch(t *testing.T) {
	svc := NewService(newMockRepo())

	created, err := svc.Create(context.Background(), &Member{
		Name: "Sam", Role: strPtr("nurse"),
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	got, err := svc.Update(context.Background(), created.ID, &Patch{Department: strPtr("icu")})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if got.Department == nil || *got.Department != "icu" {
		t.Fatalf("department = %v", got.Department)
	}
	if got.Role == nil || *got.Role != "nurse" {
		t.Fatalf("role = %v, untouched field must keep its value", got.Role)
	}
}

func TestDelete_NotFound(t *testing.T) {
	svc := NewService(newMockRepo())

	if err := svc.Delete(context.Background(), uuid.New()); !httperr.IsKind(err, httperr.KindNotFound) {
		t.Fatalf("err = %v, want not found", err)
	}
}
