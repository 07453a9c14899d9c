package patient

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
	mu       sync.Mutex
	patients map[uuid.UUID]*Patient
}

func newMockRepo() *mockRepo { return &mockRepo{patients: map[uuid.UUID]*Patient{}} }

func (m *mockRepo) Create(ctx context.Context, p *Patient) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	p.ID = uuid.New()
	p.CreatedAt = time.Now()
	cp := *p
	m.patients[p.ID] = &cp
	return nil
}

func (m *mockRepo) GetByID(ctx context.Context, id uuid.UUID) (*Patient, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.patients[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	cp := *p
	return &cp, nil
}

func (m *mockRepo) ExistsByID(ctx context.Context, id uuid.UUID) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.patients[id]
	return ok, nil
}

func (m *mockRepo) List(ctx context.Context, limit, offset int) ([]*Patient, int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var items []*Patient
	for _, p := range m.patients {
		cp := *p
		items = append(items, &cp)
	}
	return items, len(m.patients), nil
}

func (m *mockRepo) Update(ctx context.Context, id uuid.UUID, p *Patch) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	existing, ok := m.patients[id]
	if !ok {
		return pgx.ErrNoRows
	}
	if p.Name != nil {
		existing.Name = p.Name
	}
	if p.Age != nil {
		existing.Age = p.Age
	}
	if p.Gender != nil {
		existing.Gender = p.Gender
	}
	if p.Phone != nil {
		existing.Phone = p.Phone
	}
	if p.Address != nil {
		existing.Address = p.Address
	}
	return nil
}

func (m *mockRepo) Delete(ctx context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.patients[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(m.patients, id)
	return nil
}

func strPtr(s string) *string { return &s }
func intPtr(i int) *int       { return &i }

func TestCreate_RequiresName(t *testing.T) {
	svc := NewService(newMockRepo())

	if _, err := svc.Create(context.Background(), &Patient{}); !httperr.IsKind(err, httperr.KindInvalidInput) {
		t.Fatalf("err = %v, want invalid input", err)
	}
}

func TestCreate_RejectsNegativeAge(t *testing.T) {
	svc := NewService(newMockRepo())

	_, err := svc.Create(context.Background(), &Patient{Name: strPtr("Ana"), Age: intPtr(-1)})
	if !httperr.IsKind(err, httperr.KindInvalidInput) {
		t.Fatalf("err = %v, want invalid input", err)
	}
}

func TestCreateGetRoundTrip(t *testing.T) {
	svc := NewService(newMockRepo())

	created, err := svc.Create(context.Background(), &Patient{
		Name: strPtr("Ana"), Age: intPtr(34), Gender: strPtr("female"),
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	got, err := svc.Get(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Name == nil || *got.Name != "Ana" || got.Age == nil || *got.Age != 34 {
		t.Fatalf("got %+v", got)
	}
}

func TestGet_NotFound(t *testing.T) {
	svc := NewService(newMockRepo())

	if _, err := svc.Get(context.Background(), uuid.New()); !httperr.IsKind(err, httperr.KindNotFound) {
		t.Fatalf("err = %v, want not found", err)
	}
}

func TestUpdate_MergePatch(t *testing.T) {
	svc := NewService(newMockRepo())

	created, err := svc.Create(context.Background(), &Patient{
		Name: strPtr("Ana"), Phone: strPtr("555-0101"),
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	got, err := svc.Update(context.Background(), created.ID, &Patch{Phone: strPtr("555-0202")})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if got.Phone == nil || *got.Phone != "555-0202" {
		t.Fatalf("phone = %v, want 555-0202", got.Phone)
	}
	if got.Name == nil || *got.Name != "Ana" {
		t.Fatalf("name = %v, untouched field must keep its value", got.Name)
	}
}

func TestDelete_NotFound(t *testing.T) {
	svc := NewService(newMockRepo())

	if err := svc.Delete(context.Background(), uuid.New()); !httperr.IsKind(err, httperr.KindNotFound) {
		t.Fatalf("err = %v, want not found", err)
	}
}

func TestCreateFromRegistration(t *testing.T) {
	repo := newMockRepo()
	svc := NewService(repo)

	userID := uuid.New()
	if err := svc.CreateFromRegistration(context.Background(), userID, strPtr("Bo")); err != nil {
		t.Fatalf("CreateFromRegistration: %v", err)
	}

	items, total, err := repo.List(context.Background(), 10, 0)
	if err != nil || total != 1 {
		t.Fatalf("List: %v, total = %d", err, total)
	}
	if items[0].UserID == nil || *items[0].UserID != userID {
		t.Fatalf("user_id = %v, want %s", items[0].UserID, userID)
	}
}
