package doctor

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
	doctors map[uuid.UUID]*Doctor
}

func newMockRepo() *mockRepo { return &mockRepo{doctors: map[uuid.UUID]*Doctor{}} }

func (m *mockRepo) Create(ctx context.Context, d *Doctor) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	d.ID = uuid.New()
	d.CreatedAt = time.Now()
	cp := *d
	m.doctors[d.ID] = &cp
	return nil
}

func (m *mockRepo) GetByID(ctx context.Context, id uuid.UUID) (*Doctor, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	d, ok := m.doctors[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	cp := *d
	return &cp, nil
}

func (m *mockRepo) ExistsByID(ctx context.Context, id uuid.UUID) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.doctors[id]
	return ok, nil
}

func (m *mockRepo) List(ctx context.Context, limit, offset int) ([]*Doctor, int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var items []*Doctor
	for _, d := range m.doctors {
		cp := *d
		items = append(items, &cp)
	}
	return items, len(m.doctors), nil
}

func (m *mockRepo) Update(ctx context.Context, id uuid.UUID, p *Patch) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	d, ok := m.doctors[id]
	if !ok {
		return pgx.ErrNoRows
	}
	if p.Name != nil {
		d.Name = *p.Name
	}
	if p.Email != nil {
		d.Email = p.Email
	}
	if p.Phone != nil {
		d.Phone = p.Phone
	}
	if p.Specialty != nil {
		d.Specialty = p.Specialty
	}
	if p.Qualifications != nil {
		d.Qualifications = p.Qualifications
	}
	if p.Bio != nil {
		d.Bio = p.Bio
	}
	return nil
}

func (m *mockRepo) Delete(ctx context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.doctors[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(m.doctors, id)
	return nil
}

func strPtr(s string) *string { return &s }

func TestCreate_RequiresName(t *testing.T) {
	svc := NewService(newMockRepo())

	if _, err := svc.Create(context.Background(), &Doctor{}); !httperr.IsKind(err, httperr.KindInvalidInput) {
		t.Fatalf("err = %v, want invalid input", err)
	}
}

func TestCreateGetRoundTrip(t *testing.T) {
	svc := NewService(newMockRepo())

	created, err := svc.Create(context.Background(), &Doctor{
		Name: "Dr. Gray", Specialty: strPtr("cardiology"),
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	got, err := svc.Get(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Name != "Dr. Gray" || got.Specialty == nil || *got.Specialty != "cardiology" {
		t.Fatalf("got %+v", got)
	}
}

func TestUpdate_MergePatch(t *testing.T) {
	svc := NewService(newMockRepo())

	created, err := svc.Create(context.Background(), &Doctor{
		Name: "Dr. Gray", Phone: strPtr("555-0101"),
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	got, err := svc.Update(context.Background(), created.ID, &Patch{Specialty: strPtr("neurology")})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if got.Specialty == nil || *got.Specialty != "neurology" {
		t.Fatalf("specialty = %v", got.Specialty)
	}
	if got.Phone == nil || *got.Phone != "555-0101" {
		t.Fatalf("phone = %v, untouched field must keep its value", got.Phone)
	}
}

func TestUpdate_RejectsEmptyName(t *testing.T) {
	svc := NewService(newMockRepo())

	created, err := svc.Create(context.Background(), &Doctor{Name: "Dr. Gray"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if _, err := svc.Update(context.Background(), created.ID, &Patch{Name: strPtr("")}); !httperr.IsKind(err, httperr.KindInvalidInput) {
		t.Fatalf("err = %v, want invalid input", err)
	}
}

func TestDelete_NotFound(t *testing.T) {
	svc := NewService(newMockRepo())

	if err := svc.Delete(context.Background(), uuid.New()); !httperr.IsKind(err, httperr.KindNotFound) {
		t.Fatalf("err = %v, want not found", err)
	}
}
