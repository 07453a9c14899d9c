package appointment

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
	mu           sync.Mutex
	appointments map[uuid.UUID]*Appointment
}

func newMockRepo() *mockRepo { return &mockRepo{appointments: map[uuid.UUID]*Appointment{}} }

func (m *mockRepo) Create(ctx context.Context, a *Appointment) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	a.ID = uuid.New()
	a.CreatedAt = time.Now()
	a.UpdatedAt = a.CreatedAt
	cp := *a
	m.appointments[a.ID] = &cp
	return nil
}

func (m *mockRepo) GetByID(ctx context.Context, id uuid.UUID) (*Appointment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.appointments[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	cp := *a
	return &cp, nil
}

func (m *mockRepo) List(ctx context.Context, limit, offset int) ([]*Detail, int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var items []*Detail
	for _, a := range m.appointments {
		items = append(items, &Detail{Appointment: *a})
	}
	return items, len(m.appointments), nil
}

func (m *mockRepo) Update(ctx context.Context, id uuid.UUID, p *Patch) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.appointments[id]
	if !ok {
		return pgx.ErrNoRows
	}
	if p.PatientID != nil {
		a.PatientID = p.PatientID
	}
	if p.DoctorID != nil {
		a.DoctorID = p.DoctorID
	}
	if p.Datetime != nil {
		a.Datetime = p.Datetime
	}
	if p.Status != nil {
		a.Status = *p.Status
	}
	if p.Notes != nil {
		a.Notes = p.Notes
	}
	return nil
}

func (m *mockRepo) Delete(ctx context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.appointments[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(m.appointments, id)
	return nil
}

type mockDirectory struct {
	mu  sync.Mutex
	ids map[uuid.UUID]bool
}

func newMockDirectory() *mockDirectory { return &mockDirectory{ids: map[uuid.UUID]bool{}} }

func (m *mockDirectory) ExistsByID(ctx context.Context, id uuid.UUID) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.ids[id], nil
}

func (m *mockDirectory) add() uuid.UUID {
	m.mu.Lock()
	defer m.mu.Unlock()
	id := uuid.New()
	m.ids[id] = true
	return id
}

type fixture struct {
	svc      *Service
	patients *mockDirectory
	doctors  *mockDirectory
}

func newFixture() *fixture {
	patients := newMockDirectory()
	doctors := newMockDirectory()
	return &fixture{
		svc:      NewService(newMockRepo(), patients, doctors),
		patients: patients,
		doctors:  doctors,
	}
}

func uuidPtr(id uuid.UUID) *uuid.UUID { return &id }
func timePtr(t time.Time) *time.Time  { return &t }
func strPtr(s string) *string         { return &s }

func TestCreate_DefaultsStatus(t *testing.T) {
	f := newFixture()

	a, err := f.svc.Create(context.Background(), Input{})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if a.Status != "scheduled" {
		t.Fatalf("status = %q, want scheduled", a.Status)
	}
}

func TestCreate_NormalizesTimestampFields(t *testing.T) {
	f := newFixture()
	when := time.Date(2026, 9, 1, 10, 30, 0, 0, time.UTC)

	cases := []struct {
		name string
		in   Input
	}{
		{"datetime field", Input{Datetime: timePtr(when)}},
		{"appointment_date field", Input{AppointmentDate: timePtr(when)}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			a, err := f.svc.Create(context.Background(), tc.in)
			if err != nil {
				t.Fatalf("Create: %v", err)
			}
			if a.Datetime == nil || !a.Datetime.Equal(when) {
				t.Fatalf("datetime = %v, want %v", a.Datetime, when)
			}
		})
	}
}

func TestCreate_PrefersDatetimeOverAppointmentDate(t *testing.T) {
	f := newFixture()
	primary := time.Date(2026, 9, 1, 10, 30, 0, 0, time.UTC)
	secondary := primary.Add(24 * time.Hour)

	a, err := f.svc.Create(context.Background(), Input{
		Datetime:        timePtr(primary),
		AppointmentDate: timePtr(secondary),
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if a.Datetime == nil || !a.Datetime.Equal(primary) {
		t.Fatalf("datetime = %v, want %v", a.Datetime, primary)
	}
}

func TestCreate_ValidatesReferences(t *testing.T) {
	f := newFixture()

	_, err := f.svc.Create(context.Background(), Input{PatientID: uuidPtr(uuid.New())})
	if !httperr.IsKind(err, httperr.KindInvalidReference) {
		t.Fatalf("unknown patient err = %v, want invalid reference", err)
	}

	_, err = f.svc.Create(context.Background(), Input{DoctorID: uuidPtr(uuid.New())})
	if !httperr.IsKind(err, httperr.KindInvalidReference) {
		t.Fatalf("unknown doctor err = %v, want invalid reference", err)
	}

	if _, err := f.svc.Create(context.Background(), Input{
		PatientID: uuidPtr(f.patients.add()),
		DoctorID:  uuidPtr(f.doctors.add()),
	}); err != nil {
		t.Fatalf("valid refs should pass, got %v", err)
	}
}

func TestUpdate_MergePatch(t *testing.T) {
	f := newFixture()
	when := time.Date(2026, 9, 1, 10, 30, 0, 0, time.UTC)

	a, err := f.svc.Create(context.Background(), Input{
		Datetime: timePtr(when), Notes: strPtr("first visit"),
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	got, err := f.svc.Update(context.Background(), a.ID, Input{Status: strPtr("completed")})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if got.Status != "completed" {
		t.Fatalf("status = %q, want completed", got.Status)
	}
	if got.Datetime == nil || !got.Datetime.Equal(when) {
		t.Fatalf("datetime = %v, untouched field must keep its value", got.Datetime)
	}
	if got.Notes == nil || *got.Notes != "first visit" {
		t.Fatalf("notes = %v, untouched field must keep its value", got.Notes)
	}
}

func TestUpdate_NotFound(t *testing.T) {
	f := newFixture()

	if _, err := f.svc.Update(context.Background(), uuid.New(), Input{}); !httperr.IsKind(err, httperr.KindNotFound) {
		t.Fatalf("err = %v, want not found", err)
	}
}

func TestDelete_NotFound(t *testing.T) {
	f := newFixture()

	if err := f.svc.Delete(context.Background(), uuid.New()); !httperr.IsKind(err, httperr.KindNotFound) {
		t.Fatalf("err = %v, want not found", err)
	}
}
