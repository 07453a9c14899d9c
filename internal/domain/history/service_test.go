package history

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/hms/hms/internal/platform/httperr"
)

type mockRepo struct {
	mu      sync.Mutex
	entries []*Entry
}

func (m *mockRepo) Insert(ctx context.Context, e *Entry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	e.ID = uuid.New()
	e.CreatedAt = time.Now()
	cp := *e
	m.entries = append(m.entries, &cp)
	return nil
}

func (m *mockRepo) List(ctx context.Context, patientID *uuid.UUID, limit int) ([]*Entry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var items []*Entry
	for _, e := range m.entries {
		if patientID != nil && e.PatientID != *patientID {
			continue
		}
		cp := *e
		items = append(items, &cp)
	}
	return items, nil
}

type mockPatients struct {
	ids map[uuid.UUID]bool
}

func (m *mockPatients) ExistsByID(ctx context.Context, id uuid.UUID) (bool, error) {
	return m.ids[id], nil
}

func strPtr(s string) *string { return &s }

func TestCreate_RequiresPatientID(t *testing.T) {
	svc := NewService(&mockRepo{}, &mockPatients{ids: map[uuid.UUID]bool{}})

	_, err := svc.Create(context.Background(), CreateInput{}, uuid.New())
	if !httperr.IsKind(err, httperr.KindInvalidInput) {
		t.Fatalf("err = %v, want invalid input", err)
	}
}

func TestCreate_UnknownPatient(t *testing.T) {
	svc := NewService(&mockRepo{}, &mockPatients{ids: map[uuid.UUID]bool{}})

	_, err := svc.Create(context.Background(), CreateInput{PatientID: uuid.New()}, uuid.New())
	if !httperr.IsKind(err, httperr.KindInvalidReference) {
		t.Fatalf("err = %v, want invalid reference", err)
	}
}

func TestCreate_RecordsCallerAndDefaultsType(t *testing.T) {
	patientID := uuid.New()
	svc := NewService(&mockRepo{}, &mockPatients{ids: map[uuid.UUID]bool{patientID: true}})
	callerID := uuid.New()

	e, err := svc.Create(context.Background(), CreateInput{
		PatientID: patientID, Title: strPtr("admission"),
	}, callerID)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if e.RecordedBy != callerID {
		t.Fatalf("recorded_by = %s, want %s", e.RecordedBy, callerID)
	}
	if e.RecordType != "note" {
		t.Fatalf("record_type = %q, want note", e.RecordType)
	}
}

func TestList_FiltersByPatient(t *testing.T) {
	p1, p2 := uuid.New(), uuid.New()
	svc := NewService(&mockRepo{}, &mockPatients{ids: map[uuid.UUID]bool{p1: true, p2: true}})

	if _, err := svc.Create(context.Background(), CreateInput{PatientID: p1}, uuid.New()); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := svc.Create(context.Background(), CreateInput{PatientID: p2}, uuid.New()); err != nil {
		t.Fatalf("Create: %v", err)
	}

	items, err := svc.List(context.Background(), &p1, 10)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(items) != 1 || items[0].PatientID != p1 {
		t.Fatalf("items = %+v, want only entries for %s", items, p1)
	}

	all, err := svc.List(context.Background(), nil, 10)
	if err != nil {
		t.Fatalf("List all: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("len(all) = %d, want 2", len(all))
	}
}
