package room

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hms/hms/internal/platform/db"
)

type queryable interface {
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
	Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error)
}

type repoPG struct{ pool *pgxpool.Pool }

func NewRepoPG(pool *pgxpool.Pool) Repository {
	return &repoPG{pool: pool}
}

func (r *repoPG) conn(ctx context.Context) queryable {
	if tx := db.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.pool
}

const roomCols = `id, room_number, ward, bed_label, room_type, notes, status,
	current_patient_id, current_assignment_id, created_at, updated_at`

func (r *repoPG) scan(row pgx.Row) (*Room, error) {
	var rm Room
	err := row.Scan(&rm.ID, &rm.RoomNumber, &rm.Ward, &rm.BedLabel, &rm.RoomType, &rm.Notes,
		&rm.Status, &rm.CurrentPatientID, &rm.CurrentAssignmentID, &rm.CreatedAt, &rm.UpdatedAt)
	return &rm, err
}

func (r *repoPG) Create(ctx context.Context, rm *Room) error {
	rm.ID = uuid.New()
	rm.Status = StatusFree
	return r.conn(ctx).QueryRow(ctx, `
		INSERT INTO rooms (id, room_number, ward, bed_label, room_type, notes, status)
		VALUES ($1,$2,$3,$4,$5,$6,$7)
		RETURNING created_at, updated_at`,
		rm.ID, rm.RoomNumber, rm.Ward, rm.BedLabel, rm.RoomType, rm.Notes, rm.Status).
		Scan(&rm.CreatedAt, &rm.UpdatedAt)
}

func (r *repoPG) GetByID(ctx context.Context, id uuid.UUID) (*Room, error) {
	return r.scan(r.conn(ctx).QueryRow(ctx, `SELECT `+roomCols+` FROM rooms WHERE id = $1`, id))
}

func (r *repoPG) GetForUpdate(ctx context.Context, id uuid.UUID) (*Room, error) {
	return r.scan(r.conn(ctx).QueryRow(ctx,
		`SELECT `+roomCols+` FROM rooms WHERE id = $1 FOR UPDATE`, id))
}

func (r *repoPG) List(ctx context.Context, limit, offset int) ([]*WithPatient, int, error) {
	var total int
	if err := r.conn(ctx).QueryRow(ctx, `SELECT COUNT(*) FROM rooms`).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.conn(ctx).Query(ctx, `
		SELECT r.id, r.room_number, r.ward, r.bed_label, r.room_type, r.notes, r.status,
		       r.current_patient_id, r.current_assignment_id, r.created_at, r.updated_at,
		       p.name AS current_patient_name
		FROM rooms r
		LEFT JOIN patients p ON p.id = r.current_patient_id
		ORDER BY r.room_number
		LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var items []*WithPatient
	for rows.Next() {
		var w WithPatient
		if err := rows.Scan(&w.ID, &w.RoomNumber, &w.Ward, &w.BedLabel, &w.RoomType, &w.Notes,
			&w.Status, &w.CurrentPatientID, &w.CurrentAssignmentID, &w.CreatedAt, &w.UpdatedAt,
			&w.CurrentPatientName); err != nil {
			return nil, 0, err
		}
		items = append(items, &w)
	}
	return items, total, rows.Err()
}

func (r *repoPG) Update(ctx context.Context, id uuid.UUID, p *Patch) error {
	tag, err := r.conn(ctx).Exec(ctx, `
		UPDATE rooms SET
			room_number = COALESCE($2, room_number),
			ward        = COALESCE($3, ward),
			bed_label   = COALESCE($4, bed_label),
			room_type   = COALESCE($5, room_type),
			notes       = COALESCE($6, notes),
			updated_at  = now()
		WHERE id = $1`,
		id, p.RoomNumber, p.Ward, p.BedLabel, p.RoomType, p.Notes)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *repoPG) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.conn(ctx).Exec(ctx, `DELETE FROM rooms WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *repoPG) SetOccupied(ctx context.Context, roomID, patientID, assignmentID uuid.UUID) error {
	_, err := r.conn(ctx).Exec(ctx, `
		UPDATE rooms SET status = $2, current_patient_id = $3, current_assignment_id = $4,
			updated_at = now()
		WHERE id = $1`,
		roomID, StatusOccupied, patientID, assignmentID)
	return err
}

func (r *repoPG) SetFree(ctx context.Context, roomID uuid.UUID) error {
	_, err := r.conn(ctx).Exec(ctx, `
		UPDATE rooms SET status = $2, current_patient_id = NULL, current_assignment_id = NULL,
			updated_at = now()
		WHERE id = $1`,
		roomID, StatusFree)
	return err
}

// IsUniqueViolation reports a Postgres unique constraint violation,
// raised when a (ward, room_number) pair already exists.
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

type assignmentRepoPG struct{ pool *pgxpool.Pool }

func NewAssignmentRepoPG(pool *pgxpool.Pool) AssignmentRepository {
	return &assignmentRepoPG{pool: pool}
}

func (r *assignmentRepoPG) conn(ctx context.Context) queryable {
	if tx := db.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.pool
}

func (r *assignmentRepoPG) Insert(ctx context.Context, a *Assignment) error {
	a.ID = uuid.New()
	return r.conn(ctx).QueryRow(ctx, `
		INSERT INTO room_assignments (id, room_id, patient_id, assigned_by, reason, admitted_at)
		VALUES ($1,$2,$3,$4,$5,now())
		RETURNING admitted_at, created_at`,
		a.ID, a.RoomID, a.PatientID, a.AssignedBy, a.Reason).Scan(&a.AdmittedAt, &a.CreatedAt)
}

func (r *assignmentRepoPG) StampVacated(ctx context.Context, id uuid.UUID) error {
	_, err := r.conn(ctx).Exec(ctx,
		`UPDATE room_assignments SET vacated_at = now() WHERE id = $1`, id)
	return err
}

func (r *assignmentRepoPG) ListRecent(ctx context.Context, limit int) ([]*AssignmentDetail, error) {
	rows, err := r.conn(ctx).Query(ctx, `
		SELECT ra.id, ra.room_id, ra.patient_id, ra.assigned_by, ra.reason,
		       ra.admitted_at, ra.vacated_at, ra.created_at,
		       r.room_number, p.name AS patient_name
		FROM room_assignments ra
		LEFT JOIN rooms r ON r.id = ra.room_id
		LEFT JOIN patients p ON p.id = ra.patient_id
		ORDER BY ra.admitted_at DESC
		LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []*AssignmentDetail
	for rows.Next() {
		var d AssignmentDetail
		if err := rows.Scan(&d.ID, &d.RoomID, &d.PatientID, &d.AssignedBy, &d.Reason,
			&d.AdmittedAt, &d.VacatedAt, &d.CreatedAt, &d.RoomNumber, &d.PatientName); err != nil {
			return nil, err
		}
		items = append(items, &d)
	}
	return items, rows.Err()
}
