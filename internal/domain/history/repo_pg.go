package history

import (
	"context"

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

const entryCols = `id, patient_id, appointment_id, recorded_by, record_type, title, body, tags, created_at`

func (r *repoPG) Insert(ctx context.Context, e *Entry) error {
	e.ID = uuid.New()
	return r.conn(ctx).QueryRow(ctx, `
		INSERT INTO patient_history (id, patient_id, appointment_id, recorded_by, record_type, title, body, tags)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
		RETURNING created_at`,
		e.ID, e.PatientID, e.AppointmentID, e.RecordedBy, e.RecordType, e.Title, e.Body, e.Tags).
		Scan(&e.CreatedAt)
}

func (r *repoPG) List(ctx context.Context, patientID *uuid.UUID, limit int) ([]*Entry, error) {
	var (
		rows pgx.Rows
		err  error
	)
	if patientID != nil {
		rows, err = r.conn(ctx).Query(ctx,
			`SELECT `+entryCols+` FROM patient_history WHERE patient_id = $1 ORDER BY created_at DESC LIMIT $2`,
			*patientID, limit)
	} else {
		rows, err = r.conn(ctx).Query(ctx,
			`SELECT `+entryCols+` FROM patient_history ORDER BY created_at DESC LIMIT $1`, limit)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []*Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.ID, &e.PatientID, &e.AppointmentID, &e.RecordedBy, &e.RecordType,
			&e.Title, &e.Body, &e.Tags, &e.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, &e)
	}
	return items, rows.Err()
}
