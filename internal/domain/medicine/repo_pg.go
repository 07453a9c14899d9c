package medicine

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

const medicineCols = `id, name, brand, batch_no, expiry_date, quantity, unit, min_threshold,
	location, created_at, updated_at`

func (r *repoPG) scan(row pgx.Row) (*Medicine, error) {
	var m Medicine
	err := row.Scan(&m.ID, &m.Name, &m.Brand, &m.BatchNo, &m.ExpiryDate, &m.Quantity,
		&m.Unit, &m.MinThreshold, &m.Location, &m.CreatedAt, &m.UpdatedAt)
	return &m, err
}

func (r *repoPG) Create(ctx context.Context, m *Medicine) error {
	m.ID = uuid.New()
	return r.conn(ctx).QueryRow(ctx, `
		INSERT INTO medicines (id, name, brand, batch_no, expiry_date, quantity, unit, min_threshold, location)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
		RETURNING created_at, updated_at`,
		m.ID, m.Name, m.Brand, m.BatchNo, m.ExpiryDate, m.Quantity, m.Unit, m.MinThreshold, m.Location).
		Scan(&m.CreatedAt, &m.UpdatedAt)
}

func (r *repoPG) GetByID(ctx context.Context, id uuid.UUID) (*Medicine, error) {
	return r.scan(r.conn(ctx).QueryRow(ctx, `SELECT `+medicineCols+` FROM medicines WHERE id = $1`, id))
}

func (r *repoPG) GetForUpdate(ctx context.Context, id uuid.UUID) (*Medicine, error) {
	return r.scan(r.conn(ctx).QueryRow(ctx,
		`SELECT `+medicineCols+` FROM medicines WHERE id = $1 FOR UPDATE`, id))
}

func (r *repoPG) List(ctx context.Context, limit, offset int) ([]*Medicine, int, error) {
	var total int
	if err := r.conn(ctx).QueryRow(ctx, `SELECT COUNT(*) FROM medicines`).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.conn(ctx).Query(ctx,
		`SELECT `+medicineCols+` FROM medicines ORDER BY name LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var items []*Medicine
	for rows.Next() {
		m, err := r.scan(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, m)
	}
	return items, total, rows.Err()
}

func (r *repoPG) ListLowStock(ctx context.Context) ([]*Medicine, error) {
	rows, err := r.conn(ctx).Query(ctx,
		`SELECT `+medicineCols+` FROM medicines WHERE quantity <= min_threshold ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []*Medicine
	for rows.Next() {
		m, err := r.scan(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, m)
	}
	return items, rows.Err()
}

func (r *repoPG) Update(ctx context.Context, id uuid.UUID, p *Patch) error {
	tag, err := r.conn(ctx).Exec(ctx, `
		UPDATE medicines SET
			name          = COALESCE($2, name),
			brand         = COALESCE($3, brand),
			batch_no      = COALESCE($4, batch_no),
			expiry_date   = COALESCE($5, expiry_date),
			unit          = COALESCE($6, unit),
			min_threshold = COALESCE($7, min_threshold),
			location      = COALESCE($8, location),
			updated_at    = now()
		WHERE id = $1`,
		id, p.Name, p.Brand, p.BatchNo, p.ExpiryDate, p.Unit, p.MinThreshold, p.Location)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *repoPG) Decrement(ctx context.Context, id uuid.UUID, qty int) error {
	_, err := r.conn(ctx).Exec(ctx,
		`UPDATE medicines SET quantity = quantity - $2, updated_at = now() WHERE id = $1`, id, qty)
	return err
}

func (r *repoPG) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.conn(ctx).Exec(ctx, `DELETE FROM medicines WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

type issueRepoPG struct{ pool *pgxpool.Pool }

func NewIssueRepoPG(pool *pgxpool.Pool) IssueRepository {
	return &issueRepoPG{pool: pool}
}

func (r *issueRepoPG) conn(ctx context.Context) queryable {
	if tx := db.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.pool
}

func (r *issueRepoPG) Insert(ctx context.Context, i *Issue) error {
	i.ID = uuid.New()
	return r.conn(ctx).QueryRow(ctx, `
		INSERT INTO medicine_issues (id, medicine_id, patient_id, issued_by, quantity, instructions, source_batch, issued_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,now())
		RETURNING issued_at`,
		i.ID, i.MedicineID, i.PatientID, i.IssuedBy, i.Quantity, i.Instructions, i.SourceBatch).
		Scan(&i.IssuedAt)
}

func (r *issueRepoPG) ListRecent(ctx context.Context, limit int) ([]*IssueDetail, error) {
	rows, err := r.conn(ctx).Query(ctx, `
		SELECT mi.id, mi.medicine_id, mi.patient_id, mi.issued_by, mi.quantity,
		       mi.instructions, mi.source_batch, mi.issued_at,
		       m.name AS medicine_name, p.name AS patient_name
		FROM medicine_issues mi
		LEFT JOIN medicines m ON m.id = mi.medicine_id
		LEFT JOIN patients p ON p.id = mi.patient_id
		ORDER BY mi.issued_at DESC
		LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []*IssueDetail
	for rows.Next() {
		var d IssueDetail
		if err := rows.Scan(&d.ID, &d.MedicineID, &d.PatientID, &d.IssuedBy, &d.Quantity,
			&d.Instructions, &d.SourceBatch, &d.IssuedAt, &d.MedicineName, &d.PatientName); err != nil {
			return nil, err
		}
		items = append(items, &d)
	}
	return items, rows.Err()
}
