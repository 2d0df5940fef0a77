package postgres

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"med-adherence-tracker/internal/domain/medications"
)

// MedicationsRepo implementa medications.Repository y adherence.Repository
// sobre la misma tabla.
type MedicationsRepo struct {
	db *sql.DB
}

func NewMedicationsRepo(db *sql.DB) *MedicationsRepo {
	return &MedicationsRepo{db: db}
}

const entryColumns = `
	id, owner_user_id,
	name, dosage, frequency,
	date, time,
	active, taken,
	taken_at, created_at
`

func (r *MedicationsRepo) Create(ctx context.Context, e medications.Entry) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO medications (`+entryColumns+`)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
	`,
		e.ID,
		e.OwnerUserID,
		e.Name,
		e.Dosage,
		e.Frequency,
		e.Date,
		e.Time,
		e.Active,
		e.Taken,
		toNullTime(e.TakenAt),
		e.CreatedAt,
	)
	return err
}

func (r *MedicationsRepo) GetByID(ctx context.Context, id string) (medications.Entry, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return medications.Entry{}, medications.ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `
		SELECT `+entryColumns+`
		FROM medications
		WHERE id = $1
	`, id)

	var e medications.Entry
	var takenAt sql.NullTime
	if err := row.Scan(
		&e.ID,
		&e.OwnerUserID,
		&e.Name,
		&e.Dosage,
		&e.Frequency,
		&e.Date,
		&e.Time,
		&e.Active,
		&e.Taken,
		&takenAt,
		&e.CreatedAt,
	); err != nil {
		if err == sql.ErrNoRows {
			return medications.Entry{}, medications.ErrNotFound
		}
		return medications.Entry{}, err
	}
	if takenAt.Valid {
		t := takenAt.Time
		e.TakenAt = &t
	}
	return e, nil
}

func (r *MedicationsRepo) ListForOwnerOnDate(ctx context.Context, ownerUserID, date string) ([]medications.Entry, error) {
	return r.list(ctx, `
		SELECT `+entryColumns+`
		FROM medications
		WHERE owner_user_id = $1 AND date = $2 AND active = TRUE
		ORDER BY created_at ASC
	`, ownerUserID, date)
}

func (r *MedicationsRepo) ListForOwnerBetween(ctx context.Context, ownerUserID, from, to string) ([]medications.Entry, error) {
	return r.list(ctx, `
		SELECT `+entryColumns+`
		FROM medications
		WHERE owner_user_id = $1 AND date BETWEEN $2 AND $3 AND active = TRUE
		ORDER BY date ASC, created_at ASC
	`, ownerUserID, from, to)
}

func (r *MedicationsRepo) ListForOwner(ctx context.Context, ownerUserID string) ([]medications.Entry, error) {
	return r.list(ctx, `
		SELECT `+entryColumns+`
		FROM medications
		WHERE owner_user_id = $1 AND active = TRUE
		ORDER BY date ASC, created_at ASC
	`, ownerUserID)
}

// MarkTaken es idempotente: re-marcar una fila ya tomada afecta la fila
// (taken_at se conserva via COALESCE) y no es error.
func (r *MedicationsRepo) MarkTaken(ctx context.Context, ownerUserID, id string, at time.Time) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE medications
		SET taken = TRUE, taken_at = COALESCE(taken_at, $3)
		WHERE id = $1 AND owner_user_id = $2 AND active = TRUE
	`, id, ownerUserID, at)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return medications.ErrNotFound
	}
	return nil
}

// MarkTakenBatch marca todas o ninguna: un id ausente o ajeno
// hace rollback de la transacción completa.
func (r *MedicationsRepo) MarkTakenBatch(ctx context.Context, ownerUserID string, ids []string, at time.Time) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	for _, id := range ids {
		res, err := tx.ExecContext(ctx, `
			UPDATE medications
			SET taken = TRUE, taken_at = COALESCE(taken_at, $3)
			WHERE id = $1 AND owner_user_id = $2 AND active = TRUE
		`, id, ownerUserID, at)
		if err != nil {
			return err
		}
		n, _ := res.RowsAffected()
		if n == 0 {
			return medications.ErrNotFound
		}
	}

	return tx.Commit()
}

func (r *MedicationsRepo) SoftDelete(ctx context.Context, ownerUserID, id string) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE medications
		SET active = FALSE
		WHERE id = $1 AND owner_user_id = $2 AND active = TRUE
	`, id, ownerUserID)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return medications.ErrNotFound
	}
	return nil
}

func (r *MedicationsRepo) list(ctx context.Context, query string, args ...any) ([]medications.Entry, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]medications.Entry, 0)
	for rows.Next() {
		var e medications.Entry
		var takenAt sql.NullTime
		if err := rows.Scan(
			&e.ID,
			&e.OwnerUserID,
			&e.Name,
			&e.Dosage,
			&e.Frequency,
			&e.Date,
			&e.Time,
			&e.Active,
			&e.Taken,
			&takenAt,
			&e.CreatedAt,
		); err != nil {
			return nil, err
		}
		if takenAt.Valid {
			t := takenAt.Time
			e.TakenAt = &t
		}
		out = append(out, e)
	}

	return out, rows.Err()
}

func toNullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{Valid: false}
	}
	return sql.NullTime{Time: *t, Valid: true}
}
