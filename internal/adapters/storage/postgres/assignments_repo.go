package postgres

import (
	"context"
	"database/sql"
	"strings"

	"med-adherence-tracker/internal/domain/assignments"
)

type AssignmentsRepo struct {
	db *sql.DB
}

func NewAssignmentsRepo(db *sql.DB) *AssignmentsRepo {
	return &AssignmentsRepo{db: db}
}

func (r *AssignmentsRepo) Create(ctx context.Context, a assignments.Assignment) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO assignments (
			id, patient_user_id, caretaker_user_id,
			status, created_at, updated_at, revoked_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7)
	`,
		a.ID,
		a.PatientUserID,
		a.CaretakerUserID,
		a.Status,
		a.CreatedAt,
		a.UpdatedAt,
		toNullTime(a.RevokedAt),
	)
	return err
}

func (r *AssignmentsRepo) Update(ctx context.Context, a assignments.Assignment) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE assignments
		SET status = $2, updated_at = $3, revoked_at = $4
		WHERE id = $1
	`,
		a.ID,
		a.Status,
		a.UpdatedAt,
		toNullTime(a.RevokedAt),
	)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return assignments.ErrNotFound
	}
	return nil
}

func (r *AssignmentsRepo) GetByID(ctx context.Context, id string) (assignments.Assignment, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return assignments.Assignment{}, assignments.ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `
		SELECT id, patient_user_id, caretaker_user_id,
		       status, created_at, updated_at, revoked_at
		FROM assignments
		WHERE id = $1
	`, id)

	var a assignments.Assignment
	var revokedAt sql.NullTime
	if err := row.Scan(
		&a.ID,
		&a.PatientUserID,
		&a.CaretakerUserID,
		&a.Status,
		&a.CreatedAt,
		&a.UpdatedAt,
		&revokedAt,
	); err != nil {
		if err == sql.ErrNoRows {
			return assignments.Assignment{}, assignments.ErrNotFound
		}
		return assignments.Assignment{}, err
	}
	if revokedAt.Valid {
		t := revokedAt.Time
		a.RevokedAt = &t
	}
	return a, nil
}

func (r *AssignmentsRepo) ListByPatient(ctx context.Context, patientUserID string) ([]assignments.Assignment, error) {
	return r.list(ctx, `
		SELECT id, patient_user_id, caretaker_user_id,
		       status, created_at, updated_at, revoked_at
		FROM assignments
		WHERE patient_user_id = $1
		ORDER BY created_at ASC
	`, patientUserID)
}

func (r *AssignmentsRepo) ListByCaretaker(ctx context.Context, caretakerUserID string) ([]assignments.Assignment, error) {
	return r.list(ctx, `
		SELECT id, patient_user_id, caretaker_user_id,
		       status, created_at, updated_at, revoked_at
		FROM assignments
		WHERE caretaker_user_id = $1
		ORDER BY created_at ASC
	`, caretakerUserID)
}

func (r *AssignmentsRepo) list(ctx context.Context, query string, args ...any) ([]assignments.Assignment, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]assignments.Assignment, 0)
	for rows.Next() {
		var a assignments.Assignment
		var revokedAt sql.NullTime
		if err := rows.Scan(
			&a.ID,
			&a.PatientUserID,
			&a.CaretakerUserID,
			&a.Status,
			&a.CreatedAt,
			&a.UpdatedAt,
			&revokedAt,
		); err != nil {
			return nil, err
		}
		if revokedAt.Valid {
			t := revokedAt.Time
			a.RevokedAt = &t
		}
		out = append(out, a)
	}

	return out, rows.Err()
}
