package postgres

import (
	"database/sql"
	"fmt"
)

// CreateSchema crea las tablas de la aplicación.
// Seguro de llamar varias veces: usa IF NOT EXISTS.
func CreateSchema(db *sql.DB) error {
	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	return nil
}

const schema = `
-- Cuentas
CREATE TABLE IF NOT EXISTS accounts (
    id TEXT PRIMARY KEY,
    username TEXT NOT NULL UNIQUE,
    password_hash TEXT NOT NULL,
    role TEXT NOT NULL CHECK (role IN ('patient', 'caretaker')),
    created_at TIMESTAMPTZ NOT NULL
);

-- Entradas de medicación (borrado = tombstone via active)
CREATE TABLE IF NOT EXISTS medications (
    id TEXT PRIMARY KEY,
    owner_user_id TEXT NOT NULL REFERENCES accounts(id),
    name TEXT NOT NULL,
    dosage TEXT NOT NULL,
    frequency TEXT NOT NULL,
    date TEXT NOT NULL,
    time TEXT NOT NULL,
    active BOOLEAN NOT NULL DEFAULT TRUE,
    taken BOOLEAN NOT NULL DEFAULT FALSE,
    taken_at TIMESTAMPTZ,
    created_at TIMESTAMPTZ NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_medications_owner_date ON medications(owner_user_id, date);

-- Assignments caretaker <-> paciente
CREATE TABLE IF NOT EXISTS assignments (
    id TEXT PRIMARY KEY,
    patient_user_id TEXT NOT NULL REFERENCES accounts(id),
    caretaker_user_id TEXT NOT NULL REFERENCES accounts(id),
    status TEXT NOT NULL CHECK (status IN ('invited', 'active', 'revoked')),
    created_at TIMESTAMPTZ NOT NULL,
    updated_at TIMESTAMPTZ NOT NULL,
    revoked_at TIMESTAMPTZ
);

CREATE INDEX IF NOT EXISTS idx_assignments_patient ON assignments(patient_user_id);
CREATE INDEX IF NOT EXISTS idx_assignments_caretaker ON assignments(caretaker_user_id);
`
