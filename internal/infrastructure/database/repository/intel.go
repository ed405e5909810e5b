package repository

import (
	"context"
	"fmt"

	"scamtrap-lab/internal/domain/models"
	"scamtrap-lab/internal/infrastructure/database"
)

// IntelRepository is the append-only intelligence log. Rows are only
// ever inserted and read back, never updated.
type IntelRepository interface {
	EnsureSchema(ctx context.Context) error
	Insert(ctx context.Context, rec models.IntelRecord) error
	ListRecent(ctx context.Context, limit int) ([]models.IntelRecord, error)
}

const createIntelTableQuery = `
CREATE TABLE IF NOT EXISTS scam_intel (
	id SERIAL PRIMARY KEY,
	timestamp TIMESTAMPTZ DEFAULT CURRENT_TIMESTAMP,
	scam_type VARCHAR(100),
	mobile_numbers TEXT,
	bank_accounts TEXT,
	upi_id VARCHAR(255),
	ifsc_code VARCHAR(100),
	captured_ip VARCHAR(100),
	raw_message TEXT
)`

const insertIntelQuery = `
INSERT INTO scam_intel (scam_type, mobile_numbers, bank_accounts, upi_id, ifsc_code, captured_ip, raw_message)
VALUES ($1, $2, $3, $4, $5, $6, $7)`

const listRecentIntelQuery = `
SELECT id, timestamp, scam_type, mobile_numbers, bank_accounts, upi_id, ifsc_code, captured_ip, raw_message
FROM scam_intel
ORDER BY id DESC
LIMIT $1`

// PostgresIntelRepository backs the intelligence log with PostgreSQL.
type PostgresIntelRepository struct {
	db *database.PostgresDB
}

func NewIntelRepository(db *database.PostgresDB) *PostgresIntelRepository {
	return &PostgresIntelRepository{db: db}
}

// EnsureSchema creates the intelligence table if it does not exist.
func (r *PostgresIntelRepository) EnsureSchema(ctx context.Context) error {
	if err := r.db.Exec(ctx, createIntelTableQuery); err != nil {
		return fmt.Errorf("failed to create scam_intel table: %w", err)
	}
	return nil
}

// Insert appends one row to the log.
func (r *PostgresIntelRepository) Insert(ctx context.Context, rec models.IntelRecord) error {
	err := r.db.Exec(ctx, insertIntelQuery,
		rec.ScamType, rec.Mobiles, rec.Accounts, rec.UPI, rec.IFSC, rec.CapturedIP, rec.RawMessage)
	if err != nil {
		return fmt.Errorf("failed to insert intel record: %w", err)
	}
	return nil
}

// ListRecent returns the newest rows, most recent first.
func (r *PostgresIntelRepository) ListRecent(ctx context.Context, limit int) ([]models.IntelRecord, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := r.db.Query(ctx, listRecentIntelQuery, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list intel records: %w", err)
	}
	defer rows.Close()

	var records []models.IntelRecord
	for rows.Next() {
		var rec models.IntelRecord
		if err := rows.Scan(&rec.ID, &rec.Timestamp, &rec.ScamType, &rec.Mobiles,
			&rec.Accounts, &rec.UPI, &rec.IFSC, &rec.CapturedIP, &rec.RawMessage); err != nil {
			return nil, fmt.Errorf("failed to scan intel record: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate intel records: %w", err)
	}
	return records, nil
}
