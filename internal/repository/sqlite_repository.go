package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/MS-7160/bingodemo/internal/models"
	"github.com/jmoiron/sqlx"
)

// Repository interface defines the methods that any repository implementation must satisfy
type Repository interface {
	// Credential store operations
	GetCredentials(ctx context.Context) (*models.Credential, error)
	SeedCredentials(ctx context.Context, username, passwordHash string) error
	UpdateCredentials(ctx context.Context, username, passwordHash string) error

	// Game history operations
	InsertHistory(ctx context.Context, record *models.HistoryRecord) error
	MaxRoundNumber(ctx context.Context, username string) (int, error)
	ListHistory(ctx context.Context) ([]models.HistoryRecord, error)
	ListHistoryByUser(ctx context.Context, username string) ([]models.HistoryRecord, error)
}

// SQLiteRepository implements the Repository interface using SQLite
type SQLiteRepository struct {
	db *sqlx.DB
}

// NewSQLiteRepository creates a new SQLite repository
func NewSQLiteRepository(db *sqlx.DB) *SQLiteRepository {
	return &SQLiteRepository{
		db: db,
	}
}

// GetDB returns the underlying database connection
func (r *SQLiteRepository) GetDB() *sqlx.DB {
	return r.db
}

// Credential repository methods
func (r *SQLiteRepository) GetCredentials(ctx context.Context) (*models.Credential, error) {
	query := `SELECT * FROM credentials WHERE id = 1`

	var cred models.Credential
	err := r.db.GetContext(ctx, &cred, query)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil // Not seeded yet
		}
		return nil, err
	}

	return &cred, nil
}

// SeedCredentials inserts the default credential pair if and only if
// no pair is stored yet. Safe to call on every startup.
func (r *SQLiteRepository) SeedCredentials(ctx context.Context, username, passwordHash string) error {
	query := `
		INSERT INTO credentials (id, username, password)
		VALUES (1, ?, ?)
		ON CONFLICT(id) DO NOTHING
	`

	_, err := r.db.ExecContext(ctx, query, username, passwordHash)
	return err
}

// UpdateCredentials overwrites the stored pair in place
func (r *SQLiteRepository) UpdateCredentials(ctx context.Context, username, passwordHash string) error {
	query := `UPDATE credentials SET username = ?, password = ? WHERE id = 1`

	res, err := r.db.ExecContext(ctx, query, username, passwordHash)
	if err != nil {
		return err
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return errors.New("credential store is not seeded")
	}

	return nil
}

// Game history repository methods
func (r *SQLiteRepository) InsertHistory(ctx context.Context, record *models.HistoryRecord) error {
	query := `
		INSERT INTO history (username, round_number, number1, number2, number3, number4, number5, system_time)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	res, err := r.db.ExecContext(ctx, query,
		record.Username, record.RoundNumber,
		record.Number1, record.Number2, record.Number3, record.Number4, record.Number5,
		record.SystemTime)
	if err != nil {
		return err
	}

	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	record.ID = id

	return nil
}

func (r *SQLiteRepository) MaxRoundNumber(ctx context.Context, username string) (int, error) {
	query := `SELECT COALESCE(MAX(round_number), 0) FROM history WHERE username = ?`

	var max int
	err := r.db.GetContext(ctx, &max, query, username)
	if err != nil {
		return 0, err
	}

	return max, nil
}

func (r *SQLiteRepository) ListHistory(ctx context.Context) ([]models.HistoryRecord, error) {
	query := `SELECT * FROM history ORDER BY id DESC`

	var records []models.HistoryRecord
	err := r.db.SelectContext(ctx, &records, query)
	if err != nil {
		return nil, err
	}

	return records, nil
}

func (r *SQLiteRepository) ListHistoryByUser(ctx context.Context, username string) ([]models.HistoryRecord, error) {
	query := `SELECT * FROM history WHERE username = ? ORDER BY round_number DESC`

	var records []models.HistoryRecord
	err := r.db.SelectContext(ctx, &records, query, username)
	if err != nil {
		return nil, err
	}

	return records, nil
}
