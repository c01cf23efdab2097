package repo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/bodegonlosdosangeles5-bit/isaromas-ecommerce/internal/cart"
)

const cartSnapshotsDDL = `
CREATE TABLE IF NOT EXISTS cart_snapshots (
  storage_key VARCHAR(191) PRIMARY KEY,
  payload     JSON         NOT NULL,
  updated_at  DATETIME     NOT NULL
)`

type MySQLCartRepo struct{ db *sql.DB }

func NewMySQLCartRepo(db *sql.DB) *MySQLCartRepo { return &MySQLCartRepo{db: db} }

// EnsureSchema creates the snapshot table when it does not exist yet.
func (r *MySQLCartRepo) EnsureSchema(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, cartSnapshotsDDL); err != nil {
		return fmt.Errorf("create cart_snapshots: %w", err)
	}
	return nil
}

func (r *MySQLCartRepo) Load(ctx context.Context, key string) ([]byte, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT payload FROM cart_snapshots WHERE storage_key=?`, key)
	var payload []byte
	if err := row.Scan(&payload); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, cart.ErrNoSnapshot
		}
		return nil, err
	}
	return payload, nil
}

func (r *MySQLCartRepo) Save(ctx context.Context, key string, data []byte) error {
	_, err := r.db.ExecContext(ctx, `
INSERT INTO cart_snapshots (storage_key,payload,updated_at)
VALUES (?,?,NOW())
ON DUPLICATE KEY UPDATE payload=VALUES(payload), updated_at=NOW()
`, key, data)
	return err
}

var _ cart.Storage = (*MySQLCartRepo)(nil)
