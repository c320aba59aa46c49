package repository

import (
	"context"
	"database/sql"

	"github.com/sujal12344/client-list-table-ui/internal/clients"
)

// ClientRepo handles client records.
type ClientRepo struct {
	db *sql.DB
}

func NewClientRepo(db *sql.DB) *ClientRepo { return &ClientRepo{db: db} }

func (r *ClientRepo) Upsert(ctx context.Context, c clients.Client) error {
	_, err := r.db.ExecContext(ctx, `
	INSERT INTO clients(id, name, type, email, status, created_at, updated_at, updated_by)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	ON CONFLICT(id) DO UPDATE SET
	 name=excluded.name,
	 type=excluded.type,
	 email=excluded.email,
	 status=excluded.status,
	 created_at=excluded.created_at,
	 updated_at=excluded.updated_at,
	 updated_by=excluded.updated_by;
	`, c.ID, c.Name, string(c.Type), c.Email, string(c.Status), c.CreatedAt.UTC(), c.UpdatedAt.UTC(), c.UpdatedBy)
	return err
}

// List returns every client in insertion order.
func (r *ClientRepo) List(ctx context.Context) ([]clients.Client, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name, type, email, status, created_at, updated_at, updated_by FROM clients ORDER BY rowid`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []clients.Client
	for rows.Next() {
		var (
			c           clients.Client
			typ, status string
		)
		if err := rows.Scan(&c.ID, &c.Name, &typ, &c.Email, &status, &c.CreatedAt, &c.UpdatedAt, &c.UpdatedBy); err != nil {
			return nil, err
		}
		c.Type = clients.Type(typ)
		c.Status = clients.Status(status)
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *ClientRepo) Count(ctx context.Context) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM clients`).Scan(&n)
	return n, err
}

func (r *ClientRepo) DeleteAll(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM clients`)
	return err
}
