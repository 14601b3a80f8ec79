package leads

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// PgxPool is the slice of pgxpool.Pool this repository needs; pgxmock
// satisfies it in tests.
type PgxPool interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Ping(ctx context.Context) error
}

// PostgresRepository stores leads in the relational database.
type PostgresRepository struct {
	pool PgxPool
}

// NewPostgresRepository initializes a repo backed by pgx.
func NewPostgresRepository(pool PgxPool) *PostgresRepository {
	if pool == nil {
		panic("leads: pgx pool required")
	}
	return &PostgresRepository{pool: pool}
}

// Upsert writes the row, replacing every column on email conflict. The
// database's unique constraint provides the only cross-request coordination
// this service relies on.
func (r *PostgresRepository) Upsert(ctx context.Context, lead *Lead) error {
	query := `
		INSERT INTO leads (id, first_name, last_name, email, phone, pharmacy_name,
		    role, revenue, challenge, privacy, fonte,
		    utm_source, utm_medium, utm_campaign, nome, messaggio)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16)
		ON CONFLICT (email) DO UPDATE SET
		    first_name=EXCLUDED.first_name, last_name=EXCLUDED.last_name,
		    phone=EXCLUDED.phone, pharmacy_name=EXCLUDED.pharmacy_name,
		    role=EXCLUDED.role, revenue=EXCLUDED.revenue,
		    challenge=EXCLUDED.challenge, privacy=EXCLUDED.privacy,
		    fonte=EXCLUDED.fonte, utm_source=EXCLUDED.utm_source,
		    utm_medium=EXCLUDED.utm_medium, utm_campaign=EXCLUDED.utm_campaign,
		    nome=EXCLUDED.nome, messaggio=EXCLUDED.messaggio,
		    updated_at=now()`
	if lead.ID == uuid.Nil {
		lead.ID = uuid.New()
	}
	if _, err := r.pool.Exec(ctx, query,
		lead.ID, lead.FirstName, lead.LastName, lead.Email, lead.Phone,
		lead.PharmacyName, lead.Role, lead.Revenue, lead.Challenge, lead.Privacy,
		lead.Fonte, lead.UTMSource, lead.UTMMedium, lead.UTMCampaign,
		lead.Nome, lead.Messaggio,
	); err != nil {
		return fmt.Errorf("leads: upsert failed: %w", err)
	}
	return nil
}

// GetByEmail fetches the lead row for an email.
func (r *PostgresRepository) GetByEmail(ctx context.Context, email string) (*Lead, error) {
	query := `
		SELECT id, first_name, last_name, email, phone, pharmacy_name,
		       role, revenue, challenge, privacy, fonte,
		       utm_source, utm_medium, utm_campaign, nome, messaggio,
		       created_at, updated_at
		FROM leads
		WHERE email = $1`
	var lead Lead
	if err := r.pool.QueryRow(ctx, query, email).Scan(
		&lead.ID, &lead.FirstName, &lead.LastName, &lead.Email, &lead.Phone,
		&lead.PharmacyName, &lead.Role, &lead.Revenue, &lead.Challenge,
		&lead.Privacy, &lead.Fonte, &lead.UTMSource, &lead.UTMMedium,
		&lead.UTMCampaign, &lead.Nome, &lead.Messaggio,
		&lead.CreatedAt, &lead.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrLeadNotFound
		}
		return nil, fmt.Errorf("leads: select failed: %w", err)
	}
	return &lead, nil
}

// Ping checks store connectivity for the diagnostic endpoint.
func (r *PostgresRepository) Ping(ctx context.Context) error {
	return r.pool.Ping(ctx)
}
