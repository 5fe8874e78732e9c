package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/lib/pq"

	"familyagenda/internal/domain"
)

type invitationRepository struct {
	DB *sql.DB
}

func NewInvitationRepository(db *sql.DB) domain.InvitationRepository {
	return &invitationRepository{
		DB: db,
	}
}

func (r *invitationRepository) Create(ctx context.Context, inv *domain.Invitation) error {
	query := `
		INSERT INTO invitations (event_id, user_id, email, status, issued_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`
	err := r.DB.QueryRowContext(ctx, query, inv.EventID, inv.UserID, inv.Email, inv.Status, inv.IssuedAt).
		Scan(&inv.ID)
	if err != nil {
		var pqErr *pq.Error
		// 23505: unique_violation on (event_id, user_id)
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return domain.ErrAlreadyInvited
		}
		return err
	}
	return nil
}

func (r *invitationRepository) GetByID(ctx context.Context, id string) (*domain.Invitation, error) {
	query := `
		SELECT id, event_id, user_id, email, status, issued_at, responded_at
		FROM invitations
		WHERE id = $1
	`
	inv, err := scanInvitation(r.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return inv, nil
}

func (r *invitationRepository) GetByEventAndUser(ctx context.Context, eventID, userID string) (*domain.Invitation, error) {
	query := `
		SELECT id, event_id, user_id, email, status, issued_at, responded_at
		FROM invitations
		WHERE event_id = $1 AND user_id = $2
	`
	inv, err := scanInvitation(r.DB.QueryRowContext(ctx, query, eventID, userID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return inv, nil
}

func (r *invitationRepository) ListByEventID(ctx context.Context, eventID string, search string, params domain.PaginationParams) ([]*domain.Invitation, int, error) {
	countQuery := `
		SELECT COUNT(*)
		FROM invitations
		WHERE event_id = $1 AND ($2 = '' OR email ILIKE '%' || $2 || '%')
	`
	var total int
	if err := r.DB.QueryRowContext(ctx, countQuery, eventID, search).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `
		SELECT id, event_id, user_id, email, status, issued_at, responded_at
		FROM invitations
		WHERE event_id = $1 AND ($2 = '' OR email ILIKE '%' || $2 || '%')
		ORDER BY issued_at DESC
		LIMIT $3 OFFSET $4
	`
	rows, err := r.DB.QueryContext(ctx, query, eventID, search, params.PageSize, params.Offset())
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	invs, err := collectInvitations(rows)
	if err != nil {
		return nil, 0, err
	}
	return invs, total, nil
}

func (r *invitationRepository) ListByUserID(ctx context.Context, userID string, status string, params domain.PaginationParams) ([]*domain.Invitation, int, error) {
	countQuery := `
		SELECT COUNT(*)
		FROM invitations
		WHERE user_id = $1 AND ($2 = '' OR status = $2)
	`
	var total int
	if err := r.DB.QueryRowContext(ctx, countQuery, userID, status).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `
		SELECT id, event_id, user_id, email, status, issued_at, responded_at
		FROM invitations
		WHERE user_id = $1 AND ($2 = '' OR status = $2)
		ORDER BY issued_at DESC
		LIMIT $3 OFFSET $4
	`
	rows, err := r.DB.QueryContext(ctx, query, userID, status, params.PageSize, params.Offset())
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	invs, err := collectInvitations(rows)
	if err != nil {
		return nil, 0, err
	}
	return invs, total, nil
}

func (r *invitationRepository) UpdateStatus(ctx context.Context, id, status string, respondedAt time.Time) (*domain.Invitation, error) {
	query := `
		UPDATE invitations
		SET status = $2, responded_at = $3
		WHERE id = $1
		RETURNING id, event_id, user_id, email, status, issued_at, responded_at
	`
	inv, err := scanInvitation(r.DB.QueryRowContext(ctx, query, id, status, respondedAt))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return inv, nil
}

func scanInvitation(row rowScanner) (*domain.Invitation, error) {
	inv := &domain.Invitation{}
	var respondedNull sql.NullTime
	err := row.Scan(&inv.ID, &inv.EventID, &inv.UserID, &inv.Email, &inv.Status, &inv.IssuedAt, &respondedNull)
	if err != nil {
		return nil, err
	}
	if respondedNull.Valid {
		inv.RespondedAt = &respondedNull.Time
	}
	return inv, nil
}

func collectInvitations(rows *sql.Rows) ([]*domain.Invitation, error) {
	invs := make([]*domain.Invitation, 0)
	for rows.Next() {
		inv, err := scanInvitation(rows)
		if err != nil {
			return nil, err
		}
		invs = append(invs, inv)
	}
	return invs, rows.Err()
}
