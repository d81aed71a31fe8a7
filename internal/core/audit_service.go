package core

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

type auditService struct {
	pool *pgxpool.Pool
}

func NewAuditService(pool *pgxpool.Pool) AuditService {
	return &auditService{pool: pool}
}

func (s *auditService) Record(ctx context.Context, action, entity string, entityID int, actor string, details map[string]any) error {
	if actor == "" {
		actor = AnonymousActor
	}
	if details == nil {
		details = map[string]any{}
	}
	blob, err := json.Marshal(details)
	if err != nil {
		return fmt.Errorf("failed to encode audit details: %w", err)
	}

	_, err = s.pool.Exec(ctx, `
		INSERT INTO audit_logs (action, entity, entity_id, username, details)
		VALUES ($1, $2, $3, $4, $5)`,
		action, entity, entityID, actor, string(blob),
	)
	if err != nil {
		return fmt.Errorf("failed to insert audit log: %w", err)
	}
	return nil
}

func (s *auditService) Latest(ctx context.Context, limit int) ([]AuditLog, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, action, entity, entity_id, username, details, created_at
		FROM audit_logs
		ORDER BY created_at DESC
		LIMIT $1`,
		limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query audit logs: %w", err)
	}
	defer rows.Close()

	var logs []AuditLog
	for rows.Next() {
		var l AuditLog
		var details *string
		if err := rows.Scan(&l.ID, &l.Action, &l.Entity, &l.EntityID, &l.Username, &details, &l.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan audit log: %w", err)
		}
		if details != nil {
			l.Details = json.RawMessage(*details)
		}
		logs = append(logs, l)
	}
	return logs, rows.Err()
}
