package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"members-service/internal/model"
)

const memberColumns = `id, org_id, name, email, role, EXTRACT(EPOCH FROM created_at)::BIGINT`

// MemberRepo реализует репозиторий участников организации на базе PostgreSQL.
type MemberRepo struct {
	db *Postgres
}

// NewMemberRepo создаёт новый экземпляр MemberRepo c переданным подключением к PostgreSQL.
func NewMemberRepo(db *Postgres) *MemberRepo {
	return &MemberRepo{db: db}
}

func scanMember(row pgx.Row) (model.OrgUser, error) {
	var u model.OrgUser
	var role string
	if err := row.Scan(&u.ID, &u.OrgID, &u.Name, &u.Email, &role, &u.CreatedAt); err != nil {
		return model.OrgUser{}, err
	}
	u.Role = model.Role(role)
	return u, nil
}

// ListByOrg возвращает участников организации в порядке вступления.
// Для организации без участников возвращается пустой (не nil) срез.
func (r *MemberRepo) ListByOrg(ctx context.Context, orgID string) ([]model.OrgUser, error) {
	q := r.db.GetQueryExecutor(ctx)
	rows, err := q.Query(ctx, `
SELECT `+memberColumns+`
FROM org_users
WHERE org_id = $1
ORDER BY created_at, id
`, orgID)
	if err != nil {
		return nil, fmt.Errorf("query members: %w", err)
	}
	defer rows.Close()

	members := make([]model.OrgUser, 0)
	for rows.Next() {
		u, err := scanMember(rows)
		if err != nil {
			return nil, fmt.Errorf("scan member: %w", err)
		}
		members = append(members, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	return members, nil
}

// GetByID возвращает участника по id. Если участник не найден, возвращает ErrMemberNotFound.
func (r *MemberRepo) GetByID(ctx context.Context, id string) (model.OrgUser, error) {
	q := r.db.GetQueryExecutor(ctx)
	u, err := scanMember(q.QueryRow(ctx, `SELECT `+memberColumns+` FROM org_users WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.OrgUser{}, ErrMemberNotFound
		}
		return model.OrgUser{}, fmt.Errorf("get member: %w", err)
	}
	return u, nil
}

// Create добавляет участника. Нарушение уникальности id или email возвращает ErrMemberExists.
func (r *MemberRepo) Create(ctx context.Context, u model.OrgUser) (model.OrgUser, error) {
	q := r.db.GetQueryExecutor(ctx)
	created, err := scanMember(q.QueryRow(ctx, `
INSERT INTO org_users (id, org_id, name, email, role, created_at)
VALUES ($1, $2, $3, $4, $5, CASE WHEN $6::BIGINT > 0 THEN to_timestamp($6::BIGINT) ELSE now() END)
RETURNING `+memberColumns,
		u.ID, u.OrgID, u.Name, u.Email, string(u.Role), u.CreatedAt))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return model.OrgUser{}, ErrMemberExists
		}
		return model.OrgUser{}, fmt.Errorf("insert member: %w", err)
	}
	return created, nil
}

// UpdateName меняет имя участника и возвращает его актуальное состояние.
func (r *MemberRepo) UpdateName(ctx context.Context, id, name string) (model.OrgUser, error) {
	q := r.db.GetQueryExecutor(ctx)
	u, err := scanMember(q.QueryRow(ctx, `
UPDATE org_users
SET name = $2
WHERE id = $1
RETURNING `+memberColumns, id, name))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.OrgUser{}, ErrMemberNotFound
		}
		return model.OrgUser{}, fmt.Errorf("update member name: %w", err)
	}
	return u, nil
}

// UpdateRole меняет роль участника и возвращает его актуальное состояние.
func (r *MemberRepo) UpdateRole(ctx context.Context, id string, role model.Role) (model.OrgUser, error) {
	q := r.db.GetQueryExecutor(ctx)
	u, err := scanMember(q.QueryRow(ctx, `
UPDATE org_users
SET role = $2
WHERE id = $1
RETURNING `+memberColumns, id, string(role)))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.OrgUser{}, ErrMemberNotFound
		}
		return model.OrgUser{}, fmt.Errorf("update member role: %w", err)
	}
	return u, nil
}

// Delete удаляет участника. Если участник не найден, возвращает ErrMemberNotFound.
func (r *MemberRepo) Delete(ctx context.Context, id string) error {
	q := r.db.GetQueryExecutor(ctx)
	tag, err := q.Exec(ctx, `DELETE FROM org_users WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete member: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrMemberNotFound
	}
	return nil
}

// LockAdmins блокирует строки администраторов организации до конца транзакции
// и возвращает их количество. Вызывать нужно внутри RunInTransaction.
func (r *MemberRepo) LockAdmins(ctx context.Context, orgID string) (int, error) {
	q := r.db.GetQueryExecutor(ctx)
	rows, err := q.Query(ctx, `
SELECT id
FROM org_users
WHERE org_id = $1 AND role = $2
FOR UPDATE
`, orgID, string(model.RoleAdmin))
	if err != nil {
		return 0, fmt.Errorf("lock admins: %w", err)
	}
	defer rows.Close()

	count := 0
	for rows.Next() {
		count++
	}
	if err := rows.Err(); err != nil {
		return 0, fmt.Errorf("rows error: %w", err)
	}
	return count, nil
}
