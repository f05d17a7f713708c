package postgres

import (
	"context"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/EgorLis/news-cms/internal/domain"
)

const adminCols = "id, email, pass_hash, roles, created_at, updated_at"

func (r *PGRepo) CreateAdmin(ctx context.Context, email string, passHash []byte, roles []string) (domain.Admin, error) {
	q := r.qb().Insert(r.table("admins")).
		Columns("email", "pass_hash", "roles").
		Values(email, passHash, roles).
		Suffix("RETURNING " + adminCols)

	sqlStr, args, _ := q.ToSql()
	r.logSQL("CreateAdmin", sqlStr, args)

	start := time.Now()
	row := r.pool.QueryRow(ctx, sqlStr, args...)
	var a domain.Admin
	if err := row.Scan(&a.ID, &a.Email, &a.PassHash, &a.Roles, &a.CreatedAt, &a.UpdatedAt); err != nil {
		r.logger.Printf("CreateAdmin scan error after %s: %v", time.Since(start), err)
		return domain.Admin{}, mapErr(err)
	}
	r.logger.Printf("CreateAdmin ok in %s id=%s email=%s", time.Since(start), a.ID, a.Email)
	return a, nil
}

func (r *PGRepo) AdminByEmail(ctx context.Context, email string) (domain.Admin, error) {
	q := r.qb().Select(adminCols).
		From(r.table("admins")).
		Where(sq.Expr("lower(email) = lower(?)", email))

	sqlStr, args, _ := q.ToSql()
	r.logSQL("AdminByEmail", sqlStr, args)

	start := time.Now()
	row := r.pool.QueryRow(ctx, sqlStr, args...)
	var a domain.Admin
	if err := row.Scan(&a.ID, &a.Email, &a.PassHash, &a.Roles, &a.CreatedAt, &a.UpdatedAt); err != nil {
		r.logger.Printf("AdminByEmail scan error after %s: %v", time.Since(start), err)
		return domain.Admin{}, mapErr(err)
	}
	r.logger.Printf("AdminByEmail ok in %s id=%s", time.Since(start), a.ID)
	return a, nil
}

func (r *PGRepo) AdminByID(ctx context.Context, id domain.AdminID) (domain.Admin, error) {
	q := r.qb().Select(adminCols).
		From(r.table("admins")).
		Where(sq.Eq{"id": id})

	sqlStr, args, _ := q.ToSql()
	r.logSQL("AdminByID", sqlStr, args)

	start := time.Now()
	row := r.pool.QueryRow(ctx, sqlStr, args...)
	var a domain.Admin
	if err := row.Scan(&a.ID, &a.Email, &a.PassHash, &a.Roles, &a.CreatedAt, &a.UpdatedAt); err != nil {
		r.logger.Printf("AdminByID scan error after %s: %v", time.Since(start), err)
		return domain.Admin{}, mapErr(err)
	}
	r.logger.Printf("AdminByID ok in %s id=%s", time.Since(start), a.ID)
	return a, nil
}
