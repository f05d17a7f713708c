package postgres

import (
	"context"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/EgorLis/news-cms/internal/domain"
)

const refreshCols = "token, admin_id, expires_at, blacklisted, created_at"

func (r *PGRepo) SaveRefreshToken(ctx context.Context, rec domain.RefreshToken) error {
	q := r.qb().Insert(r.table("refresh_tokens")).
		Columns("token", "admin_id", "expires_at").
		Values(rec.Token, rec.AdminID, rec.ExpiresAt)

	sqlStr, args, _ := q.ToSql()
	r.logSQL("SaveRefreshToken", sqlStr, args)

	start := time.Now()
	if _, err := r.pool.Exec(ctx, sqlStr, args...); err != nil {
		r.logger.Printf("SaveRefreshToken error after %s: %v", time.Since(start), err)
		return mapErr(err)
	}
	r.logger.Printf("SaveRefreshToken ok in %s admin=%s", time.Since(start), rec.AdminID)
	return nil
}

// ConsumeRefreshToken — одноразовое потребление: одним условным UPDATE
// помечаем живой токен blacklisted и забираем запись. Из конкурентных
// ротаций одним токеном ровно одна получает строку, остальные — ErrTokenBlacklisted.
func (r *PGRepo) ConsumeRefreshToken(ctx context.Context, token domain.Token) (domain.RefreshToken, error) {
	q := r.qb().Update(r.table("refresh_tokens")).
		Set("blacklisted", true).
		Where(sq.Eq{"token": string(token), "blacklisted": false}).
		Where(sq.Expr("expires_at > now()")).
		Suffix("RETURNING " + refreshCols)

	sqlStr, args, _ := q.ToSql()
	r.logSQL("ConsumeRefreshToken", sqlStr, args)

	start := time.Now()
	row := r.pool.QueryRow(ctx, sqlStr, args...)
	var rec domain.RefreshToken
	if err := row.Scan(&rec.Token, &rec.AdminID, &rec.ExpiresAt, &rec.Blacklisted, &rec.CreatedAt); err != nil {
		if err == pgx.ErrNoRows {
			// либо токена нет вовсе, либо он уже потреблён/истёк
			if _, lookupErr := r.RefreshTokenByValue(ctx, token); lookupErr != nil {
				r.logger.Printf("ConsumeRefreshToken: unknown token")
				return domain.RefreshToken{}, domain.ErrNotFound
			}
			r.logger.Printf("ConsumeRefreshToken: token already consumed or expired")
			return domain.RefreshToken{}, domain.ErrTokenBlacklisted
		}
		r.logger.Printf("ConsumeRefreshToken scan error after %s: %v", time.Since(start), err)
		return domain.RefreshToken{}, mapErr(err)
	}
	r.logger.Printf("ConsumeRefreshToken ok in %s admin=%s", time.Since(start), rec.AdminID)
	return rec, nil
}

// BlacklistRefreshToken идемпотентно выставляет флаг.
func (r *PGRepo) BlacklistRefreshToken(ctx context.Context, token domain.Token) error {
	q := r.qb().Update(r.table("refresh_tokens")).
		Set("blacklisted", true).
		Where(sq.Eq{"token": string(token)})

	sqlStr, args, _ := q.ToSql()
	r.logSQL("BlacklistRefreshToken", sqlStr, args)

	start := time.Now()
	tag, err := r.pool.Exec(ctx, sqlStr, args...)
	if err != nil {
		r.logger.Printf("BlacklistRefreshToken error after %s: %v", time.Since(start), err)
		return mapErr(err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	r.logger.Printf("BlacklistRefreshToken ok in %s", time.Since(start))
	return nil
}

func (r *PGRepo) RefreshTokenByValue(ctx context.Context, token domain.Token) (domain.RefreshToken, error) {
	q := r.qb().Select(refreshCols).
		From(r.table("refresh_tokens")).
		Where(sq.Eq{"token": string(token)})

	sqlStr, args, _ := q.ToSql()
	r.logSQL("RefreshTokenByValue", sqlStr, args)

	row := r.pool.QueryRow(ctx, sqlStr, args...)
	var rec domain.RefreshToken
	if err := row.Scan(&rec.Token, &rec.AdminID, &rec.ExpiresAt, &rec.Blacklisted, &rec.CreatedAt); err != nil {
		return domain.RefreshToken{}, mapErr(err)
	}
	return rec, nil
}
