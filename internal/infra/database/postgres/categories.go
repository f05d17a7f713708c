package postgres

import (
	"context"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/EgorLis/news-cms/internal/domain"
)

const categoryCols = "id, name, description, color, created_at, updated_at"

func scanCategory(row interface{ Scan(...any) error }) (domain.Category, error) {
	var c domain.Category
	err := row.Scan(&c.ID, &c.Name, &c.Description, &c.Color, &c.CreatedAt, &c.UpdatedAt)
	return c, err
}

func (r *PGRepo) CreateCategory(ctx context.Context, c domain.Category) (domain.Category, error) {
	q := r.qb().Insert(r.table("categories")).
		Columns("name", "description", "color").
		Values(c.Name, c.Description, c.Color).
		Suffix("RETURNING " + categoryCols)

	sqlStr, args, _ := q.ToSql()
	r.logSQL("CreateCategory", sqlStr, args)

	start := time.Now()
	out, err := scanCategory(r.pool.QueryRow(ctx, sqlStr, args...))
	if err != nil {
		r.logger.Printf("CreateCategory scan error after %s: %v", time.Since(start), err)
		return domain.Category{}, mapErr(err)
	}
	r.logger.Printf("CreateCategory ok in %s id=%s name=%q", time.Since(start), out.ID, out.Name)
	return out, nil
}

func (r *PGRepo) CategoryByID(ctx context.Context, id domain.CategoryID) (domain.Category, error) {
	q := r.qb().Select(categoryCols).From(r.table("categories")).Where(sq.Eq{"id": id})

	sqlStr, args, _ := q.ToSql()
	r.logSQL("CategoryByID", sqlStr, args)

	out, err := scanCategory(r.pool.QueryRow(ctx, sqlStr, args...))
	if err != nil {
		return domain.Category{}, mapErr(err)
	}
	return out, nil
}

func (r *PGRepo) CategoryByName(ctx context.Context, name string, exclude *domain.CategoryID) (domain.Category, error) {
	q := r.qb().Select(categoryCols).From(r.table("categories")).
		Where(sq.Expr("lower(name) = lower(?)", name))
	if exclude != nil {
		q = q.Where(sq.NotEq{"id": *exclude})
	}

	sqlStr, args, _ := q.ToSql()
	r.logSQL("CategoryByName", sqlStr, args)

	out, err := scanCategory(r.pool.QueryRow(ctx, sqlStr, args...))
	if err != nil {
		return domain.Category{}, mapErr(err)
	}
	return out, nil
}

func (r *PGRepo) CategoriesList(ctx context.Context, f domain.ListFilter) ([]domain.Category, int, error) {
	q := r.qb().Select(categoryCols).From(r.table("categories")).
		OrderBy("created_at DESC").
		Offset(uint64(f.Skip())).Limit(uint64(f.Limit))
	cq := r.qb().Select("count(*)").From(r.table("categories"))
	if f.Search != "" {
		like := sq.ILike{"name": "%" + f.Search + "%"}
		q = q.Where(like)
		cq = cq.Where(like)
	}

	sqlStr, args, _ := q.ToSql()
	r.logSQL("CategoriesList", sqlStr, args)

	rows, err := r.pool.Query(ctx, sqlStr, args...)
	if err != nil {
		return nil, 0, mapErr(err)
	}
	defer rows.Close()

	out := make([]domain.Category, 0, f.Limit)
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, 0, mapErr(err)
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, mapErr(err)
	}

	sqlStr, args, _ = cq.ToSql()
	r.logSQL("CategoriesList.count", sqlStr, args)
	var total int
	if err := r.pool.QueryRow(ctx, sqlStr, args...).Scan(&total); err != nil {
		return nil, 0, mapErr(err)
	}
	return out, total, nil
}

func (r *PGRepo) CategoriesAll(ctx context.Context) ([]domain.Category, error) {
	q := r.qb().Select(categoryCols).From(r.table("categories")).OrderBy("name ASC")

	sqlStr, args, _ := q.ToSql()
	r.logSQL("CategoriesAll", sqlStr, args)

	rows, err := r.pool.Query(ctx, sqlStr, args...)
	if err != nil {
		return nil, mapErr(err)
	}
	defer rows.Close()

	var out []domain.Category
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, mapErr(err)
		}
		out = append(out, c)
	}
	return out, mapErr(rows.Err())
}

func (r *PGRepo) UpdateCategory(ctx context.Context, id domain.CategoryID, p domain.CategoryPatch) (domain.Category, error) {
	q := r.qb().Update(r.table("categories")).
		Set("updated_at", sq.Expr("now()")).
		Where(sq.Eq{"id": id}).
		Suffix("RETURNING " + categoryCols)

	if p.Name != nil {
		q = q.Set("name", *p.Name)
	}
	if p.Description != nil {
		q = q.Set("description", *p.Description)
	}
	if p.Color != nil {
		q = q.Set("color", *p.Color)
	}

	sqlStr, args, _ := q.ToSql()
	r.logSQL("UpdateCategory", sqlStr, args)

	out, err := scanCategory(r.pool.QueryRow(ctx, sqlStr, args...))
	if err != nil {
		return domain.Category{}, mapErr(err)
	}
	return out, nil
}

func (r *PGRepo) DeleteCategory(ctx context.Context, id domain.CategoryID) error {
	q := r.qb().Delete(r.table("categories")).Where(sq.Eq{"id": id})

	sqlStr, args, _ := q.ToSql()
	r.logSQL("DeleteCategory", sqlStr, args)

	tag, err := r.pool.Exec(ctx, sqlStr, args...)
	if err != nil {
		return mapErr(err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
