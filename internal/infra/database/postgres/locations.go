package postgres

import (
	"context"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/EgorLis/news-cms/internal/domain"
)

const locationCols = "id, name, country, region, description, status, created_at, updated_at"

func scanLocation(row interface{ Scan(...any) error }) (domain.Location, error) {
	var l domain.Location
	err := row.Scan(&l.ID, &l.Name, &l.Country, &l.Region, &l.Description, &l.Status, &l.CreatedAt, &l.UpdatedAt)
	return l, err
}

func (r *PGRepo) CreateLocation(ctx context.Context, l domain.Location) (domain.Location, error) {
	q := r.qb().Insert(r.table("locations")).
		Columns("name", "country", "region", "description", "status").
		Values(l.Name, l.Country, l.Region, l.Description, l.Status).
		Suffix("RETURNING " + locationCols)

	sqlStr, args, _ := q.ToSql()
	r.logSQL("CreateLocation", sqlStr, args)

	start := time.Now()
	out, err := scanLocation(r.pool.QueryRow(ctx, sqlStr, args...))
	if err != nil {
		r.logger.Printf("CreateLocation scan error after %s: %v", time.Since(start), err)
		return domain.Location{}, mapErr(err)
	}
	r.logger.Printf("CreateLocation ok in %s id=%s name=%q", time.Since(start), out.ID, out.Name)
	return out, nil
}

func (r *PGRepo) LocationByID(ctx context.Context, id domain.LocationID) (domain.Location, error) {
	q := r.qb().Select(locationCols).From(r.table("locations")).Where(sq.Eq{"id": id})

	sqlStr, args, _ := q.ToSql()
	r.logSQL("LocationByID", sqlStr, args)

	out, err := scanLocation(r.pool.QueryRow(ctx, sqlStr, args...))
	if err != nil {
		return domain.Location{}, mapErr(err)
	}
	return out, nil
}

func (r *PGRepo) LocationByNameCountry(ctx context.Context, name, country string, exclude *domain.LocationID) (domain.Location, error) {
	q := r.qb().Select(locationCols).From(r.table("locations")).
		Where(sq.Expr("lower(name) = lower(?) AND lower(country) = lower(?)", name, country))
	if exclude != nil {
		q = q.Where(sq.NotEq{"id": *exclude})
	}

	sqlStr, args, _ := q.ToSql()
	r.logSQL("LocationByNameCountry", sqlStr, args)

	out, err := scanLocation(r.pool.QueryRow(ctx, sqlStr, args...))
	if err != nil {
		return domain.Location{}, mapErr(err)
	}
	return out, nil
}

func (r *PGRepo) LocationsList(ctx context.Context, f domain.ListFilter) ([]domain.Location, int, error) {
	q := r.qb().Select(locationCols).From(r.table("locations")).
		OrderBy("created_at DESC").
		Offset(uint64(f.Skip())).Limit(uint64(f.Limit))
	cq := r.qb().Select("count(*)").From(r.table("locations"))
	if f.Search != "" {
		like := sq.Or{
			sq.ILike{"name": "%" + f.Search + "%"},
			sq.ILike{"country": "%" + f.Search + "%"},
		}
		q = q.Where(like)
		cq = cq.Where(like)
	}

	sqlStr, args, _ := q.ToSql()
	r.logSQL("LocationsList", sqlStr, args)

	rows, err := r.pool.Query(ctx, sqlStr, args...)
	if err != nil {
		return nil, 0, mapErr(err)
	}
	defer rows.Close()

	out := make([]domain.Location, 0, f.Limit)
	for rows.Next() {
		l, err := scanLocation(rows)
		if err != nil {
			return nil, 0, mapErr(err)
		}
		out = append(out, l)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, mapErr(err)
	}

	sqlStr, args, _ = cq.ToSql()
	r.logSQL("LocationsList.count", sqlStr, args)
	var total int
	if err := r.pool.QueryRow(ctx, sqlStr, args...).Scan(&total); err != nil {
		return nil, 0, mapErr(err)
	}
	return out, total, nil
}

func (r *PGRepo) LocationsByStatus(ctx context.Context, status string) ([]domain.Location, error) {
	q := r.qb().Select(locationCols).From(r.table("locations")).
		Where(sq.Eq{"status": status}).
		OrderBy("name ASC")

	sqlStr, args, _ := q.ToSql()
	r.logSQL("LocationsByStatus", sqlStr, args)

	rows, err := r.pool.Query(ctx, sqlStr, args...)
	if err != nil {
		return nil, mapErr(err)
	}
	defer rows.Close()

	var out []domain.Location
	for rows.Next() {
		l, err := scanLocation(rows)
		if err != nil {
			return nil, mapErr(err)
		}
		out = append(out, l)
	}
	return out, mapErr(rows.Err())
}

func (r *PGRepo) UpdateLocation(ctx context.Context, id domain.LocationID, p domain.LocationPatch) (domain.Location, error) {
	q := r.qb().Update(r.table("locations")).
		Set("updated_at", sq.Expr("now()")).
		Where(sq.Eq{"id": id}).
		Suffix("RETURNING " + locationCols)

	if p.Name != nil {
		q = q.Set("name", *p.Name)
	}
	if p.Country != nil {
		q = q.Set("country", *p.Country)
	}
	if p.Region != nil {
		q = q.Set("region", *p.Region)
	}
	if p.Description != nil {
		q = q.Set("description", *p.Description)
	}
	if p.Status != nil {
		q = q.Set("status", *p.Status)
	}

	sqlStr, args, _ := q.ToSql()
	r.logSQL("UpdateLocation", sqlStr, args)

	out, err := scanLocation(r.pool.QueryRow(ctx, sqlStr, args...))
	if err != nil {
		return domain.Location{}, mapErr(err)
	}
	return out, nil
}

func (r *PGRepo) UpdateLocationStatus(ctx context.Context, id domain.LocationID, status string) (domain.Location, error) {
	q := r.qb().Update(r.table("locations")).
		Set("status", status).
		Set("updated_at", sq.Expr("now()")).
		Where(sq.Eq{"id": id}).
		Suffix("RETURNING " + locationCols)

	sqlStr, args, _ := q.ToSql()
	r.logSQL("UpdateLocationStatus", sqlStr, args)

	out, err := scanLocation(r.pool.QueryRow(ctx, sqlStr, args...))
	if err != nil {
		return domain.Location{}, mapErr(err)
	}
	return out, nil
}

func (r *PGRepo) DeleteLocation(ctx context.Context, id domain.LocationID) error {
	q := r.qb().Delete(r.table("locations")).Where(sq.Eq{"id": id})

	sqlStr, args, _ := q.ToSql()
	r.logSQL("DeleteLocation", sqlStr, args)

	tag, err := r.pool.Exec(ctx, sqlStr, args...)
	if err != nil {
		return mapErr(err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
