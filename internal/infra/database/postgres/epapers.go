package postgres

import (
	"context"
	"encoding/json"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/EgorLis/news-cms/internal/domain"
)

const epaperCols = "id, publication_name, publication_date, city, pages, created_at, updated_at"

func scanEPaper(row interface{ Scan(...any) error }) (domain.EPaper, error) {
	var e domain.EPaper
	var pages []byte
	err := row.Scan(&e.ID, &e.PublicationName, &e.PublicationDate, &e.City, &pages, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		return domain.EPaper{}, err
	}
	if len(pages) > 0 {
		if err := json.Unmarshal(pages, &e.Pages); err != nil {
			return domain.EPaper{}, err
		}
	}
	return e, nil
}

func (r *PGRepo) CreateEPaper(ctx context.Context, e domain.EPaper) (domain.EPaper, error) {
	pages, err := json.Marshal(e.Pages)
	if err != nil {
		return domain.EPaper{}, err
	}

	q := r.qb().Insert(r.table("epapers")).
		Columns("publication_name", "publication_date", "city", "pages").
		Values(e.PublicationName, e.PublicationDate, e.City, pages).
		Suffix("RETURNING " + epaperCols)

	sqlStr, args, _ := q.ToSql()
	r.logSQL("CreateEPaper", sqlStr, args)

	start := time.Now()
	out, err := scanEPaper(r.pool.QueryRow(ctx, sqlStr, args...))
	if err != nil {
		r.logger.Printf("CreateEPaper scan error after %s: %v", time.Since(start), err)
		return domain.EPaper{}, mapErr(err)
	}
	r.logger.Printf("CreateEPaper ok in %s id=%s name=%q", time.Since(start), out.ID, out.PublicationName)
	return out, nil
}

func (r *PGRepo) EPaperByID(ctx context.Context, id domain.EPaperID) (domain.EPaper, error) {
	q := r.qb().Select(epaperCols).From(r.table("epapers")).Where(sq.Eq{"id": id})

	sqlStr, args, _ := q.ToSql()
	r.logSQL("EPaperByID", sqlStr, args)

	out, err := scanEPaper(r.pool.QueryRow(ctx, sqlStr, args...))
	if err != nil {
		return domain.EPaper{}, mapErr(err)
	}
	return out, nil
}

func (r *PGRepo) EPapersList(ctx context.Context, f domain.ListFilter) ([]domain.EPaper, int, error) {
	q := r.qb().Select(epaperCols).From(r.table("epapers")).
		OrderBy("publication_date DESC").
		Offset(uint64(f.Skip())).Limit(uint64(f.Limit))
	cq := r.qb().Select("count(*)").From(r.table("epapers"))
	if f.Search != "" {
		like := sq.Or{
			sq.ILike{"publication_name": "%" + f.Search + "%"},
			sq.ILike{"city": "%" + f.Search + "%"},
		}
		q = q.Where(like)
		cq = cq.Where(like)
	}

	sqlStr, args, _ := q.ToSql()
	r.logSQL("EPapersList", sqlStr, args)

	rows, err := r.pool.Query(ctx, sqlStr, args...)
	if err != nil {
		return nil, 0, mapErr(err)
	}
	defer rows.Close()

	out := make([]domain.EPaper, 0, f.Limit)
	for rows.Next() {
		e, err := scanEPaper(rows)
		if err != nil {
			return nil, 0, mapErr(err)
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, mapErr(err)
	}

	sqlStr, args, _ = cq.ToSql()
	r.logSQL("EPapersList.count", sqlStr, args)
	var total int
	if err := r.pool.QueryRow(ctx, sqlStr, args...).Scan(&total); err != nil {
		return nil, 0, mapErr(err)
	}
	return out, total, nil
}

func (r *PGRepo) EPaperByDateCity(ctx context.Context, date time.Time, city string) (domain.EPaper, error) {
	q := r.qb().Select(epaperCols).From(r.table("epapers")).
		Where(sq.Expr("publication_date = ? AND lower(city) = lower(?)", date, city))

	sqlStr, args, _ := q.ToSql()
	r.logSQL("EPaperByDateCity", sqlStr, args)

	out, err := scanEPaper(r.pool.QueryRow(ctx, sqlStr, args...))
	if err != nil {
		return domain.EPaper{}, mapErr(err)
	}
	return out, nil
}

func (r *PGRepo) UpdateEPaper(ctx context.Context, id domain.EPaperID, p domain.EPaperPatch) (domain.EPaper, error) {
	q := r.qb().Update(r.table("epapers")).
		Set("updated_at", sq.Expr("now()")).
		Where(sq.Eq{"id": id}).
		Suffix("RETURNING " + epaperCols)

	if p.PublicationName != nil {
		q = q.Set("publication_name", *p.PublicationName)
	}
	if p.PublicationDate != nil {
		q = q.Set("publication_date", *p.PublicationDate)
	}
	if p.City != nil {
		q = q.Set("city", *p.City)
	}
	if p.Pages != nil {
		pages, err := json.Marshal(*p.Pages)
		if err != nil {
			return domain.EPaper{}, err
		}
		q = q.Set("pages", pages)
	}

	sqlStr, args, _ := q.ToSql()
	r.logSQL("UpdateEPaper", sqlStr, args)

	out, err := scanEPaper(r.pool.QueryRow(ctx, sqlStr, args...))
	if err != nil {
		return domain.EPaper{}, mapErr(err)
	}
	return out, nil
}

func (r *PGRepo) DeleteEPaper(ctx context.Context, id domain.EPaperID) error {
	q := r.qb().Delete(r.table("epapers")).Where(sq.Eq{"id": id})

	sqlStr, args, _ := q.ToSql()
	r.logSQL("DeleteEPaper", sqlStr, args)

	tag, err := r.pool.Exec(ctx, sqlStr, args...)
	if err != nil {
		return mapErr(err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
