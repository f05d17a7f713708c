package postgres

import (
	"context"
	"encoding/json"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/EgorLis/news-cms/internal/domain"
)

const shortCols = "id, title, video_image, thumbnail_image, description, category_id, tags, related_links, created_at, updated_at"

func scanShort(row interface{ Scan(...any) error }) (domain.Short, error) {
	var s domain.Short
	var links []byte
	err := row.Scan(&s.ID, &s.Title, &s.VideoImage, &s.ThumbnailImage, &s.Description,
		&s.CategoryID, &s.Tags, &links, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return domain.Short{}, err
	}
	if len(links) > 0 {
		if err := json.Unmarshal(links, &s.RelatedLinks); err != nil {
			return domain.Short{}, err
		}
	}
	return s, nil
}

func (r *PGRepo) CreateShort(ctx context.Context, s domain.Short) (domain.Short, error) {
	links, err := json.Marshal(s.RelatedLinks)
	if err != nil {
		return domain.Short{}, err
	}
	if s.Tags == nil {
		s.Tags = []string{}
	}

	q := r.qb().Insert(r.table("shorts")).
		Columns("title", "video_image", "thumbnail_image", "description", "category_id", "tags", "related_links").
		Values(s.Title, s.VideoImage, s.ThumbnailImage, s.Description, s.CategoryID, s.Tags, links).
		Suffix("RETURNING " + shortCols)

	sqlStr, args, _ := q.ToSql()
	r.logSQL("CreateShort", sqlStr, args)

	start := time.Now()
	out, err := scanShort(r.pool.QueryRow(ctx, sqlStr, args...))
	if err != nil {
		r.logger.Printf("CreateShort scan error after %s: %v", time.Since(start), err)
		return domain.Short{}, mapErr(err)
	}
	r.logger.Printf("CreateShort ok in %s id=%s title=%q", time.Since(start), out.ID, out.Title)
	return out, nil
}

func (r *PGRepo) ShortByID(ctx context.Context, id domain.ShortID) (domain.Short, error) {
	q := r.qb().Select(shortCols).From(r.table("shorts")).Where(sq.Eq{"id": id})

	sqlStr, args, _ := q.ToSql()
	r.logSQL("ShortByID", sqlStr, args)

	out, err := scanShort(r.pool.QueryRow(ctx, sqlStr, args...))
	if err != nil {
		return domain.Short{}, mapErr(err)
	}
	return out, nil
}

func (r *PGRepo) ShortsList(ctx context.Context, f domain.ListFilter) ([]domain.Short, int, error) {
	q := r.qb().Select(shortCols).From(r.table("shorts")).
		OrderBy("created_at DESC").
		Offset(uint64(f.Skip())).Limit(uint64(f.Limit))
	cq := r.qb().Select("count(*)").From(r.table("shorts"))
	if f.Search != "" {
		like := sq.ILike{"title": "%" + f.Search + "%"}
		q = q.Where(like)
		cq = cq.Where(like)
	}

	sqlStr, args, _ := q.ToSql()
	r.logSQL("ShortsList", sqlStr, args)

	rows, err := r.pool.Query(ctx, sqlStr, args...)
	if err != nil {
		return nil, 0, mapErr(err)
	}
	defer rows.Close()

	out := make([]domain.Short, 0, f.Limit)
	for rows.Next() {
		s, err := scanShort(rows)
		if err != nil {
			return nil, 0, mapErr(err)
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, mapErr(err)
	}

	sqlStr, args, _ = cq.ToSql()
	r.logSQL("ShortsList.count", sqlStr, args)
	var total int
	if err := r.pool.QueryRow(ctx, sqlStr, args...).Scan(&total); err != nil {
		return nil, 0, mapErr(err)
	}
	return out, total, nil
}

func (r *PGRepo) UpdateShort(ctx context.Context, id domain.ShortID, p domain.ShortPatch) (domain.Short, error) {
	q := r.qb().Update(r.table("shorts")).
		Set("updated_at", sq.Expr("now()")).
		Where(sq.Eq{"id": id}).
		Suffix("RETURNING " + shortCols)

	if p.Title != nil {
		q = q.Set("title", *p.Title)
	}
	if p.VideoImage != nil {
		q = q.Set("video_image", *p.VideoImage)
	}
	if p.ThumbnailImage != nil {
		q = q.Set("thumbnail_image", *p.ThumbnailImage)
	}
	if p.Description != nil {
		q = q.Set("description", *p.Description)
	}
	if p.CategoryID != nil {
		q = q.Set("category_id", *p.CategoryID)
	}
	if p.Tags != nil {
		q = q.Set("tags", *p.Tags)
	}
	if p.RelatedLinks != nil {
		links, err := json.Marshal(*p.RelatedLinks)
		if err != nil {
			return domain.Short{}, err
		}
		q = q.Set("related_links", links)
	}

	sqlStr, args, _ := q.ToSql()
	r.logSQL("UpdateShort", sqlStr, args)

	out, err := scanShort(r.pool.QueryRow(ctx, sqlStr, args...))
	if err != nil {
		return domain.Short{}, mapErr(err)
	}
	return out, nil
}

func (r *PGRepo) DeleteShort(ctx context.Context, id domain.ShortID) error {
	q := r.qb().Delete(r.table("shorts")).Where(sq.Eq{"id": id})

	sqlStr, args, _ := q.ToSql()
	r.logSQL("DeleteShort", sqlStr, args)

	tag, err := r.pool.Exec(ctx, sqlStr, args...)
	if err != nil {
		return mapErr(err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
