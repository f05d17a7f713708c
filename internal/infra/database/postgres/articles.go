package postgres

import (
	"context"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/EgorLis/news-cms/internal/domain"
)

const articleCols = "id, colored_heading, rest_heading, article_title, author, category_id, status, featured_image, excerpt, content, created_at, updated_at"

func scanArticle(row interface{ Scan(...any) error }) (domain.Article, error) {
	var a domain.Article
	err := row.Scan(
		&a.ID, &a.ColoredHeading, &a.RestHeading, &a.ArticleTitle, &a.Author,
		&a.CategoryID, &a.Status, &a.FeaturedImage, &a.Excerpt, &a.Content,
		&a.CreatedAt, &a.UpdatedAt,
	)
	return a, err
}

func (r *PGRepo) CreateArticle(ctx context.Context, a domain.Article) (domain.Article, error) {
	q := r.qb().Insert(r.table("articles")).
		Columns("colored_heading", "rest_heading", "article_title", "author",
			"category_id", "status", "featured_image", "excerpt", "content").
		Values(a.ColoredHeading, a.RestHeading, a.ArticleTitle, a.Author,
			a.CategoryID, a.Status, a.FeaturedImage, a.Excerpt, a.Content).
		Suffix("RETURNING " + articleCols)

	sqlStr, args, _ := q.ToSql()
	r.logSQL("CreateArticle", sqlStr, args)

	start := time.Now()
	out, err := scanArticle(r.pool.QueryRow(ctx, sqlStr, args...))
	if err != nil {
		r.logger.Printf("CreateArticle scan error after %s: %v", time.Since(start), err)
		return domain.Article{}, mapErr(err)
	}
	r.logger.Printf("CreateArticle ok in %s id=%s title=%q", time.Since(start), out.ID, out.ArticleTitle)
	return out, nil
}

func (r *PGRepo) ArticleByID(ctx context.Context, id domain.ArticleID) (domain.Article, error) {
	q := r.qb().Select(articleCols).From(r.table("articles")).Where(sq.Eq{"id": id})

	sqlStr, args, _ := q.ToSql()
	r.logSQL("ArticleByID", sqlStr, args)

	out, err := scanArticle(r.pool.QueryRow(ctx, sqlStr, args...))
	if err != nil {
		return domain.Article{}, mapErr(err)
	}
	return out, nil
}

func (r *PGRepo) ArticleByTitle(ctx context.Context, title string, exclude *domain.ArticleID) (domain.Article, error) {
	q := r.qb().Select(articleCols).From(r.table("articles")).
		Where(sq.Expr("lower(article_title) = lower(?)", title))
	if exclude != nil {
		q = q.Where(sq.NotEq{"id": *exclude})
	}

	sqlStr, args, _ := q.ToSql()
	r.logSQL("ArticleByTitle", sqlStr, args)

	out, err := scanArticle(r.pool.QueryRow(ctx, sqlStr, args...))
	if err != nil {
		return domain.Article{}, mapErr(err)
	}
	return out, nil
}

func (r *PGRepo) ArticlesList(ctx context.Context, f domain.ArticleFilter) ([]domain.Article, int, error) {
	cond := sq.And{}
	if f.Status != "" {
		cond = append(cond, sq.Eq{"status": f.Status})
	}
	if f.Search != "" {
		cond = append(cond, sq.ILike{"article_title": "%" + f.Search + "%"})
	}

	q := r.qb().Select(articleCols).From(r.table("articles")).
		OrderBy("created_at DESC").
		Offset(uint64(f.Skip())).Limit(uint64(f.Limit))
	cq := r.qb().Select("count(*)").From(r.table("articles"))
	if len(cond) > 0 {
		q = q.Where(cond)
		cq = cq.Where(cond)
	}

	sqlStr, args, _ := q.ToSql()
	r.logSQL("ArticlesList", sqlStr, args)

	start := time.Now()
	rows, err := r.pool.Query(ctx, sqlStr, args...)
	if err != nil {
		return nil, 0, mapErr(err)
	}
	defer rows.Close()

	out := make([]domain.Article, 0, f.Limit)
	for rows.Next() {
		a, err := scanArticle(rows)
		if err != nil {
			return nil, 0, mapErr(err)
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, mapErr(err)
	}

	sqlStr, args, _ = cq.ToSql()
	r.logSQL("ArticlesList.count", sqlStr, args)
	var total int
	if err := r.pool.QueryRow(ctx, sqlStr, args...).Scan(&total); err != nil {
		return nil, 0, mapErr(err)
	}

	r.logger.Printf("ArticlesList ok in %s n=%d total=%d", time.Since(start), len(out), total)
	return out, total, nil
}

func (r *PGRepo) ArticlesByStatus(ctx context.Context, status string) ([]domain.Article, error) {
	q := r.qb().Select(articleCols).From(r.table("articles")).
		Where(sq.Eq{"status": status}).
		OrderBy("created_at DESC")

	sqlStr, args, _ := q.ToSql()
	r.logSQL("ArticlesByStatus", sqlStr, args)

	rows, err := r.pool.Query(ctx, sqlStr, args...)
	if err != nil {
		return nil, mapErr(err)
	}
	defer rows.Close()

	var out []domain.Article
	for rows.Next() {
		a, err := scanArticle(rows)
		if err != nil {
			return nil, mapErr(err)
		}
		out = append(out, a)
	}
	return out, mapErr(rows.Err())
}

func (r *PGRepo) SearchArticles(ctx context.Context, term, status string) ([]domain.Article, error) {
	like := "%" + term + "%"
	cond := sq.And{
		sq.Or{
			sq.ILike{"article_title": like},
			sq.ILike{"colored_heading": like},
			sq.ILike{"rest_heading": like},
			sq.ILike{"author": like},
		},
	}
	if status != "" {
		cond = append(cond, sq.Eq{"status": status})
	}

	q := r.qb().Select(articleCols).From(r.table("articles")).
		Where(cond).OrderBy("created_at DESC")

	sqlStr, args, _ := q.ToSql()
	r.logSQL("SearchArticles", sqlStr, args)

	rows, err := r.pool.Query(ctx, sqlStr, args...)
	if err != nil {
		return nil, mapErr(err)
	}
	defer rows.Close()

	var out []domain.Article
	for rows.Next() {
		a, err := scanArticle(rows)
		if err != nil {
			return nil, mapErr(err)
		}
		out = append(out, a)
	}
	return out, mapErr(rows.Err())
}

func (r *PGRepo) UpdateArticle(ctx context.Context, id domain.ArticleID, p domain.ArticlePatch) (domain.Article, error) {
	q := r.qb().Update(r.table("articles")).
		Set("updated_at", sq.Expr("now()")).
		Where(sq.Eq{"id": id}).
		Suffix("RETURNING " + articleCols)

	if p.ColoredHeading != nil {
		q = q.Set("colored_heading", *p.ColoredHeading)
	}
	if p.RestHeading != nil {
		q = q.Set("rest_heading", *p.RestHeading)
	}
	if p.ArticleTitle != nil {
		q = q.Set("article_title", *p.ArticleTitle)
	}
	if p.Author != nil {
		q = q.Set("author", *p.Author)
	}
	if p.CategoryID != nil {
		q = q.Set("category_id", *p.CategoryID)
	}
	if p.Status != nil {
		q = q.Set("status", *p.Status)
	}
	if p.FeaturedImage != nil {
		q = q.Set("featured_image", *p.FeaturedImage)
	}
	if p.Excerpt != nil {
		q = q.Set("excerpt", *p.Excerpt)
	}
	if p.Content != nil {
		q = q.Set("content", *p.Content)
	}

	sqlStr, args, _ := q.ToSql()
	r.logSQL("UpdateArticle", sqlStr, args)

	start := time.Now()
	out, err := scanArticle(r.pool.QueryRow(ctx, sqlStr, args...))
	if err != nil {
		r.logger.Printf("UpdateArticle scan error after %s: %v", time.Since(start), err)
		return domain.Article{}, mapErr(err)
	}
	r.logger.Printf("UpdateArticle ok in %s id=%s", time.Since(start), out.ID)
	return out, nil
}

func (r *PGRepo) UpdateArticleStatus(ctx context.Context, id domain.ArticleID, status string) (domain.Article, error) {
	q := r.qb().Update(r.table("articles")).
		Set("status", status).
		Set("updated_at", sq.Expr("now()")).
		Where(sq.Eq{"id": id}).
		Suffix("RETURNING " + articleCols)

	sqlStr, args, _ := q.ToSql()
	r.logSQL("UpdateArticleStatus", sqlStr, args)

	out, err := scanArticle(r.pool.QueryRow(ctx, sqlStr, args...))
	if err != nil {
		return domain.Article{}, mapErr(err)
	}
	return out, nil
}

func (r *PGRepo) DeleteArticle(ctx context.Context, id domain.ArticleID) error {
	q := r.qb().Delete(r.table("articles")).Where(sq.Eq{"id": id})

	sqlStr, args, _ := q.ToSql()
	r.logSQL("DeleteArticle", sqlStr, args)

	tag, err := r.pool.Exec(ctx, sqlStr, args...)
	if err != nil {
		return mapErr(err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
