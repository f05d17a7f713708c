package v1

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/EgorLis/news-cms/internal/domain"
)

// IDFromPath разбирает path-параметр {id} как UUID
func IDFromPath(r *http.Request) (uuid.UUID, error) {
	raw := r.PathValue("id")
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.UUID{}, fmt.Errorf("%w: invalid id %q", domain.ErrBadParams, raw)
	}
	return id, nil
}

// DecodeJSON — строгий разбор тела: неизвестные поля не ошибка,
// но мусор после объекта — ошибка
func DecodeJSON(r *http.Request, dst any) error {
	ct := r.Header.Get("Content-Type")
	if ct != "" && !strings.HasPrefix(ct, "application/json") {
		return fmt.Errorf("%w: expected application/json", domain.ErrBadParams)
	}
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(dst); err != nil {
		return fmt.Errorf("%w: invalid json body", domain.ErrBadParams)
	}
	return nil
}

// ListFilterFromQuery собирает page/limit/search из query-строки
func ListFilterFromQuery(r *http.Request) domain.ListFilter {
	q := r.URL.Query()
	return domain.ListFilter{
		Page:   intQuery(q.Get("page"), 1),
		Limit:  intQuery(q.Get("limit"), 10),
		Search: strings.TrimSpace(q.Get("search")),
	}
}

func intQuery(s string, def int) int {
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return def
	}
	return n
}
