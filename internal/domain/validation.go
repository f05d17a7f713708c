package domain

import (
	"regexp"
	"strings"
)

var (
	emailRe = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
	colorRe = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)
)

func ValidEmail(s string) bool { return emailRe.MatchString(s) }

// Пароль: минимум 8 символов. Детальную политику держим в одном месте.
func ValidPassword(s string) bool { return len(s) >= 8 }

// Цвет рубрики: hex вида #8B5CF6 (пустой — допустим)
func ValidColor(s string) bool { return s == "" || colorRe.MatchString(s) }

func ValidArticleStatus(s string) bool {
	return s == ArticleStatusDraft || s == ArticleStatusPublished
}

func ValidLocationStatus(s string) bool {
	return s == LocationStatusActive || s == LocationStatusInactive
}

type Field struct {
	Name  string
	Value string
}

// MissingFields возвращает имена пустых обязательных полей (в порядке объявления)
func MissingFields(fields ...Field) []string {
	var out []string
	for _, f := range fields {
		if strings.TrimSpace(f.Value) == "" {
			out = append(out, f.Name)
		}
	}
	return out
}
