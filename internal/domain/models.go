package domain

import (
	"time"

	"github.com/google/uuid"
)

// Базовые идентификаторы
type AdminID = uuid.UUID
type ArticleID = uuid.UUID
type CategoryID = uuid.UUID
type LocationID = uuid.UUID
type ShortID = uuid.UUID
type EPaperID = uuid.UUID

// Статусы ресурсов
const (
	ArticleStatusDraft     = "draft"
	ArticleStatusPublished = "published"

	LocationStatusActive   = "active"
	LocationStatusInactive = "inactive"
)

const RoleAdmin = "admin"

// Администратор
type Admin struct {
	ID        AdminID   `json:"id"`
	Email     string    `json:"email"`
	PassHash  []byte    `json:"-"` // никогда не отдаём наружу
	Roles     []string  `json:"roles"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (a Admin) HasRole(role string) bool {
	for _, r := range a.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// Статья
type Article struct {
	ID             ArticleID  `json:"id"`
	ColoredHeading string     `json:"coloredHeading"`
	RestHeading    string     `json:"restHeading"`
	ArticleTitle   string     `json:"articleTitle"`
	Author         string     `json:"author"`
	CategoryID     CategoryID `json:"category"`
	Status         string     `json:"status"` // draft | published
	FeaturedImage  string     `json:"featuredImage"`
	Excerpt        string     `json:"excerpt"`
	Content        string     `json:"content"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

// Рубрика
type Category struct {
	ID          CategoryID `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description,omitempty"`
	Color       string     `json:"color,omitempty"` // hex вида #8B5CF6
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// Локация (город/регион выпуска)
type Location struct {
	ID          LocationID `json:"id"`
	Name        string     `json:"name"`
	Country     string     `json:"country"`
	Region      string     `json:"region,omitempty"`
	Description string     `json:"description,omitempty"`
	Status      string     `json:"status"` // active | inactive
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// Видео-шорт
type Short struct {
	ID             ShortID       `json:"id"`
	Title          string        `json:"title"`
	VideoImage     string        `json:"videoImage"`
	ThumbnailImage string        `json:"thumbnailImage"`
	Description    string        `json:"description"`
	CategoryID     CategoryID    `json:"category"`
	Tags           []string      `json:"tags,omitempty"`
	RelatedLinks   []RelatedLink `json:"relatedLinks,omitempty"`
	CreatedAt      time.Time     `json:"created_at"`
	UpdatedAt      time.Time     `json:"updated_at"`
}

type RelatedLink struct {
	URL       string `json:"url"`
	LinkTitle string `json:"linkTitle,omitempty"`
}

// Электронная газета: выпуск с постраничными файлами
type EPaper struct {
	ID              EPaperID     `json:"id"`
	PublicationName string       `json:"publicationName"`
	PublicationDate time.Time    `json:"publicationDate"`
	City            string       `json:"city"`
	Pages           []EPaperPage `json:"pages"`
	CreatedAt       time.Time    `json:"created_at"`
	UpdatedAt       time.Time    `json:"updated_at"`
}

type EPaperPage struct {
	PageNumber int    `json:"pageNumber"`
	FileURL    string `json:"fileUrl"`
}

// Запись refresh-токена: при ротации не удаляется, а помечается blacklisted
type RefreshToken struct {
	Token       string    `json:"-"`
	AdminID     AdminID   `json:"admin_id"`
	ExpiresAt   time.Time `json:"expires_at"`
	Blacklisted bool      `json:"blacklisted"`
	CreatedAt   time.Time `json:"created_at"`
}
