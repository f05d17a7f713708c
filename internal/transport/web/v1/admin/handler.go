package admin

import (
	"log"

	"github.com/EgorLis/news-cms/internal/domain"
	"github.com/EgorLis/news-cms/internal/service"
)

type Handler struct {
	Log      *log.Logger
	Admins   *service.AdminService
	Sessions domain.SessionManager
}

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type adminResponse struct {
	Admin domain.Admin `json:"admin"`
}
