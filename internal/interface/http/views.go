package handlers

import (
	"time"

	"github.com/oksasatya/go-auth-portal/internal/domain/entity"
)

// AccountView is the only shape in which an account leaves the API.
// It never carries the password digest, verification code or reset token.
type AccountView struct {
	ID          string     `json:"id"`
	Email       string     `json:"email"`
	Name        string     `json:"name"`
	IsVerified  bool       `json:"isVerified"`
	LastLoginAt *time.Time `json:"lastLogin,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

func NewAccountView(a *entity.Account) AccountView {
	return AccountView{
		ID:          a.ID,
		Email:       a.Email,
		Name:        a.Name,
		IsVerified:  a.IsVerified,
		LastLoginAt: a.LastLoginAt,
		CreatedAt:   a.CreatedAt,
		UpdatedAt:   a.UpdatedAt,
	}
}

type NewsView struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Author      string    `json:"author"`
	Category    string    `json:"category"`
	Image       string    `json:"image"`
	Date        time.Time `json:"date"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func NewNewsView(n *entity.News) NewsView {
	return NewsView{
		ID:          n.ID,
		Title:       n.Title,
		Description: n.Description,
		Author:      n.Author,
		Category:    n.Category,
		Image:       n.Image,
		Date:        n.Date,
		CreatedAt:   n.CreatedAt,
		UpdatedAt:   n.UpdatedAt,
	}
}

type ServiceView struct {
	ID                string    `json:"id"`
	Name              string    `json:"name"`
	Description       string    `json:"description"`
	Logo              string    `json:"logo"`
	CommunicationRate float64   `json:"communicationRate"`
	Date              time.Time `json:"date"`
	CreatedAt         time.Time `json:"createdAt"`
	UpdatedAt         time.Time `json:"updatedAt"`
}

func NewServiceView(s *entity.Service) ServiceView {
	return ServiceView{
		ID:                s.ID,
		Name:              s.Name,
		Description:       s.Description,
		Logo:              s.Logo,
		CommunicationRate: s.CommunicationRate,
		Date:              s.Date,
		CreatedAt:         s.CreatedAt,
		UpdatedAt:         s.UpdatedAt,
	}
}
