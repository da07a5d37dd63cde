package handlers

import (
	"time"

	"github.com/pribylovaa/invest-tips/internal/models"
)

// Tip - JSON-представление идеи.
type Tip struct {
	ID             int64     `json:"id"`
	Title          string    `json:"title"`
	Description    string    `json:"description"`
	Content        string    `json:"content"`
	Category       string    `json:"category,omitempty"`
	RiskLevel      string    `json:"riskLevel,omitempty"`
	ExpectedReturn *float64  `json:"expectedReturn"`
	Tags           []string  `json:"tags"`
	Author         *Author   `json:"author,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
}

type Author struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// TipListResponse - страница списка/поиска.
type TipListResponse struct {
	Data        []Tip `json:"data"`
	TotalPages  int   `json:"totalPages"`
	CurrentPage int   `json:"currentPage"`
	TotalTips   int64 `json:"totalTips"`
}

// User - публичный профиль без хэша пароля.
type User struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type RegisterResponse struct {
	Message string `json:"message"`
	User    User   `json:"user"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
	User      User      `json:"user"`
}

// FavoriteRequest - тело POST/DELETE избранного.
type FavoriteRequest struct {
	InvestmentTipID int64 `json:"investmentTipId"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

func tipFromModel(t models.Tip) Tip {
	out := Tip{
		ID:             t.ID,
		Title:          t.Title,
		Description:    t.Description,
		Content:        t.Content,
		Category:       t.Category,
		RiskLevel:      t.RiskLevel,
		ExpectedReturn: t.ExpectedReturn,
		Tags:           t.Tags,
		CreatedAt:      t.CreatedAt,
	}
	if out.Tags == nil {
		out.Tags = []string{}
	}
	if t.Author != nil {
		out.Author = &Author{ID: t.Author.ID.String(), Name: t.Author.Name}
	}
	return out
}

// tipsFromModels всегда возвращает не-nil срез: пустая страница кодируется как [].
func tipsFromModels(ts []models.Tip) []Tip {
	out := make([]Tip, 0, len(ts))
	for _, t := range ts {
		out = append(out, tipFromModel(t))
	}
	return out
}

func userFromModel(u models.User) User {
	return User{
		ID:        u.ID.String(),
		Name:      u.Name,
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
