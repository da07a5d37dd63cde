package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/pribylovaa/invest-tips/internal/config"
	"github.com/pribylovaa/invest-tips/internal/models"
	"github.com/pribylovaa/invest-tips/internal/service"
	"github.com/pribylovaa/invest-tips/internal/storage"
	"github.com/pribylovaa/invest-tips/mocks"
)

// Файл тестов HTTP-слоя: роутер + хендлеры + реальный service.Service
// поверх мок-хранилища. Проверяем контракт статусов и форму JSON.

func testCfg() config.Config {
	return config.Config{
		Auth: config.AuthConfig{
			JWTSecret:      "router-secret",
			AccessTokenTTL: time.Hour,
			Issuer:         "invest-tips",
			Audience:       []string{"invest-tips-web"},
		},
		LimitsConfig: config.LimitsConfig{Default: 10, Max: 100},
	}
}

type env struct {
	st  *mocks.MockStorage
	svc *service.Service
	h   http.Handler
}

func newEnv(t *testing.T) *env {
	t.Helper()
	ctrl := gomock.NewController(t)
	st := mocks.NewMockStorage(ctrl)
	svc := service.New(st, testCfg())

	h := NewRouter(svc, Options{
		Logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
		Timeout: time.Second,
		Auth:    svc,
	})

	return &env{st: st, svc: svc, h: h}
}

func (e *env) do(t *testing.T, method, target string, body any, token string) *httptest.ResponseRecorder {
	t.Helper()

	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		rd = bytes.NewReader(b)
	}

	req := httptest.NewRequest(method, target, rd)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rr := httptest.NewRecorder()
	e.h.ServeHTTP(rr, req)
	return rr
}

func decode[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &v))
	return v
}

type listBody struct {
	Data        []map[string]any `json:"data"`
	TotalPages  int              `json:"totalPages"`
	CurrentPage int              `json:"currentPage"`
	TotalTips   int64            `json:"totalTips"`
}

type errBody struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	RequestID string `json:"request_id"`
}

func ret(f float64) *float64 { return &f }

func TestListTips_OK_Shape(t *testing.T) {
	e := newEnv(t)

	e.st.EXPECT().ListTips(gomock.Any(),
		models.TipFilter{Category: "Stocks"},
		models.TipSort{Field: models.SortByTitle, Order: models.SortAsc},
		models.Window{Offset: 0, Limit: 10},
	).Return([]models.Tip{{ID: 1, Title: "A", ExpectedReturn: ret(5)}}, nil)
	e.st.EXPECT().CountTips(gomock.Any(), models.TipFilter{Category: "Stocks"}).Return(int64(15), nil)

	rr := e.do(t, http.MethodGet, "/tips?category=Stocks&sortBy=title&sortOrder=ASC&searchTerm=ignored", nil, "")
	require.Equal(t, http.StatusOK, rr.Code)
	require.NotEmpty(t, rr.Header().Get("X-Request-Id"))

	body := decode[listBody](t, rr)
	require.Len(t, body.Data, 1)
	require.Equal(t, 2, body.TotalPages)
	require.Equal(t, 1, body.CurrentPage)
	require.EqualValues(t, 15, body.TotalTips)
	require.Equal(t, "A", body.Data[0]["title"])
	require.Equal(t, []any{}, body.Data[0]["tags"])
}

func TestListTips_EmptyFirstPage_404(t *testing.T) {
	e := newEnv(t)

	e.st.EXPECT().ListTips(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil)
	e.st.EXPECT().CountTips(gomock.Any(), gomock.Any()).Return(int64(0), nil)

	rr := e.do(t, http.MethodGet, "/tips?riskLevel=extreme", nil, "")
	require.Equal(t, http.StatusNotFound, rr.Code)
	require.NotEmpty(t, decode[errBody](t, rr).Message)
}

func TestListTips_EmptyLaterPage_200WithEmptyData(t *testing.T) {
	e := newEnv(t)

	e.st.EXPECT().ListTips(gomock.Any(), gomock.Any(), gomock.Any(), models.Window{Offset: 40, Limit: 10}).Return(nil, nil)
	e.st.EXPECT().CountTips(gomock.Any(), gomock.Any()).Return(int64(15), nil)

	rr := e.do(t, http.MethodGet, "/tips?page=5", nil, "")
	require.Equal(t, http.StatusOK, rr.Code)
	require.Contains(t, rr.Body.String(), `"data":[]`)

	body := decode[listBody](t, rr)
	require.Equal(t, 5, body.CurrentPage)
	require.Equal(t, 2, body.TotalPages)
}

func TestSearchTips_BuildsFullFilter(t *testing.T) {
	e := newEnv(t)

	want := models.TipFilter{
		Search: "growth",
		Return: &models.ReturnRange{Min: ret(5), Max: ret(10)},
		Tags:   []string{"tech", "ai"},
	}

	e.st.EXPECT().ListTips(gomock.Any(), want, gomock.Any(), gomock.Any()).Return([]models.Tip{{ID: 2}}, nil)
	e.st.EXPECT().CountTips(gomock.Any(), want).Return(int64(1), nil)

	rr := e.do(t, http.MethodGet, "/tips/search?searchTerm=growth&minReturn=5&maxReturn=10&tags=Tech,,%20AI", nil, "")
	require.Equal(t, http.StatusOK, rr.Code)
}

func TestSearchTips_BadNumber_400(t *testing.T) {
	e := newEnv(t)

	rr := e.do(t, http.MethodGet, "/tips/search?minReturn=abc", nil, "")
	require.Equal(t, http.StatusBadRequest, rr.Code)

	rr = e.do(t, http.MethodGet, "/tips?page=two", nil, "")
	require.Equal(t, http.StatusBadRequest, rr.Code)

	rr = e.do(t, http.MethodGet, "/tips?page=9223372036854775807", nil, "")
	require.Equal(t, http.StatusBadRequest, rr.Code)
}

// TestListTips_RepeatedQuery_SameResponse - повтор запроса на неизменных данных даёт тот же ответ.
func TestListTips_RepeatedQuery_SameResponse(t *testing.T) {
	e := newEnv(t)

	tips := []models.Tip{
		{ID: 4, Title: "Growth picks", Category: "Stocks", RiskLevel: "high", Tags: []string{"tech"},
			CreatedAt: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)},
		{ID: 3, Title: "Index ETF", Category: "Stocks", RiskLevel: "low",
			CreatedAt: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)},
	}
	e.st.EXPECT().ListTips(gomock.Any(), gomock.Any(), gomock.Any(), models.Window{Offset: 0, Limit: 2}).
		Return(tips, nil).Times(2)
	e.st.EXPECT().CountTips(gomock.Any(), gomock.Any()).Return(int64(5), nil).Times(2)

	first := e.do(t, http.MethodGet, "/tips?category=Stocks&limit=2&sortBy=title&sortOrder=asc", nil, "")
	second := e.do(t, http.MethodGet, "/tips?category=Stocks&limit=2&sortBy=title&sortOrder=asc", nil, "")

	require.Equal(t, http.StatusOK, first.Code)
	require.Equal(t, first.Code, second.Code)
	require.JSONEq(t, first.Body.String(), second.Body.String())
}

func TestListTips_StorageFailure_500_NoLeak(t *testing.T) {
	e := newEnv(t)

	e.st.EXPECT().ListTips(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil, errors.New("pq: connection refused to 10.0.0.5"))

	rr := e.do(t, http.MethodGet, "/tips", nil, "")
	require.Equal(t, http.StatusInternalServerError, rr.Code)
	require.NotContains(t, rr.Body.String(), "10.0.0.5")
}

func TestGetTip(t *testing.T) {
	e := newEnv(t)

	e.st.EXPECT().TipByID(gomock.Any(), int64(7)).Return(&models.Tip{ID: 7, Title: "Bonds"}, nil)
	e.st.EXPECT().TipByID(gomock.Any(), int64(8)).Return(nil, storage.ErrNotFound)

	rr := e.do(t, http.MethodGet, "/tips/7", nil, "")
	require.Equal(t, http.StatusOK, rr.Code)
	require.Equal(t, "Bonds", decode[map[string]any](t, rr)["title"])

	rr = e.do(t, http.MethodGet, "/tips/8", nil, "")
	require.Equal(t, http.StatusNotFound, rr.Code)

	rr = e.do(t, http.MethodGet, "/tips/abc", nil, "")
	require.Equal(t, http.StatusBadRequest, rr.Code)
	require.NotEmpty(t, decode[errBody](t, rr).Message)
}

func TestRegister(t *testing.T) {
	e := newEnv(t)

	e.st.EXPECT().UserByEmail(gomock.Any(), "ann@example.com").Return(nil, storage.ErrNotFound)
	e.st.EXPECT().SaveUser(gomock.Any(), gomock.Any()).Return(nil)

	rr := e.do(t, http.MethodPost, "/api/auth/register",
		map[string]string{"name": "Ann", "email": "Ann@Example.com", "password": "Abcdef1!"}, "")
	require.Equal(t, http.StatusCreated, rr.Code)
	require.NotContains(t, rr.Body.String(), "password")

	rr = e.do(t, http.MethodPost, "/api/auth/register", map[string]string{"email": "a@b.c"}, "")
	require.Equal(t, http.StatusBadRequest, rr.Code)

	e.st.EXPECT().UserByEmail(gomock.Any(), "taken@example.com").Return(&models.User{}, nil)
	rr = e.do(t, http.MethodPost, "/api/auth/register",
		map[string]string{"name": "Bob", "email": "taken@example.com", "password": "Abcdef1!"}, "")
	require.Equal(t, http.StatusConflict, rr.Code)
}

func bcryptHash(pw string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(pw), bcrypt.MinCost)
	return string(b), err
}

// login выполняет вход через сервис и возвращает токен пользователя uid.
func login(t *testing.T, e *env, uid uuid.UUID) string {
	t.Helper()

	hash, err := bcryptHash("Abcdef1!")
	require.NoError(t, err)
	e.st.EXPECT().UserByEmail(gomock.Any(), "ann@example.com").
		Return(&models.User{ID: uid, Name: "Ann", Email: "ann@example.com", PasswordHash: hash}, nil)

	sess, err := e.svc.LoginUser(context.Background(), "ann@example.com", "Abcdef1!")
	require.NoError(t, err)
	return sess.AccessToken
}

func TestLoginAndMe(t *testing.T) {
	e := newEnv(t)
	uid := uuid.New()

	hash, err := bcryptHash("Abcdef1!")
	require.NoError(t, err)
	e.st.EXPECT().UserByEmail(gomock.Any(), "ann@example.com").
		Return(&models.User{ID: uid, Name: "Ann", Email: "ann@example.com", PasswordHash: hash}, nil)

	rr := e.do(t, http.MethodPost, "/api/auth/login", map[string]string{"email": "ann@example.com", "password": "Abcdef1!"}, "")
	require.Equal(t, http.StatusOK, rr.Code)
	token, _ := decode[map[string]any](t, rr)["token"].(string)
	require.NotEmpty(t, token)

	e.st.EXPECT().UserByID(gomock.Any(), uid).Return(&models.User{ID: uid, Name: "Ann", Email: "ann@example.com"}, nil)
	rr = e.do(t, http.MethodGet, "/api/auth/me", nil, token)
	require.Equal(t, http.StatusOK, rr.Code)
	require.Equal(t, "Ann", decode[map[string]any](t, rr)["name"])

	rr = e.do(t, http.MethodGet, "/api/auth/me", nil, "")
	require.Equal(t, http.StatusUnauthorized, rr.Code)

	rr = e.do(t, http.MethodGet, "/api/auth/me", nil, "garbage")
	require.Equal(t, http.StatusUnauthorized, rr.Code)

	e.st.EXPECT().UserByEmail(gomock.Any(), "ann@example.com").Return(nil, storage.ErrNotFound)
	rr = e.do(t, http.MethodPost, "/api/auth/login", map[string]string{"email": "ann@example.com", "password": "x"}, "")
	require.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestFavorites(t *testing.T) {
	e := newEnv(t)
	uid := uuid.New()
	token := login(t, e, uid)

	// без токена - 401
	rr := e.do(t, http.MethodGet, "/api/user/favorites", nil, "")
	require.Equal(t, http.StatusUnauthorized, rr.Code)

	e.st.EXPECT().ListFavorites(gomock.Any(), uid).Return([]models.Tip{{ID: 3}}, nil)
	rr = e.do(t, http.MethodGet, "/api/user/favorites", nil, token)
	require.Equal(t, http.StatusOK, rr.Code)
	require.Len(t, decode[[]map[string]any](t, rr), 1)

	e.st.EXPECT().TipByID(gomock.Any(), int64(3)).Return(&models.Tip{ID: 3, Title: "ETF"}, nil)
	e.st.EXPECT().AddFavorite(gomock.Any(), gomock.Any()).Return(nil)
	rr = e.do(t, http.MethodPost, "/api/user/favorites", map[string]int64{"investmentTipId": 3}, token)
	require.Equal(t, http.StatusCreated, rr.Code)
	require.Equal(t, "ETF", decode[map[string]any](t, rr)["title"])

	e.st.EXPECT().TipByID(gomock.Any(), int64(3)).Return(&models.Tip{ID: 3}, nil)
	e.st.EXPECT().AddFavorite(gomock.Any(), gomock.Any()).Return(storage.ErrAlreadyExists)
	rr = e.do(t, http.MethodPost, "/api/user/favorites", map[string]int64{"investmentTipId": 3}, token)
	require.Equal(t, http.StatusConflict, rr.Code)

	e.st.EXPECT().TipByID(gomock.Any(), int64(99)).Return(nil, storage.ErrNotFound)
	rr = e.do(t, http.MethodPost, "/api/user/favorites", map[string]int64{"investmentTipId": 99}, token)
	require.Equal(t, http.StatusNotFound, rr.Code)

	rr = e.do(t, http.MethodPost, "/api/user/favorites", map[string]any{}, token)
	require.Equal(t, http.StatusBadRequest, rr.Code)

	e.st.EXPECT().RemoveFavorite(gomock.Any(), uid, int64(3)).Return(nil)
	rr = e.do(t, http.MethodDelete, "/api/user/favorites", map[string]int64{"investmentTipId": 3}, token)
	require.Equal(t, http.StatusOK, rr.Code)

	e.st.EXPECT().RemoveFavorite(gomock.Any(), uid, int64(3)).Return(storage.ErrNotFound)
	rr = e.do(t, http.MethodDelete, "/api/user/favorites", map[string]int64{"investmentTipId": 3}, token)
	require.Equal(t, http.StatusNotFound, rr.Code)
}
