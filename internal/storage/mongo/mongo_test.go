package mongo

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/pribylovaa/invest-tips/internal/models"
	"github.com/pribylovaa/invest-tips/internal/storage"
)

// testTimeout - общий дедлайн на операции с БД в тестах.
const testTimeout = 10 * time.Second

// TestMain запускает MongoDB в контейнере один раз на весь пакет тестов.
// Адрес контейнера прокидывается в ENV DATABASE_URL, а каждый тест
// создаёт свою БД с уникальным именем (см. mustNewMongo).
func TestMain(m *testing.M) {
	if os.Getenv("GO_TEST_INTEGRATION") == "" {
		os.Exit(m.Run())
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	req := testcontainers.ContainerRequest{
		Image:        "mongo:7.0",
		ExposedPorts: []string{"27017/tcp"},
		WaitingFor:   wait.ForLog("Waiting for connections").WithStartupTimeout(90 * time.Second),
	}

	mongoC, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to start mongo testcontainer: %v\n", err)
		os.Exit(1)
	}

	host, err := mongoC.Host(ctx)
	if err != nil {
		_ = mongoC.Terminate(ctx)
		fmt.Fprintf(os.Stderr, "failed to get container host: %v\n", err)
		os.Exit(1)
	}

	port, err := mongoC.MappedPort(ctx, "27017/tcp")
	if err != nil {
		_ = mongoC.Terminate(ctx)
		fmt.Fprintf(os.Stderr, "failed to get mapped port: %v\n", err)
		os.Exit(1)
	}

	_ = os.Setenv("DATABASE_URL", fmt.Sprintf("mongodb://%s:%s", host, port.Port()))

	code := m.Run()

	_ = mongoC.Terminate(context.Background())
	os.Exit(code)
}

// mustNewMongo подключается к отдельной тестовой БД и регистрирует очистку.
func mustNewMongo(t *testing.T) *Mongo {
	t.Helper()
	if os.Getenv("GO_TEST_INTEGRATION") == "" {
		t.Skip("integration tests are disabled (set GO_TEST_INTEGRATION=1)")
	}

	uri := os.Getenv("DATABASE_URL") + "/tips_test_" + uuid.NewString()

	ctx, cancel := context.WithTimeout(context.Background(), testTimeout)
	defer cancel()

	m, err := New(ctx, uri)
	require.NoError(t, err, "DATABASE_URL=%s", uri)

	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), testTimeout)
		defer cancel()
		_ = m.db.Drop(ctx)
		m.Close()
	})

	return m
}

func f64(v float64) *float64 { return &v }

func TestDatabaseFromURI(t *testing.T) {
	t.Parallel()

	require.Equal(t, "tips", databaseFromURI("mongodb://localhost:27017/tips"))
	require.Equal(t, defaultDBName, databaseFromURI("mongodb://localhost:27017"))
	require.Equal(t, defaultDBName, databaseFromURI("mongodb://localhost:27017/"))
}

func TestTipFilter_Empty(t *testing.T) {
	t.Parallel()

	require.Equal(t, bson.D{}, tipFilter(models.TipFilter{}))
}

func TestTipFilter_AllConditions(t *testing.T) {
	t.Parallel()

	got := tipFilter(models.TipFilter{
		Search:    "s&p.500",
		Category:  "Stocks",
		RiskLevel: "high",
		Return:    &models.ReturnRange{Min: f64(5), Max: f64(10)},
		Tags:      []string{"Tech", "GROWTH"},
	})

	re := primitive.Regex{Pattern: `s&p\.500`, Options: "i"}
	want := bson.D{
		{Key: "$or", Value: bson.A{
			bson.D{{Key: "title", Value: re}},
			bson.D{{Key: "description", Value: re}},
			bson.D{{Key: "content", Value: re}},
		}},
		{Key: "category", Value: "Stocks"},
		{Key: "risk_level", Value: "high"},
		{Key: "expected_return", Value: bson.D{{Key: "$gte", Value: 5.0}, {Key: "$lte", Value: 10.0}}},
		{Key: "tags_lower", Value: bson.D{{Key: "$in", Value: bson.A{"tech", "growth"}}}},
	}
	require.Equal(t, want, got)
}

func TestTipSort(t *testing.T) {
	t.Parallel()

	got, err := tipSort(models.TipSort{Field: models.SortByCreatedAt, Order: "desc"})
	require.NoError(t, err)
	require.Equal(t, bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}}, got)

	got, err = tipSort(models.TipSort{Field: models.SortByExpectedReturn, Order: "asc"})
	require.NoError(t, err)
	require.Equal(t, bson.D{{Key: "return_missing", Value: 1}, {Key: "expected_return", Value: 1}, {Key: "_id", Value: 1}}, got)

	_, err = tipSort(models.TipSort{Field: models.SortByTitle, Order: "random"})
	require.ErrorIs(t, err, storage.ErrInvalidSort)
}

func seedTips(t *testing.T, m *Mongo) []models.Tip {
	t.Helper()

	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	out, err := m.SaveTips(context.Background(), []models.Tip{
		{Title: "Index ETF", Description: "Broad market", Category: "Stocks", RiskLevel: "low",
			ExpectedReturn: f64(7), Tags: []string{"ETF"}, CreatedAt: base},
		{Title: "Growth picks", Description: "Tech leaders", Category: "Stocks", RiskLevel: "high",
			ExpectedReturn: f64(15), Tags: []string{"Tech", "Growth"}, CreatedAt: base.Add(time.Hour)},
		{Title: "Crypto basket", Content: "BTC (and) ETH", Category: "Crypto", RiskLevel: "very high",
			Tags: []string{"tech"}, CreatedAt: base.Add(2 * time.Hour)},
	})
	require.NoError(t, err)
	require.Equal(t, int64(1), out[0].ID)
	require.Equal(t, int64(3), out[2].ID)

	return out
}

func TestIntegration_ListAndCount(t *testing.T) {
	m := mustNewMongo(t)
	seedTips(t, m)

	ctx := context.Background()
	newest := models.TipSort{Field: models.SortByCreatedAt, Order: "desc"}

	cases := []struct {
		name   string
		filter models.TipFilter
		titles []string
	}{
		{"empty", models.TipFilter{}, []string{"Crypto basket", "Growth picks", "Index ETF"}},
		{"category", models.TipFilter{Category: "Stocks"}, []string{"Growth picks", "Index ETF"}},
		{"search regex chars", models.TipFilter{Search: "(and)"}, []string{"Crypto basket"}},
		{"search case", models.TipFilter{Search: "TECH"}, []string{"Growth picks"}},
		{"range", models.TipFilter{Return: &models.ReturnRange{Min: f64(5), Max: f64(10)}}, []string{"Index ETF"}},
		{"tags", models.TipFilter{Tags: []string{"TECH"}}, []string{"Crypto basket", "Growth picks"}},
	}

	for _, tt := range cases {
		t.Run(tt.name, func(t *testing.T) {
			tips, err := m.ListTips(ctx, tt.filter, newest, models.Window{Limit: 10})
			require.NoError(t, err)

			titles := make([]string, 0, len(tips))
			for _, tip := range tips {
				titles = append(titles, tip.Title)
			}
			require.Equal(t, tt.titles, titles)

			n, err := m.CountTips(ctx, tt.filter)
			require.NoError(t, err)
			require.Equal(t, int64(len(tt.titles)), n)
		})
	}

	page2, err := m.ListTips(ctx, models.TipFilter{}, newest, models.Window{Offset: 2, Limit: 2})
	require.NoError(t, err)
	require.Len(t, page2, 1)
	require.Equal(t, "Index ETF", page2[0].Title)

	byReturn, err := m.ListTips(ctx, models.TipFilter{}, models.TipSort{Field: models.SortByExpectedReturn, Order: "asc"}, models.Window{Limit: 10})
	require.NoError(t, err)
	require.Equal(t, "Index ETF", byReturn[0].Title)
	require.Equal(t, "Crypto basket", byReturn[2].Title)

	_, err = m.TipByID(ctx, 42)
	require.ErrorIs(t, err, storage.ErrNotFound)
}

func TestIntegration_UsersAndFavorites(t *testing.T) {
	m := mustNewMongo(t)
	tips := seedTips(t, m)
	ctx := context.Background()

	now := time.Now().UTC()
	u := &models.User{ID: uuid.New(), Name: "Ann", Email: "ann@example.com", PasswordHash: "h", CreatedAt: now, UpdatedAt: now}
	require.NoError(t, m.SaveUser(ctx, u))
	require.ErrorIs(t, m.SaveUser(ctx, &models.User{ID: uuid.New(), Email: "ann@example.com"}), storage.ErrAlreadyExists)

	got, err := m.UserByEmail(ctx, "ann@example.com")
	require.NoError(t, err)
	require.Equal(t, u.ID, got.ID)

	_, err = m.UserByID(ctx, uuid.New())
	require.ErrorIs(t, err, storage.ErrNotFound)

	require.NoError(t, m.AddFavorite(ctx, models.Favorite{UserID: u.ID, TipID: tips[0].ID, CreatedAt: now}))
	require.NoError(t, m.AddFavorite(ctx, models.Favorite{UserID: u.ID, TipID: tips[1].ID, CreatedAt: now.Add(time.Second)}))
	require.ErrorIs(t, m.AddFavorite(ctx, models.Favorite{UserID: u.ID, TipID: tips[0].ID}), storage.ErrAlreadyExists)
	require.ErrorIs(t, m.AddFavorite(ctx, models.Favorite{UserID: u.ID, TipID: 999}), storage.ErrNotFound)

	favs, err := m.ListFavorites(ctx, u.ID)
	require.NoError(t, err)
	require.Len(t, favs, 2)
	require.Equal(t, tips[1].ID, favs[0].ID)

	require.NoError(t, m.RemoveFavorite(ctx, u.ID, tips[1].ID))
	require.ErrorIs(t, m.RemoveFavorite(ctx, u.ID, tips[1].ID), storage.ErrNotFound)
}

func TestIntegration_ListTips_RepeatedQueryIsStable(t *testing.T) {
	m := mustNewMongo(t)

	ctx := context.Background()
	at := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	tied := make([]models.Tip, 5)
	for i := range tied {
		tied[i] = models.Tip{Title: "Same title", Category: "Stocks", RiskLevel: "medium", CreatedAt: at}
	}
	_, err := m.SaveTips(ctx, tied)
	require.NoError(t, err)

	filter := models.TipFilter{Category: "Stocks"}
	sort := models.TipSort{Field: models.SortByCreatedAt, Order: models.SortDesc}

	seen := make(map[int64]bool)
	for _, w := range []models.Window{{Offset: 0, Limit: 2}, {Offset: 2, Limit: 2}, {Offset: 4, Limit: 2}} {
		first, err := m.ListTips(ctx, filter, sort, w)
		require.NoError(t, err)
		second, err := m.ListTips(ctx, filter, sort, w)
		require.NoError(t, err)
		require.Equal(t, first, second)

		for _, tip := range first {
			require.False(t, seen[tip.ID], "tip %d returned on two pages", tip.ID)
			seen[tip.ID] = true
		}
	}
	require.Len(t, seen, 5)

	n1, err := m.CountTips(ctx, filter)
	require.NoError(t, err)
	n2, err := m.CountTips(ctx, filter)
	require.NoError(t, err)
	require.Equal(t, n1, n2)
}
