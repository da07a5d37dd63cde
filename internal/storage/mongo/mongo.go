// mongo реализует storage.Storage поверх MongoDB.
package mongo

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	mongodriver "go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/pribylovaa/invest-tips/internal/storage"
)

const (
	tipsCollection      = "tips"
	usersCollection     = "users"
	favoritesCollection = "favorites"
	countersCollection  = "counters"
	defaultDBName       = "invest_tips"

	closeTimeout = 5 * time.Second
)

// Mongo - тонкий адаптер для подключения и коллекций MongoDB.
type Mongo struct {
	client    *mongodriver.Client
	db        *mongodriver.Database
	tips      *mongodriver.Collection
	users     *mongodriver.Collection
	favorites *mongodriver.Collection
	counters  *mongodriver.Collection
}

// New подключается к MongoDB, проверяет его, подготавливает коллекции и обеспечивает индексацию.
func New(ctx context.Context, uri string) (*Mongo, error) {
	if strings.TrimSpace(uri) == "" {
		return nil, fmt.Errorf("mongo: empty uri")
	}

	cli, err := mongodriver.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}

	if err := cli.Ping(ctx, readpref.Primary()); err != nil {
		_ = cli.Disconnect(context.Background())
		return nil, fmt.Errorf("mongo ping: %w", err)
	}

	db := cli.Database(databaseFromURI(uri))

	m := &Mongo{
		client:    cli,
		db:        db,
		tips:      db.Collection(tipsCollection),
		users:     db.Collection(usersCollection),
		favorites: db.Collection(favoritesCollection),
		counters:  db.Collection(countersCollection),
	}

	if err := m.ensureIndexes(ctx); err != nil {
		m.Close()
		return nil, err
	}

	return m, nil
}

// Close отключает клиента.
func (m *Mongo) Close() {
	ctx, cancel := context.WithTimeout(context.Background(), closeTimeout)
	defer cancel()

	_ = m.client.Disconnect(ctx)
}

// ensureIndexes создает индексы:
// - tips: created_at(desc), category, risk_level, tags_lower;
// - users: уникальный email;
// - favorites: уникальная пара user_id+tip_id и выборка по user_id+created_at(desc).
func (m *Mongo) ensureIndexes(ctx context.Context) error {
	tipIdx := []mongodriver.IndexModel{
		{
			Keys:    bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}},
			Options: options.Index().SetName("created_desc"),
		},
		{
			Keys:    bson.D{{Key: "category", Value: 1}},
			Options: options.Index().SetName("category"),
		},
		{
			Keys:    bson.D{{Key: "risk_level", Value: 1}},
			Options: options.Index().SetName("risk_level"),
		},
		{
			Keys:    bson.D{{Key: "tags_lower", Value: 1}},
			Options: options.Index().SetName("tags_lower"),
		},
	}

	if _, err := m.tips.Indexes().CreateMany(ctx, tipIdx); err != nil {
		return fmt.Errorf("mongo ensure tip indexes: %w", err)
	}

	if _, err := m.users.Indexes().CreateOne(ctx, mongodriver.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetName("email_unique").SetUnique(true),
	}); err != nil {
		return fmt.Errorf("mongo ensure user indexes: %w", err)
	}

	favIdx := []mongodriver.IndexModel{
		{
			Keys:    bson.D{{Key: "user_id", Value: 1}, {Key: "tip_id", Value: 1}},
			Options: options.Index().SetName("user_tip_unique").SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "user_id", Value: 1}, {Key: "created_at", Value: -1}},
			Options: options.Index().SetName("user_created_desc"),
		},
	}

	if _, err := m.favorites.Indexes().CreateMany(ctx, favIdx); err != nil {
		return fmt.Errorf("mongo ensure favorite indexes: %w", err)
	}

	return nil
}

// nextID выдаёт следующий числовой идентификатор последовательности name.
func (m *Mongo) nextID(ctx context.Context, name string) (int64, error) {
	var doc struct {
		Seq int64 `bson:"seq"`
	}

	err := m.counters.FindOneAndUpdate(ctx,
		bson.D{{Key: "_id", Value: name}},
		bson.D{{Key: "$inc", Value: bson.D{{Key: "seq", Value: int64(1)}}}},
		options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After),
	).Decode(&doc)
	if err != nil {
		return 0, fmt.Errorf("mongo next id %s: %w", name, err)
	}

	return doc.Seq, nil
}

// databaseFromURI извлекает имя базы данных из URI-пути mongodb.
// Если оно отсутствует или не поддается расшифровке, возвращает значение по умолчанию.
func databaseFromURI(uri string) string {
	u, err := url.Parse(uri)
	if err == nil {
		if name := strings.Trim(u.Path, "/"); name != "" {
			return name
		}
	}
	return defaultDBName
}

// toMS приводит время к точности MongoDB DateTime (миллисекунды, UTC).
func toMS(t time.Time) time.Time { return t.UTC().Truncate(time.Millisecond) }

var _ storage.Storage = (*Mongo)(nil)
