package mongo

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	mongodriver "go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/pribylovaa/invest-tips/internal/models"
	"github.com/pribylovaa/invest-tips/internal/storage"
)

// tipDoc - документ коллекции tips.
// tags_lower и risk_rank - производные поля для фильтрации и сортировки.
type tipDoc struct {
	ID             int64      `bson:"_id"`
	Title          string     `bson:"title"`
	Description    string     `bson:"description"`
	Content        string     `bson:"content"`
	Category       string     `bson:"category"`
	RiskLevel      string     `bson:"risk_level"`
	RiskRank       int        `bson:"risk_rank"`
	ExpectedReturn *float64   `bson:"expected_return,omitempty"`
	ReturnMissing  int        `bson:"return_missing"`
	Tags           []string   `bson:"tags"`
	TagsLower      []string   `bson:"tags_lower"`
	Author         *authorDoc `bson:"author,omitempty"`
	CreatedAt      time.Time  `bson:"created_at"`
}

type authorDoc struct {
	ID    string `bson:"id"`
	Name  string `bson:"name"`
	Email string `bson:"email"`
}

func newTipDoc(t models.Tip) tipDoc {
	doc := tipDoc{
		ID:             t.ID,
		Title:          t.Title,
		Description:    t.Description,
		Content:        t.Content,
		Category:       strings.TrimSpace(t.Category),
		RiskLevel:      t.RiskLevel,
		RiskRank:       models.RiskRank(t.RiskLevel),
		ExpectedReturn: t.ExpectedReturn,
		CreatedAt:      toMS(t.CreatedAt),
		Tags:           []string{},
		TagsLower:      []string{},
	}

	if t.ExpectedReturn == nil {
		doc.ReturnMissing = 1
	}

	for _, tag := range t.Tags {
		tag = strings.TrimSpace(tag)
		if tag == "" {
			continue
		}
		doc.Tags = append(doc.Tags, tag)
		doc.TagsLower = append(doc.TagsLower, strings.ToLower(tag))
	}

	if t.Author != nil {
		doc.Author = &authorDoc{ID: t.Author.ID.String(), Name: t.Author.Name, Email: t.Author.Email}
	}

	return doc
}

func (d tipDoc) model() models.Tip {
	t := models.Tip{
		ID:             d.ID,
		Title:          d.Title,
		Description:    d.Description,
		Content:        d.Content,
		Category:       d.Category,
		RiskLevel:      d.RiskLevel,
		ExpectedReturn: d.ExpectedReturn,
		Tags:           d.Tags,
		CreatedAt:      d.CreatedAt.UTC(),
	}

	if t.Tags == nil {
		t.Tags = []string{}
	}

	if d.Author != nil {
		id, _ := uuid.Parse(d.Author.ID)
		t.Author = &models.Author{ID: id, Name: d.Author.Name, Email: d.Author.Email}
	}

	return t
}

// SaveTips сохраняет пачку идей; идентификаторы берутся из последовательности "tips".
// Автор ищется по email; неизвестный email - storage.ErrNotFound.
func (m *Mongo) SaveTips(ctx context.Context, tips []models.Tip) ([]models.Tip, error) {
	const op = "storage/mongo/SaveTips"

	saved := make([]models.Tip, 0, len(tips))
	for i, tip := range tips {
		if tip.Author != nil && tip.Author.Email != "" {
			u, err := m.UserByEmail(ctx, strings.ToLower(strings.TrimSpace(tip.Author.Email)))
			if err != nil {
				return nil, fmt.Errorf("%s: item %d: author %q: %w", op, i, tip.Author.Email, err)
			}
			tip.Author = &models.Author{ID: u.ID, Name: u.Name, Email: u.Email}
		} else {
			tip.Author = nil
		}

		id, err := m.nextID(ctx, tipsCollection)
		if err != nil {
			return nil, fmt.Errorf("%s: item %d: %w", op, i, err)
		}
		tip.ID = id

		if tip.CreatedAt.IsZero() {
			tip.CreatedAt = time.Now()
		}

		doc := newTipDoc(tip)
		if _, err := m.tips.InsertOne(ctx, doc); err != nil {
			return nil, fmt.Errorf("%s: item %d: insert: %w", op, i, err)
		}

		saved = append(saved, doc.model())
	}

	return saved, nil
}

// ListTips возвращает страницу идей по фильтру, сортировке и окну.
func (m *Mongo) ListTips(ctx context.Context, filter models.TipFilter, sort models.TipSort, window models.Window) ([]models.Tip, error) {
	const op = "storage/mongo/ListTips"

	order, err := tipSort(sort)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	findOpts := options.Find().
		SetSort(order).
		SetSkip(int64(window.Offset)).
		SetLimit(int64(window.Limit))

	cur, err := m.tips.Find(ctx, tipFilter(filter), findOpts)
	if err != nil {
		return nil, fmt.Errorf("%s: find: %w", op, err)
	}

	tips, err := decodeTips(ctx, cur)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return tips, nil
}

// CountTips возвращает число идей, удовлетворяющих фильтру.
func (m *Mongo) CountTips(ctx context.Context, filter models.TipFilter) (int64, error) {
	const op = "storage/mongo/CountTips"

	n, err := m.tips.CountDocuments(ctx, tipFilter(filter))
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	return n, nil
}

// TipByID возвращает идею по идентификатору.
// Если запись не найдена - storage.ErrNotFound.
func (m *Mongo) TipByID(ctx context.Context, id int64) (*models.Tip, error) {
	const op = "storage/mongo/TipByID"

	var doc tipDoc
	if err := m.tips.FindOne(ctx, bson.D{{Key: "_id", Value: id}}).Decode(&doc); err != nil {
		if errors.Is(err, mongodriver.ErrNoDocuments) {
			return nil, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	tip := doc.model()
	return &tip, nil
}

func decodeTips(ctx context.Context, cur *mongodriver.Cursor) ([]models.Tip, error) {
	defer cur.Close(ctx)

	tips := make([]models.Tip, 0)
	for cur.Next(ctx) {
		var doc tipDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode: %w", err)
		}
		tips = append(tips, doc.model())
	}

	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("cursor: %w", err)
	}

	return tips, nil
}
