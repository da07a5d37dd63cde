package mongo

import (
	"fmt"
	"regexp"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/pribylovaa/invest-tips/internal/models"
	"github.com/pribylovaa/invest-tips/internal/storage"
)

// tipFilter переводит предикат в bson-фильтр.
// Один и тот же результат используется для Find и CountDocuments.
func tipFilter(f models.TipFilter) bson.D {
	d := bson.D{}

	if f.Search != "" {
		re := primitive.Regex{Pattern: regexp.QuoteMeta(f.Search), Options: "i"}
		d = append(d, bson.E{Key: "$or", Value: bson.A{
			bson.D{{Key: "title", Value: re}},
			bson.D{{Key: "description", Value: re}},
			bson.D{{Key: "content", Value: re}},
		}})
	}

	if f.Category != "" {
		d = append(d, bson.E{Key: "category", Value: f.Category})
	}

	if f.RiskLevel != "" {
		d = append(d, bson.E{Key: "risk_level", Value: f.RiskLevel})
	}

	if r := f.Return; r != nil && (r.Min != nil || r.Max != nil) {
		rng := bson.D{}
		if r.Min != nil {
			rng = append(rng, bson.E{Key: "$gte", Value: *r.Min})
		}
		if r.Max != nil {
			rng = append(rng, bson.E{Key: "$lte", Value: *r.Max})
		}
		d = append(d, bson.E{Key: "expected_return", Value: rng})
	}

	if len(f.Tags) > 0 {
		lowered := make(bson.A, len(f.Tags))
		for i, tag := range f.Tags {
			lowered[i] = strings.ToLower(tag)
		}
		d = append(d, bson.E{Key: "tags_lower", Value: bson.D{{Key: "$in", Value: lowered}}})
	}

	return d
}

// tipSort переводит сортировку в bson с тай-брейком по _id.
// Документы без доходности идут последними в обоих направлениях.
func tipSort(s models.TipSort) (bson.D, error) {
	if !s.ValidOrder() {
		return nil, fmt.Errorf("%w: %q", storage.ErrInvalidSort, s.Order)
	}

	dir := 1
	if s.Order == models.SortDesc {
		dir = -1
	}

	switch s.Field {
	case models.SortByTitle:
		return bson.D{{Key: "title", Value: dir}, {Key: "_id", Value: dir}}, nil
	case models.SortByExpectedReturn:
		return bson.D{{Key: "return_missing", Value: 1}, {Key: "expected_return", Value: dir}, {Key: "_id", Value: dir}}, nil
	case models.SortByRiskLevel:
		return bson.D{{Key: "risk_rank", Value: dir}, {Key: "_id", Value: dir}}, nil
	default:
		return bson.D{{Key: "created_at", Value: dir}, {Key: "_id", Value: dir}}, nil
	}
}
