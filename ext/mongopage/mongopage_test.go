package mongopage_test

import (
	"testing"

	"github.com/gpkc/pagekit"
	"github.com/gpkc/pagekit/ext/mongopage"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

func Test_PredicateFilter(t *testing.T) {
	tests := []struct {
		name   string
		cursor *pagekit.KeysetCursor
		want   bson.D
	}{
		{
			name:   "nil cursor matches everything",
			cursor: nil,
			want:   bson.D{},
		},
		{
			name:   "empty cursor matches everything",
			cursor: pagekit.NewKeysetCursor(),
			want:   bson.D{},
		},
		{
			name: "single element",
			cursor: pagekit.NewKeysetCursor(
				pagekit.CursorElement{Column: "id", Value: 5, Operator: pagekit.OperatorGT},
			),
			want: bson.D{{Key: "$or", Value: bson.A{
				bson.D{{Key: "$and", Value: bson.A{
					bson.D{{Key: "id", Value: bson.D{{Key: "$gt", Value: 5}}}},
				}}},
			}}},
		},
		{
			name: "two elements inflate with equality",
			cursor: pagekit.NewKeysetCursor(
				pagekit.CursorElement{Column: "name", Value: "bob", Operator: pagekit.OperatorGT},
				pagekit.CursorElement{Column: "id", Value: 7, Operator: pagekit.OperatorLT},
			),
			want: bson.D{{Key: "$or", Value: bson.A{
				bson.D{{Key: "$and", Value: bson.A{
					bson.D{{Key: "name", Value: bson.D{{Key: "$gt", Value: "bob"}}}},
				}}},
				bson.D{{Key: "$and", Value: bson.A{
					bson.D{{Key: "name", Value: bson.D{{Key: "$eq", Value: "bob"}}}},
					bson.D{{Key: "id", Value: bson.D{{Key: "$lt", Value: 7}}}},
				}}},
			}}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := mongopage.PredicateFilter(tt.cursor)
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func Test_SortDocument(t *testing.T) {
	got := mongopage.SortDocument(pagekit.Orderings{
		{Column: "name", Direction: pagekit.DirectionDESC},
		{Column: "id", Direction: pagekit.DirectionASC},
	})

	require.Equal(t, bson.D{
		{Key: "name", Value: -1},
		{Key: "id", Value: 1},
	}, got)
}

func Test_CombineFilters(t *testing.T) {
	filter := bson.D{{Key: "active", Value: true}}
	predicate := bson.D{{Key: "$or", Value: bson.A{}}}

	tests := []struct {
		name      string
		filter    any
		predicate bson.D
		want      any
	}{
		{
			name:      "nil filter keeps predicate only",
			filter:    nil,
			predicate: predicate,
			want:      predicate,
		},
		{
			name:      "empty predicate keeps filter only",
			filter:    filter,
			predicate: bson.D{},
			want:      filter,
		},
		{
			name:      "both sides join with $and",
			filter:    filter,
			predicate: predicate,
			want:      bson.D{{Key: "$and", Value: bson.A{filter, predicate}}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, mongopage.CombineFilters(tt.filter, tt.predicate))
		})
	}
}
