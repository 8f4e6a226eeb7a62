// Package mongopage paginates mongo collections with the pagekit page-number,
// limit/offset and keyset cursor styles. Page-number and limit/offset ride
// CountDocuments plus a skip/limit Find; the cursor style translates the
// keyset predicate into a $or-of-$and filter document, so it never skips.
package mongopage

import (
	"context"
	"fmt"

	"github.com/gpkc/pagekit"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Paginate runs page-number pagination over the collection. filter is any
// mongo filter document; nil means the whole collection. Caller options
// (projections, collation) apply before the window options.
func Paginate[T any](
	ctx context.Context,
	coll *mongo.Collection,
	filter any,
	params pagekit.PageParams,
	opts ...*options.FindOptions,
) (pagekit.Page[T], error) {
	params.Normalize()
	if err := params.Validate(); err != nil {
		return pagekit.Page[T]{}, err
	}

	total, err := count(ctx, coll, filter)
	if err != nil {
		return pagekit.Page[T]{}, err
	}

	items, err := find[T](ctx, coll, filter, append(opts, options.Find().
		SetSkip(int64(params.Offset())).
		SetLimit(int64(params.Limit())))...)
	if err != nil {
		return pagekit.Page[T]{}, err
	}

	return pagekit.NewPage(items, total, params), nil
}

// LimitOffset runs limit/offset pagination over the collection.
func LimitOffset[T any](
	ctx context.Context,
	coll *mongo.Collection,
	filter any,
	params pagekit.LimitOffsetParams,
	opts ...*options.FindOptions,
) (pagekit.LimitOffsetPage[T], error) {
	params.Normalize()
	if err := params.Validate(); err != nil {
		return pagekit.LimitOffsetPage[T]{}, err
	}

	total, err := count(ctx, coll, filter)
	if err != nil {
		return pagekit.LimitOffsetPage[T]{}, err
	}

	items, err := find[T](ctx, coll, filter, append(opts, options.Find().
		SetSkip(int64(params.Offset)).
		SetLimit(int64(params.Limit)))...)
	if err != nil {
		return pagekit.LimitOffsetPage[T]{}, err
	}

	return pagekit.NewLimitOffsetPage(items, total, params), nil
}

// Cursor runs keyset cursor pagination over the collection. The cursor
// predicate is combined with filter via $and; sorting follows the pager
// orderings. Total counts the filter without the cursor predicate, the way
// the SQL adapters do. getters must cover every column the pager sorts by.
func Cursor[T any](
	ctx context.Context,
	coll *mongo.Collection,
	filter any,
	pager *pagekit.CursorPager[*pagekit.KeysetCursor],
	getters pagekit.Getters[T],
	opts ...*options.FindOptions,
) (pagekit.CursorResult[T], error) {
	if err := pager.Validate(); err != nil {
		return pagekit.CursorResult[T]{}, fmt.Errorf("cannot paginate: %w", err)
	}

	predicate, err := PredicateFilter(pager.GetCursor())
	if err != nil {
		return pagekit.CursorResult[T]{}, err
	}

	combined := CombineFilters(filter, predicate)

	findOpts := options.Find().SetSort(SortDocument(pager.GetSort()))
	if !pager.IsUnlimited() {
		findOpts = findOpts.SetLimit(int64(pager.GetDatasetLimit()))
	}

	total, err := count(ctx, coll, filter)
	if err != nil {
		return pagekit.CursorResult[T]{}, err
	}

	items, err := find[T](ctx, coll, combined, append(opts, findOpts)...)
	if err != nil {
		return pagekit.CursorResult[T]{}, err
	}

	items, next, err := pagekit.NextPageCursor(pager, items, getters)
	if err != nil {
		return pagekit.CursorResult[T]{}, err
	}

	return pagekit.NewCursorResult(items, total, pager.GetLimit(), next.String()), nil
}

// PredicateFilter translates the keyset predicate of the cursor into a mongo
// filter document: the outer disjunction becomes $or, each inner conjunction
// $and, each condition a {column: {$op: value}} leaf. An empty cursor yields
// an empty document matching everything.
func PredicateFilter(cursor *pagekit.KeysetCursor) (bson.D, error) {
	dnf := cursor.Predicate()
	if len(dnf) == 0 {
		return bson.D{}, nil
	}

	or := make(bson.A, 0, len(dnf))
	for _, disjunct := range dnf {
		and := make(bson.A, 0, len(disjunct))
		for _, cond := range disjunct {
			op, err := mongoOperator(cond.Operator)
			if err != nil {
				return nil, err
			}

			and = append(and, bson.D{{Key: cond.Column, Value: bson.D{{Key: op, Value: cond.Value}}}})
		}

		or = append(or, bson.D{{Key: "$and", Value: and}})
	}

	return bson.D{{Key: "$or", Value: or}}, nil
}

// SortDocument translates pager orderings into a mongo sort document.
func SortDocument(orderings pagekit.Orderings) bson.D {
	sort := make(bson.D, 0, len(orderings))
	for _, orderBy := range orderings {
		direction := 1
		if orderBy.Direction == pagekit.DirectionDESC {
			direction = -1
		}

		sort = append(sort, bson.E{Key: orderBy.Column, Value: direction})
	}

	return sort
}

// CombineFilters joins the caller filter with the cursor predicate via $and.
// A nil or empty side drops out.
func CombineFilters(filter any, predicate bson.D) any {
	if filter == nil {
		filter = bson.D{}
	}

	if len(predicate) == 0 {
		return filter
	}
	if d, ok := filter.(bson.D); ok && len(d) == 0 {
		return predicate
	}

	return bson.D{{Key: "$and", Value: bson.A{filter, predicate}}}
}

func mongoOperator(op pagekit.Operator) (string, error) {
	switch op {
	case pagekit.OperatorGT:
		return "$gt", nil
	case pagekit.OperatorLT:
		return "$lt", nil
	case pagekit.OperatorEQ:
		return "$eq", nil
	default:
		return "", fmt.Errorf("%w: operator '%s' has no mongo form", pagekit.ErrInvalidToken, op)
	}
}

func count(ctx context.Context, coll *mongo.Collection, filter any) (int64, error) {
	if filter == nil {
		filter = bson.D{}
	}

	total, err := coll.CountDocuments(ctx, filter)
	if err != nil {
		return 0, fmt.Errorf("count documents: %w", err)
	}

	return total, nil
}

func find[T any](
	ctx context.Context,
	coll *mongo.Collection,
	filter any,
	opts ...*options.FindOptions,
) ([]T, error) {
	if filter == nil {
		filter = bson.D{}
	}

	cur, err := coll.Find(ctx, filter, opts...)
	if err != nil {
		return nil, fmt.Errorf("find documents: %w", err)
	}

	var items []T
	if err := cur.All(ctx, &items); err != nil {
		return nil, fmt.Errorf("decode documents: %w", err)
	}

	return items, nil
}
