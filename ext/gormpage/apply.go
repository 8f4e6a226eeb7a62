package gormpage

import (
	"fmt"

	"github.com/gpkc/pagekit"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// conditionExpr converts a single condition of the form Operator(Column,
// Value) into an SQL condition "Column Operator ?" represented as a
// clause.Expression.
func conditionExpr(cond pagekit.Condition) clause.Expression {
	sqlClause, arg := cond.ToSQL()

	return clause.Expr{
		SQL:  sqlClause,
		Vars: []any{arg},
	}
}

// predicateExpr rebuilds a cursor predicate (outer slice joined by OR, inner
// by AND) as a clause.Expression tree. Returns nil for an empty predicate.
func predicateExpr(predicate [][]pagekit.Condition) clause.Expression {
	orExpressions := make([]clause.Expression, 0, len(predicate))

	for _, disjunct := range predicate {
		andExpressions := make([]clause.Expression, 0, len(disjunct))
		for _, cond := range disjunct {
			andExpressions = append(andExpressions, conditionExpr(cond))
		}

		if len(andExpressions) == 1 {
			orExpressions = append(orExpressions, andExpressions[0])
		} else if len(andExpressions) > 1 {
			orExpressions = append(orExpressions, clause.And(andExpressions...))
		}
	}

	if len(orExpressions) == 1 {
		return orExpressions[0]
	} else if len(orExpressions) > 1 {
		return clause.Or(orExpressions...)
	}

	return nil
}

// ApplyOrderings applies sort orderings to a gorm query.
func ApplyOrderings(db *gorm.DB, sort pagekit.Orderings) *gorm.DB {
	if len(sort) == 0 {
		return db
	}

	return db.Order(sort.ToSQL())
}

// ApplyCursor applies the cursor position to a gorm query. A keyset cursor
// becomes a WHERE predicate, an offset cursor becomes OFFSET. Empty cursors
// leave the query untouched.
func ApplyCursor(db *gorm.DB, cursor pagekit.Cursor) *gorm.DB {
	switch cur := cursor.(type) {
	case *pagekit.KeysetCursor:
		exp := predicateExpr(cur.Predicate())
		if exp == nil {
			return db
		}

		return db.Clauses(exp)
	case *pagekit.OffsetCursor:
		if cur.IsEmpty() {
			return db
		}

		return db.Offset(cur.GetOffset())
	default:
		return db
	}
}

// Apply applies cursor pagination to the query: orderings, cursor position
// and the dataset limit. When lookahead is enabled, one extra record is
// fetched to determine if there is a next page. Returns an error if
// pagination cannot be applied.
func Apply[CursorType pagekit.Cursor](db *gorm.DB, pager *pagekit.CursorPager[CursorType]) (*gorm.DB, error) {
	if err := pager.Validate(); err != nil {
		return nil, fmt.Errorf("cannot paginate: %w", err)
	}

	db = ApplyOrderings(db, pager.GetSort())
	db = ApplyCursor(db, pager.GetCursor())

	if !pager.IsUnlimited() {
		db = db.Limit(pager.GetDatasetLimit())
	}

	return db, nil
}
