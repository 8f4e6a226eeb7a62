package pagekit

import (
	"database/sql/driver"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Condition is a single comparison of the form Operator(Column, Value).
// Predicates expanded from a KeysetCursor are built of conditions; adapters
// translate them into driver terms (gorm clause expressions, SQL text, bson
// filters).
type Condition struct {
	Column   string
	Value    any
	Operator Operator
}

type (
	tDisjunct []Condition

	// tDNF represents the disjunctive normal form (DNF) of a logical expression.
	// Each disjunct is joined by OR, and each disjunct consists of a list of
	// conditions which are joined by AND.
	//
	// Thus:
	//
	//	DNF = X1 OR X2 ... OR Xn, where Xi = Ai1 AND Ai2 ... AND Aim.
	//	DNF = (A11 AND A12 AND A13) OR (A21 AND A22 AND A23), for n=2, m=3.
	//
	//  Where (A11 AND A12 AND A13), (A21 AND A22 AND A23) are disjuncts and
	//  A11, A12, A13, A21, A22, A23 are conditions.
	tDNF []tDisjunct
)

// ToSQL converts a condition of the form Operator(Column, Value) to an SQL
// fragment "Column Operator ?" with a corresponding value. Returns the SQL
// string and the value for the placeholder.
//
// Example:
//
//	Condition{Column: "id", Operator: ">", Value: 123}
//
// Result:
//
//	("id > ?", 123)
func (c Condition) ToSQL() (string, driver.Value) {
	return fmt.Sprintf("%s %s ?", c.Column, c.Operator), parseAnyValue(c.Value)
}

func parseAnyValue(v any) any {
	// Try parsing a value as time.Time. If it succeeds, return time.Time.
	// Otherwise return the original value.
	fnParseBytesToTimeOrValue := func(vBytes []byte) any {
		dst := time.Time{}
		err := dst.UnmarshalText(vBytes)
		if err == nil {
			return dst
		}

		return v
	}

	switch vt := v.(type) {
	case string:
		return fnParseBytesToTimeOrValue([]byte(vt))
	case []byte:
		return fnParseBytesToTimeOrValue(vt)
	default:
		return v
	}
}

// toSQLClause converts a disjunct (K1, K2, K3) into an SQL condition
// "(K1 AND K2 AND K3)" with corresponding values. Returns the SQL string and
// the list of values for placeholders.
//
// Example:
//
//	tDisjunct = {
//		{Column: "id", Operator: ">", Value: 5},
//		{Column: "name", Operator: "<", Value: "abc"}
//	}
//
// Result:
//
//	("(id > ? AND name < ?)", [5, "abc"])
func (d tDisjunct) toSQLClause() (string, []driver.Value) {
	andClauses := make([]string, 0, len(d))
	andValues := make([]driver.Value, 0, len(d))

	for _, cond := range d {
		andClause, andValue := cond.ToSQL()
		andClauses = append(andClauses, andClause)
		andValues = append(andValues, andValue)
	}

	if len(andClauses) >= 1 {
		return fmt.Sprintf("(%s)", strings.Join(andClauses, " AND ")), andValues
	}

	return "", nil
}

// toSQLClause converts a DNF (tDNF) into an SQL condition. For each disjunct it
// calls tDisjunct.toSQLClause and joins disjuncts with OR. Returns the SQL
// string and the list of values for placeholders.
//
// Example:
//
//	tDNF = {
//		{{Column: "id", Operator: "<", Value: 10}},
//		{{Column: "id", Operator: "=", Value: 10}, {Column: "name", Operator: "<", Value: "abc"}},
//	}
//
// Result:
//
//	("((id < ?) OR (id = ? AND name < ?))", [10, 10, "abc"])
func (d tDNF) toSQLClause() (string, []driver.Value) {
	orClauses := make([]string, 0, len(d))
	values := make([]driver.Value, 0, len(d))

	for _, disjunct := range d {
		orClause, orValues := disjunct.toSQLClause()
		if orClause == "" {
			continue
		}

		orClauses = append(orClauses, orClause)
		values = append(values, orValues...)
	}

	if len(orClauses) >= 1 {
		return fmt.Sprintf("(%s)", strings.Join(orClauses, " OR ")), values
	}

	return "TRUE", nil
}

// conditions exposes the DNF structurally, with values normalized through
// parseAnyValue. Adapters that do not speak SQL (mongopage) walk this form.
func (d tDNF) conditions() [][]Condition {
	if len(d) == 0 {
		return nil
	}

	ret := make([][]Condition, 0, len(d))
	for _, disjunct := range d {
		conds := make([]Condition, 0, len(disjunct))
		for _, cond := range disjunct {
			cond.Value = parseAnyValue(cond.Value)
			conds = append(conds, cond)
		}

		ret = append(ret, conds)
	}

	return ret
}

// Rebind rewrites "?" placeholders into positional "$n" placeholders starting
// at start. Postgres-wire adapters (pgxpage) use it on SQL produced by ToSQL.
//
// Example:
//
//	Rebind("(id > ? AND name < ?)", 3) == "(id > $3 AND name < $4)"
//
// Question marks inside single-quoted literals are left untouched.
func Rebind(sqlClause string, start int) string {
	var b strings.Builder
	b.Grow(len(sqlClause) + 8)

	n := start
	inLiteral := false
	for _, r := range sqlClause {
		switch {
		case r == '\'':
			inLiteral = !inLiteral
			b.WriteRune(r)
		case r == '?' && !inLiteral:
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			n++
		default:
			b.WriteRune(r)
		}
	}

	return b.String()
}
