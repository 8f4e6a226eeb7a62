package pagekit

import (
	"bytes"
	"database/sql/driver"
	"encoding/json"
	"fmt"

	"github.com/samber/lo"
)

// KeysetCursor is a pagination token defining the starting position for the
// requested page of data. An empty token means the beginning of the dataset.
//
// IMPORTANT:
// The token MUST always carry a condition on a unique column!
//
// A token consists of a set of conditions of the following form:
//
//	[(C1, O1, V1), (C2, O2, V2)... (Cn, On, Vn)]
type KeysetCursor struct {
	elements []CursorElement
}

func NewKeysetCursor(elements ...CursorElement) *KeysetCursor {
	return &KeysetCursor{
		elements: elements,
	}
}

// DecodeKeysetCursor attempts to parse a base64 encoded string into
// *KeysetCursor. Failures wrap ErrInvalidToken.
func DecodeKeysetCursor(b64String string) (*KeysetCursor, error) {
	if len(b64String) == 0 {
		return nil, nil
	}

	jsonData, err := _encoder.DecodeString(b64String)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to decode base64 encoded cursor: %v", ErrInvalidToken, err)
	}

	var elems []CursorElement
	if err = json.Unmarshal(jsonData, &elems); err != nil {
		return nil, fmt.Errorf("%w: failed to unmarshal json encoded cursor: %v", ErrInvalidToken, err)
	}

	return &KeysetCursor{
		elements: elems,
	}, nil
}

// String - implements fmt.Stringer.
func (c *KeysetCursor) String() string {
	if c == nil || len(c.elements) == 0 {
		return ""
	}

	jTok, err := json.Marshal(c.elements)
	if err != nil {
		panic(fmt.Errorf("cannot marshal cursor value: %w", err))
	}

	var buf bytes.Buffer
	if err = json.Compact(&buf, jTok); err != nil {
		panic(fmt.Errorf("cannot compact cursor value: %w", err))
	}

	return _encoder.EncodeToString(buf.Bytes())
}

// IsEmpty - implements Cursor.
func (c *KeysetCursor) IsEmpty() bool {
	return c == nil || len(c.elements) == 0
}

// GetElements returns the token elements. Token elements are a compressed set
// of filtering conditions.
//
// IMPORTANT:
// These conditions cannot be applied to data directly because they are not
// complete. During pagination they are inflated into the full predicate, see
// Predicate.
func (c *KeysetCursor) GetElements() []CursorElement {
	if c == nil {
		return nil
	}

	return c.elements
}

// WithElements sets the token elements explicitly.
func (c *KeysetCursor) WithElements(elements []CursorElement) *KeysetCursor {
	if c == nil {
		c = new(KeysetCursor)
	}

	c.elements = elements

	return c
}

// ToSQL returns the inflated predicate as an SQL expression with "?"
// placeholders and the corresponding values. An empty cursor renders "TRUE".
//
// Usage:
//
//	query := fmt.Sprintf("SELECT * FROM table WHERE %s", clause)
func (c *KeysetCursor) ToSQL() (string, []driver.Value) {
	if c.IsEmpty() {
		return "TRUE", nil
	}

	return c.toDNF().toSQLClause()
}

// Predicate returns the inflated predicate structurally: the outer slice is
// joined by OR, each inner slice by AND. Non-SQL adapters map it onto their
// own filter representation. Returns nil for an empty cursor.
func (c *KeysetCursor) Predicate() [][]Condition {
	return c.toDNF().conditions()
}

// toDNF converts the KeysetCursor into tDNF.
//
// IMPORTANT:
// The token MUST always carry a condition on a unique column!
//
// A token consists of a set of conditions of the following form:
//
//	[(C1, O1, V1), (C2, O2, V2)... (Cn, On, Vn)]
//
// Successively inflating this set of conditions yields the filter:
//
//	(C1 O1 V1) or (C1 = V1 and C2 O2 V2)
//
// In this shape the token is a DNF sufficient for filtering. It pins down the
// exact position from which to continue reading the dataset.
func (c *KeysetCursor) toDNF() tDNF {
	if c.IsEmpty() {
		return nil
	}

	dnf := make(tDNF, 0, len(c.elements))
	for i := range c.elements {
		previousElementsWithEqualityCondition := lo.Map(c.elements[:i], func(item CursorElement, _ int) Condition {
			return item.toEqualityCondition()
		})

		disjunct := make([]Condition, 0, len(previousElementsWithEqualityCondition)+1)
		disjunct = append(disjunct, previousElementsWithEqualityCondition...)
		disjunct = append(disjunct, Condition(c.elements[i]))

		dnf = append(dnf, disjunct)
	}

	return dnf
}

// validate - implements Cursor.
func (c *KeysetCursor) validate(orderings Orderings) error {
	if c.IsEmpty() {
		return nil
	}

	// The number of token columns must match the number of sort columns.
	if len(c.elements) != len(orderings) && len(c.elements) != 0 {
		return fmt.Errorf("%w: cursor column number mismatch", ErrInvalidToken)
	}

	// Check that sorting and filtering agree. An empty element list is allowed.
	for i := range c.elements {
		cond := c.elements[i]
		orderBy := orderings[i]

		// Column names must match pairwise.
		if cond.Column != orderBy.Column {
			return fmt.Errorf("%w: unexpected cursor column '%s'", ErrInvalidToken, cond.Column)
		}

		// The operator must be allowed and agree with the sort direction.
		if !cond.Operator.Valid() {
			return fmt.Errorf("%w: invalid cursor operator '%s'", ErrInvalidToken, cond.Operator)
		} else if cond.Operator.ForOrdering() != orderBy.Direction {
			return fmt.Errorf("%w: unexpected cursor operator '%s'", ErrInvalidToken, cond.Operator)
		}
	}

	return nil
}

var (
	_ Cursor       = (*KeysetCursor)(nil)
	_ fmt.Stringer = (*KeysetCursor)(nil)
)

// Getters maps pagination columns to field getters for an object. List the
// columns pagination is built on.
// Example:
//
//	pagekit.Getters[User]{
//		"id":   func(last User) any { return last.ID },
//		"name": func(last User) any { return last.Name },
//	}
type Getters[T any] map[string]func(T) any

// NextPageCursor builds the cursor for the next page of the dataset.
func NextPageCursor[T any](
	initialPager *CursorPager[*KeysetCursor],
	resultSet []T,
	getters Getters[T],
) ([]T, *KeysetCursor, error) {
	err := initialPager.Validate()
	if err != nil {
		return nil, nil, fmt.Errorf("cannot build next page cursor: %w", err)
	}

	if IsLastPage(initialPager, resultSet) {
		return resultSet, nil, nil
	}
	resultSet = TrimResultSet(initialPager, resultSet)
	last := lo.LastOrEmpty(resultSet)

	ret := KeysetCursor{elements: nil}
	for _, orderBy := range initialPager.sort {
		getter, ok := getters[orderBy.Column]
		if !ok {
			return nil, nil, fmt.Errorf("cannot find getter for column '%s' met in ordering", orderBy.Column)
		}

		value := getter(last)
		ret.elements = append(ret.elements, CursorElement{
			Column:   orderBy.Column,
			Value:    value,
			Operator: orderBy.Direction.ForOperator(),
		})
	}

	return resultSet, &ret, nil
}

// CursorElement is a triple of the form (c v o), where:
//
//   - "c" - object field.
//   - "v" - value the object field is compared with.
//   - "o" - operator applied to the pair (c, v);
type CursorElement struct {
	Column   string   `json:"c"`
	Value    any      `json:"v"`
	Operator Operator `json:"o"`
}

func (c *CursorElement) toEqualityCondition() Condition {
	return Condition{
		Column:   c.Column,
		Value:    c.Value,
		Operator: OperatorEQ,
	}
}
