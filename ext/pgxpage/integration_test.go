package pgxpage_test

import (
	"context"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/gpkc/pagekit"
	"github.com/gpkc/pagekit/ext/pgxpage"
	"github.com/gpkc/pagekit/pagetest"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/tracelog"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

// pgxBackend serves the pagetest routes from raw pgx queries.
type pgxBackend struct {
	pool *pgxpool.Pool
}

var usersQuery = pgxpage.Query{
	Base:  "SELECT id, name FROM users ORDER BY id",
	Count: "SELECT count(*) FROM users",
}

func scanUser(row pgx.CollectableRow) (pagetest.User, error) {
	var u pagetest.User
	err := row.Scan(&u.ID, &u.Name)

	return u, err
}

func scanOrder(row pgx.CollectableRow) (pagetest.Order, error) {
	var o pagetest.Order
	err := row.Scan(&o.ID, &o.UserID, &o.Name)

	return o, err
}

func (b pgxBackend) Users(ctx context.Context, params pagekit.PageParams) (pagekit.Page[pagetest.User], error) {
	return pgxpage.Paginate(ctx, b.pool, usersQuery, scanUser, params)
}

func (b pgxBackend) UsersLimitOffset(ctx context.Context, params pagekit.LimitOffsetParams) (pagekit.LimitOffsetPage[pagetest.User], error) {
	return pgxpage.LimitOffset(ctx, b.pool, usersQuery, scanUser, params)
}

func (b pgxBackend) UsersCursor(ctx context.Context, params pagekit.CursorParams) (pagekit.CursorResult[pagetest.User], error) {
	pager, err := params.Decode(pagekit.OrderBy{Column: "id", Direction: pagekit.DirectionASC})
	if err != nil {
		return pagekit.CursorResult[pagetest.User]{}, err
	}

	query := pgxpage.CursorQuery{
		Base:  "SELECT id, name FROM users WHERE TRUE",
		Count: "SELECT count(*) FROM users",
	}

	return pgxpage.Cursor(ctx, b.pool, query, scanUser, pager.WithLookahead(), pagekit.Getters[pagetest.User]{
		"id": func(u pagetest.User) any { return u.ID },
	})
}

func (b pgxBackend) UsersWithOrders(ctx context.Context, params pagekit.PageParams) (pagekit.Page[pagetest.User], error) {
	page, err := pgxpage.Paginate(ctx, b.pool, usersQuery, scanUser, params)
	if err != nil {
		return pagekit.Page[pagetest.User]{}, err
	}

	page.Items, err = b.attachOrders(ctx, page.Items)

	return page, err
}

func (b pgxBackend) UsersWithOrdersLimitOffset(ctx context.Context, params pagekit.LimitOffsetParams) (pagekit.LimitOffsetPage[pagetest.User], error) {
	page, err := pgxpage.LimitOffset(ctx, b.pool, usersQuery, scanUser, params)
	if err != nil {
		return pagekit.LimitOffsetPage[pagetest.User]{}, err
	}

	page.Items, err = b.attachOrders(ctx, page.Items)

	return page, err
}

// attachOrders loads the orders of the page's users in one query and hangs
// them off their owners.
func (b pgxBackend) attachOrders(ctx context.Context, users []pagetest.User) ([]pagetest.User, error) {
	if len(users) == 0 {
		return users, nil
	}

	ids := make([]int, 0, len(users))
	for _, u := range users {
		ids = append(ids, u.ID)
	}

	rows, err := b.pool.Query(ctx, `SELECT id, user_id, name FROM orders WHERE user_id = ANY($1) ORDER BY id`, ids)
	if err != nil {
		return nil, err
	}

	orders, err := pgx.CollectRows(rows, scanOrder)
	if err != nil {
		return nil, err
	}

	byUser := make(map[int][]pagetest.Order, len(users))
	for _, o := range orders {
		byUser[o.UserID] = append(byUser[o.UserID], o)
	}
	for i := range users {
		users[i].Orders = byUser[users[i].ID]
	}

	return users, nil
}

var (
	_ pagetest.Backend             = pgxBackend{}
	_ pagetest.RelationshipBackend = pgxBackend{}
)

func Test_Suite_Postgres(t *testing.T) {
	dsn := pagetest.LoadConfig().RequirePostgres(t)
	ctx := context.Background()
	gin.SetMode(gin.TestMode)

	poolCfg, err := pgxpool.ParseConfig(dsn)
	require.NoError(t, err)
	poolCfg.ConnConfig.Tracer = &tracelog.TraceLog{
		Logger:   pagetest.NewPGXLogger(zerolog.New(zerolog.NewTestWriter(t))),
		LogLevel: tracelog.LogLevelWarn,
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	dataset := pagetest.NewDataset(pagetest.DefaultDatasetSize)
	require.NoError(t, pagetest.SeedPostgres(ctx, pool, dataset))

	app := pagetest.NewApp(zerolog.New(zerolog.NewTestWriter(t)), pgxBackend{pool: pool})

	pagetest.RunSuite(t, pagetest.Suite{
		App:          app,
		Users:        dataset.Users,
		Relationship: true,
		CursorTotal:  true,
		CursorExact:  true,
	})
}
