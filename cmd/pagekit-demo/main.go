// Command pagekit-demo serves the pagination routes over an in-memory sqlite
// database seeded with the pagetest fixture dataset:
//
//	PAGEKIT_DEMO_ADDR=:8080 pagekit-demo
//	curl 'localhost:8080/default?page=2&size=10'
//	curl 'localhost:8080/relationship/limit-offset?limit=3&offset=5'
//	curl 'localhost:8080/cursor?limit=5'
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gpkc/pagekit"
	"github.com/gpkc/pagekit/ext/gormpage"
	"github.com/gpkc/pagekit/pagetest"
	"github.com/rs/zerolog"
	"github.com/spf13/viper"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type config struct {
	Addr        string
	DatasetSize int
	LogLevel    string
}

func loadConfig() config {
	v := viper.New()
	v.SetEnvPrefix("pagekit_demo")
	v.AutomaticEnv()

	v.SetDefault("addr", ":8080")
	v.SetDefault("dataset_size", pagetest.DefaultDatasetSize)
	v.SetDefault("log_level", "info")

	return config{
		Addr:        v.GetString("addr"),
		DatasetSize: v.GetInt("dataset_size"),
		LogLevel:    v.GetString("log_level"),
	}
}

func newLogger(cfg config) zerolog.Logger {
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}

	return zerolog.New(os.Stdout).Level(level).With().Timestamp().Logger()
}

// demoBackend pages the seeded users through the gorm adapter.
type demoBackend struct {
	db *gorm.DB
}

func (b demoBackend) Users(ctx context.Context, params pagekit.PageParams) (pagekit.Page[pagetest.User], error) {
	return gormpage.Paginate[pagetest.User](ctx, b.db.Model(&pagetest.User{}).Order("id"), params)
}

func (b demoBackend) UsersLimitOffset(ctx context.Context, params pagekit.LimitOffsetParams) (pagekit.LimitOffsetPage[pagetest.User], error) {
	return gormpage.LimitOffset[pagetest.User](ctx, b.db.Model(&pagetest.User{}).Order("id"), params)
}

func (b demoBackend) UsersCursor(ctx context.Context, params pagekit.CursorParams) (pagekit.CursorResult[pagetest.User], error) {
	pager, err := params.Decode(pagekit.OrderBy{Column: "id", Direction: pagekit.DirectionASC})
	if err != nil {
		return pagekit.CursorResult[pagetest.User]{}, err
	}

	return gormpage.Cursor(ctx, b.db.Model(&pagetest.User{}), pager.WithLookahead(), pagekit.Getters[pagetest.User]{
		"id": func(u pagetest.User) any { return u.ID },
	})
}

func (b demoBackend) UsersWithOrders(ctx context.Context, params pagekit.PageParams) (pagekit.Page[pagetest.User], error) {
	return gormpage.Paginate[pagetest.User](ctx, b.withOrders().Order("id"), params)
}

func (b demoBackend) UsersWithOrdersLimitOffset(ctx context.Context, params pagekit.LimitOffsetParams) (pagekit.LimitOffsetPage[pagetest.User], error) {
	return gormpage.LimitOffset[pagetest.User](ctx, b.withOrders().Order("id"), params)
}

func (b demoBackend) withOrders() *gorm.DB {
	return b.db.Model(&pagetest.User{}).Preload("Orders", func(db *gorm.DB) *gorm.DB {
		return db.Order("id")
	})
}

var (
	_ pagetest.Backend             = demoBackend{}
	_ pagetest.RelationshipBackend = demoBackend{}
)

func main() {
	cfg := loadConfig()
	log := newLogger(cfg)

	if err := run(cfg, log); err != nil {
		log.Fatal().Err(err).Msg("demo failed")
	}
}

func run(cfg config, log zerolog.Logger) error {
	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{
		Logger: gormpage.NewLogger(log),
	})
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}

	if err := db.AutoMigrate(&pagetest.User{}, &pagetest.Order{}); err != nil {
		return fmt.Errorf("migrate schema: %w", err)
	}

	dataset := pagetest.NewDataset(cfg.DatasetSize)
	if err := db.CreateInBatches(dataset.Users, 100).Error; err != nil {
		return fmt.Errorf("seed dataset: %w", err)
	}
	log.Info().Int("users", len(dataset.Users)).Msg("dataset seeded")

	gin.SetMode(gin.ReleaseMode)
	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           pagetest.NewApp(log, demoBackend{db: db}),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", cfg.Addr).Msg("listening")
		errCh <- srv.ListenAndServe()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return fmt.Errorf("serve: %w", err)
	case sig := <-stop:
		log.Info().Str("signal", sig.String()).Msg("shutting down")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}

	if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}
