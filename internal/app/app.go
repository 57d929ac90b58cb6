package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alexedwards/scs/goredisstore"
	"github.com/alexedwards/scs/v2"
	"github.com/exaring/otelpgx"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	"github.com/golang-migrate/migrate/v4"
	pgxmigrate "github.com/golang-migrate/migrate/v4/database/pgx"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	pgxstd "github.com/jackc/pgx/v5/stdlib"
	"github.com/metinatakli/theatre-box-office/internal/booking"
	"github.com/metinatakli/theatre-box-office/internal/domain"
	appmiddleware "github.com/metinatakli/theatre-box-office/internal/middleware"
	"github.com/metinatakli/theatre-box-office/internal/repository"
	appvalidator "github.com/metinatakli/theatre-box-office/internal/validator"
	"github.com/metinatakli/theatre-box-office/internal/vcs"
	"github.com/redis/go-redis/extra/redisotel/v9"
	"github.com/redis/go-redis/v9"
	"github.com/riandyrn/otelchi"
)

var (
	version = vcs.Version()
)

const serviceName = "theatre-box-office-api"

type Application struct {
	config         Config
	logger         *slog.Logger
	db             *pgxpool.Pool
	redis          redis.UniversalClient
	validator      *validator.Validate
	sessionManager *scs.SessionManager
	rateLimiter    *appmiddleware.RateLimiter

	userRepo        domain.UserRepository
	genreRepo       domain.GenreRepository
	actorRepo       domain.ActorRepository
	playRepo        domain.PlayRepository
	hallRepo        domain.TheatreHallRepository
	performanceRepo domain.PerformanceRepository
	reservationRepo domain.ReservationRepository

	booking *booking.Service
}

func NewApp(
	cfg Config,
	logger *slog.Logger,
	db *pgxpool.Pool,
	redisClient redis.UniversalClient,
	validator *validator.Validate,
	sessionManager *scs.SessionManager,
	userRepo domain.UserRepository,
	genreRepo domain.GenreRepository,
	actorRepo domain.ActorRepository,
	playRepo domain.PlayRepository,
	hallRepo domain.TheatreHallRepository,
	performanceRepo domain.PerformanceRepository,
	reservationRepo domain.ReservationRepository) *Application {

	app := &Application{
		config:          cfg,
		logger:          logger,
		db:              db,
		redis:           redisClient,
		validator:       validator,
		sessionManager:  sessionManager,
		userRepo:        userRepo,
		genreRepo:       genreRepo,
		actorRepo:       actorRepo,
		playRepo:        playRepo,
		hallRepo:        hallRepo,
		performanceRepo: performanceRepo,
		reservationRepo: reservationRepo,
		booking:         booking.NewService(performanceRepo, reservationRepo, logger),
	}

	app.rateLimiter = appmiddleware.NewRateLimiter(
		cfg.RateLimit,
		redisClient,
		logger,
		app.rateLimitKey,
		app.rateLimitExceededResponse,
	)

	return app
}

func Run() error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	if cfg.DisplayVersion {
		fmt.Printf("Version:\t%s\n", version)
		os.Exit(0)
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	logger, shutdownTelemetry, err := InitTelemetry(cfg, logger)
	if err != nil {
		return err
	}
	defer shutdownTelemetry(context.Background())

	if cfg.DB.MigrationsPath != "" {
		err = RunMigrations(cfg.DB.DSN, cfg.DB.MigrationsPath)
		if err != nil {
			return err
		}

		logger.Info("database migrations applied", "source", cfg.DB.MigrationsPath)
	}

	db, err := NewDatabasePool(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	redisClient, err := NewRedisClient(cfg)
	if err != nil {
		return err
	}
	defer redisClient.Close()

	app := NewApp(
		cfg,
		logger,
		db,
		redisClient,
		appvalidator.NewValidator(),
		NewSessionManager(redisClient),
		repository.NewPostgresUserRepository(db),
		repository.NewPostgresGenreRepository(db),
		repository.NewPostgresActorRepository(db),
		repository.NewPostgresPlayRepository(db),
		repository.NewPostgresTheatreHallRepository(db),
		repository.NewPostgresPerformanceRepository(db),
		repository.NewPostgresReservationRepository(db),
	)

	return app.run()
}

func NewSessionManager(client *redis.Client) *scs.SessionManager {
	sessionManager := scs.New()

	sessionManager.Store = goredisstore.New(client)
	sessionManager.IdleTimeout = 20 * time.Minute
	sessionManager.Cookie.Name = "session_id"
	sessionManager.Cookie.HttpOnly = true
	sessionManager.Cookie.SameSite = http.SameSiteLaxMode

	return sessionManager
}

func NewRedisClient(cfg Config) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:            cfg.Redis.URL,
		MaxIdleConns:    cfg.Redis.MaxIdleConns,
		MaxActiveConns:  cfg.Redis.MaxOpenConns,
		ConnMaxIdleTime: cfg.Redis.MaxIdleTime,
	})

	err := errors.Join(redisotel.InstrumentTracing(rdb), redisotel.InstrumentMetrics(rdb))
	if err != nil {
		rdb.Close()
		return nil, fmt.Errorf("failed to instrument redis client: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	err = rdb.Ping(ctx).Err()
	if err != nil {
		rdb.Close()
		return nil, err
	}

	return rdb, nil
}

func NewDatabasePool(cfg Config) (*pgxpool.Pool, error) {
	config, err := pgxpool.ParseConfig(cfg.DB.DSN)
	if err != nil {
		return nil, err
	}

	config.MaxConnIdleTime = cfg.DB.MaxIdleTime
	config.MaxConns = int32(cfg.DB.MaxOpenConns)
	config.ConnConfig.Tracer = otelpgx.NewTracer()

	db, err := pgxpool.NewWithConfig(context.Background(), config)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	err = db.Ping(ctx)
	if err != nil {
		db.Close()
		return nil, err
	}

	return db, nil
}

// RunMigrations applies every pending migration found at migrationsPath,
// a golang-migrate source URL such as "file://migrations".
func RunMigrations(dsn string, migrationsPath string) error {
	config, err := pgx.ParseConfig(dsn)
	if err != nil {
		return fmt.Errorf("failed to parse config: %w", err)
	}

	db := pgxstd.OpenDB(*config)
	defer db.Close()

	driver, err := pgxmigrate.WithInstance(db, &pgxmigrate.Config{})
	if err != nil {
		return fmt.Errorf("pgx migration driver error: %w", err)
	}

	m, err := migrate.NewWithDatabaseInstance(migrationsPath, "pgx", driver)
	if err != nil {
		return fmt.Errorf("migrate.New error: %w", err)
	}

	err = m.Up()
	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migration failed: %w", err)
	}

	return nil
}

func (app *Application) run() error {
	srv := &http.Server{
		Addr:         fmt.Sprintf("0.0.0.0:%d", app.config.Port),
		Handler:      app.Routes(),
		IdleTimeout:  time.Minute,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		ErrorLog:     slog.NewLogLogger(app.logger.Handler(), slog.LevelDebug),
	}

	shutdownError := make(chan error)

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		s := <-quit

		app.logger.Info("shutting down server", "signal", s.String())

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		shutdownError <- srv.Shutdown(ctx)
	}()

	app.logger.Info("starting server", "addr", srv.Addr, "env", app.config.Env)

	err := srv.ListenAndServe()
	if !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	err = <-shutdownError
	if err != nil {
		return err
	}

	app.logger.Info("stopped server", "addr", srv.Addr)

	return nil
}

func (app *Application) Routes() http.Handler {
	r := chi.NewRouter()

	r.NotFound(app.notFoundResponse)
	r.MethodNotAllowed(app.methodNotAllowedResponse)

	r.Use(otelchi.Middleware(serviceName, otelchi.WithChiRoutes(r)))
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(app.requestLogger)
	r.Use(app.recoverPanic)
	r.Use(app.sessionManager.LoadAndSave)

	r.Get("/healthcheck", app.GetHealth)

	r.Route("/auth", func(r chi.Router) {
		r.Post("/register", app.RegisterUser)
		r.Post("/login", app.Login)
		r.Post("/logout", app.Logout)
	})

	r.With(app.requireAuthentication).Get("/users/me", app.GetCurrentUser)

	r.Route("/genres", func(r chi.Router) {
		r.Get("/", app.ListGenres)
		r.Get("/{id}", app.GetGenre)
		r.With(app.requireAdmin).Post("/", app.CreateGenre)
		r.With(app.requireAdmin).Put("/{id}", app.UpdateGenre)
		r.With(app.requireAdmin).Patch("/{id}", app.UpdateGenre)
		r.With(app.requireAdmin).Delete("/{id}", app.DeleteGenre)
	})

	r.Route("/actors", func(r chi.Router) {
		r.Get("/", app.ListActors)
		r.Get("/{id}", app.GetActor)
		r.With(app.requireAdmin).Post("/", app.CreateActor)
		r.With(app.requireAdmin).Put("/{id}", app.UpdateActor)
		r.With(app.requireAdmin).Patch("/{id}", app.UpdateActor)
		r.With(app.requireAdmin).Delete("/{id}", app.DeleteActor)
		r.With(app.requireAdmin).Post("/{id}/image", app.UploadActorImage)
	})

	r.Route("/plays", func(r chi.Router) {
		r.Get("/", app.ListPlays)
		r.Get("/{id}", app.GetPlay)
		r.With(app.requireAdmin).Post("/", app.CreatePlay)
		r.With(app.requireAdmin).Put("/{id}", app.UpdatePlay)
		r.With(app.requireAdmin).Patch("/{id}", app.UpdatePlay)
		r.With(app.requireAdmin).Delete("/{id}", app.DeletePlay)
		r.With(app.requireAdmin).Post("/{id}/image", app.UploadPlayImage)
	})

	r.Route("/theatre-halls", func(r chi.Router) {
		r.Get("/", app.ListTheatreHalls)
		r.Get("/{id}", app.GetTheatreHall)
		r.With(app.requireAdmin).Post("/", app.CreateTheatreHall)
		r.With(app.requireAdmin).Put("/{id}", app.UpdateTheatreHall)
		r.With(app.requireAdmin).Patch("/{id}", app.UpdateTheatreHall)
		r.With(app.requireAdmin).Delete("/{id}", app.DeleteTheatreHall)
	})

	r.Route("/performances", func(r chi.Router) {
		r.Get("/", app.ListPerformances)
		r.Get("/{id}", app.GetPerformance)
		r.Get("/{id}/seats", app.GetPerformanceSeats)
		r.With(app.requireAdmin).Post("/", app.CreatePerformance)
		r.With(app.requireAdmin).Put("/{id}", app.UpdatePerformance)
		r.With(app.requireAdmin).Patch("/{id}", app.UpdatePerformance)
		r.With(app.requireAdmin).Delete("/{id}", app.DeletePerformance)
	})

	r.With(app.requireAuthentication).Route("/reservations", func(r chi.Router) {
		r.Get("/", app.ListReservations)
		r.With(app.rateLimiter.Limit).Post("/", app.CreateReservation)
	})

	fileServer := http.FileServer(http.Dir(app.config.Upload.Root))
	r.Handle("/"+domain.ImageDir+"/*", fileServer)

	return r
}
