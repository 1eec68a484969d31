package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"gorm.io/gorm"
	rediscache "studio-admin/internal/cache/redis"
	"studio-admin/internal/config"
	"studio-admin/internal/db"
	adminsdomain "studio-admin/internal/domain/admins"
	checkinsdomain "studio-admin/internal/domain/checkins"
	classesdomain "studio-admin/internal/domain/classes"
	"studio-admin/internal/domain/events"
	instructorsdomain "studio-admin/internal/domain/instructors"
	mediadomain "studio-admin/internal/domain/media"
	membershipsdomain "studio-admin/internal/domain/memberships"
	newsdomain "studio-admin/internal/domain/news"
	packsdomain "studio-admin/internal/domain/packs"
	promotionsdomain "studio-admin/internal/domain/promotions"
	ratingsdomain "studio-admin/internal/domain/ratings"
	"studio-admin/internal/events/amqp"
	"studio-admin/internal/identity"
	"studio-admin/internal/identity/firebase"
	"studio-admin/internal/jobs"
	"studio-admin/internal/repository/inmemory"
	adminsrepo "studio-admin/internal/repository/postgres/admins"
	checkinsrepo "studio-admin/internal/repository/postgres/checkins"
	classesrepo "studio-admin/internal/repository/postgres/classes"
	instructorsrepo "studio-admin/internal/repository/postgres/instructors"
	mediarepo "studio-admin/internal/repository/postgres/media"
	membershipsrepo "studio-admin/internal/repository/postgres/memberships"
	newsrepo "studio-admin/internal/repository/postgres/news"
	packsrepo "studio-admin/internal/repository/postgres/packs"
	promotionsrepo "studio-admin/internal/repository/postgres/promotions"
	ratingsrepo "studio-admin/internal/repository/postgres/ratings"
	"studio-admin/internal/storage"
	"studio-admin/internal/storage/cloudinary"
	"studio-admin/internal/storage/s3"
	"studio-admin/internal/transport/httpserver"
	"studio-admin/internal/transport/httpserver/handler"
	authmw "studio-admin/internal/transport/httpserver/middleware"
	"studio-admin/pkg/logger"
)

type identityClient interface {
	identity.Provider
	identity.Verifier
}

type App struct {
	cfg        config.Config
	log        logger.Logger
	httpServer *http.Server
	db         *gorm.DB
	redis      *goredis.Client
	publisher  *amqp.Publisher
	scheduler  *jobs.Scheduler
}

func New(ctx context.Context, log logger.Logger) (*App, error) {
	log.Info("app: loading config")
	cfg, err := config.Load(log)
	if err != nil {
		return nil, err
	}

	a := &App{cfg: cfg, log: log}
	if err := a.init(ctx); err != nil {
		if closeErr := a.Close(); closeErr != nil {
			log.Error("app: cleanup after failed init", "err", closeErr)
		}
		return nil, err
	}
	return a, nil
}

func (a *App) init(ctx context.Context) error {
	cfg, log := a.cfg, a.log

	log.Info("app: initializing database")
	gormDB, err := db.NewPostgres(cfg.DB, log)
	if err != nil {
		return err
	}
	a.db = gormDB
	if cfg.DB.AutoMigrate {
		if err := db.Migrate(ctx, gormDB, cfg.DB.MigrationsDir, log); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}

	idp, err := newIdentity(ctx, cfg.Auth, log)
	if err != nil {
		return err
	}
	store, err := newStorage(ctx, cfg.Media, log)
	if err != nil {
		return err
	}
	catalog, err := a.newCatalogCache(ctx)
	if err != nil {
		return err
	}
	publisher, err := a.newPublisher()
	if err != nil {
		return err
	}

	mediaService := mediadomain.NewService(mediarepo.NewPostgres(gormDB), store, mediadomain.Config{
		RootFolder:     cfg.Media.Folder,
		MaxImageSide:   cfg.Media.MaxImageSide,
		MaxUploadBytes: cfg.Media.MaxUploadBytes,
	}, log)

	services := handler.Services{
		Classes: classesdomain.NewServiceWithOptions(classesrepo.NewPostgres(gormDB), classesdomain.Options{
			Catalog:    catalog,
			CatalogTTL: cfg.Redis.CatalogTTL,
			Events:     publisher,
			Log:        log,
		}),
		Packs:       packsdomain.NewServiceWithEvents(packsrepo.NewPostgres(gormDB), publisher, log),
		Memberships: membershipsdomain.NewService(membershipsrepo.NewPostgres(gormDB)),
		Instructors: instructorsdomain.NewService(instructorsrepo.NewPostgres(gormDB)),
		Promotions:  promotionsdomain.NewService(promotionsrepo.NewPostgres(gormDB)),
		News:        newsdomain.NewService(newsrepo.NewPostgres(gormDB)),
		Ratings:     ratingsdomain.NewService(ratingsrepo.NewPostgres(gormDB)),
		CheckIns:    checkinsdomain.NewService(checkinsrepo.NewPostgres(gormDB)),
		Admins:      adminsdomain.NewService(adminsrepo.NewPostgres(gormDB), idp, cfg.Auth.AdminClaim, log),
		Media:       mediaService,
	}

	if cfg.Jobs.MediaCleanupEnabled {
		a.scheduler = jobs.NewScheduler(log)
		if err := a.scheduler.AddMediaCleanup(cfg.Jobs.MediaCleanupSchedule, mediaService, cfg.Jobs.MediaCleanupBatch, cfg.Jobs.MediaCleanupMaxAttempts); err != nil {
			return err
		}
		a.scheduler.Start()
	}

	log.Info("app: initializing router")
	auth := authmw.NewIdentityAuth(cfg.Auth, idp, log)
	router := httpserver.NewRouter(cfg, handler.New(services, log), auth)
	a.httpServer = httpserver.New(cfg, router)
	return nil
}

func newIdentity(ctx context.Context, cfg config.AuthConfig, log logger.Logger) (identityClient, error) {
	if cfg.FirebaseProjectID == "" {
		log.Warn("app: identity provider disabled, admin management unavailable")
		return identity.Disabled(), nil
	}
	client, err := firebase.New(ctx, cfg.FirebaseProjectID, cfg.FirebaseCredentialsFile)
	if err != nil {
		return nil, err
	}
	log.Info("app: firebase identity ready", "project_id", cfg.FirebaseProjectID)
	return client, nil
}

func newStorage(ctx context.Context, cfg config.MediaConfig, log logger.Logger) (storage.Storage, error) {
	switch cfg.Driver {
	case "s3":
		if cfg.S3Bucket == "" {
			log.Warn("app: S3_BUCKET not set, media storage disabled")
			return storage.Disabled(), nil
		}
		return s3.New(ctx, s3.Config{
			Bucket:        cfg.S3Bucket,
			Region:        cfg.S3Region,
			Endpoint:      cfg.S3Endpoint,
			AccessKey:     cfg.S3AccessKey,
			SecretKey:     cfg.S3SecretKey,
			PublicBaseURL: cfg.PublicBaseURL,
			PresignTTL:    cfg.PresignTTL,
		}, log)
	case "cloudinary":
		if cfg.CloudinaryURL == "" {
			log.Warn("app: CLOUDINARY_URL not set, media storage disabled")
			return storage.Disabled(), nil
		}
		return cloudinary.New(cfg.CloudinaryURL, cfg.PresignTTL, log)
	default:
		log.Warn("app: media storage disabled")
		return storage.Disabled(), nil
	}
}

func (a *App) newCatalogCache(ctx context.Context) (classesdomain.CatalogCache, error) {
	if !a.cfg.Redis.Enabled {
		return inmemory.NewCatalogCache(), nil
	}
	client, err := rediscache.NewClient(ctx, a.cfg.Redis)
	if err != nil {
		return nil, err
	}
	a.redis = client
	a.log.Info("app: redis catalog cache ready", "addr", a.cfg.Redis.Addr)
	return rediscache.NewCatalogCache(client, a.log), nil
}

func (a *App) newPublisher() (events.Publisher, error) {
	if !a.cfg.AMQP.Enabled {
		return events.Nop(), nil
	}
	publisher, err := amqp.NewPublisher(a.cfg.AMQP.URL, a.cfg.AMQP.Exchange, a.log)
	if err != nil {
		return nil, err
	}
	a.publisher = publisher
	a.log.Info("app: amqp publisher ready", "exchange", a.cfg.AMQP.Exchange)
	return publisher, nil
}

func (a *App) HTTPServer() *http.Server {
	return a.httpServer
}

func (a *App) Close() error {
	var errs []error
	if a.scheduler != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		a.scheduler.Stop(ctx)
		cancel()
	}
	if a.publisher != nil {
		if err := a.publisher.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close amqp: %w", err))
		}
	}
	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close redis: %w", err))
		}
	}
	if err := db.Close(a.db); err != nil {
		errs = append(errs, fmt.Errorf("close db: %w", err))
	}
	return errors.Join(errs...)
}
