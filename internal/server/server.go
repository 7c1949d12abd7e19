// Package server assembles repositories, services and HTTP handlers into the
// fiber application served by the serve command.
package server

import (
	"context"
	"database/sql"
	"path/filepath"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"go.uber.org/zap"

	"github.com/wichananm65/estate-crm/internal/auth"
	"github.com/wichananm65/estate-crm/internal/buyer"
	"github.com/wichananm65/estate-crm/internal/clients"
	"github.com/wichananm65/estate-crm/internal/config"
	"github.com/wichananm65/estate-crm/internal/contract"
	"github.com/wichananm65/estate-crm/internal/favorite"
	"github.com/wichananm65/estate-crm/internal/kvstore"
	"github.com/wichananm65/estate-crm/internal/logging"
	"github.com/wichananm65/estate-crm/internal/match"
	"github.com/wichananm65/estate-crm/internal/notification"
	"github.com/wichananm65/estate-crm/internal/operation"
	"github.com/wichananm65/estate-crm/internal/pending"
	"github.com/wichananm65/estate-crm/internal/portal"
	"github.com/wichananm65/estate-crm/internal/profile"
	"github.com/wichananm65/estate-crm/internal/property"
	"github.com/wichananm65/estate-crm/internal/seller"
	"github.com/wichananm65/estate-crm/internal/whatsapp"
)

// Options configures New. A nil DB selects the in-memory repositories and a
// nil Cache the in-memory key-value backend.
type Options struct {
	Config config.Config
	DB     *sql.DB
	Cache  kvstore.Backend
	Logger *zap.SugaredLogger
}

// Server is the assembled application.
type Server struct {
	App           *fiber.App
	Notifications *notification.Service
	Profiles      *profile.Service
	lggr          *zap.SugaredLogger
}

type repositories struct {
	buyers     buyer.Repository
	sellers    seller.Repository
	properties property.Repository
	operations operation.Repository
	favorites  favorite.Repository
	profiles   profile.Repository
	clients    clients.Repository
	pending    pending.Repository
}

func postgresRepositories(db *sql.DB) repositories {
	return repositories{
		buyers:     buyer.NewPostgresRepository(db),
		sellers:    seller.NewPostgresRepository(db),
		properties: property.NewPostgresRepository(db),
		operations: operation.NewPostgresRepository(db),
		favorites:  favorite.NewPostgresRepository(db),
		profiles:   profile.NewPostgresRepository(db),
		clients:    clients.NewPostgresRepository(db),
		pending:    pending.NewPostgresRepository(db),
	}
}

func memoryRepositories() repositories {
	return repositories{
		buyers:     buyer.NewInMemoryRepository(nil),
		sellers:    seller.NewInMemoryRepository(nil),
		properties: property.NewInMemoryRepository(nil),
		operations: operation.NewInMemoryRepository(nil),
		favorites:  favorite.NewInMemoryRepository(nil),
		profiles:   profile.NewInMemoryRepository(nil),
		clients:    clients.NewInMemoryRepository(),
		pending:    pending.NewInMemoryRepository(),
	}
}

func New(opts Options) *Server {
	lggr := opts.Logger
	if lggr == nil {
		lggr = logging.Nop()
	}
	cache := opts.Cache
	if cache == nil {
		cache = kvstore.NewMemoryBackend()
	}
	repos := memoryRepositories()
	if opts.DB != nil {
		repos = postgresRepositories(opts.DB)
	}
	cfg := opts.Config

	buyerService := buyer.NewService(repos.buyers).WithCache(cache, lggr.Named("buyer"))
	sellerService := seller.NewService(repos.sellers, repos.properties).WithCache(cache, lggr.Named("seller"))
	propertyService := property.NewService(repos.properties, sellerService)
	// sellers are cached with their properties
	propertyService.OnChange(sellerService.Invalidate)

	contractService := contract.NewService(cache)
	operationService := operation.NewService(repos.operations, contractService, lggr.Named("operation"))
	profileService := profile.NewService(repos.profiles)
	clientService := clients.NewService(repos.clients, lggr.Named("clients"))
	pendingService := pending.NewService(repos.pending, clientService)
	notificationService := notification.NewService(cache, buyerService, sellerService, contractService, lggr.Named("notification"))
	portalService := portal.NewService(propertyService, sellerService,
		portal.NewSimulator(cfg.PortalSimulatedLatency), lggr.Named("portal"))

	// handlers keep path params and headers in repositories, caches and logs
	app := fiber.New(fiber.Config{Immutable: true})
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.CORSOrigins,
		AllowMethods: "GET,POST,HEAD,PUT,DELETE,PATCH",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))
	app.Use(logging.RequestLogger(lggr.Named("http")))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})
	// uploaded avatars are public
	app.Static("/uploads", cfg.UploadDir)

	profileHandler := profile.NewHandler(profileService, filepath.Join(cfg.UploadDir, "avatars"))
	clientHandler := clients.NewHandler(clientService)
	pendingHandler := pending.NewHandler(pendingService, profile.RequireAdmin(profileService))

	clientHandler.RegisterPublicRoutes(app)
	pendingHandler.RegisterPublicRoutes(app)
	profileHandler.RegisterPublicRoutes(app)
	whatsapp.NewHandler().RegisterPublicRoutes(app)

	app.Use(auth.Middleware(cfg.JWTSecret))

	buyer.NewHandler(buyerService).RegisterProtectedRoutes(app)
	seller.NewHandler(sellerService).RegisterProtectedRoutes(app)
	property.NewHandler(propertyService).RegisterProtectedRoutes(app)
	portal.NewHandler(portalService).RegisterProtectedRoutes(app)
	match.NewHandler(match.NewService(buyerService, sellerService)).RegisterProtectedRoutes(app)
	contract.NewHandler(contractService).RegisterProtectedRoutes(app)
	operation.NewHandler(operationService).RegisterProtectedRoutes(app)
	notification.NewHandler(notificationService).RegisterProtectedRoutes(app)
	favorite.NewHandler(favorite.NewService(repos.favorites)).RegisterProtectedRoutes(app)
	profileHandler.RegisterProtectedRoutes(app)
	clientHandler.RegisterProtectedRoutes(app)
	pendingHandler.RegisterProtectedRoutes(app)

	return &Server{
		App:           app,
		Notifications: notificationService,
		Profiles:      profileService,
		lggr:          lggr,
	}
}

// Refresher returns the background job that refreshes every profile's
// notifications each interval.
func (s *Server) Refresher(interval time.Duration) *notification.Refresher {
	return notification.NewRefresher(s.Notifications, s.Profiles, interval, s.lggr.Named("refresher"))
}

// Shutdown stops accepting requests and waits for in-flight ones until ctx ends.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.App.ShutdownWithContext(ctx)
}
