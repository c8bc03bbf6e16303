package api

import (
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/lumenview/screen-booking-backend/internal/asset"
	assetHttp "github.com/lumenview/screen-booking-backend/internal/asset/http"
	"github.com/lumenview/screen-booking-backend/internal/auth"
	"github.com/lumenview/screen-booking-backend/internal/booking"
	bookingHttp "github.com/lumenview/screen-booking-backend/internal/booking/http"
	"github.com/lumenview/screen-booking-backend/internal/campaign"
	campaignHttp "github.com/lumenview/screen-booking-backend/internal/campaign/http"
	"github.com/lumenview/screen-booking-backend/internal/screen"
	screenHttp "github.com/lumenview/screen-booking-backend/internal/screen/http"
	"github.com/lumenview/screen-booking-backend/internal/user"
	userHttp "github.com/lumenview/screen-booking-backend/internal/user/http"
	"github.com/lumenview/screen-booking-backend/internal/waitlist"
	waitlistHttp "github.com/lumenview/screen-booking-backend/internal/waitlist/http"
)

// Config holds the services and settings the router needs.
type Config struct {
	IsProduction bool
	ProdOrigins  string

	UserService     user.Service
	ScreenService   screen.Service
	CampaignService campaign.Service
	BookingService  booking.Service
	WaitlistService waitlist.Service
	AssetService    asset.Service

	JWTManager *auth.JWTManager
}

// NewRouter initializes the HTTP router engine.
// It is responsible for assembling middleware (CORS, Logger, Auth) and registering routes for various modules.
func NewRouter(cfg Config) *gin.Engine {
	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global Middleware:
	// - Logger: Logs request information to the console.
	// - Recovery: Captures panics to prevent server crashes and returns a 500 error.
	r.Use(gin.Logger(), gin.Recovery())

	// Configure CORS (Cross-Origin Resource Sharing).
	corsConfig := cors.DefaultConfig()
	if cfg.IsProduction && cfg.ProdOrigins != "" {
		corsConfig.AllowOrigins = strings.Split(cfg.ProdOrigins, ",")
	} else {
		corsConfig.AllowOrigins = []string{
			"http://localhost:3000", // Web client
			"http://localhost:8081", // Swagger
		}
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization"}
	r.Use(cors.New(corsConfig))

	// authMiddleware: Validates if the request contains a valid JWT.
	authMiddleware := auth.AuthRequired(cfg.JWTManager)
	// sysAdminMiddleware: Further checks if the authenticated user has System Admin privileges.
	sysAdminMiddleware := RequireSystemAdmin(cfg.UserService)

	// Initialize HTTP Handlers for each module (injecting Service dependencies).
	userHandler := userHttp.NewHandler(cfg.UserService, cfg.WaitlistService, cfg.JWTManager)
	screenHandler := screenHttp.NewHandler(cfg.ScreenService, cfg.UserService)
	campaignHandler := campaignHttp.NewHandler(cfg.CampaignService, cfg.UserService)
	bookingHandler := bookingHttp.NewHandler(cfg.BookingService, cfg.UserService)
	waitlistHandler := waitlistHttp.NewHandler(cfg.WaitlistService)
	assetHandler := assetHttp.NewHandler(cfg.AssetService)

	// Register API routes under /v1
	v1 := r.Group("/v1")
	{
		userHttp.RegisterRoutes(v1, userHandler, authMiddleware, sysAdminMiddleware)
		screenHttp.RegisterRoutes(v1, screenHandler, authMiddleware, sysAdminMiddleware)
		campaignHttp.RegisterRoutes(v1, campaignHandler, authMiddleware, sysAdminMiddleware)
		bookingHttp.RegisterRoutes(v1, bookingHandler, authMiddleware)
		waitlistHttp.RegisterRoutes(v1, waitlistHandler, authMiddleware, sysAdminMiddleware)
		assetHttp.RegisterRoutes(v1, assetHandler, authMiddleware)
	}

	return r
}
