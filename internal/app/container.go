package app

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lumenview/screen-booking-backend/internal/api"
	"github.com/lumenview/screen-booking-backend/internal/asset"
	"github.com/lumenview/screen-booking-backend/internal/auth"
	"github.com/lumenview/screen-booking-backend/internal/booking"
	"github.com/lumenview/screen-booking-backend/internal/campaign"
	"github.com/lumenview/screen-booking-backend/internal/pkg/storage"
	"github.com/lumenview/screen-booking-backend/internal/screen"
	"github.com/lumenview/screen-booking-backend/internal/user"
	"github.com/lumenview/screen-booking-backend/internal/waitlist"
)

// Config holds the dependencies and settings required to start the application.
type Config struct {
	IsProduction bool
	ProdOrigins  string
	DBPool       *pgxpool.Pool
	JWTSecret    string
	JWTTTL       time.Duration
	BcryptCost   int
	MediaRoot    string
}

// Container holds the initialized components that are needed externally.
type Container struct {
	Router     *gin.Engine
	JWTManager *auth.JWTManager
}

// NewContainer initializes all modules and returns the container.
func NewContainer(cfg Config) (*Container, error) {
	// Init Components
	passwordHasher := auth.NewBcryptPasswordHasherWithCost(cfg.BcryptCost)
	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.JWTTTL)

	mediaStore, err := storage.NewLocalStorage(cfg.MediaRoot)
	if err != nil {
		return nil, fmt.Errorf("init media storage: %w", err)
	}

	// User Module
	userRepo := user.NewPgxRepository(cfg.DBPool)
	userService := user.NewService(userRepo, passwordHasher)

	// Screen Module
	screenRepo := screen.NewPgxRepository(cfg.DBPool)
	screenService := screen.NewService(screenRepo)

	// Campaign Module
	campaignRepo := campaign.NewPgxRepository(cfg.DBPool)
	campaignService := campaign.NewService(campaignRepo)

	// Booking Module
	bookingRepo := booking.NewPgxRepository(cfg.DBPool)
	bookingService := booking.NewService(bookingRepo, screenService, campaignService)

	// Waitlist Module
	waitlistRepo := waitlist.NewPgxRepository(cfg.DBPool)
	waitlistService := waitlist.NewService(waitlistRepo)

	// Asset Module
	assetRepo := asset.NewRepository(cfg.DBPool)
	assetService := asset.NewService(assetRepo, mediaStore)

	// Router
	router := api.NewRouter(api.Config{
		IsProduction:    cfg.IsProduction,
		ProdOrigins:     cfg.ProdOrigins,
		UserService:     userService,
		ScreenService:   screenService,
		CampaignService: campaignService,
		BookingService:  bookingService,
		WaitlistService: waitlistService,
		AssetService:    assetService,
		JWTManager:      jwtManager,
	})

	return &Container{
		Router:     router,
		JWTManager: jwtManager,
	}, nil
}
