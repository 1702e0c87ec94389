package routes

import (
	"net/http"
	"strings"
	"time"

	"hotel-booking-api/auth"
	"hotel-booking-api/controllers"
	"hotel-booking-api/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func parseCorsOrigins(raw string) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return []string{"*"}
	}

	parts := strings.Split(raw, ",")
	origins := make([]string, 0, len(parts))
	for _, part := range parts {
		origin := strings.TrimSpace(part)
		if origin != "" {
			origins = append(origins, origin)
		}
	}
	if len(origins) == 0 {
		return []string{"*"}
	}
	return origins
}

// Controllers groups the handlers the router mounts. Auth.Login is only
// mounted when LoginEnabled is set.
type Controllers struct {
	Rooms     *controllers.RoomController
	RoomTypes *controllers.RoomTypeController
	Bookings  *controllers.BookingController
	Tickets   *controllers.TicketController
	Customers *controllers.CustomerController
	Auth      *controllers.AuthController
}

type Options struct {
	CORSOrigins  string
	Verifier     auth.TokenVerifier
	Limiter      middleware.Limiter
	LoginEnabled bool
	Log          *zap.Logger
}

const defaultAuthRatePerMinute = 20

func SetupRouter(ctl Controllers, opts Options) *gin.Engine {
	if opts.Log == nil {
		opts.Log = zap.NewNop()
	}
	if opts.Limiter == nil {
		opts.Limiter = middleware.NewLocalLimiter(defaultAuthRatePerMinute)
	}

	r := gin.New()
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(opts.Log))
	r.Use(gin.Recovery())

	origins := parseCorsOrigins(opts.CORSOrigins)
	allowCredentials := true
	for _, origin := range origins {
		if origin == "*" {
			allowCredentials = false
			break
		}
	}

	r.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Requested-With", middleware.RequestIDHeader},
		ExposeHeaders:    []string{"Content-Length", "Location", middleware.RequestIDHeader},
		AllowCredentials: allowCredentials,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	requireAuth := middleware.RequireAuth(opts.Verifier)

	r.GET("/user/me", requireAuth, ctl.Auth.Me)

	api := r.Group("/api")
	{
		rooms := api.Group("/Rooms")
		{
			rooms.GET("", ctl.Rooms.GetRooms)
			rooms.GET("/:id", ctl.Rooms.GetRoom)
			rooms.POST("", requireAuth, ctl.Rooms.CreateRoom)
			rooms.PUT("/:id", requireAuth, ctl.Rooms.UpdateRoom)
			rooms.DELETE("/:id", requireAuth, ctl.Rooms.DeleteRoom)
			rooms.POST("/:id/availability", requireAuth, ctl.Rooms.GenerateAvailability)
		}

		roomTypes := api.Group("/RoomType")
		{
			roomTypes.GET("", ctl.RoomTypes.GetRoomTypes)
			roomTypes.GET("/:id", ctl.RoomTypes.GetRoomType)
			roomTypes.POST("", requireAuth, ctl.RoomTypes.CreateRoomType)
			roomTypes.PUT("/:id", requireAuth, ctl.RoomTypes.UpdateRoomType)
			roomTypes.DELETE("/:id", requireAuth, ctl.RoomTypes.DeleteRoomType)
		}

		bookings := api.Group("/Booking")
		{
			bookings.GET("/CheckAvailability", ctl.Bookings.CheckAvailability)
			bookings.PUT("/BookRoom", ctl.Bookings.BookRoom)
			bookings.GET("", ctl.Bookings.GetBookings)
			bookings.POST("", ctl.Bookings.CreateBooking)
			bookings.GET("/:id", ctl.Bookings.GetBooking)
		}

		tickets := api.Group("/Ticket", requireAuth)
		{
			tickets.GET("", ctl.Tickets.GetTickets)
			tickets.GET("/:id", ctl.Tickets.GetTicket)
			tickets.POST("", ctl.Tickets.CreateTicket)
			tickets.PUT("/:id", ctl.Tickets.UpdateTicket)
			tickets.DELETE("/:id", ctl.Tickets.DeleteTicket)
		}

		customers := api.Group("/Customers", requireAuth)
		{
			customers.GET("/:id", ctl.Customers.GetCustomer)
			customers.GET("/:id/Bookings", ctl.Customers.GetCustomerBookings)
		}

		authRoutes := api.Group("/Auth", middleware.RateLimit(opts.Limiter, opts.Log))
		{
			authRoutes.POST("/register", ctl.Auth.Register)
			if opts.LoginEnabled {
				authRoutes.POST("/login", ctl.Auth.Login)
			}
		}
	}

	return r
}
