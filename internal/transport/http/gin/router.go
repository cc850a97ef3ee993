package httpgin

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/arkhive/arkhive-go/internal/availability"
	"github.com/arkhive/arkhive-go/internal/domain"
	redisrepo "github.com/arkhive/arkhive-go/internal/repository/redis"
	"github.com/arkhive/arkhive-go/internal/service"
	"github.com/arkhive/arkhive-go/internal/service/auth"
	"github.com/arkhive/arkhive-go/internal/service/bookings"
	"github.com/arkhive/arkhive-go/internal/service/events"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func NewRouter(
	svcs *service.Services,
	cache *redisrepo.Cache,
	idem *redisrepo.IdempotencyStore,
	logger *slog.Logger,
	requireAuth bool,
	middlewares ...gin.HandlerFunc,
) *gin.Engine {
	r := gin.New()

	r.Use(gin.Recovery(), LoggingMiddleware(logger), RequestIDMiddleware(), CORS())
	for _, m := range middlewares {
		if m != nil {
			r.Use(m)
		}
	}

	// Swagger UI
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// health
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	guard := RequireToken(svcs.Auth, requireAuth)

	api := r.Group("/api")
	{
		event := api.Group("/event")
		{
			event.GET("", handleListEvents(svcs))
			event.POST("/create_event", guard, handleCreateEvent(svcs))
			event.DELETE("/delete_event/:id", guard, handleDeleteEvent(svcs))
		}

		booking := api.Group("/booking")
		{
			booking.GET("", handleListBookings(svcs))
			booking.POST("/create_booking", handleCreateBooking(svcs, idem))
			booking.PUT("/update_booking/:id", guard, handleUpdateBooking(svcs))
			booking.DELETE("/delete_booking/:id", guard, handleDeleteBooking(svcs))
		}

		api.POST("/admin/login", handleLogin(svcs))
		api.GET("/availability/:year/:month", handleGetAvailability(svcs, cache))
	}

	return r
}

// --- Handlers with Swagger annotations ---

// @Summary  List events
// @Success  200  {array}  domain.EventItem
// @Router   /api/event [get]
func handleListEvents(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		list, err := svcs.Events.List(c.Request.Context())
		if err != nil {
			respondErr(c, err)
			return
		}
		// ETag + Cache-Control 30s
		writeJSONWithCache(c, http.StatusOK, list, "public, max-age=30", true)
	}
}

// @Summary  Create event
// @Param    req body  domain.EventItem true "payload"
// @Success  201 {object} domain.EventItem
// @Failure  400 {object} ErrorResponse
// @Failure  409 {object} ErrorResponse
// @Router   /api/event/create_event [post]
func handleCreateEvent(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req domain.EventItem
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err.Error())
			return
		}
		if strings.TrimSpace(req.Title) == "" {
			badRequest(c, "title is required")
			return
		}
		if _, err := time.Parse("2006-01-02", req.Date); err != nil {
			badRequest(c, "date must be YYYY-MM-DD")
			return
		}

		created, err := svcs.Events.Create(c.Request.Context(), req)
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusCreated, created)
	}
}

// @Summary  Delete event
// @Param    id  path  string  true  "Event ID"
// @Success  200 {object} StatusResponse
// @Failure  404 {object} ErrorResponse
// @Router   /api/event/delete_event/{id} [delete]
func handleDeleteEvent(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := svcs.Events.Delete(c.Request.Context(), c.Param("id")); err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusOK, StatusResponse{Status: "deleted"})
	}
}

// @Summary  List bookings
// @Success  200  {array}  domain.BookingRequest
// @Router   /api/booking [get]
func handleListBookings(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		list, err := svcs.Bookings.List(c.Request.Context())
		if err != nil {
			respondErr(c, err)
			return
		}
		// ETag + Cache-Control 15s (admin list, keep it short)
		writeJSONWithCache(c, http.StatusOK, list, "public, max-age=15", true)
	}
}

// @Summary  Create booking (idempotent)
// @Param    req body  domain.BookingRequest true "payload"
// @Header   201 {string} Idempotency-Key "echo"
// @Success  201 {object} domain.BookingRequest
// @Failure  400 {object} ErrorResponse
// @Failure  409 {object} ErrorResponse "idem in progress"
// @Failure  429 {object} ErrorResponse "rate limited"
// @Router   /api/booking/create_booking [post]
func handleCreateBooking(svcs *service.Services, idem *redisrepo.IdempotencyStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req domain.BookingRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err.Error())
			return
		}

		idemKey := strings.TrimSpace(c.GetHeader("Idempotency-Key"))
		var idemStorageKey string
		if idem != nil && idemKey != "" {
			idemStorageKey = redisrepo.KeyIdemBooking(idemKey)

			if payload, ok, _ := idem.GetResult(c.Request.Context(), idemStorageKey); ok {
				c.Header("Idempotency-Key", idemKey)
				c.Data(http.StatusCreated, "application/json; charset=utf-8", []byte(payload))
				return
			}

			locked, err := idem.AcquireLock(c.Request.Context(), idemStorageKey, 60*time.Second)
			if err != nil {
				respondErr(c, err)
				return
			}
			if !locked {
				if payload, ok, _ := idem.GetResult(c.Request.Context(), idemStorageKey); ok {
					c.Header("Idempotency-Key", idemKey)
					c.Data(http.StatusCreated, "application/json; charset=utf-8", []byte(payload))
					return
				}
				c.Header("Retry-After", "1")
				c.JSON(http.StatusConflict, ErrorResponse{Error: "idempotency key in progress"})
				return
			}
		}

		rlKey := "ip:" + c.ClientIP()

		created, err := svcs.Bookings.Create(c.Request.Context(), req, rlKey)
		if err != nil {
			if idemStorageKey != "" && idem != nil {
				_ = idem.Release(c.Request.Context(), idemStorageKey)
			}
			if errors.Is(err, bookings.ErrRateLimited) {
				c.Header("Retry-After", "60")
				c.JSON(http.StatusTooManyRequests, ErrorResponse{Error: "rate limited"})
				return
			}
			respondErr(c, err)
			return
		}

		if idemStorageKey != "" && idem != nil {
			b, _ := json.Marshal(created)
			_ = idem.SaveResult(c.Request.Context(), idemStorageKey, string(b))
			c.Header("Idempotency-Key", idemKey)
		}

		c.JSON(http.StatusCreated, created)
	}
}

// @Summary  Update booking
// @Param    id  path  string  true  "Booking ID"
// @Param    req body  domain.BookingRequest true "payload"
// @Success  200 {object} domain.BookingRequest
// @Failure  400 {object} ErrorResponse
// @Failure  404 {object} ErrorResponse
// @Router   /api/booking/update_booking/{id} [put]
func handleUpdateBooking(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req domain.BookingRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err.Error())
			return
		}

		updated, err := svcs.Bookings.Update(c.Request.Context(), c.Param("id"), req)
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusOK, updated)
	}
}

// @Summary  Delete booking
// @Param    id  path  string  true  "Booking ID"
// @Success  200 {object} StatusResponse
// @Failure  404 {object} ErrorResponse
// @Router   /api/booking/delete_booking/{id} [delete]
func handleDeleteBooking(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := svcs.Bookings.Delete(c.Request.Context(), c.Param("id")); err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusOK, StatusResponse{Status: "deleted"})
	}
}

// @Summary  Admin login
// @Param    req body  LoginRequest true "credentials"
// @Success  200 {object} LoginResponse
// @Failure  401 {object} ErrorResponse
// @Router   /api/admin/login [post]
func handleLogin(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req LoginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err.Error())
			return
		}

		token, err := svcs.Auth.Login(c.Request.Context(), req.Email, req.Password)
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusOK, LoginResponse{Message: "Login successful", Token: token})
	}
}

// @Summary  Month availability
// @Param    year   path  int  true  "Year"
// @Param    month  path  int  true  "Month (1-12)"
// @Success  200 {object} availability.Month
// @Failure  400 {object} ErrorResponse
// @Router   /api/availability/{year}/{month} [get]
func handleGetAvailability(svcs *service.Services, cache *redisrepo.Cache) gin.HandlerFunc {
	return func(c *gin.Context) {
		year, err := strconv.Atoi(c.Param("year"))
		if err != nil || year < 1970 || year > 9999 {
			badRequest(c, "invalid year")
			return
		}
		month, err := strconv.Atoi(c.Param("month"))
		if err != nil || month < 1 || month > 12 {
			badRequest(c, "invalid month")
			return
		}
		month0 := month - 1

		m, err := redisrepo.GetOrSetJSON(
			c.Request.Context(),
			cache,
			redisrepo.KeyMonthAvailability(year, month0),
			15*time.Second,
			func(ctx context.Context) (availability.Month, error) {
				bookingList, err := svcs.Bookings.List(ctx)
				if err != nil {
					return availability.Month{}, err
				}
				eventList, err := svcs.Events.List(ctx)
				if err != nil {
					return availability.Month{}, err
				}
				return availability.MonthView(year, month0, time.Now(), bookingList, eventList), nil
			},
		)
		if err != nil {
			respondErr(c, err)
			return
		}
		writeJSONWithCache(c, http.StatusOK, m, "public, max-age=15", true)
	}
}

// --- Helpers ---

func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, ErrorResponse{Error: msg})
}

func respondErr(c *gin.Context, err error) {
	if err == nil {
		c.Status(http.StatusNoContent)
		return
	}

	switch {
	// events service
	case errors.Is(err, events.ErrEventNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "event not found"})
		return
	case errors.Is(err, events.ErrEventConflict):
		c.JSON(http.StatusConflict, ErrorResponse{Error: "event conflict"})
		return
	// bookings service
	case errors.Is(err, bookings.ErrBookingNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "booking not found"})
		return
	case errors.Is(err, bookings.ErrInvalidBooking):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	// auth service
	case errors.Is(err, auth.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "invalid credentials"})
		return
	}

	c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
}
