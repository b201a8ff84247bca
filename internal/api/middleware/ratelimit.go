package middleware

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/acme/account-service/internal/metrics"
)

const rateLimitPrefix = "account:ratelimit:"

// RateLimit applies a fixed-window per-client-IP limit backed by Redis
// (INCR + EXPIRE). The limiter fails open: when Redis is unreachable the
// request proceeds. A limit of zero disables the middleware.
func RateLimit(client *redis.Client, limit int, window time.Duration, log zerolog.Logger) echo.MiddlewareFunc {
	if window <= 0 {
		window = time.Minute
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if limit <= 0 || client == nil {
				return next(c)
			}

			ctx := c.Request().Context()
			key := rateLimitPrefix + c.RealIP()

			counter, err := client.Incr(ctx, key).Result()
			if err != nil {
				log.Warn().Err(err).Msg("rate limiter unavailable, allowing request")
				return next(c)
			}
			if counter == 1 {
				if err := client.Expire(ctx, key, window).Err(); err != nil {
					log.Warn().Err(err).Msg("rate limiter expire failed")
				}
			}
			if int(counter) > limit {
				metrics.RateLimitedTotal.Inc()
				return echo.NewHTTPError(http.StatusTooManyRequests, "too many requests")
			}
			return next(c)
		}
	}
}
