package middleware

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"linguaplatform/backend/utils"
)

const errorKey = "request_error"

// RecordError attaches an error to the request's log line. Handlers use it
// when they answer with a 5xx themselves instead of returning the error.
func RecordError(c *fiber.Ctx, err error) {
	c.Locals(errorKey, err)
}

// LoggingMiddleware logs one line per request, at warn for 4xx and error
// for 5xx responses.
func LoggingMiddleware(logger *utils.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()

		err := c.Next()

		status := c.Response().StatusCode()
		kv := []interface{}{
			"method", c.Method(),
			"path", c.Path(),
			"status", status,
			"latency", time.Since(start),
			"ip", c.IP(),
			"user_agent", c.Get(fiber.HeaderUserAgent),
		}
		if id, ok := c.Locals(identityKey).(utils.Identity); ok {
			kv = append(kv, "user_id", id.UserID)
		}
		if err != nil {
			kv = append(kv, "error", err.Error())
		} else if herr, ok := c.Locals(errorKey).(error); ok {
			kv = append(kv, "error", herr.Error())
		}

		switch {
		case status >= fiber.StatusInternalServerError:
			logger.Error("request", kv...)
		case status >= fiber.StatusBadRequest:
			logger.Warn("request", kv...)
		default:
			logger.Info("request", kv...)
		}

		return err
	}
}
