package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// bindJSON decodes a JSON body into out. An empty body, or one that is not
// declared as JSON, leaves out untouched so the required-field checks report
// what is missing.
func bindJSON(c *fiber.Ctx, out any) error {
	if len(c.Body()) == 0 || !c.Is("json") {
		return nil
	}
	return c.BodyParser(out)
}

func badRequest(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"error": message,
	})
}

// upstreamError relays an engine failure as a 500. message already carries
// the attempted operation and the engine's detail.
func upstreamError(c *fiber.Ctx, log *zap.Logger, err error, message string) error {
	log.Error("engine call failed",
		zap.String("method", c.Method()),
		zap.String("path", c.Path()),
		zap.Error(err),
	)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"error": message,
	})
}

func success(c *fiber.Ctx, message string) error {
	return c.JSON(fiber.Map{
		"message": message,
	})
}

// errorHandler renders errors that escape a handler (unknown routes, body
// limits, recovered panics) in the same {error} shape.
func errorHandler(log *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError
		message := "Internal Server Error"

		var fe *fiber.Error
		if errors.As(err, &fe) {
			code = fe.Code
			message = fe.Message
		}
		if code == fiber.StatusNotFound {
			message = "Not found"
		}
		if code >= fiber.StatusInternalServerError {
			log.Error("unhandled error", zap.String("path", c.Path()), zap.Error(err))
		}

		return c.Status(code).JSON(fiber.Map{
			"error": message,
		})
	}
}
