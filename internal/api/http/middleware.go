package http

import (
	"errors"
	"fmt"
	"runtime/debug"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"go.uber.org/zap"

	"github.com/Nwoyi/staffing-api/internal/api/dto"
	"github.com/Nwoyi/staffing-api/internal/observability"
	apperrors "github.com/Nwoyi/staffing-api/pkg/util/errorutil"
)

// MiddlewareConfig controls the global middleware chain.
type MiddlewareConfig struct {
	// ExposeErrorDetails includes internal error text in 500 responses.
	ExposeErrorDetails bool
	AllowOrigins       string
}

// RegisterMiddlewares attaches global middlewares such as error handling and logging.
func RegisterMiddlewares(app *fiber.App, logger *zap.Logger, metrics *observability.Metrics, cfg MiddlewareConfig) {
	allowOrigins := cfg.AllowOrigins
	if allowOrigins == "" {
		allowOrigins = "*"
	}

	app.Use(requestid.New())
	app.Use(observability.RequestLogger(logger, metrics))
	app.Use(errorHandlingMiddleware(logger, metrics, cfg.ExposeErrorDetails))
	app.Use(helmet.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: allowOrigins,
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))
}

func errorHandlingMiddleware(logger *zap.Logger, metrics *observability.Metrics, exposeDetails bool) fiber.Handler {
	return func(c *fiber.Ctx) (err error) {
		defer func() {
			if r := recover(); r != nil {
				logger.Error("panic recovered", zap.Any("panic", r), zap.ByteString("stack", debug.Stack()))
				err = apperrors.NewInternalError(fmt.Errorf("panic: %v", r))
			}
			if err != nil {
				domainErr := toDomainError(err)
				metrics.RecordError(c.Route().Path, c.Method(), domainErr.Code)

				response := dto.ErrorResponse{
					Code:    domainErr.Code,
					Message: domainErr.Message,
					Details: domainErr.Details,
				}
				if domainErr.HTTPStatus >= fiber.StatusInternalServerError {
					logger.Error("request failed", zap.String("path", c.Path()), zap.Error(domainErr))
					response.Details = nil
					if exposeDetails && domainErr.Err != nil {
						response.Details = domainErr.Err.Error()
					}
				}
				_ = c.Status(domainErr.HTTPStatus).JSON(response)
				err = nil
			}
		}()
		return c.Next()
	}
}

func toDomainError(err error) *apperrors.DomainError {
	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return apperrors.NewDomainError(
			apperrors.CodeForStatus(fiberErr.Code),
			fiberErr.Message,
			fiberErr.Code,
			nil,
		)
	}
	return apperrors.ToDomainError(err)
}
