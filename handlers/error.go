package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/carsawa/site/ui"
)

// CustomErrorHandler renders the error page. Only fiber errors carry a message
// meant for visitors; anything else is logged and shown generically.
func CustomErrorHandler(ctx *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Something went wrong. Please try again later."

	var e *fiber.Error
	if errors.As(err, &e) {
		code = e.Code
		message = e.Message
	} else {
		hlog().Error("unhandled error", zap.String("path", ctx.Path()), zap.Error(err))
	}

	ctx.Status(code)
	return render(ctx, ui.ErrorPage(code, message))
}
