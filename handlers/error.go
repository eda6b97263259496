package handlers

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"

	"github.com/rideboard/site/ui"
)

// CustomErrorHandler renders an HTML error page for any error a handler returns
func CustomErrorHandler(ctx *fiber.Ctx, err error) error {
	// Status code defaults to 500
	code := fiber.StatusInternalServerError
	message := "Something went wrong. Please try again."

	var e *fiber.Error
	if errors.As(err, &e) {
		code = e.Code
		message = e.Message
	} else {
		log.Printf("[handlers] %s %s: %v", ctx.Method(), ctx.Path(), err)
	}

	ctx.Status(code)
	ctx.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return ui.ErrorPage(code, message).Render(ctx)
}
