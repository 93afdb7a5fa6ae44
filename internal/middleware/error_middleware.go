package middleware

import (
	"errors"
	"fmt"
	"log"

	"catalog/internal/apperrors"

	"github.com/gofiber/fiber/v2"
)

// unexpectedErrorMessage is the only message a 500 response ever carries;
// internal failure text must not leak outside development mode.
const unexpectedErrorMessage = "An unexpected error occurred."

// ErrorHandler returns the exception-translation middleware. It wraps the
// downstream pipeline, and on any failure escaping it (returned error or
// panic) logs the full detail, classifies the failure, and writes a JSON
// {error, detail?} body with the matching status code. The detail field is
// included only in development mode. Once a failure is handled the request
// is terminated; no further handler runs.
func ErrorHandler(development bool) fiber.Handler {
	return func(c *fiber.Ctx) (err error) {
		defer func() {
			if r := recover(); r != nil {
				err = handleFailure(c, fmt.Errorf("panic: %v", r), development)
			}
		}()

		if err := c.Next(); err != nil {
			return handleFailure(c, err, development)
		}
		return nil
	}
}

func handleFailure(c *fiber.Ctx, err error, development bool) error {
	log.Printf("Unhandled error processing %s %s: %v", c.Method(), c.Path(), err)

	kind := classify(err)

	var status int
	switch kind {
	case apperrors.KindValidation:
		status = fiber.StatusBadRequest
	case apperrors.KindNotFound:
		status = fiber.StatusNotFound
	case apperrors.KindForbidden:
		status = fiber.StatusForbidden
	default:
		status = fiber.StatusInternalServerError
		// Transport-level client errors outside the taxonomy (405 and the
		// like) keep their own status instead of masquerading as server
		// faults.
		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) && fiberErr.Code < fiber.StatusInternalServerError {
			status = fiberErr.Code
		}
	}

	message := err.Error()
	if status == fiber.StatusInternalServerError {
		message = unexpectedErrorMessage
	}

	body := fiber.Map{
		"error": message,
	}
	if development {
		body["detail"] = fmt.Sprintf("%s: %v", kind, err)
	}

	return c.Status(status).JSON(body)
}

// classify resolves the failure kind. Tagged domain errors carry their kind
// explicitly; transport-level fiber errors with a matching status fold into
// the taxonomy; everything else is unclassified.
func classify(err error) apperrors.Kind {
	var appErr *apperrors.Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		switch fiberErr.Code {
		case fiber.StatusBadRequest:
			return apperrors.KindValidation
		case fiber.StatusNotFound:
			return apperrors.KindNotFound
		case fiber.StatusForbidden:
			return apperrors.KindForbidden
		}
	}

	return apperrors.KindInternal
}
