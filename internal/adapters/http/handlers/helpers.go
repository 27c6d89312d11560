package handlers

import (
	"errors"
	"log"
	"strconv"

	"libraryhub/internal/core/domain"
	"libraryhub/internal/pkg/pagination"
	"libraryhub/internal/pkg/response"
	"libraryhub/internal/pkg/validation"

	"github.com/gofiber/fiber/v2"
)

// errBadID is returned by parseID for non-numeric or zero ids
var errBadID = errors.New("id must be a positive integer")

// parseID reads the :id route parameter
func parseID(c *fiber.Ctx) (uint, error) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, errBadID
	}
	return uint(id), nil
}

// bind parses the JSON body into dst and validates it
func bind(c *fiber.Ctx, dst interface{}) error {
	if err := c.BodyParser(dst); err != nil {
		return errors.New("Invalid request body")
	}
	return validation.Struct(dst)
}

// listQuery parses pagination parameters for a listing endpoint
func listQuery(c *fiber.Ctx, cfg pagination.Config) (*pagination.Query, error) {
	return pagination.FromCtx(c, cfg)
}

// paginated writes a page in the success envelope
func paginated[T any](c *fiber.Ctx, message string, page *pagination.Page[T]) error {
	return response.Paginated(c, message, page.Items, page.Meta, page.Links)
}

// handleError translates service errors into HTTP responses
func handleError(c *fiber.Ctx, err error, fallback string) error {
	switch {
	case errors.Is(err, domain.ErrInvalidInput), errors.Is(err, pagination.ErrInvalidQuery):
		return response.BadRequest(c, err.Error())
	case errors.Is(err, domain.ErrInvalidCredentials):
		return response.Unauthorized(c, "Invalid credentials")
	case errors.Is(err, domain.ErrUserNotFound):
		return response.NotFound(c, "User not found")
	case errors.Is(err, domain.ErrBookNotFound):
		return response.NotFound(c, "Book not found")
	case errors.Is(err, domain.ErrBorrowingNotFound):
		return response.NotFound(c, "Borrowing process not found")
	case errors.Is(err, domain.ErrEmailAlreadyExists):
		return response.Conflict(c, "User already exists")
	case errors.Is(err, domain.ErrBookAlreadyExists):
		return response.BadRequest(c, "Book already exists")
	default:
		log.Printf("❌ %s: %v", fallback, err)
		return response.InternalServerError(c, fallback)
	}
}
