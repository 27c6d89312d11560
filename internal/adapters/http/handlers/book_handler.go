package handlers

import (
	"libraryhub/internal/adapters/persistence/repositories"
	"libraryhub/internal/core/services"
	"libraryhub/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// BookHandler handles catalog endpoints
type BookHandler struct {
	bookService *services.BookService
}

// NewBookHandler creates a new book handler
func NewBookHandler(bookService *services.BookService) *BookHandler {
	return &BookHandler{bookService: bookService}
}

// Create adds a book
// @Summary Create book
// @Tags Books
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.CreateBookInput true "Book data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.ErrorResponse
// @Failure 403 {object} response.ErrorResponse
// @Router /books [post]
func (h *BookHandler) Create(c *fiber.Ctx) error {
	var req services.CreateBookInput
	if err := bind(c, &req); err != nil {
		return response.BadRequest(c, err.Error())
	}

	book, err := h.bookService.Create(c.Context(), &req)
	if err != nil {
		return handleError(c, err, "Failed to create book")
	}

	return response.Created(c, "Book created successfully", book)
}

// List lists books
// @Summary List books
// @Description Paginated list; search title/author/ISBN/shelf_location, filter.author=$ilike:x, filter.available_quantity=$gte:1
// @Tags Books
// @Produce json
// @Param page query int false "Page number"
// @Param limit query int false "Items per page"
// @Param sortBy query string false "column:ASC|DESC"
// @Param search query string false "Search term"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.ErrorResponse
// @Router /books [get]
func (h *BookHandler) List(c *fiber.Ctx) error {
	q, err := listQuery(c, repositories.BookPagination)
	if err != nil {
		return response.BadRequest(c, err.Error())
	}

	page, err := h.bookService.List(c.Context(), q)
	if err != nil {
		return handleError(c, err, "Failed to list books")
	}

	return paginated(c, "Books retrieved successfully", page)
}

// GetByID gets a book
// @Summary Get book by ID
// @Tags Books
// @Produce json
// @Param id path int true "Book ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.ErrorResponse
// @Router /books/{id} [get]
func (h *BookHandler) GetByID(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return response.BadRequest(c, err.Error())
	}

	book, err := h.bookService.GetByID(c.Context(), id)
	if err != nil {
		return handleError(c, err, "Failed to get book")
	}

	return response.Success(c, "Book retrieved successfully", book)
}

// Update updates a book
// @Summary Update book
// @Tags Books
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Book ID"
// @Param body body services.UpdateBookInput true "Fields to change"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Router /books/{id} [patch]
func (h *BookHandler) Update(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return response.BadRequest(c, err.Error())
	}

	var req services.UpdateBookInput
	if err := bind(c, &req); err != nil {
		return response.BadRequest(c, err.Error())
	}

	book, err := h.bookService.Update(c.Context(), id, &req)
	if err != nil {
		return handleError(c, err, "Failed to update book")
	}

	return response.Success(c, "Book updated successfully", book)
}
