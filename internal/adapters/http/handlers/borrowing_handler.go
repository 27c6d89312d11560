package handlers

import (
	"fmt"

	"libraryhub/internal/adapters/persistence/repositories"
	"libraryhub/internal/core/services"
	"libraryhub/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// BorrowingHandler handles borrowing process endpoints (admin)
type BorrowingHandler struct {
	borrowingService *services.BorrowingService
}

// NewBorrowingHandler creates a new borrowing process handler
func NewBorrowingHandler(borrowingService *services.BorrowingService) *BorrowingHandler {
	return &BorrowingHandler{borrowingService: borrowingService}
}

// Checkout records a loan
// @Summary Check out a book
// @Description Records a loan and takes one copy off the shelf when available
// @Tags Borrowing
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.CheckoutInput true "Loan data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Router /borrowing-process [post]
func (h *BorrowingHandler) Checkout(c *fiber.Ctx) error {
	var req services.CheckoutInput
	if err := bind(c, &req); err != nil {
		return response.BadRequest(c, err.Error())
	}

	bp, err := h.borrowingService.Checkout(c.Context(), &req)
	if err != nil {
		return handleError(c, err, "Failed to create borrowing process")
	}

	return response.Created(c, "Borrowing process created successfully", bp)
}

// List lists loans
// @Summary List borrowing processes
// @Description Paginated list; search borrower name, book title or author, filter.isReturned=$eq:false, filter.due_date=$lt:2024-01-31
// @Tags Borrowing
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number"
// @Param limit query int false "Items per page"
// @Param sortBy query string false "column:ASC|DESC"
// @Param search query string false "Search term"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.ErrorResponse
// @Router /borrowing-process [get]
func (h *BorrowingHandler) List(c *fiber.Ctx) error {
	q, err := listQuery(c, repositories.BorrowingPagination)
	if err != nil {
		return response.BadRequest(c, err.Error())
	}

	page, err := h.borrowingService.List(c.Context(), q)
	if err != nil {
		return handleError(c, err, "Failed to list borrowing processes")
	}

	return paginated(c, "Borrowing processes retrieved successfully", page)
}

// Export downloads the current month's loans as CSV
// @Summary Export borrowing processes
// @Description CSV of every loan borrowed in the current calendar month
// @Tags Borrowing
// @Produce text/csv
// @Security BearerAuth
// @Success 200 {file} file
// @Failure 429 {object} response.ErrorResponse
// @Router /borrowing-process/export/last-month [get]
func (h *BorrowingHandler) Export(c *fiber.Ctx) error {
	export, err := h.borrowingService.ExportMonthCSV(c.Context())
	if err != nil {
		return handleError(c, err, "Failed to export borrowing processes")
	}

	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", export.Filename))
	c.Set(fiber.HeaderCacheControl, "no-cache")

	return c.Send(export.Data)
}

// Return marks a loan returned
// @Summary Return a book
// @Tags Borrowing
// @Produce json
// @Security BearerAuth
// @Param id path int true "Borrowing process ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.ErrorResponse
// @Router /borrowing-process/return/{id} [patch]
func (h *BorrowingHandler) Return(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return response.BadRequest(c, err.Error())
	}

	bp, err := h.borrowingService.Return(c.Context(), id)
	if err != nil {
		return handleError(c, err, "Failed to return book")
	}

	return response.Success(c, "Book returned successfully", bp)
}

// GetByID gets a loan
// @Summary Get borrowing process by ID
// @Tags Borrowing
// @Produce json
// @Security BearerAuth
// @Param id path int true "Borrowing process ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.ErrorResponse
// @Router /borrowing-process/{id} [get]
func (h *BorrowingHandler) GetByID(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return response.BadRequest(c, err.Error())
	}

	bp, err := h.borrowingService.GetByID(c.Context(), id)
	if err != nil {
		return handleError(c, err, "Failed to get borrowing process")
	}

	return response.Success(c, "Borrowing process retrieved successfully", bp)
}

// Update updates a loan
// @Summary Update borrowing process
// @Tags Borrowing
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Borrowing process ID"
// @Param body body services.UpdateBorrowingInput true "Fields to change"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Router /borrowing-process/{id} [patch]
func (h *BorrowingHandler) Update(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return response.BadRequest(c, err.Error())
	}

	var req services.UpdateBorrowingInput
	if err := bind(c, &req); err != nil {
		return response.BadRequest(c, err.Error())
	}

	bp, err := h.borrowingService.Update(c.Context(), id, &req)
	if err != nil {
		return handleError(c, err, "Failed to update borrowing process")
	}

	return response.Success(c, "Borrowing process updated successfully", bp)
}

// Remove deletes a loan
// @Summary Delete borrowing process
// @Tags Borrowing
// @Produce json
// @Security BearerAuth
// @Param id path int true "Borrowing process ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.ErrorResponse
// @Router /borrowing-process/{id} [delete]
func (h *BorrowingHandler) Remove(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return response.BadRequest(c, err.Error())
	}

	if err := h.borrowingService.Remove(c.Context(), id); err != nil {
		return handleError(c, err, "Failed to delete borrowing process")
	}

	return response.Success(c, "Borrowing process deleted successfully", nil)
}
