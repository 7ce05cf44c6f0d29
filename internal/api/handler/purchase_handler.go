package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/swa1245/course-market/internal/api/metrics"
	"github.com/swa1245/course-market/internal/core/domain"
	"github.com/swa1245/course-market/internal/core/ports"
)

// PurchaseHandler serves the purchase operation and purchase history.
type PurchaseHandler struct {
	purchaseService ports.PurchaseService
}

func NewPurchaseHandler(purchaseService ports.PurchaseService) *PurchaseHandler {
	return &PurchaseHandler{purchaseService: purchaseService}
}

// Purchase records a course purchase for the authenticated user. Buying the
// same course twice is rejected with 409, never replayed.
//
// @Summary      Purchase a course
// @Tags         purchases
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      purchaseRequest  true  "Course to purchase"
// @Success      201   {object}  messageResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /api/v1/course/purchase [post]
func (h *PurchaseHandler) Purchase(c echo.Context) error {
	userID, err := ctxPrincipalID(c)
	if err != nil {
		return err
	}

	var req purchaseRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}
	if req.CourseID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Course ID is required")
	}

	if _, err := h.purchaseService.Purchase(c.Request().Context(), userID, req.CourseID); err != nil {
		switch {
		case errors.Is(err, domain.ErrCourseNotFound):
			metrics.PurchasesTotal.WithLabelValues("course_not_found").Inc()
			return echo.NewHTTPError(http.StatusNotFound, "Course not found")
		case errors.Is(err, domain.ErrAlreadyPurchased):
			metrics.PurchasesTotal.WithLabelValues("duplicate").Inc()
		}
		return err
	}

	metrics.PurchasesTotal.WithLabelValues("created").Inc()
	return c.JSON(http.StatusCreated, messageResponse{Message: "Course purchased successfully"})
}

// List returns the authenticated user's purchase history, each entry joined
// with its course's public fields.
//
// @Summary      List purchase history
// @Tags         purchases
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  purchaseListResponse
// @Failure      401  {object}  errorResponse
// @Router       /api/v1/user/purchases [get]
func (h *PurchaseHandler) List(c echo.Context) error {
	userID, err := ctxPrincipalID(c)
	if err != nil {
		return err
	}

	owned, err := h.purchaseService.ListPurchases(c.Request().Context(), userID)
	if err != nil {
		return err
	}

	resp := purchaseListResponse{Purchases: make([]purchaseEntryResponse, 0, len(owned))}
	for _, o := range owned {
		entry := purchaseEntryResponse{
			PurchaseID:   o.PurchaseID,
			PurchaseDate: o.PurchaseDate,
		}
		if o.Course != nil {
			entry.Course = &purchasedCourseResponse{
				Title:       o.Course.Title,
				Description: o.Course.Description,
				Price:       o.Course.Price,
			}
		}
		resp.Purchases = append(resp.Purchases, entry)
	}

	return c.JSON(http.StatusOK, resp)
}
