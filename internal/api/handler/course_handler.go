package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/swa1245/course-market/internal/core/domain"
	"github.com/swa1245/course-market/internal/core/ports"
)

// CourseHandler serves the admin catalog operations and the public preview.
type CourseHandler struct {
	courseService ports.CourseService
}

func NewCourseHandler(courseService ports.CourseService) *CourseHandler {
	return &CourseHandler{courseService: courseService}
}

// Create publishes a new course owned by the authenticated admin.
//
// @Summary      Create a course
// @Tags         courses
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createCourseRequest  true  "Course details"
// @Success      201   {object}  createCourseResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Router       /api/v1/admin/course [post]
func (h *CourseHandler) Create(c echo.Context) error {
	adminID, err := ctxPrincipalID(c)
	if err != nil {
		return err
	}

	var req createCourseRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	courseID, err := h.courseService.Create(c.Request().Context(), adminID, ports.CreateCourseInput{
		Title:       req.Title,
		Description: req.Description,
		Price:       req.Price,
		Image:       req.Image,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, createCourseResponse{
		Message:  "Course created successfully",
		CourseID: courseID,
	})
}

// Update applies a partial update to a course the admin owns. Existence and
// ownership failures are indistinguishable: both are 404.
//
// @Summary      Update a course
// @Tags         courses
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      updateCourseRequest  true  "Fields to update"
// @Success      200   {object}  messageResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /api/v1/admin/course [put]
func (h *CourseHandler) Update(c echo.Context) error {
	adminID, err := ctxPrincipalID(c)
	if err != nil {
		return err
	}

	var req updateCourseRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}
	if req.CourseID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Course ID is required")
	}

	patch := domain.CoursePatch{
		Title:       req.Title,
		Description: req.Description,
		Image:       req.Image,
		Price:       req.Price,
	}
	if err := h.courseService.Update(c.Request().Context(), adminID, req.CourseID, patch); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, messageResponse{Message: "Course updated successfully"})
}

// ListOwn returns every course created by the authenticated admin.
//
// @Summary      List own courses
// @Tags         courses
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  courseListResponse
// @Failure      401  {object}  errorResponse
// @Router       /api/v1/admin/course/bulk [get]
func (h *CourseHandler) ListOwn(c echo.Context) error {
	adminID, err := ctxPrincipalID(c)
	if err != nil {
		return err
	}

	courses, err := h.courseService.ListByCreator(c.Request().Context(), adminID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toCourseList(courses))
}

// Preview returns the public catalog. No authentication required.
//
// @Summary      Browse the course catalog
// @Tags         courses
// @Produce      json
// @Success      200  {object}  courseListResponse
// @Router       /api/v1/course/preview [get]
func (h *CourseHandler) Preview(c echo.Context) error {
	courses, err := h.courseService.Preview(c.Request().Context())
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toCourseList(courses))
}

func toCourseList(courses []*domain.Course) courseListResponse {
	out := courseListResponse{Courses: make([]courseResponse, 0, len(courses))}
	for _, course := range courses {
		out.Courses = append(out.Courses, courseResponse{
			ID:          course.ID,
			Title:       course.Title,
			Description: course.Description,
			Price:       course.Price,
			Image:       course.Image,
			CreatedAt:   course.CreatedAt,
		})
	}
	return out
}
