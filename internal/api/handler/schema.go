package handler

import "time"

// errorResponse documents the error envelope returned on all 4xx/5xx
// responses (rendered by the central error handler).
type errorResponse struct {
	Message string `json:"message"`
}

// --- Auth ---

type signupRequest struct {
	Email     string `json:"email"     validate:"required,email"`
	Password  string `json:"password"  validate:"required,min=6"`
	FirstName string `json:"firstName" validate:"required"`
	LastName  string `json:"lastName"  validate:"required"`
}

type signupResponse struct {
	Message string `json:"message"`
	ID      string `json:"id"`
}

type loginRequest struct {
	Email    string `json:"email"    validate:"required"`
	Password string `json:"password" validate:"required"`
}

// principalResponse is the public projection of a principal; the password
// hash never leaves the service layer.
type principalResponse struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

type loginResponse struct {
	Message string            `json:"message"`
	Token   string            `json:"token"`
	User    principalResponse `json:"user"`
}

// --- Courses ---

type createCourseRequest struct {
	Title       string  `json:"title"       validate:"required"`
	Description string  `json:"description" validate:"required"`
	Price       float64 `json:"price"       validate:"gte=0"`
	Image       string  `json:"image"       validate:"required"`
}

type createCourseResponse struct {
	Message  string `json:"message"`
	CourseID string `json:"courseId"`
}

// updateCourseRequest is a partial update: absent fields leave the course
// untouched.
type updateCourseRequest struct {
	CourseID    string   `json:"courseId" validate:"required"`
	Title       *string  `json:"title"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price"`
	Image       *string  `json:"image"`
}

type courseResponse struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Price       float64   `json:"price"`
	Image       string    `json:"image"`
	CreatedAt   time.Time `json:"createdAt"`
}

type courseListResponse struct {
	Courses []courseResponse `json:"courses"`
}

// --- Purchases ---

type purchaseRequest struct {
	CourseID string `json:"courseId" validate:"required"`
}

type messageResponse struct {
	Message string `json:"message"`
}

type purchasedCourseResponse struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
}

type purchaseEntryResponse struct {
	PurchaseID   string                   `json:"purchaseId"`
	PurchaseDate time.Time                `json:"purchaseDate"`
	Course       *purchasedCourseResponse `json:"course"`
}

type purchaseListResponse struct {
	Purchases []purchaseEntryResponse `json:"purchases"`
}
