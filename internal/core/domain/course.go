package domain

import (
	"errors"
	"time"
)

// Course is a purchasable catalog item. Only the admin whose id matches
// CreatorID may mutate it.
type Course struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Price       float64   `json:"price"`
	Image       string    `json:"image"`
	CreatorID   string    `json:"creatorId"`
	CreatedAt   time.Time `json:"createdAt"`
}

// CoursePatch carries a partial update. Only non-nil slots are applied.
type CoursePatch struct {
	Title       *string
	Description *string
	Image       *string
	Price       *float64
}

// Empty reports whether the patch changes nothing.
func (p CoursePatch) Empty() bool {
	return p.Title == nil && p.Description == nil && p.Image == nil && p.Price == nil
}

// ErrCourseNotFound covers both a missing course and a course owned by a
// different admin; callers cannot tell the two apart.
var ErrCourseNotFound = errors.New("course not found")
var ErrNegativePrice = errors.New("price cannot be negative")
