package service

import "errors"

var (
	// ErrValidation is returned when request data is missing or malformed
	ErrValidation = errors.New("invalid request")

	// ErrCourseNotFound is returned when a course id does not resolve
	ErrCourseNotFound = errors.New("course not found")

	// ErrNotConfigured is returned when a third-party credential is absent
	ErrNotConfigured = errors.New("service not configured")

	// ErrCourseFull is returned when a course has no seats left
	ErrCourseFull = errors.New("course is full")

	// ErrPaymentGateway wraps failures reported by the payment gateway
	ErrPaymentGateway = errors.New("payment gateway error")

	// ErrDataStore wraps persistence failures
	ErrDataStore = errors.New("data store error")

	// ErrInvalidSignature is returned when a webhook signature does not verify
	ErrInvalidSignature = errors.New("invalid webhook signature")

	// ErrInvalidPayload is returned when a verified webhook body cannot be decoded
	ErrInvalidPayload = errors.New("invalid webhook payload")

	// ErrPromoCodeExists is returned when inserting a promo code that already exists
	ErrPromoCodeExists = errors.New("promo code already exists")

	// ErrPromoCodeUnavailable is returned when every generated lead code was already taken
	ErrPromoCodeUnavailable = errors.New("no free promo code available")

	// ErrForbidden is returned when the caller's role lacks a capability
	ErrForbidden = errors.New("insufficient permissions")
)
