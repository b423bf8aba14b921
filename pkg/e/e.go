package e

import "fmt"

var (
	// 400 Bad Request
	ErrStatusBadRequest = fmt.Errorf("bad request")
	ErrMissingFields    = fmt.Errorf("all fields are required")
	ErrInvalidPrice     = fmt.Errorf("price must be a valid non-negative number")
	ErrInvalidProductID = fmt.Errorf("invalid product id")

	// 401/403 — ошибки контроля доступа
	ErrPasswordRequired = fmt.Errorf("admin password is required to perform this action")
	ErrWrongPassword    = fmt.Errorf("incorrect admin password")
	ErrIPNotAllowed     = fmt.Errorf("address is not authorized to perform this action")

	// 404 Not Found
	ErrProductNotFound = fmt.Errorf("product not found")

	// 413 Request Entity Too Large
	ErrRequestTooLarge = fmt.Errorf("request body is too large")

	// 500 Internal Server Error
	ErrInternalServerError = fmt.Errorf("server error")
)

// Wrap оборачивает ошибку
func Wrap(msg string, err error) error {
	return fmt.Errorf("%s: %w", msg, err)
}
