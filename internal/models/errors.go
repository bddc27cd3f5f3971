package models

import "errors"

var (
	ErrNotFound            = errors.New("record not found")
	ErrDuplicateName       = errors.New("subscription with this name already exists")
	ErrFriendRequestExists = errors.New("friend request already exists")
	ErrUserNotFound        = errors.New("user not found")
	ErrSelfFriendRequest   = errors.New("cannot send friend request to yourself")
	ErrForbidden           = errors.New("forbidden")
	ErrInvalidStatus       = errors.New("invalid status")
	ErrUserExists          = errors.New("user already exists")
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrPricePrecision      = errors.New("ensure that there are no more than 2 decimal places")
	ErrInvalidDate         = errors.New("date has wrong format, use YYYY-MM-DD")
	ErrRequired            = errors.New("this field is required")
)

// FieldError ошибка валидации, привязанная к полю запроса.
// Err хранит исходную sentinel-ошибку, чтобы errors.Is продолжал работать.
type FieldError struct {
	Field   string
	Message string
	Err     error
}

// NewFieldError создаёт FieldError с сообщением из sentinel-ошибки.
func NewFieldError(field string, err error) *FieldError {
	return &FieldError{Field: field, Message: err.Error(), Err: err}
}

func (e *FieldError) Error() string {
	return e.Field + ": " + e.Message
}

func (e *FieldError) Unwrap() error {
	return e.Err
}
