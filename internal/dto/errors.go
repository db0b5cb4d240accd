package dto

// BaseError общий формат ошибки для всех ответов
// Code — машинный код (snake_case), Message — текст на языке клиента, где он известен
type BaseError struct {
	Code    string       `json:"code"`
	Message string       `json:"message"`
	Details string       `json:"details,omitempty"`
	Fields  []FieldError `json:"fields,omitempty"`
}

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Tag     string `json:"tag,omitempty"`
}

// ValidationErrorResponse 400
type ValidationErrorResponse BaseError

// UnauthorizedErrorResponse 401
type UnauthorizedErrorResponse BaseError

// ForbiddenErrorResponse 403
type ForbiddenErrorResponse BaseError

// NotFoundErrorResponse 404
type NotFoundErrorResponse BaseError

// ConflictErrorResponse 409
// Пример: недопустимый переход статуса, отправка уже идёт
type ConflictErrorResponse BaseError

// UnavailableErrorResponse 503
// Пример: заказ не удалось сохранить после всех повторов
type UnavailableErrorResponse BaseError

// InternalErrorResponse 500
type InternalErrorResponse BaseError

func NewValidationError(msg string, fields []FieldError) ValidationErrorResponse {
	return ValidationErrorResponse(BaseError{Code: "validation_error", Message: msg, Fields: fields})
}
func NewUnauthorizedError(msg string) UnauthorizedErrorResponse {
	return UnauthorizedErrorResponse(BaseError{Code: "unauthorized", Message: msg})
}
func NewForbiddenError(msg string) ForbiddenErrorResponse {
	return ForbiddenErrorResponse(BaseError{Code: "forbidden", Message: msg})
}
func NewNotFoundError(msg string) NotFoundErrorResponse {
	return NotFoundErrorResponse(BaseError{Code: "not_found", Message: msg})
}
func NewConflictError(msg string) ConflictErrorResponse {
	return ConflictErrorResponse(BaseError{Code: "conflict", Message: msg})
}
func NewUnavailableError(msg string) UnavailableErrorResponse {
	return UnavailableErrorResponse(BaseError{Code: "submission_failed", Message: msg})
}
func NewInternalError(details string) InternalErrorResponse {
	return InternalErrorResponse(BaseError{Code: "internal_error", Message: "internal server error", Details: details})
}
