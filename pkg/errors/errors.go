package errors

import "net/http"

// Reason is a stable machine-readable rejection code. The mobile client
// branches on Reason, never on the human message.
type Reason string

const (
	ReasonDuplicateScan     Reason = "DUPLICATE_SCAN"
	ReasonInsufficientFunds Reason = "INSUFFICIENT_FUNDS"
	ReasonVoucherNotFound   Reason = "VOUCHER_NOT_FOUND"
	ReasonVoucherRedeemed   Reason = "VOUCHER_ALREADY_REDEEMED"
	ReasonVoucherExpired    Reason = "VOUCHER_EXPIRED"
	ReasonRewardUnavailable Reason = "REWARD_UNAVAILABLE"
	ReasonInvalidRequest    Reason = "INVALID_REQUEST"
	ReasonUnauthorized      Reason = "UNAUTHORIZED"
	ReasonForbidden         Reason = "FORBIDDEN"
	ReasonNotFound          Reason = "NOT_FOUND"
	ReasonInternal          Reason = "INTERNAL"
	ReasonRateLimit         Reason = "RATE_LIMIT"
)

// AppError is a custom error type that includes an HTTP status code and a
// stable reason code
type AppError struct {
	Code    int    `json:"code"`
	Reason  Reason `json:"reason"`
	Message string `json:"message"`
}

func (e *AppError) Error() string {
	return e.Message
}

// NewAppError creates a new AppError
func NewAppError(code int, reason Reason, message string) *AppError {
	return &AppError{
		Code:    code,
		Reason:  reason,
		Message: message,
	}
}

// Business-rule rejections. Expected outcomes, not failures; the error
// middleware renders them without logging at error level.
var (
	ErrDuplicateScan     = NewAppError(http.StatusConflict, ReasonDuplicateScan, "This item has already been recycled")
	ErrInsufficientFunds = NewAppError(http.StatusPaymentRequired, ReasonInsufficientFunds, "Not enough points for this reward")
	ErrVoucherNotFound   = NewAppError(http.StatusNotFound, ReasonVoucherNotFound, "Voucher code not found")
	ErrVoucherRedeemed   = NewAppError(http.StatusConflict, ReasonVoucherRedeemed, "Voucher has already been redeemed")
	ErrVoucherExpired    = NewAppError(http.StatusGone, ReasonVoucherExpired, "Voucher has expired")
	ErrRewardUnavailable = NewAppError(http.StatusConflict, ReasonRewardUnavailable, "Reward is currently unavailable")
)

// Common errors
var (
	ErrInvalidRequest = NewAppError(http.StatusBadRequest, ReasonInvalidRequest, "Invalid request parameters")
	ErrUnauthorized   = NewAppError(http.StatusUnauthorized, ReasonUnauthorized, "Unauthorized access")
	ErrForbidden      = NewAppError(http.StatusForbidden, ReasonForbidden, "Access denied")
	ErrNotFound       = NewAppError(http.StatusNotFound, ReasonNotFound, "Resource not found")
	ErrInternalServer = NewAppError(http.StatusInternalServerError, ReasonInternal, "Internal server error")
	ErrRateLimit      = NewAppError(http.StatusTooManyRequests, ReasonRateLimit, "Rate limit exceeded")
)

// IsRejection reports whether err is a business-rule rejection (4xx AppError)
// as opposed to a transient backend failure.
func IsRejection(err error) bool {
	appErr, ok := err.(*AppError)
	return ok && appErr.Code < http.StatusInternalServerError
}

// Helper functions to create specific errors
func BadRequest(msg string) *AppError {
	return NewAppError(http.StatusBadRequest, ReasonInvalidRequest, msg)
}

func NotFound(msg string) *AppError {
	return NewAppError(http.StatusNotFound, ReasonNotFound, msg)
}

func Unauthorized(msg string) *AppError {
	return NewAppError(http.StatusUnauthorized, ReasonUnauthorized, msg)
}

func Forbidden(msg string) *AppError {
	return NewAppError(http.StatusForbidden, ReasonForbidden, msg)
}

func Internal(msg string) *AppError {
	return NewAppError(http.StatusInternalServerError, ReasonInternal, msg)
}
