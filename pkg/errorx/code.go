package errorx

import "net/http"

type Code int

const (
	// Common codes
	BadRequest       Code = 100001
	BadResponse      Code = 100002
	PermissionDenied Code = 100003
	NotFound         Code = 100004
	Unauthenticated  Code = 100005
	AlreadyExists    Code = 100006
	Internal         Code = 100007
	Unavailable      Code = 100008
	NotImplemented   Code = 100009
	TooManyRequests  Code = 100010

	// Refresh token codes
	StolenDetected Code = 200001
	TokenExpired   Code = 200002

	// Poll codes
	PollExpired Code = 300001
)

// HTTPStatus maps an application code to the status the boundary responds
// with. Unmapped codes are treated as server failures.
func (c Code) HTTPStatus() int {
	switch c {
	case BadRequest, AlreadyExists, TooManyRequests, PollExpired:
		return http.StatusBadRequest
	case Unauthenticated, StolenDetected, TokenExpired:
		return http.StatusUnauthorized
	case PermissionDenied:
		return http.StatusForbidden
	case NotFound:
		return http.StatusNotFound
	case NotImplemented:
		return http.StatusNotImplemented
	case Unavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
