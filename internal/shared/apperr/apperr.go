package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

const (
	Invalid      Kind = "invalid"
	NotFound     Kind = "not_found"
	Unauthorized Kind = "unauthorized"
	Forbidden    Kind = "forbidden"
	Conflict     Kind = "conflict"
	Unavailable  Kind = "unavailable" // backend unreachable
	Rejected     Kind = "rejected"    // 2xx response carrying success:false
	Internal     Kind = "internal"
)

// Category groups kinds by where the failure happened.
type Category string

const (
	CategoryTransport Category = "transport"
	CategoryHTTP      Category = "http"
	CategoryBusiness  Category = "business"
)

const defaultPublicMsg = "Something went wrong. Please try again."

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Kind, e.Err)
	}
	if e.PublicMsg != "" {
		return fmt.Sprintf("%s: %s", e.Kind, e.PublicMsg)
	}
	return string(e.Kind)
}

func (e *AppError) Unwrap() error { return e.Err }

// Constructors. PublicMsg must stay short and safe.
func InvalidErr(publicMsg string, fields map[string]string) *AppError {
	return &AppError{Kind: Invalid, PublicMsg: publicMsg, Fields: fields}
}
func NotFoundErr(publicMsg string) *AppError {
	return &AppError{Kind: NotFound, PublicMsg: publicMsg}
}
func UnauthorizedErr(publicMsg string) *AppError {
	return &AppError{Kind: Unauthorized, PublicMsg: publicMsg}
}
func ConflictErr(publicMsg string) *AppError {
	return &AppError{Kind: Conflict, PublicMsg: publicMsg}
}

// UnavailableErr wraps a transport failure (dial, TLS, broken body).
func UnavailableErr(err error) *AppError {
	return &AppError{Kind: Unavailable, PublicMsg: "The order service is unreachable.", Err: err}
}

// RejectedErr is a business rule rejection reported inside a successful response.
func RejectedErr(status int, publicMsg string) *AppError {
	if publicMsg == "" {
		publicMsg = "The request was rejected."
	}
	return &AppError{Kind: Rejected, Status: status, PublicMsg: publicMsg}
}

// FromStatus maps a non-success upstream status to an AppError.
func FromStatus(status int, publicMsg string) *AppError {
	k := Internal
	switch status {
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		k = Invalid
	case http.StatusUnauthorized:
		k = Unauthorized
	case http.StatusForbidden:
		k = Forbidden
	case http.StatusNotFound:
		k = NotFound
	case http.StatusConflict:
		k = Conflict
	case http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
		k = Unavailable
	}
	if publicMsg == "" {
		publicMsg = http.StatusText(status)
	}
	return &AppError{Kind: k, Status: status, PublicMsg: publicMsg}
}

// Wrap hides err behind the generic public message. AppErrors pass through.
func Wrap(err error) *AppError {
	if err == nil {
		return nil
	}
	if ae, ok := As(err); ok {
		return ae
	}
	return &AppError{Kind: Internal, PublicMsg: defaultPublicMsg, Err: err}
}

func As(err error) (*AppError, bool) {
	var ae *AppError
	if errors.As(err, &ae) {
		return ae, true
	}
	return nil, false
}

func KindOf(err error) Kind {
	if ae, ok := As(err); ok {
		return ae.Kind
	}
	return Internal
}

func CategoryOf(err error) Category {
	ae, ok := As(err)
	switch {
	case !ok:
		return CategoryTransport
	case ae.Kind == Rejected:
		return CategoryBusiness
	case ae.Status == 0:
		return CategoryTransport
	default:
		return CategoryHTTP
	}
}

func HTTPStatus(err error) int {
	if ae, ok := As(err); ok {
		return KindStatus(ae.Kind)
	}
	return http.StatusInternalServerError
}

// KindStatus is the status this application answers with for a kind.
func KindStatus(k Kind) int {
	switch k {
	case Invalid:
		return http.StatusBadRequest
	case Unauthorized:
		return http.StatusUnauthorized
	case Forbidden:
		return http.StatusForbidden
	case NotFound:
		return http.StatusNotFound
	case Conflict:
		return http.StatusConflict
	case Rejected:
		return http.StatusUnprocessableEntity
	case Unavailable:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func PublicMessage(err error) string {
	if ae, ok := As(err); ok && ae.PublicMsg != "" {
		return ae.PublicMsg
	}
	return defaultPublicMsg
}
