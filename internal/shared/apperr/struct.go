package apperr

type Kind string

type AppError struct {
	Kind      Kind
	Status    int               // upstream HTTP status, 0 when the request never got a response
	PublicMsg string            // message safe to show to the admin
	Fields    map[string]string // form/validation field errors (optional)
	Err       error             // internal error (logged, never shown)
}
