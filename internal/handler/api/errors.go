package api

import "salon-booking/internal/handler/httperr"

var (
	errUnauthenticated   = httperr.New("request reached a protected handler without a principal")
	errInvalidIdempotent = httperr.New("idempotency key must be a UUID")
)
