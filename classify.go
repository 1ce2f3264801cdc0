package dbmanager

import (
	"context"
	"database/sql"
	"errors"
	"net"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/xraph/grove"

	"github.com/xraph/dbmanager/adapter"
	"github.com/xraph/dbmanager/evaluation"
)

// ErrorClass buckets errors surfaced by the manager and its façades.
type ErrorClass int

// Error classes.
const (
	ClassNone ErrorClass = iota
	ClassConnectivity
	ClassAuthorization
	ClassMalformedInput
	ClassNotFound
	ClassInvalidConfig
	ClassOther
)

func (c ErrorClass) String() string {
	switch c {
	case ClassNone:
		return "none"
	case ClassConnectivity:
		return "connectivity"
	case ClassAuthorization:
		return "authorization"
	case ClassMalformedInput:
		return "malformed_input"
	case ClassNotFound:
		return "not_found"
	case ClassInvalidConfig:
		return "invalid_config"
	}
	return "other"
}

// Classify maps err to its class. None of the classes is retried by the
// manager; the class only tells the caller what went wrong.
func Classify(err error) ErrorClass {
	if err == nil {
		return ClassNone
	}
	switch {
	case errors.Is(err, ErrUnauthorized):
		return ClassAuthorization
	case errors.Is(err, ErrMalformedInput):
		return ClassMalformedInput
	case errors.Is(err, ErrInvalidConfig), errors.Is(err, adapter.ErrInvalidConfig):
		return ClassInvalidConfig
	case errors.Is(err, redis.Nil),
		errors.Is(err, sql.ErrNoRows),
		errors.Is(err, mongo.ErrNoDocuments),
		errors.Is(err, evaluation.ErrNotFound):
		return ClassNotFound
	}
	if isConnectivity(err) {
		return ClassConnectivity
	}
	return ClassOther
}

func isConnectivity(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) ||
		errors.Is(err, redis.ErrClosed) ||
		errors.Is(err, grove.ErrDriverClosed) {
		return true
	}
	var connErr *pgconn.ConnectError
	if errors.As(err, &connErr) {
		return true
	}
	if mongo.IsNetworkError(err) || mongo.IsTimeout(err) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr)
}
