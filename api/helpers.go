package api

import (
	"errors"
	"fmt"
	"time"

	"github.com/xraph/forge"

	"github.com/xraph/dbmanager"
	"github.com/xraph/dbmanager/evaluation"
)

// mapError maps domain errors to Forge HTTP errors.
func mapError(err error) error {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, dbmanager.ErrUnauthorized):
		return forge.Forbidden(err.Error())
	case errors.Is(err, dbmanager.ErrMalformedInput), errors.Is(err, dbmanager.ErrConditionExists):
		return forge.BadRequest(err.Error())
	case errors.Is(err, dbmanager.ErrNotConfigured), errors.Is(err, evaluation.ErrNotFound):
		return forge.NotFound(err.Error())
	}
	return err
}

// conditionGraph resolves the condition graph capability or fails with
// ErrNotConfigured.
func (a *API) conditionGraph() (dbmanager.ConditionGraphDB, error) {
	cg, ok := a.mgr.ConditionGraph()
	if !ok {
		return nil, mapError(fmt.Errorf("%w: %s", dbmanager.ErrNotConfigured, dbmanager.BackendEventHistory))
	}
	return cg, nil
}

// parseTime accepts RFC 3339 timestamps. An empty value yields the zero
// time.
func parseTime(field, v string) (time.Time, error) {
	if v == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(time.RFC3339Nano, v)
	if err != nil {
		return time.Time{}, forge.BadRequest(fmt.Sprintf("invalid %s: %v", field, err))
	}
	return t.UTC(), nil
}

// parseOptionalTime is parseTime for fields where empty means "never".
func parseOptionalTime(field, v string) (*time.Time, error) {
	if v == "" {
		return nil, nil
	}
	t, err := parseTime(field, v)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
