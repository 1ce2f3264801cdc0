package cache

import "context"

// Cloner is implemented by row types that can hand out an independent copy
// of themselves.
type Cloner[T any] interface {
	Clone() T
}

// CachedRead returns the rows stored under key in local when the policy is
// enabled and a live entry exists, without calling loader. Otherwise it
// calls loader and stores its result only when it holds exactly one row.
// Multi-row results are never cached.
//
// Cached rows never alias what callers receive: the slice is copied on
// both store and hit, and rows implementing Cloner are cloned.
func CachedRead[T any](ctx context.Context, local Local, key string, policy Policy, loader func(context.Context) ([]T, error)) ([]T, error) {
	if !policy.Enabled || local == nil {
		return loader(ctx)
	}
	if v, ok := local.Get(ctx, key); ok {
		if rows, ok := v.([]T); ok {
			return copyRows(rows), nil
		}
	}
	rows, err := loader(ctx)
	if err != nil {
		return nil, err
	}
	if len(rows) == 1 {
		local.Set(ctx, key, copyRows(rows), policy.TTL)
	}
	return rows, nil
}

func copyRows[T any](rows []T) []T {
	out := make([]T, len(rows))
	for i, row := range rows {
		if c, ok := any(row).(Cloner[T]); ok {
			out[i] = c.Clone()
			continue
		}
		out[i] = row
	}
	return out
}

// CachedMembers looks up a caller-supplied member-set key. It reports a hit
// only for a non-empty set. An empty key or a nil cache is a miss. It never
// writes to the cache.
func CachedMembers(ctx context.Context, dist Distributed, key string) ([]string, bool, error) {
	if key == "" || dist == nil {
		return nil, false, nil
	}
	members, err := dist.Members(ctx, key)
	if err != nil {
		return nil, false, err
	}
	if len(members) == 0 {
		return nil, false, nil
	}
	return members, true, nil
}
