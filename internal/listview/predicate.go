package listview

import (
	"strings"
	"time"
)

// Predicate reports whether a record stays in the view.
type Predicate[T any] func(T) bool

// All matches every record. Every dimension degrades to All when it is
// unset, so filters are strictly narrowing.
func All[T any]() Predicate[T] {
	return func(T) bool { return true }
}

// And combines predicates; the result passes only records every
// predicate passes. Nil entries are skipped so optional dimensions can
// be wired unconditionally.
func And[T any](preds ...Predicate[T]) Predicate[T] {
	return func(rec T) bool {
		for _, p := range preds {
			if p != nil && !p(rec) {
				return false
			}
		}
		return true
	}
}

// StatusIs builds the mode predicate: a fixed, non-overridable equality
// check baked into a page variant (e.g. /subscribers/expired).
func StatusIs[T any](want string, status func(T) string) Predicate[T] {
	return func(rec T) bool { return status(rec) == want }
}

// ChoicePredicate is the user-facing exact-match dimension. "all" is a
// no-op.
func ChoicePredicate[T any](f ChoiceFilter, field func(T) string) Predicate[T] {
	if f == ChoiceAll || f == "" {
		return nil
	}
	return func(rec T) bool { return field(rec) == string(f) }
}

// CategoryPredicate matches the plan-type category by case-insensitive
// substring containment on the plan name. Deliberately loose: "Home
// 10Mbps" is a home plan because its name says so, not because of a
// foreign key.
func CategoryPredicate[T any](f PlanCategory, planName func(T) string) Predicate[T] {
	if f == CategoryAll || f == "" {
		return nil
	}
	needle := string(f)
	return func(rec T) bool {
		return strings.Contains(strings.ToLower(planName(rec)), needle)
	}
}

// CreatedWithin keeps records created on or after now-N days. Records
// with a zero created-at pass: malformed data must not silently vanish
// from an admin's view (fail-open).
func CreatedWithin[T any](r DateRange, now time.Time, createdAt func(T) time.Time) Predicate[T] {
	cutoff, ok := r.Cutoff(now)
	if !ok {
		return nil
	}
	return func(rec T) bool {
		created := createdAt(rec)
		if created.IsZero() {
			return true
		}
		return !created.Before(cutoff)
	}
}

// SearchPredicate is the free-text dimension: case-insensitive
// substring match against the page's fixed field set. An empty query
// passes everything.
func SearchPredicate[T any](query string, fields func(T) []string) Predicate[T] {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return nil
	}
	return func(rec T) bool {
		for _, f := range fields(rec) {
			if strings.Contains(strings.ToLower(f), q) {
				return true
			}
		}
		return false
	}
}

// Evaluate runs the combined predicate over the record store, keeping
// original relative order (stable filter, no re-sorting). The input
// slice is never mutated.
func Evaluate[T any](records []T, pred Predicate[T]) []T {
	if pred == nil {
		pred = All[T]()
	}
	out := make([]T, 0, len(records))
	for _, rec := range records {
		if pred(rec) {
			out = append(out, rec)
		}
	}
	return out
}
