package listview

import (
	"sort"
	"strings"
	"time"

	"github.com/Ramsey-B/arbor/pkg/models"
)

// matchesSearch reports whether the entity's searchable string fields contain
// the term. Matching is case-insensitive substring; an empty term matches
// everything.
func matchesSearch[T any](desc models.Descriptor[T], entity *T, term string) bool {
	if term == "" {
		return true
	}
	needle := strings.ToLower(term)
	for _, f := range desc.Fields {
		if !f.Searchable {
			continue
		}
		s, ok := f.Get(entity).(string)
		if !ok {
			continue
		}
		if strings.Contains(strings.ToLower(s), needle) {
			return true
		}
	}
	return false
}

// applySearch filters items down to those matching the term. The result is a
// fresh slice; the input is never mutated.
func applySearch[T any](desc models.Descriptor[T], items []T, term string) []T {
	out := make([]T, 0, len(items))
	for i := range items {
		if matchesSearch(desc, &items[i], term) {
			out = append(out, items[i])
		}
	}
	return out
}

// sortItems orders items in place by the given key. Ties keep their incoming
// order so repeated sorts are stable.
func sortItems[T any](desc models.Descriptor[T], items []T, s models.Sort) {
	f, ok := desc.Field(s.Key)
	if !ok {
		return
	}
	sort.SliceStable(items, func(i, j int) bool {
		less := lessByField(f, &items[i], &items[j])
		if s.Desc {
			return lessByField(f, &items[j], &items[i])
		}
		return less
	})
}

func lessByField[T any](f models.FieldSpec[T], a, b *T) bool {
	av := f.Get(a)
	bv := f.Get(b)

	switch f.Kind {
	case models.FieldInt:
		return asInt(av) < asInt(bv)
	case models.FieldFloat:
		return asFloat(av) < asFloat(bv)
	case models.FieldBool:
		ab, _ := av.(bool)
		bb, _ := bv.(bool)
		return !ab && bb
	case models.FieldTime:
		at, _ := av.(time.Time)
		bt, _ := bv.(time.Time)
		return at.Before(bt)
	default:
		as, _ := av.(string)
		bs, _ := bv.(string)
		return strings.ToLower(as) < strings.ToLower(bs)
	}
}

func asInt(v any) int64 {
	switch n := v.(type) {
	case int:
		return int64(n)
	case int32:
		return int64(n)
	case int64:
		return n
	case float64:
		return int64(n)
	}
	return 0
}

func asFloat(v any) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case float32:
		return float64(n)
	case int:
		return float64(n)
	case int64:
		return float64(n)
	}
	return 0
}
