package normalizer

import (
	"encoding/json"
	"log/slog"
	"math/big"
	"sort"

	"github.com/mcncl/jsonorder/internal/models"
)

// ArrayClass is the ordering strategy chosen for an array.
type ArrayClass int

const (
	// ArrayEmpty has no elements.
	ArrayEmpty ArrayClass = iota
	// ArrayStrings holds only strings.
	ArrayStrings
	// ArrayNumbers holds only numbers.
	ArrayNumbers
	// ArrayObjects holds only objects.
	ArrayObjects
	// ArrayMixed holds anything else, including booleans, nulls, nested
	// arrays or a mix of kinds. Its element order is kept.
	ArrayMixed
)

func (c ArrayClass) String() string {
	switch c {
	case ArrayEmpty:
		return "empty"
	case ArrayStrings:
		return "strings"
	case ArrayNumbers:
		return "numbers"
	case ArrayObjects:
		return "objects"
	default:
		return "mixed"
	}
}

// Classify inspects every element of arr and reports its ordering strategy.
func Classify(arr models.Array) ArrayClass {
	if len(arr) == 0 {
		return ArrayEmpty
	}
	first := models.KindOf(arr[0])
	for _, v := range arr[1:] {
		if models.KindOf(v) != first {
			return ArrayMixed
		}
	}
	switch first {
	case models.KindString:
		return ArrayStrings
	case models.KindNumber:
		return ArrayNumbers
	case models.KindObject:
		return ArrayObjects
	default:
		return ArrayMixed
	}
}

func (n *Normalizer) orderArray(arr models.Array, path string) models.Array {
	switch class := Classify(arr); class {
	case ArrayEmpty:
		return models.Array{}
	case ArrayStrings:
		return sortStrings(arr)
	case ArrayNumbers:
		return sortNumbers(arr)
	case ArrayObjects:
		return n.sortObjects(arr, path)
	default:
		if n.debug {
			n.logger.Debug("array keeps input order", slog.String("path", path), slog.Int("length", len(arr)))
		}
		out := make(models.Array, len(arr))
		for i, v := range arr {
			out[i] = n.normalize(v, n.elementPath(path, i))
		}
		return out
	}
}

func sortStrings(arr models.Array) models.Array {
	out := make(models.Array, len(arr))
	copy(out, arr)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].(string) < out[j].(string)
	})
	return out
}

func sortNumbers(arr models.Array) models.Array {
	type entry struct {
		raw json.Number
		num *big.Rat
	}
	entries := make([]entry, len(arr))
	for i, v := range arr {
		raw := v.(json.Number)
		num, _ := models.ParseNumber(raw)
		entries[i] = entry{raw: raw, num: num}
	}
	// Equal values such as 1 and 1.0 keep their input order.
	sort.SliceStable(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if a.num != nil && b.num != nil {
			return a.num.Cmp(b.num) < 0
		}
		return models.CompareNumbers(a.raw, b.raw) < 0
	})
	out := make(models.Array, len(entries))
	for i, e := range entries {
		out[i] = e.raw
	}
	return out
}

func (n *Normalizer) sortObjects(arr models.Array, path string) models.Array {
	type entry struct {
		obj *models.Object
		key CompositeKey
	}
	objects := make([]*models.Object, len(arr))
	for i, v := range arr {
		objects[i] = n.orderObject(v.(*models.Object), n.elementPath(path, i))
	}

	fields := DeriveFields(objects, n.policy)
	if n.debug {
		n.logger.Debug("derived sort fields",
			slog.String("path", path),
			slog.Any("fields", fields.Names),
			slog.Any("excluded", fields.Excluded),
		)
	}

	entries := make([]entry, len(objects))
	for i, obj := range objects {
		entries[i] = entry{obj: obj, key: fields.Key(obj)}
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return CompareKeys(entries[i].key, entries[j].key) < 0
	})

	out := make(models.Array, len(entries))
	for i, e := range entries {
		out[i] = e.obj
	}
	return out
}
