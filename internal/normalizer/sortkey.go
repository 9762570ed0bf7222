package normalizer

import (
	"encoding/json"
	"math/big"
	"sort"
	"strings"

	"github.com/mcncl/jsonorder/internal/config"
	"github.com/mcncl/jsonorder/internal/models"
)

// FieldType is the scalar type a sort field holds across one array.
type FieldType int

const (
	// FieldString fields hold only strings; a missing value counts as "".
	FieldString FieldType = iota + 1
	// FieldNumber fields hold only numbers; a missing value counts as 0.
	FieldNumber
	// FieldMixed fields hold strings and numbers. Only kept under
	// config.MixedTypeOrder; a missing value counts as 0.
	FieldMixed
)

func (t FieldType) String() string {
	switch t {
	case FieldString:
		return "string"
	case FieldNumber:
		return "number"
	case FieldMixed:
		return "mixed"
	default:
		return "unknown"
	}
}

// FieldSet describes the fields of an array of objects that take part in
// its composite sort key. It is derived once per array.
type FieldSet struct {
	// Names are the eligible fields in ascending order; this order fixes
	// the position of each field in a CompositeKey.
	Names []string
	// Types maps each eligible field to its scalar type.
	Types map[string]FieldType
	// Excluded lists the fields that appear in the array but hold a
	// non-scalar value somewhere, in ascending order.
	Excluded []string
}

const (
	seenString uint8 = 1 << iota
	seenNumber
	seenOther
)

func seenMask(k models.Kind) uint8 {
	switch {
	case !k.IsScalar():
		return seenOther
	case k == models.KindString:
		return seenString
	default:
		return seenNumber
	}
}

// DeriveFields computes the eligible sort fields of objects.
//
// The first pass records which value kinds every field holds across all
// objects that define it. The second pass keeps the fields that hold only
// strings or only numbers. A field holding an object, array, boolean or null
// in any object is excluded. Fields holding both strings and numbers are
// excluded unless policy is config.MixedTypeOrder.
func DeriveFields(objects []*models.Object, policy config.MixedTypePolicy) FieldSet {
	seen := make(map[string]uint8)
	for _, obj := range objects {
		for _, m := range obj.Members() {
			seen[m.Key] |= seenMask(models.KindOf(m.Value))
		}
	}

	fs := FieldSet{
		Names: make([]string, 0, len(seen)),
		Types: make(map[string]FieldType, len(seen)),
	}
	for name, mask := range seen {
		var typ FieldType
		switch {
		case mask&seenOther != 0:
		case mask == seenString:
			typ = FieldString
		case mask == seenNumber:
			typ = FieldNumber
		case policy == config.MixedTypeOrder:
			typ = FieldMixed
		}
		if typ == 0 {
			fs.Excluded = append(fs.Excluded, name)
			continue
		}
		fs.Names = append(fs.Names, name)
		fs.Types[name] = typ
	}
	sort.Strings(fs.Names)
	sort.Strings(fs.Excluded)
	return fs
}

// Key builds the composite sort key of obj. Fields obj lacks take the zero
// value of their type.
func (fs FieldSet) Key(obj *models.Object) CompositeKey {
	key := make(CompositeKey, len(fs.Names))
	for i, name := range fs.Names {
		v, ok := obj.Get(name)
		if !ok {
			key[i] = zeroPart(fs.Types[name])
			continue
		}
		switch v := v.(type) {
		case string:
			key[i] = stringPart(v)
		case json.Number:
			key[i] = numberPart(v)
		default:
			// DeriveFields never admits such a field.
			key[i] = zeroPart(fs.Types[name])
		}
	}
	return key
}

// CompositeKey is the tuple of per-field values used to rank one object.
type CompositeKey []KeyPart

// KeyPart is one position of a CompositeKey.
type KeyPart struct {
	Kind   models.Kind
	String string
	Number json.Number

	rat *big.Rat
}

func stringPart(s string) KeyPart {
	return KeyPart{Kind: models.KindString, String: s}
}

func numberPart(n json.Number) KeyPart {
	rat, _ := models.ParseNumber(n)
	return KeyPart{Kind: models.KindNumber, Number: n, rat: rat}
}

func zeroPart(t FieldType) KeyPart {
	if t == FieldString {
		return stringPart("")
	}
	return numberPart("0")
}

// ComparePart orders two key parts. Numbers compare by value and strings by
// code point; any number sorts before any string.
func ComparePart(a, b KeyPart) int {
	switch {
	case a.Kind == models.KindNumber && b.Kind == models.KindNumber:
		if a.rat != nil && b.rat != nil {
			return a.rat.Cmp(b.rat)
		}
		return models.CompareNumbers(a.Number, b.Number)
	case a.Kind == models.KindNumber:
		return -1
	case b.Kind == models.KindNumber:
		return 1
	default:
		return strings.Compare(a.String, b.String)
	}
}

// CompareKeys compares two composite keys position by position. A key that
// is a prefix of the other sorts first.
func CompareKeys(a, b CompositeKey) int {
	for i := 0; i < len(a) && i < len(b); i++ {
		if c := ComparePart(a[i], b[i]); c != 0 {
			return c
		}
	}
	switch {
	case len(a) < len(b):
		return -1
	case len(a) > len(b):
		return 1
	default:
		return 0
	}
}
