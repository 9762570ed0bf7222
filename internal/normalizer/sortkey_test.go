package normalizer

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcncl/jsonorder/internal/config"
	"github.com/mcncl/jsonorder/internal/models"
)

func objects(t *testing.T, input string) []*models.Object {
	t.Helper()
	arr, ok := parse(t, input).(models.Array)
	require.True(t, ok, "input must be an array")
	out := make([]*models.Object, len(arr))
	for i, v := range arr {
		out[i] = v.(*models.Object)
	}
	return out
}

func TestClassify(t *testing.T) {
	tests := []struct {
		input    string
		expected ArrayClass
	}{
		{`[]`, ArrayEmpty},
		{`["a","b"]`, ArrayStrings},
		{`[1,2.5]`, ArrayNumbers},
		{`[{},{"a":1}]`, ArrayObjects},
		{`[true]`, ArrayMixed},
		{`[null]`, ArrayMixed},
		{`[[1]]`, ArrayMixed},
		{`["a",1]`, ArrayMixed},
		{`[1,"a"]`, ArrayMixed},
		{`[{"a":1},null]`, ArrayMixed},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, Classify(parse(t, tt.input).(models.Array)))
		})
	}
}

func TestDeriveFields(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		policy   config.MixedTypePolicy
		names    []string
		types    map[string]FieldType
		excluded []string
	}{
		{
			name:   "union of keys sorted",
			input:  `[{"c":1,"a":"x"},{"b":2}]`,
			policy: config.MixedTypeExclude,
			names:  []string{"a", "b", "c"},
			types:  map[string]FieldType{"a": FieldString, "b": FieldNumber, "c": FieldNumber},
		},
		{
			name:     "non-scalar anywhere excludes",
			input:    `[{"a":1,"b":2},{"a":[1]},{"b":3}]`,
			policy:   config.MixedTypeExclude,
			names:    []string{"b"},
			types:    map[string]FieldType{"b": FieldNumber},
			excluded: []string{"a"},
		},
		{
			name:     "exclusion does not depend on object order",
			input:    `[{"a":{"k":1}},{"a":1},{"a":"s"}]`,
			policy:   config.MixedTypeOrder,
			names:    []string{},
			types:    map[string]FieldType{},
			excluded: []string{"a"},
		},
		{
			name:     "booleans and nulls exclude",
			input:    `[{"t":true,"n":null,"s":"x"}]`,
			policy:   config.MixedTypeExclude,
			names:    []string{"s"},
			types:    map[string]FieldType{"s": FieldString},
			excluded: []string{"n", "t"},
		},
		{
			name:     "mixed scalars excluded by default",
			input:    `[{"m":1},{"m":"a"}]`,
			policy:   config.MixedTypeExclude,
			names:    []string{},
			types:    map[string]FieldType{},
			excluded: []string{"m"},
		},
		{
			name:   "mixed scalars kept with type order",
			input:  `[{"m":1},{"m":"a"}]`,
			policy: config.MixedTypeOrder,
			names:  []string{"m"},
			types:  map[string]FieldType{"m": FieldMixed},
		},
		{
			name:   "no objects",
			input:  `[]`,
			policy: config.MixedTypeExclude,
			names:  []string{},
			types:  map[string]FieldType{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := DeriveFields(objects(t, tt.input), tt.policy)
			assert.Equal(t, tt.names, fs.Names)
			assert.Equal(t, tt.types, fs.Types)
			assert.Equal(t, tt.excluded, fs.Excluded)
		})
	}
}

func TestFieldSet_Key(t *testing.T) {
	objs := objects(t, `[{"a":1,"b":"x"},{"c":2}]`)
	fs := DeriveFields(objs, config.MixedTypeExclude)
	require.Equal(t, []string{"a", "b", "c"}, fs.Names)

	first := fs.Key(objs[0])
	second := fs.Key(objs[1])

	values := func(key CompositeKey) []models.Value {
		out := make([]models.Value, len(key))
		for i, p := range key {
			out[i] = p.String
			if p.Kind == models.KindNumber {
				out[i] = p.Number
			}
		}
		return out
	}
	assert.Equal(t, []models.Value{json.Number("1"), "x", json.Number("0")}, values(first))
	assert.Equal(t, []models.Value{json.Number("0"), "", json.Number("2")}, values(second))
	assert.Equal(t, 1, CompareKeys(first, second))
}

func TestCompareKeys(t *testing.T) {
	num := func(s string) KeyPart { return numberPart(json.Number(s)) }
	str := func(s string) KeyPart { return stringPart(s) }

	tests := []struct {
		name     string
		a, b     CompositeKey
		expected int
	}{
		{"both empty", CompositeKey{}, CompositeKey{}, 0},
		{"numbers by value", CompositeKey{num("2")}, CompositeKey{num("10")}, -1},
		{"equal values different literals", CompositeKey{num("1")}, CompositeKey{num("1.0")}, 0},
		{"strings by code point", CompositeKey{str("b")}, CompositeKey{str("a")}, 1},
		{"first position decides", CompositeKey{num("1"), str("z")}, CompositeKey{num("2"), str("a")}, -1},
		{"second position breaks tie", CompositeKey{num("1"), str("a")}, CompositeKey{num("1"), str("b")}, -1},
		{"number before string", CompositeKey{num("99")}, CompositeKey{str("")}, -1},
		{"string after number", CompositeKey{str("")}, CompositeKey{num("-99")}, 1},
		{"prefix sorts first", CompositeKey{num("1")}, CompositeKey{num("1"), num("0")}, -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, CompareKeys(tt.a, tt.b))
		})
	}
}

func TestFieldType_String(t *testing.T) {
	assert.Equal(t, "string", FieldString.String())
	assert.Equal(t, "number", FieldNumber.String())
	assert.Equal(t, "mixed", FieldMixed.String())
	assert.Equal(t, "unknown", FieldType(0).String())
}
