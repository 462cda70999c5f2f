package document_test

import (
	"math"
	"math/big"
	"testing"

	"github.com/0xalexb/yaml2json/document"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var valueComparer = cmp.AllowUnexported(document.Value{}) //nolint:gochecknoglobals

func TestValue_ZeroValueIsNull(t *testing.T) {
	t.Parallel()

	var v document.Value

	assert.True(t, v.IsNull())
	assert.Equal(t, document.NullKind, v.Kind())
	assert.Empty(t, cmp.Diff(document.Null(), v, valueComparer))
}

func TestValue_Scalars(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		value    document.Value
		kind     document.Kind
		isNumber bool
	}{
		{name: "null", value: document.Null(), kind: document.NullKind},
		{name: "bool", value: document.Bool(true), kind: document.BoolKind},
		{name: "int", value: document.Int(-7), kind: document.IntKind, isNumber: true},
		{name: "small uint", value: document.Uint(7), kind: document.IntKind, isNumber: true},
		{name: "large uint", value: document.Uint(math.MaxUint64), kind: document.UintKind, isNumber: true},
		{name: "float", value: document.Float(0.5), kind: document.FloatKind, isNumber: true},
		{name: "big int", value: document.BigInt(hugeInt(t)), kind: document.BigIntKind, isNumber: true},
		{name: "string", value: document.String("x"), kind: document.StringKind},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, testCase.kind, testCase.value.Kind())
			assert.Equal(t, testCase.isNumber, testCase.value.IsNumber())
			assert.Zero(t, testCase.value.Len())
		})
	}
}

func hugeInt(t *testing.T) *big.Int {
	t.Helper()

	n, ok := new(big.Int).SetString("-99999999999999999999", 10)
	require.True(t, ok)

	return n
}

func TestBigInt_NormalizesToMachineIntegers(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name string
		text string
		kind document.Kind
	}{
		{name: "int64", text: "-9223372036854775808", kind: document.IntKind},
		{name: "uint64", text: "18446744073709551615", kind: document.UintKind},
		{name: "above uint64", text: "18446744073709551616", kind: document.BigIntKind},
		{name: "below int64", text: "-9223372036854775809", kind: document.BigIntKind},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			n, ok := new(big.Int).SetString(testCase.text, 10)
			require.True(t, ok)

			value := document.BigInt(n)

			assert.Equal(t, testCase.kind, value.Kind())
			assert.Equal(t, testCase.text, value.BigInt().String())
		})
	}
}

func TestBigInt_CopiesInput(t *testing.T) {
	t.Parallel()

	n := hugeInt(t)
	value := document.BigInt(n)

	n.SetInt64(0)
	assert.Equal(t, "-99999999999999999999", value.BigInt().String())

	value.BigInt().SetInt64(1)
	assert.Equal(t, "-99999999999999999999", value.BigInt().String())
}

func TestBigInt_NilForOtherKinds(t *testing.T) {
	t.Parallel()

	assert.Nil(t, document.String("1").BigInt())
	assert.Nil(t, document.Float(1).BigInt())
}

func TestValue_Accessors(t *testing.T) {
	t.Parallel()

	assert.True(t, document.Bool(true).Bool())
	assert.Equal(t, int64(-7), document.Int(-7).Int())
	assert.Equal(t, int64(7), document.Uint(7).Int())
	assert.Equal(t, uint64(math.MaxUint64), document.Uint(math.MaxUint64).Uint())
	assert.InDelta(t, 0.5, document.Float(0.5).Float(), 0)
	assert.Equal(t, "x", document.String("x").Str())
}

func TestSequence_KeepsOrder(t *testing.T) {
	t.Parallel()

	seq := document.Sequence(document.Int(3), document.Int(1), document.Int(2))

	require.Equal(t, document.SequenceKind, seq.Kind())
	require.Equal(t, 3, seq.Len())

	want := []document.Value{document.Int(3), document.Int(1), document.Int(2)}
	assert.Empty(t, cmp.Diff(want, seq.Items(), valueComparer))
}

func TestSequence_EmptyIsNotNil(t *testing.T) {
	t.Parallel()

	seq := document.Sequence()

	assert.NotNil(t, seq.Items())
	assert.Zero(t, seq.Len())
}

func TestMapping_KeepsSourceOrder(t *testing.T) {
	t.Parallel()

	mapping := document.Mapping(
		document.Pair{Key: "zeta", Value: document.Int(1)},
		document.Pair{Key: "alpha", Value: document.Int(2)},
		document.Pair{Key: "mid", Value: document.Int(3)},
	)

	assert.Equal(t, []string{"zeta", "alpha", "mid"}, mapping.Keys())

	value, ok := mapping.Get("alpha")
	require.True(t, ok)
	assert.Equal(t, int64(2), value.Int())

	_, ok = mapping.Get("missing")
	assert.False(t, ok)
}

func TestMapping_RepeatedKeyKeepsFirstPositionLastValue(t *testing.T) {
	t.Parallel()

	mapping := document.Mapping(
		document.Pair{Key: "a", Value: document.Int(1)},
		document.Pair{Key: "b", Value: document.Int(2)},
		document.Pair{Key: "a", Value: document.Int(3)},
	)

	want := []document.Pair{
		{Key: "a", Value: document.Int(3)},
		{Key: "b", Value: document.Int(2)},
	}

	assert.Empty(t, cmp.Diff(want, mapping.Pairs(), valueComparer))
}

func TestKind_String(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "mapping", document.MappingKind.String())
	assert.Equal(t, "bigint", document.BigIntKind.String())
	assert.Equal(t, "kind(42)", document.Kind(42).String())
}

func TestFloatText(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		input    float64
		expected string
	}{
		{input: 1, expected: "1.0"},
		{input: 0, expected: "0.0"},
		{input: math.Copysign(0, -1), expected: "-0.0"},
		{input: 0.5, expected: "0.5"},
		{input: -2.25, expected: "-2.25"},
		{input: 3.14159, expected: "3.14159"},
		{input: 1e16, expected: "1e+16"},
		{input: 1.5e-5, expected: "1.5e-05"},
		{input: 123456.0, expected: "123456.0"},
	}

	for _, testCase := range testCases {
		t.Run(testCase.expected, func(t *testing.T) {
			t.Parallel()

			text, ok := document.FloatText(testCase.input)
			require.True(t, ok)
			assert.Equal(t, testCase.expected, text)
		})
	}
}

func TestFloatText_NonFinite(t *testing.T) {
	t.Parallel()

	for _, f := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		_, ok := document.FloatText(f)
		assert.False(t, ok)
	}
}
