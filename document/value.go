package document

import (
	"errors"
	"math"
	"math/big"
	"strconv"
	"strings"
)

// ErrNotRepresentable is returned when a parsed value has no JSON equivalent.
var ErrNotRepresentable = errors.New("value is not representable in JSON")

// Kind identifies the variant held by a Value.
type Kind uint8

// Value kinds.
const (
	NullKind Kind = iota
	BoolKind
	IntKind
	UintKind
	FloatKind
	StringKind
	SequenceKind
	MappingKind
	// BigIntKind holds an integer outside the int64 and uint64 ranges.
	BigIntKind
)

var kindNames = [...]string{ //nolint:gochecknoglobals
	NullKind:     "null",
	BoolKind:     "bool",
	IntKind:      "int",
	UintKind:     "uint",
	FloatKind:    "float",
	StringKind:   "string",
	SequenceKind: "sequence",
	MappingKind:  "mapping",
	BigIntKind:   "bigint",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}

	return "kind(" + strconv.Itoa(int(k)) + ")"
}

// Pair is a single mapping entry.
type Pair struct {
	Key   string
	Value Value
}

// Value is one node of a document tree. The zero Value is null.
type Value struct {
	kind  Kind
	b     bool
	i     int64
	u     uint64
	f     float64
	n     *big.Int
	s     string
	items []Value
	pairs []Pair
}

// Null returns the null value.
func Null() Value {
	return Value{kind: NullKind}
}

// Bool returns a boolean value.
func Bool(b bool) Value {
	return Value{kind: BoolKind, b: b}
}

// Int returns a signed integer value.
func Int(i int64) Value {
	return Value{kind: IntKind, i: i}
}

// Uint returns an unsigned integer value. Values that fit in int64 are stored as IntKind.
func Uint(u uint64) Value {
	if u <= math.MaxInt64 {
		return Int(int64(u))
	}

	return Value{kind: UintKind, u: u}
}

// BigInt returns an integer value of any magnitude. Values that fit in int64
// or uint64 are stored as IntKind or UintKind. n is copied.
func BigInt(n *big.Int) Value {
	switch {
	case n.IsInt64():
		return Int(n.Int64())
	case n.IsUint64():
		return Uint(n.Uint64())
	default:
		return Value{kind: BigIntKind, n: new(big.Int).Set(n)}
	}
}

// Float returns a floating-point value. Non-finite values are accepted here and
// rejected when the value is serialized.
func Float(f float64) Value {
	return Value{kind: FloatKind, f: f}
}

// String returns a string value.
func String(s string) Value {
	return Value{kind: StringKind, s: s}
}

// Sequence returns a sequence holding items in order.
func Sequence(items ...Value) Value {
	if items == nil {
		items = []Value{}
	}

	return Value{kind: SequenceKind, items: items}
}

// Mapping returns a mapping holding pairs in order.
// A key that appears more than once keeps its first position and takes the last value.
func Mapping(pairs ...Pair) Value {
	result := make([]Pair, 0, len(pairs))
	index := make(map[string]int, len(pairs))

	for _, pair := range pairs {
		if pos, seen := index[pair.Key]; seen {
			result[pos].Value = pair.Value

			continue
		}

		index[pair.Key] = len(result)
		result = append(result, pair)
	}

	return Value{kind: MappingKind, pairs: result}
}

// Kind returns the variant held by v.
func (v Value) Kind() Kind {
	return v.kind
}

// IsNull reports whether v is null.
func (v Value) IsNull() bool {
	return v.kind == NullKind
}

// IsNumber reports whether v is an integer or a floating-point number.
func (v Value) IsNumber() bool {
	switch v.kind {
	case IntKind, UintKind, BigIntKind, FloatKind:
		return true
	default:
		return false
	}
}

// Bool returns the boolean held by v, or false for other kinds.
func (v Value) Bool() bool {
	return v.b
}

// Int returns the signed integer held by v, or 0 for other kinds.
func (v Value) Int() int64 {
	return v.i
}

// Uint returns the unsigned integer held by v, or 0 for other kinds.
func (v Value) Uint() uint64 {
	return v.u
}

// BigInt returns a copy of the integer held by v, for any integer kind, or nil for other kinds.
func (v Value) BigInt() *big.Int {
	switch v.kind {
	case IntKind:
		return big.NewInt(v.i)
	case UintKind:
		return new(big.Int).SetUint64(v.u)
	case BigIntKind:
		return new(big.Int).Set(v.n)
	default:
		return nil
	}
}

// Float returns the floating-point number held by v, or 0 for other kinds.
func (v Value) Float() float64 {
	return v.f
}

// Str returns the string held by v, or "" for other kinds.
func (v Value) Str() string {
	return v.s
}

// Items returns the elements of a sequence. The slice must not be modified.
func (v Value) Items() []Value {
	return v.items
}

// Pairs returns the entries of a mapping in source order. The slice must not be modified.
func (v Value) Pairs() []Pair {
	return v.pairs
}

// Len returns the number of elements of a sequence or entries of a mapping.
func (v Value) Len() int {
	switch v.kind {
	case SequenceKind:
		return len(v.items)
	case MappingKind:
		return len(v.pairs)
	default:
		return 0
	}
}

// Get looks up key in a mapping.
func (v Value) Get(key string) (Value, bool) {
	for _, pair := range v.pairs {
		if pair.Key == key {
			return pair.Value, true
		}
	}

	return Value{}, false
}

// Keys returns the keys of a mapping in source order.
func (v Value) Keys() []string {
	keys := make([]string, 0, len(v.pairs))
	for _, pair := range v.pairs {
		keys = append(keys, pair.Key)
	}

	return keys
}

// FloatText formats f as a JSON number that always reads back as a float:
// integral values keep a ".0" suffix and very large or very small magnitudes
// use exponent notation (1e+16, 1.5e-05).
// The second result is false for NaN and infinities.
func FloatText(f float64) (string, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return "", false
	}

	abs := math.Abs(f)
	if abs != 0 && (abs < 1e-4 || abs >= 1e16) {
		return strconv.FormatFloat(f, 'e', -1, 64), true
	}

	text := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.Contains(text, ".") {
		text += ".0"
	}

	return text, true
}
