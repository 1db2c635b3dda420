package chartgeo

import (
	"strings"
)

type Row map[string]any

// DataKey selects a value from a row, either by name or with a function.
// Names with dots walk nested maps.
type DataKey struct {
	Name string
	Func func(Row) any
}

func Key(name string) DataKey {
	return DataKey{Name: name}
}

func KeyFunc(name string, fn func(Row) any) DataKey {
	return DataKey{
		Name: name,
		Func: fn,
	}
}

func (k DataKey) IsZero() bool {
	return k.Name == "" && k.Func == nil
}

func (k DataKey) String() string {
	return k.Name
}

func (k DataKey) Value(row Row) any {
	if row == nil {
		return nil
	}
	if k.Func != nil {
		return k.Func(row)
	}
	if k.Name == "" {
		return nil
	}
	if v, ok := row[k.Name]; ok {
		return v
	}
	if !strings.Contains(k.Name, ".") {
		return nil
	}
	var curr any = map[string]any(row)
	for _, part := range strings.Split(k.Name, ".") {
		switch m := curr.(type) {
		case map[string]any:
			curr = m[part]
		case Row:
			curr = m[part]
		default:
			return nil
		}
	}
	return curr
}

// Number gives the numeric value of the key in row, or def when the value is
// missing or not a number.
func (k DataKey) Number(row Row, def float64) float64 {
	f, ok := ToNumber(k.Value(row))
	if !ok {
		return def
	}
	return f
}

// RangeValue reports whether v holds a [low, high] pair and returns it.
func RangeValue(v any) ([2]float64, bool) {
	var res [2]float64
	switch x := v.(type) {
	case [2]float64:
		return x, true
	case []float64:
		if len(x) != 2 {
			return res, false
		}
		res[0], res[1] = x[0], x[1]
		return res, true
	case []any:
		if len(x) != 2 {
			return res, false
		}
		lo, ok1 := ToNumber(x[0])
		hi, ok2 := ToNumber(x[1])
		if !ok1 || !ok2 {
			return res, false
		}
		res[0], res[1] = lo, hi
		return res, true
	default:
		return res, false
	}
}

// numbersOf returns every number found under key: scalars and both ends of
// range values.
func numbersOf(v any) []float64 {
	if r, ok := RangeValue(v); ok {
		return r[:]
	}
	if f, ok := ToNumber(v); ok {
		return []float64{f}
	}
	return nil
}

func valuesByKey(rows []Row, key DataKey) []any {
	list := make([]any, len(rows))
	for i := range rows {
		list[i] = key.Value(rows[i])
	}
	return list
}
