package settings

import (
	"strconv"
)

// Key names one persisted setting
type Key string

const (
	Interval Key = "Interval" // milliseconds between frames
	Images   Key = "Images"   // frames per session
)

// Values maps setting names to their integer value
type Values map[Key]int

// Field describes how a setting is edited and displayed
type Field struct {
	Key   Key
	Label string
	Unit  string
	Min   int
	Max   int
}

// Fields lists the editable settings in the order the settings screen shows them
var Fields = []Field{
	{Key: Interval, Label: "Interval:", Unit: "ms", Min: 0, Max: 86400000},
	{Key: Images, Label: "Frames:", Min: 1, Max: 99999},
}

// Defaults returns a fresh copy of the built-in settings
func Defaults() Values {
	return Values{
		Interval: 3000,
		Images:   150,
	}
}

// FieldFor returns the field metadata for a key
func FieldFor(key Key) (Field, bool) {
	for _, f := range Fields {
		if f.Key == key {
			return f, true
		}
	}
	return Field{}, false
}

// Clamp forces n into the field's range
func (f Field) Clamp(n int) int {
	if n < f.Min {
		return f.Min
	}
	if n > f.Max {
		return f.Max
	}
	return n
}

// MaxDigits is the longest buffer the numeric keypad accepts for this field
func (f Field) MaxDigits() int {
	return len(strconv.Itoa(f.Max))
}

// Format renders a value with the field's unit
func (f Field) Format(n int) string {
	return strconv.Itoa(n) + f.Unit
}

// Get returns the value for key, falling back to the default
func (v Values) Get(key Key) int {
	if n, ok := v[key]; ok {
		return n
	}
	return Defaults()[key]
}

// Clone returns an independent copy
func (v Values) Clone() Values {
	out := make(Values, len(v))
	for k, n := range v {
		out[k] = n
	}
	return out
}

// Normalize fills missing keys from the defaults, clamps every known key
// into its range and drops keys that are not known settings.
func Normalize(v Values) Values {
	out := Defaults()
	for _, f := range Fields {
		if n, ok := v[f.Key]; ok {
			out[f.Key] = f.Clamp(n)
		}
	}
	return out
}
