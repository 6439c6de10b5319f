package recipe

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCoerce(t *testing.T) {
	tests := []struct {
		key  string
		want Value
	}{
		{"true", Bool(true)},
		{"false", Bool(false)},
		{"3", Number(3)},
		{"-1.5", Number(-1.5)},
		{"1e3", Number(1000)},
		{".5", Number(0.5)},
		{"0x10", Number(16)},
		{"0b11", Number(3)},
		{"0o7", Number(7)},
		{"", String("")},
		{"md", String("md")},
		{"True", String("True")},
		{"Infinity", String("Infinity")},
		{"1_000", String("1_000")},
		{"12px", String("12px")},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			got := Coerce(tt.key)
			assert.True(t, got.StrictEqual(tt.want), "Coerce(%q) = %s, want %s", tt.key, got.JS(), tt.want.JS())
		})
	}
}

func TestValueStrictEqual(t *testing.T) {
	assert.True(t, Undefined().StrictEqual(Value{}))
	assert.True(t, Null().StrictEqual(Null()))
	assert.False(t, Null().StrictEqual(Undefined()))
	assert.False(t, Number(3).StrictEqual(String("3")))
	assert.False(t, Bool(true).StrictEqual(String("true")))
	assert.True(t, Number(0).StrictEqual(Number(-0.0)))
}

func TestValueJS(t *testing.T) {
	assert.Equal(t, "undefined", Undefined().JS())
	assert.Equal(t, "null", Null().JS())
	assert.Equal(t, "true", Bool(true).JS())
	assert.Equal(t, "3", Number(3).JS())
	assert.Equal(t, "0.25", Number(0.25).JS())
	assert.Equal(t, `"a\"b"`, String(`a"b`).JS())
}

func TestValueOf(t *testing.T) {
	v, err := ValueOf(2)
	assert.NoError(t, err)
	assert.True(t, v.StrictEqual(Number(2)))

	v, err = ValueOf(nil)
	assert.NoError(t, err)
	assert.Equal(t, KindNull, v.Kind())

	_, err = ValueOf([]string{"x"})
	assert.Error(t, err)
}
