// env_test.go
package wlang

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func Test_Env_LookupOrder(t *testing.T) {
	e := NewEnv()
	e.SetNumArray("x", []Value{Int(1)})
	e.SetStrArray("y", []Value{Str("a")})

	v, ok := e.Lookup("x")
	require.True(t, ok)
	require.Equal(t, VTNumArray, v.Tag)

	v, ok = e.Lookup("y")
	require.True(t, ok)
	require.Equal(t, VTStrArray, v.Tag)

	_, ok = e.Lookup("z")
	require.False(t, ok)
}

func Test_Env_BindingDisplacesSiblings(t *testing.T) {
	e := NewEnv()
	e.SetVar("x", Int(1))
	e.SetNumArray("x", []Value{Int(2)})

	v, ok := e.Lookup("x")
	require.True(t, ok)
	require.Equal(t, VTNumArray, v.Tag, "array binding displaces the scalar")

	e.SetVar("x", Str("s"))
	_, _, ok = e.Array("x")
	require.False(t, ok, "scalar binding displaces the array")

	e.SetStrArray("x", []Value{Str("a")})
	_, ok = e.vars["x"]
	require.False(t, ok)
}

func Test_Env_ProcsIndependentOfValues(t *testing.T) {
	e := NewEnv()
	e.SetProc("f", []string{`show 1`})
	e.SetVar("f", Int(9))

	body, ok := e.Proc("f")
	require.True(t, ok, "a variable named like a procedure does not displace it")
	require.Equal(t, []string{`show 1`}, body)

	e.SetProc("f", []string{`show 2`})
	body, _ = e.Proc("f")
	require.Equal(t, []string{`show 2`}, body)
}

func Test_Env_ReplaceArray(t *testing.T) {
	e := NewEnv()
	e.SetNumArray("a", []Value{Int(1)})
	e.ReplaceArray("a", VTNumArray, []Value{Int(1), Int(2)})

	elems, tag, ok := e.Array("a")
	require.True(t, ok)
	require.Equal(t, VTNumArray, tag)
	require.Len(t, elems, 2)
}
