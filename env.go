// env.go: the process-wide mutable store of all bound names.
//
// The Environment holds three disjoint value namespaces (scalar variables,
// numeric arrays, string arrays) plus the procedure table. Name lookup checks
// scalar, then numeric array, then string array, in that fixed order. Binding
// a name in one value namespace removes it from the other two, so a name can
// legally live in only one of them at a time. The procedure table is
// independent of the value namespaces.
package wlang

// Env is the flat global environment the evaluator reads and mutates. It is
// created empty and populated incrementally by int/bool/array/array_str/func
// statements. There is exactly one logical thread of control, so no locking.
type Env struct {
	vars      map[string]Value
	numArrays map[string][]Value
	strArrays map[string][]Value
	procs     map[string][]string
}

// NewEnv creates an empty environment.
func NewEnv() *Env {
	return &Env{
		vars:      make(map[string]Value),
		numArrays: make(map[string][]Value),
		strArrays: make(map[string][]Value),
		procs:     make(map[string][]string),
	}
}

// SetVar binds a scalar, displacing any array bound under the same name.
func (e *Env) SetVar(name string, v Value) {
	delete(e.numArrays, name)
	delete(e.strArrays, name)
	e.vars[name] = v
}

// SetNumArray binds a numeric array, displacing any other value binding.
func (e *Env) SetNumArray(name string, elems []Value) {
	delete(e.vars, name)
	delete(e.strArrays, name)
	e.numArrays[name] = elems
}

// SetStrArray binds a string array, displacing any other value binding.
func (e *Env) SetStrArray(name string, elems []Value) {
	delete(e.vars, name)
	delete(e.numArrays, name)
	e.strArrays[name] = elems
}

// SetProc stores raw body lines under name, replacing any prior definition.
func (e *Env) SetProc(name string, body []string) {
	e.procs[name] = body
}

// Lookup resolves a name reference: scalar first, then numeric array, then
// string array.
func (e *Env) Lookup(name string) (Value, bool) {
	if v, ok := e.vars[name]; ok {
		return v, true
	}
	if a, ok := e.numArrays[name]; ok {
		return NumArr(a), true
	}
	if a, ok := e.strArrays[name]; ok {
		return StrArr(a), true
	}
	return Value{}, false
}

// Array returns the named array's elements and tag (VTNumArray or
// VTStrArray). Scalars do not satisfy Array.
func (e *Env) Array(name string) ([]Value, ValueTag, bool) {
	if a, ok := e.numArrays[name]; ok {
		return a, VTNumArray, true
	}
	if a, ok := e.strArrays[name]; ok {
		return a, VTStrArray, true
	}
	return nil, 0, false
}

// ReplaceArray overwrites the elements of an existing array binding in place
// (after a push or pop). The namespace is chosen by tag.
func (e *Env) ReplaceArray(name string, tag ValueTag, elems []Value) {
	if tag == VTNumArray {
		e.numArrays[name] = elems
		return
	}
	e.strArrays[name] = elems
}

// Proc returns the stored body lines for a procedure.
func (e *Env) Proc(name string) ([]string, bool) {
	b, ok := e.procs[name]
	return b, ok
}
