package vars

import (
	"strings"

	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
)

// Env is an immutable set of variable bindings. The zero value is not
// usable; construct with New.
type Env struct {
	// base holds the caller-supplied bindings.
	base map[string]cty.Value

	// parent/name/value form the overlay chain pushed by WithBinding.
	parent *Env
	name   string
	value  cty.Value
}

// New builds an environment from the given bindings. The map is copied;
// null values count as unbound.
func New(bindings map[string]cty.Value) *Env {
	base := make(map[string]cty.Value, len(bindings))
	for k, v := range bindings {
		base[k] = v
	}
	return &Env{base: base}
}

// WithBinding returns a derived environment in which name is bound to value,
// shadowing any outer binding of the same name. The receiver is unchanged.
func (e *Env) WithBinding(name string, value cty.Value) *Env {
	return &Env{parent: e, name: name, value: value}
}

// lookupName resolves a single binding name against the overlay chain, then
// the base map.
func (e *Env) lookupName(name string) (cty.Value, bool) {
	for env := e; env != nil; env = env.parent {
		if env.parent != nil {
			if env.name == name && !env.value.IsNull() {
				return env.value, true
			}
			continue
		}
		if v, ok := env.base[name]; ok && !v.IsNull() {
			return v, true
		}
	}
	return cty.NilVal, false
}

// Lookup resolves a variable reference, which is either a plain name or a
// dotted path descending through structure fields (`a.b.c`). A binding for
// the full dotted name wins over descent; iteration variables are bound
// under their full names.
//
// Descent crosses structure boundaries only, never sequences: a dotted
// path cannot index into a list. Sequence elements are reached by an
// iterate_over group, which binds each element under the full dotted name
// and so takes the binding fast path here.
//
// A missing variable or structure field yields a *NotFoundError; descending
// through a value that is not a structure yields a *WrongShapeError.
func (e *Env) Lookup(path string) (cty.Value, error) {
	if v, ok := e.lookupName(path); ok {
		return v, nil
	}

	segments := strings.Split(path, ".")
	v, ok := e.lookupName(segments[0])
	if !ok {
		return cty.NilVal, &NotFoundError{Name: path}
	}

	walked := segments[0]
	for _, seg := range segments[1:] {
		if !v.Type().IsObjectType() {
			return cty.NilVal, &WrongShapeError{
				Name: walked,
				Want: "structure",
				Got:  describeType(v.Type()),
			}
		}
		if !v.Type().HasAttribute(seg) {
			return cty.NilVal, &NotFoundError{Name: path}
		}
		v = v.GetAttr(seg)
		if v.IsNull() {
			return cty.NilVal, &NotFoundError{Name: path}
		}
		walked = walked + "." + seg
	}
	return v, nil
}

// Has reports whether the variable reference resolves to a bound value.
func (e *Env) Has(path string) bool {
	_, err := e.Lookup(path)
	return err == nil
}

// Scalar resolves a variable reference that must be a scalar and returns its
// string form. Primitive values (strings, numbers, booleans) are scalars;
// sequences and structures are not.
func (e *Env) Scalar(path string) (string, error) {
	v, err := e.Lookup(path)
	if err != nil {
		return "", err
	}
	if !v.Type().IsPrimitiveType() {
		return "", &WrongShapeError{Name: path, Want: "scalar", Got: describeType(v.Type())}
	}
	s, err := convert.Convert(v, cty.String)
	if err != nil {
		return "", &WrongShapeError{Name: path, Want: "scalar", Got: describeType(v.Type())}
	}
	return s.AsString(), nil
}

// Sequence resolves a variable reference that must be a sequence and returns
// its elements in order.
func (e *Env) Sequence(path string) ([]cty.Value, error) {
	v, err := e.Lookup(path)
	if err != nil {
		return nil, err
	}
	ty := v.Type()
	if !ty.IsListType() && !ty.IsTupleType() && !ty.IsSetType() {
		return nil, &WrongShapeError{Name: path, Want: "sequence", Got: describeType(ty)}
	}
	if v.LengthInt() == 0 {
		return nil, nil
	}
	return v.AsValueSlice(), nil
}

// Truthy is the fixed truthiness rule for expand_if_true / expand_if_false
// guards: a scalar is falsy iff it is "", "0", or "false" (any case);
// every other value is truthy.
func Truthy(s string) bool {
	return s != "" && s != "0" && !strings.EqualFold(s, "false")
}

// StringList builds a sequence value from a slice of strings, preserving
// order.
func StringList(elems []string) cty.Value {
	if len(elems) == 0 {
		return cty.EmptyTupleVal
	}
	vals := make([]cty.Value, len(elems))
	for i, s := range elems {
		vals[i] = cty.StringVal(s)
	}
	return cty.TupleVal(vals)
}

func describeType(ty cty.Type) string {
	switch {
	case ty.IsPrimitiveType():
		return "scalar"
	case ty.IsListType(), ty.IsTupleType(), ty.IsSetType():
		return "sequence"
	case ty.IsObjectType(), ty.IsMapType():
		return "structure"
	default:
		return ty.FriendlyName()
	}
}
