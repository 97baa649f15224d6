package resolve

import (
	"errors"
	"fmt"
	"strings"

	"github.com/vk/crosstoolgo/model"
	"github.com/vk/crosstoolgo/vars"
)

// expandFlagGroup appends the group's expansion to out: guards first, then
// iteration, then either literal templates or nested groups, all in declared
// order. A failed guard contributes nothing and is not an error.
func expandFlagGroup(fg *model.FlagGroup, env *vars.Env, out *[]string) error {
	ok, err := guardsPass(fg, env)
	if err != nil || !ok {
		return err
	}

	if fg.IterateOver != "" {
		elems, err := env.Sequence(fg.IterateOver)
		if err != nil {
			return fmt.Errorf("iterate_over %q: %w", fg.IterateOver, err)
		}
		for _, elem := range elems {
			// The element shadows the sequence under its own name for this
			// iteration only.
			if err := expandFlagGroupBody(fg, env.WithBinding(fg.IterateOver, elem), out); err != nil {
				return err
			}
		}
		return nil
	}
	return expandFlagGroupBody(fg, env, out)
}

func expandFlagGroupBody(fg *model.FlagGroup, env *vars.Env, out *[]string) error {
	for _, template := range fg.Flags {
		expanded, err := expandTemplate(template, env)
		if err != nil {
			return err
		}
		*out = append(*out, expanded)
	}
	for _, nested := range fg.FlagGroups {
		if err := expandFlagGroup(nested, env, out); err != nil {
			return err
		}
	}
	return nil
}

// guardsPass evaluates every expansion guard on the group. Guards that test
// a variable's value treat an unbound variable as a failed guard; a bound
// but non-scalar variable is an error.
func guardsPass(fg *model.FlagGroup, env *vars.Env) (bool, error) {
	for _, name := range fg.ExpandIfAllAvailable {
		if !env.Has(name) {
			return false, nil
		}
	}
	for _, name := range fg.ExpandIfNoneAvailable {
		if env.Has(name) {
			return false, nil
		}
	}
	if fg.ExpandIfTrue != "" {
		truthy, ok, err := scalarTruthy(fg.ExpandIfTrue, env)
		if err != nil {
			return false, err
		}
		if !ok || !truthy {
			return false, nil
		}
	}
	if fg.ExpandIfFalse != "" {
		truthy, ok, err := scalarTruthy(fg.ExpandIfFalse, env)
		if err != nil {
			return false, err
		}
		if !ok || truthy {
			return false, nil
		}
	}
	if eq := fg.ExpandIfEqual; eq != nil {
		value, err := env.Scalar(eq.Variable)
		if err != nil {
			var notFound *vars.NotFoundError
			if errors.As(err, &notFound) {
				return false, nil
			}
			return false, fmt.Errorf("expand_if_equal %q: %w", eq.Variable, err)
		}
		if value != eq.Value {
			return false, nil
		}
	}
	return true, nil
}

// scalarTruthy resolves a guard variable to its truthiness. ok is false when
// the variable is unbound.
func scalarTruthy(name string, env *vars.Env) (truthy, ok bool, err error) {
	value, err := env.Scalar(name)
	if err != nil {
		var notFound *vars.NotFoundError
		if errors.As(err, &notFound) {
			return false, false, nil
		}
		return false, false, err
	}
	return vars.Truthy(value), true, nil
}

// expandTemplate substitutes every %{name} placeholder with the scalar value
// of the referenced variable. Templates are checked for well-formedness at
// load time; a placeholder that resolves to a sequence or structure is a
// per-request error, since only iterate_over may consume non-scalars.
func expandTemplate(template string, env *vars.Env) (string, error) {
	if !strings.Contains(template, "%{") {
		return template, nil
	}
	var b strings.Builder
	for i := 0; i < len(template); {
		open := strings.Index(template[i:], "%{")
		if open < 0 {
			b.WriteString(template[i:])
			break
		}
		open += i
		b.WriteString(template[i:open])
		end := strings.Index(template[open:], "}") + open
		name := template[open+2 : end]
		value, err := env.Scalar(name)
		if err != nil {
			return "", fmt.Errorf("placeholder %%{%s}: %w", name, err)
		}
		b.WriteString(value)
		i = end + 1
	}
	return b.String(), nil
}

// expandEnvEntry resolves one environment entry against the variable
// environment. included is false when the entry's availability guard fails.
func expandEnvEntry(ee *model.EnvEntry, env *vars.Env) (value string, included bool, err error) {
	for _, name := range ee.ExpandIfAllAvailable {
		if !env.Has(name) {
			return "", false, nil
		}
	}
	value, err = expandTemplate(ee.Value, env)
	if err != nil {
		return "", false, err
	}
	return value, true, nil
}
