package graphql

import (
	"github.com/vektah/gqlparser/v2/ast"

	"github.com/graphkit-io/graphql/gqlerr"
)

// coerceLiteral implements spec.md §4.2: given a target type and an AST value
// node (plus the already-coerced variable map for Variable nodes), produce a
// runtime value. It never runs Validate/Deserialize itself: scalar literals
// go through ParseLiteral and enum literals map to their member's Value, so
// its result is already the internal form, and both callers (coerceArguments
// for argument literals, coerceVariables for variable defaults) use it with
// no further step.
func coerceLiteral(t Type, value *ast.Value, vars map[string]interface{}) (interface{}, *gqlerr.Error) {
	if value == nil {
		return nil, nil
	}
	if value.Kind == ast.Variable {
		v, ok := vars[value.Raw]
		if !ok {
			return nil, nil
		}
		return v, nil
	}
	if value.Kind == ast.NullValue {
		return nil, nil
	}

	switch named := t.(type) {
	case *NonNull:
		return coerceLiteral(named.Of, value, vars)
	case *List:
		if value.Kind != ast.ListValue {
			v, err := coerceLiteral(named.Of, value, vars)
			if err != nil {
				return nil, err
			}
			return []interface{}{v}, nil
		}
		out := make([]interface{}, 0, len(value.Children))
		for _, child := range value.Children {
			v, err := coerceLiteral(named.Of, child.Value, vars)
			if err != nil {
				return nil, err
			}
			out = append(out, v)
		}
		return out, nil
	case *Enum:
		if value.Kind != ast.EnumValue {
			return nil, gqlerr.At(value.Position, "ValuesOfCorrectType", "enum %q requires an enum literal, got %s", named.Name, value.Kind)
		}
		ev, ok := named.byName(value.Raw)
		if !ok {
			return nil, gqlerr.At(value.Position, "ValuesOfCorrectType", "value %q is not a member of enum %q", value.Raw, named.Name)
		}
		return ev.Value, nil
	case *Scalar:
		v, err := named.ParseLiteral(value)
		if err != nil {
			return nil, gqlerr.At(value.Position, "ValuesOfCorrectType", "%s", err.Error())
		}
		return v, nil
	case *InputObject:
		if value.Kind != ast.ObjectValue {
			return nil, gqlerr.At(value.Position, "ValuesOfCorrectType", "input object %q requires an object literal", named.Name)
		}
		out := make(map[string]interface{}, len(named.Fields))
		seen := make(map[string]bool, len(value.Children))
		for _, child := range value.Children {
			field, ok := named.Fields[child.Name]
			if !ok {
				return nil, gqlerr.At(value.Position, "ValuesOfCorrectType", "unknown field %q on input object %q", child.Name, named.Name)
			}
			seen[child.Name] = true
			v, err := coerceLiteral(field.Type, child.Value, vars)
			if err != nil {
				return nil, err
			}
			out[child.Name] = v
		}
		for name, field := range named.Fields {
			if seen[name] {
				continue
			}
			if field.DefaultValue != nil {
				out[name] = field.DefaultValue
			} else if _, isNonNull := field.Type.(*NonNull); isNonNull {
				return nil, gqlerr.At(value.Position, "ValuesOfCorrectType", "missing required field %q on input object %q", name, named.Name)
			}
		}
		return out, nil
	default:
		return nil, gqlerr.At(value.Position, "ValuesOfCorrectType", "type %s is not a valid input type", t)
	}
}

// validateAndDeserialize runs validate (if present) then deserialize against
// a raw variables-JSON value, per spec.md §4.1.
func validateAndDeserialize(t Type, value interface{}) (interface{}, *gqlerr.Error) {
	if value == nil {
		return nil, nil
	}
	switch named := t.(type) {
	case *NonNull:
		return validateAndDeserialize(named.Of, value)
	case *List:
		items, ok := value.([]interface{})
		if !ok {
			items = []interface{}{value}
		}
		out := make([]interface{}, 0, len(items))
		for _, item := range items {
			v, err := validateAndDeserialize(named.Of, item)
			if err != nil {
				return nil, err
			}
			out = append(out, v)
		}
		return out, nil
	case *Scalar:
		if named.Validate != nil {
			if err := named.Validate(value); err != nil {
				return nil, gqlerr.New("%s", err.Error())
			}
		}
		v, err := named.Deserialize(value)
		if err != nil {
			return nil, gqlerr.New("%s", err.Error())
		}
		return v, nil
	case *Enum:
		ev, ok := named.byName(stringOf(value))
		if !ok {
			return nil, gqlerr.New("value %v is not a member of enum %q", value, named.Name)
		}
		return ev.Value, nil
	case *InputObject:
		m, ok := value.(map[string]interface{})
		if !ok {
			return nil, gqlerr.New("expected object value for input object %q", named.Name)
		}
		out := make(map[string]interface{}, len(named.Fields))
		for name, field := range named.Fields {
			raw, present := m[name]
			if !present {
				if field.DefaultValue != nil {
					out[name] = field.DefaultValue
				} else if _, isNonNull := field.Type.(*NonNull); isNonNull {
					return nil, gqlerr.New("missing required field %q on input object %q", name, named.Name)
				}
				continue
			}
			v, err := validateAndDeserialize(field.Type, raw)
			if err != nil {
				return nil, err
			}
			out[name] = v
		}
		return out, nil
	default:
		return nil, gqlerr.New("type %s is not a valid input type", t)
	}
}

func stringOf(v interface{}) string {
	if s, ok := v.(string); ok {
		return s
	}
	return ""
}

// coerceVariables implements spec.md §4.5.2 for every declared variable.
func coerceVariables(defs ast.VariableDefinitionList, schema *Schema, supplied map[string]interface{}) (map[string]interface{}, gqlerr.List) {
	out := make(map[string]interface{}, len(defs))
	var errs gqlerr.List
	for _, def := range defs {
		t := resolveASTType(schema, def.Type)
		if t == nil {
			errs = append(errs, gqlerr.At(def.Position, "KnownTypeNames", "unknown type %q for variable $%s", def.Type.Name(), def.Variable))
			continue
		}
		if !IsInputType(t) {
			errs = append(errs, gqlerr.At(def.Position, "VariablesAreInputTypes", "variable $%s type %s is not an input type", def.Variable, t))
			continue
		}

		raw, present := supplied[def.Variable]
		if !present {
			if def.DefaultValue != nil {
				v, err := coerceLiteral(t, def.DefaultValue, nil)
				if err != nil {
					errs = append(errs, err)
					continue
				}
				out[def.Variable] = v
				continue
			}
			if _, isNonNull := t.(*NonNull); isNonNull {
				errs = append(errs, gqlerr.At(def.Position, "NoUndefinedVariables", "variable $%s of required type %s was not provided", def.Variable, t))
			}
			continue
		}

		v, err := validateAndDeserialize(t, raw)
		if err != nil {
			errs = append(errs, gqlerr.At(def.Position, "VariablesOfCorrectType", "variable $%s: %s", def.Variable, err.Message))
			continue
		}
		if v == nil {
			if _, isNonNull := t.(*NonNull); isNonNull {
				errs = append(errs, gqlerr.At(def.Position, "NoUndefinedVariables", "variable $%s of required type %s must not be null", def.Variable, t))
			}
			continue
		}
		out[def.Variable] = v
	}
	if len(errs) > 0 {
		return nil, errs
	}
	return out, nil
}

// resolveASTType converts an *ast.Type reference into our Type model, walking
// List/NonNull wrapping and resolving the leaf name against the schema plus
// built-in scalars.
func resolveASTType(schema *Schema, t *ast.Type) Type {
	if t == nil {
		return nil
	}
	if t.NamedType != "" {
		named := schema.NamedType(t.NamedType)
		if named == nil {
			return nil
		}
		if t.NonNull {
			return &NonNull{Of: named}
		}
		return named
	}
	inner := resolveASTType(schema, t.Elem)
	if inner == nil {
		return nil
	}
	list := Type(&List{Of: inner})
	if t.NonNull {
		return &NonNull{Of: list}
	}
	return list
}
