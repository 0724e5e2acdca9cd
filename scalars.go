package graphql

import (
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/vektah/gqlparser/v2/ast"
)

// Built-in scalars, per SPEC_FULL.md §4.1. Int is 32-bit per the GraphQL spec
// (values outside int32 range are a coercion error, not silently truncated);
// Float rejects NaN/Inf on serialize since those have no JSON representation;
// ID accepts either a string or an integer literal/value and always serializes
// to a string.
var (
	Int = &Scalar{
		Name:          "Int",
		Description:   "The Int scalar type represents a signed 32-bit numeric value.",
		Serialize:     serializeInt,
		Deserialize:   deserializeInt,
		ParseLiteral:  parseLiteralInt,
		IsValueOfType: func(v interface{}) bool { _, ok := asInt32(v); return ok },
	}

	Float = &Scalar{
		Name:          "Float",
		Description:   "The Float scalar type represents signed double-precision fractional values.",
		Serialize:     serializeFloat,
		Deserialize:   deserializeFloat,
		ParseLiteral:  parseLiteralFloat,
		IsValueOfType: func(v interface{}) bool { _, ok := asFloat64(v); return ok },
	}

	String = &Scalar{
		Name:        "String",
		Description: "The String scalar type represents textual data, represented as UTF-8 character sequences.",
		Serialize: func(v interface{}) (interface{}, error) {
			s, ok := v.(string)
			if !ok {
				return nil, fmt.Errorf("cannot serialize %T as String", v)
			}
			return s, nil
		},
		Deserialize: func(v interface{}) (interface{}, error) {
			s, ok := v.(string)
			if !ok {
				return nil, fmt.Errorf("cannot coerce %v to String", v)
			}
			return s, nil
		},
		ParseLiteral: func(v *ast.Value) (interface{}, error) {
			if v.Kind != ast.StringValue && v.Kind != ast.BlockValue {
				return nil, fmt.Errorf("cannot coerce literal %s to String", v.Kind)
			}
			return v.Raw, nil
		},
		IsValueOfType: func(v interface{}) bool { _, ok := v.(string); return ok },
	}

	Boolean = &Scalar{
		Name:        "Boolean",
		Description: "The Boolean scalar type represents true or false.",
		Serialize: func(v interface{}) (interface{}, error) {
			b, ok := v.(bool)
			if !ok {
				return nil, fmt.Errorf("cannot serialize %T as Boolean", v)
			}
			return b, nil
		},
		Deserialize: func(v interface{}) (interface{}, error) {
			b, ok := v.(bool)
			if !ok {
				return nil, fmt.Errorf("cannot coerce %v to Boolean", v)
			}
			return b, nil
		},
		ParseLiteral: func(v *ast.Value) (interface{}, error) {
			if v.Kind != ast.BooleanValue {
				return nil, fmt.Errorf("cannot coerce literal %s to Boolean", v.Kind)
			}
			return v.Raw == "true", nil
		},
		IsValueOfType: func(v interface{}) bool { _, ok := v.(bool); return ok },
	}

	ID = &Scalar{
		Name:        "ID",
		Description: "The ID scalar type represents a unique identifier, serialized as a String.",
		Serialize: func(v interface{}) (interface{}, error) {
			switch t := v.(type) {
			case string:
				return t, nil
			case int, int32, int64:
				return fmt.Sprintf("%d", t), nil
			default:
				return nil, fmt.Errorf("cannot serialize %T as ID", v)
			}
		},
		Deserialize: func(v interface{}) (interface{}, error) {
			switch t := v.(type) {
			case string:
				return t, nil
			case float64:
				return strconv.FormatFloat(t, 'f', -1, 64), nil
			default:
				return nil, fmt.Errorf("cannot coerce %v to ID", v)
			}
		},
		ParseLiteral: func(v *ast.Value) (interface{}, error) {
			switch v.Kind {
			case ast.StringValue, ast.IntValue:
				return v.Raw, nil
			default:
				return nil, fmt.Errorf("cannot coerce literal %s to ID", v.Kind)
			}
		},
		IsValueOfType: func(v interface{}) bool {
			switch v.(type) {
			case string, int, int32, int64:
				return true
			default:
				return false
			}
		},
	}

	// DateTime is an additional scalar the teacher's `definitions.go` shipped
	// (`graphql.Time`), generalized to the engine's Scalar model: RFC3339 on
	// the wire, time.Time internally. Input also accepts a milliseconds-since-
	// epoch integer (SPEC_FULL.md §4.1), the wire shape most JS/JSON clients
	// already produce for a Date.
	DateTime = &Scalar{
		Name:        "DateTime",
		Description: "An RFC 3339 date-time string, e.g. 2023-10-12T07:20:50.52Z. Also accepts milliseconds since the Unix epoch on input.",
		Serialize: func(v interface{}) (interface{}, error) {
			t, ok := v.(time.Time)
			if !ok {
				return nil, fmt.Errorf("cannot serialize %T as DateTime", v)
			}
			return t.UTC().Format(time.RFC3339Nano), nil
		},
		Deserialize:   func(v interface{}) (interface{}, error) { return deserializeDateTimeLike(v) },
		ParseLiteral:  func(v *ast.Value) (interface{}, error) { return parseDateTimeLikeLiteral(v) },
		IsValueOfType: func(v interface{}) bool { _, ok := v.(time.Time); return ok },
	}

	// Date is DateTime's calendar-only counterpart: same input flexibility
	// (ISO-8601 string or millisecond epoch), but always serializes to just
	// the date portion, per SPEC_FULL.md §4.1 listing Date and DateTime as
	// two distinct built-ins.
	Date = &Scalar{
		Name:        "Date",
		Description: "An ISO-8601 calendar date string, e.g. 2023-10-12. Also accepts milliseconds since the Unix epoch on input.",
		Serialize: func(v interface{}) (interface{}, error) {
			t, ok := v.(time.Time)
			if !ok {
				return nil, fmt.Errorf("cannot serialize %T as Date", v)
			}
			return t.UTC().Format("2006-01-02"), nil
		},
		Deserialize:   func(v interface{}) (interface{}, error) { return deserializeDateTimeLike(v) },
		ParseLiteral:  func(v *ast.Value) (interface{}, error) { return parseDateTimeLikeLiteral(v) },
		IsValueOfType: func(v interface{}) bool { _, ok := v.(time.Time); return ok },
	}
)

// parseISOTime parses an RFC3339 date-time, or a bare 2006-01-02 calendar
// date (read as midnight UTC).
func parseISOTime(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", s)
}

// deserializeDateTimeLike backs both Date and DateTime's Deserialize: a
// string is parsed as RFC3339 or a bare calendar date, a number is read as
// milliseconds since the Unix epoch.
func deserializeDateTimeLike(v interface{}) (interface{}, error) {
	switch t := v.(type) {
	case string:
		return parseISOTime(t)
	case float64:
		return msEpochToTime(t), nil
	case int:
		return msEpochToTime(float64(t)), nil
	case int64:
		return msEpochToTime(float64(t)), nil
	default:
		return nil, fmt.Errorf("cannot coerce %v to Date/DateTime", v)
	}
}

// parseDateTimeLikeLiteral backs both Date and DateTime's ParseLiteral:
// StringValue is RFC3339 or a bare calendar date, IntValue is milliseconds
// since the Unix epoch.
func parseDateTimeLikeLiteral(v *ast.Value) (interface{}, error) {
	switch v.Kind {
	case ast.StringValue:
		return parseISOTime(v.Raw)
	case ast.IntValue:
		n, err := strconv.ParseInt(v.Raw, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid Date/DateTime literal %q: %w", v.Raw, err)
		}
		return msEpochToTime(float64(n)), nil
	default:
		return nil, fmt.Errorf("cannot coerce literal %s to Date/DateTime", v.Kind)
	}
}

func msEpochToTime(ms float64) time.Time {
	return time.UnixMilli(int64(ms)).UTC()
}

func serializeInt(v interface{}) (interface{}, error) {
	n, ok := asInt32(v)
	if !ok {
		return nil, fmt.Errorf("cannot serialize %v as Int", v)
	}
	return n, nil
}

func deserializeInt(v interface{}) (interface{}, error) {
	switch t := v.(type) {
	case float64:
		if t != math.Trunc(t) {
			return nil, fmt.Errorf("Int cannot represent non-integer value %v", v)
		}
		if t < math.MinInt32 || t > math.MaxInt32 {
			return nil, fmt.Errorf("Int cannot represent value outside 32-bit range: %v", v)
		}
		return int32(t), nil
	case int:
		n, ok := asInt32(t)
		if !ok {
			return nil, fmt.Errorf("Int cannot represent value outside 32-bit range: %v", v)
		}
		return n, nil
	case int32:
		return t, nil
	default:
		return nil, fmt.Errorf("cannot coerce %v to Int", v)
	}
}

func parseLiteralInt(v *ast.Value) (interface{}, error) {
	if v.Kind != ast.IntValue {
		return nil, fmt.Errorf("cannot coerce literal %s to Int", v.Kind)
	}
	n, err := strconv.ParseInt(v.Raw, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid Int literal %q: %w", v.Raw, err)
	}
	if n < math.MinInt32 || n > math.MaxInt32 {
		return nil, fmt.Errorf("Int cannot represent value outside 32-bit range: %s", v.Raw)
	}
	return int32(n), nil
}

func asInt32(v interface{}) (int32, bool) {
	switch t := v.(type) {
	case int32:
		return t, true
	case int:
		if t < math.MinInt32 || t > math.MaxInt32 {
			return 0, false
		}
		return int32(t), true
	case int64:
		if t < math.MinInt32 || t > math.MaxInt32 {
			return 0, false
		}
		return int32(t), true
	case float64:
		if t != math.Trunc(t) || t < math.MinInt32 || t > math.MaxInt32 {
			return 0, false
		}
		return int32(t), true
	default:
		return 0, false
	}
}

func serializeFloat(v interface{}) (interface{}, error) {
	f, ok := asFloat64(v)
	if !ok {
		return nil, fmt.Errorf("cannot serialize %T as Float", v)
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil, fmt.Errorf("Float cannot represent non-finite value %v", f)
	}
	return f, nil
}

func deserializeFloat(v interface{}) (interface{}, error) {
	f, ok := asFloat64(v)
	if !ok {
		return nil, fmt.Errorf("cannot coerce %v to Float", v)
	}
	return f, nil
}

func parseLiteralFloat(v *ast.Value) (interface{}, error) {
	if v.Kind != ast.FloatValue && v.Kind != ast.IntValue {
		return nil, fmt.Errorf("cannot coerce literal %s to Float", v.Kind)
	}
	f, err := strconv.ParseFloat(v.Raw, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid Float literal %q: %w", v.Raw, err)
	}
	return f, nil
}

func asFloat64(v interface{}) (float64, bool) {
	switch t := v.(type) {
	case float64:
		return t, true
	case float32:
		return float64(t), true
	case int:
		return float64(t), true
	case int32:
		return float64(t), true
	case int64:
		return float64(t), true
	default:
		return 0, false
	}
}
