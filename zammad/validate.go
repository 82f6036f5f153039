package zammad

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

var integerString = regexp.MustCompile(`^[+-]?[0-9]+(\.0*)?$`)

// AssertInteger converts value to an int if it holds an integer, an integral float
// or a decimal string that parses to one. Values outside the int range and
// anything else are an InvalidRequest.
func AssertInteger(value any) (int, error) {
	switch v := value.(type) {
	case int:
		return v, nil
	case int8:
		return int(v), nil
	case int16:
		return int(v), nil
	case int32:
		return int(v), nil
	case int64:
		if v > math.MaxInt || v < math.MinInt {
			return 0, invalidRequest("Expected integer")
		}
		return int(v), nil
	case uint:
		return fromUnsigned(uint64(v))
	case uint8:
		return int(v), nil
	case uint16:
		return int(v), nil
	case uint32:
		return fromUnsigned(uint64(v))
	case uint64:
		return fromUnsigned(v)
	case float32:
		return integralFloat(float64(v))
	case float64:
		return integralFloat(v)
	case json.Number:
		return AssertInteger(string(v))
	case string:
		s := strings.TrimSpace(v)
		if !integerString.MatchString(s) {
			return 0, invalidRequest("Expected integer")
		}
		if i := strings.IndexByte(s, '.'); i >= 0 {
			s = s[:i]
		}
		n, err := strconv.Atoi(s)
		if err != nil {
			return 0, invalidRequest("Expected integer")
		}
		return n, nil
	default:
		return 0, invalidRequest("Expected integer")
	}
}

func fromUnsigned(u uint64) (int, error) {
	if u > math.MaxInt {
		return 0, invalidRequest("Expected integer")
	}
	return int(u), nil
}

// integralFloat rejects fractions and anything outside [math.MinInt, math.MaxInt].
// float64(math.MaxInt) rounds up to 2^63, so the upper bound is exclusive.
func integralFloat(f float64) (int, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return 0, invalidRequest("Expected integer")
	}
	if f >= float64(math.MaxInt) || f < float64(math.MinInt) {
		return 0, invalidRequest("Expected integer")
	}
	return int(f), nil
}

// requireKeys fails on the first key that is missing from object
func requireKeys(object map[string]json.RawMessage, keys ...string) error {
	for _, key := range keys {
		if _, ok := object[key]; !ok {
			return unexpectedResponse(
				fmt.Sprintf("%s attribute missing", key),
				fmt.Sprintf("%s field", key),
				fmt.Sprintf("no %s field present", key),
			)
		}
	}
	return nil
}

// jsonKind names the JSON type of raw, or "empty"/"invalid" when it is not a JSON value
func jsonKind(raw []byte) string {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return "empty"
	}
	if !json.Valid(trimmed) {
		return "invalid"
	}
	switch trimmed[0] {
	case '{':
		return "object"
	case '[':
		return "array"
	case '"':
		return "string"
	case 't', 'f':
		return "boolean"
	case 'n':
		return "null"
	default:
		return "number"
	}
}

// isStructured reports whether raw is a JSON object or array
func isStructured(raw []byte) bool {
	kind := jsonKind(raw)
	return kind == "object" || kind == "array"
}
