package cache

import (
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// NilQualifier sentinel rendered for absent optional values.
// Distinguishes "parameter absent" from "parameter is empty string" so the two
// never derive the same key.
const NilQualifier = "-"

// BuildKey derives a deterministic cache key:
//
//	{namespace}:{category}:{qualifier}:{qualifier}:...
//
// Callers must pass the organization id as the first qualifier so that keys
// from different tenants can never collide. Qualifiers are rendered in a
// canonical locale-independent form; the key is a plain concatenation rather
// than a hash, trading a negligible collision risk for human-debuggable keys
// (a deliberate choice: SCAN output stays readable during incident response).
//
// Supported qualifier types: string, integers, floats, bool, uuid.UUID, nil.
// Anything else returns ErrInvalidQualifier.
func BuildKey(namespace, category string, qualifiers ...any) (string, error) {
	var sb strings.Builder
	sb.WriteString(namespace)
	sb.WriteByte(':')
	sb.WriteString(category)

	for _, q := range qualifiers {
		s, err := canonicalize(q)
		if err != nil {
			return "", err
		}
		sb.WriteByte(':')
		sb.WriteString(s)
	}
	return sb.String(), nil
}

// canonicalize renders a single qualifier in its fixed textual form
func canonicalize(q any) (string, error) {
	switch v := q.(type) {
	case nil:
		return NilQualifier, nil
	case string:
		if v == "" {
			return "", nil
		}
		return v, nil
	case bool:
		if v {
			return "t", nil
		}
		return "f", nil
	case int:
		return strconv.FormatInt(int64(v), 10), nil
	case int8:
		return strconv.FormatInt(int64(v), 10), nil
	case int16:
		return strconv.FormatInt(int64(v), 10), nil
	case int32:
		return strconv.FormatInt(int64(v), 10), nil
	case int64:
		return strconv.FormatInt(v, 10), nil
	case uint:
		return strconv.FormatUint(uint64(v), 10), nil
	case uint8:
		return strconv.FormatUint(uint64(v), 10), nil
	case uint16:
		return strconv.FormatUint(uint64(v), 10), nil
	case uint32:
		return strconv.FormatUint(uint64(v), 10), nil
	case uint64:
		return strconv.FormatUint(v, 10), nil
	case float32:
		return strconv.FormatFloat(float64(v), 'f', -1, 32), nil
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), nil
	case uuid.UUID:
		return v.String(), nil
	case *string:
		if v == nil {
			return NilQualifier, nil
		}
		return *v, nil
	default:
		return "", ErrInvalidQualifier.WithMsgf("invalid cache key qualifier type: %T", q)
	}
}
