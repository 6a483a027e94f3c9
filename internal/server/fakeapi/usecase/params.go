package usecase

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// int64Param reads an integer parameter that may arrive as a JSON number
// or as a form string
func int64Param(params map[string]any, key string) (int64, error) {
	v, ok := params[key]
	if !ok || v == nil {
		return 0, nil
	}
	switch n := v.(type) {
	case json.Number:
		return n.Int64()
	case float64:
		return int64(n), nil
	case int64:
		return n, nil
	case int:
		return int64(n), nil
	case string:
		if n == "" {
			return 0, nil
		}
		return strconv.ParseInt(n, 10, 64)
	default:
		return 0, fmt.Errorf("%s: unsupported type %T", key, v)
	}
}

func stringParam(params map[string]any, key string) string {
	switch s := params[key].(type) {
	case string:
		return s
	case nil:
		return ""
	default:
		return fmt.Sprint(s)
	}
}
