package api

import (
	"encoding/json"
	"strconv"

	"github.com/gin-gonic/gin"
)

// normalizeModelKeys recursively renames the untagged gorm.Model keys (ID,
// CreatedAt, UpdatedAt, DeletedAt) to snake_case so clients receive one
// consistent key style.
func normalizeModelKeys(v interface{}) interface{} {
	switch vv := v.(type) {
	case map[string]interface{}:
		for k, val := range vv {
			vv[k] = normalizeModelKeys(val)
		}
		for from, to := range modelKeys {
			if val, ok := vv[from]; ok {
				vv[to] = val
				delete(vv, from)
			}
		}
		return vv
	case []interface{}:
		for i := range vv {
			vv[i] = normalizeModelKeys(vv[i])
		}
		return vv
	default:
		return v
	}
}

var modelKeys = map[string]string{
	"ID":        "id",
	"CreatedAt": "created_at",
	"UpdatedAt": "updated_at",
	"DeletedAt": "deleted_at",
}

// MarshalIntoSnakeKeys marshals v into JSON, decodes it back into an
// interface{} and normalizes the gorm.Model keys.
func MarshalIntoSnakeKeys(v interface{}) (interface{}, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var out interface{}
	if err := json.Unmarshal(b, &out); err != nil {
		return nil, err
	}
	return normalizeModelKeys(out), nil
}

// uintParam parses a positive numeric path parameter.
func uintParam(c *gin.Context, name string) (uint, bool) {
	n, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || n == 0 {
		return 0, false
	}
	return uint(n), true
}

// optionalUintQuery parses an optional positive query parameter. A
// missing parameter yields (nil, true).
func optionalUintQuery(c *gin.Context, name string) (*uint, bool) {
	s := c.Query(name)
	if s == "" {
		return nil, true
	}
	n, err := strconv.ParseUint(s, 10, 64)
	if err != nil || n == 0 {
		return nil, false
	}
	v := uint(n)
	return &v, true
}
