package handler

import (
	"encoding/json"
	"sort"
	"strconv"

	"github.com/labstack/echo/v4"

	"warehouse/internal/errors"
)

// jsonObject is a request body decoded with numbers kept as json.Number so
// that presence and type can be checked per field.
type jsonObject map[string]interface{}

func decodeObject(c echo.Context) (jsonObject, error) {
	dec := json.NewDecoder(c.Request().Body)
	dec.UseNumber()

	var body jsonObject
	if err := dec.Decode(&body); err != nil {
		return nil, errors.InvalidRequestBody(err)
	}
	if body == nil {
		return nil, errors.InvalidRequestBody(nil)
	}
	return body, nil
}

// keys returns the field names sent, sorted.
func (o jsonObject) keys() []string {
	out := make([]string, 0, len(o))
	for k := range o {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// present reports whether a create field counts as supplied. Stock only has
// to be sent, so null and 0 get through to its own check. The other fields
// must hold a truthy value.
func (o jsonObject) present(key string) bool {
	v, ok := o[key]
	if key == "stock" {
		return ok
	}
	return ok && truthy(v)
}

// truthy follows JavaScript truthiness for decoded JSON values.
func truthy(v interface{}) bool {
	switch t := v.(type) {
	case nil:
		return false
	case string:
		return t != ""
	case bool:
		return t
	case json.Number:
		f, err := t.Float64()
		return err == nil && f != 0
	default:
		return true
	}
}

// typeOf names the JSON type of v the way JavaScript's typeof does.
func typeOf(v interface{}, present bool) string {
	if !present {
		return "undefined"
	}
	switch v.(type) {
	case string:
		return "string"
	case json.Number:
		return "number"
	case bool:
		return "boolean"
	default:
		return "object"
	}
}

// intValue returns v as an integer if it is a JSON number without a fraction.
func intValue(v interface{}) (int, bool) {
	n, ok := v.(json.Number)
	if !ok {
		return 0, false
	}
	i, err := strconv.Atoi(n.String())
	if err != nil {
		return 0, false
	}
	return i, true
}
