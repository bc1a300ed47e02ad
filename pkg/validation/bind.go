package validation

import (
	"encoding/json"
	"errors"
	"net/http"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin/binding"
)

// JSON decodes a request body, trims its string fields and only then runs
// the struct validator, so min/max rules see the value that gets stored.
// Fields tagged `trim:"false"` are left untouched.
var JSON binding.Binding = trimmedJSON{}

type trimmedJSON struct{}

func (trimmedJSON) Name() string { return "json" }

func (trimmedJSON) Bind(req *http.Request, obj any) error {
	if req == nil || req.Body == nil {
		return errors.New("invalid request")
	}
	if err := json.NewDecoder(req.Body).Decode(obj); err != nil {
		return err
	}
	TrimStrings(obj)
	if binding.Validator == nil {
		return nil
	}
	return binding.Validator.ValidateStruct(obj)
}

// TrimStrings trims surrounding whitespace from the string and *string
// fields of the struct ptr points to.
func TrimStrings(ptr any) {
	v := reflect.ValueOf(ptr)
	if v.Kind() != reflect.Pointer || v.IsNil() {
		return
	}
	v = v.Elem()
	if v.Kind() != reflect.Struct {
		return
	}
	t := v.Type()
	for i := 0; i < v.NumField(); i++ {
		sf := t.Field(i)
		if !sf.IsExported() || sf.Tag.Get("trim") == "false" {
			continue
		}
		f := v.Field(i)
		switch {
		case f.Kind() == reflect.String:
			f.SetString(strings.TrimSpace(f.String()))
		case f.Kind() == reflect.Pointer && !f.IsNil() && f.Elem().Kind() == reflect.String:
			f.Elem().SetString(strings.TrimSpace(f.Elem().String()))
		}
	}
}
