package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/tienda-api/internal/application/dto"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// Los mensajes usan el nombre JSON del campo.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	// decimal.Decimal se valida como número para gt/min/max.
	v.RegisterCustomTypeFunc(func(f reflect.Value) interface{} {
		if d, ok := f.Interface().(decimal.Decimal); ok {
			return d.InexactFloat64()
		}
		return nil
	}, decimal.Decimal{})
	return v
}

// errInvalidBody se devuelve cuando el cuerpo no es JSON del tipo esperado.
var errInvalidBody = errors.New("cuerpo inválido")

// bindJSON decodifica el cuerpo en dst con BodyParser y aplica los tags validate.
// Devuelve true si ya respondió con un error.
func bindJSON(c *fiber.Ctx, dst interface{}) (bool, error) {
	if err := c.BodyParser(dst); err != nil {
		return true, writeValidation(c, []string{errInvalidBody.Error() + ": " + err.Error()})
	}
	return checkStruct(c, dst)
}

// bindPatch decodifica un patch: además de dst registra en patch las claves presentes,
// que BodyParser no expone.
func bindPatch(c *fiber.Ctx, dst interface{}, patch *dto.Patch) (bool, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(c.Body(), &raw); err != nil {
		return true, writeValidation(c, []string{errInvalidBody.Error() + ": " + err.Error()})
	}
	patch.Fields = make([]string, 0, len(raw))
	for k := range raw {
		patch.Fields = append(patch.Fields, k)
	}
	sort.Strings(patch.Fields)
	return bindJSON(c, dst)
}

func checkStruct(c *fiber.Ctx, dst interface{}) (bool, error) {
	err := validate.Struct(dst)
	if err == nil {
		return false, nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return true, writeError(c, err)
	}
	details := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		details = append(details, describe(fe))
	}
	return true, writeValidation(c, details)
}

func describe(fe validator.FieldError) string {
	field := fe.Namespace()
	if i := strings.IndexByte(field, '.'); i >= 0 {
		field = field[i+1:]
	}
	if fe.Param() != "" {
		return fmt.Sprintf("%s: %s=%s", field, fe.Tag(), fe.Param())
	}
	return fmt.Sprintf("%s: %s", field, fe.Tag())
}
