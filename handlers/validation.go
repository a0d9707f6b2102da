package handlers

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"ecodrive/apperror"
)

var phoneRegex = regexp.MustCompile(`^(\+\d{1,3})?\d{7,20}$`)

var (
	registerOnce sync.Once
	createOnce   sync.Once
	creating     *validator.Validate
)

// RegisterValidators installs the custom rules on gin's binding validator. It is safe to
// call more than once.
func RegisterValidators() {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		configure(v)
	})
}

// createValidator checks the `create` tags that only apply to POST bodies.
func createValidator() *validator.Validate {
	createOnce.Do(func() {
		creating = validator.New(validator.WithRequiredStructEnabled())
		creating.SetTagName("create")
		configure(creating)
	})
	return creating
}

func configure(v *validator.Validate) {
	v.RegisterTagNameFunc(jsonName)
	_ = v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
	_ = v.RegisterValidation("phone", func(fl validator.FieldLevel) bool {
		return phoneRegex.MatchString(fl.Field().String())
	})
}

func jsonName(f reflect.StructField) string {
	name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
	if name == "-" {
		return ""
	}
	if name == "" {
		return f.Name
	}
	return name
}

// bindCreate decodes a POST body and enforces both format and presence rules.
func bindCreate(c *gin.Context, in interface{}) bool {
	if err := c.ShouldBindJSON(in); err != nil {
		fail(c, bindError(err))
		return false
	}
	if err := createValidator().Struct(in); err != nil {
		fail(c, bindError(err))
		return false
	}
	return true
}

// bindUpdate decodes a PUT body; absent fields stay nil.
func bindUpdate(c *gin.Context, in interface{}) bool {
	if err := c.ShouldBindJSON(in); err != nil {
		fail(c, bindError(err))
		return false
	}
	return true
}

func bindError(err error) error {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		fields := make(map[string]string, len(verrs))
		for _, fe := range verrs {
			fields[fe.Field()] = fieldMessage(fe)
		}
		return apperror.Validation(fields)
	}
	return &apperror.Error{
		Kind:    apperror.KindInvalidRequest,
		Message: "Corpo da requisição inválido",
		Details: err.Error(),
		Err:     err,
	}
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "é obrigatório"
	case "notblank":
		return "não pode estar em branco"
	case "email":
		return "deve ser um email válido"
	case "phone":
		return "deve ser um telefone válido"
	case "latitude":
		return "deve ser uma latitude válida"
	case "longitude":
		return "deve ser uma longitude válida"
	case "oneof":
		return "deve ser um dos valores: " + fe.Param()
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("deve ter no mínimo %s caracteres", fe.Param())
		}
		return "deve ser no mínimo " + fe.Param()
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("deve ter no máximo %s caracteres", fe.Param())
		}
		return "deve ser no máximo " + fe.Param()
	default:
		return "valor inválido"
	}
}
