package handler

import (
	"reflect"
	"strings"
	"time"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
	"github.com/sysu-ecnc-dev/employee-manager/backend/internal/utils"
)

// 校验错误中使用 json 字段名，和请求体保持一致
func jsonTagName(fld reflect.StructField) string {
	name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
	if name == "-" {
		return ""
	}
	return name
}

func validatePastDate(fl validator.FieldLevel) bool {
	return utils.IsPastDate(fl.Field().String(), time.Now())
}

func registerCustomValidations(validate *validator.Validate, trans ut.Translator) error {
	customs := []struct {
		tag         string
		fn          validator.Func
		translation string
	}{
		{tag: "notblank", fn: validators.NotBlank, translation: "{0}不能为空白"},
		{tag: "pastdate", fn: validatePastDate, translation: "{0}必须是过去的日期"},
	}

	for _, custom := range customs {
		if err := validate.RegisterValidation(custom.tag, custom.fn); err != nil {
			return err
		}

		tag, translation := custom.tag, custom.translation
		err := validate.RegisterTranslation(tag, trans,
			func(ut ut.Translator) error {
				return ut.Add(tag, translation, true)
			},
			func(ut ut.Translator, fe validator.FieldError) string {
				t, _ := ut.T(tag, fe.Field())
				return t
			},
		)
		if err != nil {
			return err
		}
	}

	return nil
}
