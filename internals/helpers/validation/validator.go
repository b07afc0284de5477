// Package validation membungkus validator v10 dengan pesan bahasa Indonesia
// dan mengembalikan *apperror.ValidationError.
package validation

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/locales/id"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
	idTranslations "github.com/go-playground/validator/v10/translations/id"
	"github.com/shopspring/decimal"

	"sirumah_backend/internals/helpers/apperror"
)

// Messages: override pesan per "field.tag" (nama field = tag json).
// Kunci "field" saja berlaku untuk semua tag di field itu.
type Messages map[string]string

type Validator struct {
	v     *validator.Validate
	trans ut.Translator
}

var std = New()

// Struct memvalidasi s dengan validator bawaan paket.
func Struct(s any, msgs Messages) error { return std.Struct(s, msgs) }

func New() *Validator {
	v := validator.New()

	// pakai nama json supaya kunci error sama dengan payload
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return fld.Name
		}
		return name
	})

	// decimal.Decimal divalidasi sebagai float (gte/lte)
	v.RegisterCustomTypeFunc(func(field reflect.Value) any {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := d.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})

	_ = v.RegisterValidation("notblank", validators.NotBlank)

	locale := id.New()
	uni := ut.New(locale, locale)
	trans, _ := uni.GetTranslator("id")
	_ = idTranslations.RegisterDefaultTranslations(v, trans)

	return &Validator{v: v, trans: trans}
}

func (x *Validator) Struct(s any, msgs Messages) error {
	err := x.v.Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	out := &apperror.ValidationError{}
	for _, fe := range verrs {
		field := fe.Field()
		out.Add(field, x.message(fe, field, msgs))
	}
	return out.OrNil()
}

func (x *Validator) message(fe validator.FieldError, field string, msgs Messages) string {
	if m, ok := msgs[field+"."+fe.Tag()]; ok {
		return m
	}
	if m, ok := msgs[field]; ok {
		return m
	}
	switch fe.Tag() {
	case "notblank":
		return field + " wajib diisi."
	}
	if m := fe.Translate(x.trans); m != "" && m != fe.Error() {
		return m
	}
	return field + " tidak valid."
}

// Check: validasi tag lalu aturan tambahan (extra boleh nil). Semua pesan
// digabung dalam satu ValidationError.
func Check(s any, msgs Messages, extra func(*apperror.ValidationError)) error {
	out := &apperror.ValidationError{}
	if err := Struct(s, msgs); err != nil {
		var ve *apperror.ValidationError
		if !errors.As(err, &ve) {
			return err
		}
		out = ve
	}
	if extra != nil {
		extra(out)
	}
	return out.OrNil()
}
