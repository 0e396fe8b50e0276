package quiz

import (
	"errors"
	"reflect"
	"sort"
	"strings"
	"sync"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	govalidator "github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
)

const (
	MinQuantity  = 5
	MaxQuantity  = 50
	QuantityStep = 5

	DefaultQuantity = 15
)

// Config is everything needed to request a quiz for one material.
type Config struct {
	MaterialID             string       `json:"materialId" validate:"required"`
	MaterialName           string       `json:"materialName" validate:"required"`
	Type                   QuestionType `json:"type" validate:"required,oneof=multiple_choice fill_in_the_blank true_false mixed"`
	Quantity               int          `json:"quantity" validate:"min=5,max=50,step5"`
	Difficulty             Difficulty   `json:"difficulty" validate:"required,oneof=beginner intermediate advanced"`
	IncludeChineseAnalysis bool         `json:"includeChineseAnalysis"`
	FocusGrammar           bool         `json:"focusGrammar"`
}

// NewConfig returns the default configuration for m.
func NewConfig(m Material) Config {
	return Config{
		MaterialID:             m.ID,
		MaterialName:           m.Name,
		Type:                   TypeMixed,
		Quantity:               DefaultQuantity,
		Difficulty:             DifficultyIntermediate,
		IncludeChineseAnalysis: true,
		FocusGrammar:           false,
	}
}

// ClampQuantity snaps n to the nearest step and clamps it into range.
func ClampQuantity(n int) int {
	n = (n + QuantityStep/2) / QuantityStep * QuantityStep
	if n < MinQuantity {
		return MinQuantity
	}
	if n > MaxQuantity {
		return MaxQuantity
	}
	return n
}

// ConfigError carries per-field validation messages keyed by JSON name.
type ConfigError struct {
	Fields map[string]string
}

func (e *ConfigError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, e.Fields[k])
	}
	return "invalid quiz config: " + strings.Join(parts, "; ")
}

var (
	validateOnce sync.Once
	validate     *govalidator.Validate
	trans        ut.Translator
)

func validatorInstance() (*govalidator.Validate, ut.Translator) {
	validateOnce.Do(func() {
		v := govalidator.New(govalidator.WithRequiredStructEnabled())
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
		_ = v.RegisterValidation("step5", func(fl govalidator.FieldLevel) bool {
			return fl.Field().Int()%QuantityStep == 0
		})

		enLocale := en.New()
		uni := ut.New(enLocale, enLocale)
		t, _ := uni.GetTranslator("en")
		_ = en_translations.RegisterDefaultTranslations(v, t)
		_ = v.RegisterTranslation("step5", t,
			func(ut ut.Translator) error {
				return ut.Add("step5", "{0} must be a multiple of 5", true)
			},
			func(ut ut.Translator, fe govalidator.FieldError) string {
				msg, _ := ut.T("step5", fe.Field())
				return msg
			},
		)

		validate = v
		trans = t
	})
	return validate, trans
}

// Validate checks c and returns a *ConfigError describing every bad field.
func (c Config) Validate() error {
	v, t := validatorInstance()
	err := v.Struct(c)
	if err == nil {
		return nil
	}

	var ve govalidator.ValidationErrors
	if !errors.As(err, &ve) {
		return err
	}
	fields := make(map[string]string, len(ve))
	for _, fe := range ve {
		fields[fe.Field()] = fe.Translate(t)
	}
	return &ConfigError{Fields: fields}
}
