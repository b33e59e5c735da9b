package validators

import (
	"reflect"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/BruksfildServices01/agenda/internal/domain/client"
	"github.com/BruksfildServices01/agenda/internal/timezone"
)

var registerOnce sync.Once

// Register adds the domain tags to gin's validator:
//
//	phone       10-15 digits once separators are stripped
//	personname  letters and spaces only
//	hhmm        24h "15:04"
//	ymd         "2006-01-02"
func Register() error {
	var err error
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		err = RegisterOn(v)
	})
	return err
}

func RegisterOn(v *validator.Validate) error {
	v.RegisterTagNameFunc(fieldName)

	tags := map[string]validator.Func{
		"phone":      func(fl validator.FieldLevel) bool { return client.IsPhone(fl.Field().String()) },
		"personname": func(fl validator.FieldLevel) bool { return client.IsPersonName(fl.Field().String()) },
		"hhmm":       layout(timezone.TimeLayout),
		"ymd":        layout(timezone.DateLayout),
	}
	for tag, fn := range tags {
		if err := v.RegisterValidation(tag, fn); err != nil {
			return err
		}
	}
	return nil
}

func layout(l string) validator.Func {
	return func(fl validator.FieldLevel) bool {
		_, err := time.Parse(l, fl.Field().String())
		return err == nil
	}
}

// fieldName reports errors under the json (or form) key the client sent.
func fieldName(f reflect.StructField) string {
	for _, tag := range []string{"json", "form"} {
		name := strings.SplitN(f.Tag.Get(tag), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name != "" {
			return name
		}
	}
	return f.Name
}
