package validators

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	domain "github.com/rehabflow/care-scheduler/internal/domain/appointment"
)

// Register installs the custom binding rules on gin's validator.
func Register() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return nil
	}
	return v.RegisterValidation("appointment_status", appointmentStatus)
}

func appointmentStatus(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	return s == "" || domain.Status(s).Valid()
}
