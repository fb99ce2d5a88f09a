package validator

import (
	"fmt"
	"strings"

	"huddle/pkg/logger"
	"huddle/pkg/model"
	"huddle/pkg/timegrid"

	"github.com/go-playground/validator/v10"
)

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (v ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", v.Field, v.Message)
}

type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	if len(v) == 0 {
		return ""
	}
	var messages []string
	for _, err := range v {
		messages = append(messages, err.Error())
	}
	return fmt.Sprintf("validation failed: %d error(s): [%s]", len(v), strings.Join(messages, "; "))
}

type ReservationValidator struct {
	validate *validator.Validate
	logger   *logger.Logger
}

func NewReservationValidator(log *logger.Logger) *ReservationValidator {
	v := validator.New()

	if err := v.RegisterValidation("grid_aligned", validateGridAligned); err != nil {
		log.Fatal("Failed to register 'grid_aligned' validator",
			"error", err,
		)
	}

	return &ReservationValidator{
		validate: v,
		logger:   log,
	}
}

func validateGridAligned(fl validator.FieldLevel) bool {
	return fl.Field().Int()%timegrid.GridStep == 0
}

// Validate checks a reservation against its tags plus the cross-field day
// bound: a reservation must end by midnight.
func (rv *ReservationValidator) Validate(res *model.Reservation) error {
	errs := rv.structErrors(rv.validate.Struct(res))
	if res.StartMinute+res.DurationMin > timegrid.DayInMins {
		errs = append(errs, ValidationError{
			Field:   "DurationMin",
			Message: "reservation must end by midnight",
		})
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

func (rv *ReservationValidator) ValidateProposal(p *model.Proposal) error {
	errs := rv.structErrors(rv.validate.Struct(p))
	if p.StartMinute+p.DurationMin > timegrid.DayInMins {
		errs = append(errs, ValidationError{
			Field:   "DurationMin",
			Message: "proposal must end by midnight",
		})
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

func (rv *ReservationValidator) ValidateReminder(rem *model.Reminder) error {
	if errs := rv.structErrors(rv.validate.Struct(rem)); len(errs) > 0 {
		return errs
	}
	return nil
}

func (rv *ReservationValidator) structErrors(err error) ValidationErrors {
	if err == nil {
		return nil
	}

	var errs ValidationErrors
	if fieldErrors, ok := err.(validator.ValidationErrors); ok {
		for _, fe := range fieldErrors {
			errs = append(errs, ValidationError{
				Field:   fe.Field(),
				Message: fmt.Sprintf("failed on '%s' validation", fe.Tag()),
			})
		}
		return errs
	}

	errs = append(errs, ValidationError{Field: "struct", Message: err.Error()})
	return errs
}
