package viewstate

import (
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

const (
	maxNameLength = 100
	maxQuantity   = 999999
)

// ValidationError is a user input problem meant to be shown next to the form.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

type input struct {
	Name     string          `validate:"max=100"`
	Quantity int             `validate:"gte=0,lte=999999"`
	Price    decimal.Decimal `validate:"-"`
}

var validate = validator.New()

// validateForm parses the raw form fields. Checks run in a fixed order and the
// first failing one is reported.
func validateForm(name, quantity, price string) (input, error) {
	name = strings.TrimSpace(name)
	quantity = strings.TrimSpace(quantity)
	price = strings.TrimSpace(price)

	switch {
	case name == "":
		return input{}, &ValidationError{"Product name required"}
	case quantity == "":
		return input{}, &ValidationError{"Quantity required"}
	case price == "":
		return input{}, &ValidationError{"Price required"}
	}

	q, err := strconv.Atoi(quantity)
	if err != nil || q < 0 {
		return input{}, &ValidationError{"Quantity must be a non-negative integer"}
	}

	p, err := decimal.NewFromString(price)
	if err != nil || !p.IsPositive() {
		return input{}, &ValidationError{"Price must be > 0"}
	}

	in := input{Name: name, Quantity: q, Price: p}
	if err := validate.Struct(in); err != nil {
		return input{}, toValidationError(err)
	}

	return in, nil
}

func toValidationError(err error) error {
	errs, ok := err.(validator.ValidationErrors)
	if !ok || len(errs) == 0 {
		return &ValidationError{err.Error()}
	}

	switch errs[0].Field() {
	case "Name":
		return &ValidationError{"Product name must be at most " + strconv.Itoa(maxNameLength) + " characters"}
	case "Quantity":
		return &ValidationError{"Quantity must be at most " + strconv.Itoa(maxQuantity)}
	default:
		return &ValidationError{errs[0].Error()}
	}
}
