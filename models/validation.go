package models

import (
	"catalog/errs"
	"errors"

	"github.com/go-playground/validator/v10"
)

// validate holds the rules shared by the services and the stores' write paths.
var validate = validator.New(validator.WithRequiredStructEnabled())

var productMessages = map[string]string{
	"Name":       MsgNameAndCategoryRequired,
	"CategoryID": MsgNameAndCategoryRequired,
	"Price":      MsgInvalidPrice,
	"Stock":      MsgInvalidStock,
}

var patchMessages = map[string]string{
	"Price": MsgInvalidPrice,
	"Stock": MsgStockBelowZero,
}

var categoryMessages = map[string]string{
	"Name": MsgCategoryNameRequired,
}

// Validate checks the invariants every stored product must hold.
func (p *Product) Validate() error {
	return translate(validate.Struct(p), productMessages)
}

// Validate checks the fields present in the patch.
func (p *ProductPatch) Validate() error {
	return translate(validate.Struct(p), patchMessages)
}

func (c *Category) Validate() error {
	return translate(validate.Struct(c), categoryMessages)
}

// translate maps the first failing field to its client message.
func translate(err error, messages map[string]string) error {
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return err
	}
	msg, ok := messages[verrs[0].StructField()]
	if !ok {
		msg = verrs[0].Error()
	}
	return errs.NewValidationError(msg)
}
