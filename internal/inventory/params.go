package inventory

import (
	"errors"
	"fmt"
	"regexp"

	"github.com/go-playground/validator/v10"

	"github.com/highnoon-games/dustbound/internal/domain"
)

// AddItemParams describes a stack grant. ItemName/ItemType/Slot are
// snapshotted onto the stack at creation time and ignored on increments.
type AddItemParams struct {
	ItemID   string `validate:"required,itemid"`
	ItemName string `validate:"required,max=100"`
	ItemType string `validate:"required,oneof=weapon armor consumable material quest misc"`
	Quantity int    `validate:"required,min=1,max=9999"`
	Slot     string `validate:"omitempty,max=32"`
}

// UpdateItemParams is a partial overwrite of a stack. Nil fields are
// left untouched. Values are not re-validated against stack bounds; the
// database CHECK constraint is the last line of defense.
type UpdateItemParams struct {
	Quantity *int
	Equipped *bool
	Slot     *string
}

var itemIDPattern = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Same charset the public API enforces; keeps item IDs safe as
	// metric labels and log fields.
	_ = v.RegisterValidation("itemid", func(fl validator.FieldLevel) bool {
		return itemIDPattern.MatchString(fl.Field().String())
	})
	return v
}

// validateParams maps validator failures onto domain sentinels:
// quantity bounds get the dedicated error, everything else is generic
// invalid input.
func validateParams(params any) error {
	err := validate.Struct(params)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		for _, fe := range verrs {
			if fe.Field() == "Quantity" {
				return fmt.Errorf("%w: quantity must be between %d and %d",
					domain.ErrInvalidQuantity, domain.MinStackQuantity, domain.MaxStackQuantity)
			}
		}
		return fmt.Errorf("%w: %s failed %s validation", domain.ErrInvalidInput, verrs[0].Field(), verrs[0].Tag())
	}
	return err
}
