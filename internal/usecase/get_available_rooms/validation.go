package get_available_rooms

import (
	"fmt"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if !req.Category.IsValid() {
		return fmt.Errorf("%w: unknown category %q", ErrInvalidInput, req.Category)
	}

	if req.Slot.Date.IsZero() || req.Slot.Start.IsZero() || req.Slot.End.IsZero() {
		return fmt.Errorf("%w: date, start and end are required", ErrInvalidInput)
	}

	return nil
}
