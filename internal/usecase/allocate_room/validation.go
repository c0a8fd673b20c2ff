package allocate_room

import (
	"fmt"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.Actor.UserID <= 0 {
		return fmt.Errorf("%w: actor user id must be positive", ErrInvalidInput)
	}

	if err := req.Requester.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if !req.Category.IsValid() {
		return fmt.Errorf("%w: unknown category %q", ErrInvalidInput, req.Category)
	}

	if req.Slot.Date.IsZero() || req.Slot.Start.IsZero() || req.Slot.End.IsZero() {
		return fmt.Errorf("%w: date, start and end are required", ErrInvalidInput)
	}

	return nil
}
