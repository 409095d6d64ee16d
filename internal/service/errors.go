package service

import (
	"errors"
	"fmt"
)

// Ошибки сервисного слоя. Детали добавляются через fmt.Errorf("%w: ...").
var (
	ErrNotFound   = errors.New("not found")
	ErrValidation = errors.New("validation failed")

	ErrEmployeeNotFound = fmt.Errorf("%w: employee not found", ErrValidation)
	ErrNoParticipant    = fmt.Errorf("%w: candidate_id or employee_ids must be provided", ErrValidation)
)
