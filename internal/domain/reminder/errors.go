package reminder

import "errors"

// Доменные ошибки для напоминаний
var (
	ErrInvalidReminderID  = errors.New("invalid reminder ID")
	ErrReminderNotFound   = errors.New("reminder not found")
	ErrOrderRequired      = errors.New("order ID is required")
	ErrOrderNotFound      = errors.New("order not found")
	ErrRemindAtRequired   = errors.New("remind_at is required")
	ErrInvalidStatus      = errors.New("unknown reminder status")
	ErrReminderNotPending = errors.New("reminder is not pending")
)
