package partner

import "errors"

// Доменные ошибки для контрагентов
var (
	ErrInvalidPartnerID    = errors.New("invalid partner ID")
	ErrUnknownPartnerKind  = errors.New("unknown partner kind")
	ErrPartnerNotFound     = errors.New("partner not found")
	ErrPartnerNameRequired = errors.New("partner name is required")
	ErrNothingToUpdate     = errors.New("no fields to update")
)
