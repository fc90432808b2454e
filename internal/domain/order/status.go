package order

import "safetyportal/internal/domain/repositories"

// transitions допустимые переходы статусов. Доставленный и отмененный заказы не меняют статус
var transitions = map[string][]string{
	repositories.OrderStatusPending:    {repositories.OrderStatusDispatched, repositories.OrderStatusCancelled},
	repositories.OrderStatusDispatched: {repositories.OrderStatusDelivered, repositories.OrderStatusCancelled},
	repositories.OrderStatusDelivered:  nil,
	repositories.OrderStatusCancelled:  nil,
}

// ValidStatus проверяет, что статус известен
func ValidStatus(status string) bool {
	_, ok := transitions[status]
	return ok
}

// CanTransition сообщает, можно ли перевести заказ из статуса from в статус to.
// Повторная установка текущего статуса разрешена
func CanTransition(from, to string) bool {
	if from == to {
		return ValidStatus(to)
	}
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// ValidOrderType проверяет тип заказа
func ValidOrderType(orderType string) bool {
	return orderType == repositories.OrderTypePurchase || orderType == repositories.OrderTypeSales
}
