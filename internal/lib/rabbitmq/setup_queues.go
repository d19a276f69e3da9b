package rabbitmq

// Exchange — имя exchange для писем магазина.
const Exchange = "notifications"

// Ключи маршрутизации событий почты.
const (
	RoutingKeyOrderConfirmation = "order.confirmation"
	RoutingKeyPasswordReset     = "password.reset"
)

// QueueConfig описывает очередь и её ключ маршрутизации.
type QueueConfig struct {
	QueueName  string
	RoutingKey string
}

// GetNotificationQueues возвращает очереди, которые потребляет воркер-отправитель.
func GetNotificationQueues() []QueueConfig {
	return []QueueConfig{
		{QueueName: "notification.order", RoutingKey: RoutingKeyOrderConfirmation},
		{QueueName: "notification.reset", RoutingKey: RoutingKeyPasswordReset},
	}
}
