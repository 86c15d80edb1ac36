package kafka

// Config содержит конфигурацию для подключения к Kafka
type Config struct {
	// Brokers — список брокеров Kafka.
	// Значение зависит от среды выполнения:
	//   - локальная разработка (go run): localhost:19092
	//   - запуск в Docker: kafka:9092
	// Можно указать несколько брокеров через запятую: "broker1:9092,broker2:9092"
	Brokers []string `env:"KAFKA_BROKERS" envSeparator:","`
	// OrderTopic — топик событий создания заказа
	OrderTopic string `env:"KAFKA_ORDER_TOPIC" envDefault:"order.events"`
	// PaymentTopic — топик исходов оплаты
	PaymentTopic string `env:"KAFKA_PAYMENT_TOPIC" envDefault:"payment.events"`
}

// DefaultConfig возвращает конфигурацию с дефолтными значениями для локальной разработки.
// Сервисы получают актуальные значения через переменные окружения.
func DefaultConfig() Config {
	return Config{
		Brokers:      []string{"localhost:19092"},
		OrderTopic:   "order.events",
		PaymentTopic: "payment.events",
	}
}
