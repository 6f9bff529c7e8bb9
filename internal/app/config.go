package app

import "time"

// Config описывает настройки запуска сервиса каталога.
type Config struct {
	// HTTPAddr — адрес основного API.
	HTTPAddr string
	// MetricsAddr — адрес служебного сервера метрик и health-проверок.
	MetricsAddr string
	// PostgresDSN — строка подключения к PostgreSQL. Пустое значение
	// включает in-memory хранилище.
	PostgresDSN string
	// KafkaBrokers — список брокеров через запятую. Пустое значение
	// отключает публикацию событий.
	KafkaBrokers string
	// IdempotencyTTL — время жизни idempotency-ключей.
	IdempotencyTTL time.Duration
}

// DefaultConfig возвращает базовые настройки.
func DefaultConfig() Config {
	return Config{
		HTTPAddr:       ":8000",
		MetricsAddr:    ":9090",
		IdempotencyTTL: 24 * time.Hour,
	}
}
