package domain

// IdempotencyStore сопоставляет ключ идемпотентности с ID созданного заказа.
// Хранилище живёт в памяти процесса и не переживает перезапуск.
// Проверка и запись ключа не атомарны: два конкурентных запроса с одним
// невиданным ключом могут оба создать заказ.
type IdempotencyStore interface {
	// Get возвращает ID заказа по ключу.
	Get(key string) (int64, bool)
	// Set запоминает связь ключа с созданным заказом.
	Set(key string, orderID int64)
	// Exists сообщает, встречался ли ключ ранее.
	Exists(key string) bool
}
