// Package dispatch связывает durable лог событий с асинхронной
// инвокацией функций-обработчиков. Worker читает топик консьюмер-группой
// и передаёт каждый конверт invoker-у; неуспех диспатча логируется и
// не останавливает чтение.
package dispatch

import "context"

// Invoker асинхронно запускает функцию-обработчик с переданным
// payload. Успешный возврат означает "инвокация принята", а не
// "обработка завершена".
type Invoker interface {
	InvokeAsync(ctx context.Context, function string, payload []byte) error
}
