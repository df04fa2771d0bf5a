package planservice

import "errors"

var (
	// ErrPlanNotFound возвращается, когда у пользователя нет активного тарифа
	ErrPlanNotFound = errors.New("planservice client: plan not found")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("planservice client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса
	ErrInvalidResponse = errors.New("planservice client: invalid response")
)
