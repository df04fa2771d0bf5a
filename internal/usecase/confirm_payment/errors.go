package confirm_payment

import "errors"

var (
	// ErrStudioNotFound возвращается, когда студия из события не найдена
	ErrStudioNotFound = errors.New("confirm_payment: studio not found")

	// ErrSlotFull возвращается, когда на момент подтверждения мест в слоте не осталось
	ErrSlotFull = errors.New("confirm_payment: slot is full")

	// ErrInvalidTimeSlot возвращается, когда время из события не попадает в сетку студии
	ErrInvalidTimeSlot = errors.New("confirm_payment: invalid time slot")

	// ErrInvalidInput возвращается при некорректном событии
	ErrInvalidInput = errors.New("confirm_payment: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("confirm_payment: internal error")
)
