package create_booking

import "errors"

var (
	// ErrStudioNotFound возвращается, когда студия не найдена
	ErrStudioNotFound = errors.New("create_booking: studio not found")

	// ErrNotEntitled возвращается, когда тариф пользователя не дает права бронировать студию
	ErrNotEntitled = errors.New("create_booking: plan does not allow studio booking")

	// ErrAlreadyBookedToday возвращается, когда у пользователя уже есть занятие в этот день
	ErrAlreadyBookedToday = errors.New("create_booking: user already has a session on this date")

	// ErrSlotFull возвращается, когда в слоте не осталось свободных мест
	ErrSlotFull = errors.New("create_booking: slot is full")

	// ErrInvalidTimeSlot возвращается, когда время не попадает в сетку слотов студии
	ErrInvalidTimeSlot = errors.New("create_booking: invalid time slot")

	// ErrInvalidDate возвращается при некорректной дате бронирования
	ErrInvalidDate = errors.New("create_booking: invalid booking date")

	// ErrTransientConflict возвращается, когда конкурентные бронирования исчерпали повторы транзакции
	ErrTransientConflict = errors.New("create_booking: transient conflict, retry the request")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)
