package domain

// Slot grid constants
const (
	// SlotDurationMinutes фиксированная длительность слота
	// Вся сетка расписания строится с этим шагом
	SlotDurationMinutes = 20

	// UnderfillDivisor порог недозаполненности: слот считается underperforming,
	// если занято меньше чем capacity/UnderfillDivisor мест
	UnderfillDivisor = 2
)

// Business validation constants
const (
	MinCapacityPerSlot = 1
	MaxCapacityPerSlot = 500

	MaxProgramLength            = 100
	MaxCancellationReasonLength = 500
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// ActiveStatuses статусы, учитываемые в правиле "одна тренировка в день"
var ActiveStatuses = []BookingStatus{
	StatusConfirmed,
	StatusAttended,
}
