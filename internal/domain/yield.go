package domain

import "time"

// YieldTarget кандидат на промо-предложение: участник с digital-only тарифом
// и недозаполненный слот, который ему предлагается
// Вычисляется при каждом сканировании, нигде не хранится
type YieldTarget struct {
	UserID   int64
	StudioID int64
	Date     time.Time
	Slot     Slot
}
