package planservice

// PlanTier тариф подписки участника
type PlanTier string

const (
	// TierStudioAccess тариф с правом посещения студий
	TierStudioAccess PlanTier = "studio_access"

	// TierDigitalOnly тариф только с цифровым контентом, без доступа в студии
	// Попасть в студию такой участник может только через платный drop-in или промо
	TierDigitalOnly PlanTier = "digital_only"
)

// Plan модель тарифа пользователя из PlanService
type Plan struct {
	UserID   int64    `json:"user_id"`
	Tier     PlanTier `json:"tier"`
	Active   bool     `json:"active"`
	StudioID *int64   `json:"studio_id,omitempty"` // Домашняя студия (если привязан)
}

// Member участник, привязанный к студии
type Member struct {
	UserID int64    `json:"user_id"`
	Tier   PlanTier `json:"tier"`
}

// ErrorResponse модель ошибки от PlanService
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
