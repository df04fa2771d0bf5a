package planservice

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Client клиент для работы с PlanService (тарифы и членство)
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента PlanService
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// GetPlan получает тариф пользователя
func (c *Client) GetPlan(ctx context.Context, userID int64) (*Plan, error) {
	url := fmt.Sprintf("%s/internal/users/%d/plan", c.baseURL, userID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		// Продолжаем обработку
	case http.StatusNotFound:
		return nil, ErrPlanNotFound
	default:
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(body))
	}

	var plan Plan
	if err := json.NewDecoder(resp.Body).Decode(&plan); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	return &plan, nil
}

// CanBookStudio проверяет, даёт ли тариф пользователя право прямого
// бронирования в студии. Единая точка проверки entitlement для admission
// контроллера: digital-only и неактивные тарифы права не имеют
func (c *Client) CanBookStudio(ctx context.Context, userID, studioID int64) (bool, error) {
	plan, err := c.GetPlan(ctx, userID)
	if err != nil {
		if errors.Is(err, ErrPlanNotFound) {
			c.log.Info("CanBookStudio: user=%d has no plan, studio booking denied", userID)
			return false, nil
		}
		return false, err
	}

	if !plan.Active {
		c.log.Info("CanBookStudio: user=%d plan is inactive, studio booking denied", userID)
		return false, nil
	}

	return plan.Tier == TierStudioAccess, nil
}

// ListDigitalOnlyMembers получает участников студии с тарифом digital-only
// Используется yield сканером для таргетирования промо-предложений
func (c *Client) ListDigitalOnlyMembers(ctx context.Context, studioID int64) ([]Member, error) {
	url := fmt.Sprintf("%s/internal/studios/%d/members?tier=%s", c.baseURL, studioID, TierDigitalOnly)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(body))
	}

	var members []Member
	if err := json.NewDecoder(resp.Body).Decode(&members); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	return members, nil
}
