package teamservice

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Client клиент для работы с TeamService
type Client struct {
	httpClient *resty.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента TeamService
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	httpClient := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetRetryCount(1).
		SetRetryWaitTime(100 * time.Millisecond).
		SetRetryMaxWaitTime(500 * time.Millisecond).
		SetHeader("Accept", "application/json")

	return &Client{
		httpClient: httpClient,
		log:        log,
	}
}

// GetTeam получает команду с составом участников
func (c *Client) GetTeam(ctx context.Context, teamID int64) (*domain.Team, error) {
	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetPathParam("teamId", strconv.FormatInt(teamID, 10)).
		Get("/internal/teams/{teamId}")
	if err != nil {
		c.log.Error("TeamService request failed for team_id=%d: %v", teamID, err)
		return nil, fmt.Errorf("%w: team_id=%d: %v", ErrServiceUnavailable, teamID, err)
	}

	// Обработка статус-кодов
	switch {
	case resp.StatusCode() == http.StatusOK:
		// Продолжаем обработку
	case resp.StatusCode() == http.StatusNotFound:
		c.log.Info("Team not found in TeamService: team_id=%d", teamID)
		return nil, ErrTeamNotFound
	case resp.StatusCode() >= http.StatusInternalServerError:
		c.log.Error("TeamService returned %d for team_id=%d", resp.StatusCode(), teamID)
		return nil, fmt.Errorf("%w: status %d", ErrServiceUnavailable, resp.StatusCode())
	default:
		var errResp ErrorResponse
		_ = json.Unmarshal(resp.Body(), &errResp)
		return nil, fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode(), errResp.Message)
	}

	// Парсим ответ
	var team Team
	if err := json.Unmarshal(resp.Body(), &team); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}
	if team.ID != teamID {
		return nil, fmt.Errorf("%w: requested team %d, got %d", ErrInvalidResponse, teamID, team.ID)
	}

	return team.ToDomain(), nil
}

// IsUnavailable сообщает, что ошибка вызвана недоступностью TeamService
// и запрос можно повторить
func IsUnavailable(err error) bool {
	return errors.Is(err, ErrServiceUnavailable) || errors.Is(err, ErrInvalidResponse)
}
