package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/projecta-dev/projecta-api/internal/dto"
	"github.com/projecta-dev/projecta-api/internal/repository"
)

const scheduleLimit = 10

// DashboardService serves the student schedule: upcoming deadlines the
// student has not yet submitted for, soonest first.
type DashboardService interface {
	Schedule(ctx context.Context, studentID uint) (dto.ScheduleResponse, error)
}

type dashboardService struct {
	assessments repository.AssessmentRepository
	cache       *redis.Client
	ttl         time.Duration
	logger      zerolog.Logger
	now         func() time.Time
}

// NewDashboardService builds the dashboard service.
func NewDashboardService(assessmentRepo repository.AssessmentRepository, cache *redis.Client, ttl time.Duration, logger zerolog.Logger) DashboardService {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &dashboardService{
		assessments: assessmentRepo,
		cache:       cache,
		ttl:         ttl,
		logger:      logger.With().Str("component", "dashboard_service").Logger(),
		now:         time.Now,
	}
}

func (s *dashboardService) Schedule(ctx context.Context, studentID uint) (dto.ScheduleResponse, error) {
	cacheKey := fmt.Sprintf("dashboard:schedule:%d", studentID)
	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, cacheKey).Result(); err == nil && cached != "" {
			var response dto.ScheduleResponse
			if err := json.Unmarshal([]byte(cached), &response); err == nil {
				return response, nil
			}
		}
	}

	assessments, err := s.assessments.ListUpcoming(ctx, studentID, s.now(), scheduleLimit)
	if err != nil {
		return dto.ScheduleResponse{}, err
	}

	response := dto.NewScheduleResponse(studentID, assessments)

	if s.cache != nil {
		if payload, err := json.Marshal(response); err == nil {
			if err := s.cache.Set(ctx, cacheKey, payload, s.ttl).Err(); err != nil {
				s.logger.Warn().Err(err).Msg("failed to write schedule cache")
			}
		}
	}

	return response, nil
}
