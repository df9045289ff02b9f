package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/projecta-dev/projecta-api/internal/dto"
	"github.com/projecta-dev/projecta-api/internal/repository"
)

// ErrShowcaseNotFound indicates no showcase exists for the submission.
var ErrShowcaseNotFound = errors.New("showcase not found")

// ShowcaseService exposes the public showcase feed.
type ShowcaseService interface {
	ListPublic(ctx context.Context, req dto.ShowcaseListRequest) (dto.ShowcaseListResponse, error)
	GetBySubmission(ctx context.Context, submissionID uint) (dto.ShowcaseResponse, error)
}

type showcaseService struct {
	repo   repository.ShowcaseRepository
	cache  *redis.Client
	ttl    time.Duration
	logger zerolog.Logger
}

// NewShowcaseService builds the showcase feed service. The cache is optional;
// entries expire by TTL, so the feed may lag a validation by at most one TTL.
func NewShowcaseService(repo repository.ShowcaseRepository, cache *redis.Client, ttl time.Duration, logger zerolog.Logger) ShowcaseService {
	if ttl <= 0 {
		ttl = time.Minute
	}
	return &showcaseService{
		repo:   repo,
		cache:  cache,
		ttl:    ttl,
		logger: logger.With().Str("component", "showcase_service").Logger(),
	}
}

func (s *showcaseService) ListPublic(ctx context.Context, req dto.ShowcaseListRequest) (dto.ShowcaseListResponse, error) {
	page := req.Page
	if page <= 0 {
		page = 1
	}
	pageSize := req.PageSize
	if pageSize <= 0 || pageSize > 100 {
		pageSize = 20
	}

	cacheKey := fmt.Sprintf("showcase:feed:p%d:s%d", page, pageSize)
	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, cacheKey).Result(); err == nil && cached != "" {
			var response dto.ShowcaseListResponse
			if err := json.Unmarshal([]byte(cached), &response); err == nil {
				return response, nil
			}
		}
	}

	showcases, total, err := s.repo.List(ctx, repository.ShowcaseFilter{
		PublicOnly: true,
		Page:       page,
		PageSize:   pageSize,
	})
	if err != nil {
		return dto.ShowcaseListResponse{}, err
	}

	response := dto.ShowcaseListResponse{
		Items: dto.NewShowcaseResponseSlice(showcases),
		Total: total,
	}

	if s.cache != nil {
		if payload, err := json.Marshal(response); err == nil {
			if err := s.cache.Set(ctx, cacheKey, payload, s.ttl).Err(); err != nil {
				s.logger.Warn().Err(err).Msg("failed to write showcase feed cache")
			}
		}
	}

	return response, nil
}

func (s *showcaseService) GetBySubmission(ctx context.Context, submissionID uint) (dto.ShowcaseResponse, error) {
	showcase, err := s.repo.GetBySubmission(ctx, submissionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.ShowcaseResponse{}, ErrShowcaseNotFound
		}
		return dto.ShowcaseResponse{}, err
	}

	return dto.NewShowcaseResponse(showcase), nil
}
