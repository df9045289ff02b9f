package service

import (
	"context"
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/projecta-dev/projecta-api/internal/dto"
	"github.com/projecta-dev/projecta-api/internal/models"
	"github.com/projecta-dev/projecta-api/internal/repository"
)

// ErrGroupNotFound indicates the referenced group does not exist.
var ErrGroupNotFound = errors.New("group not found")

// GroupService exposes project group management use cases.
type GroupService interface {
	ListByCourse(ctx context.Context, courseID uint) ([]dto.GroupResponse, error)
	Get(ctx context.Context, id uint) (dto.GroupResponse, error)
	Create(ctx context.Context, payload dto.GroupCreateRequest) (dto.GroupResponse, error)
	AssignMembers(ctx context.Context, id uint, payload dto.GroupAssignRequest) (dto.GroupResponse, error)
	Delete(ctx context.Context, id uint) error
}

type groupService struct {
	groups    repository.GroupRepository
	courses   repository.CourseRepository
	students  repository.StudentRepository
	validator *validator.Validate
	logger    zerolog.Logger
}

// NewGroupService constructs a GroupService instance.
func NewGroupService(groupRepo repository.GroupRepository, courseRepo repository.CourseRepository, studentRepo repository.StudentRepository, validate *validator.Validate, logger zerolog.Logger) GroupService {
	return &groupService{
		groups:    groupRepo,
		courses:   courseRepo,
		students:  studentRepo,
		validator: validate,
		logger:    logger.With().Str("component", "group_service").Logger(),
	}
}

func (s *groupService) ListByCourse(ctx context.Context, courseID uint) ([]dto.GroupResponse, error) {
	groups, err := s.groups.ListByCourse(ctx, courseID)
	if err != nil {
		return nil, err
	}

	return dto.NewGroupResponseSlice(groups), nil
}

func (s *groupService) Get(ctx context.Context, id uint) (dto.GroupResponse, error) {
	group, err := s.groups.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.GroupResponse{}, ErrGroupNotFound
		}
		return dto.GroupResponse{}, err
	}

	return dto.NewGroupResponse(group), nil
}

func (s *groupService) Create(ctx context.Context, payload dto.GroupCreateRequest) (dto.GroupResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.GroupResponse{}, err
	}

	if _, err := s.courses.GetByID(ctx, payload.CourseID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.GroupResponse{}, ErrCourseNotFound
		}
		return dto.GroupResponse{}, err
	}

	members, err := s.resolveMembers(ctx, payload.MemberIDs)
	if err != nil {
		return dto.GroupResponse{}, err
	}

	group := models.Group{
		CourseID: payload.CourseID,
		Name:     payload.Name,
		Members:  members,
	}

	if err := s.groups.Create(ctx, &group); err != nil {
		return dto.GroupResponse{}, err
	}

	created, err := s.groups.GetByID(ctx, group.ID)
	if err != nil {
		return dto.GroupResponse{}, err
	}

	s.logger.Info().Uint("group_id", created.ID).Msg("group created")

	return dto.NewGroupResponse(created), nil
}

func (s *groupService) AssignMembers(ctx context.Context, id uint, payload dto.GroupAssignRequest) (dto.GroupResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.GroupResponse{}, err
	}

	group, err := s.groups.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.GroupResponse{}, ErrGroupNotFound
		}
		return dto.GroupResponse{}, err
	}

	members, err := s.resolveMembers(ctx, payload.MemberIDs)
	if err != nil {
		return dto.GroupResponse{}, err
	}

	if err := s.groups.ReplaceMembers(ctx, &group, members); err != nil {
		return dto.GroupResponse{}, err
	}

	updated, err := s.groups.GetByID(ctx, group.ID)
	if err != nil {
		return dto.GroupResponse{}, err
	}

	return dto.NewGroupResponse(updated), nil
}

func (s *groupService) Delete(ctx context.Context, id uint) error {
	if err := s.groups.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrGroupNotFound
		}
		return err
	}

	return nil
}

func (s *groupService) resolveMembers(ctx context.Context, memberIDs []uint) ([]models.Student, error) {
	members := make([]models.Student, 0, len(memberIDs))
	for _, memberID := range memberIDs {
		student, err := s.students.GetByID(ctx, memberID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrStudentNotFound
			}
			return nil, err
		}
		members = append(members, student)
	}

	return members, nil
}
