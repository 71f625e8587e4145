package team

import (
	"context"
	"fmt"

	"github.com/betrhq/betr/go-data-server/internal/model"
	"github.com/betrhq/betr/go-data-server/internal/repository"
	"gorm.io/gorm"
)

// TeamRepository is the persistence model of model.Team
type TeamRepository = repository.Repository[model.Team, *model.Team]

type TeamService struct {
	db             *gorm.DB
	teamRepository *TeamRepository
}

func NewTeamService(db *gorm.DB, teamRepository *TeamRepository) *TeamService {
	return &TeamService{
		db:             db,
		teamRepository: teamRepository,
	}
}

// Register returns the team identified by (league, name), creating it when missing.
// The abbreviation only applies to a newly created team.
func (s *TeamService) Register(ctx context.Context, request *CreateTeamRequest) (*TeamResponse, bool, error) {
	league, _ := model.ParseLeague(request.League)

	team, created, err := s.teamRepository.GetOrCreate(ctx, s.db, repository.Criteria{
		"league": league,
		"name":   request.Name,
	})
	if err != nil {
		return nil, false, fmt.Errorf("팀 등록 실패: %w", err)
	}

	if created && request.Abbreviation != "" {
		team.Abbreviation = request.Abbreviation
		if team, err = s.teamRepository.Save(ctx, s.db, team); err != nil {
			return nil, false, fmt.Errorf("팀 약칭 저장 실패: %w", err)
		}
	}

	return newTeamResponse(team), created, nil
}

func (s *TeamService) Find(ctx context.Context, query *FindTeamQuery) (*TeamResponse, error) {
	league, _ := model.ParseLeague(query.League)

	team, err := s.teamRepository.Get(ctx, s.db, repository.Criteria{
		"league": league,
		"name":   query.Name,
	})
	if err != nil {
		return nil, fmt.Errorf("팀 조회 실패: %w", err)
	}
	if team == nil {
		return nil, fmt.Errorf("팀을 찾을 수 없습니다 league=%s name=%s %w", league, query.Name, ErrTeamNotFound)
	}

	return newTeamResponse(team), nil
}
