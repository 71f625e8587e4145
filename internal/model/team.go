package model

import "strings"

// League is one of the sports leagues the backend keeps data for.
type League string

const (
	LeagueNBA League = "NBA"
	LeagueNHL League = "NHL"
	LeagueMLB League = "MLB"
	LeagueNFL League = "NFL"
	LeagueUFC League = "UFC"
)

var leagues = map[League]struct{}{
	LeagueNBA: {}, LeagueNHL: {}, LeagueMLB: {}, LeagueNFL: {}, LeagueUFC: {},
}

// ParseLeague accepts league names in any case.
func ParseLeague(s string) (League, bool) {
	l := League(strings.ToUpper(strings.TrimSpace(s)))
	_, ok := leagues[l]
	return l, ok
}

// Team is a franchise within a league. (league, name) is unique.
type Team struct {
	Base
	League       League `gorm:"column:league;type:varchar(8);not null;uniqueIndex:idx_team_league_name" json:"league" validate:"required,league"`
	Name         string `gorm:"column:name;type:varchar(100);not null;uniqueIndex:idx_team_league_name" json:"name" validate:"required,max=100"`
	Abbreviation string `gorm:"column:abbreviation;type:varchar(8)" json:"abbreviation,omitempty" validate:"omitempty,max=8"`
}

// TableName specifies the table name for Team
func (*Team) TableName() string {
	return "team"
}
