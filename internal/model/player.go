package model

// Player belongs to a team through TeamID.
type Player struct {
	Base
	TeamID       int64  `gorm:"column:team_id;not null;index:idx_player_team" json:"teamId" validate:"required"`
	FullName     string `gorm:"column:full_name;type:varchar(100);not null" json:"fullName" validate:"required,max=100"`
	Position     string `gorm:"column:position;type:varchar(16)" json:"position,omitempty" validate:"omitempty,max=16"`
	JerseyNumber *int   `gorm:"column:jersey_number" json:"jerseyNumber,omitempty" validate:"omitempty,gte=0,lte=99"`
}

// TableName specifies the table name for Player
func (*Player) TableName() string {
	return "player"
}
