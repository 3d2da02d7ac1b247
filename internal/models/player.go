package models

import (
	"fmt"
	"math"
	"time"
)

// Player is a skater identity row. Position is "D" for defensemen and a
// forward subtype ("C", "L", "R") otherwise.
type Player struct {
	PlayerID int    `gorm:"primaryKey;column:player_id" json:"player_id"`
	Name     string `gorm:"size:100;not null" json:"name"`
	Position string `gorm:"size:4;not null" json:"position"`
}

func (Player) TableName() string {
	return "players"
}

// IsDefense reports whether the player lines up on defense.
func (p Player) IsDefense() bool {
	return p.Position == "D"
}

// PlayerStats holds one season's counting stats for a player. Read-only
// projection source, never mutated locally.
type PlayerStats struct {
	GamesPlayed      int     `gorm:"column:games_played" json:"games_played"`
	Goals            int     `gorm:"column:goals" json:"goals"`
	Assists          int     `gorm:"column:assists" json:"assists"`
	Points           int     `gorm:"column:points" json:"points"`
	PointsPerGame    float64 `gorm:"column:points_per_game" json:"points_per_game"`
	Shots            int     `gorm:"column:shots" json:"shots"`
	ShootingPercent  float64 `gorm:"column:shooting_percent" json:"shooting_percent"` // fraction 0-1
	TimeOnIcePerGame float64 `gorm:"column:time_on_ice_per_game" json:"time_on_ice_per_game"` // seconds
	ShortHandedGoals int     `gorm:"column:short_handed_goals" json:"short_handed_goals"`
	GameWinningGoals int     `gorm:"column:game_winning_goals" json:"game_winning_goals"`
}

// TimeOnIceDisplay renders time-on-ice-per-game seconds as "M:SS".
func (s PlayerStats) TimeOnIceDisplay() string {
	minutes := int(s.TimeOnIcePerGame / 60)
	seconds := int(math.Round(math.Mod(s.TimeOnIcePerGame/60, 1) * 60))
	return fmt.Sprintf("%d:%02d", minutes, seconds)
}

// ShootingPercentDisplay renders the 0-1 fraction as a percentage with two
// decimals, e.g. 0.1234 -> "12.34".
func (s PlayerStats) ShootingPercentDisplay() string {
	return fmt.Sprintf("%.2f", s.ShootingPercent*100)
}

// PlayerSeasonStat is the per-player per-season stats row.
type PlayerSeasonStat struct {
	PlayerID    int `gorm:"primaryKey;column:player_id" json:"player_id"`
	SeasonID    int `gorm:"primaryKey;column:season_id" json:"season_id"`
	PlayerStats `gorm:"embedded"`

	Player Player `gorm:"foreignKey:PlayerID;references:PlayerID" json:"-"`
}

func (PlayerSeasonStat) TableName() string {
	return "player_stats"
}

// PlayerWithStats is the denormalized shape served to browsers: identity plus
// the stats of one season.
type PlayerWithStats struct {
	PlayerID int         `json:"player_id"`
	Name     string      `json:"name"`
	Position string      `json:"position"`
	Stats    PlayerStats `json:"stats"`
}

// SeasonLine is one row of a player's multi-season history.
type SeasonLine struct {
	SeasonID int         `json:"season_id"`
	Label    string      `json:"label"`
	Stats    PlayerStats `json:"stats"`
}

// TeamMember is a row in the user's persisted roster.
type TeamMember struct {
	PlayerID  int       `gorm:"primaryKey;column:player_id" json:"player_id"`
	CreatedAt time.Time `json:"created_at"`
}

func (TeamMember) TableName() string {
	return "user_teams"
}
