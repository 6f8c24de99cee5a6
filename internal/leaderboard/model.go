package leaderboard

import "time"

// Entry is one row of the materialized leaderboard read model, keyed by
// (username, writing_style). It is derived strictly from the games table and
// recomputed wholesale by Refresh; it is never the source of truth.
type Entry struct {
	Username       string    `gorm:"column:username;primaryKey;size:190;not null" json:"username"`
	DisplayName    string    `gorm:"column:display_name;size:320;not null" json:"display_name"`
	WritingStyle   string    `gorm:"column:writing_style;primaryKey;size:32;not null" json:"writing_style"`
	BestScore      int       `gorm:"column:best_score;not null" json:"best_score"`
	BestStyleScore int       `gorm:"column:best_style_score;not null" json:"best_style_score"`
	TotalGames     int       `gorm:"column:total_games;not null" json:"total_games"`
	AvgScore       float64   `gorm:"column:avg_score;not null" json:"avg_score"`
	Rank           int       `gorm:"column:style_rank;not null" json:"rank"`
	LastPlayed     time.Time `gorm:"column:last_played;not null" json:"last_played"`
}

// TableName exposes the table backing the read model.
func (Entry) TableName() string {
	return "leaderboard_entries"
}

// ranksBefore is the ordering shared by every leaderboard view: higher best
// score first, ties broken by the earlier last play.
func (e Entry) ranksBefore(other Entry) bool {
	if e.BestScore != other.BestScore {
		return e.BestScore > other.BestScore
	}
	return e.LastPlayed.Before(other.LastPlayed)
}
