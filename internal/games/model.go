package games

import (
	"time"

	"gorm.io/datatypes"
)

// Game is one completed writing attempt. Rows are append-only: a game is
// written exactly once per analysis-and-save flow and never updated.
type Game struct {
	ID                 string                     `gorm:"column:id;primaryKey;size:190;not null"`
	UserID             string                     `gorm:"column:user_id;size:190;not null;index:idx_games_user"`
	PromptText         string                     `gorm:"column:prompt_text;type:text;not null"`
	UserResponse       string                     `gorm:"column:user_response;type:text;not null"`
	WritingStyle       string                     `gorm:"column:writing_style;size:32;not null;index:idx_games_style"`
	OverallScore       int                        `gorm:"column:overall_score;not null"`
	StyleSpecificScore int                        `gorm:"column:style_specific_score;not null"`
	ClarityScore       int                        `gorm:"column:clarity_score;not null"`
	StructureScore     int                        `gorm:"column:structure_score;not null"`
	WordChoiceScore    int                        `gorm:"column:word_choice_score;not null"`
	GrammarScore       int                        `gorm:"column:grammar_score;not null"`
	Strengths          datatypes.JSONSlice[string] `gorm:"column:strengths"`
	Weaknesses         datatypes.JSONSlice[string] `gorm:"column:weaknesses"`
	StyleSpecificTips  datatypes.JSONSlice[string] `gorm:"column:style_specific_tips"`
	CreatedAt          time.Time                  `gorm:"column:created_at;not null;index:idx_games_created"`
}

// TableName exposes the table backing game results.
func (Game) TableName() string {
	return "games"
}
