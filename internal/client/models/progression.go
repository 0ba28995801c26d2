package models

import "time"

// XPPerLevel is the amount of xp between two consecutive levels.
const XPPerLevel = 500

// DateLayout formats calendar dates stored in LastActiveDate.
const DateLayout = "2006-01-02"

// Reason is a reward category for awarded xp.
type Reason string

const (
	ReasonQuizCorrect        Reason = "quiz_correct"
	ReasonQuizCompleted      Reason = "quiz_completed"
	ReasonSummary            Reason = "summary"
	ReasonStudyPlan          Reason = "study_plan"
	ReasonFlashcardsReviewed Reason = "flashcards_reviewed"
	ReasonDailyLogin         Reason = "daily_login"
	ReasonChatQuestion       Reason = "chat_question"
)

// GamificationState is the single per-installation progression record.
// LastActiveDate is a DateLayout calendar date, or "" when nothing has been
// awarded yet.
type GamificationState struct {
	XP             int    `json:"xp"`
	Level          int    `json:"level"`
	Streak         int    `json:"streak"`
	LastActiveDate string `json:"lastActiveDate,omitempty"`
	TotalXPEarned  int    `json:"totalXPEarned"`
}

// InitialState is the state of a fresh installation.
func InitialState() GamificationState {
	return GamificationState{Level: 1}
}

// LevelForXP returns xp/XPPerLevel + 1. Negative xp is treated as zero.
func LevelForXP(xp int) int {
	if xp < 0 {
		xp = 0
	}
	return xp/XPPerLevel + 1
}

// XPToNextLevel is the xp still missing before the next level.
func (s GamificationState) XPToNextLevel() int {
	return s.Level*XPPerLevel - s.XP
}

// XPProgress is the fraction of the current level completed, in [0, 1).
func (s GamificationState) XPProgress() float64 {
	return float64(s.XP%XPPerLevel) / XPPerLevel
}

// Toast is a transient "xp awarded" notification.
type Toast struct {
	ID        string    `json:"id"`
	Amount    int       `json:"amount"`
	Reason    Reason    `json:"reason"`
	Timestamp time.Time `json:"timestamp"`
}

// RankInfo maps the inclusive level range [MinLevel, MaxLevel] to a
// cosmetic rank. MaxLevel == 0 marks the open-ended final rank.
type RankInfo struct {
	Name     string `json:"name"`
	MinLevel int    `json:"minLevel"`
	MaxLevel int    `json:"maxLevel"`
	Color    string `json:"color"`
	Icon     string `json:"icon"`
}

// Contains reports whether level falls inside the rank's range.
func (r RankInfo) Contains(level int) bool {
	if level < r.MinLevel {
		return false
	}
	return r.MaxLevel == 0 || level <= r.MaxLevel
}
