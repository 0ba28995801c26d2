package progression

import (
	"errors"
	"maps"

	"github.com/farag11/daheeh/internal/client/models"
)

var (
	ErrUnknownReason = errors.New("unknown reward reason")
	ErrInvalidAmount = errors.New("xp amount must not be negative")
)

// DefaultRewards is the xp granted per reason when no amount is given.
var DefaultRewards = map[models.Reason]int{
	models.ReasonQuizCorrect:        20,
	models.ReasonQuizCompleted:      50,
	models.ReasonSummary:            50,
	models.ReasonStudyPlan:          100,
	models.ReasonFlashcardsReviewed: 30,
	models.ReasonDailyLogin:         10,
	models.ReasonChatQuestion:       5,
}

func copyRewards(in map[models.Reason]int) map[models.Reason]int {
	if in == nil {
		in = DefaultRewards
	}
	return maps.Clone(in)
}
