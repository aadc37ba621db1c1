package explore

import (
	"context"
	"errors"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"
)

// ErrCancelled is returned when the user interrupts a prompt.
var ErrCancelled = errors.New("explore: cancelled")

// SelectConfig configures a single-select prompt.
type SelectConfig struct {
	Message  string
	Options  []string
	Help     string
	PageSize int
}

// PromptDriver abstracts the terminal prompt implementation so the
// explorer can be tested with a scripted driver.
type PromptDriver interface {
	Select(ctx context.Context, cfg SelectConfig) (int, error)
}

type surveyDriver struct{}

// NewSurveyDriver returns the default survey-backed prompt driver.
func NewSurveyDriver() PromptDriver {
	return surveyDriver{}
}

func (surveyDriver) Select(ctx context.Context, cfg SelectConfig) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	prompt := &survey.Select{
		Message:  cfg.Message,
		Options:  cfg.Options,
		Help:     cfg.Help,
		PageSize: cfg.PageSize,
	}

	var index int
	if err := survey.AskOne(prompt, &index); err != nil {
		if errors.Is(err, terminal.InterruptErr) {
			return 0, ErrCancelled
		}
		return 0, err
	}
	return index, nil
}
