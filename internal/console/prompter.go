package console

import (
	"errors"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"
)

// ErrAborted is returned by a Prompter when the user interrupts a prompt
var ErrAborted = errors.New("prompt aborted")

// Prompter asks the user for input
type Prompter interface {
	Input(message string) (string, error)
	Password(message string) (string, error)
	Select(message string, options []string, def string) (string, error)
}

// SurveyPrompter prompts on the terminal with survey
type SurveyPrompter struct {
	opts []survey.AskOpt
}

// NewSurveyPrompter creates a SurveyPrompter. opts are passed to every
// survey.AskOne call, for example survey.WithStdio.
func NewSurveyPrompter(opts ...survey.AskOpt) *SurveyPrompter {
	return &SurveyPrompter{opts: opts}
}

func (p *SurveyPrompter) ask(prompt survey.Prompt, response interface{}) error {
	err := survey.AskOne(prompt, response, p.opts...)
	if errors.Is(err, terminal.InterruptErr) {
		return ErrAborted
	}
	return err
}

// Input asks for a line of text
func (p *SurveyPrompter) Input(message string) (string, error) {
	var response string
	err := p.ask(&survey.Input{Message: message}, &response)
	return response, err
}

// Password asks for text without echoing it
func (p *SurveyPrompter) Password(message string) (string, error) {
	var response string
	err := p.ask(&survey.Password{Message: message}, &response)
	return response, err
}

// Select asks for one of options
func (p *SurveyPrompter) Select(message string, options []string, def string) (string, error) {
	prompt := &survey.Select{
		Message: message,
		Options: options,
	}
	if def != "" {
		prompt.Default = def
	}
	var response string
	err := p.ask(prompt, &response)
	return response, err
}
