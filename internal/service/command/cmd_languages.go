package command

import (
	"context"

	"github.com/sandevgo/pastcast/internal/service/translation"
)

type LanguagesCommand struct {
	formatter *ResponseFormatter
}

func NewLanguagesCommand() *LanguagesCommand {
	return &LanguagesCommand{formatter: NewResponseFormatter()}
}

func (c *LanguagesCommand) Name() string {
	return "languages"
}

func (c *LanguagesCommand) Description() string {
	return "List translation targets"
}

func (c *LanguagesCommand) Execute(_ context.Context, _ string, _ []string) (string, error) {
	return c.formatter.Combine(
		c.formatter.Info("Translation targets"),
		c.formatter.List(translation.Languages()),
		c.formatter.Examples([]string{`translate "good morning" to Hindi`}),
	), nil
}
