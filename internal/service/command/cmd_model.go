package command

import (
	"context"
)

type ModelInfo interface {
	Model() string
}

type ModelCommand struct {
	model     ModelInfo
	formatter *ResponseFormatter
}

func NewModelCommand(model ModelInfo) *ModelCommand {
	return &ModelCommand{
		model:     model,
		formatter: NewResponseFormatter(),
	}
}

func (c *ModelCommand) Name() string {
	return "model"
}

func (c *ModelCommand) Description() string {
	return "Show the language model in use"
}

func (c *ModelCommand) Execute(_ context.Context, _ string, _ []string) (string, error) {
	return c.formatter.Combine(
		c.formatter.Info("Current Model"),
		c.formatter.Label("Model", c.model.Model()),
		c.formatter.Tip("set PASTCAST_LLM_PROVIDER and PASTCAST_LLM_MODEL to change it"),
	), nil
}
