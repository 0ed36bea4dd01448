package command

import (
	"fmt"
	"strings"
)

// ResponseFormatter renders command output as light Markdown that survives
// both the Telegram HTML sanitizer and the terminal renderer.
type ResponseFormatter struct{}

func NewResponseFormatter() *ResponseFormatter {
	return &ResponseFormatter{}
}

func (f *ResponseFormatter) Info(title string) string {
	return "**" + title + "**\n\n"
}

func (f *ResponseFormatter) Success(message string) string {
	return "**" + message + "**\n"
}

func (f *ResponseFormatter) Label(label, value string) string {
	return fmt.Sprintf("**%s**: `%s`\n", label, value)
}

func (f *ResponseFormatter) Usage(command string) string {
	return "**Usage**: `" + command + "`\n"
}

func (f *ResponseFormatter) Examples(examples []string) string {
	lines := make([]string, 0, len(examples)+1)
	lines = append(lines, "**Examples**:")
	for _, ex := range examples {
		lines = append(lines, "`"+ex+"`")
	}
	return strings.Join(lines, "\n") + "\n"
}

// List prefixes items with a guillemet; Telegram drops <ul> markup.
func (f *ResponseFormatter) List(items []string) string {
	var sb strings.Builder
	for _, item := range items {
		sb.WriteString("› " + item + "\n")
	}
	return sb.String()
}

func (f *ResponseFormatter) Tip(text string) string {
	return "_" + text + "_\n"
}

func (f *ResponseFormatter) Combine(sections ...string) string {
	return strings.Join(sections, "\n")
}
