package generation

import (
	"regexp"
	"strings"
)

const (
	systemTag    = "<|system|>"
	userTag      = "<|user|>"
	assistantTag = "<|assistant|>"
)

// roleLabel matches a fabricated dialogue turn such as "User:" or "Assistant：".
var roleLabel = regexp.MustCompile(`(?i)\b(human|user|assistant|system)\s*[:：]`)

// Instruction is one generation request. Context is optional.
type Instruction struct {
	System  string
	Context string
	User    string
}

// BuildPrompt renders the instruction in the chat-template form the model was tuned on.
func BuildPrompt(in Instruction) string {
	var sb strings.Builder
	sb.WriteString(systemTag + " " + in.System + "\n")
	if in.Context != "" {
		sb.WriteString("Context: " + in.Context + "\n")
	}
	sb.WriteString(userTag + " " + in.User + "\n")
	sb.WriteString(assistantTag)
	return sb.String()
}

// Clean keeps the text after the last assistant marker and cuts it at the
// first role label the model invents.
func Clean(raw string) string {
	if i := strings.LastIndex(raw, assistantTag); i >= 0 {
		raw = raw[i+len(assistantTag):]
	}
	if loc := roleLabel.FindStringIndex(raw); loc != nil {
		raw = raw[:loc[0]]
	}
	return strings.TrimSpace(raw)
}
