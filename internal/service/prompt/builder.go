// Package prompt builds the instructions sent to the completion model.
package prompt

import (
	"github.com/MakeNowJust/heredoc/v2"

	"github.com/zlang-app/zlang/internal/model"
)

// SystemPersona fixes the assistant's behavior for every request
const SystemPersona = "You are ZLang, a specialized AI translator for Gen Z language. " +
	"Be creative, accurate, and maintain the vibe while translating."

// Role is a chat message role
type Role string

// Chat message roles
const (
	RoleSystem Role = "system"
	RoleUser   Role = "user"
)

// Message is one entry of the chat exchange
type Message struct {
	Role    Role
	Content string
}

// templates holds one instruction per direction. Each is formatted with
// (language name, language name, text) and must end by restricting the model
// to the converted text only, which the client relies on when parsing.
var templates = map[model.Direction]string{
	model.DirectionToGenZ: `
		You are a Gen Z translator. Convert the following normal %[1]s text into Gen Z slang while maintaining the core meaning. Make it sound natural, trendy, and authentic. Add appropriate emojis where suitable. Keep the response in %[1]s.

		Text to convert: "%[2]s"

		Provide only the Gen Z translation, nothing else.`,
	model.DirectionToNormal: `
		You are a professional language translator. Convert the following Gen Z slang text into clear, professional %[1]s while maintaining the original meaning and intent. Make it suitable for formal or academic contexts.

		Gen Z text: "%[2]s"

		Provide only the professional translation, nothing else.`,
}

// BuildInstruction returns the user instruction for converting text
func BuildInstruction(text string, direction model.Direction, language model.Language) string {
	tpl, ok := templates[direction]
	if !ok {
		tpl = templates[model.DirectionToGenZ]
	}
	return heredoc.Docf(tpl, language.DisplayName(), text)
}

// BuildMessages returns the fixed system + user exchange for one request
func BuildMessages(text string, direction model.Direction, language model.Language) []Message {
	return []Message{
		{Role: RoleSystem, Content: SystemPersona},
		{Role: RoleUser, Content: BuildInstruction(text, direction, language)},
	}
}
