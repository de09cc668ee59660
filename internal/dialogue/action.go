package dialogue

import (
	"fmt"
	"strings"

	"google.golang.org/genai"

	"github.com/easeaico/shadow/internal/tool"
	"github.com/easeaico/shadow/internal/utils"
)

// Action is what the generator decided to do with a turn.
// It is either Answer or ScheduleEvent.
type Action interface {
	isAction()
}

// Answer is a plain text reply.
type Answer struct {
	Text string
}

// ScheduleEvent asks for a calendar event to be created.
type ScheduleEvent struct {
	tool.CreateEventArgs
}

func (Answer) isAction()        {}
func (ScheduleEvent) isAction() {}

// decodeAction maps generator content onto an Action. A create_event_tool
// call wins over any text in the same content.
func decodeAction(content *genai.Content) (Action, error) {
	if call := utils.FirstFunctionCall(content); call != nil {
		if call.Name == tool.CreateEventToolName {
			return ScheduleEvent{tool.ParseCreateEventArgs(call.Args)}, nil
		}
	}
	text := strings.TrimSpace(utils.ExtractContentText(content))
	if text == "" {
		return nil, fmt.Errorf("generator returned no text")
	}
	return Answer{Text: text}, nil
}
