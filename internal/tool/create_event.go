// Package tool declares the functions the dialogue model may call.
package tool

import (
	"fmt"
	"strings"

	"github.com/google/jsonschema-go/jsonschema"
	"google.golang.org/genai"

	"github.com/easeaico/shadow/internal/types"
)

const (
	CreateEventToolName        = "create_event_tool"
	createEventToolDescription = "Creates a calendar event for the user. Call it only when a title, a date and a time are known."
)

// CreateEventArgs are the decoded arguments of a create_event_tool call.
type CreateEventArgs struct {
	Title string
	Date  string
	Time  string
	Type  string
}

// Missing lists the required arguments that are empty.
func (a CreateEventArgs) Missing() []string {
	var missing []string
	if a.Title == "" {
		missing = append(missing, "title")
	}
	if a.Date == "" {
		missing = append(missing, "date")
	}
	if a.Time == "" {
		missing = append(missing, "time")
	}
	return missing
}

// CreateEventDeclaration returns the function declaration bound to dialogue requests.
func CreateEventDeclaration() *genai.FunctionDeclaration {
	return &genai.FunctionDeclaration{
		Name:        CreateEventToolName,
		Description: createEventToolDescription,
		ParametersJsonSchema: &jsonschema.Schema{
			Type: "object",
			Properties: map[string]*jsonschema.Schema{
				"title": {Type: "string", Description: "Short name of the event."},
				"date":  {Type: "string", Description: "Event date as YYYY-MM-DD."},
				"time":  {Type: "string", Description: "Event time as HH:MM AM/PM."},
				"event_type": {
					Type:        "string",
					Description: "Work or Personal.",
					Enum:        []any{types.EventTypeWork, types.EventTypePersonal},
				},
			},
			Required: []string{"title", "date", "time"},
		},
	}
}

// Tools wraps the declarations for a request config.
func Tools() []*genai.Tool {
	return []*genai.Tool{{FunctionDeclarations: []*genai.FunctionDeclaration{CreateEventDeclaration()}}}
}

// ParseCreateEventArgs reads the call arguments. The event type is normalized
// to Work or Personal.
func ParseCreateEventArgs(args map[string]any) CreateEventArgs {
	return CreateEventArgs{
		Title: argString(args, "title"),
		Date:  argString(args, "date"),
		Time:  argString(args, "time"),
		Type:  types.NormalizeEventType(argString(args, "event_type")),
	}
}

func argString(args map[string]any, key string) string {
	switch v := args[key].(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(v)
	default:
		return strings.TrimSpace(fmt.Sprint(v))
	}
}
