package models

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/jsonschema-go/jsonschema"
	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/shared"
	"google.golang.org/adk/model"
	"google.golang.org/genai"
)

// buildOpenAIParams converts an ADK request to chat completion parameters.
func buildOpenAIParams(req *model.LLMRequest, modelName string) *openai.ChatCompletionNewParams {
	params := openai.ChatCompletionNewParams{
		Model: req.Model,
	}
	if req.Model == "" {
		params.Model = modelName
	}

	var messages []openai.ChatCompletionMessageParamUnion
	if req.Config != nil && req.Config.SystemInstruction != nil {
		if text := contentText(req.Config.SystemInstruction); text != "" {
			messages = append(messages, openai.SystemMessage(text))
		}
	}
	messages = append(messages, convertContentsToMessages(req.Contents)...)
	if len(messages) > 0 {
		params.Messages = messages
	}

	if req.Config == nil {
		return &params
	}
	if req.Config.Temperature != nil {
		params.Temperature = openai.Float(float64(*req.Config.Temperature))
	}
	if req.Config.MaxOutputTokens > 0 {
		params.MaxTokens = openai.Int(int64(req.Config.MaxOutputTokens))
	}
	if req.Config.TopP != nil {
		params.TopP = openai.Float(float64(*req.Config.TopP))
	}
	// Structured output is requested as a JSON object; the schema itself is
	// restated in the instruction and validated by the caller.
	if req.Config.ResponseMIMEType == "application/json" {
		params.ResponseFormat = openai.ChatCompletionNewParamsResponseFormatUnion{
			OfJSONObject: &shared.ResponseFormatJSONObjectParam{},
		}
	}
	if len(req.Config.Tools) > 0 {
		if tools := convertToolsToOpenAI(req.Config.Tools); len(tools) > 0 {
			params.Tools = tools
		}
	}
	return &params
}

// convertToolsToOpenAI maps genai function declarations to OpenAI function tools.
func convertToolsToOpenAI(genaiTools []*genai.Tool) []openai.ChatCompletionToolUnionParam {
	var tools []openai.ChatCompletionToolUnionParam
	for _, t := range genaiTools {
		if t == nil {
			continue
		}
		for _, fn := range t.FunctionDeclarations {
			if fn == nil {
				continue
			}
			tools = append(tools, openai.ChatCompletionToolUnionParam{
				OfFunction: &openai.ChatCompletionFunctionToolParam{
					Function: openai.FunctionDefinitionParam{
						Name:        fn.Name,
						Description: openai.String(fn.Description),
						Parameters:  convertFunctionParameters(fn),
					},
				},
			})
		}
	}
	return tools
}

// convertFunctionParameters renders the declaration's JSON schema as a plain map.
func convertFunctionParameters(fn *genai.FunctionDeclaration) openai.FunctionParameters {
	switch schema := fn.ParametersJsonSchema.(type) {
	case *jsonschema.Schema:
		params, err := schemaToMap(schema)
		if err != nil {
			slog.Error("failed to convert function schema", "function", fn.Name, "error", err.Error())
			return nil
		}
		return params
	case map[string]any:
		return openai.FunctionParameters(schema)
	default:
		return openai.FunctionParameters{"type": "object", "properties": map[string]any{}}
	}
}

func schemaToMap(schema *jsonschema.Schema) (openai.FunctionParameters, error) {
	raw, err := json.Marshal(schema)
	if err != nil {
		return nil, fmt.Errorf("marshal schema: %w", err)
	}
	var params map[string]any
	if err := json.Unmarshal(raw, &params); err != nil {
		return nil, fmt.Errorf("unmarshal schema: %w", err)
	}
	if _, ok := params["type"]; !ok {
		params["type"] = "object"
	}
	return openai.FunctionParameters(params), nil
}

// convertContentsToMessages converts genai contents to chat messages.
// Inline images on user turns become image_url parts carrying a data URL.
func convertContentsToMessages(contents []*genai.Content) []openai.ChatCompletionMessageParamUnion {
	var messages []openai.ChatCompletionMessageParamUnion
	for _, content := range contents {
		if content == nil {
			continue
		}
		text := contentText(content)
		switch content.Role {
		case "model":
			messages = append(messages, openai.AssistantMessage(text))
		case "system":
			messages = append(messages, openai.SystemMessage(text))
		default:
			if parts := multimodalParts(content); parts != nil {
				messages = append(messages, openai.UserMessage(parts))
				continue
			}
			messages = append(messages, openai.UserMessage(text))
		}
	}
	return messages
}

func multimodalParts(content *genai.Content) []openai.ChatCompletionContentPartUnionParam {
	hasImage := false
	for _, part := range content.Parts {
		if part != nil && part.InlineData != nil {
			hasImage = true
			break
		}
	}
	if !hasImage {
		return nil
	}

	parts := make([]openai.ChatCompletionContentPartUnionParam, 0, len(content.Parts))
	for _, part := range content.Parts {
		switch {
		case part == nil:
		case part.Text != "":
			parts = append(parts, openai.TextContentPart(part.Text))
		case part.InlineData != nil:
			url := fmt.Sprintf("data:%s;base64,%s", part.InlineData.MIMEType, base64.StdEncoding.EncodeToString(part.InlineData.Data))
			parts = append(parts, openai.ImageContentPart(openai.ChatCompletionContentPartImageImageURLParam{URL: url}))
		}
	}
	return parts
}

func contentText(content *genai.Content) string {
	var sb strings.Builder
	for _, part := range content.Parts {
		if part != nil && part.Text != "" {
			sb.WriteString(part.Text)
		}
	}
	return sb.String()
}
