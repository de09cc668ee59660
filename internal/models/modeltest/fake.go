// Package modeltest provides a scripted model.LLM for tests.
package modeltest

import (
	"context"
	"iter"
	"sync"

	"google.golang.org/adk/model"
	"google.golang.org/genai"
)

// FakeLLM replays queued responses and records every request it receives.
type FakeLLM struct {
	mu        sync.Mutex
	responses []*model.LLMResponse
	errs      []error
	Requests  []*model.LLMRequest
	// Err, when set, is returned for every call once the queue is drained.
	Err error
}

// NewText returns a fake that answers every call with text.
func NewText(text string) *FakeLLM {
	f := &FakeLLM{}
	f.PushText(text)
	return f
}

// PushText queues a model response made of a single text part.
func (f *FakeLLM) PushText(text string) {
	f.Push(&model.LLMResponse{Content: genai.NewContentFromText(text, genai.RoleModel), TurnComplete: true})
}

// PushFunctionCall queues a response carrying one function call.
func (f *FakeLLM) PushFunctionCall(name string, args map[string]any) {
	f.Push(&model.LLMResponse{
		Content: &genai.Content{
			Role:  string(genai.RoleModel),
			Parts: []*genai.Part{{FunctionCall: &genai.FunctionCall{Name: name, Args: args}}},
		},
		TurnComplete: true,
	})
}

// Push queues a raw response.
func (f *FakeLLM) Push(resp *model.LLMResponse) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.responses = append(f.responses, resp)
	f.errs = append(f.errs, nil)
}

// PushError queues a failing call.
func (f *FakeLLM) PushError(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.responses = append(f.responses, nil)
	f.errs = append(f.errs, err)
}

// Calls reports how many requests were made.
func (f *FakeLLM) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.Requests)
}

// LastRequest returns the most recent request or nil.
func (f *FakeLLM) LastRequest() *model.LLMRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.Requests) == 0 {
		return nil
	}
	return f.Requests[len(f.Requests)-1]
}

func (f *FakeLLM) Name() string { return "fake" }

func (f *FakeLLM) GenerateContent(ctx context.Context, req *model.LLMRequest, stream bool) iter.Seq2[*model.LLMResponse, error] {
	return func(yield func(*model.LLMResponse, error) bool) {
		f.mu.Lock()
		f.Requests = append(f.Requests, req)
		if len(f.responses) == 0 {
			err := f.Err
			f.mu.Unlock()
			if err == nil {
				err = context.DeadlineExceeded
			}
			yield(nil, err)
			return
		}
		resp, err := f.responses[0], f.errs[0]
		// The last scripted answer sticks so repeated calls stay deterministic.
		if len(f.responses) > 1 {
			f.responses, f.errs = f.responses[1:], f.errs[1:]
		}
		f.mu.Unlock()
		yield(resp, err)
	}
}
