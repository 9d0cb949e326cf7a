package gemini

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	"google.golang.org/genai"
)

const testModel = "gemini-test"

type scriptedReply struct {
	resp *genai.GenerateContentResponse
	err  error
}

// scriptedChats hands out one chat per Create call, each answering with the next reply.
type scriptedChats struct {
	mu      sync.Mutex
	replies []scriptedReply
	configs []*genai.GenerateContentConfig
	sent    [][]string
}

type scriptedChat struct {
	owner *scriptedChats
	index int
	reply scriptedReply
}

func (c *scriptedChat) SendMessage(_ context.Context, parts ...genai.Part) (*genai.GenerateContentResponse, error) {
	c.owner.mu.Lock()
	defer c.owner.mu.Unlock()
	for _, part := range parts {
		c.owner.sent[c.index] = append(c.owner.sent[c.index], part.Text)
	}
	return c.reply.resp, c.reply.err
}

func (s *scriptedChats) Create(_ context.Context, model string, config *genai.GenerateContentConfig, _ []*genai.Content) (chatSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if model != testModel {
		return nil, errors.New("unexpected model " + model)
	}
	if len(s.configs) >= len(s.replies) {
		return nil, errors.New("unexpected call")
	}
	s.configs = append(s.configs, config)
	s.sent = append(s.sent, nil)
	index := len(s.configs) - 1
	return &scriptedChat{owner: s, index: index, reply: s.replies[index]}, nil
}

func textReply(text string) scriptedReply {
	return scriptedReply{resp: &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{Content: &genai.Content{Parts: []*genai.Part{{Text: text}}}}},
	}}
}

func errorReply(code int, message string) scriptedReply {
	return scriptedReply{err: genai.APIError{Code: code, Message: message}}
}

func withoutSleep(t *testing.T) *[]time.Duration {
	t.Helper()
	var slept []time.Duration
	original := sleep
	sleep = func(d time.Duration) { slept = append(slept, d) }
	t.Cleanup(func() { sleep = original })
	return &slept
}

// The retry tests swap the package-level sleep and therefore do not run in parallel.
func TestGeneratorRetries(t *testing.T) {
	tests := []struct {
		name       string
		maxRetries int
		replies    []scriptedReply
		expect     string
		wantErr    bool
		calls      int
		slept      []time.Duration
	}{
		{
			name:       "first reply wins",
			maxRetries: 3,
			replies:    []scriptedReply{textReply(`{"chat_summary": "ok"}`)},
			expect:     `{"chat_summary": "ok"}`,
			calls:      1,
		},
		{
			name:       "server error is retried with backoff",
			maxRetries: 3,
			replies: []scriptedReply{
				errorReply(http.StatusInternalServerError, ""),
				errorReply(http.StatusServiceUnavailable, ""),
				textReply("shortlist ready"),
			},
			expect: "shortlist ready",
			calls:  3,
			slept:  []time.Duration{2 * time.Second, 4 * time.Second},
		},
		{
			name:       "retries exhausted",
			maxRetries: 2,
			replies: []scriptedReply{
				errorReply(http.StatusInternalServerError, ""),
				errorReply(http.StatusInternalServerError, ""),
			},
			wantErr: true,
			calls:   2,
			slept:   []time.Duration{2 * time.Second},
		},
		{
			name:       "quota hint is honoured",
			maxRetries: 2,
			replies: []scriptedReply{
				errorReply(http.StatusTooManyRequests, "Please retry in 1.5s."),
				textReply("after quota"),
			},
			expect: "after quota",
			calls:  2,
			slept:  []time.Duration{1500 * time.Millisecond},
		},
		{
			name:       "long quota delay is not retried",
			maxRetries: 3,
			replies:    []scriptedReply{errorReply(http.StatusTooManyRequests, "quota exhausted, retry after 60 seconds")},
			wantErr:    true,
			calls:      1,
		},
		{
			name:       "invalid request is not retried",
			maxRetries: 3,
			replies:    []scriptedReply{errorReply(http.StatusBadRequest, "")},
			wantErr:    true,
			calls:      1,
		},
		{
			name:       "empty reply is an error",
			maxRetries: 1,
			replies:    []scriptedReply{{resp: &genai.GenerateContentResponse{}}},
			wantErr:    true,
			calls:      1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			slept := withoutSleep(t)
			chats := &scriptedChats{replies: tt.replies}
			g := &Generator{chats: chats, model: testModel, maxRetries: tt.maxRetries, logger: zap.NewNop()}

			got, err := g.GenerateContent(context.Background(), "You are a legal recruiter.", "Rank these attorneys.")
			if tt.wantErr != (err != nil) {
				t.Fatalf("unexpected error state: %v", err)
			}
			if got != tt.expect {
				t.Fatalf("expected %q, got %q", tt.expect, got)
			}
			if len(chats.configs) != tt.calls {
				t.Fatalf("expected %d calls, got %d", tt.calls, len(chats.configs))
			}
			if diff := cmp.Diff(tt.slept, *slept); diff != "" {
				t.Fatalf("unexpected backoff (-want +got):\n%s", diff)
			}

			for i, config := range chats.configs {
				if config.SystemInstruction == nil || config.SystemInstruction.Parts[0].Text != "You are a legal recruiter." {
					t.Fatalf("call %d: system instruction not set", i)
				}
				if config.Temperature == nil || *config.Temperature != 0 {
					t.Fatalf("call %d: expected deterministic temperature", i)
				}
				if diff := cmp.Diff([]string{"Rank these attorneys."}, chats.sent[i]); diff != "" {
					t.Fatalf("call %d: unexpected messages (-want +got):\n%s", i, diff)
				}
			}
		})
	}
}

func TestGeneratorLogsRetries(t *testing.T) {
	withoutSleep(t)
	core, logs := observer.New(zapcore.DebugLevel)
	chats := &scriptedChats{replies: []scriptedReply{
		errorReply(http.StatusBadGateway, ""),
		textReply("ok"),
	}}
	g := &Generator{chats: chats, model: testModel, maxRetries: 2, logger: zap.New(core)}

	if _, err := g.GenerateContent(context.Background(), "", "Rank these attorneys."); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if logs.FilterLevelExact(zapcore.WarnLevel).Len() == 0 {
		t.Fatalf("expected the transient failure to be logged, got %+v", logs.All())
	}
	if chats.configs[0].SystemInstruction != nil {
		t.Fatalf("blank system instruction must be omitted")
	}
}

func TestGeneratorRejectsBadInput(t *testing.T) {
	t.Parallel()

	g := &Generator{chats: &scriptedChats{}, model: testModel}
	if _, err := g.GenerateContent(context.Background(), "sys", "   "); err == nil {
		t.Fatal("expected error for empty message")
	}

	var uninitialized *Generator
	if _, err := uninitialized.GenerateContent(context.Background(), "sys", "msg"); err == nil {
		t.Fatal("expected error for nil generator")
	}
}

func TestRetryDelay(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		err     error
		attempt int
		delay   time.Duration
		retry   bool
	}{
		{name: "server error backs off", err: genai.APIError{Code: http.StatusServiceUnavailable}, attempt: 2, delay: 4 * time.Second, retry: true},
		{name: "short quota hint", err: genai.APIError{Code: http.StatusTooManyRequests, Message: "Please retry in 1.5s."}, attempt: 1, delay: 1500 * time.Millisecond, retry: true},
		{name: "quota without hint", err: genai.APIError{Code: http.StatusTooManyRequests}, attempt: 1, delay: 2 * time.Second, retry: true},
		{name: "long quota hint", err: genai.APIError{Code: http.StatusTooManyRequests, Message: "retry after 60 seconds"}, attempt: 1},
		{name: "not found", err: genai.APIError{Code: http.StatusNotFound}, attempt: 1},
		{name: "plain error", err: errors.New("boom"), attempt: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			delay, retry := retryDelay(tt.err, tt.attempt)
			if retry != tt.retry || delay != tt.delay {
				t.Fatalf("retryDelay() = (%v, %v), want (%v, %v)", delay, retry, tt.delay, tt.retry)
			}
		})
	}
}
