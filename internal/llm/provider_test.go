package llm

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeProvider returns a canned reply or error and records calls.
type fakeProvider struct {
	name     string
	reply    string
	err      error
	calls    int
	messages []Message
}

func (f *fakeProvider) Name() string  { return f.name }
func (f *fakeProvider) Model() string { return f.name + "-model" }

func (f *fakeProvider) Complete(ctx context.Context, messages []Message, cfg GenerationConfig) (string, error) {
	f.calls++
	f.messages = messages
	if f.err != nil {
		return "", f.err
	}
	return f.reply, nil
}

func TestChain_Complete_FirstProviderSucceeds(t *testing.T) {
	primary := &fakeProvider{name: "primary", reply: "answer"}
	fallback := &fakeProvider{name: "fallback", reply: "unused"}
	chain := NewChain([]Provider{primary, fallback}, nil)

	reply, err := chain.Complete(context.Background(), []Message{{Role: "user", Content: "hi"}}, GenerationConfig{})

	require.NoError(t, err)
	assert.Equal(t, "answer", reply)
	assert.Equal(t, 1, primary.calls)
	assert.Equal(t, 0, fallback.calls, "fallback must not be touched on success")
}

func TestChain_Complete_FallsBackInOrder(t *testing.T) {
	primary := &fakeProvider{name: "primary", err: errors.New("timeout")}
	fallback := &fakeProvider{name: "fallback", reply: "rescued"}
	chain := NewChain([]Provider{primary, fallback}, nil)

	reply, err := chain.Complete(context.Background(), []Message{{Role: "user", Content: "hi"}}, GenerationConfig{})

	require.NoError(t, err)
	assert.Equal(t, "rescued", reply)
	assert.Equal(t, 1, primary.calls)
	assert.Equal(t, 1, fallback.calls)
}

func TestChain_Complete_AllFail(t *testing.T) {
	primary := &fakeProvider{name: "primary", err: errors.New("timeout")}
	fallback := &fakeProvider{name: "fallback", err: errors.New("rate limited")}
	chain := NewChain([]Provider{primary, fallback}, nil)

	_, err := chain.Complete(context.Background(), nil, GenerationConfig{})

	assert.ErrorIs(t, err, ErrAllProvidersFailed)
	assert.ErrorContains(t, err, "rate limited")
}

func TestChain_Complete_EmptyChain(t *testing.T) {
	chain := NewChain(nil, nil)

	_, err := chain.Complete(context.Background(), nil, GenerationConfig{})
	assert.ErrorIs(t, err, ErrAllProvidersFailed)
}

func TestChain_Complete_NotifiesEveryAttempt(t *testing.T) {
	primary := &fakeProvider{name: "primary", err: errors.New("boom")}
	fallback := &fakeProvider{name: "fallback", reply: "fine"}

	var attempts []Attempt
	chain := NewChain([]Provider{primary, fallback}, func(a Attempt) {
		attempts = append(attempts, a)
	})

	_, err := chain.Complete(context.Background(), []Message{{Role: "user", Content: "hello there"}}, GenerationConfig{})
	require.NoError(t, err)

	require.Len(t, attempts, 2)
	assert.Equal(t, "primary", attempts[0].Provider)
	assert.Error(t, attempts[0].Err)
	assert.Zero(t, attempts[0].CompletionTokens)

	assert.Equal(t, "fallback", attempts[1].Provider)
	assert.NoError(t, attempts[1].Err)
	assert.Equal(t, EstimateTokens("fine"), attempts[1].CompletionTokens)
	assert.Equal(t, EstimateTokens("hello there"), attempts[1].PromptTokens)
}

func TestEstimateTokens(t *testing.T) {
	assert.Equal(t, 0, EstimateTokens(""))
	assert.Equal(t, 1, EstimateTokens("abc"))
	assert.Equal(t, 1, EstimateTokens("abcd"))
	assert.Equal(t, 2, EstimateTokens("abcde"))
}
