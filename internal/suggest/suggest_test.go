package suggest

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var march = time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

func TestStaticSourceFiltersMonth(t *testing.T) {
	src := StaticSource{Dates: []string{"2024-03-04", "2024-04-01", "2024-03-xx", "2024-03-18"}}

	got, err := src.Suggest(context.Background(), "c-1", march)
	require.NoError(t, err)
	assert.Equal(t, []string{"2024-03-04", "2024-03-18"}, got)
}

type fakeCompleter struct {
	reply  string
	err    error
	prompt string
}

func (f *fakeCompleter) Complete(_ context.Context, _ string, prompt string) (string, error) {
	f.prompt = prompt
	return f.reply, f.err
}

func TestGeminiSourceParsesReply(t *testing.T) {
	llm := &fakeCompleter{reply: "```json\n{\"dates\": [\"2024-03-05\", \"2024-05-01\"]}\n```"}
	src := &GeminiSource{llm: llm}

	got, err := src.Suggest(context.Background(), "c-9", march)
	require.NoError(t, err)
	assert.Equal(t, []string{"2024-03-05"}, got)
	assert.True(t, strings.Contains(llm.prompt, `"clinician_id":"c-9"`))
	assert.True(t, strings.Contains(llm.prompt, `"month":"2024-03"`))
}

func TestGeminiSourceErrors(t *testing.T) {
	_, err := (&GeminiSource{llm: &fakeCompleter{reply: "sure, here you go"}}).Suggest(context.Background(), "c-1", march)
	assert.ErrorContains(t, err, "decode gemini reply")

	_, err = (&GeminiSource{llm: &fakeCompleter{err: errors.New("quota")}}).Suggest(context.Background(), "c-1", march)
	assert.ErrorContains(t, err, "quota")

	_, err = NewGeminiSource(context.Background(), " ", "")
	assert.Error(t, err)
}

type countingSource struct {
	calls int
	dates []string
}

func (c *countingSource) Suggest(context.Context, string, time.Time) ([]string, error) {
	c.calls++
	return c.dates, nil
}

func TestCachedSource(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	next := &countingSource{dates: []string{"2024-03-07"}}
	src := NewCachedSource(next, client, time.Hour)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		got, err := src.Suggest(ctx, "c-1", march)
		require.NoError(t, err)
		assert.Equal(t, []string{"2024-03-07"}, got)
	}
	assert.Equal(t, 1, next.calls)

	_, err := src.Suggest(ctx, "c-2", march)
	require.NoError(t, err)
	assert.Equal(t, 2, next.calls)

	mr.FastForward(2 * time.Hour)
	_, err = src.Suggest(ctx, "c-1", march)
	require.NoError(t, err)
	assert.Equal(t, 3, next.calls)
}
