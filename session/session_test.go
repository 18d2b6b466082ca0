package session

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gamana29/almika/faq"
	"github.com/gamana29/almika/llm"
	"github.com/gamana29/almika/memory"
)

// fakeClient scripts completion outcomes and records composed prompts.
type fakeClient struct {
	answer  string
	err     error
	prompts []string
}

func (f *fakeClient) Complete(ctx context.Context, prompt string, opts ...llm.Option) (string, error) {
	f.prompts = append(f.prompts, prompt)
	if f.err != nil {
		return "", f.err
	}
	return f.answer, nil
}

func (f *fakeClient) GetModel() string { return "fake-model" }

var testEntries = []faq.Entry{
	{Question: "How do I register?", Answer: "Through the portal."},
}

func newTestSession(t *testing.T, client llm.Client) (*Session, *memory.Store) {
	t.Helper()
	store, err := memory.NewStore(t.TempDir())
	require.NoError(t, err)
	return New(client, store, testEntries), store
}

func TestSession_InitialState(t *testing.T) {
	sess, _ := newTestSession(t, &fakeClient{answer: "hi"})

	assert.Equal(t, Anonymous, sess.State())
	assert.Empty(t, sess.Identity())
	assert.Empty(t, sess.History())
}

func TestSession_AskSuccessAppendsOneTurn(t *testing.T) {
	client := &fakeClient{answer: "Movement of water."}
	sess, _ := newTestSession(t, client)

	turn, err := sess.Ask(context.Background(), "What is osmosis?")
	require.NoError(t, err)
	assert.Equal(t, "What is osmosis?", turn.Question)
	assert.Equal(t, "Movement of water.", turn.Answer)

	history := sess.History()
	require.Len(t, history, 1)
	assert.Equal(t, turn, history[0])
}

func TestSession_AskFailureLeavesHistoryUnchanged(t *testing.T) {
	client := &fakeClient{err: fmt.Errorf("%w: connection refused", llm.ErrNetwork)}
	sess, store := newTestSession(t, client)

	require.NoError(t, sess.Login("a@b.com"))

	_, err := sess.Ask(context.Background(), "What is osmosis?")
	assert.ErrorIs(t, err, llm.ErrNetwork)
	assert.Empty(t, sess.History())

	// no save happened either
	loaded, err := store.Load("a@b.com")
	require.NoError(t, err)
	assert.Empty(t, loaded)
}

func TestSession_AskEmptyQuestion(t *testing.T) {
	sess, _ := newTestSession(t, &fakeClient{answer: "hi"})

	_, err := sess.Ask(context.Background(), "")
	assert.ErrorIs(t, err, ErrEmptyQuestion)
}

func TestSession_AskAnonymousDoesNotPersist(t *testing.T) {
	client := &fakeClient{answer: "An answer."}
	sess, store := newTestSession(t, client)

	_, err := sess.Ask(context.Background(), "What is osmosis?")
	require.NoError(t, err)

	// nothing on disk for any identity
	loaded, err := store.Load("a@b.com")
	require.NoError(t, err)
	assert.Empty(t, loaded)
}

func TestSession_LoginReplacesAnonymousHistory(t *testing.T) {
	client := &fakeClient{answer: "An answer."}
	sess, store := newTestSession(t, client)

	_, err := sess.Ask(context.Background(), "anonymous question")
	require.NoError(t, err)
	require.Len(t, sess.History(), 1)

	require.NoError(t, store.Save("a@b.com", []memory.Turn{
		{Question: "old question", Answer: "old answer"},
	}))

	require.NoError(t, sess.Login("a@b.com"))
	assert.Equal(t, Identified, sess.State())

	history := sess.History()
	require.Len(t, history, 1)
	assert.Equal(t, "old question", history[0].Question)
}

func TestSession_LoginInvalidIdentityKeepsState(t *testing.T) {
	client := &fakeClient{answer: "An answer."}
	sess, _ := newTestSession(t, client)

	_, err := sess.Ask(context.Background(), "anonymous question")
	require.NoError(t, err)

	err = sess.Login("../sneaky")
	assert.ErrorIs(t, err, memory.ErrInvalidIdentity)

	assert.Equal(t, Anonymous, sess.State())
	assert.Len(t, sess.History(), 1)
}

func TestSession_LogoutClearsHistoryWithoutPersisting(t *testing.T) {
	client := &fakeClient{answer: "An answer."}
	sess, store := newTestSession(t, client)

	require.NoError(t, sess.Login("a@b.com"))
	_, err := sess.Ask(context.Background(), "What is osmosis?")
	require.NoError(t, err)

	sess.Logout()
	assert.Equal(t, Anonymous, sess.State())
	assert.Empty(t, sess.History())

	// the last save remains the durable record
	loaded, err := store.Load("a@b.com")
	require.NoError(t, err)
	require.Len(t, loaded, 1)
	assert.Equal(t, "What is osmosis?", loaded[0].Question)
}

func TestSession_FirstTimeIdentityScenario(t *testing.T) {
	client := &fakeClient{answer: "An answer."}
	sess, store := newTestSession(t, client)

	loaded, err := store.Load("a@b.com")
	require.NoError(t, err)
	assert.Empty(t, loaded)

	require.NoError(t, sess.Login("a@b.com"))

	turn, err := sess.Ask(context.Background(), "What is osmosis?")
	require.NoError(t, err)

	loaded, err = store.Load("a@b.com")
	require.NoError(t, err)
	require.Len(t, loaded, 1)
	assert.Equal(t, turn, loaded[0])
}

func TestSession_DocumentContext(t *testing.T) {
	client := &fakeClient{answer: "Grounded answer."}
	sess, _ := newTestSession(t, client)

	sess.SetDocument("The mitochondria is the powerhouse of the cell.")
	_, err := sess.Ask(context.Background(), "What does this document say?")
	require.NoError(t, err)

	require.Len(t, client.prompts, 1)
	assert.Contains(t, client.prompts[0], "Based on the following PDF content")
	assert.Contains(t, client.prompts[0], "mitochondria")

	// the second upload replaces the first wholesale
	sess.SetDocument("Completely different text.")
	_, err = sess.Ask(context.Background(), "And now?")
	require.NoError(t, err)
	assert.NotContains(t, client.prompts[1], "mitochondria")
	assert.Contains(t, client.prompts[1], "Completely different text.")
}

func TestSession_LongDocumentTruncatedInPrompt(t *testing.T) {
	client := &fakeClient{answer: "ok"}
	sess, _ := newTestSession(t, client)

	sess.SetDocument(strings.Repeat("x", 5000))
	_, err := sess.Ask(context.Background(), "Summarize.")
	require.NoError(t, err)

	require.Len(t, client.prompts, 1)
	assert.Contains(t, client.prompts[0], strings.Repeat("x", 3000))
	assert.NotContains(t, client.prompts[0], strings.Repeat("x", 3001))
}

func TestSession_HistoryIsACopy(t *testing.T) {
	client := &fakeClient{answer: "An answer."}
	sess, _ := newTestSession(t, client)

	_, err := sess.Ask(context.Background(), "What is osmosis?")
	require.NoError(t, err)

	history := sess.History()
	history[0].Answer = "tampered"

	assert.Equal(t, "An answer.", sess.History()[0].Answer)
}

func TestSession_ClassifiedErrorsPropagate(t *testing.T) {
	for _, sentinel := range []error{llm.ErrAuth, llm.ErrRateLimited, llm.ErrMalformedResponse} {
		client := &fakeClient{err: fmt.Errorf("%w: upstream", sentinel)}
		sess, _ := newTestSession(t, client)

		_, err := sess.Ask(context.Background(), "What is osmosis?")
		assert.True(t, errors.Is(err, sentinel))
		assert.Empty(t, sess.History())
	}
}
