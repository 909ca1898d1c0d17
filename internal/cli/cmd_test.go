package cli

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/alexanderramin/moodflix/internal/service"
	"github.com/alexanderramin/moodflix/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// echoEngine answers every message with a recommendation except "chau".
type echoEngine struct {
	users []string
	texts []string
	err   error
}

func (e *echoEngine) HandleMessage(_ context.Context, userID, text string) (*service.Reply, error) {
	if e.err != nil {
		return nil, e.err
	}
	e.users = append(e.users, userID)
	e.texts = append(e.texts, text)
	if text == "chau" {
		return &service.Reply{Kind: service.ReplyFarewell, Text: "¡Gracias por usar el bot!"}, nil
	}
	return &service.Reply{Kind: service.ReplyRecommendation, Text: "eco: " + text}, nil
}

func execute(t *testing.T, app *App, stdin string, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd(app)
	var out bytes.Buffer
	root.SetIn(strings.NewReader(stdin))
	root.SetOut(&out)
	root.SetErr(io.Discard)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestChatCmd_ProcessesLinesUntilEOF(t *testing.T) {
	engine := &echoEngine{}
	app := &App{Chat: engine}

	out, err := execute(t, app, "hola\n\n  otra  \n", "chat", "--user", "ana")

	require.NoError(t, err)
	assert.Equal(t, []string{"hola", "otra"}, engine.texts, "blank lines are skipped and text trimmed")
	assert.Equal(t, []string{"ana", "ana"}, engine.users)
	assert.Contains(t, out, "eco: hola")
	assert.Contains(t, out, "eco: otra")
	assert.NotContains(t, out, "vos ›", "no prompt when not interactive")
}

func TestChatCmd_StopsOnFarewell(t *testing.T) {
	engine := &echoEngine{}
	app := &App{Chat: engine}

	out, err := execute(t, app, "hola\nchau\nignorado\n", "chat")

	require.NoError(t, err)
	assert.Equal(t, []string{"hola", "chau"}, engine.texts)
	assert.Equal(t, defaultLocalUser, engine.users[0])
	assert.Contains(t, out, "Gracias por usar el bot")
}

func TestChatCmd_InteractiveShowsPrompt(t *testing.T) {
	app := &App{Chat: &echoEngine{}, IsInteractive: func() bool { return true }}

	out, err := execute(t, app, "hola\n", "chat")

	require.NoError(t, err)
	assert.Contains(t, out, "vos ›")
	assert.Contains(t, out, `"chau" para salir`)
}

func TestChatCmd_EngineError(t *testing.T) {
	app := &App{Chat: &echoEngine{err: errors.New("store closed")}}

	_, err := execute(t, app, "hola\n", "chat")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "store closed")
}

func TestHistoryCmd_ListsStoredTurns(t *testing.T) {
	history := service.NewHistoryService(testutil.NewTestDB(t), 0, nil)
	ctx := context.Background()
	now := time.Date(2025, 1, 1, 13, 0, 0, 0, time.UTC)
	require.NoError(t, history.RecordTurn(ctx, *testutil.NewTestTurn("ana", "quiero algo de terror",
		testutil.WithTurnTime(now.Add(-5*time.Minute)), testutil.WithReplyKind("question"))))
	require.NoError(t, history.RecordTurn(ctx, *testutil.NewTestTurn("otro", "no deberia verse")))

	app := &App{History: history, Now: func() time.Time { return now }}
	out, err := execute(t, app, "", "history", "--user", "ana", "--limit", "5")

	require.NoError(t, err)
	assert.Contains(t, out, "quiero algo de terror")
	assert.Contains(t, out, "5m ago")
	assert.NotContains(t, out, "no deberia verse")
}

func TestHistoryCmd_Empty(t *testing.T) {
	history := service.NewHistoryService(testutil.NewTestDB(t), 0, nil)
	app := &App{History: history}

	out, err := execute(t, app, "", "history", "--user", "nadie")

	require.NoError(t, err)
	assert.Contains(t, out, "No turns recorded.")
}

func TestHistoryCmd_Unavailable(t *testing.T) {
	_, err := execute(t, &App{}, "", "history")
	assert.Error(t, err)
}

func TestServe_ServesUntilCancelled(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	started := make(chan struct{})
	app := &App{
		Handler: http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusTeapot)
		}),
		Background: func(ctx context.Context) {
			close(started)
			<-ctx.Done()
		},
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- serve(ctx, app, ln) }()

	select {
	case <-started:
	case <-time.After(2 * time.Second):
		t.Fatal("background task did not start")
	}

	resp, err := http.Get("http://" + ln.Addr().String() + "/")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusTeapot, resp.StatusCode)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}

func TestServeCmd_RequiresHandler(t *testing.T) {
	_, err := execute(t, &App{}, "", "serve")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not configured")
}

var _ HistoryLister = (*service.HistoryService)(nil)
