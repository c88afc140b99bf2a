package cli

import (
	"bytes"
	"context"
	"net/http"
	"testing"

	"github.com/dmitrijs2005/taskkeeper/internal/client/client"
	"github.com/dmitrijs2005/taskkeeper/internal/client/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loggedInApp(t *testing.T, api *fakeClient) (*App, *bytes.Buffer) {
	t.Helper()
	a, out := newTestApp(api)
	a.startSession(okAuth())
	return a, out
}

func TestTaskCommands_RequireLogin(t *testing.T) {
	api := &fakeClient{}
	a, out := newTestApp(api)
	ctx := context.Background()

	require.ErrorIs(t, a.List(ctx), client.ErrNotLoggedIn)
	require.ErrorIs(t, a.Add(ctx, []string{"x"}), client.ErrNotLoggedIn)
	require.ErrorIs(t, a.Done(ctx, []string{"1"}), client.ErrNotLoggedIn)
	require.ErrorIs(t, a.Delete(ctx, []string{"1"}), client.ErrNotLoggedIn)
	assert.Empty(t, api.userIDs)
	assert.Contains(t, out.String(), "Please login first")
}

func TestList_PrintsTasks(t *testing.T) {
	desc := "2 litres"
	api := &fakeClient{tasks: []models.Task{
		{ID: 1, Title: "buy milk", Description: &desc},
		{ID: 2, Title: "call mom", Completed: true},
	}}
	a, out := loggedInApp(t, api)

	require.NoError(t, a.List(context.Background()))
	assert.Equal(t, []string{"u-1"}, api.userIDs)
	assert.Contains(t, out.String(), "[ ] 1  buy milk (2 litres)")
	assert.Contains(t, out.String(), "[x] 2  call mom")
}

func TestList_Empty(t *testing.T) {
	a, out := loggedInApp(t, &fakeClient{})
	require.NoError(t, a.List(context.Background()))
	assert.Contains(t, out.String(), "No tasks")
}

func TestAdd_TitleFromArgs(t *testing.T) {
	stubInputs(t, []string{""}, nil)
	api := &fakeClient{}
	a, out := loggedInApp(t, api)

	require.NoError(t, a.Add(context.Background(), []string{"buy", "milk"}))
	assert.Equal(t, models.NewTask{Title: "buy milk", UserID: "u-1"}, api.created)
	assert.Contains(t, out.String(), "Added [ ] 1  buy milk")
}

func TestAdd_PromptsForTitleAndDescription(t *testing.T) {
	stubInputs(t, []string{"call mom", "sunday"}, nil)
	api := &fakeClient{}
	a, _ := loggedInApp(t, api)

	require.NoError(t, a.Add(context.Background(), nil))
	assert.Equal(t, "call mom", api.created.Title)
	require.NotNil(t, api.created.Description)
	assert.Equal(t, "sunday", *api.created.Description)
}

func TestDone_TogglesTask(t *testing.T) {
	api := &fakeClient{}
	a, out := loggedInApp(t, api)

	require.NoError(t, a.Done(context.Background(), []string{"7"}))
	assert.Equal(t, int64(7), api.toggledID)
	assert.Contains(t, out.String(), "[x] 7  t")
}

func TestDelete_BadID(t *testing.T) {
	api := &fakeClient{}
	a, out := loggedInApp(t, api)

	for _, args := range [][]string{nil, {"abc"}, {"0"}, {"1", "2"}} {
		require.ErrorIs(t, a.Delete(context.Background(), args), errUsageID)
	}
	assert.Empty(t, api.userIDs)
	assert.Contains(t, out.String(), "usage: <command> <task id>")
}

func TestDelete_Success(t *testing.T) {
	api := &fakeClient{}
	a, out := loggedInApp(t, api)

	require.NoError(t, a.Delete(context.Background(), []string{"4"}))
	assert.Equal(t, int64(4), api.deletedID)
	assert.Contains(t, out.String(), "Deleted task 4")
}

func TestUnauthorizedEndsSession(t *testing.T) {
	api := &fakeClient{taskErr: &client.APIError{Status: http.StatusUnauthorized, Detail: "Token has expired"}}
	a, out := loggedInApp(t, api)

	require.Error(t, a.List(context.Background()))
	assert.False(t, a.isLoggedIn())
	assert.True(t, api.loggedOut)
	assert.Contains(t, out.String(), "Error: Token has expired")
	assert.Contains(t, out.String(), "Session expired, please login again")
}

func TestNotFoundKeepsSession(t *testing.T) {
	api := &fakeClient{taskErr: &client.APIError{Status: http.StatusNotFound, Detail: "Task not found"}}
	a, out := loggedInApp(t, api)

	require.Error(t, a.Done(context.Background(), []string{"9"}))
	assert.True(t, a.isLoggedIn())
	assert.Contains(t, out.String(), "Error: Task not found")
}
