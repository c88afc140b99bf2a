package cli

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/taskkeeper/internal/client/client"
	"github.com/dmitrijs2005/taskkeeper/internal/client/models"
)

func (a *App) requireSession() error {
	if a.session == nil {
		a.printf("Please login first\n")
		return client.ErrNotLoggedIn
	}
	return nil
}

func (a *App) List(ctx context.Context) error {
	if err := a.requireSession(); err != nil {
		return err
	}
	list, err := a.api.ListTasks(ctx, a.session.userID)
	if err != nil {
		return a.fail(err)
	}
	if len(list) == 0 {
		a.printf("No tasks\n")
		return nil
	}
	for _, t := range list {
		a.printf("%s\n", formatTask(t))
	}
	return nil
}

// Add creates a task. The title comes from args when given, otherwise it is
// prompted for.
func (a *App) Add(ctx context.Context, args []string) error {
	if err := a.requireSession(); err != nil {
		return err
	}

	title := strings.Join(args, " ")
	if title == "" {
		var err error
		if title, err = getSimpleText(a.reader, "Enter title", a.out); err != nil {
			return a.fail(err)
		}
	}
	desc, err := getSimpleText(a.reader, "Enter description (optional)", a.out)
	if err != nil {
		return a.fail(err)
	}

	in := models.NewTask{Title: title, UserID: a.session.userID}
	if desc != "" {
		in.Description = &desc
	}

	t, err := a.api.CreateTask(ctx, a.session.userID, in)
	if err != nil {
		return a.fail(err)
	}
	a.printf("Added %s\n", formatTask(*t))
	return nil
}

// Done toggles the completion flag of the task given in args.
func (a *App) Done(ctx context.Context, args []string) error {
	if err := a.requireSession(); err != nil {
		return err
	}
	id, err := parseID(args)
	if err != nil {
		return a.fail(err)
	}
	t, err := a.api.ToggleTask(ctx, a.session.userID, id)
	if err != nil {
		return a.fail(err)
	}
	a.printf("%s\n", formatTask(*t))
	return nil
}

func (a *App) Delete(ctx context.Context, args []string) error {
	if err := a.requireSession(); err != nil {
		return err
	}
	id, err := parseID(args)
	if err != nil {
		return a.fail(err)
	}
	if err := a.api.DeleteTask(ctx, a.session.userID, id); err != nil {
		return a.fail(err)
	}
	a.printf("Deleted task %d\n", id)
	return nil
}

var errUsageID = errors.New("usage: <command> <task id>")

func parseID(args []string) (int64, error) {
	if len(args) != 1 {
		return 0, errUsageID
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil || id <= 0 {
		return 0, errUsageID
	}
	return id, nil
}

func formatTask(t models.Task) string {
	mark := " "
	if t.Completed {
		mark = "x"
	}
	s := "[" + mark + "] " + strconv.FormatInt(t.ID, 10) + "  " + t.Title
	if t.Description != nil && *t.Description != "" {
		s += " (" + *t.Description + ")"
	}
	return s
}
