package cli

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"todo-webapp/internal/client"
	"todo-webapp/internal/models"
)

// API is the client surface the subcommands use.
type API interface {
	List(ctx context.Context) ([]models.Todo, error)
	Get(ctx context.Context, id int) (*models.Todo, error)
	Create(ctx context.Context, title string) (models.Todo, error)
	Update(ctx context.Context, id int, update models.UpdateTodo) (models.Todo, error)
	Delete(ctx context.Context, id int) error
}

var (
	headerStyle  = lipgloss.NewStyle().Bold(true)
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	pendingStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	failStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
)

type Runner struct {
	API    API
	Out    io.Writer
	Err    io.Writer
	Server string
}

// Run dispatches a subcommand and returns an exit code (0 ok, 1 error, 2 usage).
func (r *Runner) Run(ctx context.Context, args []string) int {
	if len(args) == 0 {
		r.PrintHelp()
		return 2
	}
	cmd, a := args[0], args[1:]

	switch cmd {
	case "help", "-h", "--help":
		r.PrintHelp()
		return 0

	case "ls", "list":
		return r.doList(ctx)

	case "add":
		if len(a) == 0 {
			r.fail("usage: todo add <title...>")
			return 2
		}
		return r.doAdd(ctx, strings.Join(a, " "))

	case "show":
		id, code := r.parseID(cmd, a)
		if code != 0 {
			return code
		}
		return r.doShow(ctx, id)

	case "done", "undone":
		id, code := r.parseID(cmd, a)
		if code != 0 {
			return code
		}
		completed := cmd == "done"
		return r.doUpdate(ctx, id, models.UpdateTodo{IsCompleted: &completed}, cmd)

	case "rename":
		if len(a) < 2 {
			r.fail("usage: todo rename <id> <title...>")
			return 2
		}
		id, code := r.parseID(cmd, a[:1])
		if code != 0 {
			return code
		}
		title := strings.Join(a[1:], " ")
		return r.doUpdate(ctx, id, models.UpdateTodo{Title: &title}, "renamed")

	case "rm":
		id, code := r.parseID(cmd, a)
		if code != 0 {
			return code
		}
		return r.doRemove(ctx, id)
	}

	r.fail("unknown subcommand: " + cmd)
	fmt.Fprintln(r.Err)
	r.PrintHelp()
	return 2
}

func (r *Runner) PrintHelp() {
	fmt.Fprintf(r.Out, `todo - client for the todo web service (%s)

Usage:
  todo                 Interactive list
  todo <subcommand> [args]

Subcommands:
  ls                   List items
  show <id>            Show one item
  add <title...>       Add a new item (title can be multiple words)
  done <id>            Mark item as completed
  undone <id>          Mark item as not completed
  rename <id> <title>  Change the title of an item
  rm <id>              Remove item

Examples:
  todo add "Buy milk"
  todo done 2
  todo rm 3
`, r.Server)
}

func (r *Runner) parseID(cmd string, a []string) (int, int) {
	if len(a) != 1 {
		r.fail(fmt.Sprintf("usage: todo %s <id>", cmd))
		return 0, 2
	}
	id, err := strconv.Atoi(a[0])
	if err != nil {
		r.fail(cmd + ": not a number: " + a[0])
		return 0, 2
	}
	return id, 0
}

func (r *Runner) doList(ctx context.Context) int {
	todos, err := r.API.List(ctx)
	if err != nil {
		r.fail(err.Error())
		return 1
	}

	done, pending := stats(todos)
	fmt.Fprintf(r.Out, "%s  %s %d  %s %d\n",
		headerStyle.Render("Todos"),
		successStyle.Render("✔"), done,
		pendingStyle.Render("•"), pending,
	)
	if len(todos) == 0 {
		fmt.Fprintln(r.Out, mutedStyle.Render("no items"))
		return 0
	}
	for _, todo := range todos {
		fmt.Fprintln(r.Out, line(todo))
	}
	return 0
}

func (r *Runner) doShow(ctx context.Context, id int) int {
	todo, err := r.API.Get(ctx, id)
	if err != nil {
		r.fail(err.Error())
		return 1
	}
	if todo == nil {
		r.fail(fmt.Sprintf("no todo item exists with id `%d`", id))
		return 1
	}
	fmt.Fprintln(r.Out, line(*todo))
	return 0
}

func (r *Runner) doAdd(ctx context.Context, title string) int {
	title = strings.TrimSpace(title)
	if title == "" {
		r.fail("add: empty title")
		return 2
	}
	todo, err := r.API.Create(ctx, title)
	if err != nil {
		r.fail(err.Error())
		return 1
	}
	r.ok(fmt.Sprintf("added #%d", todo.ID))
	return 0
}

func (r *Runner) doUpdate(ctx context.Context, id int, update models.UpdateTodo, verb string) int {
	todo, err := r.API.Update(ctx, id, update)
	if err != nil {
		r.fail(err.Error())
		return 1
	}
	r.ok(verb)
	fmt.Fprintln(r.Out, line(todo))
	return 0
}

func (r *Runner) doRemove(ctx context.Context, id int) int {
	err := r.API.Delete(ctx, id)
	if client.IsNotFound(err) {
		r.ok(fmt.Sprintf("#%d already removed", id))
		return 0
	}
	if err != nil {
		r.fail(err.Error())
		return 1
	}
	r.ok("removed")
	return 0
}

func (r *Runner) ok(msg string) {
	fmt.Fprintln(r.Out, successStyle.Render("✔ "+msg))
}

func (r *Runner) fail(msg string) {
	fmt.Fprintln(r.Err, failStyle.Render("✖ "+msg))
}

func line(todo models.Todo) string {
	box := "☐"
	if todo.IsCompleted {
		box = successStyle.Render("☑")
	}
	return fmt.Sprintf("%s %s %s", mutedStyle.Render(fmt.Sprintf("%3d.", todo.ID)), box, todo.Title)
}

func stats(todos []models.Todo) (done, pending int) {
	for _, todo := range todos {
		if todo.IsCompleted {
			done++
		} else {
			pending++
		}
	}
	return
}
