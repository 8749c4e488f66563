package cli

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/vidscribe/scribe/pkg/scribesdk"
	"github.com/vidscribe/scribe/pkg/slogx"
)

// ErrRedirected reports a command blocked by a route guard.
var ErrRedirected = errors.New("redirected")

// command binds a CLI verb to the view it represents. Commands behind
// protected views carry the same guards the browser app applies at
// navigation time; they are evaluated against the session snapshot before
// the command body runs.
type command struct {
	name   string
	usage  string
	view   string
	guards []scribesdk.Guard
	run    func(app *Application, ctx context.Context, args []string) error
}

var authOnly = []scribesdk.Guard{scribesdk.RequireAuthenticated}
var adminOnly = []scribesdk.Guard{scribesdk.RequireAuthenticated, scribesdk.RequireAdmin}

var commands = map[string]command{
	"login":    {name: "login", usage: "login -email <email> [-password <password>]", run: runLogin},
	"register": {name: "register", usage: "register -email <email> -first <name> -last <name> -invite <code>", run: runRegister},
	"logout":   {name: "logout", usage: "logout", run: runLogout},
	"whoami":   {name: "whoami", usage: "whoami", run: runWhoami},

	"passwd":         {name: "passwd", usage: "passwd -old <password> -new <password>", view: "/settings", guards: authOnly, run: runPasswd},
	"theme":          {name: "theme", usage: "theme -set <light|dark>", view: "/settings", guards: authOnly, run: runTheme},
	"account-delete": {name: "account-delete", usage: "account-delete -yes", view: "/settings", guards: authOnly, run: runAccountDelete},

	"generate": {name: "generate", usage: "generate -url <youtube url> [-regen]", view: scribesdk.PathDashboard, guards: authOnly, run: runGenerate},
	"list":     {name: "list", usage: "list", view: scribesdk.PathDashboard, guards: authOnly, run: runList},
	"show":     {name: "show", usage: "show -id <id>", view: "/blog", guards: authOnly, run: runShow},
	"delete":   {name: "delete", usage: "delete -id <id>", view: scribesdk.PathDashboard, guards: authOnly, run: runDelete},

	"users":         {name: "users", usage: "users", view: "/admin", guards: adminOnly, run: runUsers},
	"user-create":   {name: "user-create", usage: "user-create -email <email> -password <password> -invite <code>", view: "/admin", guards: adminOnly, run: runUserCreate},
	"user-delete":   {name: "user-delete", usage: "user-delete -username <username>", view: "/admin", guards: adminOnly, run: runUserDelete},
	"ban":           {name: "ban", usage: "ban -email <email> -reason <text>", view: "/admin", guards: adminOnly, run: runBan},
	"invites":       {name: "invites", usage: "invites", view: "/admin", guards: adminOnly, run: runInvites},
	"invite-create": {name: "invite-create", usage: "invite-create [-max-uses <n>]", view: "/admin", guards: adminOnly, run: runInviteCreate},
	"invite-delete": {name: "invite-delete", usage: "invite-delete -code <code>", view: "/admin", guards: adminOnly, run: runInviteDelete},
	"stats":         {name: "stats", usage: "stats", view: "/admin", guards: adminOnly, run: runStats},
}

// Run dispatches a command line. Guarded commands are checked against the
// current session first; a failed guard behaves like the browser redirect
// (navigate to the guard's target view, do not run the command).
func (app *Application) Run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		app.printUsage()
		return errors.New("no command given")
	}

	cmd, ok := commands[args[0]]
	if !ok {
		app.printUsage()
		return fmt.Errorf("unknown command %q", args[0])
	}

	ctx = slogx.WithContext(ctx, app.logger.With("command", cmd.name))

	if len(cmd.guards) > 0 {
		decision := scribesdk.Evaluate(app.sessions.Snapshot(), cmd.view, cmd.guards...)
		if !decision.Allowed {
			app.navigateTo(decision.RedirectTo)
			return fmt.Errorf("%w to %s (wanted %s)", ErrRedirected, decision.RedirectTo, decision.From)
		}
	}

	return cmd.run(app, ctx, args[1:])
}

func (app *Application) printUsage() {
	names := make([]string, 0, len(commands))
	for name := range commands {
		names = append(names, name)
	}
	sort.Strings(names)

	var b strings.Builder
	b.WriteString("usage: scribe <command> [flags]\n\ncommands:\n")
	for _, name := range names {
		fmt.Fprintf(&b, "  %s\n", commands[name].usage)
	}
	app.printf("%s", b.String())
}
