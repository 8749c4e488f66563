package cli

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/vidscribe/scribe/pkg/scribesdk"
)

func runLogin(app *Application, ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("login", flag.ContinueOnError)
	email := fs.String("email", "", "account email")
	password := fs.String("password", "", "account password (prompted when omitted)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *email == "" {
		return errors.New("login: -email is required")
	}

	pw := *password
	if pw == "" {
		var err error
		pw, err = promptLine("password: ")
		if err != nil {
			return err
		}
	}

	if err := app.sessions.Login(ctx, *email, pw); err != nil {
		return err
	}

	snap := app.sessions.Snapshot()
	app.printf("logged in as %s %s <%s>\n", snap.Identity.FirstName, snap.Identity.LastName, snap.Identity.Email)
	return nil
}

func runRegister(app *Application, ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("register", flag.ContinueOnError)
	email := fs.String("email", "", "account email")
	password := fs.String("password", "", "account password (prompted when omitted)")
	first := fs.String("first", "", "first name")
	last := fs.String("last", "", "last name")
	invite := fs.String("invite", "", "invite code")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *email == "" || *first == "" || *last == "" || *invite == "" {
		return errors.New("register: -email, -first, -last and -invite are required")
	}

	pw := *password
	if pw == "" {
		var err error
		pw, err = promptLine("password: ")
		if err != nil {
			return err
		}
	}

	err := app.sessions.Register(ctx, scribesdk.RegisterRequest{
		Email:      *email,
		Password:   pw,
		FirstName:  *first,
		LastName:   *last,
		InviteCode: *invite,
	})
	if err != nil {
		// Field-level errors (duplicate email, bad invite) get pointed at the
		// offending input rather than a generic failure.
		var verr *scribesdk.ValidationError
		if errors.As(err, &verr) {
			if msg := verr.Field("email"); msg != "" {
				return fmt.Errorf("register: email: %s", msg)
			}
			if msg := verr.Field("invite_code"); msg != "" {
				return fmt.Errorf("register: invite code: %s", msg)
			}
		}
		return err
	}

	app.printf("registered and logged in as %s\n", *email)
	return nil
}

func runLogout(app *Application, ctx context.Context, _ []string) error {
	if err := app.sessions.Logout(ctx); err != nil {
		return err
	}
	app.printf("logged out\n")
	return nil
}

func runWhoami(app *Application, _ context.Context, _ []string) error {
	snap := app.sessions.Snapshot()
	if !snap.Authenticated() {
		app.printf("not logged in\n")
		return nil
	}

	role := "user"
	if snap.Admin() {
		role = "admin"
	}
	app.printf("%s %s <%s> (%s)\n", snap.Identity.FirstName, snap.Identity.LastName, snap.Identity.Email, role)
	return nil
}

func runPasswd(app *Application, ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("passwd", flag.ContinueOnError)
	oldPassword := fs.String("old", "", "current password")
	newPassword := fs.String("new", "", "new password")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *oldPassword == "" || *newPassword == "" {
		return errors.New("passwd: -old and -new are required")
	}

	if err := app.client.ChangePassword(ctx, *oldPassword, *newPassword); err != nil {
		return err
	}
	app.printf("password changed\n")
	return nil
}

func runTheme(app *Application, ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("theme", flag.ContinueOnError)
	theme := fs.String("set", "", "ui theme (light, dark)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *theme == "" {
		return errors.New("theme: -set is required")
	}

	if err := app.client.UpdateTheme(ctx, *theme); err != nil {
		return err
	}
	app.printf("theme set to %s\n", *theme)
	return nil
}

func runAccountDelete(app *Application, ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("account-delete", flag.ContinueOnError)
	yes := fs.Bool("yes", false, "confirm account deletion")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if !*yes {
		return errors.New("account-delete: pass -yes to confirm")
	}

	if err := app.client.DeleteAccount(ctx); err != nil {
		return err
	}
	// The account is gone server-side; drop the local session too.
	if err := app.sessions.Logout(ctx); err != nil {
		return err
	}
	app.printf("account deleted\n")
	return nil
}

func promptLine(prompt string) (string, error) {
	fmt.Fprint(os.Stderr, prompt)
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		return "", fmt.Errorf("read input: %w", err)
	}
	return strings.TrimSpace(line), nil
}
