package cli

import (
	"context"
	"errors"
	"flag"
)

func runUsers(app *Application, ctx context.Context, _ []string) error {
	users, err := app.client.ListUsers(ctx)
	if err != nil {
		return err
	}

	for _, u := range users {
		status := "active"
		switch {
		case u.IsBanned:
			status = "banned"
		case !u.IsActive:
			status = "inactive"
		}
		app.printf("%6d  %-30s  %s %s  %s\n", u.ID, u.Email, u.FirstName, u.LastName, status)
	}
	return nil
}

func runUserCreate(app *Application, ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("user-create", flag.ContinueOnError)
	email := fs.String("email", "", "email for the new account")
	password := fs.String("password", "", "password for the new account")
	invite := fs.String("invite", "", "invite code to consume")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *email == "" || *password == "" || *invite == "" {
		return errors.New("user-create: -email, -password and -invite are required")
	}

	user, err := app.client.CreateUser(ctx, *email, *password, *invite)
	if err != nil {
		return err
	}
	app.printf("created user %s\n", user.Email)
	return nil
}

func runUserDelete(app *Application, ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("user-delete", flag.ContinueOnError)
	username := fs.String("username", "", "username of the account to delete")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *username == "" {
		return errors.New("user-delete: -username is required")
	}

	if err := app.client.DeleteUser(ctx, *username); err != nil {
		return err
	}
	app.printf("deleted user %s\n", *username)
	return nil
}

func runBan(app *Application, ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("ban", flag.ContinueOnError)
	email := fs.String("email", "", "email of the account to ban")
	reason := fs.String("reason", "", "ban reason")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *email == "" || *reason == "" {
		return errors.New("ban: -email and -reason are required")
	}

	ban, err := app.client.BanUser(ctx, *email, *reason)
	if err != nil {
		return err
	}
	app.printf("banned %s by %s: %s\n", *email, ban.BannedBy, ban.Reason)
	return nil
}

func runInvites(app *Application, ctx context.Context, _ []string) error {
	invites, err := app.client.ListInvites(ctx)
	if err != nil {
		return err
	}

	for _, inv := range invites {
		state := "expired"
		if inv.IsValid {
			state = "valid"
		}
		app.printf("%s  %d/%d uses  %s  created by %s\n", inv.Code, inv.Uses, inv.MaxUses, state, inv.CreatedBy)
	}
	return nil
}

func runInviteCreate(app *Application, ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("invite-create", flag.ContinueOnError)
	maxUses := fs.Int("max-uses", 1, "how many registrations the code admits")
	if err := fs.Parse(args); err != nil {
		return err
	}

	inv, err := app.client.CreateInvite(ctx, *maxUses)
	if err != nil {
		return err
	}
	app.printf("invite %s (max uses %d)\n", inv.Code, inv.MaxUses)
	return nil
}

func runInviteDelete(app *Application, ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("invite-delete", flag.ContinueOnError)
	code := fs.String("code", "", "invite code to revoke")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *code == "" {
		return errors.New("invite-delete: -code is required")
	}

	if err := app.client.DeleteInvite(ctx, *code); err != nil {
		return err
	}
	app.printf("revoked invite %s\n", *code)
	return nil
}

func runStats(app *Application, ctx context.Context, _ []string) error {
	stats, err := app.client.GetStats(ctx)
	if err != nil {
		return err
	}

	app.printf("users:           %d (%d active, %d new this month)\n", stats.TotalUsers, stats.ActiveUsers, stats.UsersThisMonth)
	app.printf("documents:       %d (%d this month)\n", stats.TotalBlogs, stats.BlogsThisMonth)
	app.printf("active invites:  %d\n", stats.ActiveInvites)
	for code, uses := range stats.InviteUsage {
		app.printf("  %s: %d uses\n", code, uses)
	}
	return nil
}
