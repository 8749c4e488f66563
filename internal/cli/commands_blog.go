package cli

import (
	"context"
	"errors"
	"flag"
)

func runGenerate(app *Application, ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("generate", flag.ContinueOnError)
	url := fs.String("url", "", "youtube video url")
	regen := fs.Bool("regen", false, "force regeneration for an already-generated url")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *url == "" {
		return errors.New("generate: -url is required")
	}

	post, err := app.client.GenerateBlog(ctx, *url, *regen)
	if err != nil {
		return err
	}

	app.printf("generated #%d: %s\n\n%s\n", post.ID, post.BlogTitle, post.Content)
	return nil
}

func runList(app *Application, ctx context.Context, _ []string) error {
	posts, err := app.client.ListBlogs(ctx)
	if err != nil {
		return err
	}

	if len(posts) == 0 {
		app.printf("no documents yet\n")
		return nil
	}
	for _, post := range posts {
		app.printf("%6d  %s  %s\n", post.ID, post.CreatedAt.Format("2006-01-02"), post.BlogTitle)
	}
	return nil
}

func runShow(app *Application, ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("show", flag.ContinueOnError)
	id := fs.Int("id", 0, "document id")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *id == 0 {
		return errors.New("show: -id is required")
	}

	post, err := app.client.GetBlog(ctx, *id)
	if err != nil {
		return err
	}

	app.printf("# %s\n\nsource: %s (%s)\nauthor: %s\n\n%s\n",
		post.BlogTitle, post.YoutubeURL, post.YoutubeTitle, post.AuthorName, post.Content)
	return nil
}

func runDelete(app *Application, ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("delete", flag.ContinueOnError)
	id := fs.Int("id", 0, "document id")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *id == 0 {
		return errors.New("delete: -id is required")
	}

	if err := app.client.DeleteBlog(ctx, *id); err != nil {
		return err
	}
	app.printf("deleted #%d\n", *id)
	return nil
}
