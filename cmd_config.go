package main

import (
	"context"
	"fmt"
	"strconv"

	"github.com/charmbracelet/huh"
	"github.com/urfave/cli/v3"

	"github.com/gyokusei/nga-cli/infra/config"
)

// configCmd is the interactive settings editor: cookie, proxies, favorite
// boards and general toggles, persisted after every change.
func configCmd(env *appEnv) *cli.Command {
	return &cli.Command{
		Name:      "config",
		Usage:     "Edit settings interactively",
		UsageText: "nga-cli config",
		Action: func(ctx context.Context, c *cli.Command) error {
			for {
				var choice string
				form := huh.NewForm(huh.NewGroup(
					huh.NewSelect[string]().
						Title("Settings").
						Options(
							huh.NewOption("Login cookie", "cookie"),
							huh.NewOption("Proxies", "proxies"),
							huh.NewOption("Favorite boards", "favorites"),
							huh.NewOption("General", "general"),
							huh.NewOption("Show current config", "show"),
							huh.NewOption("Done", "done"),
						).
						Value(&choice),
				))
				if err := form.Run(); err != nil {
					return err
				}

				var err error
				switch choice {
				case "cookie":
					err = editCookie(env)
				case "proxies":
					err = editProxies(env)
				case "favorites":
					err = editFavorites(ctx, env)
				case "general":
					err = editGeneral(env)
				case "show":
					showSettings(env)
				case "done":
					return nil
				}
				if err != nil {
					return err
				}
			}
		},
	}
}

func editCookie(env *appEnv) error {
	cookie := env.settings.Cookie
	form := huh.NewForm(huh.NewGroup(
		huh.NewInput().
			Title("Cookie").
			Description("Copy the Cookie header from a logged-in browser session.").
			Value(&cookie).
			Validate(config.ValidateCookie),
	))
	if err := form.Run(); err != nil {
		return err
	}
	env.settings.Cookie = cookie
	return env.store.Save(env.settings)
}

func editProxies(env *appEnv) error {
	httpProxy := env.settings.HTTPProxy
	httpsProxy := env.settings.HTTPSProxy
	form := huh.NewForm(huh.NewGroup(
		huh.NewInput().Title("HTTP proxy").Placeholder("http://127.0.0.1:7890").Value(&httpProxy),
		huh.NewInput().Title("HTTPS proxy").Placeholder("http://127.0.0.1:7890").Value(&httpsProxy),
	))
	if err := form.Run(); err != nil {
		return err
	}
	env.settings.HTTPProxy = httpProxy
	env.settings.HTTPSProxy = httpsProxy
	return env.store.Save(env.settings)
}

func editGeneral(env *appEnv) error {
	show := env.settings.ShowSignatures
	form := huh.NewForm(huh.NewGroup(
		huh.NewConfirm().
			Title("Show user signatures under replies?").
			Value(&show),
	))
	if err := form.Run(); err != nil {
		return err
	}
	env.settings.ShowSignatures = show
	return env.store.Save(env.settings)
}

func editFavorites(ctx context.Context, env *appEnv) error {
	var action string
	form := huh.NewForm(huh.NewGroup(
		huh.NewSelect[string]().
			Title("Favorite boards").
			Options(
				huh.NewOption("Add a board", "add"),
				huh.NewOption("Remove boards", "remove"),
				huh.NewOption("Back", "back"),
			).
			Value(&action),
	))
	if err := form.Run(); err != nil {
		return err
	}

	switch action {
	case "add":
		return addFavorite(ctx, env)
	case "remove":
		return removeFavorites(env)
	}
	return nil
}

// addFavorite asks for a forum ID and resolves its display name through the
// API so typos surface immediately.
func addFavorite(ctx context.Context, env *appEnv) error {
	var raw string
	form := huh.NewForm(huh.NewGroup(
		huh.NewInput().
			Title("Forum ID").
			Description("The fid query parameter in the board's URL.").
			Value(&raw).
			Validate(func(s string) error {
				_, err := strconv.Atoi(s)
				return err
			}),
	))
	if err := form.Run(); err != nil {
		return err
	}
	fid, _ := strconv.Atoi(raw)

	forum, err := env.newClient().ForumInfo(ctx, fid)
	if err != nil {
		return fmt.Errorf("look up board %d: %w", fid, err)
	}

	name := forum.Name
	confirm := huh.NewForm(huh.NewGroup(
		huh.NewInput().
			Title(fmt.Sprintf("Save board %d as", fid)).
			Value(&name),
	))
	if err := confirm.Run(); err != nil {
		return err
	}

	env.settings.Favorites[name] = fid
	if err := env.store.Save(env.settings); err != nil {
		return err
	}
	fmt.Printf("Added %s (fid %d).\n", name, fid)
	return nil
}

func removeFavorites(env *appEnv) error {
	if len(env.settings.Favorites) == 0 {
		fmt.Println("No favorite boards to remove.")
		return nil
	}

	options := make([]huh.Option[string], 0, len(env.settings.Favorites))
	for _, name := range env.settings.FavoriteNames() {
		options = append(options, huh.NewOption(
			fmt.Sprintf("%s (fid %d)", name, env.settings.Favorites[name]), name))
	}

	var picked []string
	form := huh.NewForm(huh.NewGroup(
		huh.NewMultiSelect[string]().
			Title("Remove which boards?").
			Options(options...).
			Value(&picked),
	))
	if err := form.Run(); err != nil {
		return err
	}
	for _, name := range picked {
		delete(env.settings.Favorites, name)
	}
	return env.store.Save(env.settings)
}

func showSettings(env *appEnv) {
	set := env.settings
	fmt.Printf("config file:     %s\n", env.store.FilePath())
	fmt.Printf("cookie set:      %v\n", set.Cookie != "")
	fmt.Printf("http proxy:      %s\n", orNone(set.HTTPProxy))
	fmt.Printf("https proxy:     %s\n", orNone(set.HTTPSProxy))
	fmt.Printf("show signatures: %v\n", set.ShowSignatures)

	names := set.FavoriteNames()
	fmt.Printf("favorites:       %d\n", len(names))
	for _, name := range names {
		fmt.Printf("  %-20s fid %d\n", name, set.Favorites[name])
	}
}

func orNone(s string) string {
	if s == "" {
		return "(none)"
	}
	return s
}
