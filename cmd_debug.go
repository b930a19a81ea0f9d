package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"
)

// debugCmd exposes the persisted request/response diagnostics. The recorder
// keeps the last failing response in its own file, so a later successful
// fetch never hides the evidence.
func debugCmd(env *appEnv) *cli.Command {
	return &cli.Command{
		Name:      "debug",
		Usage:     "Inspect the last API exchange",
		UsageText: "nga-cli debug <last-request|last-response|last-error>",
		Commands: []*cli.Command{
			{
				Name:  "last-request",
				Usage: "Print the last request (method, URL, params, headers; cookie removed)",
				Action: func(ctx context.Context, c *cli.Command) error {
					return printDiag(env.diag.LastRequest, "no request recorded yet")
				},
			},
			{
				Name:  "last-response",
				Usage: "Print the text of the last successfully handled response",
				Action: func(ctx context.Context, c *cli.Command) error {
					return printDiag(env.diag.LastResponse, "no response recorded yet")
				},
			},
			{
				Name:  "last-error",
				Usage: "Print the last response text that could not be handled",
				Action: func(ctx context.Context, c *cli.Command) error {
					return printDiag(env.diag.LastError, "no failing response recorded")
				},
			},
		},
	}
}

func printDiag(read func() (string, error), emptyNote string) error {
	text, err := read()
	if errors.Is(err, os.ErrNotExist) {
		fmt.Println(emptyNote)
		return nil
	}
	if err != nil {
		return err
	}
	fmt.Println(text)
	return nil
}
