package cmd

import (
	"context"
	"errors"
	"io"
	"strconv"

	"github.com/spf13/cobra"
)

type menuOption struct {
	text   string
	action func(ctx context.Context) error
}

// menuOptions is a slice because order matters
var menuOptions = []menuOption{
	{"Run the autologin script.", runLogins},
	{"Set the script's user agent.", func(ctx context.Context) error { return setAgent(ctx, "") }},
	{"Add or edit nations and passwords.", addNations},
	{"Remove nations from the list.", func(ctx context.Context) error { return removeNations(ctx, nil) }},
	{"List nation names without logging in to any of them.", listNations},
}

// runMenu shows the interactive menu, or the help when not on a terminal
func runMenu(cmd *cobra.Command, args []string) error {
	if !term.IsInteractive() {
		return cmd.Help()
	}

	ctx := cmd.Context()
	for {
		if err := ctx.Err(); err != nil {
			return nil
		}

		_ = term.Clear()
		term.Println("nsping autologin script")
		term.Println()
		for i, opt := range menuOptions {
			term.Printf("  %d. %s\n", i+1, opt.text)
		}
		term.Println("\n  0. Exit")
		term.Println()

		choice, err := promptChoice(ctx)
		if err != nil {
			if errors.Is(err, io.EOF) || ctx.Err() != nil {
				return nil
			}
			return err
		}
		if choice == 0 {
			return nil
		}

		term.Println()
		if err := menuOptions[choice-1].action(ctx); err != nil {
			term.Printf("%v\n", err)
		}
		term.Pause(ctx, "")
	}
}

func promptChoice(ctx context.Context) (int, error) {
	for {
		input, err := term.Prompt(ctx, "> ")
		if err != nil {
			return 0, err
		}

		n, err := strconv.Atoi(input)
		if err != nil {
			term.Printf("%q doesn't look like a number, could you try again?\n", input)
			continue
		}
		if n < 0 || n > len(menuOptions) {
			term.Printf("%d isn't a valid option, could you try again?\n", n)
			continue
		}
		return n, nil
	}
}
