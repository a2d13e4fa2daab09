package main

import (
	"strings"

	"knowva_cli/pkg/ui"

	"github.com/spf13/cobra"
)

func newAskCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "ask <question>",
		Short: "Ask a single question and print the answer",
		Example: `  knowva ask "What is term insurance?"
  knowva ask --endpoint http://rag.internal:8000/chat how do I open a demat account`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, client, err := setup(opts)
			if err != nil {
				return err
			}

			ok, err := ui.NewPipeHandler(client, cmd.OutOrStdout()).Ask(cmd.Context(), strings.Join(args, " "))
			if err != nil {
				return err
			}
			if !ok {
				return errAnswerFailed
			}
			return nil
		},
	}
}
