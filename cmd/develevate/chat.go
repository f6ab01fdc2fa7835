package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"develevate/internal/bootstrap"
	"develevate/pkg/schema"
)

func newChatCmd(c *cli) *cobra.Command {
	var category string

	cmd := &cobra.Command{
		Use:   "chat [message]",
		Short: "Ask Study Buddy a question, or start an interactive chat",
		RunE: func(cmd *cobra.Command, args []string) error {
			cat := schema.MessageCategory(strings.ToLower(category))
			if err := schema.ValidateMessageCategory(cat); err != nil {
				return err
			}

			app, err := c.open(cmd)
			if err != nil {
				return err
			}
			bot, err := app.Chatbot()
			if err != nil {
				return err
			}

			if len(args) == 0 {
				sess := bootstrap.NewChatSession(bot, cmd.InOrStdin(), cmd.OutOrStdout())
				if cat != "" {
					sess.Category = cat
				}
				return sess.Run(cmd.Context())
			}

			reply, err := bot.Send(cmd.Context(), strings.Join(args, " "), cat)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), reply.Content)
			return nil
		},
	}
	cmd.Flags().StringVarP(&category, "category", "c", string(schema.CategoryGeneral), "Chat mode: learning, career or general")

	return cmd
}
