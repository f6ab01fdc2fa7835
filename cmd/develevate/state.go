package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/invopop/jsonschema"
	"github.com/spf13/cobra"

	"develevate/internal/appstate"
	"develevate/internal/session"
	"develevate/internal/store"
)

func newStateCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:       "state [app|session]",
		Short:     "Print the current state tree as JSON",
		Args:      cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{"app", "session"},
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := c.open(cmd)
			if err != nil {
				return err
			}

			var v any = app.State.GetState()
			if len(args) == 1 && args[0] == "session" {
				v = app.Session.GetState()
			}
			return writeJSON(cmd.OutOrStdout(), v)
		},
	}
}

func newDispatchCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "dispatch <json>",
		Short: "Dispatch a raw action such as {\"type\":\"ADD_BOOKMARK\",\"payload\":\"dsa-arrays\"}",
		Long: `Dispatch decodes a {"type", "payload"} action and routes it to the store
that understands its type. Types neither store knows are ignored.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := store.ParseRawAction([]byte(args[0]))
			if err != nil {
				return err
			}

			app, err := c.open(cmd)
			if err != nil {
				return err
			}

			appAction, err := appstate.DecodeAction(raw)
			if err != nil {
				return err
			}
			if _, unknown := appAction.(appstate.Unknown); !unknown {
				app.State.Dispatch(appAction)
				fmt.Fprintf(cmd.OutOrStdout(), "✅ %s applied to app state\n", raw.Type)
				return nil
			}

			sessionAction, err := session.DecodeAction(raw)
			if err != nil {
				return err
			}
			if _, unknown := sessionAction.(session.Unknown); !unknown {
				app.Session.Dispatch(sessionAction)
				fmt.Fprintf(cmd.OutOrStdout(), "✅ %s applied to session state\n", raw.Type)
				return nil
			}

			fmt.Fprintf(cmd.OutOrStdout(), "⚠️  Unknown action type %q ignored\n", raw.Type)
			return nil
		},
	}
}

func newSchemaCmd() *cobra.Command {
	return &cobra.Command{
		Use:       "schema [app|session]",
		Short:     "Print the JSON schema of a persisted state slot",
		Args:      cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{"app", "session"},
		RunE: func(cmd *cobra.Command, args []string) error {
			r := &jsonschema.Reflector{
				AllowAdditionalProperties: true,
				ExpandedStruct:            true,
			}

			schema := r.Reflect(&appstate.State{})
			schema.Title = "DevElevate application state"
			schema.Description = "Contents of the " + appstate.Slot + " slot."
			if len(args) == 1 && args[0] == "session" {
				schema = r.Reflect(&session.State{})
				schema.Title = "DevElevate session state"
				schema.Description = "Contents of the " + session.Slot + " slot."
			}

			return writeJSON(cmd.OutOrStdout(), schema)
		},
	}
}

func writeJSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}
