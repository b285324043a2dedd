package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/archief/pkg/types"
)

func newMessagesCmd(flags *rootFlags) *cobra.Command {
	var limit, offset int

	cmd := &cobra.Command{
		Use:   "messages",
		Short: "List messages, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, s, err := attachCatalogue(flags)
			if err != nil {
				return err
			}
			defer cat.Detach()

			if !cmd.Flags().Changed("limit") {
				limit = s.v.GetInt(cfgKeyPageSize)
			}
			messages, err := cat.LatestMessages(cmd.Context(), limit, offset)
			if err != nil {
				return lookupError(err)
			}

			if flags.jsonMode {
				if messages == nil {
					messages = []types.Message{}
				}
				return writeJSON(cmd, messages)
			}
			for _, m := range messages {
				writeMessageLine(cmd.OutOrStdout(), m)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 0, "maximum number of messages (default: site.page_size)")
	cmd.Flags().IntVar(&offset, "offset", 0, "number of newest messages to skip")
	return cmd
}

func newMessageCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "message <id>",
		Short: "Print one message",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil || id < 1 {
				return userError(fmt.Errorf("%w: %q", types.ErrInvalidID, args[0]))
			}

			cat, _, err := attachCatalogue(flags)
			if err != nil {
				return err
			}
			defer cat.Detach()

			msg, err := cat.LoadMessage(cmd.Context(), id)
			if err != nil {
				return lookupError(fmt.Errorf("message %d: %w", id, err))
			}

			if flags.jsonMode {
				return writeJSON(cmd, msg)
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s\n%s, %s\n\n%s\n", msg.Title, msg.Date, msg.Author, msg.Content)
			return nil
		},
	}
}
