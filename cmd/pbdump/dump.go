package main

import (
	"github.com/go-kit/log/level"
	"github.com/spf13/cobra"

	"github.com/anirudhraja/pbcodec"
)

func dumpCmd() *cobra.Command {
	var (
		protoPath   string
		messageType string
		asHex       bool
		maxDepth    int
	)

	cmd := &cobra.Command{
		Use:   "dump FILE",
		Short: "Print the fields of an encoded message",
		Long: `Print the fields of an encoded message as an indented tree.

FILE may be "-" to read from stdin. Pass --proto and --type to label fields
with their schema names.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := readInput(cmd.InOrStdin(), args[0], asHex)
			if err != nil {
				return err
			}

			p := pbcodec.New(pbcodec.WithMaxDepth(maxDepth))
			if protoPath != "" {
				if err := p.LoadSchema(protoPath); err != nil {
					return err
				}
				level.Debug(logger).Log("msg", "schema loaded", "path", protoPath, "messages", len(p.ListMessages()))
			}
			if messageType != "" && protoPath == "" {
				level.Warn(logger).Log("msg", "--type ignored without --proto", "type", messageType)
				messageType = ""
			}

			root, err := p.Inspect(data, messageType)
			if err != nil {
				return err
			}
			level.Info(logger).Log("msg", "decoded message", "bytes", len(data), "fields", len(root.Children))
			return root.Format(cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVarP(&protoPath, "proto", "p", "", "Schema: a .proto file or a directory of them")
	cmd.Flags().StringVarP(&messageType, "type", "t", "", "Message type to decode as (full or short name)")
	cmd.Flags().BoolVar(&asHex, "hex", false, "Input is hex text instead of raw bytes")
	cmd.Flags().IntVar(&maxDepth, "max-depth", pbcodec.DefaultMaxDepth, "Deepest nested message to expand")

	return cmd
}
