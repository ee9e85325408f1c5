package main

import (
	"github.com/spf13/cobra"
)

func newRenderCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "render <scene>",
		Short: "Render a scene file once to stdout",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.renderFile(cmd, args[0])
		},
	}
}
