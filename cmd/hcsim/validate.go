package main

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/duke1swd/homie5nodes"
	"github.com/duke1swd/homie5nodes/config"
)

func newValidateCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Compile every node offline and print the $description document",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			def, err := o.load()
			if err != nil {
				return err
			}
			descs, err := compileAll(def)
			if err != nil {
				return err
			}
			doc, err := homie.MarshalDeviceDescription(deviceName(def), descs...)
			if err != nil {
				return err
			}
			var out bytes.Buffer
			if err := json.Indent(&out, doc, "", "  "); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), out.String())
			return nil
		},
	}
}

// compileAll stops at the first node that does not compile.
func compileAll(def *config.Device) ([]*homie.NodeDescription, error) {
	descs := make([]*homie.NodeDescription, 0, len(def.Nodes))
	for _, n := range def.Nodes {
		nc, err := n.Config.NodeConfig()
		if err != nil {
			return nil, fmt.Errorf("node %q: %w", n.ID, err)
		}
		desc, err := homie.Compile(n.ID, nc)
		if err != nil {
			return nil, fmt.Errorf("node %q: %w", n.ID, err)
		}
		descs = append(descs, desc)
	}
	return descs, nil
}

func deviceName(def *config.Device) string {
	if def.Name != "" {
		return def.Name
	}
	return def.ID
}
