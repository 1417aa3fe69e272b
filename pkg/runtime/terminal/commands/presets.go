package commands

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/de-tools/tenant-atlas/pkg/services/config"
	"github.com/spf13/cobra"
)

type PresetsCmd struct {
	path string
}

func NewPresetsCmd() *cobra.Command {
	pc := &PresetsCmd{}
	cmd := &cobra.Command{
		Use:   "presets",
		Short: "List calculator presets",
		RunE:  pc.run,
	}

	cmd.Flags().StringVar(&pc.path, "presets", "", "Path to the presets INI file")
	_ = cmd.MarkFlagRequired("presets")

	return cmd
}

func (pc *PresetsCmd) run(cmd *cobra.Command, _ []string) error {
	registry, err := config.NewPresetRegistry(pc.path)
	if err != nil {
		return err
	}

	names, err := registry.GetPresets()
	if err != nil {
		return err
	}
	if len(names) == 0 {
		fmt.Fprintf(cmd.OutOrStdout(), "No presets found in %s\n", pc.path)
		return nil
	}

	for _, name := range names {
		values, err := registry.GetPreset(name)
		if err != nil {
			return err
		}
		pairs := make([]string, 0, len(values))
		for _, k := range slices.Sorted(maps.Keys(values)) {
			pairs = append(pairs, k+"="+values[k])
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", name, strings.Join(pairs, " "))
	}
	return nil
}
