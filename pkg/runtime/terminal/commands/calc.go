package commands

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/de-tools/tenant-atlas/pkg/adapters"
	"github.com/de-tools/tenant-atlas/pkg/models/domain"
	"github.com/de-tools/tenant-atlas/pkg/services/calculator"
	"github.com/de-tools/tenant-atlas/pkg/services/config"
	"github.com/de-tools/tenant-atlas/pkg/services/listing"
	listingstore "github.com/de-tools/tenant-atlas/pkg/store/listing"
	"github.com/spf13/cobra"
)

// Reporter prints a finished report.
type Reporter interface {
	Handle(report *domain.Report) error
}

type CalcCmd struct {
	db          DatabaseFlags
	rent        int64
	listingID   int64
	params      map[string]string
	preset      string
	presetsPath string
	format      string
	reporters   map[string]Reporter
}

// NewCalcCmd builds the calc command. reporters maps --format values to the
// reporter printing them.
func NewCalcCmd(reporters map[string]Reporter) *cobra.Command {
	cc := &CalcCmd{reporters: reporters}
	cmd := &cobra.Command{
		Use:   "calc",
		Short: "Project the monthly profitability of a lease",
		Example: `  tenant-atlas calc --rent 180000 --param seats=3 --param booking_rate_pct=70
  tenant-atlas calc --listing 12 --db blog.db --preset barber --presets presets.ini`,
		RunE: cc.run,
	}

	cc.db.register(cmd)
	cmd.Flags().Int64Var(&cc.rent, "rent", 0, "Monthly rent in yen")
	cmd.Flags().Int64Var(&cc.listingID, "listing", 0, "Tenant listing id to take the rent from")
	cmd.Flags().StringToStringVarP(&cc.params, "param", "p", nil,
		"Calculator parameter as key=value, repeatable ("+strings.Join(calculator.ParameterNames, ", ")+")")
	cmd.Flags().StringVar(&cc.preset, "preset", "", "Named preset supplying parameter defaults")
	cmd.Flags().StringVar(&cc.presetsPath, "presets", "", "Path to the presets INI file")
	cmd.Flags().StringVar(&cc.format, "format", "table", "Output format ("+strings.Join(formats(reporters), ", ")+")")

	cmd.MarkFlagsMutuallyExclusive("rent", "listing")
	cmd.MarkFlagsOneRequired("rent", "listing")

	return cmd
}

func (cc *CalcCmd) run(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	reporter, ok := cc.reporters[cc.format]
	if !ok {
		return fmt.Errorf("unknown format %q, expected one of %v", cc.format, formats(cc.reporters))
	}
	if cc.preset != "" && cc.presetsPath == "" {
		return errors.New("--preset requires --presets")
	}

	var presets calculator.PresetSource
	if cc.presetsPath != "" {
		registry, err := config.NewPresetRegistry(cc.presetsPath)
		if err != nil {
			return err
		}
		presets = registry
	}
	raw := calculator.RawParameters(cc.params)

	if !cmd.Flags().Changed("listing") {
		calc, err := calculator.NewService(nil, presets).Calculate(ctx, cc.rent, raw, cc.preset)
		if err != nil {
			return err
		}
		return reporter.Handle(adapters.MapCalculationToReport(nil, calc))
	}

	db, err := cc.db.open(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	listings, err := listingstore.NewStore(db)
	if err != nil {
		return err
	}
	svc := calculator.NewService(listing.NewExplorer(listings), presets)
	tenant, calc, err := svc.CalculateForListing(ctx, cc.listingID, raw, cc.preset)
	if err != nil {
		return err
	}
	return reporter.Handle(adapters.MapCalculationToReport(&tenant, calc))
}

func formats(reporters map[string]Reporter) []string {
	names := make([]string, 0, len(reporters))
	for name := range reporters {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
