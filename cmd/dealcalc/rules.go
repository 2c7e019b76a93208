package main

import (
	"fmt"
	"log/slog"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/Veraticus/dealcalc/internal/cli"
	"github.com/Veraticus/dealcalc/internal/model"
	"github.com/Veraticus/dealcalc/internal/ruleio"
)

func rulesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rules",
		Short: "Manage jurisdiction rule data",
	}

	cmd.AddCommand(rulesImportCmd())
	cmd.AddCommand(rulesListCmd())

	return cmd
}

func rulesImportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import <file.yaml>",
		Short: "Import jurisdiction rules and dealer configs from a YAML file",
		Args:  cobra.ExactArgs(1),
		RunE:  runRulesImport,
	}
}

func runRulesImport(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	file, err := ruleio.Load(args[0])
	if err != nil {
		return err
	}

	slog.Info("Importing rule file",
		"path", args[0],
		"rules", len(file.Rules),
		"dealer_configs", len(file.DealerConfigs))

	store, err := initStorage(ctx)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer func() { _ = store.Close() }()

	if len(file.Rules) > 0 {
		bar := progressbar.NewOptions(len(file.Rules),
			progressbar.OptionSetWriter(cmd.ErrOrStderr()),
			progressbar.OptionShowCount(),
			progressbar.OptionSetWidth(40),
			progressbar.OptionSetDescription("Importing rules..."),
		)
		// Rules are saved one at a time so the bar tracks real progress;
		// each save is its own transaction.
		for _, rule := range file.Rules {
			if err := store.SaveRules(ctx, []model.JurisdictionRule{rule}); err != nil {
				return fmt.Errorf("failed to import rule %s: %w", rule.ID, err)
			}
			_ = bar.Add(1)
		}
		fmt.Fprintln(cmd.ErrOrStderr())
	}

	for _, config := range file.DealerConfigs {
		if err := store.SaveDealerConfig(ctx, &config); err != nil {
			return fmt.Errorf("failed to import dealer config %s: %w", config.DealerID, err)
		}
	}

	fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess(fmt.Sprintf("imported %d rules, %d dealer configs",
		len(file.Rules), len(file.DealerConfigs))))
	return nil
}

func rulesListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List stored jurisdiction rules",
		RunE:  runRulesList,
	}

	cmd.Flags().String("state", "", "filter by state code")

	return cmd
}

func runRulesList(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	state, _ := cmd.Flags().GetString("state")

	store, err := initStorage(ctx)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer func() { _ = store.Close() }()

	ruleList, err := store.ListRules(ctx, state)
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), cli.RenderRuleList(ruleList))
	return nil
}
