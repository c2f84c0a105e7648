package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/idilsaglam/pizza/internal/config"
	"github.com/idilsaglam/pizza/internal/element"
	"github.com/idilsaglam/pizza/internal/model"
	"github.com/idilsaglam/pizza/internal/shop"
	"github.com/idilsaglam/pizza/internal/tui"
	"github.com/idilsaglam/pizza/internal/ui"
	"github.com/idilsaglam/pizza/internal/view"
)

func (a *app) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "pizza",
		Short: "pizza - order from the pizza service",
		Long: `pizza fetches the menu from the ordering service, lets you build an order
and sends it.

Run without arguments to start the interactive ordering screen.`,
		Args:          usageArgs(cobra.NoArgs),
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.setup(true); err != nil {
				return err
			}
			return tui.Run(cmd.Context(), a.client, a.logger)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			a.sync()
		},
	}
	root.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return usageError{err: err}
	})

	pf := root.PersistentFlags()
	pf.StringVar(&a.opt.ConfigPath, "config", config.DefaultPath, "path to the YAML config file")
	pf.StringVar(&a.opt.APIURL, "api-url", "", "ordering service base URL (overrides config)")
	pf.StringVar(&a.opt.Theme, "theme", "", "color theme: classic, neon or mono")
	pf.BoolVarP(&a.opt.Verbose, "verbose", "v", false, "debug logging")

	root.AddCommand(a.menuCmd(), a.orderCmd(), a.configCmd())
	return root
}

// -------------- menu ----------------

func (a *app) menuCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "menu",
		Short: "Print the menu",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.setup(false); err != nil {
				return err
			}
			items, err := a.client.FetchCatalog(cmd.Context())
			s := shop.New().StartLoading().CatalogFetched(items, err)
			if s.FetchErr != nil {
				return fmt.Errorf("menu: %w", s.FetchErr)
			}
			ui.Panel(a.stdout, menuLines(s))
			return nil
		},
	}
}

func menuLines(s shop.State) []string {
	t := ui.Current()
	v := view.Catalog(s)

	lines := []string{
		fmt.Sprintf("%s   %s %d", t.Title.Render("Menu"), t.Accent.Render("Total"), len(v.Entries)),
		"",
	}
	if len(v.Entries) == 0 {
		return append(lines, t.Muted.Render("no pizzas available"))
	}
	for _, e := range v.Entries {
		sel := view.Selection(s.SelectItem(e.ItemID))
		lines = append(lines, fmt.Sprintf("%s %s  %s",
			t.Muted.Render(fmt.Sprintf("%3d.", e.ItemID)), e.Label, t.Muted.Render(sel.Toppings)))
	}
	return lines
}

// -------------- order ----------------

type orderFlags struct {
	adds   []string
	name   string
	zip    string
	dryRun bool
}

func (a *app) orderCmd() *cobra.Command {
	var f orderFlags
	cmd := &cobra.Command{
		Use:   "order",
		Short: "Build an order from flags and send it",
		Example: `  pizza order --add 1=2 --add 3=1 --name "Ada" --zip 1010
  pizza order --add 2=1 --dry-run`,
		Args: usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runOrder(cmd, f)
		},
	}
	cmd.Flags().StringArrayVar(&f.adds, "add", nil, "line to add as <item id>=<amount> (repeatable)")
	cmd.Flags().StringVar(&f.name, "name", "", "contact name")
	cmd.Flags().StringVar(&f.zip, "zip", "", "zip code")
	cmd.Flags().BoolVar(&f.dryRun, "dry-run", false, "print the order as JSON instead of sending it")
	return cmd
}

func (a *app) runOrder(cmd *cobra.Command, f orderFlags) error {
	lines, err := parseLines(f.adds)
	if err != nil {
		return err
	}
	if err := a.setup(false); err != nil {
		return err
	}

	items, err := a.client.FetchCatalog(cmd.Context())
	s := shop.New().StartLoading().CatalogFetched(items, err)
	if s.FetchErr != nil {
		return fmt.Errorf("order: %w", s.FetchErr)
	}

	for _, l := range lines {
		s = s.SelectItem(l.ItemID)
		if s.Selected == nil {
			return fmt.Errorf("order: no item with id %d on the menu", l.ItemID)
		}
		if s, err = s.UpdateAmount(l.Amount).AddSelectedToOrder(); err != nil {
			return fmt.Errorf("order: %w", err)
		}
	}

	s, order, err := s.PrepareSubmit(shop.InputMap{element.Name: f.name, element.Zip: f.zip})
	if err != nil {
		return fmt.Errorf("order: %w", err)
	}
	summary, err := orderLines(s)
	if err != nil {
		return fmt.Errorf("order: %w", err)
	}

	if f.dryRun {
		enc := json.NewEncoder(a.stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(order)
	}

	ui.Panel(a.stdout, summary)
	if err := a.client.SubmitOrder(cmd.Context(), order); err != nil {
		return err
	}
	a.logger.Info("order sent", zap.Int("lines", len(order.Items)))
	ui.OK(a.stdout, "order sent")
	return nil
}

func orderLines(s shop.State) ([]string, error) {
	t := ui.Current()
	v, err := view.Order(s)
	if err != nil {
		return nil, err
	}
	lines := []string{t.Title.Render(view.OrderTitle), ""}
	for _, l := range v.Lines {
		lines = append(lines, t.SymBullet+" "+l.Label)
	}
	lines = append(lines, "",
		t.Muted.Render("name: ")+v.Name,
		t.Muted.Render("zip:  ")+v.ZipCode)
	return lines, nil
}

// parseLines reads --add values of the form <item id>=<amount>.
func parseLines(adds []string) ([]model.OrderLine, error) {
	if len(adds) == 0 {
		return nil, usagef("order: at least one --add <id>=<amount> is required")
	}
	out := make([]model.OrderLine, 0, len(adds))
	for _, raw := range adds {
		idStr, amountStr, ok := strings.Cut(raw, "=")
		if !ok {
			return nil, usagef("order: --add %q: want <id>=<amount>", raw)
		}
		id, err := strconv.Atoi(strings.TrimSpace(idStr))
		if err != nil {
			return nil, usagef("order: --add %q: id is not a number", raw)
		}
		amount, err := strconv.Atoi(strings.TrimSpace(amountStr))
		if err != nil {
			return nil, usagef("order: --add %q: amount is not a number", raw)
		}
		out = append(out, model.OrderLine{ItemID: id, Amount: amount})
	}
	return out, nil
}

// -------------- config ----------------

func (a *app) configCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the config file",
	}

	var force bool
	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write the default config file",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := a.opt.ConfigPath
			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("config: %s already exists (use --force to overwrite)", path)
			}
			cfg := config.DefaultConfig()
			a.applyFlags(cfg)
			if err := cfg.Save(path); err != nil {
				return err
			}
			ui.OK(a.stdout, "wrote "+path)
			return nil
		},
	}
	initCmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")

	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Print the effective config",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(a.opt.ConfigPath)
			if err != nil {
				return err
			}
			a.applyFlags(cfg)
			if cfg.API.Token != "" {
				cfg.API.Token = "***"
			}
			out, err := yaml.Marshal(cfg)
			if err != nil {
				return fmt.Errorf("config: %w", err)
			}
			_, err = a.stdout.Write(out)
			return err
		},
	}

	cmd.AddCommand(initCmd, showCmd)
	return cmd
}
