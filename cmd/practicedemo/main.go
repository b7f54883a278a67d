// Command practicedemo arma una práctica veterinaria desde un dataset YAML
// (o el de ejemplo), corre los checks de clínica e imprime el estado.
package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	mem "vet-practice/internal/adapters/storage/memory"
	"vet-practice/internal/config"
	"vet-practice/internal/dataset"
	"vet-practice/internal/domain/registry"
	"vet-practice/internal/platform/logger"
)

const Version = "0.1.0"

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

type app struct {
	svc  *registry.Service
	data *dataset.Dataset
}

func rootCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:           "practicedemo",
		Short:         "Veterinary practice demo",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := setup(cmd, configPath)
			if err != nil {
				return err
			}
			return runDemo(cmd.Context(), cmd.OutOrStdout(), a)
		},
	}

	pf := cmd.PersistentFlags()
	pf.StringVarP(&configPath, "config", "c", "", "Config file path (yaml/json/toml)")
	pf.String("dataset", "", "Dataset YAML path (default: embedded sample)")
	pf.String("log-level", "info", "Log level (debug, info, warn, error)")
	pf.String("log-format", "text", "Log format (text, json)")

	cmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "practicedemo version %s\n", Version)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "check <chip> <clinic>",
		Short: "Report which vets treat a pet at a clinic",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := setup(cmd, configPath)
			if err != nil {
				return err
			}
			return dataset.RunChecks(cmd.Context(), cmd.OutOrStdout(),
				[]dataset.Check{{Chip: args[0], Clinic: args[1]}}, a.svc)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "where <chip>",
		Short: "List every clinic where a pet is treated",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := setup(cmd, configPath)
			if err != nil {
				return err
			}
			return runWhere(cmd.Context(), cmd.OutOrStdout(), a, args[0])
		},
	})

	return cmd
}

// setup: config -> logger -> registry en memoria -> dataset cargado.
func setup(cmd *cobra.Command, configPath string) (*app, error) {
	cfg, err := config.Load(configPath, cmd.Flags())
	if err != nil {
		return nil, err
	}

	opts := cfg.LoggerOptions()
	opts.Output = cmd.ErrOrStderr()
	log := logger.New(opts)

	ds := dataset.Sample()
	if cfg.Dataset != "" {
		ds, err = dataset.Load(cfg.Dataset)
		if err != nil {
			return nil, err
		}
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
		cmd.SetContext(ctx)
	}

	svc := registry.NewService(mem.NewRegistryRepo(), log)
	if err := dataset.Build(ctx, ds, svc); err != nil {
		return nil, err
	}

	log.Info("practice loaded", map[string]any{
		"dataset": datasetName(cfg.Dataset),
		"owners":  len(ds.Owners),
		"pets":    len(ds.Pets),
		"vets":    len(ds.Vets),
		"clinics": len(ds.Clinics),
	})

	return &app{svc: svc, data: ds}, nil
}

func datasetName(path string) string {
	if path == "" {
		return "sample"
	}
	return path
}

func runDemo(ctx context.Context, w io.Writer, a *app) error {
	if err := dataset.RunChecks(ctx, w, a.data.Checks, a.svc); err != nil {
		return err
	}

	owners, err := a.svc.Owners(ctx)
	if err != nil {
		return err
	}
	vets, err := a.svc.Vets(ctx)
	if err != nil {
		return err
	}
	clinics, err := a.svc.Clinics(ctx)
	if err != nil {
		return err
	}

	for _, o := range owners {
		fmt.Fprintln(w, o)
	}
	for _, v := range vets {
		fmt.Fprintln(w, v)
	}
	for _, c := range clinics {
		fmt.Fprintln(w, c)
	}
	return nil
}

func runWhere(ctx context.Context, w io.Writer, a *app, chip string) error {
	p, err := a.svc.PetByChip(ctx, chip)
	if err != nil {
		return fmt.Errorf("pet %q: %w", chip, err)
	}

	where, err := a.svc.WhereTreated(ctx, p)
	if err != nil {
		return err
	}
	if len(where) == 0 {
		fmt.Fprintf(w, "%s is not being treated at any clinic\n", p.Name)
		return nil
	}

	for _, t := range where {
		p.CheckClinic(w, t.Clinic)
	}
	return nil
}
