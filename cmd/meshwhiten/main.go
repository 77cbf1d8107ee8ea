// Command meshwhiten runs the mesh-geometry whitening and embedding
// analysis: load simulation output, PCA-whiten, embed to 2D, render
// scatter charts colored by run, temperature and pressure.
//
// Flags mirror the constants the original one-off script hard-coded;
// a YAML config file (--config) and MESHWHITEN_* environment variables
// may override them via viper.
package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/katalvlaran/meshwhiten/pipeline"
)

const envPrefix = "MESHWHITEN"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var cfgFile string
	defaults := pipeline.DefaultConfig()

	cmd := &cobra.Command{
		Use:   "meshwhiten",
		Short: "PCA-whiten simulation mesh geometry and chart its 2D embedding",
		Long: `meshwhiten loads the input and final geometry of a simulation batch,
decorrelates channel data with PCA whitening (batch mode for the input
geometries, per-image mode for each final geometry), projects the whitened
results to 2D with classical MDS, and renders scatter charts colored by
run, temperature and pressure.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			v := viper.New()
			v.SetEnvPrefix(envPrefix)
			v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
			v.AutomaticEnv()
			if err := v.BindPFlags(cmd.Flags()); err != nil {
				return err
			}
			if cfgFile != "" {
				v.SetConfigFile(cfgFile)
				if err := v.ReadInConfig(); err != nil {
					return fmt.Errorf("read config: %w", err)
				}
			}

			log, err := zap.NewDevelopment()
			if err != nil {
				return err
			}
			defer log.Sync() //nolint:errcheck // stderr sync failure is unactionable

			cfg := pipeline.Config{
				Root:    v.GetString("root"),
				OutDir:  v.GetString("out"),
				Runs:    v.GetInt("runs"),
				Epsilon: v.GetFloat64("epsilon"),
			}
			p, err := pipeline.New(cfg, pipeline.WithLogger(log))
			if err != nil {
				return err
			}

			summary, err := p.Run(context.Background())
			if err != nil {
				return err
			}
			for _, path := range summary.Plots {
				cmd.Println(path)
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&cfgFile, "config", "", "optional YAML config file")
	cmd.Flags().String("root", defaults.Root, "simulation output directory")
	cmd.Flags().String("out", defaults.OutDir, "directory for rendered charts")
	cmd.Flags().Int("runs", defaults.Runs, "number of simulation runs")
	cmd.Flags().Float64("epsilon", defaults.Epsilon, "whitening stabilization constant")

	return cmd
}
