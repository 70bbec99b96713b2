package main

import (
	"context"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/YuminosukeSato/scibayes/pkg/errors"
	"github.com/YuminosukeSato/scibayes/pkg/log"
	"github.com/YuminosukeSato/scibayes/preprocessing/games"
)

var featuresCmd = &cobra.Command{
	Use:   "features",
	Short: "Compute per-game history features from a results CSV",
	RunE: func(cmd *cobra.Command, args []string) error {
		in, _ := cmd.Flags().GetString("games")
		out, _ := cmd.Flags().GetString("out")
		if in == "" {
			in = cfg.Data.GamesPath
		}
		if out == "" {
			out = cfg.Data.FeaturesPath
		}
		if in == "" || out == "" {
			return errors.NewValueError("features", "both the games and the output path are required")
		}

		start := time.Now()
		n, err := buildFeatures(cmd.Context(), in, out, cfg.Data.StatVars)
		if err != nil {
			return err
		}
		logger.Info("features written",
			log.OperationKey, log.OperationFeatures,
			log.PathKey, out,
			log.SamplesKey, n,
			log.DurationMsKey, time.Since(start).Milliseconds(),
		)
		okColor.Fprintf(cmd.OutOrStdout(), "wrote %d games to %s\n", n, out)
		return nil
	},
}

func init() {
	featuresCmd.Flags().String("games", "", "game results CSV (default data.games_path)")
	featuresCmd.Flags().StringP("out", "o", "", "features CSV to write (default data.features_path)")
}

func buildFeatures(ctx context.Context, in, out string, statVars []string) (int, error) {
	f, err := os.Open(in)
	if err != nil {
		return 0, errors.Wrap(err, "opening games")
	}
	defer f.Close()

	all, err := games.LoadGames(f, statVars)
	if err != nil {
		return 0, errors.Wrapf(err, "loading %s", in)
	}
	unique := games.UniqueGames(all)
	features, err := games.MakeAllFeatures(ctx, unique, statVars)
	if err != nil {
		return 0, err
	}

	w, err := os.Create(out)
	if err != nil {
		return 0, errors.Wrap(err, "creating features file")
	}
	if err := games.WriteFeatures(w, features, statVars); err != nil {
		w.Close()
		return 0, err
	}
	if err := w.Close(); err != nil {
		return 0, errors.Wrap(err, "closing features file")
	}
	return len(features), nil
}
