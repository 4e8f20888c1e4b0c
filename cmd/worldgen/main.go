package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"tileworld/internal/config"
	"tileworld/internal/render"
	"tileworld/internal/world"
)

// overrides are the command line values applied over the loaded
// configuration. Zero values leave the configuration untouched.
type overrides struct {
	configPath  string
	seed        int64
	phrase      string
	out         string
	mode        string
	scale       int
	writeConfig string
	// labels is nil unless -labels was passed.
	labels *bool
}

func main() {
	var o overrides
	flag.StringVar(&o.configPath, "config", "", "TOML configuration file; defaults are used when empty")
	flag.Int64Var(&o.seed, "seed", 0, "seed overriding the configuration")
	flag.StringVar(&o.phrase, "seed-phrase", "", "phrase hashed into the seed")
	flag.StringVar(&o.out, "out", "", "PNG output path overriding the configuration")
	flag.StringVar(&o.mode, "mode", "", "visualization mode: height, heat, moisture or biome")
	flag.IntVar(&o.scale, "scale", 0, "pixels per cell in the preview")
	labels := flag.Bool("labels", true, "draw settlement names on the preview")
	flag.StringVar(&o.writeConfig, "write-config", "", "write the effective configuration to this path")
	debug := flag.Bool("debug", false, "enable debug logging")
	flag.Parse()
	flag.Visit(func(f *flag.Flag) {
		if f.Name == "labels" {
			o.labels = labels
		}
	})

	level := slog.LevelInfo
	if *debug {
		level = slog.LevelDebug
	}
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	if err := run(log, o); err != nil {
		log.Error("World generation failed.", "error", err)
		os.Exit(1)
	}
}

// apply writes every set override into uc.
func (o overrides) apply(uc *config.UserConfig) {
	if o.phrase != "" {
		uc.World.Seed, uc.World.SeedPhrase = 0, o.phrase
	}
	if o.seed != 0 {
		uc.World.Seed = o.seed
	}
	if o.mode != "" {
		uc.Terrain.Mode = o.mode
	}
	if o.out != "" {
		uc.Render.Output = o.out
	}
	if o.scale > 0 {
		uc.Render.Scale = o.scale
	}
	if o.labels != nil {
		uc.Render.Labels = *o.labels
	}
}

func run(log *slog.Logger, o overrides) error {
	uc := config.DefaultConfig()
	if o.configPath != "" {
		var err error
		if uc, err = config.Load(o.configPath); err != nil {
			return err
		}
	}
	o.apply(&uc)

	if o.writeConfig != "" {
		if err := config.Write(o.writeConfig, uc); err != nil {
			return err
		}
		log.Info("Wrote configuration.", "path", o.writeConfig)
	}

	cfg, err := uc.Config(log)
	if err != nil {
		return err
	}
	res, err := world.Generate(cfg, world.NewRand(uc.Seed()))
	if err != nil {
		return err
	}
	for _, rerr := range res.RiverErrors {
		log.Debug("River skipped.", "error", rerr)
	}
	for _, s := range res.Settlements {
		log.Debug("Settlement.", "name", s.Name, "biome", s.Biome, "coord", s.Coord)
	}

	img, err := render.Preview(res.Map, res.Settlements, render.PreviewOptions{
		Scale:  uc.Render.Scale,
		Labels: uc.Render.Labels,
	})
	if err != nil {
		return fmt.Errorf("render preview: %w", err)
	}
	if err := render.WritePNG(uc.Render.Output, img); err != nil {
		return err
	}
	log.Info("Wrote preview.",
		"path", uc.Render.Output,
		"seed", uc.Seed(),
		"mode", cfg.Terrain.Mode,
		"slowest", res.Profile.TopN(3))
	return nil
}
