// seehuhn.de/go/sketch - a raster drawing engine
// Copyright (C) 2026  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

// Command sketch renders drawings without an interactive host.
//
// Usage:
//
//	sketch render drawing.yaml -o drawing.png
//	sketch scenes --out testdata/scenes
//	sketch config > sketch.toml
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"seehuhn.de/go/sketch"
	"seehuhn.de/go/sketch/canvas"
	"seehuhn.de/go/sketch/config"
	"seehuhn.de/go/sketch/internal/scenes"
	"seehuhn.de/go/sketch/script"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

type options struct {
	configFile string
	logLevel   string
}

func newRootCmd() *cobra.Command {
	opt := &options{}
	root := &cobra.Command{
		Use:          "sketch",
		Short:        "Render raster drawings from scripts",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVarP(&opt.configFile, "config", "c", "", "configuration file (TOML)")
	root.PersistentFlags().StringVar(&opt.logLevel, "log-level", "", "log level, overrides the configuration")

	root.AddCommand(
		newRenderCmd(opt),
		newScenesCmd(opt),
		newConfigCmd(opt),
	)
	return root
}

// setup loads the configuration and installs the logger.
func (opt *options) setup() (config.Config, error) {
	cfg := config.Default()
	if opt.configFile != "" {
		var err error
		cfg, err = config.Load(opt.configFile)
		if err != nil {
			return config.Config{}, err
		}
	}
	if opt.logLevel != "" {
		cfg.LogLevel = opt.logLevel
		if err := cfg.Validate(); err != nil {
			return config.Config{}, err
		}
	}

	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.Level()})
	sketch.SetLogger(slog.New(handler))
	return cfg, nil
}

func newRenderCmd(opt *options) *cobra.Command {
	var out, format string
	var logical bool
	cmd := &cobra.Command{
		Use:   "render SCRIPT",
		Short: "Render a JSON or YAML drawing script to an image file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opt.setup()
			if err != nil {
				return err
			}
			s, err := script.Load(args[0])
			if err != nil {
				return err
			}
			if out == "" {
				ext := filepath.Ext(args[0])
				out = args[0][:len(args[0])-len(ext)] + ".png"
			}
			f, err := outputFormat(out, format)
			if err != nil {
				return err
			}

			ed, err := sketch.New(s.Configure(cfg))
			if err != nil {
				return err
			}
			if err := s.Apply(ed); err != nil {
				return err
			}
			return writeFile(out, func(w io.Writer) error {
				if !logical {
					return ed.ExportContentAsImage(w, f)
				}
				ed.RenderContent()
				c := ed.Config()
				img := canvas.Scale(ed.Content().Image(), c.Width, c.Height)
				return canvas.Encode(w, img, f)
			})
		},
	}
	cmd.Flags().StringVarP(&out, "output", "o", "", "output file (default: script name with .png)")
	cmd.Flags().StringVarP(&format, "format", "f", "", "image format (default: from the output file name)")
	cmd.Flags().BoolVar(&logical, "logical", false, "scale the image to the logical size of the drawing")
	return cmd
}

func newScenesCmd(opt *options) *cobra.Command {
	var dir, format string
	cmd := &cobra.Command{
		Use:   "scenes",
		Short: "Render the built-in example scenes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opt.setup()
			if err != nil {
				return err
			}
			f, err := canvas.ParseFormat(format)
			if err != nil {
				return err
			}
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return err
			}

			for _, category := range scenes.Categories() {
				for _, s := range scenes.All[category] {
					name := scenes.FullName(category, s)
					ed, err := s.Editor(cfg)
					if err != nil {
						return fmt.Errorf("%s: %w", name, err)
					}
					fname := filepath.Join(dir, name+"."+string(f))
					err = writeFile(fname, func(w io.Writer) error {
						return ed.ExportContentAsImage(w, f)
					})
					if err != nil {
						return fmt.Errorf("%s: %w", name, err)
					}
					fmt.Fprintln(cmd.OutOrStdout(), fname)
				}
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&dir, "out", "o", "scenes", "output directory")
	cmd.Flags().StringVarP(&format, "format", "f", "png", "image format")
	return cmd
}

func newConfigCmd(opt *options) *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration in TOML format",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opt.setup()
			if err != nil {
				return err
			}
			data, err := cfg.Marshal()
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
}

// outputFormat chooses the image format from an explicit name, or else
// from the output file name.
func outputFormat(fname, name string) (canvas.Format, error) {
	if name != "" {
		return canvas.ParseFormat(name)
	}
	return canvas.FormatForFile(fname)
}

// writeFile creates fname and fills it using write.  The file is removed
// again if writing fails.
func writeFile(fname string, write func(io.Writer) error) error {
	f, err := os.Create(fname)
	if err != nil {
		return err
	}
	err = write(f)
	if closeErr := f.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		os.Remove(fname)
	}
	return err
}
