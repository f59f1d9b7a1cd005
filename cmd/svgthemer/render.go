package main

import (
	"fmt"
	"image/color"
	"io"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/jung-kurt/gofpdf"
	"github.com/spf13/cobra"

	"github.com/benoitkugler/svgtheme/style"
	"github.com/benoitkugler/svgtheme/svgdraw"
	"github.com/benoitkugler/svgtheme/svgpdf"
	"github.com/benoitkugler/svgtheme/svgraster"
)

type renderOptions struct {
	theme  string
	out    string
	format string
	scale  float64
}

func newRenderCmd(a *app) *cobra.Command {
	var opts renderOptions
	cmd := &cobra.Command{
		Use:   "render <svg>",
		Short: "Render an SVG image with a theme",
		Long:  "Render an SVG image to PNG or PDF, with the rules of the given theme applied to its shapes. Without --theme, the image is drawn with its own styles.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("format") {
				opts.format = a.cfg.Render.Format
			}
			if !cmd.Flags().Changed("scale") {
				opts.scale = a.cfg.Render.Scale
			}
			if opts.out == "" {
				base := strings.TrimSuffix(filepath.Base(args[0]), filepath.Ext(args[0]))
				opts.out = filepath.Join(a.cfg.Render.OutputDir, base+"."+opts.format)
			}
			return a.render(cmd.OutOrStdout(), args[0], opts)
		},
	}
	cmd.Flags().StringVar(&opts.theme, "theme", "", "theme document (.json, .yaml or .yml)")
	cmd.Flags().StringVarP(&opts.out, "out", "o", "", "output file (default: <output_dir>/<svg name>.<format>)")
	cmd.Flags().StringVar(&opts.format, "format", "png", "output format: png or pdf")
	cmd.Flags().Float64Var(&opts.scale, "scale", 1, "scale factor applied to the image size")
	return cmd
}

func (a *app) render(stdout io.Writer, svgPath string, opts renderOptions) error {
	if opts.scale <= 0 {
		return fmt.Errorf("invalid scale %g", opts.scale)
	}
	if opts.format != "png" && opts.format != "pdf" {
		return fmt.Errorf("unsupported format %q", opts.format)
	}
	var background color.NRGBA
	if bg := a.cfg.Render.Background; bg != "" {
		var err error
		if background, err = style.ParseHexColor(bg); err != nil {
			return fmt.Errorf("invalid background %q: %w", bg, err)
		}
	}

	cache := a.newCache()
	img := svgdraw.ThemedImage{Image: cache.Image(svgPath), Theme: cache.Theme(opts.theme)}
	if img.Image == nil {
		return fmt.Errorf("can't load image %s", svgPath)
	}
	if img.Theme == nil {
		return fmt.Errorf("can't load theme %s", opts.theme)
	}

	if dir := filepath.Dir(opts.out); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	f, err := os.Create(opts.out)
	if err != nil {
		return err
	}
	defer f.Close()

	renderer := svgdraw.NewRenderer(cache)
	if opts.format == "pdf" {
		err = renderPDF(f, renderer, img, opts.scale, background)
	} else {
		err = renderPNG(f, renderer, img, opts.scale, background)
	}
	if err != nil {
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}

	a.logger.Info("rendered image",
		slog.String("svg", svgPath), slog.String("theme", opts.theme),
		slog.String("out", opts.out), slog.Int("shapes", img.NumShapes()))
	fmt.Fprintln(stdout, opts.out)
	return nil
}

func renderPNG(w io.Writer, renderer *svgdraw.Renderer, img svgdraw.ThemedImage, scale float64, background color.NRGBA) error {
	size := img.Size()
	width, height := int(math.Ceil(size.X*scale)), int(math.Ceil(size.Y*scale))
	if width <= 0 || height <= 0 {
		return fmt.Errorf("empty image size %gx%g", size.X, size.Y)
	}
	canvas := svgraster.NewCanvas(width, height)
	canvas.SetScale(scale)
	if background.A != 0 {
		canvas.Background(background)
	}
	renderer.Draw(canvas, img)
	return canvas.WritePNG(w)
}

// renderPDF writes a one page document, one image pixel being one point
func renderPDF(w io.Writer, renderer *svgdraw.Renderer, img svgdraw.ThemedImage, scale float64, background color.NRGBA) error {
	size := img.Size()
	width, height := size.X*scale, size.Y*scale
	if width <= 0 || height <= 0 {
		return fmt.Errorf("empty image size %gx%g", size.X, size.Y)
	}
	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		UnitStr: "pt",
		Size:    gofpdf.SizeType{Wd: width, Ht: height},
	})
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPage()
	if background.A != 0 {
		pdf.SetFillColor(int(background.R), int(background.G), int(background.B))
		pdf.Rect(0, 0, width, height, "F")
	}
	canvas := svgpdf.NewCanvas(pdf)
	canvas.SetScale(scale)
	renderer.Draw(canvas, img)
	return pdf.Output(w)
}
