/*
	Copyright 2025 Google Inc.
	Licensed under the Apache License, Version 2.0 (the "License");
	you may not use this file except in compliance with the License.
	You may obtain a copy of the License at
		https://www.apache.org/licenses/LICENSE-2.0
	Unless required by applicable law or agreed to in writing, software
	distributed under the License is distributed on an "AS IS" BASIS,
	WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
	See the License for the specific language governing permissions and
	limitations under the License.
*/

// Package picture lays out images in a labeled grid and writes the grid
// as an HTML document.
package picture

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"html"
	"image"
	_ "image/gif"  // GIF decoding
	_ "image/jpeg" // JPEG decoding
	"image/png"
	"io"
	"log/slog"
	"os"

	svg "github.com/ajstarks/svgo"
	"golang.org/x/image/draw"
	"golang.org/x/sync/errgroup"

	"github.com/ilhamster/chartviz/canvas"
	"github.com/ilhamster/chartviz/page"
)

// DefaultLabel is the label of images given none.
const DefaultLabel = "Plot"

const (
	background    = "#F9F9F9"
	labelHeightPx = 28
	titleHeightPx = 40
	gutterPx      = 10
	// squarePx is the tile size of images drawn without their aspect ratio.
	squarePx = 400
)

// Options configures Grid.
type Options struct {
	// UseOriginalAspect keeps each image's aspect ratio; otherwise images
	// are drawn in square tiles.
	UseOriginalAspect bool
	Title             string
	MaxHeight         int
	MaxWidth          int
	// OutputPath is the directory to write to; empty means the working
	// directory.
	OutputPath string
	// OutputName is the document's base name, without extension; empty
	// means a new temporary file.
	OutputName string
	Logger     *slog.Logger
}

// DefaultOptions returns the default Options.
func DefaultOptions() Options {
	return Options{
		UseOriginalAspect: true,
		Title:             "Picture Plot",
		MaxHeight:         1600,
		MaxWidth:          2200,
	}
}

// Tile is a scaled image and its label.
type Tile struct {
	Label string
	Image *image.RGBA
	// Aspect is the original width to height ratio.
	Aspect float64
}

// ScaleFactor returns the whole percentage to scale a w×h image by to fit
// within maxW×maxH.  Images are scaled up as well as down.
func ScaleFactor(w, h, maxW, maxH int) int {
	wf := maxW * 100 / w
	hf := maxH * 100 / h
	if wf < hf {
		return wf
	}
	return hf
}

// Scale returns src scaled to fit within maxW×maxH, as RGB.
func Scale(src image.Image, maxW, maxH int) (*image.RGBA, error) {
	b := src.Bounds()
	if b.Dx() == 0 || b.Dy() == 0 {
		return nil, fmt.Errorf("empty %dx%d image", b.Dx(), b.Dy())
	}
	factor := ScaleFactor(b.Dx(), b.Dy(), maxW, maxH)
	w, h := b.Dx()*factor/100, b.Dy()*factor/100
	if w == 0 || h == 0 {
		return nil, fmt.Errorf("%dx%d image scales to nothing within %dx%d", b.Dx(), b.Dy(), maxW, maxH)
	}
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.BiLinear.Scale(dst, dst.Bounds(), src, b, draw.Src, nil)
	return dst, nil
}

// Labels returns labels padded with DefaultLabel to n entries.
func Labels(labels []string, n int) []string {
	ret := append([]string{}, labels...)
	for len(ret) < n {
		ret = append(ret, DefaultLabel)
	}
	return ret
}

func load(path string, maxW, maxH int) (*image.RGBA, float64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, err
	}
	defer f.Close()
	src, _, err := image.Decode(f)
	if err != nil {
		return nil, 0, fmt.Errorf("decoding %s: %w", path, err)
	}
	b := src.Bounds()
	img, err := Scale(src, maxW, maxH)
	if err != nil {
		return nil, 0, fmt.Errorf("scaling %s: %w", path, err)
	}
	return img, float64(b.Dx()) / float64(b.Dy()), nil
}

// Load reads, decodes, and scales the images at paths concurrently.
func Load(ctx context.Context, paths, labels []string, opts Options) ([]Tile, error) {
	labels = Labels(labels, len(paths))
	tiles := make([]Tile, len(paths))
	errg, ctx := errgroup.WithContext(ctx)
	for i, path := range paths {
		errg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			img, aspect, err := load(path, opts.MaxWidth, opts.MaxHeight)
			if err != nil {
				return err
			}
			tiles[i] = Tile{Label: labels[i], Image: img, Aspect: aspect}
			return nil
		})
	}
	if err := errg.Wait(); err != nil {
		return nil, err
	}
	return tiles, nil
}

func dataURL(img image.Image) (string, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return "", err
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

// tileSize returns the size a tile's image is drawn at.
func tileSize(t Tile, useAspect bool) (w, h int) {
	b := t.Image.Bounds()
	if useAspect {
		return b.Dx(), b.Dy()
	}
	return squarePx, squarePx
}

// WriteSVG draws tiles side by side in one row, each under its label.
// Several tiles are drawn under title.
func WriteSVG(w io.Writer, tiles []Tile, title string, useAspect bool) error {
	top := 0
	if len(tiles) > 1 {
		top = titleHeightPx
	}
	width, height := gutterPx, 0
	for _, t := range tiles {
		tw, th := tileSize(t, useAspect)
		width += tw + gutterPx
		if th > height {
			height = th
		}
	}
	height += top + labelHeightPx + gutterPx
	urls := make([]string, len(tiles))
	for i, t := range tiles {
		url, err := dataURL(t.Image)
		if err != nil {
			return fmt.Errorf("encoding '%s': %w", t.Label, err)
		}
		urls[i] = url
	}
	var buf bytes.Buffer
	s := svg.New(&buf)
	s.Start(width, height)
	s.Rect(0, 0, width, height, "fill:"+background)
	if top > 0 {
		s.Text(width/2, titleHeightPx*3/4, title, "text-anchor:middle;font-size:20pt;font-family:sans-serif")
	}
	x := gutterPx
	for i, t := range tiles {
		tw, th := tileSize(t, useAspect)
		s.Group(`class="tile"`, `data-label="`+html.EscapeString(t.Label)+`"`)
		s.Text(x+tw/2, top+labelHeightPx*3/4, t.Label, "text-anchor:middle;font-size:12pt;font-family:sans-serif")
		s.Image(x, top+labelHeightPx, tw, th, urls[i], `preserveAspectRatio="none"`)
		s.Gend()
		x += tw + gutterPx
	}
	s.End()
	_, err := w.Write(buf.Bytes())
	return err
}

// Grid loads the images at paths, lays them out in one labeled row, and
// writes the result as an HTML document, returning its path.
func Grid(ctx context.Context, paths, labels []string, opts Options) (string, error) {
	logger := canvas.Logger(opts.Logger)
	var written string
	err := canvas.Guard(logger, "picture grid", func() error {
		if len(paths) == 0 {
			return fmt.Errorf("no images to draw")
		}
		tiles, err := Load(ctx, paths, labels, opts)
		if err != nil {
			return err
		}
		var svgBuf, doc bytes.Buffer
		if err := WriteSVG(&svgBuf, tiles, opts.Title, opts.UseOriginalAspect); err != nil {
			return err
		}
		if err := page.WriteSVG(&doc, opts.Title, svgBuf.String()); err != nil {
			return err
		}
		written, err = page.WriteFile(opts.OutputPath, opts.OutputName, doc.Bytes())
		return err
	})
	if err != nil {
		return "", err
	}
	logger.Debug("drew picture grid", slog.String("path", written), slog.Int("images", len(paths)))
	return written, nil
}
