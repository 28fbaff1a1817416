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

// Package page wraps rendered charts in standalone HTML documents, and
// provides the Sinks that charts are rendered to.
package page

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/safehtml"
	"github.com/google/safehtml/template"
	"github.com/google/safehtml/uncheckedconversions"

	"github.com/ilhamster/chartviz/canvas"
	"github.com/ilhamster/chartviz/render"
)

const documentTemplate = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
body { margin: 16px; background: #FFFFFF; }
.chart { display: inline-block; margin: 8px; }
g.legend-entry.hidden { opacity: 0.4; }
</style>
</head>
<body>
{{range .Charts}}<div class="chart">{{.}}</div>
{{end}}<script>
document.querySelectorAll('g.legend[data-click-hide="true"] g.legend-entry').forEach(function(entry) {
  entry.addEventListener('click', function() {
    var hidden = entry.classList.toggle('hidden');
    var series = entry.getAttribute('data-series');
    entry.ownerSVGElement.querySelectorAll('g.glyph').forEach(function(g) {
      if (g.getAttribute('data-series') === series) {
        g.style.display = hidden ? 'none' : '';
      }
    });
  });
});
</script>
</body>
</html>
`

var document = template.Must(template.New("document").Parse(documentTemplate))

type documentData struct {
	Title  string
	Charts []safehtml.HTML
}

// WriteSVG writes an HTML document titled title and embedding the
// provided SVG documents, which must be produced by this module's
// renderers.
func WriteSVG(w io.Writer, title string, svgs ...string) error {
	data := documentData{Title: title}
	for _, s := range svgs {
		data.Charts = append(data.Charts, uncheckedconversions.HTMLFromStringKnownToSatisfyTypeContract(stripDeclaration(s)))
	}
	return document.Execute(w, data)
}

// stripDeclaration removes a leading XML declaration, which has no place
// inside an HTML document.
func stripDeclaration(svg string) string {
	svg = strings.TrimSpace(svg)
	if strings.HasPrefix(svg, "<?xml") {
		if end := strings.Index(svg, "?>"); end >= 0 {
			return strings.TrimSpace(svg[end+2:])
		}
	}
	return svg
}

// Write renders c and writes it to w as an HTML document.
func Write(w io.Writer, c *canvas.Canvas) error {
	var buf bytes.Buffer
	if err := render.SVG(&buf, c); err != nil {
		return err
	}
	title := c.Config().Title
	if title == "" {
		title = "Chart"
	}
	return WriteSVG(w, title, buf.String())
}

// WriterSink renders canvases as HTML documents to W.
type WriterSink struct {
	W io.Writer
}

// Show renders c to the receiver's writer.
func (ws WriterSink) Show(c *canvas.Canvas) error {
	return Write(ws.W, c)
}

// FileSink renders canvases as HTML files.
type FileSink struct {
	// Dir is the output directory; empty means the working directory.
	Dir string
	// Name is the output file's base name; empty means a new temporary
	// file.
	Name string
	// Written holds the paths written so far.
	Written []string
}

// Show renders c to the receiver's file.
func (fs *FileSink) Show(c *canvas.Canvas) error {
	var buf bytes.Buffer
	if err := Write(&buf, c); err != nil {
		return err
	}
	path, err := WriteFile(fs.Dir, fs.Name, buf.Bytes())
	if err != nil {
		return err
	}
	fs.Written = append(fs.Written, path)
	return nil
}

// OutputPath returns the path of the HTML file named name in dir.  An
// empty dir is the working directory, and a missing ".html" extension is
// added.
func OutputPath(dir, name string) (string, error) {
	if name == "" {
		return "", fmt.Errorf("no output name")
	}
	if strings.ContainsRune(name, filepath.Separator) {
		return "", fmt.Errorf("output name '%s' must not contain a path separator", name)
	}
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("failed to find working directory: %w", err)
		}
		dir = wd
	}
	if filepath.Ext(name) != ".html" {
		name += ".html"
	}
	return filepath.Join(dir, name), nil
}

// WriteFile writes contents to the HTML file named name in dir, or to a
// new temporary file if name is empty, and returns its path.
func WriteFile(dir, name string, contents []byte) (string, error) {
	if name == "" {
		f, err := os.CreateTemp(dir, "chartviz-*.html")
		if err != nil {
			return "", fmt.Errorf("failed to create output file: %w", err)
		}
		defer f.Close()
		if _, err := f.Write(contents); err != nil {
			return "", fmt.Errorf("failed to write '%s': %w", f.Name(), err)
		}
		return f.Name(), nil
	}
	path, err := OutputPath(dir, name)
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(path, contents, 0o644); err != nil {
		return "", fmt.Errorf("failed to write '%s': %w", path, err)
	}
	return path, nil
}
