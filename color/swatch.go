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

package color

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
)

// WriteSwatches writes one line per palette color to w: the color's rank,
// a block painted in the color, and its hex code.  Color escapes are only
// emitted when the terminal supports them.
func (p *Palette) WriteSwatches(w io.Writer) error {
	for idx, c := range p.colors {
		block := lipgloss.NewStyle().
			Background(lipgloss.Color(c)).
			Render("      ")
		code := lipgloss.NewStyle().
			Foreground(lipgloss.Color(c)).
			Bold(true).
			Render(c)
		if _, err := fmt.Fprintf(w, "%2d %s %s\n", idx, block, code); err != nil {
			return err
		}
	}
	return nil
}
