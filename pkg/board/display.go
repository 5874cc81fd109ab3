// Copyright © 2024 Rak Laptudirm <rak@laptudirm.com>
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package board

import (
	"fmt"
	"sort"
	"strings"
)

// Theme selects the colors used to draw the board's squares.
type Theme string

const (
	ThemeOff   Theme = "off"
	ThemeBrown Theme = "brown"
	ThemeGreen Theme = "green"
	ThemeGray  Theme = "gray"
)

type palette struct {
	light, dark  string
	white, black string
}

const reset = "\x1b[0m"

var palettes = map[Theme]palette{
	ThemeBrown: {light: "\x1b[48;5;230m", dark: "\x1b[48;5;94m", white: "\x1b[97m", black: "\x1b[30m"},
	ThemeGreen: {light: "\x1b[48;5;157m", dark: "\x1b[48;5;22m", white: "\x1b[97m", black: "\x1b[30m"},
	ThemeGray:  {light: "\x1b[48;5;251m", dark: "\x1b[48;5;240m", white: "\x1b[97m", black: "\x1b[30m"},
}

// Themes returns the names of every known theme.
func Themes() []string {
	themes := []string{string(ThemeOff)}
	for theme := range palettes {
		themes = append(themes, string(theme))
	}

	sort.Strings(themes[1:])
	return themes
}

// ValidTheme reports whether theme names a known theme.
func ValidTheme(theme Theme) bool {
	_, found := palettes[theme]
	return found || theme == ThemeOff
}

// String draws the board as plain text, rank 8 at the top.
func (b *Board) String() string {
	return b.Render(ThemeOff)
}

// Render draws the board with file and rank labels. Unless theme is
// ThemeOff the squares are colored with ANSI escape codes.
func (b *Board) Render(theme Theme) string {
	colors, colored := palettes[theme]

	var sb strings.Builder
	sb.WriteString("  a b c d e f g h\n")

	for row := Size - 1; row >= 0; row-- {
		fmt.Fprintf(&sb, "%d ", row+1)
		for col := 0; col < Size; col++ {
			piece := b.squares[row][col]

			symbol := byte('.')
			if piece != nil {
				symbol = piece.Symbol()
			} else if colored {
				symbol = ' '
			}

			if !colored {
				fmt.Fprintf(&sb, "%c ", symbol)
				continue
			}

			// a1 is a dark square.
			bg := colors.dark
			if (row+col)%2 == 1 {
				bg = colors.light
			}

			fg := colors.black
			if piece != nil && piece.Color() == White {
				fg = colors.white
			}

			fmt.Fprintf(&sb, "%s%s%c %s", bg, fg, symbol, reset)
		}
		fmt.Fprintf(&sb, " %d\n", row+1)
	}

	sb.WriteString("  a b c d e f g h")
	return sb.String()
}
