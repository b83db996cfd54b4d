package colors

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"github.com/harrisonrobin/takt/pkg/model"
)

// Color is a named chart color. CalendarColorID is the closest Google
// Calendar event color.
type Color struct {
	Name            string
	Hex             string
	CalendarColorID string
}

// RGBA decodes Hex. Malformed values decode as black.
func (c Color) RGBA() color.RGBA {
	hex := strings.TrimPrefix(c.Hex, "#")
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil || len(hex) != 6 {
		return color.RGBA{A: 0xff}
	}
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}
}

var named = map[string]Color{
	"blue":   {"blue", "#3b82f6", "9"},
	"green":  {"green", "#22c55e", "10"},
	"red":    {"red", "#ef4444", "11"},
	"yellow": {"yellow", "#eab308", "5"},
	"purple": {"purple", "#a855f7", "3"},
	"pink":   {"pink", "#ec4899", "4"},
	"indigo": {"indigo", "#6366f1", "1"},
	"teal":   {"teal", "#14b8a6", "7"},
	"gray":   {"gray", "#9ca3af", "8"},
}

// Default colors bars whose trade is empty. It is never part of an Assignment.
var Default = named["gray"]

// DefaultPalette is cycled through as new trades appear.
var DefaultPalette = []Color{
	named["blue"],
	named["green"],
	named["red"],
	named["yellow"],
	named["purple"],
	named["pink"],
	named["indigo"],
	named["teal"],
}

// ParsePalette resolves color names or #rrggbb values. An empty list gives
// DefaultPalette.
func ParsePalette(names []string) ([]Color, error) {
	if len(names) == 0 {
		return DefaultPalette, nil
	}
	palette := make([]Color, 0, len(names))
	for _, n := range names {
		n = strings.ToLower(strings.TrimSpace(n))
		if c, ok := named[n]; ok {
			palette = append(palette, c)
			continue
		}
		if len(n) == 7 && n[0] == '#' {
			if _, err := strconv.ParseUint(n[1:], 16, 32); err == nil {
				palette = append(palette, Color{Name: n, Hex: n, CalendarColorID: Default.CalendarColorID})
				continue
			}
		}
		return nil, fmt.Errorf("unknown palette color %q", n)
	}
	return palette, nil
}

// Entry is one legend line.
type Entry struct {
	Trade string
	Color Color
}

// Assignment maps trades to colors in first-seen order.
type Assignment struct {
	entries []Entry
	index   map[string]int
}

// Assign walks tasks in order and gives each new non-empty trade the next
// palette color, wrapping around when the palette runs out.
func Assign(tasks []model.Task, palette []Color) *Assignment {
	if len(palette) == 0 {
		palette = DefaultPalette
	}
	a := &Assignment{index: make(map[string]int)}
	for _, t := range tasks {
		if t.Trade == "" {
			continue
		}
		if _, seen := a.index[t.Trade]; seen {
			continue
		}
		a.index[t.Trade] = len(a.entries)
		a.entries = append(a.entries, Entry{
			Trade: t.Trade,
			Color: palette[len(a.entries)%len(palette)],
		})
	}
	return a
}

// Lookup returns the color for trade, or Default for an empty or unknown trade.
func (a *Assignment) Lookup(trade string) Color {
	if i, ok := a.index[trade]; ok && trade != "" {
		return a.entries[i].Color
	}
	return Default
}

// Entries returns the legend in assignment order.
func (a *Assignment) Entries() []Entry {
	out := make([]Entry, len(a.entries))
	copy(out, a.entries)
	return out
}

func (a *Assignment) Len() int { return len(a.entries) }
