package colors

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harrisonrobin/takt/pkg/model"
)

func TestAssignFirstSeenRoundRobin(t *testing.T) {
	palette := DefaultPalette[:3]
	tasks := []model.Task{
		{Trade: "Carpenter"},
		{Trade: ""},
		{Trade: "Electrician"},
		{Trade: "Carpenter"},
		{Trade: "Plumber"},
		{Trade: "Painter"},
	}

	a := Assign(tasks, palette)
	require.Equal(t, 4, a.Len())

	entries := a.Entries()
	assert.Equal(t, []string{"Carpenter", "Electrician", "Plumber", "Painter"},
		[]string{entries[0].Trade, entries[1].Trade, entries[2].Trade, entries[3].Trade})
	assert.Equal(t, palette[0], a.Lookup("Carpenter"))
	assert.Equal(t, palette[1], a.Lookup("Electrician"))
	assert.Equal(t, palette[2], a.Lookup("Plumber"))
	assert.Equal(t, palette[0], a.Lookup("Painter"), "palette wraps")
}

func TestAssignEmptyTradeUsesDefault(t *testing.T) {
	a := Assign([]model.Task{{Trade: ""}, {Trade: ""}}, nil)
	assert.Equal(t, 0, a.Len())
	assert.Equal(t, Default, a.Lookup(""))
	assert.Equal(t, Default, a.Lookup("Unknown"))
}

func TestAssignDeterministic(t *testing.T) {
	tasks := []model.Task{{Trade: "B"}, {Trade: "A"}, {Trade: "C"}, {Trade: "A"}}
	first := Assign(tasks, nil).Entries()
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, Assign(tasks, nil).Entries())
	}
}

func TestEntriesIsACopy(t *testing.T) {
	a := Assign([]model.Task{{Trade: "A"}}, nil)
	e := a.Entries()
	e[0].Trade = "mutated"
	assert.Equal(t, "A", a.Entries()[0].Trade)
}

func TestParsePalette(t *testing.T) {
	p, err := ParsePalette(nil)
	require.NoError(t, err)
	assert.Equal(t, DefaultPalette, p)

	p, err = ParsePalette([]string{"Teal", " red ", "#102030"})
	require.NoError(t, err)
	require.Len(t, p, 3)
	assert.Equal(t, "teal", p[0].Name)
	assert.Equal(t, "red", p[1].Name)
	assert.Equal(t, color.RGBA{R: 0x10, G: 0x20, B: 0x30, A: 0xff}, p[2].RGBA())

	_, err = ParsePalette([]string{"chartreuse"})
	assert.Error(t, err)
	_, err = ParsePalette([]string{"#12345"})
	assert.Error(t, err)
}

func TestRGBA(t *testing.T) {
	assert.Equal(t, color.RGBA{R: 0x3b, G: 0x82, B: 0xf6, A: 0xff}, named["blue"].RGBA())
	assert.Equal(t, color.RGBA{A: 0xff}, Color{Hex: "nope"}.RGBA())
}
