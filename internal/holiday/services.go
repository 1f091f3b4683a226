package holiday

import (
	"math/rand"

	"github.com/google/uuid"

	"holiday-calendar/internal/model"
)

// ColorPicker hands out one option from a bounded palette.
type ColorPicker interface {
	Pick() model.ColorOption
}

// IDGenerator returns identifiers that do not collide within a session.
type IDGenerator interface {
	NewID() string
}

// Palette is the set of colors calendars and schedules are painted with.
var Palette = []model.ColorOption{
	{Name: "tomato", Hex: "#d50000"},
	{Name: "flamingo", Hex: "#e67c73"},
	{Name: "tangerine", Hex: "#f4511e"},
	{Name: "banana", Hex: "#f6bf26"},
	{Name: "sage", Hex: "#33b679"},
	{Name: "basil", Hex: "#0b8043"},
	{Name: "peacock", Hex: "#039be5"},
	{Name: "blueberry", Hex: "#3f51b5"},
	{Name: "lavender", Hex: "#7986cb"},
	{Name: "grape", Hex: "#8e24aa"},
	{Name: "graphite", Hex: "#616161"},
}

// RandomColors picks uniformly from Options, or from Palette when Options is empty.
type RandomColors struct {
	Options []model.ColorOption
}

func (r RandomColors) Pick() model.ColorOption {
	opts := r.Options
	if len(opts) == 0 {
		opts = Palette
	}
	return opts[rand.Intn(len(opts))]
}

// UUIDs generates random (v4) UUID strings.
type UUIDs struct{}

func (UUIDs) NewID() string {
	return uuid.NewString()
}
