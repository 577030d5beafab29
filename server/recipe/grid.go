package recipe

import (
	"fmt"

	"tutorialmod/server/item"
)

// Grid is a snapshot of the input slots of a crafting grid, stored row by row. Recipes only read from a Grid.
type Grid struct {
	Width, Height int
	Slots         []item.Stack
}

// NewGrid returns an empty grid with the dimensions passed.
func NewGrid(width, height int) Grid {
	if width <= 0 || height <= 0 {
		panic(fmt.Sprintf("invalid crafting grid size %vx%v", width, height))
	}
	return Grid{Width: width, Height: height, Slots: make([]item.Stack, width*height)}
}

// Valid reports if the amount of slots in the grid matches its dimensions.
func (g Grid) Valid() bool {
	return g.Width > 0 && g.Height > 0 && len(g.Slots) == g.Width*g.Height
}

// At returns the stack in the column x and row y of the grid.
func (g Grid) At(x, y int) item.Stack {
	if x < 0 || y < 0 || x >= g.Width || y >= g.Height {
		return item.Stack{}
	}
	return g.Slots[y*g.Width+x]
}
