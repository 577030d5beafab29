package item

// DyeColour is one of the 16 dye colours. The zero value is white.
type DyeColour struct {
	dye uint8
}

type dyeData struct {
	name     string
	colour   Colour
	firework Colour
}

// dyeTable holds the dye colours in declaration order. The index of an entry is its meta value.
var dyeTable = []dyeData{
	{name: "white", colour: ColourFromInt(0xf9fffe), firework: ColourFromInt(0xf0f0f0)},
	{name: "orange", colour: ColourFromInt(0xf9801d), firework: ColourFromInt(0xd87f33)},
	{name: "magenta", colour: ColourFromInt(0xc74ebd), firework: ColourFromInt(0xc354cd)},
	{name: "light_blue", colour: ColourFromInt(0x3ab3da), firework: ColourFromInt(0x6689d3)},
	{name: "yellow", colour: ColourFromInt(0xfed83d), firework: ColourFromInt(0xdecf2a)},
	{name: "lime", colour: ColourFromInt(0x80c71f), firework: ColourFromInt(0x41cd34)},
	{name: "pink", colour: ColourFromInt(0xf38baa), firework: ColourFromInt(0xd88198)},
	{name: "gray", colour: ColourFromInt(0x474f52), firework: ColourFromInt(0x434343)},
	{name: "light_gray", colour: ColourFromInt(0x9d9d97), firework: ColourFromInt(0xababab)},
	{name: "cyan", colour: ColourFromInt(0x169c9c), firework: ColourFromInt(0x287697)},
	{name: "purple", colour: ColourFromInt(0x8932b8), firework: ColourFromInt(0x7b2fbe)},
	{name: "blue", colour: ColourFromInt(0x3c44aa), firework: ColourFromInt(0x253192)},
	{name: "brown", colour: ColourFromInt(0x835432), firework: ColourFromInt(0x51301a)},
	{name: "green", colour: ColourFromInt(0x5e7c16), firework: ColourFromInt(0x3b511a)},
	{name: "red", colour: ColourFromInt(0xb02e26), firework: ColourFromInt(0xb3312c)},
	{name: "black", colour: ColourFromInt(0x1d1d21), firework: ColourFromInt(0x1e1b1b)},
}

// ColourWhite returns the white dye colour.
func ColourWhite() DyeColour { return DyeColour{0} }

// ColourOrange returns the orange dye colour.
func ColourOrange() DyeColour { return DyeColour{1} }

// ColourMagenta returns the magenta dye colour.
func ColourMagenta() DyeColour { return DyeColour{2} }

// ColourLightBlue returns the light blue dye colour.
func ColourLightBlue() DyeColour { return DyeColour{3} }

// ColourYellow returns the yellow dye colour.
func ColourYellow() DyeColour { return DyeColour{4} }

// ColourLime returns the lime dye colour.
func ColourLime() DyeColour { return DyeColour{5} }

// ColourPink returns the pink dye colour.
func ColourPink() DyeColour { return DyeColour{6} }

// ColourGrey returns the grey dye colour.
func ColourGrey() DyeColour { return DyeColour{7} }

// ColourLightGrey returns the light grey dye colour.
func ColourLightGrey() DyeColour { return DyeColour{8} }

// ColourCyan returns the cyan dye colour.
func ColourCyan() DyeColour { return DyeColour{9} }

// ColourPurple returns the purple dye colour.
func ColourPurple() DyeColour { return DyeColour{10} }

// ColourBlue returns the blue dye colour.
func ColourBlue() DyeColour { return DyeColour{11} }

// ColourBrown returns the brown dye colour.
func ColourBrown() DyeColour { return DyeColour{12} }

// ColourGreen returns the green dye colour.
func ColourGreen() DyeColour { return DyeColour{13} }

// ColourRed returns the red dye colour.
func ColourRed() DyeColour { return DyeColour{14} }

// ColourBlack returns the black dye colour.
func ColourBlack() DyeColour { return DyeColour{15} }

// DyeColours returns all dye colours in declaration order.
func DyeColours() []DyeColour {
	c := make([]DyeColour, len(dyeTable))
	for i := range dyeTable {
		c[i] = DyeColour{uint8(i)}
	}
	return c
}

// DyeColourByName looks up a dye colour by its name, such as "light_blue".
func DyeColourByName(name string) (DyeColour, bool) {
	for i, d := range dyeTable {
		if d.name == name {
			return DyeColour{uint8(i)}, true
		}
	}
	return DyeColour{}, false
}

// Name ...
func (d DyeColour) Name() string {
	return dyeTable[d.dye].name
}

// Colour returns the colour a dye of this colour contributes when mixed.
func (d DyeColour) Colour() Colour {
	return dyeTable[d.dye].colour
}

// FireworkColour ...
func (d DyeColour) FireworkColour() Colour {
	return dyeTable[d.dye].firework
}

// Uint8 returns the index of the colour in the dye table.
func (d DyeColour) Uint8() uint8 {
	return d.dye
}

// Dye is an item that carries a fixed colour. Dyes are the colourants of the backpack recolouring recipe.
type Dye struct {
	Colour DyeColour
}

// Colourant returns the colour of the dye.
func (d Dye) Colourant() Colour {
	return d.Colour.Colour()
}

// EncodeItem ...
func (d Dye) EncodeItem() (name string, meta int16) {
	return "minecraft:" + d.Colour.Name() + "_dye", 0
}

// Dyes returns a dye item for every dye colour, in dye order.
func Dyes() (d []Item) {
	for _, c := range DyeColours() {
		d = append(d, Dye{Colour: c})
	}
	return
}
