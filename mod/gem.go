package mod

// Gem is a gem type of the mod. Every gem has an ore, a storage block and the gem item itself.
type Gem struct {
	name string
}

// Gems holds all gem types in declaration order. Content is registered in this order.
var Gems = []Gem{
	{name: "ruby"},
	{name: "sapphire"},
}

// Name returns the lower case name of the gem, such as ruby.
func (g Gem) Name() string {
	return g.name
}

// OreKey ...
func (g Gem) OreKey() string {
	return Key(g.name + "_ore")
}

// StorageBlockKey ...
func (g Gem) StorageBlockKey() string {
	return Key(g.name + "_block")
}

// ItemKey ...
func (g Gem) ItemKey() string {
	return Key(g.name)
}
