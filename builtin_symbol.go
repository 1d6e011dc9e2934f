package kaja

var (
	symIterator = &valueSymbol{desc: "Symbol.iterator"}
	symSpecies  = &valueSymbol{desc: "Symbol.species"}
)

// SymbolIterator returns the well-known @@iterator symbol.
func SymbolIterator() Value {
	return symIterator
}

// SymbolSpecies returns the well-known @@species symbol.
func SymbolSpecies() Value {
	return symSpecies
}
