package keyword

// ExtractOptions travels with every text handed to an extraction strategy.
type ExtractOptions struct {
	// Field is the record attribute the text came from.
	Field string
	// Language is the collection search language.
	Language string
	// Blacklist holds terms that never become keywords.
	Blacklist Blacklist
}
