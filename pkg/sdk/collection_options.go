package searchable

// CollectionOption configures a collection.
type CollectionOption interface {
	applyCollection(*collectionConfig)
}

// collectionOptionFunc adapts a function to the CollectionOption interface.
type collectionOptionFunc func(*collectionConfig)

func (f collectionOptionFunc) applyCollection(c *collectionConfig) { f(c) }

type collectionConfig struct {
	keywordField string
	fields       []string
	blacklist    []string
	language     string
	err          error
}

// Fields appends source fields whose values feed keyword extraction.
func Fields(names ...string) CollectionOption {
	return collectionOptionFunc(func(c *collectionConfig) {
		c.fields = append(c.fields, names...)
	})
}

// FieldsOf appends the source fields discovered on a struct value or type.
// See DiscoverFields.
func FieldsOf(v any) CollectionOption {
	return collectionOptionFunc(func(c *collectionConfig) {
		fields, err := DiscoverFields(v)
		if err != nil {
			c.err = err
			return
		}
		c.fields = append(c.fields, fields...)
	})
}

// KeywordField sets the attribute that stores keywords. Default "keywords".
func KeywordField(name string) CollectionOption {
	return collectionOptionFunc(func(c *collectionConfig) {
		c.keywordField = name
	})
}

// Blacklist appends terms that never become keywords.
func Blacklist(terms ...string) CollectionOption {
	return collectionOptionFunc(func(c *collectionConfig) {
		c.blacklist = append(c.blacklist, terms...)
	})
}

// Language sets the search language ("english" by default, "none" disables stemming).
func Language(lang string) CollectionOption {
	return collectionOptionFunc(func(c *collectionConfig) {
		c.language = lang
	})
}
