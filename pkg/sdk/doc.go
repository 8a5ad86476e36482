// Package searchable is the embedded Go client of the searchable keyword
// engine. Records are plain attribute maps; before each save the configured
// source fields run through keyword extraction, and the normalized keyword
// set is stored in the record's keyword field, which a full-text index
// makes searchable.
//
//	client, _ := searchable.New(ctx,
//	    searchable.WithRedis("localhost:6379", ""),
//	    searchable.WithCollection("books",
//	        searchable.Fields("title", "authors"),
//	        searchable.Blacklist("edition"),
//	    ),
//	)
//	_, _, _ = client.Records("books").Save(ctx, "moby-dick", map[string]any{
//	    "title":   "Moby Dick",
//	    "authors": []string{"Herman Melville"},
//	}, nil)
//	res, _ := client.Search("books").Limit(10).Query(ctx, "moby -whale", nil)
//
// Source fields can be derived from a struct with DiscoverFields:
//
//	type Book struct {
//	    Title   string   `searchable:"title"`
//	    Authors []string `searchable:"authors"`
//	    ISBN    string   `searchable:"isbn,nokeywords"`
//	    Notes   string   `searchable:"-"`
//	}
//
//	searchable.WithCollection("books", searchable.FieldsOf(Book{}))
package searchable
