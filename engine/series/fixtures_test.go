package series

import (
	"github.com/chartpool/chartpool/engine/datasource"
	"github.com/chartpool/chartpool/engine/schema"
)

// Test schema graph: books relate to authors, authors relate to countries.
// Sales is a second, unrelated table for cross-table mismatch cases.

func newBookModel() *schema.Model {
	country := schema.NewModel("country",
		&schema.Field{Name: "name", VerboseName: "Country Name", Direct: true},
	)
	author := schema.NewModel("author",
		&schema.Field{Name: "name", VerboseName: "Author Name", Direct: true},
		&schema.Field{Name: "country", AttName: "country_id", VerboseName: "Country", Related: country, Direct: true},
	)
	return schema.NewModel("book",
		&schema.Field{Name: "title", VerboseName: "Title", Direct: true},
		&schema.Field{Name: "rating", VerboseName: "Rating", Direct: true},
		&schema.Field{Name: "genre", VerboseName: "Genre", Direct: true},
		&schema.Field{Name: "author", AttName: "author_id", VerboseName: "Author", Related: author, Direct: true},
	)
}

func newBookSource() *datasource.TableSource {
	return datasource.NewTableSource(newBookModel())
}

func newSalesSource() *datasource.TableSource {
	sales := schema.NewModel("sales",
		&schema.Field{Name: "amount", VerboseName: "Amount", Direct: true},
		&schema.Field{Name: "month", VerboseName: "Month", Direct: true},
	)
	return datasource.NewTableSource(sales)
}
