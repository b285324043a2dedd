package types

// Message is one entry of the news feed. Date is stored and rendered as
// written by the editors.
type Message struct {
	ID      int64  `db:"id" json:"id"`
	Title   string `db:"title" json:"title"`
	Date    string `db:"date" json:"date"`
	Author  string `db:"author" json:"author"`
	Content string `db:"content" json:"content"`
}
