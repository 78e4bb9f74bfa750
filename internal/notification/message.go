package notification

// Field is one labeled value in a notification message.
type Field struct {
	Title string
	Value string
	Short bool
}

// Message is the structured payload delivered to the notification
// channel: a title, a severity color, and a small set of labeled fields.
type Message struct {
	Title  string
	Color  string
	Fields []Field
}
