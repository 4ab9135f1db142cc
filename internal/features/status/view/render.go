package view

const (
	messagePrefix = "API says: "
	errorPrefix   = "Error: "
)

// Rendering is what a host shows for a view.
type Rendering struct {
	Heading string
	Text    string
	IsError bool
}

// Render projects a DisplayState. It has no side effects.
func Render(s DisplayState) Rendering {
	if s.Error != "" {
		return Rendering{Heading: Heading, Text: errorPrefix + s.Error, IsError: true}
	}
	return Rendering{Heading: Heading, Text: messagePrefix + s.Message}
}
