package document

// Block is one segment of a document body. The set of implementations
// is closed: prose is Markdown, and the fenced forms are Summary,
// Figure, Log, and Code. Consumers switch over the concrete types.
type Block interface {
	block()
}

// Markdown is a run of plain prose between fenced blocks.
type Markdown struct {
	Content string
}

// Summary is the abstract of a document, from a :::summary fence.
type Summary struct {
	Content string
}

// Figure references an image asset, from a :::figure fence. Caption
// and Alt are empty when the fence did not carry them.
type Figure struct {
	Path    string
	Caption string
	Alt     string
}

// Log is a verbatim run/output transcript, from a :::log fence.
type Log struct {
	Content string
}

// Code is a captioned source listing, from a :::code fence. Language
// and Caption are empty when the fence did not carry them.
type Code struct {
	Language string
	Caption  string
	Content  string
}

func (Markdown) block() {}
func (Summary) block()  {}
func (Figure) block()   {}
func (Log) block()      {}
func (Code) block()     {}
