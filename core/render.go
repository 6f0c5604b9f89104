package core

// Renderer is the terminal boundary the core draws through. Implementations
// style and position the text; the core itself never writes to the terminal.
type Renderer interface {
	// PrintRow prints plain text at the given screen row.
	PrintRow(row int, text string) error

	// PrintAnnotatedRow prints text with resolved highlight ranges at the
	// given screen row.
	PrintAnnotatedRow(row int, s AnnotatedString) error
}
