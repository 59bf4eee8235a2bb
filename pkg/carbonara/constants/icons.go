package constants

// Icon glyphs for use with icon fonts (Material Design Icons).
const (
	Folder = "\U000F024B" // Nested folder rows in ROM lists
)
