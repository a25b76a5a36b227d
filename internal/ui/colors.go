// Package ui holds the ANSI styling shared by the CLI help and result output.
package ui

const (
	reset = "\033[0m"
	bold  = "\033[1m"
	dim   = "\033[2m"

	cyan   = "\033[36m"
	green  = "\033[32m"
	yellow = "\033[33m"
	white  = "\033[97m"
	red    = "\033[31m"
)

// Heading styles the command name at the top of help output.
func Heading(s string) string {
	return bold + cyan + s + reset
}

// Section styles a help section title.
func Section(s string) string {
	return bold + white + s + reset
}

// Command styles command names and usage lines.
func Command(s string) string {
	return cyan + s + reset
}

// Flag styles flag names and example invocations.
func Flag(s string) string {
	return green + s + reset
}

// Bold styles a product title.
func Bold(s string) string {
	return bold + s + reset
}

// Success styles a recorded price.
func Success(s string) string {
	return green + s + reset
}

// Info styles notices such as the diagnostics location.
func Info(s string) string {
	return dim + yellow + s + reset
}

// Error styles a failed run line.
func Error(s string) string {
	return red + s + reset
}

// Dim styles secondary detail like candidate lists.
func Dim(s string) string {
	return dim + s + reset
}
