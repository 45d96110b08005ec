package phoenixcel

var optionMaxRows = 50
var optionWarnings = true
var optionCuteIndent = "  "

// SetOptionMaxRows changes the max number of rows displayed when printing a Series or DataFrame to n.
// Negative values are treated as 0.
func SetOptionMaxRows(n int) {
	if n < 0 {
		n = 0
	}
	optionMaxRows = n
}

// SetOptionWarnings toggles warnings, such as when mutating a Series that is shared with a DataFrame.
func SetOptionWarnings(set bool) {
	optionWarnings = set
}

// SetOptionCuteIndent changes the indentation used by PrintCute() and WriteCute().
func SetOptionCuteIndent(indent string) {
	optionCuteIndent = indent
}
