package cli

// Output formats accepted by --output.
const (
	OutputTable = "table"
	OutputJSON  = "json"
	OutputYAML  = "yaml"
)

// TabWidth is the width of tabs in formatted output.
const TabWidth = 2
