package styles

// Status icons for check and progress output.
var (
	IconPass = "✔"
	IconWarn = "●"
	IconFail = "✘"
)
