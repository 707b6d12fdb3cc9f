package ui

import (
	"io"

	"github.com/fatih/color"
)

const (
	symCheck = "✔"
	symCross = "✖"
)

var (
	okColor   = color.New(color.FgGreen)
	failColor = color.New(color.FgRed)
	infoColor = color.New(color.FgCyan)
)

// SetColor forces color on or off. fatih/color already disables it when
// stdout is not a terminal or NO_COLOR is set.
func SetColor(enabled bool) {
	color.NoColor = !enabled
}

func OK(w io.Writer, msg string)   { okColor.Fprintln(w, symCheck+" "+msg) }
func Fail(w io.Writer, msg string) { failColor.Fprintln(w, symCross+" "+msg) }

// Label prints "label: value" with the label highlighted.
func Label(w io.Writer, label, value string) {
	infoColor.Fprint(w, label+":")
	io.WriteString(w, " "+value+"\n")
}
