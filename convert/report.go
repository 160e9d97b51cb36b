package convert

import (
	"fmt"
	"io"

	"github.com/dendrascience/lazconv/util"
	"github.com/fatih/color"
	"github.com/taigrr/colorhash"
)

var folderPalette = []color.Attribute{
	color.FgCyan,
	color.FgGreen,
	color.FgYellow,
	color.FgBlue,
	color.FgMagenta,
	color.FgHiCyan,
	color.FgHiGreen,
	color.FgHiBlue,
}

// folderColor gives a folder the same colour on every run.
func folderColor(folder string) *color.Color {
	i := colorhash.HashString(folder) % len(folderPalette)
	if i < 0 {
		i = -i
	}
	return color.New(folderPalette[i])
}

// PrintDiscovery writes per-folder match counts followed by the total.
func PrintDiscovery(w io.Writer, root string, files []string) {
	for _, fc := range util.CountByFolder(files) {
		fmt.Fprintf(w, "  %4d  %s\n", fc.Count, folderColor(fc.Folder).Sprint(fc.Folder))
	}
	fmt.Fprintf(w, "Found %d LAZ files in %s.\n", len(files), root)
}
