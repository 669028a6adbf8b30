package formatter

import (
	"bytes"
	"fmt"
	"io"

	"github.com/mcncl/semjson/internal/analyzer"
	"github.com/mcncl/semjson/internal/models"
)

// Summary writes the counts of s on one line followed by one line per change:
//
//	3 unchanged. 1 removed. 2 added.
//	- /items/1 number
//	+ /items/1 string
//	+ /name string
func Summary(w io.Writer, s analyzer.Summary, color bool) error {
	var neutral, added, removed, reset string
	if color {
		neutral, added, removed, reset = colorNeutral, colorAdded, colorRemoved, colorReset
	}

	buf := &bytes.Buffer{}
	fmt.Fprintf(buf, "%s%d unchanged.%s", neutral, s.Unchanged, reset)
	fmt.Fprintf(buf, " %s%d removed.%s", removed, s.Removed, reset)
	fmt.Fprintf(buf, " %s%d added.%s\n", added, s.Added, reset)

	for _, change := range s.Changes {
		path := change.Path
		if path == "" {
			path = "(root)"
		}
		switch change.Side {
		case models.SideLeft:
			fmt.Fprintf(buf, "%s- %s %s%s\n", removed, path, change.Kind, reset)
		case models.SideRight:
			fmt.Fprintf(buf, "%s+ %s %s%s\n", added, path, change.Kind, reset)
		}
	}

	_, err := w.Write(buf.Bytes())
	return err
}
