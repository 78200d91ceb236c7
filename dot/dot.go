// Package dot renders a Graphviz DOT snapshot of a timeline.Timeline, the
// way ScuttleSort's original demo harness did: hash-pointer edges point
// from each event to its resolved predecessors, time flows left to
// right (rankdir=RL), and every node is labeled with its rank. The core
// Timeline never imports this package; Graphviz emission is kept an
// external collaborator, per spec.md §1.
package dot

import (
	"fmt"
	"io"

	"github.com/jtomasevic/scuttlesort/timeline"
)

// Write emits tl's current snapshot as a DOT graph to w.
func Write(w io.Writer, tl *timeline.Timeline) error {
	fmt.Fprintln(w, "digraph {")
	fmt.Fprintln(w, "  rankdir=RL;")
	fmt.Fprintln(w, "  splines=true;")
	fmt.Fprintln(w, "  subgraph dag {")
	fmt.Fprintln(w, "    node[shape=Mrecord];")

	for name := range tl.All() {
		e, err := tl.Event(name)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "    %q [label=%q]\n", e.Name, fmt.Sprintf("%s\\nr=%d", e.Name, e.Rank()))
		for _, p := range e.Predecessors() {
			fmt.Fprintf(w, "    %q -> %q\n", e.Name, p.Name)
		}
	}

	fmt.Fprintln(w, "  }")
	fmt.Fprintln(w, "  subgraph time {")
	fmt.Fprintln(w, "    node[shape=plain];")
	fmt.Fprintln(w, `    " t" -> " " [dir=back];`)
	fmt.Fprintln(w, "  }")
	fmt.Fprintln(w, "}")
	return nil
}
