// Command scuttlesort is the demo/CLI harness for the timeline package:
// it ingests a dependency graph (from a file, or the built-in worked
// example from ScuttleSort's original demo), prints the resulting
// command stream and rank table, and can write a Graphviz .dot file.
//
// It is intentionally outside the timeline module's core: spec.md §1
// keeps the demo/CLI harness and the Graphviz emitter as external
// collaborators, never imported back into the core.
package main

import (
	"bufio"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/alecthomas/kingpin/v2"
	"github.com/sirupsen/logrus"

	"github.com/jtomasevic/scuttlesort/dot"
	"github.com/jtomasevic/scuttlesort/feed"
)

var (
	app = kingpin.New("scuttlesort", "Incremental topological linearization demo.")

	inputFile = app.Flag("input", "Dependency graph file (lines of 'name: dep1,dep2'); built-in demo graph if omitted.").
			Short('i').String()
	dotFile = app.Flag("dot", "Write a Graphviz .dot snapshot of the final linearization to this path.").
		Short('d').String()
	verbose = app.Flag("verbose", "Set the log level to debug (ins/mov commands are logged at info level either way).").
		Short('v').Bool()
)

// demoGraph is the worked example from ScuttleSort's original demo.py:
// a genesis event X, a side branch Y off X, and a small diamond of
// derived events feeding into E.
var demoGraph = []struct {
	name  string
	after []string
}{
	{"X", nil},
	{"A", []string{"X"}},
	{"D", []string{"B", "C"}},
	{"E", []string{"D", "F"}},
	{"F", []string{"B"}},
	{"B", []string{"A"}},
	{"Y", []string{"X"}},
	{"C", []string{"A"}},
}

func main() {
	kingpin.MustParse(app.Parse(os.Args[1:]))

	log := logrus.StandardLogger()
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	if *verbose {
		log.SetLevel(logrus.DebugLevel)
	}

	graph, err := loadGraph(*inputFile)
	if err != nil {
		log.WithError(err).Fatal("failed to load dependency graph")
	}

	f := feed.New(log)
	for _, n := range graph {
		log.WithField("name", n.name).Info("adding event")
		if _, err := f.Ingest(n.name, n.after); err != nil {
			log.WithError(err).WithField("name", n.name).Fatal("ingest failed")
		}
	}

	printLinearization(f)

	if *dotFile != "" {
		out, err := os.Create(*dotFile)
		if err != nil {
			log.WithError(err).Fatal("failed to create dot file")
		}
		defer out.Close()
		if err := dot.Write(out, f.Timeline); err != nil {
			log.WithError(err).Fatal("failed to write dot file")
		}
		log.WithField("path", *dotFile).Info("wrote graphviz snapshot")
	}
}

func loadGraph(path string) ([]struct {
	name  string
	after []string
}, error) {
	if path == "" {
		return demoGraph, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var graph []struct {
		name  string
		after []string
	}
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		parts := strings.SplitN(line, ":", 2)
		name := strings.TrimSpace(parts[0])
		var after []string
		if len(parts) == 2 {
			for _, dep := range strings.Split(parts[1], ",") {
				dep = strings.TrimSpace(dep)
				if dep != "" {
					after = append(after, dep)
				}
			}
		}
		graph = append(graph, struct {
			name  string
			after []string
		}{name, after})
	}
	return graph, scanner.Err()
}

func printLinearization(f *feed.Feed) {
	fmt.Println("\nlinearization:")
	names := make([]string, 0, f.Timeline.Len())
	for name := range f.Timeline.All() {
		names = append(names, name)
	}
	fmt.Println(" ", names)

	fmt.Println("\nname  rank  successor(s)")
	for name := range f.Timeline.All() {
		e, _ := f.Timeline.Event(name)
		succ := make([]string, 0, len(e.Successors()))
		for _, s := range e.Successors() {
			succ = append(succ, s.Name)
		}
		sort.Strings(succ)
		fmt.Printf("  %-4s %5d  %v\n", e.Name, e.Rank(), succ)
	}

	fmt.Println("\ntips:", f.Timeline.Tips())
	fmt.Printf("\nglobal rev: %d   digest: %016x\n", f.GlobalRev(), f.Digest())
}
