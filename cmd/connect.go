package cmd

import (
	"fmt"

	"github.com/alexiusacademia/gorcd/internal/connectivity"
	"github.com/alexiusacademia/gorcd/internal/development"
	"github.com/spf13/cobra"
)

var (
	connectFile  string
	connectNode  int
	connectFace  string
	connectEnd   string
	connectGroup string
)

var connectCmd = &cobra.Command{
	Use:   "connect",
	Short: "Resolve how bars end at a node",
	Long: `Resolve the anchorage of the bar groups at one node of a development:
continuous through the node, hooked, or developed straight, with the
anchor point, terminal point, hook leg and straight length.

Nodes are numbered from 0 at the left end. End 1 is the span on the
left of the node, end 2 the span on its right. Omitted face, end or
group flags select all of them.

Examples:
  gorcd connect -f beam.json --node 1
  gorcd connect -f beam.json --node 0 --face top --end 2 --group main`,
	Run: runConnect,
}

func init() {
	rootCmd.AddCommand(connectCmd)

	connectCmd.Flags().StringVarP(&connectFile, "file", "f", "", "Path to development file (json, yaml) [required]")
	connectCmd.Flags().IntVar(&connectNode, "node", 0, "Node number (from 0)")
	connectCmd.Flags().StringVar(&connectFace, "face", "", "Face: top or bottom")
	connectCmd.Flags().StringVar(&connectEnd, "end", "", "End: 1 or 2")
	connectCmd.Flags().StringVar(&connectGroup, "group", "", "Bar group: main, l1 or l2")
	connectCmd.MarkFlagRequired("file")
}

func runConnect(cmd *cobra.Command, args []string) {
	logger := loggerFromContext(cmd.Context())
	dev, err := loadDevelopment(connectFile, logger)
	if err != nil {
		fmt.Printf("Error loading development: %v\n", err)
		return
	}
	if connectNode < 0 || connectNode >= len(dev.Nodes) {
		fmt.Printf("Error: node %d out of range (0..%d)\n", connectNode, len(dev.Nodes)-1)
		return
	}
	if len(dev.Nodes) != len(dev.Spans)+1 {
		fmt.Printf("Error: %d nodes do not bound %d spans\n", len(dev.Nodes), len(dev.Spans))
		return
	}

	faces := development.Faces
	if connectFace != "" {
		f, err := development.ParseFace(connectFace)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		faces = []development.Face{f}
	}
	ends := []development.End{development.End1, development.End2}
	if connectEnd != "" {
		e, err := development.ParseEnd(connectEnd)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		if !dev.HasEnd(connectNode, e) {
			fmt.Printf("Error: node %d has no %s\n", connectNode, e)
			return
		}
		ends = []development.End{e}
	}
	groups := development.BarGroups
	if connectGroup != "" {
		g, err := development.ParseBarGroup(connectGroup)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		groups = []development.BarGroup{g}
	}

	r := connectivity.NewResolver(dev, nil)
	var out []connectivity.Resolution
	for _, f := range faces {
		for _, e := range ends {
			if !dev.HasEnd(connectNode, e) {
				continue
			}
			for _, g := range groups {
				out = append(out, r.Resolve(connectNode, f, e, g))
			}
		}
	}

	printBanner("NODE CONNECTIVITY")
	n := dev.Nodes[connectNode]
	w := newTable()
	fmt.Fprintf(w, "  Node:\t%d %s\n", connectNode, n.Name)
	fmt.Fprintf(w, "  a1 / a2:\t%.3f / %.3f m\n", n.A1, n.A2)
	fmt.Fprintf(w, "  b1 / b2:\t%.3f / %.3f m\n", n.B1, n.B2)
	fmt.Fprintf(w, "  Position:\t%s\n", nodePosition(dev, connectNode))
	w.Flush()
	fmt.Println()

	printConnections(out)
}

func nodePosition(dev *development.Development, i int) string {
	switch {
	case dev.IsInternal(i):
		return "internal"
	case i == 0:
		return "left end"
	}
	return "right end"
}

// printConnections prints one line per resolution.
func printConnections(out []connectivity.Resolution) {
	w := newTable()
	fmt.Fprintf(w, "  Node\tFace\tEnd\tGroup\tKind\tAnchor (x, y)\tTerminal (x, y)\tLength (m)\tLeg (m)\tNote\n")
	fmt.Fprintf(w, "  ────\t────\t───\t─────\t────\t─────────────\t───────────────\t──────────\t───────\t────\n")
	for _, c := range out {
		if !c.Active {
			fmt.Fprintf(w, "  %d\t%s\t%s\t%s\t%s\t-\t-\t-\t-\tno bars\n", c.Node, c.Face, c.End, c.Group, c.Kind)
			continue
		}
		note := ""
		if c.Clipped {
			note = "clipped to node face"
		}
		leg := "-"
		if c.Leg != nil {
			leg = fmt.Sprintf("%.3f", c.LegM)
		}
		fmt.Fprintf(w, "  %d\t%s\t%s\t%s\t%s\t(%.3f, %.3f)\t(%.3f, %.3f)\t%.3f\t%s\t%s\n",
			c.Node, c.Face, c.End, c.Group, c.Kind,
			c.Anchor.X, c.Anchor.Y, c.Terminal.X, c.Terminal.Y, c.LengthM, leg, note)
	}
	w.Flush()
	fmt.Println()
}
