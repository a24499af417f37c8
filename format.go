package pbcodec

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Format writes n as an indented tree, one field per line:
//
//	example.people.Person {
//	  1 name (string) = "Ada"
//	  6 home (example.places.Address) {
//	    3 zip (uint32) = 10115
//	  }
//	}
func (n *Node) Format(w io.Writer) error {
	bw := bufio.NewWriter(w)
	header := n.TypeName
	if header == "" {
		header = "message"
	}
	fmt.Fprintf(bw, "%s {\n", header)
	for _, c := range n.Children {
		c.format(bw, 1)
	}
	fmt.Fprintln(bw, "}")
	return bw.Flush()
}

// String returns the Format output.
func (n *Node) String() string {
	var sb strings.Builder
	_ = n.Format(&sb)
	return sb.String()
}

func (n *Node) format(w *bufio.Writer, depth int) {
	indent := strings.Repeat("  ", depth)
	label := strconv.Itoa(int(n.Number))
	if n.Name != "" {
		label += " " + n.Name
	}
	if n.TypeName != "" {
		label += " (" + n.TypeName + ")"
	} else {
		label += " [" + n.WireType.String() + "]"
	}

	if !n.Message {
		fmt.Fprintf(w, "%s%s = %s\n", indent, label, n.Value)
		return
	}
	fmt.Fprintf(w, "%s%s {\n", indent, label)
	for _, c := range n.Children {
		c.format(w, depth+1)
	}
	fmt.Fprintf(w, "%s}\n", indent)
}
