package charm

import (
	"flag"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
)

func displayHelp(specs []*Spec, showHidden bool) {
	writeHelp(os.Stdout, specs, showHidden)
}

func writeHelp(w io.Writer, specs []*Spec, showHidden bool) {
	spec := specs[len(specs)-1]
	var names []string
	for _, s := range specs {
		names = append(names, s.Name)
	}
	fmt.Fprintf(w, "NAME\n    %s - %s\n\n", strings.Join(names, " "), spec.Short)
	fmt.Fprintf(w, "USAGE\n    %s\n\n", spec.Usage)
	if long := strings.TrimSpace(spec.Long); long != "" {
		fmt.Fprintln(w, "DESCRIPTION")
		for _, line := range strings.Split(long, "\n") {
			fmt.Fprintf(w, "    %s\n", line)
		}
		fmt.Fprintln(w)
	}
	if opts := options(spec, showHidden); len(opts) > 0 {
		fmt.Fprintln(w, "OPTIONS")
		for _, opt := range opts {
			fmt.Fprintf(w, "    %s\n", opt)
		}
		fmt.Fprintln(w)
	}
	var children []*Spec
	for _, child := range spec.children {
		if showHidden || !child.Hidden {
			children = append(children, child)
		}
	}
	if len(children) > 0 {
		fmt.Fprintln(w, "COMMANDS")
		for _, child := range children {
			fmt.Fprintf(w, "    %-12s %s\n", child.Name, child.Short)
		}
		fmt.Fprintln(w)
	}
}

func options(spec *Spec, showHidden bool) []string {
	fs := flag.NewFlagSet(spec.Name, flag.ContinueOnError)
	cmd, err := spec.New(nil, fs)
	if err != nil {
		return nil
	}
	if il, ok := cmd.(InternalLeaf); ok && spec.InternalLeaf {
		il.SetLeafFlags(fs)
	}
	hidden := flagSet(spec.HiddenFlags)
	redacted := flagSet(spec.RedactedFlags)
	var out []string
	fs.VisitAll(func(f *flag.Flag) {
		if hidden[f.Name] && !showHidden {
			return
		}
		s := fmt.Sprintf("-%s %s", f.Name, f.Usage)
		if f.DefValue != "" && !redacted[f.Name] {
			s += fmt.Sprintf(" (default %q)", f.DefValue)
		}
		out = append(out, s)
	})
	sort.Strings(out)
	return out
}

func flagSet(s string) map[string]bool {
	m := make(map[string]bool)
	for _, name := range strings.Split(s, ",") {
		if name = strings.TrimSpace(name); name != "" {
			m[name] = true
		}
	}
	return m
}
