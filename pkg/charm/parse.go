package charm

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"
)

type instance struct {
	spec    *Spec
	command Command
}

type path []instance

func (p path) run(args []string) error {
	return p[len(p)-1].command.Run(args)
}

// parse walks args down the command tree rooted at spec, creating each
// command along the way and parsing its flags.  When leaf is true, the
// leaf flags of an internal leaf are parsed too and ErrNotLeaf is returned
// if a subcommand follows.
func parse(spec *Spec, args []string, parent Command, leaf bool) (path, []string, bool, error) {
	var p path
	var showHidden bool
	for {
		fs := flag.NewFlagSet(spec.Name, flag.ContinueOnError)
		fs.SetOutput(io.Discard)
		var help, hidden bool
		fs.BoolVar(&help, "h", false, "display help")
		fs.BoolVar(&help, "help", false, "display help")
		fs.BoolVar(&hidden, "hidden", false, "show hidden options")
		cmd, err := spec.New(parent, fs)
		if err != nil {
			return nil, nil, false, err
		}
		if il, ok := cmd.(InternalLeaf); ok && spec.InternalLeaf && leaf {
			il.SetLeafFlags(fs)
		}
		if err := fs.Parse(args); err != nil {
			if errors.Is(err, flag.ErrHelp) {
				return nil, nil, hidden, NeedHelp
			}
			return nil, nil, false, fmt.Errorf("%s: %w", spec.Name, err)
		}
		showHidden = showHidden || hidden
		p = append(p, instance{spec, cmd})
		if help {
			return p, nil, showHidden, NeedHelp
		}
		rest := fs.Args()
		if len(rest) > 0 {
			if child := spec.lookupSub(rest[0]); child != nil {
				if spec.InternalLeaf && leaf {
					return nil, nil, false, ErrNotLeaf
				}
				spec, parent, args = child, cmd, rest[1:]
				continue
			}
		}
		return p, rest, showHidden, nil
	}
}

// parseHelp returns the specs named by the leading non-flag words of args.
func parseHelp(spec *Spec, args []string) ([]*Spec, error) {
	specs := []*Spec{spec}
	for _, arg := range args {
		if strings.HasPrefix(arg, "-") {
			continue
		}
		child := spec.lookupSub(arg)
		if child == nil {
			break
		}
		specs = append(specs, child)
		spec = child
	}
	return specs, nil
}
