// Package charm is a small framework for commands built from a tree of
// Specs, each of which parses its own flags with the standard flag package
// and hands the remaining arguments to its child or to its Run method.
package charm

import (
	"errors"
	"flag"
)

var (
	// NeedHelp is returned by Run to have Exec print the help page of
	// the command instead of an error.
	NeedHelp   = errors.New("help")
	ErrNotLeaf = errors.New("no internal leaf found")
)

type Constructor func(Command, *flag.FlagSet) (Command, error)

type Command interface {
	Run([]string) error
}

// InternalLeaf is implemented by a command with children that also runs
// on its own.  Its leaf flags apply only when no child is named.
type InternalLeaf interface {
	SetLeafFlags(*flag.FlagSet)
}

type Spec struct {
	Name  string
	Usage string
	Short string
	Long  string
	New   Constructor
	// Hidden omits the command from its parent's help.
	Hidden bool
	// HiddenFlags is a comma-separated list of flags left out of help
	// unless -hidden is given.
	HiddenFlags string
	// RedactedFlags is a comma-separated list of flags whose default
	// values are left out of help.
	RedactedFlags string
	// InternalLeaf marks a command whose constructor returns an
	// InternalLeaf.  It is explicit since a child command may embed its
	// parent's command struct.
	InternalLeaf bool

	children []*Spec
}

func (s *Spec) Add(child *Spec) {
	s.children = append(s.children, child)
}

func (s *Spec) lookupSub(name string) *Spec {
	for _, child := range s.children {
		if child.Name == name {
			return child
		}
	}
	return nil
}

// Exec parses args down the command tree and runs the command they name.
// Help is printed to standard output when it is asked for with -h or
// when the command returns NeedHelp.
func (s *Spec) Exec(args []string) error {
	path, rest, showHidden, err := parse(s, args, nil, true)
	if errors.Is(err, ErrNotLeaf) {
		path, rest, showHidden, err = parse(s, args, nil, false)
	}
	if err == nil {
		err = path.run(rest)
	}
	if !errors.Is(err, NeedHelp) {
		return err
	}
	specs, err := parseHelp(s, args)
	if err != nil {
		return err
	}
	displayHelp(specs, showHidden)
	return nil
}
