package expr

import "fmt"

// The arguments of multiIf are laid out as
//
//	cond0, then0, cond1, then1, ..., condN-1, thenN-1, else
//
// so there are always an odd number of at least three.  Positions in this
// file are indexes into the argument list, not batch column indexes.

func CheckArity(n int) error {
	if n < 3 || n%2 == 0 {
		return NewError(ErrArity, -1, fmt.Sprintf("got %d, need an odd number of at least 3", n))
	}
	return nil
}

func condCount(n int) int {
	return (n - 1) / 2
}

func condArg(i int) int {
	return 2 * i
}

func thenArg(i int) int {
	return 2*i + 1
}

func elseArg(n int) int {
	return n - 1
}

// branchArgs returns the positions of the then arguments followed by the
// position of the else argument.
func branchArgs(n int) []int {
	out := make([]int, 0, condCount(n)+1)
	for i := range condCount(n) {
		out = append(out, thenArg(i))
	}
	return append(out, elseArg(n))
}
