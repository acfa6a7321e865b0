// Package ztest runs formulaic tests ("ztests") of the conditional
// functions.  A ztest builds a batch of columns, calls a function on some
// of them and checks the result type and values or the error.
//
// A ztest is defined in a YAML file holding a yamlio.Job: the columns field
// is the batch, call names the function and args lists the argument
// columns in order.
//
//	call: multiIf
//	args: [c, x, y]
//
//	columns:
//	  - {name: c, type: bool, values: [true, false]}
//	  - {name: x, type: int8, values: [1, 2]}
//	  - {name: y, type: uint8, values: [3, 4]}
//
//	type: int16
//
//	output: |
//	  1
//	  4
//
// Output is written one row per line in the text format of package textio
// unless the format field names another format understood by
// anyio.NewWriter.
//
// A test that expects a failure gives the exact error text in the error
// field or a regular expression for it in the error-regexp field.
//
//	call: multiIf
//	args: [c, x, c, x]
//
//	columns:
//	  - {name: c, type: bool, values: [true]}
//	  - {name: x, type: int8, values: [1]}
//
//	error: |
//	  invalid number of arguments for function multiIf
//
// Ztest YAML files for a package should reside in a subdirectory named
// testdata/ztest.
//
//	pkg/
//	  pkg.go
//	  pkg_test.go
//	  testdata/
//	    ztest/
//	      test-1.yaml
//	      test-2.yaml
//	      ...
//
// Name YAML files descriptively since each ztest runs as a subtest
// named for the file that defines it.
//
// pkg_test.go should contain a Go test named TestZTest that calls Run.
//
//	func TestZTest(t *testing.T) { ztest.Run(t, "testdata/ztest") }
//
// Tests can be skipped by setting the skip field to a non-empty string.
// A message containing the string will be written to the test log.
package ztest

import (
	"bytes"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/brimdata/cond/runtime"
	"github.com/brimdata/cond/sio"
	"github.com/brimdata/cond/sio/anyio"
	"github.com/brimdata/cond/sio/yamlio"
	"github.com/pmezard/go-difflib/difflib"
	"gopkg.in/yaml.v3"
)

type Bundle struct {
	TestName string
	FileName string
	Test     *ZTest
	Error    error
}

func Load(dirname string) ([]Bundle, error) {
	var bundles []Bundle
	fileinfos, err := os.ReadDir(dirname)
	if err != nil {
		return nil, err
	}
	for _, fi := range fileinfos {
		filename := fi.Name()
		const dotyaml = ".yaml"
		if !strings.HasSuffix(filename, dotyaml) {
			continue
		}
		testname := strings.TrimSuffix(filename, dotyaml)
		filename = filepath.Join(dirname, filename)
		zt, err := FromYAMLFile(filename)
		bundles = append(bundles, Bundle{testname, filename, zt, err})
	}
	return bundles, nil
}

// Run runs the ztests in the directory named dirname.  For each file f.yaml in
// the directory, Run calls FromYAMLFile to load a ztest and then runs it in
// subtest named f.
func Run(t *testing.T, dirname string) {
	bundles, err := Load(dirname)
	if err != nil {
		t.Fatal(err)
	}
	for _, b := range bundles {
		t.Run(b.TestName, func(t *testing.T) {
			t.Parallel()
			if b.Error != nil {
				t.Fatalf("%s: %s", b.FileName, b.Error)
			}
			b.Test.Run(t, b.FileName)
		})
	}
}

// ZTest defines a ztest.
type ZTest struct {
	Skip string `yaml:"skip,omitempty"`
	Tag  string `yaml:"tag,omitempty"`

	yamlio.Job `yaml:",inline"`

	Type    string `yaml:"type,omitempty"`
	Format  string `yaml:"format,omitempty"`
	Output  string `yaml:"output,omitempty"`
	Error   string `yaml:"error,omitempty"`
	ErrorRE string `yaml:"error-regexp,omitempty"`
}

func (z *ZTest) check() error {
	if z.Call == "" {
		return errors.New("call field missing")
	}
	if z.Error != "" && z.ErrorRE != "" {
		return errors.New("must specify at most one of error or error-regexp")
	}
	if z.Output != "" && (z.Error != "" || z.ErrorRE != "") {
		return errors.New("cannot expect both output and an error")
	}
	return nil
}

// FromYAMLFile loads a ZTest from the YAML file named filename.
func FromYAMLFile(filename string) (*ZTest, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	var z ZTest
	if err := dec.Decode(&z); err != nil {
		return nil, err
	}
	var extra yaml.Node
	if err := dec.Decode(&extra); err == nil {
		return nil, errors.New("file must contain one YAML document")
	}
	return &z, nil
}

func (z *ZTest) ShouldSkip() string {
	switch {
	case z.Skip != "":
		return z.Skip
	case z.Tag != "" && z.Tag != os.Getenv("ZTEST_TAG"):
		return fmt.Sprintf("tag %q does not match ZTEST_TAG=%q", z.Tag, os.Getenv("ZTEST_TAG"))
	}
	return ""
}

func (z *ZTest) Run(t *testing.T, filename string) {
	if msg := z.ShouldSkip(); msg != "" {
		t.Skip("skipping test:", msg)
	}
	if err := z.RunInternal(); err != nil {
		t.Fatalf("%s: %s", filename, err)
	}
}

func (z *ZTest) RunInternal() error {
	if err := z.check(); err != nil {
		return fmt.Errorf("bad yaml format: %w", err)
	}
	typ, out, err := z.call()
	var typeDiffErr error
	if z.Type != "" && err == nil && z.Type != typ {
		typeDiffErr = diffErr("type", z.Type+"\n", typ+"\n")
	}
	return errors.Join(typeDiffErr, z.diffInternal(out, err))
}

// call runs the job on a fresh batch and returns the result type and
// the formatted output.
func (z *ZTest) call() (string, string, error) {
	rctx := runtime.DefaultContext()
	defer rctx.Cancel()
	q, err := runtime.CompileQuery(rctx, &z.Job)
	if err != nil {
		return "", "", err
	}
	typ, err := q.Type()
	if err != nil {
		return "", "", err
	}
	col, err := q.Run()
	if err != nil {
		return "", "", err
	}
	if col.Type.String() != typ.String() {
		return "", "", fmt.Errorf("result column has type %s but return type is %s", col.Type, typ)
	}
	var buf bytes.Buffer
	w, err := anyio.NewWriter(sio.NopCloser(&buf), anyio.WriterOpts{Format: z.Format})
	if err != nil {
		return "", "", err
	}
	err = w.Write(col.Vec)
	if err2 := w.Close(); err == nil {
		err = err2
	}
	return typ.String(), buf.String(), err
}

func (z *ZTest) diffInternal(out string, err error) error {
	var outDiffErr, errDiffErr error
	if z.Output != out {
		outDiffErr = diffErr("output", z.Output, out)
	}
	var errStr string
	if err != nil {
		// Append newline if err doesn't end with one.
		errStr = strings.TrimSuffix(err.Error(), "\n") + "\n"
	}
	if z.ErrorRE != "" {
		re, rerr := regexp.Compile(z.ErrorRE)
		if rerr != nil {
			return rerr
		}
		if !re.MatchString(errStr) {
			errDiffErr = fmt.Errorf("error: regexp %q does not match %q", z.ErrorRE, errStr)
		}
	} else if z.Error != errStr {
		errDiffErr = diffErr("error", z.Error, errStr)
	}
	return errors.Join(outDiffErr, errDiffErr)
}

func diffErr(name, expected, actual string) error {
	if !utf8.ValidString(expected) {
		expected = hex.Dump([]byte(expected))
		actual = hex.Dump([]byte(actual))
	}
	diff, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(expected),
		FromFile: "expected",
		B:        difflib.SplitLines(actual),
		ToFile:   "actual",
		Context:  5,
	})
	if err != nil {
		panic("ztest: " + err.Error())
	}
	return fmt.Errorf("expected and actual %s differ:\n%s", name, diff)
}
