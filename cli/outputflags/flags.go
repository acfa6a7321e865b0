package outputflags

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/brimdata/cond/sio"
	"github.com/brimdata/cond/sio/anyio"
	"golang.org/x/term"
)

type Flags struct {
	anyio.WriterOpts
	DefaultFormat string
	forceBinary   bool
	jsonPretty    bool
	jsonShortcut  bool
	outputFile    string
	pretty        int
}

func (f *Flags) Options() anyio.WriterOpts {
	return f.WriterOpts
}

func (f *Flags) SetFlags(fs *flag.FlagSet) {
	if f.DefaultFormat == "" {
		f.DefaultFormat = "text"
	}
	fs.StringVar(&f.Format, "f", f.DefaultFormat, "format for output data [arrows,json,null,parquet,text]")
	fs.BoolVar(&f.forceBinary, "B", false, "allow binary output to be sent to a terminal")
	fs.BoolVar(&f.jsonPretty, "J", false, "use formatted JSON output independent of -f option")
	fs.BoolVar(&f.jsonShortcut, "j", false, "use line-oriented JSON output independent of -f option")
	fs.IntVar(&f.pretty, "pretty", 4,
		"tab size to pretty print JSON output (0 for newline-delimited output)")
	fs.StringVar(&f.outputFile, "o", "", "write data to output file")
}

func (f *Flags) Init() error {
	if f.outputFile == "-" {
		f.outputFile = ""
	}
	f.JSON.Pretty = f.pretty
	if f.jsonShortcut || f.jsonPretty {
		if f.Format != f.DefaultFormat {
			return errors.New("cannot use -j or -J with -f")
		}
		f.Format = "json"
		if !f.jsonPretty {
			f.JSON.Pretty = 0
		}
	} else {
		if format := sio.FormatFromPath(f.outputFile); format != "" && f.Format == f.DefaultFormat {
			f.Format = format
		}
		if f.Format == "json" {
			f.JSON.Pretty = 0
		}
	}
	if f.outputFile == "" && isBinary(f.Format) && !f.forceBinary && term.IsTerminal(int(os.Stdout.Fd())) {
		return fmt.Errorf("writing %s to a terminal (use -B to force or -o to write a file)", f.Format)
	}
	return nil
}

func isBinary(format string) bool {
	return format == "arrows" || format == "parquet"
}

func (f *Flags) FileName() string {
	return f.outputFile
}

// Open returns a writer for the output file or standard output.
func (f *Flags) Open() (sio.WriteCloser, error) {
	var wc io.WriteCloser = sio.NopCloser(os.Stdout)
	if f.outputFile != "" {
		file, err := os.Create(f.outputFile)
		if err != nil {
			return nil, err
		}
		wc = file
	}
	w, err := anyio.NewWriter(wc, f.WriterOpts)
	if err != nil {
		wc.Close()
		return nil, err
	}
	return w, nil
}
