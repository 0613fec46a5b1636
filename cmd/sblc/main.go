/*
sblc is a console utility translating a Snowball stemmer source file
into a Go package implementing the same algorithm. Usage is

	sblc [-p <name>] [-o <name>] <file.sbl>

-p <name> defines the generated Go package name, default is the
directory name of the output file;

-o <name> defines the output file name, default is the name of the
input file with a .go suffix;

<file.sbl> is a Snowball source file parsable by sbc.TranslateFile().
*/
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/snowballc/sbc"
)

var (
	inFileName, outFileName, packageName string
)

func main() {
	flag.Usage = func() {
		fmt.Fprintln(flag.CommandLine.Output(), "Usage is  sblc [-p <name>] [-o <name>] <file.sbl>")
		flag.PrintDefaults()
		fmt.Fprintln(flag.CommandLine.Output(), "  <file.sbl>")
		fmt.Fprintln(flag.CommandLine.Output(), "\tSnowball source file name")
	}

	flag.StringVar(&outFileName, "o", "", "output file name, default is the name of the input file with a .go suffix")
	flag.StringVar(&packageName, "p", "", "Go package name, default is the dir name of the output file")
	flag.Parse()
	inFileName = flag.Arg(0)
	if inFileName == "" {
		flag.Usage()
		os.Exit(2)
	}

	if outFileName == "" {
		ext := filepath.Ext(inFileName)
		outFileName = inFileName[:len(inFileName)-len(ext)] + ".go"
	}
	if packageName == "" {
		dir, e := filepath.Abs(outFileName)
		if e != nil {
			fail(e)
		}
		dir, _ = filepath.Split(dir)
		_, packageName = filepath.Split(dir[:len(dir)-1])
	}

	src, e := sbc.TranslateFile(inFileName, packageName)
	if e == nil {
		e = os.WriteFile(outFileName, []byte(src), 0o666)
	}
	if e != nil {
		fail(e)
	}
}

func fail(e error) {
	fmt.Fprintln(os.Stderr, e.Error())
	os.Exit(1)
}
