// Package sbc is a source-to-source compiler for the Snowball stemming
// algorithm language: it translates a .sbl program into a standalone
// Go package implementing the same algorithm, wiring together
// package parser, package sem, and package codegen (spec §6, "one
// source file yields one compilation unit").
package sbc

import (
	"os"

	"github.com/snowballc/sbc/codegen"
	"github.com/snowballc/sbc/errors"
	"github.com/snowballc/sbc/parser"
	"github.com/snowballc/sbc/sem"
	"github.com/snowballc/sbc/source"
)

// TranslateString compiles the Snowball program text into a Go source
// file in package pkg, returning an *errors.Error tagged with the
// phase that failed (lex/parse/semantic) on any error.
func TranslateString(name, text, pkg string) (string, error) {
	src := source.New(name, []byte(text))
	prog, err := parser.ParseProgram(src)
	if err != nil {
		return "", err
	}
	sp, err := sem.Analyze(prog)
	if err != nil {
		return "", err
	}
	out, err := codegen.Generate(pkg, sp)
	if err != nil {
		return "", err
	}
	return out, nil
}

// TranslateFile reads path, compiles it, and returns the generated Go
// source. pkg names the package the generated file declares.
func TranslateFile(path, pkg string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", errors.New(errors.IO, 0, 0, "reading %s: %s", path, err)
	}
	return TranslateString(path, string(data), pkg)
}
