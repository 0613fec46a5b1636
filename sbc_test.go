package sbc

import (
	"os"
	"strings"
	"testing"

	"github.com/snowballc/sbc/errors"
)

// TestTranslateStringMinimalBackwards exercises a minimal example
// program: a stem routine that strips a trailing "ly" by scanning
// backward from the end of the word.
func TestTranslateStringMinimalBackwards(t *testing.T) {
	src := `
externals ( stem )
define stem as (
    backwards ( ['ly'] delete )
)
`
	out, err := TranslateString("minimal.sbl", src, "minimal")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, want := range []string{
		"package minimal",
		"func Stem(input string) string",
		"func r_stem(env *runtime.Env, ctx *Context) bool {",
		"savedLimitBackward := env.LimitBackward",
		"env.Cursor = env.Limit",
		"env.EqSB(\"ly\")",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("expected generated source to contain %q, got:\n%s", want, out)
		}
	}
}

// TestTranslateFileGerman2Fixture compiles the German2-style fixture end
// to end through parser, sem, and codegen, checking that every declared
// routine and the externally visible stem entry point are emitted.
func TestTranslateFileGerman2Fixture(t *testing.T) {
	out, err := TranslateFile("testdata/german2.sbl", "german2")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, want := range []string{
		"package german2",
		"func Stem(input string) string",
		"func r_prelude(env *runtime.Env, ctx *Context) bool {",
		"func r_postlude(env *runtime.Env, ctx *Context) bool {",
		"func r_mark_regions(env *runtime.Env, ctx *Context) bool {",
		"func r_R1(env *runtime.Env, ctx *Context) bool {",
		"func r_R2(env *runtime.Env, ctx *Context) bool {",
		"func r_step1(env *runtime.Env, ctx *Context) bool {",
		"func r_step2(env *runtime.Env, ctx *Context) bool {",
		"func r_step3(env *runtime.Env, ctx *Context) bool {",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("expected generated source to contain %q, got:\n%s", want, out)
		}
	}
}

// TestTranslateFileMissingPathIsIOError checks the not-found path reports
// an I/O phase error rather than panicking or returning a bare os error.
func TestTranslateFileMissingPathIsIOError(t *testing.T) {
	_, err := TranslateFile("testdata/does-not-exist.sbl", "x")
	if err == nil {
		t.Fatal("expected an error for a missing file")
	}
	if _, statErr := os.Stat("testdata/does-not-exist.sbl"); statErr == nil {
		t.Fatal("fixture setup broken: file unexpectedly exists")
	}
	if e, ok := err.(*errors.Error); !ok || e.Phase != errors.IO {
		t.Fatalf("expected an I/O phase *errors.Error, got %#v", err)
	}
}
