package lexer

import (
	"testing"

	"github.com/snowballc/sbc/source"
)

func lex(t *testing.T, text string) []Token {
	t.Helper()
	l := New(source.New("test.sbl", []byte(text)))
	var toks []Token
	for {
		tok, err := l.Next()
		if err != nil {
			t.Fatalf("source %q: unexpected error: %s", text, err)
		}
		if tok.Kind == EOF {
			return toks
		}
		toks = append(toks, tok)
	}
}

func assertKinds(t *testing.T, toks []Token, kinds ...Kind) {
	t.Helper()
	if len(toks) != len(kinds) {
		t.Fatalf("expected %d tokens, got %d (%v)", len(kinds), len(toks), toks)
	}
	for i, k := range kinds {
		if toks[i].Kind != k {
			t.Fatalf("token %d: expected kind %s, got %s (%q)", i, k, toks[i].Kind, toks[i].Text)
		}
	}
}

func TestEmpty(t *testing.T) {
	for _, src := range []string{"", " ", "  ", " \t\r\n "} {
		if toks := lex(t, src); len(toks) != 0 {
			t.Fatalf("source %q: expected no tokens, got %v", src, toks)
		}
	}
}

func TestIdentVsKeyword(t *testing.T) {
	toks := lex(t, "define foo as among")
	assertKinds(t, toks, Keyword, Ident, Keyword, Keyword)
	if toks[1].Text != "foo" {
		t.Fatalf("expected ident text \"foo\", got %q", toks[1].Text)
	}
}

func TestComments(t *testing.T) {
	toks := lex(t, "define // line comment\ncheck /* block\ncomment */ as 'a'")
	assertKinds(t, toks, Keyword, Ident, Keyword, String)
}

func TestIntLiteral(t *testing.T) {
	toks := lex(t, "loop 12 next")
	assertKinds(t, toks, Keyword, Int, Keyword)
	if toks[1].Text != "12" {
		t.Fatalf("expected \"12\", got %q", toks[1].Text)
	}
}

func TestPunctuation(t *testing.T) {
	toks := lex(t, "$x <- <= <+ == != >= += -= *= /= -> ( ) [ ] < > = + - ,")
	if len(toks) == 0 {
		t.Fatal("expected tokens")
	}
	for _, tok := range toks[2:] {
		if tok.Kind != Punct {
			t.Fatalf("expected punctuation, got %s %q", tok.Kind, tok.Text)
		}
	}
}

func TestStringNoEscape(t *testing.T) {
	toks := lex(t, "'hello world'")
	assertKinds(t, toks, String)
	if toks[0].Text != "hello world" {
		t.Fatalf("expected \"hello world\", got %q", toks[0].Text)
	}
}

func TestStringEscapeDefaultDelimiters(t *testing.T) {
	toks := lex(t, "stringdef a\" hex 'E4' define check as '{a\"}'")
	assertKinds(t, toks, Keyword, Ident, Keyword, String)
	if got, want := toks[3].Text, "ä"; got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestStringEscapeCustomDelimiters(t *testing.T) {
	toks := lex(t, "stringescapes {} stringdef a hex 'E4' define check as '{a}'")
	assertKinds(t, toks, Keyword, Ident, Keyword, String)
	if got, want := toks[3].Text, "ä"; got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestStringEscapeSelfQuote(t *testing.T) {
	toks := lex(t, "stringescapes {} define check as '{'}'")
	assertKinds(t, toks, Keyword, Ident, Keyword, String)
	if toks[3].Text != "'" {
		t.Fatalf("expected a literal quote, got %q", toks[3].Text)
	}
}

func TestUnknownEscapeNameIsError(t *testing.T) {
	l := New(source.New("test.sbl", []byte("'{bogus}'")))
	if _, err := l.Next(); err == nil {
		t.Fatal("expected error for unknown escape name")
	}
}

func TestUnterminatedStringIsError(t *testing.T) {
	l := New(source.New("test.sbl", []byte("'abc")))
	if _, err := l.Next(); err == nil {
		t.Fatal("expected error for unterminated string")
	}
}

func TestStringdefBeforeStringescapesIsError(t *testing.T) {
	l := New(source.New("test.sbl", []byte("stringdef a hex 'E4' stringescapes <>")))
	var err error
	for i := 0; i < 10 && err == nil; i++ {
		_, err = l.Next()
	}
	if err == nil {
		t.Fatal("expected error for stringescapes appearing after a stringdef")
	}
}
