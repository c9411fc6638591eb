package proctable

import (
	"testing"

	"gitlab.com/tinyland/lab/procpulse/pkg/harvest"
)

func named(name, command string) harvest.ProcessRecord {
	return harvest.ProcessRecord{PID: 1, Name: name, Command: command}
}

func TestCompileBlankMatchesEverything(t *testing.T) {
	m, err := Compile(Query{Text: "   "})
	if err != nil {
		t.Fatalf("Compile failed: %v", err)
	}
	if m.Invalid() {
		t.Error("blank query should not be invalid")
	}
	if !m.Matches(named("anything", "")) {
		t.Error("blank query should match every record")
	}
}

func TestNilMatcherMatchesEverything(t *testing.T) {
	var m *Matcher
	if !m.Matches(named("proc", "")) {
		t.Error("nil matcher should match every record")
	}
	if m.Invalid() {
		t.Error("nil matcher should not report invalid")
	}
}

func TestCompileLiteralQuotesMetacharacters(t *testing.T) {
	m, err := Compile(Query{Text: "a.b"})
	if err != nil {
		t.Fatalf("Compile failed: %v", err)
	}
	if !m.Matches(named("a.b", "")) {
		t.Error("literal query should match itself")
	}
	if m.Matches(named("axb", "")) {
		t.Error("dot in a literal query must not act as a wildcard")
	}
}

func TestCompileIgnoreCase(t *testing.T) {
	sensitive, _ := Compile(Query{Text: "Firefox"})
	if sensitive.Matches(named("firefox", "")) {
		t.Error("case-sensitive query matched a different case")
	}

	insensitive, _ := Compile(Query{Text: "Firefox", IgnoreCase: true})
	if !insensitive.Matches(named("firefox", "")) {
		t.Error("ignore-case query should match any case")
	}
}

func TestCompileWholeWord(t *testing.T) {
	m, _ := Compile(Query{Text: "sh", WholeWord: true})
	if !m.Matches(named("sh", "")) {
		t.Error("whole-word query should match the exact word")
	}
	if m.Matches(named("bash", "")) {
		t.Error("whole-word query must not match inside a larger word")
	}

	loose, _ := Compile(Query{Text: "sh"})
	if !loose.Matches(named("bash", "")) {
		t.Error("substring query should match inside a larger word")
	}
}

func TestCompileRegex(t *testing.T) {
	m, err := Compile(Query{Text: "^fire.*$", Regex: true})
	if err != nil {
		t.Fatalf("Compile failed: %v", err)
	}
	if !m.Matches(named("firefox", "")) {
		t.Error("regex should match")
	}
	if m.Matches(named("xfirefox", "")) {
		t.Error("anchored regex should not match with a prefix")
	}
}

func TestCompileWholeWordWrapsAlternation(t *testing.T) {
	m, _ := Compile(Query{Text: "sh|zsh", Regex: true, WholeWord: true})
	if !m.Matches(named("zsh", "")) {
		t.Error("alternation should match inside word boundaries")
	}
	if m.Matches(named("bash", "")) {
		t.Error("word boundary must apply to the whole alternation")
	}
}

func TestCompileInvalidRegexFallsBackToMatchAll(t *testing.T) {
	m, err := Compile(Query{Text: "([", Regex: true})
	if err == nil {
		t.Fatal("expected an error for an invalid pattern")
	}
	if m == nil {
		t.Fatal("invalid pattern should still return a usable matcher")
	}
	if !m.Invalid() {
		t.Error("matcher should report invalid")
	}
	if !m.Matches(named("whatever", "")) {
		t.Error("invalid pattern should fall back to match-everything")
	}
}

func TestMatchCommandTargetsCommandLine(t *testing.T) {
	rec := named("python3", "python3 manage.py runserver")

	byName, _ := Compile(Query{Text: "runserver"})
	if byName.Matches(rec) {
		t.Error("name matcher should not look at the command line")
	}

	byCmd, _ := Compile(Query{Text: "runserver", MatchCommand: true})
	if !byCmd.Matches(rec) {
		t.Error("command matcher should look at the command line")
	}
}
