package cli

import (
	"bufio"
	"context"
	"strings"
	"testing"
)

type fakeExec struct {
	loggedIn bool

	calls []string
	args  [][]string
}

func (f *fakeExec) record(name string, args []string) error {
	f.calls = append(f.calls, name)
	f.args = append(f.args, args)
	return nil
}

func (f *fakeExec) isLoggedIn() bool { return f.loggedIn }
func (f *fakeExec) Login(ctx context.Context) error {
	f.loggedIn = true
	return f.record("login", nil)
}
func (f *fakeExec) List(ctx context.Context) error { return f.record("list", nil) }
func (f *fakeExec) Search(ctx context.Context, args []string) error {
	return f.record("search", args)
}
func (f *fakeExec) Filter(ctx context.Context, args []string) error {
	return f.record("filter", args)
}
func (f *fakeExec) Tags(ctx context.Context) error { return f.record("tags", nil) }
func (f *fakeExec) Show(ctx context.Context, args []string) error {
	return f.record("show", args)
}
func (f *fakeExec) Add(ctx context.Context) error        { return f.record("add", nil) }
func (f *fakeExec) NewContact(ctx context.Context) error { return f.record("new", nil) }
func (f *fakeExec) Edit(ctx context.Context, args []string) error {
	return f.record("edit", args)
}
func (f *fakeExec) Tag(ctx context.Context, args []string) error {
	return f.record("tag", args)
}
func (f *fakeExec) Untag(ctx context.Context, args []string) error {
	return f.record("untag", args)
}
func (f *fakeExec) Remove(ctx context.Context, args []string) error {
	return f.record("rm", args)
}
func (f *fakeExec) Users(ctx context.Context) error { return f.record("users", nil) }
func (f *fakeExec) Find(ctx context.Context, args []string) error {
	return f.record("find", args)
}
func (f *fakeExec) Profile(ctx context.Context, args []string) error {
	return f.record("profile", args)
}
func (f *fakeExec) Logout(ctx context.Context) error {
	f.loggedIn = false
	return f.record("logout", nil)
}

func silencePrintln(t *testing.T) {
	t.Helper()
	orig := printlnFn
	printlnFn = func(...any) (int, error) { return 0, nil }
	t.Cleanup(func() { printlnFn = orig })
}

func TestRunREPL_LoginFlowAndCommands(t *testing.T) {
	silencePrintln(t)

	input := strings.NewReader(strings.Join([]string{
		"help",
		"login",
		"help",
		"list",
		"search data eng",
		"filter Work",
		"show 123",
		"tags",
		"foobar",
		"exit",
	}, "\n"))

	exec := &fakeExec{loggedIn: false}
	sc := bufio.NewScanner(input)

	runREPL(context.Background(), exec, func() string { return "status" }, sc)

	want := []string{"login", "list", "search", "filter", "show", "tags"}
	if len(exec.calls) != len(want) {
		t.Fatalf("calls mismatch: got %v, want %v", exec.calls, want)
	}
	for i, c := range exec.calls {
		if c != want[i] {
			t.Fatalf("commands order mismatch: got %v, want %v", exec.calls, want)
		}
	}
}

func TestRunREPL_ArgsPassedThrough(t *testing.T) {
	silencePrintln(t)

	input := strings.NewReader("tag 7 Work NYC\nuntag 7 NYC\nfind jane doe\nquit\n")
	exec := &fakeExec{loggedIn: true}

	runREPL(context.Background(), exec, func() string { return "" }, bufio.NewScanner(input))

	wantArgs := [][]string{
		{"7", "Work", "NYC"},
		{"7", "NYC"},
		{"jane", "doe"},
	}
	if len(exec.args) != len(wantArgs) {
		t.Fatalf("args mismatch: %v", exec.args)
	}
	for i, got := range exec.args {
		if strings.Join(got, " ") != strings.Join(wantArgs[i], " ") {
			t.Fatalf("args[%d] = %v, want %v", i, got, wantArgs[i])
		}
	}
}

func TestRunREPL_EmptyLinesAndEOF(t *testing.T) {
	silencePrintln(t)

	input := strings.NewReader("\n\n   \n")
	exec := &fakeExec{loggedIn: true}

	runREPL(context.Background(), exec, func() string { return "" }, bufio.NewScanner(input))

	if len(exec.calls) != 0 {
		t.Fatalf("unexpected calls: %v", exec.calls)
	}
}
