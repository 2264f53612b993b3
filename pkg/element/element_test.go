package element

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestNew(t *testing.T) {
	body := New("body", true)
	if body.Tag() != "body" {
		t.Errorf("Tag() = %q, want %q", body.Tag(), "body")
	}
	if !body.IsClosed() {
		t.Error("IsClosed() = false, want true")
	}
	if body.Value() != "" {
		t.Errorf("Value() = %q, want empty", body.Value())
	}
	if body.Len() != 0 {
		t.Errorf("Len() = %d, want 0", body.Len())
	}
	if len(body.Attrs()) != 0 {
		t.Errorf("Attrs() = %v, want empty", body.Attrs())
	}
}

func TestFrom(t *testing.T) {
	tests := []struct {
		name string
		pair Pair
		want string
	}{
		{"closed", Pair{Tag: "div", Closed: true}, "<div></div>"},
		{"void", Pair{Tag: "br"}, "<br>"},
		{"built tag", Pair{Tag: string([]byte("section")), Closed: true}, "<section></section>"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			el := From(tt.pair)
			if got := el.Render(); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
			if got := New(tt.pair.Tag, tt.pair.Closed).Render(); got != el.Render() {
				t.Errorf("From and New disagree: %q vs %q", el.Render(), got)
			}
		})
	}
}

func TestSetValue(t *testing.T) {
	div := New("div", true)
	if err := div.SetValue("first"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := div.SetValue("second"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if div.Value() != "second" {
		t.Errorf("Value() = %q, want overwrite to %q", div.Value(), "second")
	}
}

func TestSetValueOnVoid(t *testing.T) {
	for _, tag := range []string{"meta", "input", "br", "img", "div"} {
		t.Run(tag, func(t *testing.T) {
			el := New(tag, false)
			err := el.SetValue("text")
			if !errors.Is(err, ErrUnclosedTag) {
				t.Fatalf("err = %v, want ErrUnclosedTag", err)
			}
			if el.Value() != "" {
				t.Errorf("Value() = %q, want unchanged empty text", el.Value())
			}
		})
	}
}

func TestAddValue(t *testing.T) {
	div := New("div", true).AddValue("Hello").AddValue(" world")
	if div.Value() != "Hello world" {
		t.Errorf("Value() = %q, want %q", div.Value(), "Hello world")
	}

	div = New("div", true).AddValue("Привет мир").AddValue("Мир привет")
	if got, want := div.Render(), "<div>Привет мирМир привет</div>"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestAddValueOnVoidIsSilent(t *testing.T) {
	input := New("input", false)
	if got := input.AddValue("ignored"); got != input {
		t.Error("AddValue should return the receiver")
	}
	if input.Value() != "" {
		t.Errorf("Value() = %q, want empty", input.Value())
	}
	if got := input.Render(); got != "<input>" {
		t.Errorf("got %q, want %q", got, "<input>")
	}
}

func TestAdd(t *testing.T) {
	p1 := New("p", true)
	p2 := New("p", true)
	div := New("div", true).Add(p1).Add(p2)

	if div.Len() != 2 {
		t.Errorf("Len() = %d, want 2", div.Len())
	}
	if got, want := div.Render(), "<div><p></p><p></p></div>"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestAddOnVoidDropsChild(t *testing.T) {
	meta := New("meta", false).Add(New("p", true))
	if meta.Len() != 0 {
		t.Errorf("Len() = %d, want 0", meta.Len())
	}
	if got := meta.Render(); got != "<meta>" {
		t.Errorf("got %q, want %q", got, "<meta>")
	}
}

func TestAddNil(t *testing.T) {
	div := New("div", true).Add(nil)
	if div.Len() != 0 {
		t.Errorf("Len() = %d, want 0", div.Len())
	}
	if err := div.Push(nil); err != nil {
		t.Errorf("Push(nil) err = %v", err)
	}
	if div.Len() != 0 {
		t.Errorf("Len() = %d, want 0", div.Len())
	}
}

func TestPush(t *testing.T) {
	div := New("div", true)
	if err := div.Push(New("p", true)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := div.Push(New("p", true)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if div.Len() != 2 {
		t.Errorf("Len() = %d, want 2", div.Len())
	}

	input := New("input", false)
	if err := div.Push(input); err != nil {
		t.Errorf("pushing a void child into a closed parent should succeed: %v", err)
	}
}

func TestPushOnVoid(t *testing.T) {
	input := New("input", false)
	err := input.Push(New("div", true))
	if !errors.Is(err, ErrUnclosedTag) {
		t.Fatalf("err = %v, want ErrUnclosedTag", err)
	}
	if input.Len() != 0 {
		t.Errorf("Len() = %d, want 0", input.Len())
	}
}

func TestChildIsolation(t *testing.T) {
	span := New("span", true)
	div := New("div", true).Add(span)

	if err := span.SetValue("changed"); err != nil {
		t.Fatal(err)
	}
	span.PushAttr("class", "late")
	if got, want := div.Render(), "<div><span></span></div>"; got != want {
		t.Errorf("parent copy changed after child mutation: got %q, want %q", got, want)
	}

	children := div.Children()
	if err := children[0].SetValue("through view"); err != nil {
		t.Fatal(err)
	}
	children[0].PushAttr("id", "x")
	if got, want := div.Render(), "<div><span></span></div>"; got != want {
		t.Errorf("parent changed through Children(): got %q, want %q", got, want)
	}
}

func TestPushIsolation(t *testing.T) {
	p := New("p", true)
	div := New("div", true)
	if err := div.Push(p); err != nil {
		t.Fatal(err)
	}
	p.Add(New("b", true))
	if got, want := div.Render(), "<div><p></p></div>"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestRemove(t *testing.T) {
	p1 := New("p", true).AddValue("one")
	span := New("span", true)
	div := New("div", true).Add(p1).Add(span)

	removed, err := div.Remove(0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if div.Len() != 1 {
		t.Errorf("Len() = %d, want 1", div.Len())
	}
	if got, want := removed.Render(), "<p>one</p>"; got != want {
		t.Errorf("removed = %q, want %q", got, want)
	}
	if got, want := div.Render(), "<div><span></span></div>"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestRemoveKeepsOrder(t *testing.T) {
	div := New("ul", true)
	for _, v := range []string{"a", "b", "c", "d"} {
		div.Add(New("li", true).AddValue(v))
	}

	if _, err := div.Remove(1); err != nil {
		t.Fatal(err)
	}

	var got []string
	for _, c := range div.Children() {
		got = append(got, c.Value())
	}
	if diff := cmp.Diff([]string{"a", "c", "d"}, got); diff != "" {
		t.Errorf("children mismatch (-want +got):\n%s", diff)
	}
}

func TestRemoveOutOfBounds(t *testing.T) {
	tests := []struct {
		name  string
		count int
		index int
	}{
		{"empty", 0, 0},
		{"equal to length", 2, 2},
		{"past length", 2, 7},
		{"negative", 2, -1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			div := New("div", true)
			for i := 0; i < tt.count; i++ {
				div.Add(New("p", true))
			}
			before := div.Render()

			removed, err := div.Remove(tt.index)
			if !errors.Is(err, ErrIndexOutOfBounds) {
				t.Fatalf("err = %v, want ErrIndexOutOfBounds", err)
			}
			if removed != nil {
				t.Errorf("removed = %v, want nil", removed)
			}
			if div.Len() != tt.count {
				t.Errorf("Len() = %d, want %d", div.Len(), tt.count)
			}
			if div.Render() != before {
				t.Errorf("tree changed on failed Remove: %q", div.Render())
			}
		})
	}
}

func TestClone(t *testing.T) {
	orig := New("div", true).
		AddAttr("class", "a").
		AddValue("text").
		Add(New("p", true).AddAttr("id", "p1"))

	c := orig.Clone()
	if c.Render() != orig.Render() {
		t.Fatalf("clone renders %q, want %q", c.Render(), orig.Render())
	}

	c.PushAttr("class", "b")
	c.Add(New("hr", false))
	if got, want := orig.Render(), `<div class = "a">text<p id = "p1"></p></div>`; got != want {
		t.Errorf("original changed: got %q, want %q", got, want)
	}

	var nilEl *Element
	if nilEl.Clone() != nil {
		t.Error("Clone of nil should be nil")
	}
}
