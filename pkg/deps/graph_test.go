package deps

import "testing"

func TestGraph(t *testing.T) {
	src := &memSource{local: []*Package{
		optdeps(expl("A", 100, "B", "C"), "O"),
		dep("B", 10, "D"),
		dep("C", 20, "D"),
		dep("D", 40),
		dep("O", 5),
	}}
	c := settle(t, src, []string{"A"}, Options{ShowOptional: 1})
	g := c.Graph()

	if g.NodeCount() != c.Len() {
		t.Fatalf("NodeCount() = %d, want %d", g.NodeCount(), c.Len())
	}
	if g.EdgeCount() != 5 {
		t.Errorf("EdgeCount() = %d, want 5", g.EdgeCount())
	}

	rows := map[string]int{"A": 0, "B": 1, "C": 1, "D": 2, "O": 1}
	for id, want := range rows {
		n, ok := g.Node(id)
		if !ok {
			t.Fatalf("node %s missing", id)
		}
		if n.Row != want {
			t.Errorf("%s row = %d, want %d", id, n.Row, want)
		}
	}

	a, _ := g.Node("A")
	if a.Meta[MetaRoot] != true || a.Meta[MetaRepo] != "local" {
		t.Errorf("A meta = %v", a.Meta)
	}
	o, _ := g.Node("O")
	if o.Meta[MetaClassification] != "optional" || o.Meta[MetaSize] != int64(5) {
		t.Errorf("O meta = %v", o.Meta)
	}
	if got := g.Children("A"); len(got) != 3 || got[0] != "B" || got[1] != "C" || got[2] != "O" {
		t.Errorf("Children(A) = %v, want [B C O]", got)
	}
	if g.HasCycle() {
		t.Error("HasCycle() = true for an acyclic closure")
	}
}
