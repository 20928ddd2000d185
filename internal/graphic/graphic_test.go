package graphic

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"gopkg.in/yaml.v3"
)

func TestValueDisplay(t *testing.T) {
	tests := []struct {
		name  string
		value Value
		want  string
	}{
		{"string", String("hi"), "hi"},
		{"integer", Number(5), "5"},
		{"fraction", Number(2.5), "2.5"},
		{"negative", Number(-12.75), "-12.75"},
		{"true", Bool(true), "true"},
		{"null", Null(), "null"},
		{"list", List([]Value{Number(1), String("a")}), `[1,"a"]`},
		{"map sorted", Map(map[string]Value{"b": Number(2), "a": Number(1)}), `{"a":1,"b":2}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.value.Display(); got != tt.want {
				t.Errorf("Display() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestValueField(t *testing.T) {
	v := Map(map[string]Value{
		"a":    Map(map[string]Value{"b": Number(5)}),
		"list": List([]Value{String("x"), String("y")}),
	})

	a, ok := v.Field("a")
	if !ok {
		t.Fatal("expected field a")
	}
	b, ok := a.Field("b")
	if !ok || b.Display() != "5" {
		t.Errorf("a.b = %v, %v", b.Display(), ok)
	}

	list, _ := v.Field("list")
	if item, ok := list.Field("1"); !ok || item.Display() != "y" {
		t.Errorf("list.1 = %q, %v", item.Display(), ok)
	}
	if _, ok := list.Field("5"); ok {
		t.Error("out of range index should be undefined")
	}
	if _, ok := b.Field("x"); ok {
		t.Error("field of a scalar should be undefined")
	}
	if _, ok := Null().Field("x"); ok {
		t.Error("field of null should be undefined")
	}
}

func TestValueFloat(t *testing.T) {
	if f, ok := String(" 3.5 ").Float(); !ok || f != 3.5 {
		t.Errorf("Float() = %v, %v", f, ok)
	}
	if _, ok := String("abc").Float(); ok {
		t.Error("non-numeric string should not coerce")
	}
	if _, ok := Bool(true).Float(); ok {
		t.Error("bool should not coerce")
	}
}

func TestDecodeGraphicJSON(t *testing.T) {
	src := `{
		"id": "welcome",
		"layout": {
			"element": "div",
			"className": "card",
			"style": {"padding": 1, "color": "4"},
			"children": [
				{"element": "h1", "content": "{{title}}"},
				"plain text",
				{"element": "p", "props": {"id": "body", "count": 3}}
			]
		},
		"data": {"title": "Hi", "stats": {"users": 10}},
		"theme": {"className": "dark", "style": {"color": "7"}},
		"responsive": false
	}`

	var g Graphic
	if err := json.Unmarshal([]byte(src), &g); err != nil {
		t.Fatalf("Unmarshal() error: %v", err)
	}

	if g.ID != "welcome" {
		t.Errorf("ID = %q", g.ID)
	}
	if g.IsResponsive() {
		t.Error("expected responsive false")
	}
	if g.Layout == nil || g.Layout.Tag != "div" {
		t.Fatalf("unexpected layout %+v", g.Layout)
	}
	if diff := cmp.Diff(map[string]string{"padding": "1", "color": "4"}, g.Layout.Style); diff != "" {
		t.Errorf("style diff (-want +got):\n%s", diff)
	}
	if len(g.Layout.Children) != 3 {
		t.Fatalf("expected 3 children, got %d", len(g.Layout.Children))
	}
	if !g.Layout.Children[1].IsText() || g.Layout.Children[1].Text != "plain text" {
		t.Errorf("child 1 = %+v", g.Layout.Children[1])
	}
	h1 := g.Layout.Children[0].Element
	if h1.Tag != "h1" || h1.Content != "{{title}}" {
		t.Errorf("child 0 = %+v", h1)
	}
	p := g.Layout.Children[2].Element
	if !p.Props["count"].Equal(Number(3)) {
		t.Errorf("props.count = %v", p.Props["count"].Display())
	}
	if g.Theme.ClassName != "dark" || g.Theme.Style["color"] != "7" {
		t.Errorf("theme = %+v", g.Theme)
	}
	if users, ok := g.Data["stats"].Field("users"); !ok || users.Display() != "10" {
		t.Errorf("data.stats.users = %q", users.Display())
	}
}

func TestDecodeGraphicYAMLMatchesJSON(t *testing.T) {
	jsonSrc := `{"id":"x","layout":{"element":"div","children":[{"element":"h1","content":"{{title}}"}]},"data":{"title":"Hi","n":2}}`
	yamlSrc := `
id: x
layout:
  element: div
  children:
    - element: h1
      content: "{{title}}"
data:
  title: Hi
  n: 2
`
	var fromJSON, fromYAML Graphic
	if err := json.Unmarshal([]byte(jsonSrc), &fromJSON); err != nil {
		t.Fatalf("json: %v", err)
	}
	if err := yaml.Unmarshal([]byte(yamlSrc), &fromYAML); err != nil {
		t.Fatalf("yaml: %v", err)
	}

	opts := cmp.Comparer(func(a, b Value) bool { return a.Equal(b) })
	if diff := cmp.Diff(fromJSON, fromYAML, opts); diff != "" {
		t.Errorf("json/yaml mismatch (-json +yaml):\n%s", diff)
	}
	if !fromYAML.IsResponsive() {
		t.Error("responsive should default to true")
	}
}

func TestDecodeFlatTheme(t *testing.T) {
	theme, err := DecodeTheme(map[string]any{
		"className": "a",
		"color":     "2",
		"style":     map[string]any{"color": "5", "padding": 1},
	})
	if err != nil {
		t.Fatalf("DecodeTheme() error: %v", err)
	}
	want := Theme{ClassName: "a", Style: map[string]string{"color": "5", "padding": "1"}}
	if diff := cmp.Diff(want, theme); diff != "" {
		t.Errorf("theme diff (-want +got):\n%s", diff)
	}
}

func TestDecodeErrorsNamePath(t *testing.T) {
	tests := []struct {
		name    string
		input   any
		wantErr string
	}{
		{
			name:    "element not a string",
			input:   map[string]any{"layout": map[string]any{"element": 3}},
			wantErr: "layout.element",
		},
		{
			name: "nested child",
			input: map[string]any{"layout": map[string]any{
				"element":  "div",
				"children": []any{"ok", map[string]any{"element": "p", "props": "bad"}},
			}},
			wantErr: "layout.children[1].props",
		},
		{
			name:    "children not a list",
			input:   map[string]any{"layout": map[string]any{"children": "x"}},
			wantErr: "layout.children",
		},
		{
			name:    "responsive not a bool",
			input:   map[string]any{"responsive": "yes"},
			wantErr: "responsive",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeGraphic(tt.input)
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error %q does not mention %q", err, tt.wantErr)
			}
		})
	}
}

func TestDecodeCard(t *testing.T) {
	perf, err := DecodeCard(map[string]any{
		"type":   "performance-card",
		"title":  "Latency",
		"metric": map[string]any{"value": 120, "label": "p95", "change": -4.5, "unit": "ms"},
		"series": []any{map[string]any{"label": "Mon", "value": 10}, map[string]any{"name": "Tue", "value": "20"}},
	})
	if err != nil {
		t.Fatalf("DecodeCard() error: %v", err)
	}
	change := -4.5
	want := PerformanceCard{
		Title:  "Latency",
		Metric: Metric{Value: "120", Label: "p95", Change: &change, Unit: "ms"},
		Series: []Point{{"Mon", 10}, {"Tue", 20}},
	}
	if diff := cmp.Diff(want, perf); diff != "" {
		t.Errorf("performance diff (-want +got):\n%s", diff)
	}

	chart, err := DecodeCard(map[string]any{
		"type":  "chart-card",
		"title": "Sales",
		"chart": map[string]any{"data": []any{1, 2, 3}},
	})
	if err != nil {
		t.Fatalf("DecodeCard() error: %v", err)
	}
	cc := chart.(ChartCard)
	if cc.Chart.Kind != ChartBar {
		t.Errorf("default chart kind = %q", cc.Chart.Kind)
	}
	if diff := cmp.Diff([]Point{{"1", 1}, {"2", 2}, {"3", 3}}, cc.Chart.Series); diff != "" {
		t.Errorf("series diff (-want +got):\n%s", diff)
	}

	unknown, err := DecodeCard(map[string]any{"type": "nonsense"})
	if err != nil {
		t.Fatalf("DecodeCard() error: %v", err)
	}
	if unknown.CardType() != "nonsense" {
		t.Errorf("CardType() = %q", unknown.CardType())
	}

	if c, err := DecodeCard(nil); c != nil || err != nil {
		t.Errorf("DecodeCard(nil) = %v, %v", c, err)
	}
}

func TestElementIsZero(t *testing.T) {
	var nilEl *Element
	if !nilEl.IsZero() {
		t.Error("nil element should be zero")
	}
	if !(&Element{}).IsZero() {
		t.Error("empty element should be zero")
	}
	if (&Element{Tag: "div"}).IsZero() {
		t.Error("tagged element should not be zero")
	}
}

func TestUnmarshalNullClears(t *testing.T) {
	var null yaml.Node
	if err := yaml.Unmarshal([]byte("~"), &null); err != nil {
		t.Fatal(err)
	}

	t.Run("element json", func(t *testing.T) {
		el := Element{Tag: "div", Content: "stale"}
		if err := json.Unmarshal([]byte("null"), &el); err != nil {
			t.Fatalf("Unmarshal() error: %v", err)
		}
		if !el.IsZero() {
			t.Errorf("element kept old fields: %+v", el)
		}
	})
	t.Run("element yaml", func(t *testing.T) {
		el := Element{Tag: "div", Content: "stale"}
		if err := el.UnmarshalYAML(&null); err != nil {
			t.Fatalf("UnmarshalYAML() error: %v", err)
		}
		if !el.IsZero() {
			t.Errorf("element kept old fields: %+v", el)
		}
	})
	t.Run("graphic json", func(t *testing.T) {
		g := Graphic{ID: "old", Layout: &Element{Tag: "div"}}
		if err := json.Unmarshal([]byte("null"), &g); err != nil {
			t.Fatalf("Unmarshal() error: %v", err)
		}
		if g.ID != "" || g.Layout != nil {
			t.Errorf("graphic kept old fields: %+v", g)
		}
	})
	t.Run("graphic yaml", func(t *testing.T) {
		g := Graphic{ID: "old", Layout: &Element{Tag: "div"}}
		if err := g.UnmarshalYAML(&null); err != nil {
			t.Fatalf("UnmarshalYAML() error: %v", err)
		}
		if g.ID != "" || g.Layout != nil {
			t.Errorf("graphic kept old fields: %+v", g)
		}
	})
}

func TestThemeMerge(t *testing.T) {
	base := Theme{ClassName: "base", Style: map[string]string{"color": "1", "padding": "1"}}
	got := base.Merge(Theme{ClassName: "doc", Style: map[string]string{"color": "2"}})
	want := Theme{ClassName: "base doc", Style: map[string]string{"color": "2", "padding": "1"}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("merge diff (-want +got):\n%s", diff)
	}
	if base.Style["color"] != "1" {
		t.Error("Merge mutated its receiver")
	}
}
