package render

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/henri123lemoine/vista/internal/graphic"
	"github.com/henri123lemoine/vista/internal/view"
)

var valueCmp = cmp.Comparer(func(a, b graphic.Value) bool { return a.Equal(b) })

func el(tag string, children ...graphic.Child) *graphic.Element {
	return &graphic.Element{Tag: tag, Children: children}
}

func child(e *graphic.Element) graphic.Child { return graphic.ElementChild(e) }

func text(s string) graphic.Child { return graphic.TextChild(s) }

func TestRenderGraphicEndToEnd(t *testing.T) {
	g := &graphic.Graphic{
		ID: "x",
		Layout: el("div",
			child(&graphic.Element{Tag: "h1", Content: "{{title}}"}),
		),
		Data: graphic.Data{"title": graphic.String("Hi")},
	}

	got := RenderGraphic(g)

	want := &view.Node{
		Tag:   "div",
		Class: ResponsiveClass,
		Children: []*view.Node{{
			Tag: "div",
			Children: []*view.Node{{
				Tag:      "h1",
				Children: []*view.Node{{Text: "Hi"}},
			}},
		}},
	}
	if diff := cmp.Diff(want, got, valueCmp); diff != "" {
		t.Errorf("RenderGraphic diff (-want +got):\n%s", diff)
	}
	if h1 := got.Find("h1"); h1 == nil || h1.TextContent() != "Hi" {
		t.Errorf("h1 text = %q", h1.TextContent())
	}
}

func TestRenderGraphicIsIdempotent(t *testing.T) {
	g := &graphic.Graphic{
		Layout: &graphic.Element{
			Tag:       "section",
			ClassName: "card",
			Style:     map[string]string{"padding": "1"},
			Props:     graphic.Props{"title": graphic.String("{{name}}")},
			Children: []graphic.Child{
				text("Hello {{name}}"),
				child(&graphic.Element{Tag: MetricBadgeTag, Props: graphic.Props{"dataKey": graphic.String("m")}}),
				child(&graphic.Element{Tag: TrendChartTag, Props: graphic.Props{"dataKey": graphic.String("series")}}),
			},
		},
		Data: graphic.Data{
			"name":   graphic.String("vista"),
			"m":      graphic.Map(map[string]graphic.Value{"value": graphic.Number(3), "change": graphic.Number(1.5)}),
			"series": graphic.List([]graphic.Value{graphic.Number(1), graphic.Number(4)}),
		},
		Theme: graphic.Theme{ClassName: "dark", Style: map[string]string{"color": "7"}},
	}

	first := RenderGraphic(g)
	second := RenderGraphic(g)
	if diff := cmp.Diff(first, second, valueCmp); diff != "" {
		t.Errorf("renders differ (-first +second):\n%s", diff)
	}
}

func TestRenderGraphicFallback(t *testing.T) {
	custom := view.El("p", view.Text("custom"))

	tests := []struct {
		name     string
		graphic  *graphic.Graphic
		opts     []Option
		wantText string
	}{
		{"nil graphic", nil, nil, InvalidGraphicMessage},
		{"nil layout", &graphic.Graphic{ID: "x"}, nil, InvalidGraphicMessage},
		{"empty layout", &graphic.Graphic{Layout: &graphic.Element{}}, nil, InvalidGraphicMessage},
		{"custom fallback", nil, []Option{WithFallback(custom)}, "custom"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := RenderGraphic(tt.graphic, tt.opts...)
			if got == nil {
				t.Fatal("expected fallback node")
			}
			if !strings.Contains(got.TextContent(), tt.wantText) {
				t.Errorf("fallback text = %q, want %q", got.TextContent(), tt.wantText)
			}
		})
	}
}

func TestRenderGraphicResponsive(t *testing.T) {
	off := false
	g := &graphic.Graphic{Layout: el("div"), Responsive: &off}
	if got := RenderGraphic(g); got.Class != "" {
		t.Errorf("non-responsive wrapper class = %q", got.Class)
	}
	g.Responsive = nil
	if got := RenderGraphic(g); got.Class != ResponsiveClass {
		t.Errorf("default wrapper class = %q", got.Class)
	}
	if got := RenderGraphic(g, WithResponsiveDefault(false)); got.Class != "" {
		t.Errorf("configured default wrapper class = %q", got.Class)
	}
	on := true
	g.Responsive = &on
	if got := RenderGraphic(g, WithResponsiveDefault(false)); got.Class != ResponsiveClass {
		t.Errorf("explicit flag must win over the default, got %q", got.Class)
	}
}

func TestContentOverridesChildren(t *testing.T) {
	r := NewRenderer(DefaultRegistry())
	e := &graphic.Element{
		Tag:      "p",
		Content:  "Total: {{n}}",
		Children: []graphic.Child{text("ignored"), child(el("span", text("also ignored")))},
	}
	got := r.RenderElement(e, graphic.Data{"n": graphic.Number(7)}, graphic.Theme{})

	if len(got.Children) != 1 || !got.Children[0].IsText() {
		t.Fatalf("expected a single text child, got %+v", got.Children)
	}
	if got.TextContent() != "Total: 7" {
		t.Errorf("content = %q", got.TextContent())
	}
}

func TestChildOrderPreserved(t *testing.T) {
	r := NewRenderer(DefaultRegistry())
	e := el("div",
		child(&graphic.Element{Tag: "strong", Content: "A"}),
		text("text {{v}}"),
		child(&graphic.Element{Tag: "em", Content: "B"}),
	)
	got := r.RenderElement(e, graphic.Data{"v": graphic.Bool(true)}, graphic.Theme{})

	var seq []string
	for _, c := range got.Children {
		if c.IsText() {
			seq = append(seq, "text:"+c.Text)
		} else {
			seq = append(seq, c.Tag+":"+c.TextContent())
		}
	}
	want := []string{"strong:A", "text:text true", "em:B"}
	if diff := cmp.Diff(want, seq); diff != "" {
		t.Errorf("child order diff (-want +got):\n%s", diff)
	}
}

func TestThemeClassAndStyleMerge(t *testing.T) {
	r := NewRenderer(NewRegistry())
	e := &graphic.Element{
		Tag:       "div",
		ClassName: "a",
		Style:     map[string]string{"color": "1", "padding": "2"},
	}

	got := r.RenderElement(e, nil, graphic.Theme{ClassName: "b", Style: map[string]string{"color": "9"}})
	if got.Class != "a b" {
		t.Errorf("class = %q, want %q", got.Class, "a b")
	}
	if diff := cmp.Diff(map[string]string{"color": "9", "padding": "2"}, got.Style); diff != "" {
		t.Errorf("style diff (-want +got):\n%s", diff)
	}

	got = r.RenderElement(e, nil, graphic.Theme{})
	if got.Class != "a" {
		t.Errorf("class without theme = %q, want %q", got.Class, "a")
	}
	if e.Style["color"] != "1" {
		t.Error("element style was mutated")
	}

	got = r.RenderElement(&graphic.Element{Tag: "div"}, nil, graphic.Theme{ClassName: "b"})
	if got.Class != "b" {
		t.Errorf("class with only theme = %q", got.Class)
	}
}

func TestThemeAppliesToNestedNodes(t *testing.T) {
	r := NewRenderer(NewRegistry())
	e := el("div", child(el("p", child(el("span", text("x"))))))
	got := r.RenderElement(e, nil, graphic.Theme{ClassName: "t"})
	for _, tag := range []string{"div", "p", "span"} {
		if n := got.Find(tag); n == nil || n.Class != "t" {
			t.Errorf("%s class = %q", tag, n.Class)
		}
	}
}

func TestPropsAreInterpolated(t *testing.T) {
	r := NewRenderer(NewRegistry())
	e := &graphic.Element{
		Tag:   "a",
		Props: graphic.Props{"href": graphic.String("/u/{{user.id}}"), "n": graphic.Number(1)},
	}
	data := graphic.Data{"user": graphic.Map(map[string]graphic.Value{"id": graphic.Number(42)})}
	got := r.RenderElement(e, data, graphic.Theme{})

	if s, _ := got.Props["href"].Str(); s != "/u/42" {
		t.Errorf("href = %q", s)
	}
	if s, _ := e.Props["href"].Str(); s != "/u/{{user.id}}" {
		t.Error("element props were mutated")
	}
}

func TestWidgetDelegation(t *testing.T) {
	var (
		gotData  graphic.Data
		gotProps graphic.Props
		gotClass string
		gotStyle map[string]string
	)
	reg := NewRegistry()
	reg.Register("Probe", WidgetFunc(func(data graphic.Data, props graphic.Props, class string, style map[string]string) *view.Node {
		gotData, gotProps, gotClass, gotStyle = data, props, class, style
		return view.El("span", view.Text("probe"))
	}))

	e := &graphic.Element{
		Tag:       "Probe",
		ClassName: "own",
		Style:     map[string]string{"color": "2"},
		Props:     graphic.Props{"label": graphic.String("{{x}}")},
		Children:  []graphic.Child{text("never walked")},
	}
	data := graphic.Data{"x": graphic.String("X")}
	got := NewRenderer(reg).RenderElement(e, data, graphic.Theme{ClassName: "theme"})

	if got.TextContent() != "probe" {
		t.Errorf("widget output = %q", got.TextContent())
	}
	if s, _ := gotProps["label"].Str(); s != "X" {
		t.Errorf("widget props not processed: %q", s)
	}
	if gotClass != "own" || gotStyle["color"] != "2" {
		t.Errorf("widget class/style = %q %v", gotClass, gotStyle)
	}
	if _, ok := gotData["x"]; !ok {
		t.Error("widget did not receive the data-bag")
	}
}

func TestUnregisteredTagFallsThrough(t *testing.T) {
	e := &graphic.Element{Tag: "FancyWidget", Content: "hi"}

	got := NewRenderer(DefaultRegistry()).RenderElement(e, nil, graphic.Theme{})
	if got.Tag != "FancyWidget" || got.TextContent() != "hi" {
		t.Errorf("expected pass-through primitive, got %+v", got)
	}

	strict := &Renderer{Registry: DefaultRegistry(), StrictElements: true}
	got = strict.RenderElement(e, nil, graphic.Theme{})
	if !got.HasClass("error-panel") || !strings.Contains(got.TextContent(), "Unknown element: FancyWidget") {
		t.Errorf("expected unknown element panel, got %q", got.TextContent())
	}
}

func TestEmptyTagRendersAsDiv(t *testing.T) {
	got := NewRenderer(nil).RenderElement(&graphic.Element{Content: "x"}, nil, graphic.Theme{})
	if got.Tag != "div" {
		t.Errorf("tag = %q", got.Tag)
	}
}

func TestPanickingWidgetIsContained(t *testing.T) {
	reg := NewRegistry()
	reg.Register("Boom", WidgetFunc(func(graphic.Data, graphic.Props, string, map[string]string) *view.Node {
		panic("kaboom")
	}))
	g := &graphic.Graphic{Layout: el("div", child(el("Boom")), child(&graphic.Element{Tag: "p", Content: "after"}))}

	got := RenderGraphic(g, WithRegistry(reg))
	if !strings.Contains(got.TextContent(), "Widget Boom failed: kaboom") {
		t.Errorf("expected contained failure, got %q", got.TextContent())
	}
	if p := got.Find("p"); p == nil || p.TextContent() != "after" {
		t.Error("siblings of a failing widget should still render")
	}
}

func TestRegistry(t *testing.T) {
	reg := NewRegistry()
	reg.Register("", TrendChartWidget{})
	reg.Register("Nil", nil)
	if len(reg) != 0 {
		t.Errorf("invalid registrations should be ignored, got %v", reg.Names())
	}

	if diff := cmp.Diff([]string{MetricBadgeTag, TrendChartTag}, DefaultRegistry().Names()); diff != "" {
		t.Errorf("Names diff (-want +got):\n%s", diff)
	}

	var nilReg Registry
	if _, ok := nilReg.Lookup(TrendChartTag); ok {
		t.Error("nil registry should find nothing")
	}
}

func TestJoinClasses(t *testing.T) {
	tests := []struct {
		in   []string
		want string
	}{
		{[]string{"a", "b"}, "a b"},
		{[]string{"a", ""}, "a"},
		{[]string{"", "b"}, "b"},
		{[]string{" a ", "  "}, "a"},
		{nil, ""},
	}
	for _, tt := range tests {
		if got := JoinClasses(tt.in...); got != tt.want {
			t.Errorf("JoinClasses(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestWithThemeLayersUnderDocumentTheme(t *testing.T) {
	g := &graphic.Graphic{
		Layout: el("div"),
		Theme:  graphic.Theme{ClassName: "doc", Style: map[string]string{"color": "2"}},
	}
	got := RenderGraphic(g, WithTheme(graphic.Theme{ClassName: "base", Style: map[string]string{"color": "1", "padding": "1"}}))
	inner := got.Children[0]
	if inner.Class != "base doc" {
		t.Errorf("class = %q", inner.Class)
	}
	if inner.Style["color"] != "2" || inner.Style["padding"] != "1" {
		t.Errorf("style = %v", inner.Style)
	}
}
