package memengine

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"math"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"artbind/internal/domain"
	"artbind/internal/logging"
	"artbind/internal/ports"
)

func loadDashboard(t *testing.T) *Animation {
	t.Helper()
	anim, err := NewLoader("testdata").Load(context.Background(), "dashboard")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	return anim.(*Animation)
}

func TestLoader_Load(t *testing.T) {
	anim := loadDashboard(t)

	if anim.Name() != "dashboard" {
		t.Errorf("Name() = %q, want dashboard", anim.Name())
	}
	if anim.Artboard().Name() != "Main" {
		t.Errorf("Artboard().Name() = %q, want Main", anim.Artboard().Name())
	}

	vm, ok := anim.ViewModel()
	if !ok {
		t.Fatal("ViewModel() ok = false")
	}
	var got []string
	for _, d := range vm.Properties() {
		got = append(got, d.Name+":"+d.Kind.String())
	}
	want := []string{
		"score:number", "lives:integer", "title:string", "enabled:boolean",
		"accent:color", "mood:enumType", "celebrate:trigger", "avatar:image",
		"scene:artboard", "mystery:none", "settings:viewModel", "todos:list",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Properties() mismatch (-want +got):\n%s", diff)
	}

	accent, err := vm.Color("accent")
	if err != nil {
		t.Fatalf("Color(accent) error = %v", err)
	}
	if accent.Value() != domain.ColorFromARGB(0xFF3EC293) {
		t.Errorf("accent = %s, want #FF3EC293", accent.Value().Hex())
	}

	if len(anim.Assets()) != 2 {
		t.Errorf("Assets() = %d slots, want 2", len(anim.Assets()))
	}
	if _, ok := anim.StateMachine(); !ok {
		t.Error("StateMachine() ok = false")
	}
}

func TestLoader_MissingFixture(t *testing.T) {
	_, err := NewLoader(t.TempDir()).Load(context.Background(), "nope")
	if err == nil {
		t.Fatal("Load() error = nil, want error for missing fixture")
	}
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"no name", "artboard: Main\n"},
		{"bad asset kind", "name: x\nassets:\n  - name: a\n    kind: number\n"},
		{"bad input kind", "name: x\nstateMachine:\n  inputs:\n    - name: a\n      kind: string\n"},
		{"bad easing", "name: x\ntimelines:\n  - path: a\n    ease: wobble\n"},
		{"bad number", "name: x\nviewModel:\n  properties:\n    - name: a\n      kind: number\n      value: abc\n"},
		{"unnamed property", "name: x\nviewModel:\n  properties:\n    - kind: number\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Parse([]byte(tt.yaml)); err == nil {
				t.Error("Parse() error = nil, want error")
			}
		})
	}
}

func TestValueProp_ListenersFireOnChange(t *testing.T) {
	vm := NewViewModel("vm", Number("score", 1))
	p, err := vm.Number("score")
	if err != nil {
		t.Fatalf("Number() error = %v", err)
	}

	var got []float64
	remove := p.AddListener(func(v float64) { got = append(got, v) })

	_ = p.SetValue(2)
	_ = p.SetValue(2) // unchanged, no notification
	_ = p.SetValue(3)
	remove()
	remove()
	_ = p.SetValue(4)

	if diff := cmp.Diff([]float64{2, 3}, got); diff != "" {
		t.Errorf("notifications mismatch (-want +got):\n%s", diff)
	}
	if vm.ListenerCount() != 0 {
		t.Errorf("ListenerCount() = %d after remove, want 0", vm.ListenerCount())
	}
}

func TestEnum_RejectsUnknownOption(t *testing.T) {
	vm := NewViewModel("vm", Enum("mood", "happy", "happy", "sad"))
	p, err := vm.Enum("mood")
	if err != nil {
		t.Fatalf("Enum() error = %v", err)
	}
	if err := p.SetValue("angry"); err == nil {
		t.Error("SetValue(angry) error = nil, want rejection")
	}
	if p.Value() != "happy" {
		t.Errorf("Value() = %q, want happy", p.Value())
	}
	if err := p.SetValue("sad"); err != nil {
		t.Errorf("SetValue(sad) error = %v", err)
	}
	if diff := cmp.Diff([]string{"happy", "sad"}, p.Options()); diff != "" {
		t.Errorf("Options() mismatch (-want +got):\n%s", diff)
	}
}

func TestViewModel_Accessors(t *testing.T) {
	boom := errors.New("boom")
	vm := NewViewModel("vm",
		Text("title", "hi"),
		Broken("bad", domain.KindNumber, boom),
		Broken("crash", domain.KindNumber, nil),
	)

	if _, err := vm.Number("title"); err == nil {
		t.Error("Number(title) error = nil, want kind error")
	}
	if _, err := vm.String("missing"); err == nil {
		t.Error("String(missing) error = nil, want missing error")
	}
	if _, err := vm.Number("bad"); !errors.Is(err, boom) {
		t.Errorf("Number(bad) error = %v, want %v", err, boom)
	}

	defer func() {
		if recover() == nil {
			t.Error("Number(crash) did not panic")
		}
	}()
	_, _ = vm.Number("crash")
}

func TestList_Item(t *testing.T) {
	vm := NewViewModel("vm", List("todos",
		NewViewModel("first", Bool("done", false)),
	))
	list, err := vm.List("todos")
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if list.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", list.Len())
	}
	item, err := list.Item(0)
	if err != nil || item.Name() != "first" {
		t.Errorf("Item(0) = %v, %v; want first", item, err)
	}
	if _, err := list.Item(1); err == nil {
		t.Error("Item(1) error = nil, want out of range")
	}
}

func TestTrigger_Fire(t *testing.T) {
	vm := NewViewModel("vm", Trigger("go"))
	p, _ := vm.Trigger("go")
	calls := 0
	p.AddListener(func() { calls++ })

	if err := vm.Trip("go"); err != nil {
		t.Fatalf("Trip() error = %v", err)
	}
	_ = p.Fire()
	if calls != 2 || vm.Fired("go") != 2 {
		t.Errorf("calls = %d, Fired() = %d, want 2 and 2", calls, vm.Fired("go"))
	}
}

func TestAssets(t *testing.T) {
	vm := NewViewModel("vm", Image("avatar"))
	p, _ := vm.Image("avatar")

	if err := p.SetAsset(domain.Asset{AssetKind: domain.KindFont}); err == nil {
		t.Error("SetAsset(font) error = nil, want kind error")
	}
	img := domain.Asset{AssetKind: domain.KindImage, Width: 4, Height: 2}
	if err := p.SetAsset(img); err != nil {
		t.Fatalf("SetAsset() error = %v", err)
	}
	got, ok := vm.AssetOf("avatar")
	if !ok || got.Width != 4 {
		t.Errorf("AssetOf() = %+v, %v", got, ok)
	}

	slot := NewAssetSlot("hero", domain.KindImage)
	if err := slot.SetAsset(img); err != nil {
		t.Fatalf("slot.SetAsset() error = %v", err)
	}
	if slot.Loads() != 1 {
		t.Errorf("Loads() = %d, want 1", slot.Loads())
	}
}

func TestArtboardRef(t *testing.T) {
	vm := NewViewModel("vm", ArtboardRef("scene", "Intro", "Intro", "Outro"))
	p, _ := vm.Artboard("scene")
	if err := p.SetArtboard("Nowhere"); err == nil {
		t.Error("SetArtboard(Nowhere) error = nil, want error")
	}
	if err := p.SetArtboard("Outro"); err != nil {
		t.Fatalf("SetArtboard(Outro) error = %v", err)
	}
	if vm.BoundArtboard("scene") != "Outro" {
		t.Errorf("BoundArtboard() = %q, want Outro", vm.BoundArtboard("scene"))
	}
}

func TestStateMachine(t *testing.T) {
	anim := loadDashboard(t)
	sm := anim.Machine()

	var events []domain.StateEvent
	remove := sm.OnEvent(func(ev domain.StateEvent) { events = append(events, ev) })

	if err := sm.FireTrigger("jump"); err != nil {
		t.Fatalf("FireTrigger() error = %v", err)
	}
	if sm.CurrentState() != "jumping" {
		t.Errorf("CurrentState() = %q, want jumping", sm.CurrentState())
	}
	if len(events) != 1 || events[0].Name != "jumped" || events[0].CurrentState != "jumping" {
		t.Fatalf("events = %+v", events)
	}
	if h, _ := domain.ToFloat(events[0].Properties["height"]); h != 2 {
		t.Errorf("event height = %v, want 2", events[0].Properties["height"])
	}

	if err := sm.SetBoolean("running", true); err != nil {
		t.Fatalf("SetBoolean() error = %v", err)
	}
	if sm.CurrentState() != "running" {
		t.Errorf("CurrentState() = %q, want running", sm.CurrentState())
	}
	_ = sm.SetBoolean("running", false)
	if sm.CurrentState() != "idle" {
		t.Errorf("CurrentState() = %q, want idle", sm.CurrentState())
	}

	if err := sm.SetNumber("running", 1); err == nil {
		t.Error("SetNumber(running) error = nil, want kind error")
	}
	if err := sm.FireTrigger("missing"); err == nil {
		t.Error("FireTrigger(missing) error = nil, want error")
	}
	_ = sm.SetNumber("speed", 4)
	if v, _ := sm.InputValue("speed"); v != 4.0 {
		t.Errorf("InputValue(speed) = %v, want 4", v)
	}

	remove()
	_ = sm.FireTrigger("jump")
	if len(events) != 1 {
		t.Errorf("events after remove = %d, want 1", len(events))
	}
	if sm.EventListeners() != 0 {
		t.Errorf("EventListeners() = %d, want 0", sm.EventListeners())
	}
}

func TestArtboard_Advance(t *testing.T) {
	anim := loadDashboard(t)
	vm := anim.Model()
	score, _ := vm.Number("score")
	var notified int
	score.AddListener(func(float64) { notified++ })

	if !anim.Artboard().Advance(0.5) {
		t.Fatal("Advance(0.5) = false, want still animating")
	}
	if got := score.Value(); math.Abs(got-6.5) > 1e-4 {
		t.Errorf("score after 0.5s = %v, want 6.5", got)
	}

	anim.Artboard().Advance(0.5)
	if got := score.Value(); got != 10 {
		t.Errorf("score after 1s = %v, want 10", got)
	}
	if notified != 2 {
		t.Errorf("score listener calls = %d, want 2", notified)
	}

	// the looping volume timeline keeps the artboard active
	if !anim.Artboard().Advance(5) {
		t.Error("Advance() = false, want true while a loop runs")
	}
	if anim.Board().Elapsed() != 6 {
		t.Errorf("Elapsed() = %v, want 6", anim.Board().Elapsed())
	}
}

func TestArtboard_ColorTimeline(t *testing.T) {
	vm := NewViewModel("vm", ColorProp("tint", domain.Color{A: 255}))
	board := NewArtboard("Main", vm, Timeline{Path: "tint", To: "#FFFFFFFF", Duration: 1})

	if board.Advance(1) {
		t.Error("Advance(1) = true, want finished")
	}
	tint, _ := vm.Color("tint")
	if tint.Value() != domain.ColorWhite {
		t.Errorf("tint = %s, want white", tint.Value().Hex())
	}
	if board.Advance(1) {
		t.Error("Advance() after finish = true")
	}
}

func TestArtboard_FailedWriteStopsTimeline(t *testing.T) {
	vm := NewViewModel("vm", Number("score", 0))
	p, err := vm.resolve("score")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	p.handle.(*valueProp[float64]).validate = func(float64) error {
		return errors.New("locked")
	}

	var buf bytes.Buffer
	board := NewArtboard("Main", vm,
		Timeline{Path: "score", To: 10, Duration: 2, Loop: true},
		Timeline{Path: "missing", To: 1, Duration: 1},
	)
	board.SetLogger(logging.New(&buf, slog.LevelDebug))

	if board.Advance(0.5) {
		t.Error("Advance() = true, want the failing timeline stopped")
	}
	logs := buf.String()
	for _, want := range []string{"stopping timeline", "skipping timeline", "locked"} {
		if !strings.Contains(logs, want) {
			t.Errorf("expected log to contain %q, got %q", want, logs)
		}
	}
}

func TestResolve_ThroughListItems(t *testing.T) {
	vm := NewViewModel("root",
		List("todos",
			NewViewModel("first", Number("n", 1)),
			NewViewModel("second", Number("n", 2)),
		),
	)
	for _, path := range []string{"todos/1/n", "todos.second.n"} {
		p, err := vm.resolve(path)
		if err != nil {
			t.Fatalf("resolve(%q) error = %v", path, err)
		}
		if got := p.handle.(ports.NumberProperty).Value(); got != 2 {
			t.Errorf("resolve(%q) = %v, want 2", path, got)
		}
	}
	if _, err := vm.resolve("todos/1"); err == nil {
		t.Error("resolve(todos/1) error = nil, want error")
	}
}

func TestParseEase(t *testing.T) {
	for _, name := range []string{"", "linear", "out-quad", "InOut_Cubic", "OUTBOUNCE"} {
		if _, err := ParseEase(name); err != nil {
			t.Errorf("ParseEase(%q) error = %v", name, err)
		}
	}
	if _, err := ParseEase("wobble"); err == nil {
		t.Error("ParseEase(wobble) error = nil")
	}
}
