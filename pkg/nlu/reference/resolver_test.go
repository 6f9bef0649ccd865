package reference

import (
	"testing"

	"ai-travelmate-be/pkg/store"

	"github.com/google/uuid"
)

func resultsContext(n int) (*store.Context, []uuid.UUID) {
	ids := make([]uuid.UUID, n)
	for i := range ids {
		ids[i] = uuid.New()
	}
	ctx := store.NewContext()
	ctx.UpdateActiveSearch("beach destinations", ids, nil)
	return ctx, ids
}

func TestResolveOrdinals(t *testing.T) {
	ctx, ids := resultsContext(3)
	r := NewResolver()

	tests := []struct {
		text string
		want uuid.UUID
		idx  int
	}{
		{"tell me about the first one", ids[0], 0},
		{"the second option", ids[1], 1},
		{"show me the last one", ids[2], 2},
		{"what about number 2", ids[1], 1},
		{"option 3", ids[2], 2},
	}
	for _, tt := range tests {
		res, ok := r.Resolve(tt.text, ctx)
		if !ok {
			t.Fatalf("Resolve(%q) missed, want %s", tt.text, tt.want)
		}
		if res.ID != tt.want || res.Index != tt.idx {
			t.Errorf("Resolve(%q) = (%s, %d), want (%s, %d)", tt.text, res.ID, res.Index, tt.want, tt.idx)
		}
		if res.Kind != KindOrdinal {
			t.Errorf("Resolve(%q) kind = %s, want ordinal", tt.text, res.Kind)
		}
	}
}

func TestResolveOutOfRange(t *testing.T) {
	ctx, _ := resultsContext(2)
	r := NewResolver()

	if _, ok := r.Resolve("the fifth one", ctx); ok {
		t.Error("out-of-range ordinal resolved, want miss")
	}
	if _, ok := r.Resolve("number 9", ctx); ok {
		t.Error("out-of-range number resolved, want miss")
	}
}

func TestResolveEmptyResults(t *testing.T) {
	r := NewResolver()
	ctx := store.NewContext()

	if _, ok := r.Resolve("the first one", ctx); ok {
		t.Error("resolved against empty result list")
	}
	if _, ok := r.Resolve("the first one", nil); ok {
		t.Error("resolved against nil context")
	}
}

func TestResolvePronounFallsBackToLastDiscussed(t *testing.T) {
	r := NewResolver()
	ctx := store.NewContext()
	goa := uuid.New()
	ctx.UpdateLocation(goa, "Goa", store.InteractionDiscussed)

	res, ok := r.Resolve("what is the weather like there", ctx)
	if !ok {
		t.Fatal("pronoun reference missed with a last-discussed location present")
	}
	if res.ID != goa || res.Kind != KindPronoun {
		t.Errorf("Resolve = (%s, %s), want (%s, pronoun)", res.ID, res.Kind, goa)
	}
}

func TestResolvePronounMissesAfterClear(t *testing.T) {
	r := NewResolver()
	ctx := store.NewContext()
	ctx.SetTopic("beach")
	ctx.UpdateActiveSearch("beach destinations", []uuid.UUID{uuid.New()}, nil)
	ctx.UpdateLocation(uuid.New(), "Goa", store.InteractionDiscussed)

	ctx.Clear(true)

	if res, ok := r.Resolve("tell me about it", ctx); ok {
		t.Errorf("pronoun resolved to %s after the topic was abandoned", res.ID)
	}
}

func TestResolveNoSignal(t *testing.T) {
	ctx, _ := resultsContext(3)
	r := NewResolver()

	if _, ok := r.Resolve("show me mountain escapes", ctx); ok {
		t.Error("plain search utterance resolved as a reference")
	}
}
