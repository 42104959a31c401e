package dispatch_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/psaab/cmdgraph/pkg/dispatch"
)

func TestSuggestionApply(t *testing.T) {
	tests := []struct {
		name  string
		s     dispatch.Suggestion
		input string
		want  string
	}{
		{
			name:  "whole input",
			s:     dispatch.Suggestion{Range: dispatch.Between(0, 5), Text: "hello"},
			input: "input",
			want:  "hello",
		},
		{
			name:  "tail",
			s:     dispatch.Suggestion{Range: dispatch.Between(6, 8), Text: "world"},
			input: "hello wo",
			want:  "hello world",
		},
		{
			name:  "middle",
			s:     dispatch.Suggestion{Range: dispatch.Between(6, 8), Text: "world"},
			input: "hello wo, friend",
			want:  "hello world, friend",
		},
		{
			name:  "insertion",
			s:     dispatch.Suggestion{Range: dispatch.At(6), Text: "big "},
			input: "hello world",
			want:  "hello big world",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.s.Apply(tt.input); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSuggestionExpand(t *testing.T) {
	s := &dispatch.Suggestion{Range: dispatch.At(5), Text: "x"}
	got := s.Expand("fighting", dispatch.Between(1, 7))
	want := &dispatch.Suggestion{Range: dispatch.Between(1, 7), Text: "ightxin"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("expanded suggestion mismatch (-want +got):\n%s", diff)
	}

	same := &dispatch.Suggestion{Range: dispatch.Between(1, 7), Text: "x"}
	if same.Expand("fighting", dispatch.Between(1, 7)) != same {
		t.Error("expanding to the identical range should be a no-op")
	}
}

func TestCreateSuggestions(t *testing.T) {
	command := "give item"
	raw := []*dispatch.Suggestion{
		{Range: dispatch.Between(5, 9), Text: "sword"},
		{Range: dispatch.Between(5, 9), Text: "Apple"},
		{Range: dispatch.Between(5, 9), Text: "shield"},
		{Range: dispatch.Between(5, 9), Text: "sword"},
		{Range: dispatch.Between(5, 9), Text: "axe"},
	}
	got := dispatch.CreateSuggestions(command, raw)

	if got.Range != dispatch.Between(5, 9) {
		t.Errorf("range = %+v, want 5..9", got.Range)
	}
	var texts []string
	for _, s := range got.List {
		texts = append(texts, s.Text)
	}
	want := []string{"Apple", "axe", "shield", "sword"}
	if diff := cmp.Diff(want, texts); diff != "" {
		t.Errorf("ranked texts mismatch (-want +got):\n%s", diff)
	}
}

func TestCreateSuggestionsExpandsToSharedRange(t *testing.T) {
	command := "tp 1 2"
	raw := []*dispatch.Suggestion{
		{Range: dispatch.Between(3, 4), Text: "9"},
		{Range: dispatch.Between(3, 6), Text: "0 0"},
	}
	got := dispatch.CreateSuggestions(command, raw)

	if got.Range != dispatch.Between(3, 6) {
		t.Errorf("range = %+v, want 3..6", got.Range)
	}
	var texts []string
	for _, s := range got.List {
		texts = append(texts, s.Text)
	}
	// "9" covered only "1"; the shared range pulls in " 2".
	want := []string{"0 0", "9 2"}
	if diff := cmp.Diff(want, texts); diff != "" {
		t.Errorf("expanded texts mismatch (-want +got):\n%s", diff)
	}
}

func TestSuggestionsBuilder(t *testing.T) {
	b := dispatch.NewSuggestionsBuilder("show int", 5)
	if b.Remaining != "int" {
		t.Fatalf("remaining = %q, want int", b.Remaining)
	}
	b.Suggest("interfaces").Suggest("int").SuggestWithTooltip("intervals", "timer windows")
	got := b.Build()

	var texts []string
	for _, s := range got.List {
		texts = append(texts, s.Text)
	}
	// "int" equals the remaining input and is dropped.
	want := []string{"interfaces", "intervals"}
	if diff := cmp.Diff(want, texts); diff != "" {
		t.Errorf("texts mismatch (-want +got):\n%s", diff)
	}
	if got.List[1].Tooltip != "timer windows" {
		t.Errorf("tooltip = %q", got.List[1].Tooltip)
	}
	if got.Range != dispatch.Between(5, 8) {
		t.Errorf("range = %+v, want 5..8", got.Range)
	}
}

func TestMergeSuggestions(t *testing.T) {
	command := "cmd ab"
	one := dispatch.CreateSuggestions(command, []*dispatch.Suggestion{
		{Range: dispatch.Between(4, 6), Text: "abort"},
	})
	two := dispatch.CreateSuggestions(command, []*dispatch.Suggestion{
		{Range: dispatch.Between(4, 6), Text: "about"},
		{Range: dispatch.Between(4, 6), Text: "abort"},
	})

	if got := dispatch.MergeSuggestions(command, nil); !got.IsEmpty() {
		t.Errorf("merging nothing = %+v, want empty", got)
	}
	if got := dispatch.MergeSuggestions(command, []*dispatch.Suggestions{one}); got != one {
		t.Error("single non-empty input should pass through")
	}

	got := dispatch.MergeSuggestions(command, []*dispatch.Suggestions{one, nil, two})
	var texts []string
	for _, s := range got.List {
		texts = append(texts, s.Text)
	}
	want := []string{"abort", "about"}
	if diff := cmp.Diff(want, texts); diff != "" {
		t.Errorf("merged texts mismatch (-want +got):\n%s", diff)
	}
}
