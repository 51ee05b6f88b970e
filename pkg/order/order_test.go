package order

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	errs "github.com/matzehuels/traitcodec/pkg/errors"
)

func ids(entries []Entry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.ID
	}
	return out
}

func TestParseIdentifier(t *testing.T) {
	tests := []struct {
		id   string
		want Key
	}{
		{"01/000.svg", Key{Layer: 1, Item: 0, Label: "000", HasItem: true}},
		{"03/03-012.svg", Key{Layer: 3, Item: 12, Label: "03-012", HasItem: true}},
		{"03-012.svg", Key{Layer: 3, Item: 12, Label: "03-012", HasItem: true}},
		{"layer_2/item_7.png", Key{Layer: 2, Item: 7, Label: "item_7", HasItem: true}},
		{"05/background.svg", Key{Layer: 5, Item: -1, Label: "background"}},
		{"12.png", Key{Layer: 12, Item: -1, Label: "12"}},
		{"05_hat/001_cap_2.svg", Key{Layer: 5, Item: 1, Label: "001_cap_2", HasItem: true}},
		{"01-background/01-003.svg", Key{Layer: 1, Item: 3, Label: "01-003", HasItem: true}},
		{"01/003-2.svg", Key{Layer: 1, Item: 3, Label: "003-2", HasItem: true}},
		{"03_eyes/012_wink.svg", Key{Layer: 3, Item: 12, Label: "012_wink", HasItem: true}},
		{"07-007.png", Key{Layer: 7, Item: 7, Label: "07-007", HasItem: true}},
	}
	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			got, err := ParseIdentifier(tt.id)
			if err != nil {
				t.Fatal(err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParseIdentifierErrors(t *testing.T) {
	if _, err := ParseIdentifier("hat/red.svg"); !errs.Is(err, errs.ErrCodeNamingConvention) {
		t.Errorf("err = %v, want %s", err, errs.ErrCodeNamingConvention)
	}
	if _, err := ParseIdentifier("../01/002.svg"); !errs.Is(err, errs.ErrCodeInvalidPath) {
		t.Errorf("err = %v, want %s", err, errs.ErrCodeInvalidPath)
	}
	if _, err := Sort([]string{"05/background.svg"}, Numeric); !errs.Is(err, errs.ErrCodeNamingConvention) {
		t.Errorf("numeric sort without item: err = %v", err)
	}
}

func TestSort(t *testing.T) {
	got, err := Sort([]string{"01/000.svg", "01/002.svg", "00/001.svg"}, Numeric)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{"00/001.svg", "01/000.svg", "01/002.svg"}, ids(got)); diff != "" {
		t.Errorf("order mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]int{0, 1}, LayerIndexes(got)); diff != "" {
		t.Errorf("layer indexes mismatch (-want +got):\n%s", diff)
	}
}

func TestSortModesDiffer(t *testing.T) {
	in := []string{"01/10.svg", "01/9.svg", "00/b.svg", "00/a.svg"}

	lex, err := Sort(in, Lexicographic)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{"00/a.svg", "00/b.svg", "01/10.svg", "01/9.svg"}, ids(lex)); diff != "" {
		t.Errorf("lexicographic mismatch (-want +got):\n%s", diff)
	}

	num, err := Sort(in[:2], Numeric)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{"01/9.svg", "01/10.svg"}, ids(num)); diff != "" {
		t.Errorf("numeric mismatch (-want +got):\n%s", diff)
	}
}

func TestSortTrailingNumbersInLabels(t *testing.T) {
	got, err := Sort([]string{"05_hat/001_cap_2.svg", "05_hat/002_cap.svg", "05_hat/000_beanie_9.svg"}, Numeric)
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"05_hat/000_beanie_9.svg", "05_hat/001_cap_2.svg", "05_hat/002_cap.svg"}
	if diff := cmp.Diff(want, ids(got)); diff != "" {
		t.Errorf("order mismatch (-want +got):\n%s", diff)
	}
}

func TestSortIgnoresInputOrder(t *testing.T) {
	corpus := []string{"00/001.svg", "00/002.svg", "01/000.svg", "01/001.svg", "01/01-001.svg", "02/010.svg", "02/9.svg"}
	want, err := Sort(corpus, Numeric)
	if err != nil {
		t.Fatal(err)
	}

	properties := gopter.NewProperties(gopter.DefaultTestParameters())
	properties.Property("shuffled discovery order sorts the same", prop.ForAll(
		func(seed int64) bool {
			shuffled := append([]string(nil), corpus...)
			rand.New(rand.NewSource(seed)).Shuffle(len(shuffled), func(i, j int) {
				shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
			})
			got, err := Sort(shuffled, Numeric)
			return err == nil && cmp.Equal(want, got)
		},
		gen.Int64(),
	))
	properties.TestingRun(t)
}

func ExampleSort() {
	entries, _ := Sort([]string{"01/000.svg", "01/002.svg", "00/001.svg"}, Numeric)
	for _, e := range entries {
		fmt.Println(e.ID, e.Layer, e.Item)
	}
	fmt.Println(LayerIndexes(entries))
	// Output:
	// 00/001.svg 0 1
	// 01/000.svg 1 0
	// 01/002.svg 1 2
	// [0 1]
}
