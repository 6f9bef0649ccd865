package extract

import (
	"reflect"
	"testing"
)

func TestExtractBudget(t *testing.T) {
	tests := []struct {
		name string
		text string
		want *Budget
	}{
		{
			name: "under with k suffix",
			text: "Under 30k budget please",
			want: &Budget{Type: BudgetMax, Max: 30000},
		},
		{
			name: "under with bare amount",
			text: "show me places under 30000",
			want: &Budget{Type: BudgetMax, Max: 30000},
		},
		{
			name: "lakh multiplier",
			text: "I can spend 1 lakh",
			want: &Budget{Type: BudgetExact, Min: 100000, Max: 100000},
		},
		{
			name: "within is a max bound",
			text: "places within 50000 rupees",
			want: &Budget{Type: BudgetMax, Max: 50000},
		},
		{
			name: "over is a min bound",
			text: "something over 80k",
			want: &Budget{Type: BudgetMin, Min: 80000},
		},
		{
			name: "at least is a min bound",
			text: "at least 20000 for the trip",
			want: &Budget{Type: BudgetMin, Min: 20000},
		},
		{
			name: "bare amount means exact",
			text: "my budget is 45000",
			want: &Budget{Type: BudgetExact, Min: 45000, Max: 45000},
		},
		{
			name: "vocabulary word cheap",
			text: "some cheap getaways",
			want: &Budget{Type: BudgetRange, Min: 0, Max: 20000},
		},
		{
			name: "vocabulary word luxury",
			text: "luxury destinations",
			want: &Budget{Type: BudgetRange, Min: 100000, Max: 250000},
		},
		{
			name: "mind does not trigger min",
			text: "changed my mind, 5000 it is",
			want: &Budget{Type: BudgetExact, Min: 5000, Max: 5000},
		},
		{
			name: "no budget",
			text: "show me beach destinations",
			want: nil,
		},
	}

	e := NewExtractor()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := e.Extract(tt.text).Budget
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Budget = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestExtractDuration(t *testing.T) {
	tests := []struct {
		name string
		text string
		want int
	}{
		{name: "plain days", text: "for 5 days", want: 5},
		{name: "nights add a day", text: "3 nights in the hills", want: 4},
		{name: "weeks multiply", text: "a 2 week trip", want: 14},
		{name: "weekend is two days", text: "weekend getaway ideas", want: 2},
		{name: "absent", text: "show me beaches", want: 0},
	}

	e := NewExtractor()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := e.Extract(tt.text).DurationDays; got != tt.want {
				t.Errorf("DurationDays = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestExtractPersons(t *testing.T) {
	tests := []struct {
		name string
		text string
		want int
	}{
		{name: "numeric people", text: "trip for 6 people", want: 6},
		{name: "group of", text: "a group of 8", want: 8},
		{name: "n of us", text: "there are 3 of us", want: 3},
		{name: "solo", text: "solo travel ideas", want: 1},
		{name: "couple", text: "romantic places for a couple", want: 2},
		{name: "family", text: "family vacation spots", want: 4},
		{name: "absent", text: "beaches in goa", want: 0},
	}

	e := NewExtractor()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := e.Extract(tt.text).PersonCount; got != tt.want {
				t.Errorf("PersonCount = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestExtractLocations(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{name: "single known location", text: "What about Goa?", want: []string{"goa"}},
		{name: "two locations", text: "compare manali and shimla", want: []string{"manali", "shimla"}},
		{name: "case insensitive", text: "LADAKH in winter", want: []string{"ladakh"}},
		{name: "no partial word match", text: "the diagonal road", want: nil},
		{name: "unknown place", text: "trip to paris", want: nil},
	}

	e := NewExtractor()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := e.Extract(tt.text).Locations
			if len(got) != len(tt.want) {
				t.Fatalf("Locations = %v, want %v", got, tt.want)
			}
			for _, w := range tt.want {
				found := false
				for _, g := range got {
					if g == w {
						found = true
					}
				}
				if !found {
					t.Errorf("Locations = %v, missing %q", got, w)
				}
			}
		})
	}
}

func TestExtractLocationsLongestMatch(t *testing.T) {
	e := NewExtractor()
	e.AddLocations("new delhi")

	got := e.Extract("flights to new delhi").Locations
	if len(got) != 1 || got[0] != "new delhi" {
		t.Errorf("Locations = %v, want [new delhi]", got)
	}
}

func TestExtractActivities(t *testing.T) {
	tests := []struct {
		name        string
		text        string
		want        []string
		wantPrimary string
		wantMode    string
	}{
		{
			name:        "single category is strict",
			text:        "Show me beach destinations",
			want:        []string{"beach"},
			wantPrimary: "beach",
			wantMode:    FilterStrict,
		},
		{
			name:        "multiple categories relax",
			text:        "beaches with good food",
			want:        []string{"beach", "food"},
			wantPrimary: "beach",
			wantMode:    FilterRelaxed,
		},
		{
			name:        "word boundary respected",
			text:        "scared of heights",
			want:        nil,
			wantPrimary: "",
			wantMode:    "",
		},
		{
			name:        "dedupe within family",
			text:        "beach beaches coastal",
			want:        []string{"beach"},
			wantPrimary: "beach",
			wantMode:    FilterStrict,
		},
		{
			name:        "order follows appearance",
			text:        "temples and then wildlife safari",
			want:        []string{"spiritual", "wildlife"},
			wantPrimary: "spiritual",
			wantMode:    FilterRelaxed,
		},
	}

	e := NewExtractor()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bag := e.Extract(tt.text)
			if !reflect.DeepEqual(bag.Activities, tt.want) {
				t.Errorf("Activities = %v, want %v", bag.Activities, tt.want)
			}
			if bag.PrimaryActivity != tt.wantPrimary {
				t.Errorf("PrimaryActivity = %q, want %q", bag.PrimaryActivity, tt.wantPrimary)
			}
			if bag.FilterMode != tt.wantMode {
				t.Errorf("FilterMode = %q, want %q", bag.FilterMode, tt.wantMode)
			}
		})
	}
}

func TestHasConstraint(t *testing.T) {
	e := NewExtractor()

	if !e.Extract("under 30k").HasConstraint() {
		t.Errorf("budget should count as a constraint")
	}
	if !e.Extract("for 5 days").HasConstraint() {
		t.Errorf("duration should count as a constraint")
	}
	if e.Extract("tell me about goa").HasConstraint() {
		t.Errorf("plain location is not a constraint")
	}
}

func TestExtractWeatherAndTimeFrame(t *testing.T) {
	e := NewExtractor()

	bag := e.Extract("somewhere cold in december")
	if bag.WeatherPreference != "cold" {
		t.Errorf("WeatherPreference = %q, want cold", bag.WeatherPreference)
	}
	if bag.TimeFrame != "december" {
		t.Errorf("TimeFrame = %q, want december", bag.TimeFrame)
	}
}
