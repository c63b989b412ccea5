package wiki

import (
	"reflect"
	"strings"
	"testing"
)

func TestParseTemplate(t *testing.T) {
	raw := "{{Item\n|name = Gas Grenade\n|gem_tags = Attack, AoE, Grenade\n|stat_text = {{c|gem|Impact}} radius increased\n}}"

	record, ok := ParseTemplate(raw, ItemTemplateMarker)
	if !ok {
		t.Fatal("expected template to be found")
	}

	want := GemRecord{
		"name":      "Gas Grenade",
		"gem_tags":  "Attack, AoE, Grenade",
		"stat_text": "{{c|gem|Impact}} radius increased",
	}
	if !reflect.DeepEqual(record, want) {
		t.Errorf("record = %v, want %v", record, want)
	}
}

func TestParseTemplate_MarkerAbsent(t *testing.T) {
	record, ok := ParseTemplate("just some prose with no template", ItemTemplateMarker)
	if ok {
		t.Errorf("expected ok=false, got record %v", record)
	}
	if record != nil {
		t.Errorf("expected nil record, got %v", record)
	}
}

func TestParseTemplate_MultiLineField(t *testing.T) {
	raw := strings.Join([]string{
		"{{Item",
		"|stat_text = First line",
		"Second line  ",
		"  Third line",
		"|cooldown = 2",
		"}}",
	}, "\n")

	record, ok := ParseTemplate(raw, ItemTemplateMarker)
	if !ok {
		t.Fatal("expected template to be found")
	}

	wantStat := "First line\nSecond line\nThird line"
	if record["stat_text"] != wantStat {
		t.Errorf("stat_text = %q, want %q", record["stat_text"], wantStat)
	}
	if record["cooldown"] != "2" {
		t.Errorf("cooldown = %q, want %q", record["cooldown"], "2")
	}
}

func TestParseTemplate_ValueContainsEquals(t *testing.T) {
	raw := "{{Item\n|stat_text = Deals damage = 50% of base\n}}"

	record, ok := ParseTemplate(raw, ItemTemplateMarker)
	if !ok {
		t.Fatal("expected template to be found")
	}
	if got := record["stat_text"]; got != "Deals damage = 50% of base" {
		t.Errorf("stat_text = %q, value should round-trip intact", got)
	}
}

func TestParseTemplate_DuplicateKeyOverwrites(t *testing.T) {
	raw := "{{Item\n|name = First\n|name = Second\n}}"

	record, _ := ParseTemplate(raw, ItemTemplateMarker)
	if record["name"] != "Second" {
		t.Errorf("name = %q, want last declaration to win", record["name"])
	}
}

func TestParseTemplate_Unterminated(t *testing.T) {
	raw := "{{Item\n|name = Gas Grenade\n|cooldown = 2"

	record, ok := ParseTemplate(raw, ItemTemplateMarker)
	if !ok {
		t.Fatal("expected template to be found")
	}
	if record["name"] != "Gas Grenade" || record["cooldown"] != "2" {
		t.Errorf("unterminated template should consume to end of input, got %v", record)
	}
}

func TestParseTemplate_StopsAtClosingBrace(t *testing.T) {
	raw := "{{Item\n|name = Gas Grenade\n}}\n|after = should not appear\n"

	record, _ := ParseTemplate(raw, ItemTemplateMarker)
	if _, exists := record["after"]; exists {
		t.Error("fields after the closing brace must not be parsed")
	}
}

func TestParseTemplate_Idempotent(t *testing.T) {
	raw := "{{Item\n|name = Gas Grenade\n|gem_tags = Attack, AoE\n}}"

	first, _ := ParseTemplate(raw, ItemTemplateMarker)
	second, _ := ParseTemplate(raw, ItemTemplateMarker)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("parsing is not a pure function of input: %v != %v", first, second)
	}
}

func TestCleanText(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "color macro",
			input: "{{c|gem|Impact}} radius increased",
			want:  "Impact radius increased",
		},
		{
			name:  "bare wiki link",
			input: "See [[Gas Grenade]] for details",
			want:  "See Gas Grenade for details",
		},
		{
			name:  "piped wiki link",
			input: "See [[Gas Grenade|the grenade]] for details",
			want:  "See the grenade for details",
		},
		{
			name:  "inline tags",
			input: "First<br>Second <span class=\"x\">styled</span>",
			want:  "FirstSecond styled",
		},
		{
			name:  "non-breaking space",
			input: "10&nbsp;seconds",
			want:  "10 seconds",
		},
		{
			name:  "combined",
			input: "{{c|mod|+10%}} to [[Fire]] damage<br>&nbsp;per level",
			want:  "+10% to Fire damage per level",
		},
		{
			name:  "no markup",
			input: "plain text",
			want:  "plain text",
		},
		{
			name:  "empty",
			input: "",
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CleanText(tt.input)
			if got != tt.want {
				t.Errorf("CleanText(%q) = %q, want %q", tt.input, got, tt.want)
			}
			// Idempotence for well-formed input
			if again := CleanText(got); again != got {
				t.Errorf("CleanText not idempotent: %q -> %q", got, again)
			}
		})
	}
}

func TestExtractSupportNames(t *testing.T) {
	raw := "==Recommended Support Gems==\n{{il|Fire Support}}\n{{il|Fire Support}}\n{{il|Cold Support|Display}}\n==Other==\n{{il|Should Not Appear}}\n"

	got := ExtractSupportNames(raw, SupportSectionMarkers)
	want := []string{"Fire Support", "Cold Support"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ExtractSupportNames = %v, want %v", got, want)
	}
}

func TestExtractSupportNames_TemplateMarker(t *testing.T) {
	raw := "{{Recommended Support Gems\n{{il|Martial Tempo}}\n{{il|Scattershot}}\n}}\n{{il|Outside}}\n"

	got := ExtractSupportNames(raw, SupportSectionMarkers)
	want := []string{"Martial Tempo", "Scattershot"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ExtractSupportNames = %v, want %v", got, want)
	}
}

func TestExtractSupportNames_CaseInsensitiveMarker(t *testing.T) {
	raw := "==recommended support gems==\n{{il|Martial Tempo}}\n"

	got := ExtractSupportNames(raw, SupportSectionMarkers)
	if len(got) != 1 || got[0] != "Martial Tempo" {
		t.Errorf("ExtractSupportNames = %v, want [Martial Tempo]", got)
	}
}

func TestExtractSupportNames_MultiplePerLine(t *testing.T) {
	raw := "==Recommended Support Gems==\n{{il|A}} and {{il|B|b}} and {{il|A}}\n"

	got := ExtractSupportNames(raw, SupportSectionMarkers)
	want := []string{"A", "B"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ExtractSupportNames = %v, want %v", got, want)
	}
}

func TestExtractSupportNames_NoMarker(t *testing.T) {
	if got := ExtractSupportNames("no section here", SupportSectionMarkers); len(got) != 0 {
		t.Errorf("expected empty result, got %v", got)
	}
	if got := ExtractSupportNames("", SupportSectionMarkers); len(got) != 0 {
		t.Errorf("expected empty result for empty input, got %v", got)
	}
}

func TestExtractSupportNames_HeadingMentioningKeywordContinues(t *testing.T) {
	// A sub-heading that still mentions the section keyword should not end the window
	raw := "==Recommended Support Gems==\n{{il|A}}\n===More recommended support gems===\n{{il|B}}\n==Done==\n{{il|C}}\n"

	got := ExtractSupportNames(raw, SupportSectionMarkers)
	want := []string{"A", "B"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ExtractSupportNames = %v, want %v", got, want)
	}
}

func TestSplitTags(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"typical", "Attack, AoE, Grenade", []string{"Attack", "AoE", "Grenade"}},
		{"extra whitespace", "  Attack ,AoE  ", []string{"Attack", "AoE"}},
		{"empty segments", "Attack,,AoE,", []string{"Attack", "AoE"}},
		{"empty", "", nil},
		{"only commas", ",,,", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SplitTags(tt.input)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("SplitTags(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestMatchesAnyTag(t *testing.T) {
	tests := []struct {
		name      string
		tagString string
		tags      []string
		want      bool
	}{
		{"direct match", "Attack, AoE, Fire", []string{"AoE"}, true},
		{"substring match", "Grenades, Fire", []string{"Grenade"}, true},
		{"no match", "Cold, Lightning", []string{"Fire"}, false},
		{"case sensitive", "attack", []string{"Attack"}, false},
		{"empty tags", "Attack", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MatchesAnyTag(tt.tagString, tt.tags); got != tt.want {
				t.Errorf("MatchesAnyTag(%q, %v) = %v, want %v", tt.tagString, tt.tags, got, tt.want)
			}
		})
	}
}
