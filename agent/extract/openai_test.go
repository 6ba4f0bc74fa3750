package extract

import (
	"reflect"
	"testing"
)

func TestParseSkillArray(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name    string
		content string
		want    []string
	}{
		{
			name:    "plain array",
			content: `["python", "sql"]`,
			want:    []string{"python", "sql"},
		},
		{
			name:    "code fence",
			content: "```json\n[\"go\", \"docker\"]\n```",
			want:    []string{"go", "docker"},
		},
		{
			name:    "surrounding prose",
			content: `Here are the skills I found: ["html", "css"] - hope that helps!`,
			want:    []string{"html", "css"},
		},
		{
			name:    "mixed case and whitespace",
			content: `[" Python ", "SQL", ""]`,
			want:    []string{"python", "sql"},
		},
		{
			name:    "empty array",
			content: `[]`,
			want:    []string{},
		},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got, err := parseSkillArray(tc.content)
			if err != nil {
				t.Fatalf("parseSkillArray() error = %v", err)
			}
			if !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("parseSkillArray() = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestParseSkillArrayNoArray(t *testing.T) {
	t.Parallel()

	if _, err := parseSkillArray("I could not find any skills."); err == nil {
		t.Fatal("expected an error for output without a JSON array")
	}
	if _, err := parseSkillArray(`{"skills": "python"}`); err == nil {
		t.Fatal("expected an error for a non-array JSON payload")
	}
}

func TestConfigEnabled(t *testing.T) {
	t.Parallel()

	if (Config{}).Enabled() {
		t.Fatal("empty config must be disabled")
	}
	if (Config{APIKey: "   "}).Enabled() {
		t.Fatal("blank key must be disabled")
	}
	if !(Config{APIKey: "sk-test"}).Enabled() {
		t.Fatal("configured key must enable the collaborator")
	}
}

func TestNewOpenAIExtractorRequiresKey(t *testing.T) {
	t.Parallel()

	if _, err := NewOpenAIExtractor(Config{}); err == nil {
		t.Fatal("expected an error without an api key")
	}
}
