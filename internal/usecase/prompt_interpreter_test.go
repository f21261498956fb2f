package usecase

import (
	"strings"
	"testing"

	"github.com/grocerlens/backend/internal/infrastructure/catalog"
	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
)

func newTestInterpreter() *PromptInterpreter {
	return NewPromptInterpreter(catalog.Default().StopWords(), quietLogger())
}

func TestNewPromptInterpreter(t *testing.T) {
	t.Run("nil stop words yields empty set", func(t *testing.T) {
		p := NewPromptInterpreter(nil, nil)
		if p.stopWords == nil {
			t.Fatal("expected stop word set to be initialized")
		}
		if p.logger == nil {
			t.Fatal("expected default logger")
		}
		if got := p.Parse("show milk"); got != "milk show" {
			t.Errorf("Parse() = %q, want %q", got, "milk show")
		}
	})
}

func TestParse(t *testing.T) {
	p := newTestInterpreter()

	testCases := []struct {
		name   string
		prompt string
		want   string
	}{
		{
			name:   "drops stop words and anchors milk",
			prompt: "show me milk prices",
			want:   "milk",
		},
		{
			name:   "moves milk ahead of other tokens",
			prompt: "Amul toned MILK 1L",
			want:   "milk amul toned 1l",
		},
		{
			name:   "collapses repeated milk",
			prompt: "milk chocolate milk",
			want:   "milk chocolate",
		},
		{
			name:   "punctuation becomes separator",
			prompt: "Lay's chips, please!",
			want:   "lay s chips",
		},
		{
			name:   "no milk keeps order",
			prompt: "buy atta and rice",
			want:   "atta rice",
		},
		{
			name:   "keeps words outside the stop list",
			prompt: "  Show Me The BEST  ",
			want:   "the",
		},
		{
			name:   "only stop words falls back to lowercased trimmed prompt",
			prompt: "  Please Buy  ",
			want:   "please buy",
		},
		{
			name:   "punctuation only falls back to prompt",
			prompt: " ?!? ",
			want:   "?!?",
		},
		{
			name:   "empty prompt",
			prompt: "",
			want:   "",
		},
		{
			name:   "whitespace prompt",
			prompt: "   ",
			want:   "",
		},
		{
			name:   "non ascii letters are separators",
			prompt: "dahi crème",
			want:   "dahi cr",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := p.Parse(tc.prompt)
			if got != tc.want {
				t.Errorf("Parse(%q) = %q, want %q", tc.prompt, got, tc.want)
			}
		})
	}
}

func TestParse_StartsWithMilkAndHasNoStopWords(t *testing.T) {
	p := newTestInterpreter()
	stop := catalog.Default().StopWords()

	query := p.Parse("show me milk prices for amul under 100")
	tokens := strings.Fields(query)
	if len(tokens) == 0 || tokens[0] != "milk" {
		t.Fatalf("query %q does not start with milk", query)
	}
	for _, tok := range tokens {
		if _, ok := stop[tok]; ok {
			t.Errorf("query %q contains stop word %q", query, tok)
		}
	}
}

func TestParse_Idempotent(t *testing.T) {
	p := newTestInterpreter()

	prompts := []string{
		"show me milk prices",
		"Aashirvaad atta 5kg",
		"buy lay's magic masala chips",
		"bread milk eggs",
		"",
	}

	for _, prompt := range prompts {
		once := p.Parse(prompt)
		twice := p.Parse(once)
		if once != twice {
			t.Errorf("Parse not idempotent for %q: %q then %q", prompt, once, twice)
		}
	}
}

func TestParse_Deterministic(t *testing.T) {
	p := newTestInterpreter()
	for i := 0; i < 5; i++ {
		if got := p.Parse("Find Milk & Bread"); got != "milk bread" {
			t.Fatalf("Parse() = %q on run %d", got, i)
		}
	}
}

func TestParse_LogsOncePerPrompt(t *testing.T) {
	logger, hook := logtest.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)
	p := NewPromptInterpreter(catalog.Default().StopWords(), logger)

	testCases := []struct {
		name     string
		prompt   string
		query    string
		fallback bool
	}{
		{name: "filtered prompt", prompt: "show me milk prices", query: "milk", fallback: false},
		{name: "all stop words", prompt: "Please Buy", query: "please buy", fallback: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			hook.Reset()
			p.Parse(tc.prompt)

			entries := hook.AllEntries()
			if len(entries) != 1 {
				t.Fatalf("got %d log entries, want 1", len(entries))
			}
			entry := entries[0]
			if entry.Message != "Prompt interpreted" {
				t.Errorf("message = %q, want %q", entry.Message, "Prompt interpreted")
			}
			if entry.Data["query"] != tc.query {
				t.Errorf("query field = %v, want %q", entry.Data["query"], tc.query)
			}
			if entry.Data["fallback"] != tc.fallback {
				t.Errorf("fallback field = %v, want %v", entry.Data["fallback"], tc.fallback)
			}
		})
	}
}
