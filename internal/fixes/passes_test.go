package fixes

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"yaml-fixer/internal/diagnostic"
	"yaml-fixer/internal/knowledge"
	"yaml-fixer/internal/semantic"
)

func TestQuotePass(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"double", `name: "nginx`, `name: "nginx"`},
		{"single with escape", `msg: 'it''s`, `msg: 'it''s'`},
		{"escaped double", `path: "a\"b`, `path: "a\"b"`},
		{"list item", `- "first`, `- "first"`},
		{"balanced", `ok: "fine"`, ""},
		{"apostrophe inside plain", `note: don't`, ""},
		{"block body", "script: |\n  echo \"hi", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := detect(t, QuotePass{}, tt.input)
			if tt.expected == "" {
				assert.Empty(t, got)
				return
			}

			s := only(t, got)
			assert.Equal(t, tt.expected, s.Replacement)
			assert.Equal(t, FixQuoteBalance, s.Type)
			assert.Equal(t, diagnostic.SeverityCritical, s.Severity)
		})
	}
}

func TestColonPass(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		line       int
		expected   string
		typ        FixType
		confidence float64
	}{
		{"missing space known", "apiVersion:v1", 1, "apiVersion: v1", FixMissingSpace, 0.95},
		{"missing space custom", "url:example", 1, "url: example", FixMissingSpace, 0.85},
		{"parent without colon", "spec\n  replicas: 3", 1, "spec:", FixMissingColon, 0.95},
		{"unknown parent", "settings\n  level: 3", 1, "settings:", FixMissingColon, 0.85},
		{"known key and value", "metadata:\n  name nginx", 2, "  name: nginx", FixMissingColon, 0.95},
		{"typed value", "customKey 3", 1, "customKey: 3", FixMissingColon, 0.85},
		{"single token", "customKey value", 1, "customKey: value", FixMissingColon, 0.75},
		{"phrase", "customKey some words", 1, "customKey: some words", FixMissingColon, 0.6},
		{
			"siblings use colons",
			"a: 1\nb: 2\nc: 3\nd: 4\ncustom some words",
			5, "custom: some words", FixMissingColon, 0.85,
		},
		{"list item field", "- name web", 1, "- name: web", FixMissingColon, 0.95},
		{"keeps comment", "image nginx # pinned", 1, "image: nginx # pinned", FixMissingColon, 0.95},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := only(t, detect(t, ColonPass{}, tt.input))

			assert.Equal(t, tt.line, s.Line)
			assert.Equal(t, tt.expected, s.Replacement)
			assert.Equal(t, tt.typ, s.Type)
			assert.InDelta(t, tt.confidence, s.Confidence, 1e-9)
		})
	}
}

func TestColonPass_Ignores(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"valid", "kind: Pod\nmetadata:\n  name: a"},
		{"url value", "- http://example.com"},
		{"image tag in list", "- nginx:1.25"},
		{"plain list scalar", "args:\n- echo hello"},
		{"flags in command", "command:\n- kubectl\n- --namespace default\n- get"},
		{"flag without parent", "- --image nginx"},
		{"flag with colon", "args:\n- --port:8080"},
		{"field name in args", "args:\n- name web"},
		{"indented args", "containers:\n  - name: app\n    args:\n      - --port 8080"},
		{"continuation", "description: hello\n  world again"},
		{"block scalar body", "script: |\n  name nginx"},
		{"flow mapping", "{a: 1}"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Empty(t, detect(t, ColonPass{}, tt.input))
		})
	}
}

func TestTypoPass(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		line       int
		expected   string
		confidence float64
	}{
		{"distance one plausible", "spec:\n  contaners:\n  - name: a", 2, "  containers:", 1.0},
		{"alias at root", "api_version: v1", 1, "apiVersion: v1", 1.0},
		{"distance two plausible", "metadata:\n  lables:\n    app: x", 2, "  labels:", 0.8},
		{"capitalized alias", "Kind: Pod", 1, "kind: Pod", 1.0},
		{"keeps value and comment", "spec:\n  replica: 3 # scale", 2, "  replicas: 3 # scale", 1.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := only(t, detect(t, TypoPass{}, tt.input))

			assert.Equal(t, tt.line, s.Line)
			assert.Equal(t, tt.expected, s.Replacement)
			assert.InDelta(t, tt.confidence, s.Confidence, 1e-9)
			assert.Equal(t, FixFieldNormalization, s.Type)
		})
	}
}

func TestTypoPass_Ambiguous(t *testing.T) {
	s := only(t, detect(t, TypoPass{}, "portz: 80"))

	assert.Equal(t, "port: 80", s.Replacement)
	assert.InDelta(t, 0.75, s.Confidence, 1e-9)
	assert.Contains(t, s.Reason, "did you mean one of port, ports")
}

func TestTypoPass_Ignores(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"known", "metadata:\n  name: a"},
		{"free-form labels", "metadata:\n  labels:\n    contaners: x"},
		{"env var", "DATABASE_URL: x"},
		{"domain key", "metadata:\n  annotations:\n    example.com/owner: me"},
		{"far from everything", "zzzzqqq: 1"},
		{"missing space", "contaners:x"},
		{"short key at distance two", "containers:\n- nmae: app\n  image: x"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Empty(t, detect(t, TypoPass{}, tt.input))
		})
	}
}

func TestListPass(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		expected   string
		confidence float64
	}{
		{"env value", "env:\n- DATABASE_URL\n  value: \"x\"", "- name: DATABASE_URL", 0.85},
		{"env valueFrom", "env:\n  - TOKEN\n    valueFrom:\n      secretKeyRef: {}", "  - name: TOKEN", 0.85},
		{"container", "containers:\n- web\n  image: nginx", "- name: web", 0.85},
		{"volume mount", "volumeMounts:\n- data\n  mountPath: /data", "- name: data", 0.8},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := only(t, detect(t, ListPass{}, tt.input))

			assert.Equal(t, 2, s.Line)
			assert.Equal(t, tt.expected, s.Replacement)
			assert.InDelta(t, tt.confidence, s.Confidence, 1e-9)
			assert.Equal(t, FixListRestructure, s.Type)
		})
	}
}

func TestListPass_Ignores(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"plain scalars", "args:\n- --verbose\n- --debug"},
		{"already named", "env:\n- name: A\n  value: b"},
		{"unrelated second field", "items:\n- thing\n  color: red"},
		{"last line", "env:\n- A"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Empty(t, detect(t, ListPass{}, tt.input))
		})
	}
}

func TestCoercePass(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		expected   string
		confidence float64
		severity   diagnostic.Severity
	}{
		{"quoted number", `replicas: "3"`, "replicas: 3", 0.9, diagnostic.SeverityInfo},
		{"number word", "replicas: three # scale", "replicas: 3 # scale", 0.85, diagnostic.SeverityWarning},
		{"yes", "readOnly: yes", "readOnly: true", 0.9, diagnostic.SeverityWarning},
		{"off", "privileged: off", "privileged: false", 0.9, diagnostic.SeverityWarning},
		{"nested port", "ports:\n- containerPort: '8080'", "- containerPort: 8080", 0.9, diagnostic.SeverityInfo},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := only(t, detect(t, CoercePass{}, tt.input))

			assert.Equal(t, tt.expected, s.Replacement)
			assert.InDelta(t, tt.confidence, s.Confidence, 1e-9)
			assert.Equal(t, tt.severity, s.Severity)
			assert.Equal(t, FixTypeCoercion, s.Type)
		})
	}
}

func TestCoercePass_Ignores(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"already a number", "replicas: 3"},
		{"string field", `name: "3"`},
		{"string port", `targetPort: "http"`},
		{"free-form", "metadata:\n  labels:\n    replicas: \"3\""},
		{"unrelated word", "replicas: many"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Empty(t, detect(t, CoercePass{}, tt.input))
		})
	}
}

func TestDuplicatePass(t *testing.T) {
	t.Run("scalar", func(t *testing.T) {
		s := only(t, detect(t, DuplicatePass{}, "metadata:\n  name: foo\n  name: foo"))

		assert.True(t, s.Remove)
		assert.Equal(t, 3, s.Line)
		assert.Equal(t, 3, s.EndLine)
		assert.InDelta(t, 0.95, s.Confidence, 1e-9)
		assert.Contains(t, s.Reason, "line 2")
	})

	t.Run("block", func(t *testing.T) {
		input := "spec:\n  a: 1\nspec:\n  b: 2\n  c:\n    d: 3\nkind: X"
		s := only(t, detect(t, DuplicatePass{}, input))

		assert.Equal(t, 3, s.Line)
		assert.Equal(t, 6, s.EndLine)
		assert.Equal(t, "spec:\n  a: 1\nkind: X", apply(input, []Suggestion{s}))
	})

	t.Run("duplicate inside list item", func(t *testing.T) {
		s := only(t, detect(t, DuplicatePass{}, "- name: a\n  image: x\n  image: y"))
		assert.Equal(t, 3, s.Line)
	})
}

func TestDuplicatePass_Ignores(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"list items", "- name: a\n  image: x\n- name: b\n  image: y"},
		{"different parents", "a:\n  name: x\nb:\n  name: y"},
		{"documents", "name: a\n---\nname: b"},
		{"block scalar body", "script: |\n  a: 1\n  a: 1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Empty(t, detect(t, DuplicatePass{}, tt.input))
		})
	}
}

func TestRunPasses(t *testing.T) {
	tree := semantic.Build("apiVersion:v1\nreplicas: \"2\"")
	got := RunPasses(DefaultPasses(), tree, knowledge.MustDefault())

	var passes []string
	for _, s := range got {
		passes = append(passes, s.Pass)
	}

	assert.Equal(t, []string{"colon", "coerce"}, passes)
}
