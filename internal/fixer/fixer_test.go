package fixer

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	"gopkg.in/yaml.v3"

	"yaml-fixer/internal/diagnostic"
	"yaml-fixer/internal/yamlio"
)

const cleanDeployment = `apiVersion: apps/v1
kind: Deployment
metadata:
  name: web
  labels:
    app: web
spec:
  replicas: 3
  selector:
    matchLabels:
      app: web
  template:
    metadata:
      labels:
        app: web
    spec:
      containers:
        - name: app
          image: nginx:1.25
          ports:
            - containerPort: 80
          env:
            - name: MODE
              value: production
          resources:
            limits:
              cpu: 500m
              memory: 128Mi
`

const brokenDeployment = `apiVersion:apps/v1
kind: Deployment
metadata
  name: web
spec:
  replicas: "2"
  template:
    spec:
      contaners:
      - web
        image: nginx
`

func fix(t *testing.T, text string, opts Options) *Result {
	t.Helper()

	res := New().Fix(text, opts)
	require.NotNil(t, res)

	return res
}

func TestFix_CommonRepairs(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
		fixes    int
	}{
		{
			"missing spaces after colons",
			"apiVersion:v1\nkind:Pod\nmetadata:\n  name:nginx",
			"apiVersion: v1\nkind: Pod\nmetadata:\n  name: nginx",
			3,
		},
		{"missing colon with child", "spec\n  replicas: 3", "spec:\n  replicas: 3", 1},
		{"bare env var entry", "- DATABASE_URL\n  value: \"x\"", "- name: DATABASE_URL\n  value: \"x\"", 1},
		{"duplicate key", "metadata:\n  name: foo\n  name: foo\n", "metadata:\n  name: foo\n", 1},
		{"quoted number", "replicas: \"3\"\n", "replicas: 3\n", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := fix(t, tt.input, DefaultOptions())

			assert.Equal(t, tt.expected, res.Text)
			assert.Equal(t, tt.fixes, res.FixCount)
			assert.True(t, res.Valid)
			assert.Empty(t, res.Errors)
		})
	}
}

func TestFix_MissingColonConfidence(t *testing.T) {
	res := fix(t, "spec\n  replicas: 3", DefaultOptions())

	require.Len(t, res.Changes, 1)
	assert.Equal(t, "missing-colon", res.Changes[0].Category)
	assert.GreaterOrEqual(t, res.Changes[0].Confidence, 0.85)
}

func TestFix_Unparseable(t *testing.T) {
	input := "{{{{\n]]]]\n"
	res := fix(t, input, DefaultOptions())

	assert.False(t, res.Valid)
	assert.NotEmpty(t, res.Text)

	var critical *diagnostic.Diagnostic

	for i := range res.Errors {
		if res.Errors[i].Severity == diagnostic.SeverityCritical {
			critical = &res.Errors[i]
			break
		}
	}

	require.NotNil(t, critical, "errors: %v", res.Errors)
	assert.Equal(t, diagnostic.CodeParseError, critical.Code)
	assert.False(t, critical.Fixable)
	assert.GreaterOrEqual(t, critical.Line, 1)
	assert.GreaterOrEqual(t, critical.Column, 1)
}

func TestFix_Composite(t *testing.T) {
	res := fix(t, brokenDeployment, DefaultOptions())

	expected := `apiVersion: apps/v1
kind: Deployment
metadata:
  name: web
spec:
  replicas: 2
  template:
    spec:
      containers:
      - name: web
        image: nginx
`

	assert.Equal(t, expected, res.Text)
	assert.True(t, res.Valid)
	assert.Equal(t, 5, res.FixCount)
	assert.Equal(t, 1, res.Iterations)
	assert.Equal(t, 1, res.Documents)
	assert.Greater(t, res.Confidence, 0.8)

	var categories []string
	for _, c := range res.Changes {
		categories = append(categories, c.Category)
	}

	assert.Equal(t, []string{
		"missing-space", "missing-colon", "type-coercion", "field-normalization", "list-restructure",
	}, categories)
}

func TestFix_Idempotent(t *testing.T) {
	inputs := []string{
		cleanDeployment,
		"apiVersion: v1\nkind: Service\nmetadata:\n  name: web\nspec:\n  ports:\n  - port: 80\n",
		"",
		"# only a comment\n",
		"args:\n- --port 8080\n",
		"command:\n- kubectl\n- --namespace default\n- get\n",
		"apiVersion: v1\nkind: Pod\nmetadata:\n  name: web\nspec:\n  containers:\n    - name: app\n      image: nginx\n      args:\n        - --port 8080\n",
	}

	for _, input := range inputs {
		res := fix(t, input, DefaultOptions())

		assert.Equal(t, input, res.Text)
		assert.Zero(t, res.FixCount)
		assert.Empty(t, res.Changes)
		assert.True(t, res.Valid)
		assert.InDelta(t, 1.0, res.Confidence, 1e-9)
	}
}

func TestFix_Confluent(t *testing.T) {
	inputs := []string{
		brokenDeployment,
		"apiVersion:v1\nkind:Pod\nmetadata:\n  name:nginx",
		"spec\n  replicas: 3",
		"env:\n- DATABASE_URL\n  value: \"x\"",
		"metadata:\n  name: foo\n  name: foo",
		"replicas: three\nreadOnly: yes\n",
		"a:\n  b: 1\n c: 2\n",
	}

	for _, aggressive := range []bool{false, true} {
		opts := DefaultOptions()
		opts.Aggressive = aggressive

		for _, input := range inputs {
			first := fix(t, input, opts)
			second := fix(t, first.Text, opts)

			assert.Zero(t, second.FixCount, "refix of %q (aggressive=%v) changed %v", first.Text, aggressive, second.Changes)
			assert.Equal(t, first.Text, second.Text)
		}
	}
}

func TestFix_ThresholdMonotonic(t *testing.T) {
	tests := []struct {
		name  string
		input string
		last  int
	}{
		{"passes", "replicas: three\nreadOnly: yes\nspec:\n  contaners: []\nmetadata:\n  lables: {}\n", 1},
		{"degraded path", "metadata\n   name: x\n", 0},
		{"line fallback", "x:\n  first some words\n  second more words\n  third: 1\n", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prev := -1

			for _, threshold := range []float64{0.5, 0.6, 0.7, 0.8, 0.85, 0.9, 0.95, 0.99, 1.0} {
				opts := DefaultOptions()
				opts.ConfidenceThreshold = threshold

				res := fix(t, tt.input, opts)

				for _, c := range res.Changes {
					assert.GreaterOrEqual(t, c.Confidence, threshold, "threshold %.2f: %v", threshold, c)
				}

				if prev >= 0 {
					assert.LessOrEqual(t, res.FixCount, prev, "threshold %.2f", threshold)
				}

				prev = res.FixCount
			}

			assert.Equal(t, tt.last, prev)
		})
	}
}

func TestFix_BlockScalarUntouched(t *testing.T) {
	input := `apiVersion: v1
kind: ConfigMap
metadata:
  name:cfg
data:
  script: |
    name:nginx
    key value here
    replicas: "3"
      odd:indent
  mode: ok
`

	res := fix(t, input, DefaultOptions())
	require.True(t, res.Valid)
	assert.Equal(t, 1, res.FixCount)

	for _, line := range []string{
		"    name:nginx",
		"    key value here",
		`    replicas: "3"`,
		"      odd:indent",
	} {
		assert.Contains(t, res.Text, line+"\n")
	}

	assert.Contains(t, res.Text, "  name: cfg\n")
}

func TestFix_Whitespace(t *testing.T) {
	res := fix(t, "metadata:\n\tname: web   \n", DefaultOptions())

	assert.Equal(t, "metadata:\n  name: web\n", res.Text)
	assert.Zero(t, res.FixCount)
	require.Len(t, res.Changes, 1)
	assert.Equal(t, CategoryWhitespace, res.Changes[0].Category)
	assert.Equal(t, 2, res.Changes[0].Line)
	assert.Equal(t, "tab indentation expanded", res.Changes[0].Reason)
}

func TestFix_MultiDocument(t *testing.T) {
	input := "apiVersion:v1\nkind: Pod\n---\napiVersion: v1\nkind:Service\n"
	res := fix(t, input, DefaultOptions())

	assert.Equal(t, "apiVersion: v1\nkind: Pod\n---\napiVersion: v1\nkind: Service\n", res.Text)
	assert.Equal(t, 2, res.Documents)
	require.Len(t, res.Changes, 2)
	assert.Equal(t, 1, res.Changes[0].Line)
	assert.Equal(t, 5, res.Changes[1].Line)
}

func TestFix_DocumentsKeepSeparateKeys(t *testing.T) {
	input := "name: a\n---\nname: a\n"
	res := fix(t, input, DefaultOptions())

	assert.Equal(t, input, res.Text)
	assert.Zero(t, res.FixCount)
}

func TestFix_SeparatorWithContent(t *testing.T) {
	input := "kind: A\n--- # second\nkind: B\n"
	res := fix(t, input, DefaultOptions())

	assert.Equal(t, input, res.Text)
	assert.Equal(t, 1, res.Documents)
	assert.True(t, res.Valid)
	assert.Zero(t, res.FixCount)

	res = fix(t, "kind: A\n---  \nkind: B\n", DefaultOptions())
	assert.Equal(t, 2, res.Documents)
}

func TestFix_DuplicateBlock(t *testing.T) {
	input := "spec:\n  replicas: 1\nkind: Pod\nspec:\n  replicas: 2\n  paused: true\n"
	res := fix(t, input, DefaultOptions())

	assert.Equal(t, "spec:\n  replicas: 1\nkind: Pod\n", res.Text)
	require.Len(t, res.Changes, 1)
	assert.Equal(t, "duplicate-key", res.Changes[0].Category)
	assert.Empty(t, res.Changes[0].Fixed)
}

func TestFix_IndentationFallback(t *testing.T) {
	res := fix(t, "a:\n  b: 1\n c: 2\n", DefaultOptions())

	assert.True(t, res.Valid)
	assert.Equal(t, "a:\n  b: 1\n  c: 2\n", res.Text)
	require.Len(t, res.Changes, 1)
	assert.Equal(t, "indentation", res.Changes[0].Category)
	assert.Equal(t, "indent", res.Changes[0].Pass)
}

func TestFix_LineFallback(t *testing.T) {
	input := "x:\n  first some words\n  second more words\n  third: 1\n"

	res := fix(t, input, DefaultOptions())

	assert.False(t, res.Valid)
	assert.Equal(t, input, res.Text)
	assert.Zero(t, res.FixCount)
	assert.Contains(t, codesOf(res.Errors), diagnostic.CodeParseError)

	opts := DefaultOptions()
	opts.ConfidenceThreshold = 0.6

	res = fix(t, input, opts)

	assert.True(t, res.Valid)
	assert.Equal(t, "x:\n  first: some words\n  second: more words\n  third: 1\n", res.Text)
	assert.Equal(t, 2, res.FixCount)
}

func codesOf(diags []diagnostic.Diagnostic) []string {
	codes := make([]string, 0, len(diags))
	for _, d := range diags {
		codes = append(codes, d.Code)
	}

	return codes
}

const flatDeployment = `apiVersion: apps/v1
kind: Deployment
name: web
replicas: 2
containers:
- name: app
  image: nginx
spec:
  selector:
    matchLabels:
      app: web
`

func TestFix_AggressiveRelocation(t *testing.T) {
	opts := DefaultOptions()
	opts.Aggressive = true

	res := fix(t, flatDeployment, opts)
	require.True(t, res.Valid)
	assert.Equal(t, 3, res.FixCount)

	for _, c := range res.Changes {
		assert.Equal(t, "field-relocation", c.Category)
	}

	var doc struct {
		Metadata struct {
			Name string `yaml:"name"`
		} `yaml:"metadata"`
		Spec struct {
			Replicas int `yaml:"replicas"`
			Template struct {
				Metadata struct {
					Labels map[string]string `yaml:"labels"`
				} `yaml:"metadata"`
				Spec struct {
					Containers []map[string]string `yaml:"containers"`
				} `yaml:"spec"`
			} `yaml:"template"`
		} `yaml:"spec"`
		Name string `yaml:"name"`
	}

	require.NoError(t, yaml.Unmarshal([]byte(res.Text), &doc))
	assert.Equal(t, "web", doc.Metadata.Name)
	assert.Empty(t, doc.Name)
	assert.Equal(t, 2, doc.Spec.Replicas)
	assert.Equal(t, map[string]string{"app": "web"}, doc.Spec.Template.Metadata.Labels)
	assert.Equal(t, []map[string]string{{"name": "app", "image": "nginx"}}, doc.Spec.Template.Spec.Containers)
}

func TestFix_MisplacedFieldsReported(t *testing.T) {
	res := fix(t, flatDeployment, DefaultOptions())

	assert.Equal(t, flatDeployment, res.Text)
	assert.Zero(t, res.FixCount)

	var suggestions []string

	for _, d := range res.Errors {
		assert.Equal(t, diagnostic.CodeMisplacedField, d.Code)
		assert.Equal(t, diagnostic.SeverityInfo, d.Severity)
		suggestions = append(suggestions, d.Suggestion)
	}

	assert.ElementsMatch(t, []string{"metadata.name", "spec.replicas", "spec.template.spec.containers"}, suggestions)
}

func TestFix_Defaults(t *testing.T) {
	res := fix(t, "spec\n  replicas: 3", Options{})

	assert.True(t, res.Valid)
	assert.Equal(t, "spec:\n  replicas: 3", res.Text)
}

type brokenCodec struct{ yamlio.YAMLCodec }

func (brokenCodec) Parse(string) ([]*yaml.Node, error) {
	return nil, errors.New("parser unavailable")
}

func TestFix_CodecFailure(t *testing.T) {
	res := New(WithCodec(brokenCodec{})).Fix("kind: Pod\n", DefaultOptions())

	assert.False(t, res.Valid)
	assert.Equal(t, "kind: Pod\n", res.Text)
	require.Len(t, res.Errors, 1)
	assert.Equal(t, diagnostic.Diagnostic{
		Severity: diagnostic.SeverityCritical,
		Code:     diagnostic.CodeParseError,
		Message:  "parser unavailable",
		Line:     1,
		Column:   1,
	}, res.Errors[0])
}

func TestFix_LogsIterations(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)

	New(WithLogger(zap.New(core))).Fix("apiVersion:v1\n", DefaultOptions())

	entries := logs.FilterMessage("fix iteration").All()
	require.Len(t, entries, 1)

	fields := entries[0].ContextMap()
	assert.EqualValues(t, 1, fields["iteration"])
	assert.EqualValues(t, 1, fields["accepted"])
	assert.Equal(t, true, fields["parsed"])
	assert.EqualValues(t, 1, fields["document"])
}

func TestOptions_Threshold(t *testing.T) {
	opts := DefaultOptions()
	assert.InDelta(t, 0.8, opts.Threshold(), 1e-9)

	opts.Aggressive = true
	assert.InDelta(t, 0.6, opts.Threshold(), 1e-9)
}
