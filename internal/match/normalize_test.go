package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeIdent(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"", ""},
		{"name", "name"},
		{"containerPort", "containerport"},
		{"container_port", "containerport"},
		{"Container-Port", "containerport"},
		{"CONTAINER_PORT", "containerport"},
		{"api_version", "apiversion"},
		{"apiVersion", "apiversion"},
		{"volume mounts", "volumemounts"},
		{"hostIPC", "hostipc"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, NormalizeIdent(tt.input))
		})
	}
}

func TestIsFieldName(t *testing.T) {
	tests := []struct {
		input    string
		expected bool
	}{
		{"name", true},
		{"containerPort", true},
		{"app-name", true},
		{"mount_path", true},
		{"x1", true},
		{"", false},
		{"Name", false},
		{"1port", false},
		{"my key", false},
		{"trailing-", false},
		{"nginx:latest", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, IsFieldName(tt.input))
		})
	}
}

func TestIsEnvVarName(t *testing.T) {
	tests := []struct {
		input    string
		expected bool
	}{
		{"DATABASE_URL", true},
		{"PORT", true},
		{"LOG_LEVEL2", true},
		{"", false},
		{"_", false},
		{"2FA", false},
		{"port", false},
		{"Mixed_Case", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, IsEnvVarName(tt.input))
		})
	}
}
