package cmd

import (
	"bytes"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
)

func TestRequireArgs(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantErr string
	}{
		{"Exact", []string{"./export", "key"}, ""},
		{"MissingOne", []string{"./export"}, "missing required arguments: apiKey"},
		{"MissingAll", nil, "missing required arguments: localFolder, apiKey"},
		{"TooMany", []string{"a", "b", "c"}, "expected 2 arguments, got 3"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			c := &cobra.Command{Use: "scan-local <localFolder> <apiKey>"}
			c.SetOut(&out)
			c.SetErr(&out)

			err := requireArgs("localFolder", "apiKey")(c, tt.args)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				assert.Empty(t, out.String())
				return
			}
			assert.EqualError(t, err, tt.wantErr)
			assert.Contains(t, out.String(), "Usage:")
		})
	}
}

func TestCommandsRegistered(t *testing.T) {
	names := make([]string, 0)
	for _, c := range RootCmd.Commands() {
		names = append(names, c.Name())
	}
	assert.Subset(t, names, []string{"scan-local", "scan-remote", "delete"})
	assert.NotNil(t, deleteCmd.Flags().Lookup("dry-run"))
}
