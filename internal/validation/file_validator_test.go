package validation

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateInputDirectory(t *testing.T) {
	v := NewFileValidator(nil)

	t.Run("existing directory passes", func(t *testing.T) {
		assert.NoError(t, v.ValidateInputDirectory(t.TempDir()))
	})

	t.Run("missing directory fails", func(t *testing.T) {
		err := v.ValidateInputDirectory(filepath.Join(t.TempDir(), "absent"))
		assert.ErrorContains(t, err, "does not exist")
	})

	t.Run("file instead of directory fails", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "data.csv")
		require.NoError(t, os.WriteFile(path, []byte("year\n"), 0644))
		err := v.ValidateInputDirectory(path)
		assert.ErrorContains(t, err, "not a directory")
	})
}

func TestValidateOutputDirectory(t *testing.T) {
	v := NewFileValidator(nil)

	t.Run("creates missing directory", func(t *testing.T) {
		dir := filepath.Join(t.TempDir(), "out", "cleaned")
		require.NoError(t, v.ValidateOutputDirectory(dir))

		info, err := os.Stat(dir)
		require.NoError(t, err)
		assert.True(t, info.IsDir())
	})

	t.Run("removes its write probe", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, v.ValidateOutputDirectory(dir))

		_, err := os.Stat(filepath.Join(dir, ".write_test"))
		assert.True(t, os.IsNotExist(err))
	})
}

func TestValidateInputFile(t *testing.T) {
	v := NewFileValidator(nil)
	dir := t.TempDir()

	write := func(name string) string {
		path := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(path, []byte("year\n2020\n"), 0644))
		return path
	}

	tests := []struct {
		name    string
		path    string
		wantErr string
	}{
		{name: "csv passes", path: write("tidied_comm_ev.csv")},
		{name: "xlsx passes", path: write("tidied_comm_ev.xlsx")},
		{name: "missing file", path: filepath.Join(dir, "absent.csv"), wantErr: "does not exist"},
		{name: "excel lock file", path: write("~$tidied_comm_ev.xlsx"), wantErr: "temporary Excel file"},
		{name: "unsupported format", path: write("notes.txt"), wantErr: "unsupported format"},
		{name: "directory", path: dir, wantErr: "is a directory"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.ValidateInputFile(tt.path)
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				assert.ErrorContains(t, err, tt.wantErr)
			}
		})
	}
}
