package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"typeahead/internal/domain"
	"typeahead/internal/eventbus"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, 1, cfg.MinLength)
	assert.True(t, cfg.Hint)
	assert.Equal(t, 2, cfg.HintMargin)
	assert.False(t, cfg.AutocompleteKeys)
	assert.False(t, cfg.DecoupledQuery)
	require.Len(t, cfg.Datasets, 1)
	assert.NoError(t, cfg.Validate())
}

func TestLoadFromPath_MergesOverDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	data := `
min_length = 2
autocomplete_keys = true

[styles]
hint = "8"

[[datasets]]
name = "fruit"
words = ["apple", "banana"]

[[datasets]]
name = "repos"
file = "repos.txt"
watch = true
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0644))

	cfg, err := NewConfigServiceAt(path).LoadFromPath(path)
	require.NoError(t, err)

	assert.Equal(t, 2, cfg.MinLength)
	assert.True(t, cfg.AutocompleteKeys)
	assert.True(t, cfg.Hint, "unset keys keep defaults")
	assert.Equal(t, "8", cfg.Styles.Hint)
	assert.Equal(t, "205", cfg.Styles.Cursor)
	require.Len(t, cfg.Datasets, 2)
	assert.Equal(t, []string{"apple", "banana"}, cfg.Datasets[0].Words)
	assert.Equal(t, "repos.txt", cfg.Datasets[1].File)
	assert.True(t, cfg.Datasets[1].Watch)
}

func TestLoadFromPath_Errors(t *testing.T) {
	dir := t.TempDir()

	_, err := NewConfigServiceAt("").LoadFromPath(filepath.Join(dir, "missing.toml"))
	assert.ErrorContains(t, err, "config file not found")

	bad := filepath.Join(dir, "bad.toml")
	require.NoError(t, os.WriteFile(bad, []byte("min_length = ["), 0644))
	_, err = NewConfigServiceAt("").LoadFromPath(bad)
	assert.ErrorContains(t, err, "failed to parse config")

	invalid := filepath.Join(dir, "invalid.toml")
	require.NoError(t, os.WriteFile(invalid, []byte("[[datasets]]\nname = \"x\"\n"), 0644))
	_, err = NewConfigServiceAt("").LoadFromPath(invalid)
	assert.ErrorIs(t, err, ErrDatasetSource)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name     string
		datasets []Dataset
		wantErr  error
	}{
		{name: "words", datasets: []Dataset{{Name: "a", Words: []string{"x"}}}},
		{name: "command", datasets: []Dataset{{Name: "a", Command: "ls"}}},
		{name: "missing name", datasets: []Dataset{{Words: []string{"x"}}}, wantErr: ErrDatasetName},
		{name: "two sources", datasets: []Dataset{{Name: "a", Words: []string{"x"}, File: "f"}}, wantErr: ErrDatasetSource},
		{name: "no source", datasets: []Dataset{{Name: "a"}}, wantErr: ErrDatasetSource},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{Datasets: tt.datasets}
			err := cfg.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestValidate_DuplicateName(t *testing.T) {
	cfg := &Config{Datasets: []Dataset{
		{Name: "a", Words: []string{"x"}},
		{Name: "a", Command: "ls"},
	}}

	assert.ErrorContains(t, cfg.Validate(), "defined twice")
}

func TestSaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	bus := eventbus.New("test")
	var seen []domain.EventType
	bus.Subscribe(EventConfigSaved, func(e domain.DomainEvent) { seen = append(seen, e.Type()) })
	bus.Subscribe(EventConfigLoaded, func(e domain.DomainEvent) { seen = append(seen, e.Type()) })

	svc := WithBus(NewConfigServiceAt(path), bus)
	cfg := DefaultConfig()
	cfg.Prompt = "? "
	cfg.Datasets = []Dataset{{Name: "cmd", Command: "git branch --format='%(refname:short)'"}}

	require.NoError(t, svc.Save(cfg))
	loaded, err := svc.Load()
	require.NoError(t, err)

	assert.Equal(t, cfg, loaded)
	assert.Equal(t, []domain.EventType{EventConfigSaved, EventConfigLoaded}, seen)
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	svc := NewConfigServiceAt(filepath.Join(t.TempDir(), "none.toml"))

	cfg, err := svc.Load()
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}
