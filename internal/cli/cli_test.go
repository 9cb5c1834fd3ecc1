package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	v := viper.New()
	setDefaults(v)

	cfg, err := loadConfig(v)
	require.NoError(t, err)
	require.Equal(t, "result.json", cfg.InputFile)
	require.Equal(t, "out", cfg.OutputFile)
	require.Equal(t, "text", cfg.OutputFormat)
	require.Equal(t, "%Y-%m-%d %H:%M:%S", cfg.DateFormat)
	require.Equal(t, []string{"date", "text"}, cfg.FieldsToInclude)
	require.False(t, cfg.CaseSensitive)
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	t.Setenv("TGEXTRACT_KEYWORDS", "cat,dog")
	t.Setenv("TGEXTRACT_OUTPUT_FORMAT", "json")
	t.Setenv("TGEXTRACT_CASE_SENSITIVE", "true")

	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix("TGEXTRACT")
	v.AutomaticEnv()

	cfg, err := loadConfig(v)
	require.NoError(t, err)
	require.Equal(t, []string{"cat", "dog"}, cfg.Keywords)
	require.Equal(t, "json", cfg.OutputFormat)
	require.True(t, cfg.CaseSensitive)
}

func TestLoadConfig_ConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
input_file: export/result.json
keywords: [cat, kitten]
fields_to_include: [id, date, text]
dedupe: true
`), 0644))

	v := viper.New()
	setDefaults(v)
	v.SetConfigFile(path)
	require.NoError(t, v.ReadInConfig())

	cfg, err := loadConfig(v)
	require.NoError(t, err)
	require.Equal(t, "export/result.json", cfg.InputFile)
	require.Equal(t, []string{"cat", "kitten"}, cfg.Keywords)
	require.Equal(t, []string{"id", "date", "text"}, cfg.FieldsToInclude)
	require.True(t, cfg.Dedupe)
}

func TestLoadConfig_Invalid(t *testing.T) {
	v := viper.New()
	setDefaults(v)
	v.Set("output_format", "xml")

	_, err := loadConfig(v)
	require.Error(t, err)
}

func TestRunCommand(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("HOME", dir)

	input := filepath.Join(dir, "result.json")
	require.NoError(t, os.WriteFile(input, []byte(`{"messages":[{"date":"2023-05-01T12:00:00","text":"I love Cats!!"}]}`), 0644))
	stem := filepath.Join(dir, "out")

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"run", "-i", input, "-o", stem, "-k", "cat"})
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetArgs(nil)
	})

	require.NoError(t, Execute())
	require.Equal(t, "Processed and filtered 1 messages and saved them to '"+stem+".txt'\n", out.String())

	data, err := os.ReadFile(stem + ".txt")
	require.NoError(t, err)
	require.Equal(t, "date: 2023-05-01 12:00:00\ntext: I love Cats\n\n", string(data))
}

func TestConfigInitCommand(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	path := filepath.Join(dir, "nested", "config.yaml")

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"config", "init", "--path", path})
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetArgs(nil)
	})

	require.NoError(t, Execute())
	require.Contains(t, out.String(), path)

	// The written file must load back into a valid config
	v := viper.New()
	setDefaults(v)
	v.SetConfigFile(path)
	require.NoError(t, v.ReadInConfig())

	cfg, err := loadConfig(v)
	require.NoError(t, err)
	require.Equal(t, "result.json", cfg.InputFile)

	// A second init refuses to overwrite
	require.Error(t, Execute())
}
