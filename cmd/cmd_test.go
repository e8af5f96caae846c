package cmd

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/ginjaninja78/catalog-html-converter/internal/config"
	"github.com/ginjaninja78/catalog-html-converter/internal/types"
)

// execute runs the root command with args and returns stdout and stderr.
func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()

	var stdout, stderr bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})

	err := rootCmd.Execute()
	return stdout.String(), stderr.String(), err
}

// workspace writes a config whose default files live in a temp dir.
func workspace(t *testing.T, categories, products string) (dir, cfgPath string) {
	t.Helper()
	dir = t.TempDir()

	write := func(name, content string) string {
		path := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
		return path
	}

	cfg := config.Default()
	cfg.Input.CategoriesFile = write("groups.csv", categories)
	cfg.Input.ProductsFile = write("products.csv", products)
	cfg.Output.ResultFile = filepath.Join(dir, "result.txt")

	data, err := yaml.Marshal(cfg)
	require.NoError(t, err)
	return dir, write("catalog.yaml", string(data))
}

func TestProcessDefaults(t *testing.T) {
	dir, cfgPath := workspace(t,
		"id;наименование;родитель;формат описания товаров;наследовать дочерним\n1;Root;;%наименование%;0\n",
		"id;категория;наименование;цена\n10;1;Widget;5\n11;7;Ghost;1\n",
	)

	stdout, stderr, err := execute(t, "process", "--config", cfgPath)
	require.NoError(t, err, stderr)

	got, err := os.ReadFile(filepath.Join(dir, "result.txt"))
	require.NoError(t, err)
	assert.Equal(t, "<ul><li><h1>Root</h1><ul><li><b>Widget</b></li></ul></li></ul>", string(got))

	assert.Contains(t, stdout, "Products:   2 (orphaned 1)")
	assert.Contains(t, stderr, "run_id=")
}

func TestProcessPositionalOutput(t *testing.T) {
	dir, cfgPath := workspace(t, "header\n1;Root\n", "id\n")
	out := filepath.Join(dir, "catalog.html")

	_, stderr, err := execute(t, "process",
		filepath.Join(dir, "groups.csv"), filepath.Join(dir, "products.csv"), out,
		"--config", cfgPath)
	require.NoError(t, err, stderr)

	got, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "<ul><li><h1>Root</h1></li></ul>", string(got))
}

func TestProcessFailureCode(t *testing.T) {
	dir, cfgPath := workspace(t, "", "")

	_, _, err := execute(t, "process", filepath.Join(dir, "missing.csv"), "--config", cfgPath)
	require.Error(t, err)

	var stageErr *types.StageError
	require.True(t, errors.As(err, &stageErr))
	assert.Equal(t, types.ErrorFileOpen, stageErr.Code)
	assert.Regexp(t, `^Error code :1 \(.*missing\.csv.*\)$`, errorLine(err))
}

func TestProcessInputNotAFile(t *testing.T) {
	dir, cfgPath := workspace(t, "", "")

	_, _, err := execute(t, "process", dir, "--config", cfgPath)
	require.Error(t, err)

	var stageErr *types.StageError
	require.True(t, errors.As(err, &stageErr))
	assert.Equal(t, types.ErrorFileOpen, stageErr.Code)
	assert.Equal(t, "Error code :1 (input file not found: "+dir+")", errorLine(err))
	assert.NoFileExists(t, filepath.Join(dir, "result.txt"))
}

func TestProcessTooManyArgs(t *testing.T) {
	_, cfgPath := workspace(t, "", "")
	_, _, err := execute(t, "process", "a", "b", "c", "d", "--config", cfgPath)
	require.Error(t, err)
	assert.Equal(t, "Error: "+err.Error(), errorLine(err))
}

func TestConfigCommand(t *testing.T) {
	_, cfgPath := workspace(t, "", "")
	t.Setenv("CATALOG_INPUT_CSV_ENCODING", "koi8-r")

	stdout, _, err := execute(t, "config", "--config", cfgPath)
	require.NoError(t, err)

	var printed config.Config
	require.NoError(t, yaml.Unmarshal([]byte(stdout), &printed))
	assert.Equal(t, "koi8-r", printed.Input.CSV.Encoding)
	assert.Equal(t, ";", printed.Input.CSV.Delimiter)
	assert.NoError(t, printed.Validate())
}

func TestMissingExplicitConfig(t *testing.T) {
	_, _, err := execute(t, "config", "--config", filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestVersionCommand(t *testing.T) {
	_, cfgPath := workspace(t, "", "")
	t.Cleanup(func() { shortVersion = false })

	stdout, _, err := execute(t, "version", "--config", cfgPath)
	require.NoError(t, err)
	assert.Contains(t, stdout, "Catalog to HTML Converter "+resolveVersion())
	assert.Contains(t, stdout, "Config File: "+cfgPath)
	assert.Contains(t, stdout, "Env Prefix:  CATALOG_")

	stdout, _, err = execute(t, "version", "--short", "--config", cfgPath)
	require.NoError(t, err)
	assert.Equal(t, resolveVersion()+"\n", stdout)
}

func TestResolveVersionPrefersStamp(t *testing.T) {
	saved := Version
	t.Cleanup(func() { Version = saved })

	Version = "2.3.4"
	assert.Equal(t, "2.3.4", resolveVersion())
}

func TestNewLoggerFormats(t *testing.T) {
	var buf bytes.Buffer
	cfg := config.Default()
	cfg.LogFormat = "json"

	log, err := newLogger(cfg, false, &buf)
	require.NoError(t, err)
	log.Debug("hidden")
	log.Info("shown")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), `"msg":"shown"`)
	assert.Contains(t, buf.String(), `"run_id":`)

	buf.Reset()
	log, err = newLogger(cfg, true, &buf)
	require.NoError(t, err)
	log.Debug("now shown")
	assert.Contains(t, buf.String(), "now shown")
}
