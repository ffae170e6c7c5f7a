package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func setupEnv(t *testing.T) (configDir, dataDir string) {
	t.Helper()
	root := t.TempDir()
	configDir = filepath.Join(root, "config")
	dataDir = filepath.Join(root, "data")
	t.Setenv("XDG_CONFIG_HOME", configDir)
	t.Setenv("XDG_DATA_HOME", dataDir)
	return configDir, dataDir
}

func writeConfig(t *testing.T, configDir, content string) {
	t.Helper()
	path := filepath.Join(configDir, "stardate", "config.toml")
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
}

func execute(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	cmd := newRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(expandDigitsShorthand(args))
	err = cmd.Execute()
	return out.String(), errOut.String(), err
}

func TestConvertDefaultsToStardate(t *testing.T) {
	setupEnv(t)
	out, _, err := execute(t, "2323-01-01")
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if out != "[21]00000.00\n" {
		t.Fatalf("unexpected output %q", out)
	}
}

func TestConvertSelectedFormatsInTableOrder(t *testing.T) {
	setupEnv(t)
	out, _, err := execute(t, "-xg", "-s", "[21]00000", "U0")
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	want := "[21]00000.00 2323-01-01T00:00:00 U0x297f81300\n" +
		"[-36]9350.00 1970-01-01T00:00:00 U0x0\n"
	if out != want {
		t.Fatalf("output:\n got %q\nwant %q", out, want)
	}
}

func TestLegacyDigitsShorthand(t *testing.T) {
	setupEnv(t)
	out, _, err := execute(t, "-gs4", "[21]00000")
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if out != "[21]00000.0000 2323-01-01T00:00:00\n" {
		t.Fatalf("unexpected output %q", out)
	}
}

func TestConvertReportsEveryFailure(t *testing.T) {
	setupEnv(t)
	out, errOut, err := execute(t, "bogus", "1900-02-29", "[21]00000", "[-0]0000")
	if !errors.Is(err, errInputFailed) {
		t.Fatalf("expected errInputFailed, got %v", err)
	}
	if out != "[21]00000.00\n" {
		t.Fatalf("unexpected output %q", out)
	}
	for _, want := range []string{
		"stardate: date format unrecognised: bogus\n",
		"stardate: day is out of range: 1900-02-29\n",
		"stardate: date is out of acceptable range: [-0]0000\n",
	} {
		if !strings.Contains(errOut, want) {
			t.Fatalf("stderr missing %q:\n%s", want, errOut)
		}
	}
}

func TestConvertNow(t *testing.T) {
	setupEnv(t)
	out, _, err := execute(t, "-u")
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if !strings.HasPrefix(out, "U1") || !strings.HasSuffix(out, "\n") {
		t.Fatalf("unexpected output %q", out)
	}
}

func TestConfigFileSelectsOutput(t *testing.T) {
	configDir, _ := setupEnv(t)
	writeConfig(t, configDir, "[output]\nformats = \"qu\"\ndigits = 0\n")

	out, _, err := execute(t, "2323-01-01")
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if out != "2323*01*01T00:00:00 U11139552000\n" {
		t.Fatalf("unexpected output %q", out)
	}

	out, _, err = execute(t, "-s", "--digits", "3", "2323-01-01")
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if out != "[21]00000.000\n" {
		t.Fatalf("flags should override config, got %q", out)
	}
}

func TestInvalidSettings(t *testing.T) {
	configDir, _ := setupEnv(t)
	if _, _, err := execute(t, "--digits", "7", "U0"); err == nil {
		t.Fatalf("expected error for --digits 7")
	}
	writeConfig(t, configDir, "[output]\nformats = \"sz\"\n")
	if _, _, err := execute(t, "U0"); err == nil || !strings.Contains(err.Error(), "output.formats") {
		t.Fatalf("expected formats error, got %v", err)
	}
}

func TestRecordAndHistory(t *testing.T) {
	setupEnv(t)
	if _, _, err := execute(t, "--record", "2323-01-01", "U0"); err != nil {
		t.Fatalf("record: %v", err)
	}
	out, _, err := execute(t, "history", "-g", "--last", "1")
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	for _, want := range []string{"Conversions: 2", "gregorian", "unix", "1970-01-01T00:00:00"} {
		if !strings.Contains(out, want) {
			t.Fatalf("history missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "2323-01-01T00:00:00") {
		t.Fatalf("--last 1 should drop the first conversion:\n%s", out)
	}

	out, _, err = execute(t, "history", "--kind", "g")
	if err != nil {
		t.Fatalf("history --kind: %v", err)
	}
	if !strings.Contains(out, "2323-01-01") || strings.Contains(out, "U0 ") {
		t.Fatalf("unexpected filtered history:\n%s", out)
	}
}

func TestHistoryEmpty(t *testing.T) {
	setupEnv(t)
	out, _, err := execute(t, "history")
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if out != "No conversions recorded.\n" {
		t.Fatalf("unexpected output %q", out)
	}
}

func TestEnsureConfigFile(t *testing.T) {
	configDir, _ := setupEnv(t)
	path, err := ensureConfigFile()
	if err != nil {
		t.Fatalf("ensureConfigFile: %v", err)
	}
	if path != filepath.Join(configDir, "stardate", "config.toml") {
		t.Fatalf("unexpected path %s", path)
	}
	out, _, err := execute(t, "[21]00000")
	if err != nil {
		t.Fatalf("template should load cleanly: %v", err)
	}
	if out != "[21]00000.00\n" {
		t.Fatalf("unexpected output %q", out)
	}
}

func TestExpandDigitsShorthand(t *testing.T) {
	cases := []struct {
		in   []string
		want []string
	}{
		{[]string{"-s4", "2323-01-01"}, []string{"-s", "--digits=4", "2323-01-01"}},
		{[]string{"-gs0q"}, []string{"-gsq", "--digits=0"}},
		{[]string{"-s7"}, []string{"-s7"}},
		{[]string{"-d3s4"}, []string{"-d3s4"}},
		{[]string{"--digits", "5", "[21]00000"}, []string{"--digits", "5", "[21]00000"}},
		{[]string{"--", "-s4"}, []string{"--", "-s4"}},
	}
	for _, tc := range cases {
		if got := expandDigitsShorthand(tc.in); !reflect.DeepEqual(got, tc.want) {
			t.Fatalf("expandDigitsShorthand(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
