package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"contentprint/internal/fingerprint"
	"contentprint/internal/similarity"
	"contentprint/internal/testsupport"
)

const helloSHA256 = "2cf24dba5fb0a30e26e83b2ac5b9e29e1b161e5c1fa7425e73043362938b9824"

func setupCLIConfig(t *testing.T) string {
	t.Helper()
	return testsupport.WriteConfig(t, testsupport.NewConfig(t))
}

func runCLI(t *testing.T, configPath string, stdin io.Reader, args ...string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	if stdin != nil {
		cmd.SetIn(stdin)
	}
	var flags []string
	if configPath != "" {
		flags = append(flags, "--config", configPath)
	}
	cmd.SetArgs(append(flags, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestSniffCommand(t *testing.T) {
	cfgPath := setupCLIConfig(t)
	dir := t.TempDir()
	docx := testsupport.WriteBytes(t, dir, "report.docx", testsupport.ZipArchive(t, "[Content_Types].xml", "word/document.xml"))
	pdf := testsupport.WriteBytes(t, dir, "paper.pdf", []byte("%PDF-1.7\n"))

	stdout, _, err := runCLI(t, cfgPath, nil, "sniff", docx, pdf)
	if err != nil {
		t.Fatalf("sniff: %v", err)
	}
	want := docx + "\tapplication/vnd.openxmlformats-officedocument.wordprocessingml.document\n" +
		pdf + "\tapplication/pdf\n"
	if stdout != want {
		t.Fatalf("sniff output = %q, want %q", stdout, want)
	}

	stdout, _, err = runCLI(t, cfgPath, nil, "sniff", "--containers=false", docx)
	if err != nil {
		t.Fatalf("sniff without containers: %v", err)
	}
	if !strings.HasSuffix(strings.TrimSpace(stdout), "\tapplication/zip") {
		t.Fatalf("expected generic zip without container inspection, got %q", stdout)
	}
}

func TestSniffCommandJSON(t *testing.T) {
	cfgPath := setupCLIConfig(t)
	path := testsupport.WriteBytes(t, t.TempDir(), "photo.jpg", []byte{0xFF, 0xD8, 0xFF, 0xE0})

	stdout, _, err := runCLI(t, cfgPath, nil, "--json", "sniff", path)
	if err != nil {
		t.Fatalf("sniff --json: %v", err)
	}
	var results []sniffResult
	if err := json.Unmarshal([]byte(stdout), &results); err != nil {
		t.Fatalf("decode json: %v\n%s", err, stdout)
	}
	if len(results) != 1 || results[0].MIMEType != "image/jpeg" {
		t.Fatalf("unexpected results %+v", results)
	}
}

func TestHashCommand(t *testing.T) {
	cfgPath := setupCLIConfig(t)
	path := testsupport.WriteBytes(t, t.TempDir(), "hello.txt", []byte("hello"))

	stdout, _, err := runCLI(t, cfgPath, nil, "hash", path)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if want := helloSHA256 + "\t" + path + "\n"; stdout != want {
		t.Fatalf("hash output = %q, want %q", stdout, want)
	}

	stdout, _, err = runCLI(t, cfgPath, strings.NewReader("hello"), "hash", "-")
	if err != nil {
		t.Fatalf("hash stdin: %v", err)
	}
	if want := helloSHA256 + "\tstdin\n"; stdout != want {
		t.Fatalf("stdin hash output = %q, want %q", stdout, want)
	}
}

func TestHashCommandAlgorithmFlag(t *testing.T) {
	cfgPath := setupCLIConfig(t)
	path := testsupport.WriteBytes(t, t.TempDir(), "hello.txt", []byte("hello"))

	stdout, _, err := runCLI(t, cfgPath, nil, "--json", "hash", "-a", "md5", path)
	if err != nil {
		t.Fatalf("hash md5: %v", err)
	}
	var results []hashResult
	if err := json.Unmarshal([]byte(stdout), &results); err != nil {
		t.Fatalf("decode json: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("expected one result, got %d", len(results))
	}
	got := results[0]
	if got.Algorithm != "md5" || got.Digest != "5d41402abc4b2a76b9719d911017c592" || got.Size != 5 {
		t.Fatalf("unexpected md5 result %+v", got)
	}

	if _, _, err := runCLI(t, cfgPath, nil, "hash", "-a", "crc32", path); err == nil {
		t.Fatal("expected unsupported algorithm error")
	}
}

func TestStdinMayOnlyBeGivenOnce(t *testing.T) {
	cfgPath := setupCLIConfig(t)
	_, _, err := runCLI(t, cfgPath, strings.NewReader("x"), "sniff", "-", "-")
	if err == nil || !strings.Contains(err.Error(), "only be given once") {
		t.Fatalf("expected duplicate stdin error, got %v", err)
	}
}

type fingerprintJSON struct {
	Path        string                   `json:"path"`
	Fingerprint *fingerprint.Fingerprint `json:"fingerprint"`
	Error       string                   `json:"error"`
}

func TestFingerprintCommandJSON(t *testing.T) {
	cfgPath := setupCLIConfig(t)
	dir := t.TempDir()
	png := testsupport.WriteBytes(t, dir, "bands.png", testsupport.EncodePNG(t, testsupport.BandImage(0xA5)))
	text := testsupport.WriteBytes(t, dir, "report.txt", []byte(testsupport.Report))

	stdout, _, err := runCLI(t, cfgPath, nil, "--json", "fingerprint", png, text)
	if err != nil {
		t.Fatalf("fingerprint: %v", err)
	}
	var results []fingerprintJSON
	if err := json.Unmarshal([]byte(stdout), &results); err != nil {
		t.Fatalf("decode json: %v\n%s", err, stdout)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	if results[0].Path != png || results[1].Path != text {
		t.Fatalf("results out of order: %q, %q", results[0].Path, results[1].Path)
	}

	image := results[0].Fingerprint
	if image == nil {
		t.Fatalf("missing image fingerprint: %+v", results[0])
	}
	if image.MIMEType != "image/png" {
		t.Fatalf("image mime = %q", image.MIMEType)
	}
	if image.VisualHash != testsupport.BandHash(0xA5) {
		t.Fatalf("visual hash = %016x, want %016x", image.VisualHash, testsupport.BandHash(0xA5))
	}
	if !image.HasDigest() || image.Algorithm != "sha256" {
		t.Fatalf("expected sha256 digest, got %q %x", image.Algorithm, image.CryptographicHash)
	}

	doc := results[1].Fingerprint
	if doc == nil {
		t.Fatalf("missing text fingerprint: %+v", results[1])
	}
	if doc.HasVisual() {
		t.Fatalf("text should have no visual hash, got %016x", doc.VisualHash)
	}
	if !doc.HasSemantic() {
		t.Fatal("text should have a semantic hash")
	}
	if doc.Size != int64(len(testsupport.Report)) {
		t.Fatalf("size = %d, want %d", doc.Size, len(testsupport.Report))
	}
}

func TestFingerprintCommandReportsFailures(t *testing.T) {
	cfgPath := setupCLIConfig(t)
	dir := t.TempDir()
	good := testsupport.WriteBytes(t, dir, "hello.txt", []byte("hello"))
	missing := filepath.Join(dir, "missing.txt")

	stdout, stderr, err := runCLI(t, cfgPath, nil, "fingerprint", "-w", "2", good, missing)
	if err == nil || !strings.Contains(err.Error(), "1 of 2 files failed") {
		t.Fatalf("expected failure summary, got %v", err)
	}
	if !strings.Contains(stdout, good) || !strings.Contains(stdout, helloSHA256) {
		t.Fatalf("expected good file in output, got %q", stdout)
	}
	if !strings.Contains(stderr, missing) {
		t.Fatalf("expected missing file on stderr, got %q", stderr)
	}
}

func TestCompareCommandFiles(t *testing.T) {
	cfgPath := setupCLIConfig(t)
	dir := t.TempDir()
	original := testsupport.WriteBytes(t, dir, "a.txt", []byte(testsupport.Report))
	copied := testsupport.WriteBytes(t, dir, "b.txt", []byte(testsupport.Report))
	typo := testsupport.WriteBytes(t, dir, "c.txt", []byte(testsupport.ReportWithTypo))

	stdout, _, err := runCLI(t, cfgPath, nil, "compare", original, copied)
	if err != nil {
		t.Fatalf("compare copies: %v", err)
	}
	for _, want := range []string{"content:  identical", "semantic: exact (0 bits)", "visual:   different (64 bits)"} {
		if !strings.Contains(stdout, want) {
			t.Fatalf("expected %q in %q", want, stdout)
		}
	}

	stdout, _, err = runCLI(t, cfgPath, nil, "--json", "compare", original, typo)
	if err != nil {
		t.Fatalf("compare typo: %v", err)
	}
	var result compareResult
	if err := json.Unmarshal([]byte(stdout), &result); err != nil {
		t.Fatalf("decode json: %v\n%s", err, stdout)
	}
	cmp := result.Comparison
	if cmp.IdenticalContent {
		t.Fatal("typo copy should not be identical content")
	}
	if cmp.Semantic != similarity.Duplicate || cmp.SemanticDistance != 2 {
		t.Fatalf("semantic = %s (%d), want duplicate (2)", cmp.Semantic, cmp.SemanticDistance)
	}
	if result.Thresholds != similarity.DefaultThresholds() {
		t.Fatalf("thresholds = %+v", result.Thresholds)
	}
}

func TestCompareCommandHashes(t *testing.T) {
	cfgPath := setupCLIConfig(t)

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"exact", []string{"0x00ff", "ff"}, "exact (0 bits)"},
		{"duplicate", []string{"0", "7"}, "duplicate (3 bits)"},
		{"similar", []string{"0", "ff"}, "similar (8 bits)"},
		{"different", []string{"0", "ffff"}, "different (16 bits)"},
		{"custom thresholds", []string{"--low", "1", "--high", "5", "0", "ff"}, "different (8 bits)"},
		{"low equals high", []string{"--low", "4", "--high", "4", "0", "f"}, "duplicate (4 bits)"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := append([]string{"compare", "--hashes"}, tt.args...)
			stdout, _, err := runCLI(t, cfgPath, nil, args...)
			if err != nil {
				t.Fatalf("compare --hashes: %v", err)
			}
			if got := strings.TrimSpace(stdout); got != tt.want {
				t.Fatalf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCompareCommandRejectsBadInput(t *testing.T) {
	cfgPath := setupCLIConfig(t)

	_, _, err := runCLI(t, cfgPath, nil, "compare", "--hashes", "--low", "5", "--high", "2", "0", "1")
	if !errors.Is(err, similarity.ErrInvalidThresholds) {
		t.Fatalf("expected ErrInvalidThresholds, got %v", err)
	}

	if _, _, err := runCLI(t, cfgPath, nil, "compare", "--hashes", "xyz", "1"); err == nil {
		t.Fatal("expected error for malformed hash")
	}
	if _, _, err := runCLI(t, cfgPath, nil, "compare", "--hashes", "0"); err == nil {
		t.Fatal("expected error for a single argument")
	}
}

func TestAlgorithmsCommand(t *testing.T) {
	cfgPath := testsupport.WriteConfig(t, testsupport.NewConfig(t, testsupport.WithAlgorithm("blake3")))

	stdout, _, err := runCLI(t, cfgPath, nil, "--json", "algorithms")
	if err != nil {
		t.Fatalf("algorithms: %v", err)
	}
	var infos []algorithmInfo
	if err := json.Unmarshal([]byte(stdout), &infos); err != nil {
		t.Fatalf("decode json: %v", err)
	}
	byName := make(map[string]algorithmInfo, len(infos))
	for _, info := range infos {
		byName[info.Name.String()] = info
	}
	if got := byName["sha256"]; got.Bits != 256 || got.Legacy || got.Default {
		t.Fatalf("unexpected sha256 entry %+v", got)
	}
	if got := byName["md5"]; got.Bits != 128 || !got.Legacy {
		t.Fatalf("unexpected md5 entry %+v", got)
	}
	if got := byName["blake3"]; !got.Default {
		t.Fatalf("expected blake3 to be the configured default, got %+v", got)
	}

	stdout, _, err = runCLI(t, cfgPath, nil, "algorithms")
	if err != nil {
		t.Fatalf("algorithms text: %v", err)
	}
	if !strings.Contains(stdout, "sha1\t160\tyes") {
		t.Fatalf("expected sha1 legacy row, got %q", stdout)
	}
}

func TestConfigInitAndValidate(t *testing.T) {
	target := filepath.Join(t.TempDir(), "nested", "contentprint.toml")

	stdout, _, err := runCLI(t, "", nil, "config", "init", "--path", target)
	if err != nil {
		t.Fatalf("config init: %v", err)
	}
	if !strings.Contains(stdout, target) {
		t.Fatalf("expected target path in output, got %q", stdout)
	}
	if _, err := os.Stat(target); err != nil {
		t.Fatalf("sample config not written: %v", err)
	}

	if _, _, err := runCLI(t, "", nil, "config", "init", "--path", target); err == nil {
		t.Fatal("expected error when config exists without --overwrite")
	}
	if _, _, err := runCLI(t, "", nil, "config", "init", "--path", target, "--overwrite"); err != nil {
		t.Fatalf("config init --overwrite: %v", err)
	}

	stdout, _, err = runCLI(t, target, nil, "config", "validate")
	if err != nil {
		t.Fatalf("config validate: %v", err)
	}
	if !strings.Contains(stdout, "Configuration valid") {
		t.Fatalf("unexpected validate output %q", stdout)
	}
}

func TestConfigValidateReportsErrors(t *testing.T) {
	path := filepath.Join(t.TempDir(), "contentprint.toml")
	if err := os.WriteFile(path, []byte("[similarity]\nlow = 12\nhigh = 4\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	_, _, err := runCLI(t, path, nil, "config", "validate")
	if !errors.Is(err, similarity.ErrInvalidThresholds) {
		t.Fatalf("expected ErrInvalidThresholds, got %v", err)
	}
}

func TestConfigShow(t *testing.T) {
	cfgPath := testsupport.WriteConfig(t, testsupport.NewConfig(t, testsupport.WithThresholds(2, 8)))

	stdout, _, err := runCLI(t, cfgPath, nil, "config", "show")
	if err != nil {
		t.Fatalf("config show: %v", err)
	}
	for _, want := range []string{"[similarity]", "low = 2", "high = 8", "algorithm = ", "sha256"} {
		if !strings.Contains(stdout, want) {
			t.Fatalf("expected %q in %q", want, stdout)
		}
	}
}

func TestLogLevelOverrideValidated(t *testing.T) {
	cfgPath := setupCLIConfig(t)
	if _, _, err := runCLI(t, cfgPath, nil, "--log-level", "loud", "algorithms"); err == nil {
		t.Fatal("expected invalid --log-level to fail")
	}
}
