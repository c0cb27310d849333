// Package integration provides integration tests for refsolve commands.
package integration

import (
	"encoding/csv"
	"encoding/json"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"testing"
)

var (
	refsolveBinary string
	buildOnce      sync.Once
	buildFailed    error
)

// getBinary builds the refsolve binary once and returns its path.
func getBinary(t *testing.T) string {
	t.Helper()
	buildOnce.Do(func() {
		// Get module root directory
		_, filename, _, ok := runtime.Caller(0)
		if !ok {
			buildFailed = os.ErrInvalid
			return
		}
		moduleRoot := filepath.Dir(filepath.Dir(filepath.Dir(filename)))

		tmpDir, err := os.MkdirTemp("", "refsolve-test-*")
		if err != nil {
			buildFailed = err
			return
		}
		refsolveBinary = filepath.Join(tmpDir, "refsolve")

		cmd := exec.Command("go", "build", "-o", refsolveBinary, "./cmd/refsolve")
		cmd.Dir = moduleRoot
		if output, err := cmd.CombinedOutput(); err != nil {
			buildFailed = &buildError{output: string(output), err: err}
			return
		}
	})
	if buildFailed != nil {
		t.Fatalf("failed to build refsolve: %v", buildFailed)
	}
	return refsolveBinary
}

type buildError struct {
	output string
	err    error
}

func (e *buildError) Error() string {
	return e.err.Error() + ": " + e.output
}

func TestParseCommand(t *testing.T) {
	bin := getBinary(t)
	dir := t.TempDir()

	input := filepath.Join(dir, "refs.txt")
	refs := "[1] Smith, J.; Doe, A., Chem. Commun., 2019, 55, 1234-1236.\n" +
		"[2] Okafor, C., J. Appl. Phys., 2020, 126,\n104501.\n"
	if err := os.WriteFile(input, []byte(refs), 0o644); err != nil {
		t.Fatal(err)
	}

	out, err := exec.Command(bin, "parse", "--input", input).Output()
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	var result struct {
		Count   int `json:"count"`
		Records []struct {
			Idx     int    `json:"idx"`
			RawRef  string `json:"raw_ref"`
			Journal string `json:"journal"`
			Year    string `json:"year"`
			Volume  string `json:"volume"`
			Page    string `json:"page_or_article"`
		} `json:"records"`
	}
	if err := json.Unmarshal(out, &result); err != nil {
		t.Fatalf("decoding output: %v\n%s", err, out)
	}

	if result.Count != 2 {
		t.Fatalf("count = %d, want 2\n%s", result.Count, out)
	}
	if result.Records[0].Journal != "Chem. Commun" {
		t.Errorf("journal = %q, want %q", result.Records[0].Journal, "Chem. Commun")
	}
	if result.Records[0].Page != "12341236" {
		t.Errorf("page = %q, want %q", result.Records[0].Page, "12341236")
	}
	// The wrapped second entry joins into one record.
	if result.Records[1].Idx != 2 || result.Records[1].Year != "2020" {
		t.Errorf("record 2 = %+v", result.Records[1])
	}
	if !strings.Contains(result.Records[1].RawRef, "104501") {
		t.Errorf("raw_ref = %q, should contain the wrapped line", result.Records[1].RawRef)
	}
}

func TestExpandThenORKG(t *testing.T) {
	bin := getBinary(t)
	dir := t.TempDir()

	resolved := filepath.Join(dir, "resolved_refs.csv")
	resolvedContent := "idx,raw_ref,best_doi,decision\n" +
		"1,[1] a,10.1000/one,accepted\n" +
		"2,[2] b,,no_match\n"
	if err := os.WriteFile(resolved, []byte(resolvedContent), 0o644); err != nil {
		t.Fatal(err)
	}

	data := filepath.Join(dir, "table.csv")
	dataContent := "Material,T [C],Refs.\n" +
		"TMA + O3,150,[1]\n" +
		"TiCl4,200,[2]\n"
	if err := os.WriteFile(data, []byte(dataContent), 0o644); err != nil {
		t.Fatal(err)
	}

	expanded := filepath.Join(dir, "expanded.csv")
	out, err := exec.Command(bin, "expand",
		"--data", data, "--resolved", resolved, "--out", expanded).Output()
	if err != nil {
		t.Fatalf("expand: %v", err)
	}

	var expandResult struct {
		Kept     int `json:"kept"`
		Expanded int `json:"expanded"`
		Dropped  int `json:"dropped"`
		Rows     int `json:"rows"`
	}
	if err := json.Unmarshal(out, &expandResult); err != nil {
		t.Fatalf("decoding expand output: %v\n%s", err, out)
	}
	if expandResult.Expanded != 1 || expandResult.Dropped != 1 || expandResult.Rows != 1 {
		t.Fatalf("expand result = %+v", expandResult)
	}

	orkgOut := filepath.Join(dir, "orkg.csv")
	if _, err := exec.Command(bin, "orkg", "--input", expanded, "--out", orkgOut).Output(); err != nil {
		t.Fatalf("orkg: %v", err)
	}

	f, err := os.Open(orkgOut)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatal(err)
	}

	if rows[0][0] != "P9071" || rows[0][7] != "doi" {
		t.Errorf("header = %v", rows[0])
	}
	if rows[1][0] != "resource:TMA+O3" {
		t.Errorf("P9071 = %q, want %q", rows[1][0], "resource:TMA+O3")
	}
	if rows[1][6] != "150" || rows[1][7] != "10.1000/one" {
		t.Errorf("row = %v", rows[1])
	}
}

func TestExpandMissingResolvedFile(t *testing.T) {
	bin := getBinary(t)
	dir := t.TempDir()

	cmd := exec.Command(bin, "expand",
		"--data", filepath.Join(dir, "absent.csv"),
		"--resolved", filepath.Join(dir, "also-absent.csv"),
		"--out", filepath.Join(dir, "out.csv"))
	out, err := cmd.Output()
	if err == nil {
		t.Fatal("expected a non-zero exit")
	}
	exitErr, ok := err.(*exec.ExitError)
	if !ok {
		t.Fatalf("err = %v, want *exec.ExitError", err)
	}
	if exitErr.ExitCode() != 2 {
		t.Errorf("exit code = %d, want 2", exitErr.ExitCode())
	}

	var resp struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(out, &resp); err != nil {
		t.Fatalf("decoding error output: %v\n%s", err, out)
	}
	if resp.Error == "" || !strings.Contains(resp.Error, "also-absent.csv") {
		t.Errorf("error = %q, should name the missing file", resp.Error)
	}
}
