package cli_test

import (
	"bytes"
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mitchellh/go-homedir"

	"github.com/jmylchreest/swatch/internal/cli"
	"github.com/jmylchreest/swatch/internal/colour"
)

// writeCover writes a 10x10 PNG that is 80% #224488 and 20% #ffaa00.
func writeCover(t *testing.T) string {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, 10, 10))
	for i := 0; i < 100; i++ {
		c := color.NRGBA{R: 0x22, G: 0x44, B: 0x88, A: 0xff}
		if i >= 80 {
			c = color.NRGBA{R: 0xff, G: 0xaa, B: 0x00, A: 0xff}
		}
		img.SetNRGBA(i%10, i/10, c)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("png.Encode: %v", err)
	}
	path := filepath.Join(t.TempDir(), "cover.png")
	if err := os.WriteFile(path, buf.Bytes(), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return path
}

// run executes swatch with args and returns stdout, stderr and the error.
func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var outBuf, errBuf bytes.Buffer
	root := cli.NewRootCmd()
	root.SetOut(&outBuf)
	root.SetErr(&errBuf)
	root.SetArgs(args)
	err := root.Execute()
	return outBuf.String(), errBuf.String(), err
}

func TestExtractCommand(t *testing.T) {
	cover := writeCover(t)

	t.Run("canvas hex", func(t *testing.T) {
		out, _, err := run(t, "extract", "--strategy", "canvas", cover)
		if err != nil {
			t.Fatalf("extract error = %v", err)
		}
		if out != "#224488\n#ffaa00\n" {
			t.Errorf("output = %q", out)
		}
	})

	t.Run("prominent json", func(t *testing.T) {
		out, _, err := run(t, "extract", "--format", "json", cover)
		if err != nil {
			t.Fatalf("extract error = %v", err)
		}
		var colors []string
		if err := json.Unmarshal([]byte(out), &colors); err != nil {
			t.Fatalf("output is not a JSON array: %v\n%s", err, out)
		}
		if len(colors) == 0 {
			t.Error("no colours extracted")
		}
	})

	t.Run("output file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "colours.txt")
		if _, _, err := run(t, "extract", "-s", "canvas", "-o", path, cover); err != nil {
			t.Fatalf("extract error = %v", err)
		}
		data, err := os.ReadFile(path)
		if err != nil || !strings.HasPrefix(string(data), "#224488") {
			t.Errorf("file = %q, err = %v", data, err)
		}
	})

	errorCases := []struct {
		name string
		args []string
		want string
	}{
		{name: "invalid strategy", args: []string{"extract", "--strategy", "median", cover}, want: "invalid strategy"},
		{name: "invalid format", args: []string{"extract", "--format", "xml", cover}, want: "unsupported format"},
		{name: "missing file", args: []string{"extract", filepath.Join(t.TempDir(), "nope.png")}, want: "invalid image path"},
		{name: "no args", args: []string{"extract"}, want: "accepts 1 arg"},
	}
	for _, tt := range errorCases {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := run(t, tt.args...)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error = %v, want containing %q", err, tt.want)
			}
		})
	}
}

func TestPaletteCommand(t *testing.T) {
	cover := writeCover(t)
	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()

	t.Run("json", func(t *testing.T) {
		out, _, err := run(t, "palette", "--strategy", "canvas", "--format", "json", cover)
		if err != nil {
			t.Fatalf("palette error = %v", err)
		}
		var p colour.ColorPalette
		if err := json.Unmarshal([]byte(out), &p); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if p.Source != "#224488" || p.Light.Error != colour.LightError {
			t.Errorf("palette = %+v", p)
		}
	})

	t.Run("fallback on 404", func(t *testing.T) {
		out, stderr, err := run(t, "palette", "--format", "json", srv.URL+"/cover.png")
		if err != nil {
			t.Fatalf("palette error = %v", err)
		}
		if !strings.Contains(out, `"#6750A4"`) || !strings.Contains(out, `"colorHex": []`) {
			t.Errorf("output is not the fallback palette: %s", out)
		}
		if !strings.Contains(stderr, "using fallback palette") {
			t.Errorf("expected a fallback warning, stderr = %q", stderr)
		}
	})

	t.Run("yaml", func(t *testing.T) {
		out, _, err := run(t, "palette", "-s", "canvas", "-f", "yaml", cover)
		if err != nil {
			t.Fatalf("palette error = %v", err)
		}
		if !strings.Contains(out, "source:") || !strings.Contains(out, "#224488") {
			t.Errorf("yaml output = %s", out)
		}
	})

	t.Run("table", func(t *testing.T) {
		out, _, err := run(t, "palette", "-s", "canvas", cover)
		if err != nil {
			t.Fatalf("palette error = %v", err)
		}
		for _, want := range []string{"Source: #224488", "ROLE", "primary", "#B3261E"} {
			if !strings.Contains(out, want) {
				t.Errorf("table missing %q:\n%s", want, out)
			}
		}
	})
}

func TestLiteCommand(t *testing.T) {
	cover := writeCover(t)

	out, _, err := run(t, "lite", "--format", "json", cover)
	if err != nil {
		t.Fatalf("lite error = %v", err)
	}
	var got colour.ExtractedColors
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.Primary != "#224488" || got.Secondary != "#ffaa00" || got.TextColor != "#ffffff" {
		t.Errorf("lite = %+v", got)
	}

	out, _, err = run(t, "lite", "--format", "json", filepath.Join(t.TempDir(), "missing.png"))
	if err != nil {
		t.Fatalf("lite should not fail on a missing image: %v", err)
	}
	_ = json.Unmarshal([]byte(out), &got)
	if got != colour.DefaultExtractedColors {
		t.Errorf("lite = %+v, want defaults", got)
	}
}

func TestThemeCommand(t *testing.T) {
	cover := writeCover(t)

	out, _, err := run(t, "theme", "--mode", "dark", cover)
	if err != nil {
		t.Fatalf("theme error = %v", err)
	}
	if !strings.HasPrefix(out, ".dark {\n") || strings.Contains(out, ":root") {
		t.Errorf("dark output = %q", out)
	}

	out, _, err = run(t, "theme", cover)
	if err != nil {
		t.Fatalf("theme error = %v", err)
	}
	for _, want := range []string{":root {", ".dark {", "--card:", "--border:", "--ring:"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q", want)
		}
	}

	if _, _, err := run(t, "theme", "--mode", "sepia", cover); err == nil || !strings.Contains(err.Error(), "invalid theme mode") {
		t.Errorf("error = %v, want invalid theme mode", err)
	}

	if _, _, err := run(t, "theme", "--sink", "/bin/false", "-o", "x.css", cover); err == nil || !strings.Contains(err.Error(), "mutually exclusive") {
		t.Errorf("error = %v, want mutually exclusive", err)
	}
}

func TestThemeWatchRequiresLocalFile(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()

	_, _, err := run(t, "theme", "--watch", srv.URL+"/cover.png")
	if err == nil || !strings.Contains(err.Error(), "local image file") {
		t.Errorf("error = %v, want local image file error", err)
	}
}

func TestHomeExpansion(t *testing.T) {
	homedir.DisableCache = true
	t.Cleanup(func() { homedir.DisableCache = false })

	home := t.TempDir()
	t.Setenv("HOME", home)

	data, err := os.ReadFile(writeCover(t))
	if err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(home, "cover.png"), data, 0o600); err != nil {
		t.Fatal(err)
	}

	if _, _, err := run(t, "extract", "-s", "canvas", "-o", "~/colours.txt", "~/cover.png"); err != nil {
		t.Fatalf("extract error = %v", err)
	}
	out, err := os.ReadFile(filepath.Join(home, "colours.txt"))
	if err != nil {
		t.Fatalf("output file not written under HOME: %v", err)
	}
	if string(out) != "#224488\n#ffaa00\n" {
		t.Errorf("output = %q", out)
	}
}

func TestEnvOverrides(t *testing.T) {
	cover := writeCover(t)

	t.Run("strategy from env", func(t *testing.T) {
		t.Setenv("SWATCH_STRATEGY", "canvas")
		out, _, err := run(t, "extract", cover)
		if err != nil {
			t.Fatalf("extract error = %v", err)
		}
		if out != "#224488\n#ffaa00\n" {
			t.Errorf("output = %q, want canvas ranking", out)
		}
	})

	t.Run("flag wins over env", func(t *testing.T) {
		t.Setenv("SWATCH_FORMAT", "json")
		out, _, err := run(t, "extract", "-s", "canvas", "--format", "hex", cover)
		if err != nil {
			t.Fatalf("extract error = %v", err)
		}
		if strings.HasPrefix(out, "[") {
			t.Errorf("output = %q, want hex lines", out)
		}
	})

	t.Run("invalid env value", func(t *testing.T) {
		t.Setenv("SWATCH_COLOURS", "lots")
		_, _, err := run(t, "extract", cover)
		if err == nil || !strings.Contains(err.Error(), "SWATCH_COLOURS") {
			t.Errorf("error = %v, want SWATCH_COLOURS failure", err)
		}
	})
}

func TestGlobalFlags(t *testing.T) {
	cover := writeCover(t)

	if _, _, err := run(t, "-v", "-q", "extract", cover); err == nil {
		t.Error("expected error for --verbose with --quiet")
	}

	_, stderr, err := run(t, "-v", "extract", "-s", "canvas", cover)
	if err != nil {
		t.Fatalf("extract error = %v", err)
	}
	if !strings.Contains(stderr, "extracting colours") {
		t.Errorf("verbose stderr = %q, want debug log", stderr)
	}
}

func TestVersionCommand(t *testing.T) {
	out, _, err := run(t, "version")
	if err != nil {
		t.Fatalf("version error = %v", err)
	}
	if !strings.HasPrefix(out, "swatch version ") {
		t.Errorf("output = %q", out)
	}
}

func TestVersionJSON(t *testing.T) {
	out, _, err := run(t, "version", "--json")
	if err != nil {
		t.Fatalf("version --json error = %v", err)
	}
	var build struct {
		Version string `json:"version"`
		Go      string `json:"go"`
	}
	if err := json.Unmarshal([]byte(out), &build); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, out)
	}
	if build.Version == "" || build.Go == "" {
		t.Errorf("build = %+v", build)
	}
}
