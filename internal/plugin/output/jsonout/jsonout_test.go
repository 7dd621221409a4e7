package jsonout

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/jmylchreest/shadecraft/internal/colour"
	plugintesting "github.com/jmylchreest/shadecraft/internal/plugin/output/testing"
)

// TestJSONPlugin runs all standard plugin tests using shared utilities.
func TestJSONPlugin(t *testing.T) {
	plugintesting.RunAllTests(t, New(), plugintesting.TestConfig{
		ExpectedName:  "json",
		ExpectedFiles: []string{"palette.json"},
	})
}

func TestRampMarshalJSONKeepsOrder(t *testing.T) {
	ramp := colour.GenerateColorShades("#808080")

	data, err := json.Marshal(Ramp(ramp))
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}

	want := `{"50":"#e6e6e6","100":"#d1d1d1","200":"#bdbdbd","300":"#a9a9a9","400":"#949494",` +
		`"500":"#808080","600":"#656565","700":"#4a4a4a","800":"#2f2f2f","900":"#141414"}`
	if string(data) != want {
		t.Errorf("Marshal() = %s, want %s", data, want)
	}
}

func TestJSONPlugin_Generate(t *testing.T) {
	palette := colour.NewPalette("#4f46e5", colour.HarmonyComplementary)

	files, err := New().Generate(palette)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	content := string(files["palette.json"])

	if !strings.HasPrefix(content, "{\n  \"primary\": {\n    \"50\": \"#dbd9fa\",\n") {
		t.Errorf("unexpected output:\n%s", content)
	}

	var decoded map[string]map[string]string
	if err := json.Unmarshal(files["palette.json"], &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if got := decoded["primary"]["500"]; got != "#4f46e5" {
		t.Errorf("primary.500 = %s, want #4f46e5", got)
	}
	if got := decoded["secondary"]["500"]; got != "#dce546" {
		t.Errorf("secondary.500 = %s, want #dce546", got)
	}
	if len(decoded["secondary"]) != 10 {
		t.Errorf("secondary has %d shades, want 10", len(decoded["secondary"]))
	}
}

func TestJSONPlugin_GenerateDetailed(t *testing.T) {
	plugin := New()
	plugin.detailed = true

	files, err := plugin.Generate(colour.NewPalette("#4f46e5", colour.HarmonyTriadic))
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	var decoded colour.PaletteJSON
	if err := json.Unmarshal(files["palette.json"], &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if decoded.Harmony != colour.HarmonyTriadic {
		t.Errorf("harmony = %s, want triadic", decoded.Harmony)
	}
	if decoded.Secondary.Hex != "#e54f46" {
		t.Errorf("secondary.hex = %s, want #e54f46", decoded.Secondary.Hex)
	}
}
