package config

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestLoadEmptyDocumentMatchesDefault(t *testing.T) {
	cfg, warnings, err := Load(nil)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(warnings) != 0 {
		t.Errorf("unexpected warnings for an empty document: %v", warnings)
	}
	if diff := cmp.Diff(Default(), cfg); diff != "" {
		t.Errorf("Load(nil) should equal Default() (-want +got):\n%s", diff)
	}
}

func TestLoadOverridesOnlyNamedFields(t *testing.T) {
	yamlDoc := []byte("page:\n  width: 595\n  height: 842\nstyles:\n  paragraph:\n    font:\n      family: Georgia\n      size: 12\n")
	cfg, _, err := Load(yamlDoc)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	want := Default()
	want.Page = PageSize{WidthPt: 595, HeightPt: 842}
	// yaml.v3 decodes into the existing struct value, so fields the
	// document doesn't mention (Bold, Italic, Color) keep their
	// Default() value rather than being zeroed.
	want.Styles.Paragraph.Font.Family = "Georgia"
	want.Styles.Paragraph.Font.SizePt = 12

	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Errorf("Load() left untouched fields at their default (-want +got):\n%s", diff)
	}
}
