package cli

import (
	"testing"

	"github.com/gustavkrist/bookmarks/internal/app"
	"github.com/gustavkrist/bookmarks/internal/config"
)

func TestCollectTTYDetailsIncludesStandardDescriptors(t *testing.T) {
	info := collectTTYDetails()
	if len(info.Probes) != 3 {
		t.Fatalf("expected 3 probe entries, got %d", len(info.Probes))
	}
	for i, name := range []string{"stdin", "stdout", "stderr"} {
		if info.Probes[i].Name != name {
			t.Fatalf("expected probe %d name %q, got %q", i, name, info.Probes[i].Name)
		}
	}
}

func TestStartupTracePayloadIncludesFlags(t *testing.T) {
	cfg := config.Config{
		App: app.Config{
			BookmarkFile: "/data/bookmarks.json",
			Width:        80,
			Ranker:       "sahilm",
		},
		Logging:    config.Logging{FilePath: "trace.log", Trace: true},
		ConfigFile: "/cfg/config.yaml",
		Flags: map[string]string{
			"bookmarks": "/data/bookmarks.json",
			"width":     "80",
			"ranker":    "sahilm",
			"trace":     "true",
		},
		Args: []string{"list"},
	}

	payload := startupTracePayload(cfg)

	flags, ok := payload["flags"].(map[string]interface{})
	if !ok {
		t.Fatalf("expected flags map in payload")
	}
	if flags["bookmarks"] != "/data/bookmarks.json" {
		t.Fatalf("expected bookmarks flag, got %v", flags["bookmarks"])
	}
	if flags["width"] != "80" || flags["ranker"] != "sahilm" || flags["trace"] != "true" {
		t.Fatalf("unexpected flags %v", flags)
	}
	if payload["configFile"] != "/cfg/config.yaml" {
		t.Fatalf("expected config file path, got %v", payload["configFile"])
	}
	if _, ok := payload["tty"].(ttyDetails); !ok {
		t.Fatalf("expected tty details in payload")
	}
	if got, ok := payload["config"].(config.Config); !ok || got.App != cfg.App {
		t.Fatalf("expected app config %#v in payload", cfg.App)
	}
}
