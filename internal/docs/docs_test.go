package docs

import (
	"strings"
	"testing"
)

func TestTopics(t *testing.T) {
	got := strings.Join(Topics(), ",")
	if got != "keys,scripting,storage" {
		t.Fatalf("topics=%q", got)
	}
}

func TestGet(t *testing.T) {
	body, ok := Get(" Scripting ")
	if !ok || !strings.Contains(body, "ReactNative.Alert.alert") {
		t.Fatalf("Get(scripting) ok=%v", ok)
	}
	if _, ok := Get("../docs"); ok {
		t.Fatalf("path-like topic should not resolve")
	}
	if _, ok := Get("nope"); ok {
		t.Fatalf("unknown topic resolved")
	}
}
