package datapath

import (
	"strings"
	"testing"

	"FlowVigil/internal/config"
)

func TestCreateUnknownType(t *testing.T) {
	deps, _ := testDeps(t)
	_, err := Create(config.DatapathConfig{Type: "doesnotexist"}, deps)
	if err == nil {
		t.Fatal("expected an error for an unregistered datapath type")
	}
	if !strings.Contains(err.Error(), "unknown datapath type") {
		t.Errorf("error = %v, want it to name the unknown type", err)
	}
}

func TestRegisterDuplicatePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected a panic on duplicate registration")
		}
	}()
	// The replay type registers itself at package init.
	Register("replay", nil)
}
