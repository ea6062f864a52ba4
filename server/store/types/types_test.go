package types

import (
	"testing"
)

func TestParseJID(t *testing.T) {
	cases := []struct {
		in       string
		bare     string
		resource string
		fail     bool
	}{
		{in: "alice@example.org", bare: "alice@example.org"},
		{in: "alice@example.org/balcony", bare: "alice@example.org", resource: "balcony"},
		{in: "bob@example.org/", bare: "bob@example.org"},
		{in: "", fail: true},
		{in: "/balcony", fail: true},
	}

	for _, tc := range cases {
		jid, err := ParseJID(tc.in)
		if tc.fail {
			if err != ErrMalformed {
				t.Errorf("ParseJID(%q): expected ErrMalformed, got %v", tc.in, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseJID(%q): unexpected error %v", tc.in, err)
			continue
		}
		if jid.Bare != tc.bare || jid.Resource != tc.resource {
			t.Errorf("ParseJID(%q) = %v/%v, expected %v/%v",
				tc.in, jid.Bare, jid.Resource, tc.bare, tc.resource)
		}
	}
}

func TestJIDFull(t *testing.T) {
	jid := JID{Bare: "alice@example.org", Resource: "balcony"}
	if full := jid.Full(); full != "alice@example.org/balcony" {
		t.Error("Wrong full JID:", full)
	}
	if full := jid.BareJID().Full(); full != "alice@example.org" {
		t.Error("Wrong bare JID:", full)
	}
	if !(JID{}).IsZero() {
		t.Error("Zero JID should report IsZero")
	}
	if jid.IsZero() {
		t.Error("Non-zero JID reported IsZero")
	}
}

func TestNodeConfigMerge(t *testing.T) {
	cfg := DefaultLeafConfig()
	if !cfg.PersistItems || !cfg.DeliverPayloads {
		t.Fatal("Unexpected default config:", cfg)
	}

	merged := cfg.Merge(map[string]interface{}{
		ConfigPersistItems: false,
		"unknown_option":   true,
	})
	if merged.PersistItems {
		t.Error("persist_items should be merged to false")
	}
	if !merged.DeliverPayloads {
		t.Error("deliver_payloads should be untouched")
	}

	// Wrong value type is ignored.
	merged = merged.Merge(map[string]interface{}{ConfigDeliverPayloads: "yes"})
	if !merged.DeliverPayloads {
		t.Error("non-bool option value should be ignored")
	}

	// The receiver is a value, the original must not change.
	if !cfg.PersistItems {
		t.Error("Merge should not mutate the original config")
	}
}

func TestAffiliationIsNone(t *testing.T) {
	if AffOwner.IsNone() || AffPublisher.IsNone() || AffOutcast.IsNone() {
		t.Error("non-empty affiliation reported as none")
	}
	if !AffNone.IsNone() || !Affiliation("").IsNone() {
		t.Error("absent affiliation not reported as none")
	}
}

func TestStoreError(t *testing.T) {
	if ErrNodeNotFound.Error() != "node not found" {
		t.Error("Unexpected message:", ErrNodeNotFound.Error())
	}
	var err error = ErrNodeExists
	if err != ErrNodeExists {
		t.Error("StoreError values should compare directly")
	}
}

func TestUidGeneratorUnique(t *testing.T) {
	ug := &UidGenerator{}
	if err := ug.Init(1, []byte("testkey1testkey2")); err != nil {
		t.Fatalf("Init failed: %v", err)
	}

	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		id := ug.GetStr()
		if id == "" {
			t.Fatal("Generator returned an empty id")
		}
		if seen[id] {
			t.Fatal("Generator returned a duplicate id:", id)
		}
		seen[id] = true
	}
}
