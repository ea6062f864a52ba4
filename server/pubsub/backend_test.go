package pubsub

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"

	_ "github.com/twonds/idavoll/server/db/memory"
	"github.com/twonds/idavoll/server/store"
	"github.com/twonds/idavoll/server/store/types"
)

var testStoreConfig = json.RawMessage(`{
	"use_adapter": "memory",
	"uid_key": "la6YsO+bNX/+XIkOqc5Svw=="
}`)

func setupStore(t *testing.T) {
	t.Helper()
	if store.Store.IsOpen() {
		if err := store.Store.Close(); err != nil {
			t.Fatal(err)
		}
	}
	if err := store.Store.Open(1, testStoreConfig); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { store.Store.Close() })
}

func jid(t *testing.T, raw string) types.JID {
	t.Helper()
	j, err := types.ParseJID(raw)
	if err != nil {
		t.Fatal(err)
	}
	return j
}

// recorder collects dispatched events.
type recorder struct {
	events []Event
}

func (r *recorder) listen(evt Event) {
	r.events = append(r.events, evt)
}

func TestPublishSubscribeScenario(t *testing.T) {
	setupStore(t)

	backend := NewBackend(DefaultConfig())
	rec := &recorder{}
	backend.RegisterListener(rec.listen)

	owner := jid(t, "alice@example.org/home")
	bob := jid(t, "bob@example.org/laptop")

	nodeID, err := backend.CreateNode("news", owner, nil)
	if err != nil {
		t.Fatal(err)
	}
	if nodeID != "news" {
		t.Fatalf("Expected node id 'news', got %q", nodeID)
	}

	state, err := backend.Subscribe(nodeID, bob, bob)
	if err != nil {
		t.Fatal(err)
	}
	if state != types.SubStateSubscribed {
		t.Errorf("Expected state subscribed, got %q", state)
	}

	items := []*types.Item{{ID: "current", Data: "<x>breaking</x>"}}
	if err = backend.Publish(nodeID, owner, items); err != nil {
		t.Fatal(err)
	}

	if len(rec.events) != 1 {
		t.Fatalf("Expected 1 event, got %d", len(rec.events))
	}
	evt := rec.events[0]
	if evt.Kind != EventPublished || evt.Node != nodeID {
		t.Errorf("Unexpected event %+v", evt)
	}
	if len(evt.Items) != 1 || evt.Items[0].ID != "current" ||
		evt.Items[0].Data != "<x>breaking</x>" {
		t.Errorf("Unexpected event items %+v", evt.Items)
	}
	if evt.Items[0].Publisher.Bare != "alice@example.org" {
		t.Errorf("Expected publisher alice@example.org, got %q", evt.Items[0].Publisher.Bare)
	}

	got, err := backend.RetrieveItems(nodeID, bob, 0, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0].ID != "current" {
		t.Errorf("Unexpected items %+v", got)
	}

	// Retract the item, then delete the node.
	if err = backend.RetractItems(nodeID, owner, []string{"current"}); err != nil {
		t.Fatal(err)
	}
	if err = backend.DeleteNode(nodeID, owner); err != nil {
		t.Fatal(err)
	}

	kinds := []EventKind{}
	for _, evt := range rec.events {
		kinds = append(kinds, evt.Kind)
	}
	expected := []EventKind{EventPublished, EventRetracted, EventDeleted}
	if !cmp.Equal(expected, kinds) {
		t.Errorf("Unexpected event sequence: %v", cmp.Diff(expected, kinds))
	}

	if _, err = store.Nodes.Get(nodeID); err != types.ErrNodeNotFound {
		t.Errorf("Expected ErrNodeNotFound after delete, got %v", err)
	}
}

func TestPublishAuthorization(t *testing.T) {
	setupStore(t)

	backend := NewBackend(DefaultConfig())
	owner := jid(t, "alice@example.org")
	stranger := jid(t, "eve@example.org")

	if _, err := backend.CreateNode("news", owner, nil); err != nil {
		t.Fatal(err)
	}

	items := []*types.Item{{ID: "1", Data: "<x/>"}}
	if err := backend.Publish("news", stranger, items); err != types.ErrNotAuthorized {
		t.Errorf("Expected ErrNotAuthorized, got %v", err)
	}
	if err := backend.Publish("missing", owner, items); err != types.ErrNodeNotFound {
		t.Errorf("Expected ErrNodeNotFound, got %v", err)
	}
}

func TestPublishPayloadPolicy(t *testing.T) {
	setupStore(t)

	backend := NewBackend(DefaultConfig())
	owner := jid(t, "alice@example.org")

	if _, err := backend.CreateNode("news", owner, nil); err != nil {
		t.Fatal(err)
	}

	// Default config expects payloads.
	err := backend.Publish("news", owner, []*types.Item{{ID: "1"}})
	if err != types.ErrPayloadExpected {
		t.Errorf("Expected ErrPayloadExpected, got %v", err)
	}

	err = backend.SetNodeConfig("news", owner, map[string]interface{}{
		types.ConfigDeliverPayloads: false,
	})
	if err != nil {
		t.Fatal(err)
	}

	err = backend.Publish("news", owner, []*types.Item{{ID: "1", Data: "<x/>"}})
	if err != types.ErrNoPayloadAllowed {
		t.Errorf("Expected ErrNoPayloadAllowed, got %v", err)
	}
	if err = backend.Publish("news", owner, []*types.Item{{ID: "1"}}); err != nil {
		t.Errorf("Expected notification-only publish to succeed, got %v", err)
	}
}

func TestPublishWithoutPersistStillNotifies(t *testing.T) {
	setupStore(t)

	backend := NewBackend(DefaultConfig())
	rec := &recorder{}
	backend.RegisterListener(rec.listen)

	owner := jid(t, "alice@example.org")
	opts := map[string]interface{}{types.ConfigPersistItems: false}
	if _, err := backend.CreateNode("transient", owner, opts); err != nil {
		t.Fatal(err)
	}

	if err := backend.Publish("transient", owner, []*types.Item{{ID: "1", Data: "<x/>"}}); err != nil {
		t.Fatal(err)
	}

	if len(rec.events) != 1 || rec.events[0].Kind != EventPublished {
		t.Fatalf("Expected a published event, got %+v", rec.events)
	}
	items, err := backend.RetrieveItems("transient", owner, 0, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(items) != 0 {
		t.Errorf("Expected no stored items, got %+v", items)
	}
}

func TestPublishAssignsItemIDs(t *testing.T) {
	setupStore(t)

	backend := NewBackend(DefaultConfig())
	rec := &recorder{}
	backend.RegisterListener(rec.listen)

	owner := jid(t, "alice@example.org")
	if _, err := backend.CreateNode("news", owner, nil); err != nil {
		t.Fatal(err)
	}

	if err := backend.Publish("news", owner, []*types.Item{{Data: "<x/>"}}); err != nil {
		t.Fatal(err)
	}

	if len(rec.events) != 1 || len(rec.events[0].Items) != 1 {
		t.Fatalf("Expected one published item, got %+v", rec.events)
	}
	assigned := rec.events[0].Items[0].ID
	if assigned == "" {
		t.Fatal("Expected a server-assigned item id")
	}

	items, err := backend.RetrieveItems("news", owner, 0, []string{assigned})
	if err != nil {
		t.Fatal(err)
	}
	if len(items) != 1 || items[0].ID != assigned {
		t.Errorf("Expected stored item %q, got %+v", assigned, items)
	}
}

func TestInstantNodePolicy(t *testing.T) {
	setupStore(t)

	owner := jid(t, "alice@example.org")

	backend := NewBackend(DefaultConfig())
	id, err := backend.CreateNode("", owner, nil)
	if err != nil {
		t.Fatal(err)
	}
	if id == "" {
		t.Error("Expected a generated node id")
	}

	restricted := NewBackend(Config{AllowInstantNodes: false, OpenRetrieval: true})
	if _, err = restricted.CreateNode("", owner, nil); err != types.ErrNoInstantNodes {
		t.Errorf("Expected ErrNoInstantNodes, got %v", err)
	}
	// Named creation stays permitted.
	if _, err = restricted.CreateNode("named", owner, nil); err != nil {
		t.Errorf("Expected named creation to succeed, got %v", err)
	}
}

func TestSubscribePolicy(t *testing.T) {
	setupStore(t)

	backend := NewBackend(DefaultConfig())
	owner := jid(t, "alice@example.org")
	bob := jid(t, "bob@example.org/laptop")
	eve := jid(t, "eve@example.org")

	if _, err := backend.CreateNode("news", owner, nil); err != nil {
		t.Fatal(err)
	}

	if _, err := backend.Subscribe("news", eve, bob); err != types.ErrNotAuthorized {
		t.Errorf("Expected ErrNotAuthorized, got %v", err)
	}

	state, err := backend.Subscribe("news", bob, bob)
	if err != nil {
		t.Fatal(err)
	}
	if state != types.SubStateSubscribed {
		t.Errorf("Expected state subscribed, got %q", state)
	}
	// A second subscribe with the same identity surfaces the storage error.
	if _, err = backend.Subscribe("news", bob, bob); err != types.ErrSubscriptionExists {
		t.Errorf("Expected ErrSubscriptionExists, got %v", err)
	}
	// Subscribing under another resource is a distinct subscription.
	bobBalcony := jid(t, "bob@example.org/balcony")
	if _, err = backend.Subscribe("news", bobBalcony, bobBalcony); err != nil {
		t.Errorf("Expected subscription under another resource to succeed, got %v", err)
	}

	if err = backend.Unsubscribe("news", eve, bob); err != types.ErrNotAuthorized {
		t.Errorf("Expected ErrNotAuthorized, got %v", err)
	}
	if err = backend.Unsubscribe("news", bob, bob); err != nil {
		t.Fatal(err)
	}
	if err = backend.Unsubscribe("news", bob, bob); err != types.ErrSubscriptionNotFound {
		t.Errorf("Expected ErrSubscriptionNotFound, got %v", err)
	}
}

func TestAffiliationsJoin(t *testing.T) {
	setupStore(t)

	backend := NewBackend(DefaultConfig())
	alice := jid(t, "alice@example.org")

	if _, err := backend.CreateNode("owned", alice, nil); err != nil {
		t.Fatal(err)
	}
	if _, err := backend.CreateNode("both", alice, nil); err != nil {
		t.Fatal(err)
	}
	if _, err := backend.Subscribe("both", alice, alice); err != nil {
		t.Fatal(err)
	}

	affs, err := backend.Affiliations(alice)
	if err != nil {
		t.Fatal(err)
	}

	expected := []EntityAffiliation{
		{Node: "both", Affiliation: types.AffOwner, Subscription: types.SubStateSubscribed},
		{Node: "owned", Affiliation: types.AffOwner, Subscription: types.SubStateNone},
	}
	if !cmp.Equal(expected, affs) {
		t.Errorf("Unexpected affiliations: %v", cmp.Diff(expected, affs))
	}
}

func TestRestrictedRetrieval(t *testing.T) {
	setupStore(t)

	backend := NewBackend(Config{AllowInstantNodes: true, OpenRetrieval: false})
	owner := jid(t, "alice@example.org")
	bob := jid(t, "bob@example.org/laptop")
	eve := jid(t, "eve@example.org")

	if _, err := backend.CreateNode("news", owner, nil); err != nil {
		t.Fatal(err)
	}
	if _, err := backend.Subscribe("news", bob, bob); err != nil {
		t.Fatal(err)
	}
	if err := backend.Publish("news", owner, []*types.Item{{ID: "1", Data: "<x/>"}}); err != nil {
		t.Fatal(err)
	}

	if _, err := backend.RetrieveItems("news", eve, 0, nil); err != types.ErrNotSubscribed {
		t.Errorf("Expected ErrNotSubscribed, got %v", err)
	}
	if _, err := backend.RetrieveItems("news", bob, 0, nil); err != nil {
		t.Errorf("Expected subscriber retrieval to succeed, got %v", err)
	}
	if _, err := backend.RetrieveItems("news", owner, 0, nil); err != nil {
		t.Errorf("Expected owner retrieval to succeed, got %v", err)
	}
}

func TestPurgeAndDeleteAuthorization(t *testing.T) {
	setupStore(t)

	backend := NewBackend(DefaultConfig())
	rec := &recorder{}
	backend.RegisterListener(rec.listen)

	owner := jid(t, "alice@example.org")
	eve := jid(t, "eve@example.org")

	if _, err := backend.CreateNode("news", owner, nil); err != nil {
		t.Fatal(err)
	}
	if err := backend.Publish("news", owner, []*types.Item{{ID: "1", Data: "<x/>"}}); err != nil {
		t.Fatal(err)
	}

	if err := backend.PurgeNode("news", eve); err != types.ErrNotAuthorized {
		t.Errorf("Expected ErrNotAuthorized, got %v", err)
	}
	if err := backend.DeleteNode("news", eve); err != types.ErrNotAuthorized {
		t.Errorf("Expected ErrNotAuthorized, got %v", err)
	}

	if err := backend.PurgeNode("news", owner); err != nil {
		t.Fatal(err)
	}
	items, err := backend.RetrieveItems("news", owner, 0, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(items) != 0 {
		t.Errorf("Expected no items after purge, got %+v", items)
	}

	if err = backend.DeleteNode("news", owner); err != nil {
		t.Fatal(err)
	}

	kinds := []EventKind{}
	for _, evt := range rec.events {
		kinds = append(kinds, evt.Kind)
	}
	expected := []EventKind{EventPublished, EventPurged, EventDeleted}
	if !cmp.Equal(expected, kinds) {
		t.Errorf("Unexpected event sequence: %v", cmp.Diff(expected, kinds))
	}
}

func TestRetractSkipsEventWhenNothingDeleted(t *testing.T) {
	setupStore(t)

	backend := NewBackend(DefaultConfig())
	rec := &recorder{}
	backend.RegisterListener(rec.listen)

	owner := jid(t, "alice@example.org")
	if _, err := backend.CreateNode("news", owner, nil); err != nil {
		t.Fatal(err)
	}

	if err := backend.RetractItems("news", owner, []string{"missing"}); err != nil {
		t.Fatal(err)
	}
	if len(rec.events) != 0 {
		t.Errorf("Expected no events, got %+v", rec.events)
	}
}

func TestNodeConfigRoundTrip(t *testing.T) {
	setupStore(t)

	backend := NewBackend(DefaultConfig())
	owner := jid(t, "alice@example.org")
	eve := jid(t, "eve@example.org")

	if _, err := backend.CreateNode("news", owner, nil); err != nil {
		t.Fatal(err)
	}

	err := backend.SetNodeConfig("news", eve, map[string]interface{}{
		types.ConfigPersistItems: false,
	})
	if err != types.ErrNotAuthorized {
		t.Errorf("Expected ErrNotAuthorized, got %v", err)
	}

	err = backend.SetNodeConfig("news", owner, map[string]interface{}{
		types.ConfigPersistItems: false,
		"unknown_option":         42,
	})
	if err != nil {
		t.Fatal(err)
	}

	cfg, err := backend.NodeConfig("news")
	if err != nil {
		t.Fatal(err)
	}
	expected := types.NodeConfig{PersistItems: false, DeliverPayloads: true}
	if !cmp.Equal(expected, cfg) {
		t.Errorf("Unexpected config: %v", cmp.Diff(expected, cfg))
	}
}
