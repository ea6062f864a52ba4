package memory

import (
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/twonds/idavoll/server/store/types"
)

var alice = types.JID{Bare: "alice@example.org"}
var bob = types.JID{Bare: "bob@example.org"}

func newAdapter(tb testing.TB) *adapter {
	tb.Helper()

	a := &adapter{}
	if err := a.Open(nil); err != nil {
		tb.Fatalf("Open failed: %v", err)
	}
	return a
}

func mustCreateNode(tb testing.TB, a *adapter, id string, owner types.JID) {
	tb.Helper()

	node := &types.Node{ID: id, Type: types.NodeLeaf, Config: types.DefaultLeafConfig()}
	node.InitTimes()
	if err := a.NodeCreate(node, owner); err != nil {
		tb.Fatalf("NodeCreate(%q) failed: %v", id, err)
	}
}

func item(id, data string, publisher types.JID, at time.Time) *types.Item {
	return &types.Item{ID: id, Data: data, Publisher: publisher, CreatedAt: at}
}

func TestOpenCloseLifecycle(t *testing.T) {
	a := &adapter{}
	if a.IsOpen() {
		t.Error("Adapter should start closed")
	}
	if err := a.Open(nil); err != nil {
		t.Fatal(err)
	}
	if !a.IsOpen() {
		t.Error("Adapter should be open")
	}
	if err := a.Open(nil); err == nil {
		t.Error("Second Open should fail")
	}

	if err := a.SetMaxResults(2); err != nil {
		t.Fatal(err)
	}
	mustCreateNode(t, a, "news", alice)
	base := time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)
	for i, id := range []string{"1", "2", "3"} {
		if err := a.ItemSave("news", []*types.Item{
			item(id, "<entry/>", alice, base.Add(time.Duration(i)*time.Second)),
		}); err != nil {
			t.Fatal(err)
		}
	}
	items, err := a.ItemGetAll("news", 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(items) != 2 {
		t.Error("Unbounded retrieval should clamp to max results, got:", len(items))
	}

	if err := a.Close(); err != nil {
		t.Fatal(err)
	}
	if a.IsOpen() {
		t.Error("Adapter should be closed")
	}
}

func TestNodeCreateDuplicate(t *testing.T) {
	a := newAdapter(t)

	mustCreateNode(t, a, "news", alice)

	node := &types.Node{ID: "news", Type: types.NodeLeaf}
	if err := a.NodeCreate(node, bob); err != types.ErrNodeExists {
		t.Error("Expected ErrNodeExists, got:", err)
	}
}

func TestNodeCreateOwnerAffiliation(t *testing.T) {
	a := newAdapter(t)

	mustCreateNode(t, a, "news", alice)

	aff, err := a.AffiliationGet("news", alice)
	if err != nil {
		t.Fatal(err)
	}
	if aff != types.AffOwner {
		t.Error("Creator should be owner, got:", aff)
	}

	aff, err = a.AffiliationGet("news", bob)
	if err != nil {
		t.Fatal(err)
	}
	if aff != types.AffNone {
		t.Error("Unrelated entity should have no affiliation, got:", aff)
	}
}

func TestNodeGetMissing(t *testing.T) {
	a := newAdapter(t)

	if _, err := a.NodeGet("missing"); err != types.ErrNodeNotFound {
		t.Error("Expected ErrNodeNotFound, got:", err)
	}
	if err := a.NodeDelete("missing"); err != types.ErrNodeNotFound {
		t.Error("Expected ErrNodeNotFound on delete, got:", err)
	}
}

func TestNodeDeleteCascades(t *testing.T) {
	a := newAdapter(t)

	mustCreateNode(t, a, "news", alice)
	if err := a.SubAdd("news", &types.Subscription{
		Node: "news", Subscriber: bob, State: types.SubStateSubscribed,
	}); err != nil {
		t.Fatal(err)
	}
	if err := a.ItemSave("news", []*types.Item{
		item("1", "<entry/>", alice, types.TimeNow()),
	}); err != nil {
		t.Fatal(err)
	}

	if err := a.NodeDelete("news"); err != nil {
		t.Fatal(err)
	}

	if _, err := a.NodeGet("news"); err != types.ErrNodeNotFound {
		t.Error("Node should be gone, got:", err)
	}
	affs, err := a.AffiliationsForEntity(alice)
	if err != nil {
		t.Fatal(err)
	}
	if len(affs) != 0 {
		t.Error("Affiliations should be gone, got:", affs)
	}
	subs, err := a.SubsForEntity(bob)
	if err != nil {
		t.Fatal(err)
	}
	if len(subs) != 0 {
		t.Error("Subscriptions should be gone, got:", subs)
	}
}

func TestNodeUpdateConfig(t *testing.T) {
	a := newAdapter(t)

	mustCreateNode(t, a, "news", alice)
	if err := a.NodeUpdate("news", types.NodeConfig{PersistItems: false, DeliverPayloads: true}); err != nil {
		t.Fatal(err)
	}

	node, err := a.NodeGet("news")
	if err != nil {
		t.Fatal(err)
	}
	if node.Config.PersistItems {
		t.Error("persist_items should be off")
	}
	if !node.Config.DeliverPayloads {
		t.Error("deliver_payloads should be on")
	}
}

func TestSubAddDuplicate(t *testing.T) {
	a := newAdapter(t)

	mustCreateNode(t, a, "news", alice)

	sub := &types.Subscription{Node: "news", Subscriber: bob, State: types.SubStateSubscribed}
	if err := a.SubAdd("news", sub); err != nil {
		t.Fatal(err)
	}
	if err := a.SubAdd("news", sub); err != types.ErrSubscriptionExists {
		t.Error("Expected ErrSubscriptionExists, got:", err)
	}

	// A different resource is a different subscription.
	balcony := types.JID{Bare: bob.Bare, Resource: "balcony"}
	if err := a.SubAdd("news", &types.Subscription{
		Node: "news", Subscriber: balcony, State: types.SubStateSubscribed,
	}); err != nil {
		t.Error("Subscription under another resource should succeed, got:", err)
	}
}

func TestSubDeleteMissing(t *testing.T) {
	a := newAdapter(t)

	mustCreateNode(t, a, "news", alice)
	if err := a.SubDelete("news", bob); err != types.ErrSubscriptionNotFound {
		t.Error("Expected ErrSubscriptionNotFound, got:", err)
	}
	if err := a.SubDelete("missing", bob); err != types.ErrNodeNotFound {
		t.Error("Expected ErrNodeNotFound, got:", err)
	}
}

func TestSubscribersForNode(t *testing.T) {
	a := newAdapter(t)

	mustCreateNode(t, a, "news", alice)

	balcony := types.JID{Bare: bob.Bare, Resource: "balcony"}
	for _, sub := range []*types.Subscription{
		{Node: "news", Subscriber: balcony, State: types.SubStateSubscribed},
		{Node: "news", Subscriber: alice, State: types.SubStatePending},
	} {
		if err := a.SubAdd("news", sub); err != nil {
			t.Fatal(err)
		}
	}

	subscribers, err := a.SubscribersForNode("news")
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]types.JID{balcony}, subscribers); diff != "" {
		t.Error("Wrong subscriber list (-want +got):", diff)
	}

	ok, err := a.IsSubscribed("news", bob)
	if err != nil {
		t.Fatal(err)
	}
	if !ok {
		t.Error("Bare entity should count as subscribed via its resource")
	}
	ok, err = a.IsSubscribed("news", alice)
	if err != nil {
		t.Fatal(err)
	}
	if ok {
		t.Error("Pending subscription should not count as subscribed")
	}
}

func TestItemUpsert(t *testing.T) {
	a := newAdapter(t)

	mustCreateNode(t, a, "news", alice)

	first := time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)
	second := first.Add(time.Minute)
	if err := a.ItemSave("news", []*types.Item{item("1", "<entry/>", alice, first)}); err != nil {
		t.Fatal(err)
	}
	if err := a.ItemSave("news", []*types.Item{item("1", "<entry v='2'/>", bob, second)}); err != nil {
		t.Fatal(err)
	}

	items, err := a.ItemGetAll("news", 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(items) != 1 {
		t.Fatal("Expected exactly one item, got:", len(items))
	}
	if items[0].Data != "<entry v='2'/>" || items[0].Publisher != bob || !items[0].CreatedAt.Equal(second) {
		t.Error("Item row should be fully replaced, got:", items[0])
	}
}

func TestItemOrderAndLimit(t *testing.T) {
	a := newAdapter(t)

	mustCreateNode(t, a, "news", alice)

	base := time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)
	for i, id := range []string{"1", "2", "3"} {
		if err := a.ItemSave("news", []*types.Item{
			item(id, "<entry/>", alice, base.Add(time.Duration(i)*time.Second)),
		}); err != nil {
			t.Fatal(err)
		}
	}

	items, err := a.ItemGetAll("news", 0)
	if err != nil {
		t.Fatal(err)
	}
	var ids []string
	for _, it := range items {
		ids = append(ids, it.ID)
	}
	if diff := cmp.Diff([]string{"3", "2", "1"}, ids); diff != "" {
		t.Error("Wrong retrieval order (-want +got):", diff)
	}

	items, err = a.ItemGetAll("news", 2)
	if err != nil {
		t.Fatal(err)
	}
	if len(items) != 2 || items[0].ID != "3" || items[1].ID != "2" {
		t.Error("Bounded retrieval should return the most recent items, got:", items)
	}
}

func TestItemDeleteListSkipsMissing(t *testing.T) {
	a := newAdapter(t)

	mustCreateNode(t, a, "news", alice)
	if err := a.ItemSave("news", []*types.Item{
		item("1", "<entry/>", alice, types.TimeNow()),
		item("2", "<entry/>", alice, types.TimeNow()),
	}); err != nil {
		t.Fatal(err)
	}

	deleted, err := a.ItemDeleteList("news", []string{"2", "nope"})
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{"2"}, deleted); diff != "" {
		t.Error("Wrong deleted subset (-want +got):", diff)
	}
}

func TestItemGetByID(t *testing.T) {
	a := newAdapter(t)

	mustCreateNode(t, a, "news", alice)
	if err := a.ItemSave("news", []*types.Item{
		item("1", "<a/>", alice, types.TimeNow()),
		item("2", "<b/>", alice, types.TimeNow()),
	}); err != nil {
		t.Fatal(err)
	}

	items, err := a.ItemGetByID("news", []string{"2", "nope"})
	if err != nil {
		t.Fatal(err)
	}
	if len(items) != 1 || items[0].ID != "2" {
		t.Error("Expected just item 2, got:", items)
	}
}

func TestPurgeKeepsNodeAndSubscriptions(t *testing.T) {
	a := newAdapter(t)

	mustCreateNode(t, a, "news", alice)
	if err := a.SubAdd("news", &types.Subscription{
		Node: "news", Subscriber: bob, State: types.SubStateSubscribed,
	}); err != nil {
		t.Fatal(err)
	}
	if err := a.ItemSave("news", []*types.Item{item("1", "<entry/>", alice, types.TimeNow())}); err != nil {
		t.Fatal(err)
	}

	if err := a.ItemDeleteAll("news"); err != nil {
		t.Fatal(err)
	}

	items, err := a.ItemGetAll("news", 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(items) != 0 {
		t.Error("Items should be purged, got:", items)
	}
	if _, err = a.NodeGet("news"); err != nil {
		t.Error("Node should survive a purge:", err)
	}
	state, err := a.SubGet("news", bob)
	if err != nil {
		t.Fatal(err)
	}
	if state != types.SubStateSubscribed {
		t.Error("Subscriptions should survive a purge, got:", state)
	}
}

func TestAffiliationsForEntityOrdered(t *testing.T) {
	a := newAdapter(t)

	mustCreateNode(t, a, "zoo", alice)
	mustCreateNode(t, a, "news", alice)
	mustCreateNode(t, a, "other", bob)

	affs, err := a.AffiliationsForEntity(alice)
	if err != nil {
		t.Fatal(err)
	}
	expected := []types.NodeAffiliation{
		{Node: "news", Affiliation: types.AffOwner},
		{Node: "zoo", Affiliation: types.AffOwner},
	}
	if diff := cmp.Diff(expected, affs); diff != "" {
		t.Error("Wrong affiliations (-want +got):", diff)
	}
}

func TestConcurrentNodeCreate(t *testing.T) {
	a := newAdapter(t)

	const workers = 8
	var wg sync.WaitGroup
	errs := make(chan error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			node := &types.Node{ID: "news", Type: types.NodeLeaf}
			node.InitTimes()
			errs <- a.NodeCreate(node, alice)
		}()
	}
	wg.Wait()
	close(errs)

	var ok, dup int
	for err := range errs {
		switch err {
		case nil:
			ok++
		case types.ErrNodeExists:
			dup++
		default:
			t.Error("Unexpected error:", err)
		}
	}
	if ok != 1 || dup != workers-1 {
		t.Errorf("Expected exactly one success, got %d successes and %d duplicates", ok, dup)
	}
}

func TestConcurrentSubAdd(t *testing.T) {
	a := newAdapter(t)

	mustCreateNode(t, a, "news", alice)

	const workers = 8
	var wg sync.WaitGroup
	errs := make(chan error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs <- a.SubAdd("news", &types.Subscription{
				Node: "news", Subscriber: bob, State: types.SubStateSubscribed,
			})
		}()
	}
	wg.Wait()
	close(errs)

	var ok, dup int
	for err := range errs {
		switch err {
		case nil:
			ok++
		case types.ErrSubscriptionExists:
			dup++
		default:
			t.Error("Unexpected error:", err)
		}
	}
	if ok != 1 || dup != workers-1 {
		t.Errorf("Expected exactly one success, got %d successes and %d duplicates", ok, dup)
	}
}
