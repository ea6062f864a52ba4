// Package store provides methods for registering and accessing database adapters.
package store

import (
	"encoding/json"
	"errors"

	adapter "github.com/twonds/idavoll/server/db"
	"github.com/twonds/idavoll/server/store/types"
)

var adp adapter.Adapter
var availableAdapters = make(map[string]adapter.Adapter)

// Unique ID generator
var uGen types.UidGenerator

type configType struct {
	// 16-byte key for XTEA. Used to initialize types.UidGenerator.
	UidKey []byte `json:"uid_key"`
	// Maximum number of results to return from adapter.
	MaxResults int `json:"max_results"`
	// DB adapter name to use. Should be one of those specified in `Adapters`.
	UseAdapter string `json:"use_adapter"`
	// Configurations for individual adapters.
	Adapters map[string]json.RawMessage `json:"adapters"`
}

func openAdapter(workerId int, jsonconf json.RawMessage) error {
	var config configType
	if err := json.Unmarshal(jsonconf, &config); err != nil {
		return errors.New("store: failed to parse config: " + err.Error() + "(" + string(jsonconf) + ")")
	}

	if adp == nil {
		if len(config.UseAdapter) > 0 {
			// Adapter name specified explicitly.
			if ad, ok := availableAdapters[config.UseAdapter]; ok {
				adp = ad
			} else {
				return errors.New("store: " + config.UseAdapter + " adapter is not available in this binary")
			}
		} else if len(availableAdapters) == 1 {
			// Default to the only entry in availableAdapters.
			for _, v := range availableAdapters {
				adp = v
			}
		} else {
			return errors.New("store: db adapter is not specified. Please set `store_config.use_adapter` in the config file")
		}
	}

	if adp.IsOpen() {
		return errors.New("store: connection is already opened")
	}

	// Initialize snowflake.
	if workerId < 0 || workerId > 1023 {
		return errors.New("store: invalid worker ID")
	}

	if err := uGen.Init(uint(workerId), config.UidKey); err != nil {
		return errors.New("store: failed to init snowflake: " + err.Error())
	}

	if err := adp.SetMaxResults(config.MaxResults); err != nil {
		return err
	}

	var adapterConfig json.RawMessage
	if config.Adapters != nil {
		adapterConfig = config.Adapters[adp.GetName()]
	}

	return adp.Open(adapterConfig)
}

// PersistentStorageInterface defines methods used for interaction with
// persistent storage.
type PersistentStorageInterface interface {
	Open(workerId int, jsonconf json.RawMessage) error
	Close() error
	IsOpen() bool
	GetAdapterName() string
	GetAdapterVersion() int
	InitDb(jsonconf json.RawMessage, reset bool) error
	GetUidString() string
	DbStats() func() interface{}
}

// Store is the main object for interacting with persistent storage.
var Store PersistentStorageInterface

type storeObj struct{}

// Open initializes the persistence system. Adapter holds a connection pool
// for a database instance.
//
//	workerId - snowflake worker id of this process
//	jsonconf - configuration string
func (storeObj) Open(workerId int, jsonconf json.RawMessage) error {
	if err := openAdapter(workerId, jsonconf); err != nil {
		return err
	}

	return adp.CheckDbVersion()
}

// Close terminates connection to persistent storage.
func (storeObj) Close() error {
	if adp.IsOpen() {
		return adp.Close()
	}

	return nil
}

// IsOpen checks if persistent storage connection has been initialized.
func (storeObj) IsOpen() bool {
	if adp != nil {
		return adp.IsOpen()
	}

	return false
}

// GetAdapterName returns the name of the current adapter.
func (storeObj) GetAdapterName() string {
	if adp != nil {
		return adp.GetName()
	}

	return ""
}

// GetAdapterVersion returns version of the current adapter.
func (storeObj) GetAdapterVersion() int {
	if adp != nil {
		return adp.Version()
	}

	return -1
}

// InitDb creates and configures a new database instance. If 'reset' is true
// it will first attempt to drop an existing database. If jsonconf is nil it
// will assume that the adapter is already open. If it's non-nil and the
// adapter is not open, it will use the config string to open the adapter
// first.
func (s storeObj) InitDb(jsonconf json.RawMessage, reset bool) error {
	if !s.IsOpen() {
		if err := openAdapter(1, jsonconf); err != nil {
			return err
		}
	}
	return adp.CreateDb(reset)
}

// RegisterAdapter makes a persistence adapter available.
// If Register is called twice or if the adapter is nil, it panics.
func RegisterAdapter(a adapter.Adapter) {
	if a == nil {
		panic("store: Register adapter is nil")
	}

	adapterName := a.GetName()
	if _, ok := availableAdapters[adapterName]; ok {
		panic("store: adapter '" + adapterName + "' is already registered")
	}
	availableAdapters[adapterName] = a
}

// GetUidString generates a unique id as a string, suitable for use as a node
// or item identifier.
func (storeObj) GetUidString() string {
	return uGen.GetStr()
}

// DbStats returns a callback returning db connection stats object.
func (s storeObj) DbStats() func() interface{} {
	if !s.IsOpen() {
		return nil
	}
	return adp.Stats
}

// NodesPersistenceInterface is an interface which defines methods for
// persistence mapping of pub/sub nodes.
type NodesPersistenceInterface interface {
	Create(id string, owner types.JID, cfg types.NodeConfig) (string, error)
	Get(id string) (Node, error)
	GetAll() ([]string, error)
	Delete(id string) error
}

// NodesObjMapper is a struct to hold methods for persistence mapping of the
// Node object.
type NodesObjMapper struct{}

// Nodes is the anchor for storing/retrieving Node objects.
var Nodes NodesPersistenceInterface

// Create stores a new leaf node together with the creator's owner
// affiliation. When id is empty, a unique identifier is generated (an
// "instant node"). Returns the identifier of the created node.
func (NodesObjMapper) Create(id string, owner types.JID, cfg types.NodeConfig) (string, error) {
	if id == "" {
		id = Store.GetUidString()
	}

	node := &types.Node{
		ID:     id,
		Type:   types.NodeLeaf,
		Config: cfg,
	}
	node.InitTimes()

	if err := adp.NodeCreate(node, owner.BareJID()); err != nil {
		return "", err
	}

	return id, nil
}

// Get returns a request-scoped handle bound to the node's current
// configuration. Handles must not be cached across requests.
func (NodesObjMapper) Get(id string) (Node, error) {
	data, err := adp.NodeGet(id)
	if err != nil {
		return nil, err
	}
	if data.Type == types.NodeLeaf {
		return &leafNode{nodeHandle{data: *data}}, nil
	}
	return &nodeHandle{data: *data}, nil
}

// GetAll returns the identifiers of all nodes.
func (NodesObjMapper) GetAll() ([]string, error) {
	return adp.NodeGetAll()
}

// Delete deletes a node and cascades to its affiliations, subscriptions and
// items.
func (NodesObjMapper) Delete(id string) error {
	return adp.NodeDelete(id)
}

// EntitiesPersistenceInterface is an interface which defines entity-scoped
// read methods.
type EntitiesPersistenceInterface interface {
	GetAffiliations(entity types.JID) ([]types.NodeAffiliation, error)
	GetSubscriptions(entity types.JID) ([]types.Subscription, error)
}

// EntitiesObjMapper is a struct to hold methods for entity-scoped reads.
type EntitiesObjMapper struct{}

// Entities is the anchor for entity-scoped reads.
var Entities EntitiesPersistenceInterface

// GetAffiliations returns (node, role) pairs for every node the entity has a
// non-none affiliation with.
func (EntitiesObjMapper) GetAffiliations(entity types.JID) ([]types.NodeAffiliation, error) {
	return adp.AffiliationsForEntity(entity.BareJID())
}

// GetSubscriptions returns all subscriptions held by the entity.
func (EntitiesObjMapper) GetSubscriptions(entity types.JID) ([]types.Subscription, error) {
	return adp.SubsForEntity(entity.BareJID())
}

func init() {
	Store = storeObj{}
	Nodes = NodesObjMapper{}
	Entities = EntitiesObjMapper{}
}
