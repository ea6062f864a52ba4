//go:build mysql
// +build mysql

// Package mysql is a relational storage adapter backed by MySQL.
package mysql

import (
	"database/sql"
	"encoding/json"
	"errors"
	"strconv"
	"time"

	ms "github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
	"github.com/twonds/idavoll/server/store"
	t "github.com/twonds/idavoll/server/store/types"
)

// adapter holds MySQL connection data.
type adapter struct {
	db         *sqlx.DB
	dsn        string
	dbName     string
	maxResults int
	version    int
}

const (
	defaultDSN      = "root:@tcp(localhost:3306)/idavoll?parseTime=true"
	defaultDatabase = "idavoll"

	adpVersion  = 100
	adapterName = "mysql"

	defaultMaxResults = 1024
)

type configType struct {
	DSN    string `json:"dsn,omitempty"`
	DBName string `json:"database,omitempty"`
}

// Open initializes the MySQL session.
func (a *adapter) Open(jsonconfig json.RawMessage) error {
	if a.db != nil {
		return errors.New("mysql adapter is already connected")
	}

	var err error
	var config configType
	if len(jsonconfig) > 0 {
		if err = json.Unmarshal(jsonconfig, &config); err != nil {
			return errors.New("mysql adapter failed to parse config: " + err.Error())
		}
	}

	a.dsn = config.DSN
	if a.dsn == "" {
		a.dsn = defaultDSN
	}

	a.dbName = config.DBName
	if a.dbName == "" {
		a.dbName = defaultDatabase
	}

	if a.maxResults <= 0 {
		a.maxResults = defaultMaxResults
	}

	a.db, err = sqlx.Open("mysql", a.dsn)
	if err != nil {
		return err
	}

	// sql.Open does not open the network connection.
	// Force network connection here.
	err = a.db.Ping()
	if err != nil {
		return err
	}

	a.version = -1

	return nil
}

// Close closes the underlying database connection.
func (a *adapter) Close() error {
	var err error
	if a.db != nil {
		err = a.db.Close()
		a.db = nil
		a.version = -1
	}
	return err
}

// IsOpen returns true if connection to database has been established. It does
// not check if connection is actually live.
func (a *adapter) IsOpen() bool {
	return a.db != nil
}

// GetName returns string that adapter uses to register itself with store.
func (a *adapter) GetName() string {
	return adapterName
}

// SetMaxResults configures how many results can be returned in a single call.
func (a *adapter) SetMaxResults(val int) error {
	if val <= 0 {
		a.maxResults = defaultMaxResults
	} else {
		a.maxResults = val
	}
	return nil
}

// Read current database version.
func (a *adapter) getDbVersion() (int, error) {
	var vers string
	err := a.db.Get(&vers, "SELECT `value` FROM kvmeta WHERE `key`='version'")
	if err != nil {
		if isMissingDb(err) || err == sql.ErrNoRows {
			err = errors.New("Database not initialized")
		}
		return -1, err
	}
	a.version, _ = strconv.Atoi(vers)

	return a.version, nil
}

// CheckDbVersion checks whether the actual DB version matches the expected
// version of this adapter.
func (a *adapter) CheckDbVersion() error {
	if a.version <= 0 {
		if _, err := a.getDbVersion(); err != nil {
			return err
		}
	}

	if a.version != adpVersion {
		return errors.New("Invalid database version " + strconv.Itoa(a.version) +
			". Expected " + strconv.Itoa(adpVersion))
	}

	return nil
}

// Version returns adapter version.
func (a *adapter) Version() int {
	return adpVersion
}

// Stats returns connection pool stats.
func (a *adapter) Stats() interface{} {
	if a.db == nil {
		return nil
	}
	return a.db.Stats()
}

// CreateDb initializes the storage. Every statement is parameterless DDL;
// values never reach this path.
func (a *adapter) CreateDb(reset bool) error {
	var err error
	var tx *sql.Tx

	// Can't use an existing connection because it's bound to a database name
	// which may not exist yet.
	db, err := sql.Open("mysql", a.dsn)
	if err != nil {
		return err
	}
	defer db.Close()

	if tx, err = db.Begin(); err != nil {
		return err
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()

	if reset {
		if _, err = tx.Exec("DROP DATABASE IF EXISTS " + a.dbName); err != nil {
			return err
		}
	}

	if _, err = tx.Exec("CREATE DATABASE " + a.dbName + " CHARACTER SET utf8mb4 COLLATE utf8mb4_unicode_ci"); err != nil {
		return err
	}

	if _, err = tx.Exec("USE " + a.dbName); err != nil {
		return err
	}

	if _, err = tx.Exec(
		`CREATE TABLE nodes(
			id        INT NOT NULL AUTO_INCREMENT,
			createdat DATETIME(3) NOT NULL,
			updatedat DATETIME(3) NOT NULL,
			node      VARCHAR(255) CHARACTER SET ascii NOT NULL,
			type      VARCHAR(16) NOT NULL DEFAULT 'leaf',
			persistent     TINYINT NOT NULL DEFAULT 1,
			deliverpayload TINYINT NOT NULL DEFAULT 1,
			PRIMARY KEY(id),
			UNIQUE INDEX nodes_node(node)
		)`); err != nil {
		return err
	}

	if _, err = tx.Exec(
		`CREATE TABLE entities(
			id  INT NOT NULL AUTO_INCREMENT,
			jid VARCHAR(255) CHARACTER SET ascii NOT NULL,
			PRIMARY KEY(id),
			UNIQUE INDEX entities_jid(jid)
		)`); err != nil {
		return err
	}

	if _, err = tx.Exec(
		`CREATE TABLE affiliations(
			id          INT NOT NULL AUTO_INCREMENT,
			nodeid      INT NOT NULL,
			entityid    INT NOT NULL,
			affiliation VARCHAR(16) NOT NULL,
			PRIMARY KEY(id),
			FOREIGN KEY(nodeid) REFERENCES nodes(id) ON DELETE CASCADE,
			FOREIGN KEY(entityid) REFERENCES entities(id),
			UNIQUE INDEX affiliations_nodeid_entityid(nodeid, entityid)
		)`); err != nil {
		return err
	}

	if _, err = tx.Exec(
		`CREATE TABLE subscriptions(
			id           INT NOT NULL AUTO_INCREMENT,
			createdat    DATETIME(3) NOT NULL,
			nodeid       INT NOT NULL,
			entityid     INT NOT NULL,
			resource     VARCHAR(255) CHARACTER SET ascii NOT NULL DEFAULT '',
			subscription VARCHAR(16) NOT NULL,
			PRIMARY KEY(id),
			FOREIGN KEY(nodeid) REFERENCES nodes(id) ON DELETE CASCADE,
			FOREIGN KEY(entityid) REFERENCES entities(id),
			UNIQUE INDEX subscriptions_nodeid_entityid_resource(nodeid, entityid, resource)
		)`); err != nil {
		return err
	}

	if _, err = tx.Exec(
		`CREATE TABLE items(
			id        INT NOT NULL AUTO_INCREMENT,
			createdat DATETIME(3) NOT NULL,
			nodeid    INT NOT NULL,
			item      VARCHAR(255) CHARACTER SET ascii NOT NULL,
			publisher VARCHAR(255) CHARACTER SET ascii NOT NULL,
			data      MEDIUMTEXT,
			PRIMARY KEY(id),
			FOREIGN KEY(nodeid) REFERENCES nodes(id) ON DELETE CASCADE,
			UNIQUE INDEX items_nodeid_item(nodeid, item)
		)`); err != nil {
		return err
	}

	if _, err = tx.Exec(
		"CREATE TABLE kvmeta(`key` CHAR(32), `value` TEXT, PRIMARY KEY(`key`))"); err != nil {
		return err
	}
	if _, err = tx.Exec("INSERT INTO kvmeta(`key`, `value`) VALUES('version', ?)", adpVersion); err != nil {
		return err
	}

	return tx.Commit()
}

// nodeID resolves a node identifier to its surrogate key within the given
// transaction. This is the existence check every node-scoped operation runs
// inside its own atomic unit.
func nodeID(tx *sqlx.Tx, node string) (int64, error) {
	var id int64
	if err := tx.Get(&id, "SELECT id FROM nodes WHERE node=?", node); err != nil {
		if err == sql.ErrNoRows {
			return 0, t.ErrNodeNotFound
		}
		return 0, err
	}
	return id, nil
}

// entityID inserts the entity if missing and returns its surrogate key.
// The insert is idempotent: a concurrent insert of the same jid is absorbed
// by the ON DUPLICATE KEY clause.
func entityID(tx *sqlx.Tx, jid string) (int64, error) {
	res, err := tx.Exec(
		"INSERT INTO entities(jid) VALUES(?) ON DUPLICATE KEY UPDATE id=LAST_INSERT_ID(id)",
		jid)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// NodeCreate stores a new node and the owner affiliation in one transaction.
func (a *adapter) NodeCreate(node *t.Node, owner t.JID) error {
	tx, err := a.db.Beginx()
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()

	res, err := tx.Exec(
		"INSERT INTO nodes(createdat,updatedat,node,type,persistent,deliverpayload) VALUES(?,?,?,?,?,?)",
		node.CreatedAt, node.UpdatedAt, node.ID, string(node.Type),
		node.Config.PersistItems, node.Config.DeliverPayloads)
	if err != nil {
		if isDupe(err) {
			err = t.ErrNodeExists
		}
		return err
	}
	nid, err := res.LastInsertId()
	if err != nil {
		return err
	}

	eid, err := entityID(tx, owner.Bare)
	if err != nil {
		return err
	}

	if _, err = tx.Exec(
		"INSERT INTO affiliations(nodeid,entityid,affiliation) VALUES(?,?,?)",
		nid, eid, string(t.AffOwner)); err != nil {
		return err
	}

	return tx.Commit()
}

// NodeGet loads a single node by identifier.
func (a *adapter) NodeGet(id string) (*t.Node, error) {
	var row struct {
		Createdat      time.Time
		Updatedat      time.Time
		Node           string
		Type           string
		Persistent     bool
		Deliverpayload bool
	}
	err := a.db.Get(&row,
		"SELECT createdat,updatedat,node,type,persistent,deliverpayload FROM nodes WHERE node=?", id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, t.ErrNodeNotFound
		}
		return nil, err
	}

	return &t.Node{
		ID:   row.Node,
		Type: t.NodeType(row.Type),
		Config: t.NodeConfig{
			PersistItems:    row.Persistent,
			DeliverPayloads: row.Deliverpayload,
		},
		CreatedAt: row.Createdat,
		UpdatedAt: row.Updatedat,
	}, nil
}

// NodeGetAll returns the identifiers of all nodes.
func (a *adapter) NodeGetAll() ([]string, error) {
	var ids []string
	if err := a.db.Select(&ids, "SELECT node FROM nodes ORDER BY node"); err != nil {
		return nil, err
	}
	return ids, nil
}

// NodeUpdate replaces the node configuration.
func (a *adapter) NodeUpdate(id string, cfg t.NodeConfig) error {
	tx, err := a.db.Beginx()
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()

	nid, err := nodeID(tx, id)
	if err != nil {
		return err
	}

	if _, err = tx.Exec(
		"UPDATE nodes SET updatedat=?,persistent=?,deliverpayload=? WHERE id=?",
		t.TimeNow(), cfg.PersistItems, cfg.DeliverPayloads, nid); err != nil {
		return err
	}

	return tx.Commit()
}

// NodeDelete deletes the node; affiliations, subscriptions and items cascade
// through the foreign keys within the same transaction.
func (a *adapter) NodeDelete(id string) error {
	tx, err := a.db.Beginx()
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()

	res, err := tx.Exec("DELETE FROM nodes WHERE node=?", id)
	if err != nil {
		return err
	}
	if count, _ := res.RowsAffected(); count == 0 {
		err = t.ErrNodeNotFound
		return err
	}

	return tx.Commit()
}

// AffiliationGet returns the entity's role on the node, AffNone if absent.
func (a *adapter) AffiliationGet(node string, entity t.JID) (t.Affiliation, error) {
	tx, err := a.db.Beginx()
	if err != nil {
		return "", err
	}
	defer tx.Rollback()

	nid, err := nodeID(tx, node)
	if err != nil {
		return "", err
	}

	var aff string
	err = tx.Get(&aff,
		"SELECT affiliation FROM affiliations JOIN entities ON entities.id=affiliations.entityid "+
			"WHERE nodeid=? AND jid=?", nid, entity.Bare)
	if err == sql.ErrNoRows {
		return t.AffNone, nil
	}
	if err != nil {
		return "", err
	}

	return t.Affiliation(aff), nil
}

// AffiliationsForEntity returns (node, role) pairs ordered by node identifier.
func (a *adapter) AffiliationsForEntity(entity t.JID) ([]t.NodeAffiliation, error) {
	rows, err := a.db.Queryx(
		"SELECT node,affiliation FROM affiliations "+
			"JOIN nodes ON nodes.id=affiliations.nodeid "+
			"JOIN entities ON entities.id=affiliations.entityid "+
			"WHERE jid=? ORDER BY node", entity.Bare)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var affs []t.NodeAffiliation
	for rows.Next() {
		var node, aff string
		if err = rows.Scan(&node, &aff); err != nil {
			return nil, err
		}
		affs = append(affs, t.NodeAffiliation{Node: node, Affiliation: t.Affiliation(aff)})
	}

	return affs, rows.Err()
}

// SubAdd stores a new subscription.
func (a *adapter) SubAdd(node string, sub *t.Subscription) error {
	tx, err := a.db.Beginx()
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()

	nid, err := nodeID(tx, node)
	if err != nil {
		return err
	}
	eid, err := entityID(tx, sub.Subscriber.Bare)
	if err != nil {
		return err
	}

	if _, err = tx.Exec(
		"INSERT INTO subscriptions(createdat,nodeid,entityid,resource,subscription) VALUES(?,?,?,?,?)",
		sub.CreatedAt, nid, eid, sub.Subscriber.Resource, string(sub.State)); err != nil {
		if isDupe(err) {
			err = t.ErrSubscriptionExists
		}
		return err
	}

	return tx.Commit()
}

// SubGet returns the subscription state of the exact subscriber identity.
func (a *adapter) SubGet(node string, subscriber t.JID) (t.SubState, error) {
	tx, err := a.db.Beginx()
	if err != nil {
		return "", err
	}
	defer tx.Rollback()

	nid, err := nodeID(tx, node)
	if err != nil {
		return "", err
	}

	var state string
	err = tx.Get(&state,
		"SELECT subscription FROM subscriptions JOIN entities ON entities.id=subscriptions.entityid "+
			"WHERE nodeid=? AND jid=? AND resource=?",
		nid, subscriber.Bare, subscriber.Resource)
	if err == sql.ErrNoRows {
		return t.SubStateNone, nil
	}
	if err != nil {
		return "", err
	}

	return t.SubState(state), nil
}

// SubDelete removes a subscription.
func (a *adapter) SubDelete(node string, subscriber t.JID) error {
	tx, err := a.db.Beginx()
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()

	nid, err := nodeID(tx, node)
	if err != nil {
		return err
	}

	res, err := tx.Exec(
		"DELETE FROM subscriptions WHERE nodeid=? AND resource=? AND "+
			"entityid=(SELECT id FROM entities WHERE jid=?)",
		nid, subscriber.Resource, subscriber.Bare)
	if err != nil {
		return err
	}
	if count, _ := res.RowsAffected(); count == 0 {
		err = t.ErrSubscriptionNotFound
		return err
	}

	return tx.Commit()
}

// SubsForEntity returns all subscriptions held by the bare entity.
func (a *adapter) SubsForEntity(entity t.JID) ([]t.Subscription, error) {
	rows, err := a.db.Queryx(
		"SELECT node,jid,resource,subscription,subscriptions.createdat FROM subscriptions "+
			"JOIN nodes ON nodes.id=subscriptions.nodeid "+
			"JOIN entities ON entities.id=subscriptions.entityid "+
			"WHERE jid=? ORDER BY node,resource", entity.Bare)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var subs []t.Subscription
	for rows.Next() {
		var node, jid, resource, state string
		var createdAt time.Time
		if err = rows.Scan(&node, &jid, &resource, &state, &createdAt); err != nil {
			return nil, err
		}
		subs = append(subs, t.Subscription{
			Node:       node,
			Subscriber: t.JID{Bare: jid, Resource: resource},
			State:      t.SubState(state),
			CreatedAt:  createdAt,
		})
	}

	return subs, rows.Err()
}

// SubscribersForNode returns fully identified subscribers in state subscribed.
func (a *adapter) SubscribersForNode(node string) ([]t.JID, error) {
	tx, err := a.db.Beginx()
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	nid, err := nodeID(tx, node)
	if err != nil {
		return nil, err
	}

	rows, err := tx.Queryx(
		"SELECT jid,resource FROM subscriptions JOIN entities ON entities.id=subscriptions.entityid "+
			"WHERE nodeid=? AND subscription=? ORDER BY jid,resource",
		nid, string(t.SubStateSubscribed))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var jids []t.JID
	for rows.Next() {
		var jid, resource string
		if err = rows.Scan(&jid, &resource); err != nil {
			return nil, err
		}
		jids = append(jids, t.JID{Bare: jid, Resource: resource})
	}

	return jids, rows.Err()
}

// IsSubscribed reports whether the bare entity is subscribed under any resource.
func (a *adapter) IsSubscribed(node string, entity t.JID) (bool, error) {
	tx, err := a.db.Beginx()
	if err != nil {
		return false, err
	}
	defer tx.Rollback()

	nid, err := nodeID(tx, node)
	if err != nil {
		return false, err
	}

	var one int
	err = tx.Get(&one,
		"SELECT 1 FROM subscriptions JOIN entities ON entities.id=subscriptions.entityid "+
			"WHERE nodeid=? AND jid=? AND subscription=? LIMIT 1",
		nid, entity.Bare, string(t.SubStateSubscribed))
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	return true, nil
}

// ItemSave upserts the given items in one transaction: attempt an update,
// fall back to an insert when no row matched.
func (a *adapter) ItemSave(node string, items []*t.Item) error {
	tx, err := a.db.Beginx()
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()

	nid, err := nodeID(tx, node)
	if err != nil {
		return err
	}

	for _, item := range items {
		var res sql.Result
		res, err = tx.Exec(
			"UPDATE items SET createdat=?,publisher=?,data=? WHERE nodeid=? AND item=?",
			item.CreatedAt, item.Publisher.Full(), item.Data, nid, item.ID)
		if err != nil {
			return err
		}
		if count, _ := res.RowsAffected(); count > 0 {
			continue
		}
		if _, err = tx.Exec(
			"INSERT INTO items(createdat,nodeid,item,publisher,data) VALUES(?,?,?,?,?)",
			item.CreatedAt, nid, item.ID, item.Publisher.Full(), item.Data); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// ItemDeleteList deletes items by identifier, returning the subset actually
// deleted.
func (a *adapter) ItemDeleteList(node string, ids []string) ([]string, error) {
	tx, err := a.db.Beginx()
	if err != nil {
		return nil, err
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()

	nid, err := nodeID(tx, node)
	if err != nil {
		return nil, err
	}

	var deleted []string
	for _, id := range ids {
		var res sql.Result
		res, err = tx.Exec("DELETE FROM items WHERE nodeid=? AND item=?", nid, id)
		if err != nil {
			return nil, err
		}
		if count, _ := res.RowsAffected(); count > 0 {
			deleted = append(deleted, id)
		}
	}

	if err = tx.Commit(); err != nil {
		return nil, err
	}
	return deleted, nil
}

// ItemGetAll returns items most recent first.
func (a *adapter) ItemGetAll(node string, limit int) ([]t.Item, error) {
	tx, err := a.db.Beginx()
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	nid, err := nodeID(tx, node)
	if err != nil {
		return nil, err
	}

	if limit <= 0 || limit > a.maxResults {
		limit = a.maxResults
	}

	rows, err := tx.Queryx(
		"SELECT item,publisher,data,createdat FROM items WHERE nodeid=? "+
			"ORDER BY createdat DESC,id DESC LIMIT ?", nid, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanItems(rows)
}

// ItemGetByID returns the items found for the given identifiers.
func (a *adapter) ItemGetByID(node string, ids []string) ([]t.Item, error) {
	tx, err := a.db.Beginx()
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	nid, err := nodeID(tx, node)
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return nil, nil
	}

	query, args, err := sqlx.In(
		"SELECT item,publisher,data,createdat FROM items WHERE nodeid=? AND item IN (?) "+
			"ORDER BY createdat DESC,id DESC", nid, ids)
	if err != nil {
		return nil, err
	}

	rows, err := tx.Queryx(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanItems(rows)
}

// ItemDeleteAll deletes all items of the node.
func (a *adapter) ItemDeleteAll(node string) error {
	tx, err := a.db.Beginx()
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()

	nid, err := nodeID(tx, node)
	if err != nil {
		return err
	}

	if _, err = tx.Exec("DELETE FROM items WHERE nodeid=?", nid); err != nil {
		return err
	}

	return tx.Commit()
}

func scanItems(rows *sqlx.Rows) ([]t.Item, error) {
	var items []t.Item
	for rows.Next() {
		var id, publisher string
		var data sql.NullString
		var createdAt time.Time
		if err := rows.Scan(&id, &publisher, &data, &createdAt); err != nil {
			return nil, err
		}
		jid, err := t.ParseJID(publisher)
		if err != nil {
			return nil, err
		}
		items = append(items, t.Item{
			ID:        id,
			Publisher: jid,
			Data:      data.String,
			CreatedAt: createdAt,
		})
	}
	return items, rows.Err()
}

// Check if the error is MySQL Error 1062: Duplicate entry ... for key ...
func isDupe(err error) bool {
	if err == nil {
		return false
	}
	myerr, ok := err.(*ms.MySQLError)
	return ok && myerr.Number == 1062
}

// Check if the error means the database or one of its tables is absent:
// Error 1049 "Unknown database" or 1146 "Table doesn't exist".
func isMissingDb(err error) bool {
	if err == nil {
		return false
	}
	myerr, ok := err.(*ms.MySQLError)
	return ok && (myerr.Number == 1049 || myerr.Number == 1146)
}

func init() {
	store.RegisterAdapter(&adapter{})
}
