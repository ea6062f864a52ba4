// Setup & initialization of the pub/sub service backend.

package main

import (
	"flag"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"

	_ "github.com/twonds/idavoll/server/db/memory"
	"github.com/twonds/idavoll/server/logs"
	"github.com/twonds/idavoll/server/pubsub"
	"github.com/twonds/idavoll/server/store"
)

// currentVersion is the reported version of the service.
const currentVersion = "1.0"

var globals struct {
	backend     *pubsub.Backend
	statsUpdate chan *varUpdate
}

func main() {
	configfile := flag.String("config", "./idavoll.conf", "Path to config file.")
	listenOn := flag.String("listen", "", "Override address and port to listen on.")
	initDb := flag.Bool("init_db", false, "Initialize the database and exit.")
	reset := flag.Bool("reset_db", false, "Drop an existing database before initializing.")
	flag.Parse()

	logs.Info.Printf("Server v%s pub/sub backend starting", currentVersion)

	config := loadConfig(*configfile)
	if *listenOn != "" {
		config.Listen = *listenOn
	}

	err := store.Store.Open(config.WorkerID, config.StoreConfig)
	if err != nil {
		if *initDb || *reset || strings.Contains(err.Error(), "Database not initialized") {
			logs.Info.Println("Initializing the database")
			if err = store.Store.InitDb(config.StoreConfig, *reset); err != nil {
				logs.Error.Fatalln("Failed to initialize the database:", err)
			}
		} else {
			logs.Error.Fatalln("Failed to connect to the database:", err)
		}
	} else if *reset {
		logs.Info.Println("Resetting the database")
		if err = store.Store.InitDb(config.StoreConfig, true); err != nil {
			logs.Error.Fatalln("Failed to reset the database:", err)
		}
	}
	defer store.Store.Close()

	logs.Info.Println("Database adapter:", store.Store.GetAdapterName(),
		"version:", store.Store.GetAdapterVersion())

	if *initDb {
		logs.Info.Println("Database initialized, exiting")
		return
	}

	globals.backend = pubsub.NewBackend(config.Pubsub.policy())

	mux := http.NewServeMux()
	statsInit(mux, config.ExpvarPath)
	statsRegisterInt("PublishedTotal")
	statsRegisterInt("RetractedTotal")
	statsRegisterInt("NodesDeletedTotal")
	statsRegisterDbStats(store.Store.DbStats())

	globals.backend.RegisterListener(func(evt pubsub.Event) {
		switch evt.Kind {
		case pubsub.EventPublished:
			statsInc("PublishedTotal", len(evt.Items))
		case pubsub.EventRetracted:
			statsInc("RetractedTotal", len(evt.ItemIDs))
		case pubsub.EventDeleted:
			statsInc("NodesDeletedTotal", 1)
		}
		logs.Info.Println("event:", evt.Kind, "node:", evt.Node)
	})

	if config.Listen != "" {
		go func() {
			if err := http.ListenAndServe(config.Listen, mux); err != nil {
				logs.Error.Fatalln("Failed to serve stats:", err)
			}
		}()
		logs.Info.Println("Listening on", config.Listen)
	}

	signalled := make(chan os.Signal, 1)
	signal.Notify(signalled, syscall.SIGINT, syscall.SIGTERM)
	sig := <-signalled

	logs.Info.Println("Shutting down on signal:", sig)
	statsShutdown()
}
