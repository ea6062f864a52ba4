// Config file handling.

package main

import (
	"encoding/json"
	"os"

	jcr "github.com/tinode/jsonco"

	"github.com/twonds/idavoll/server/logs"
	"github.com/twonds/idavoll/server/pubsub"
)

type configType struct {
	// Address and port to expose runtime stats on.
	Listen string `json:"listen"`
	// Path to mount the expvar handler at, "-" to disable.
	ExpvarPath string `json:"expvar"`
	// Snowflake worker id, 0-1023.
	WorkerID int `json:"worker_id"`

	Pubsub pubsubConfig `json:"pubsub"`

	// Configuration of the store, passed to the selected adapter unparsed.
	StoreConfig json.RawMessage `json:"store_config"`
}

type pubsubConfig struct {
	DenyInstantNodes  bool `json:"deny_instant_nodes"`
	RestrictRetrieval bool `json:"restrict_retrieval"`
}

func (pc pubsubConfig) policy() pubsub.Config {
	config := pubsub.DefaultConfig()
	config.AllowInstantNodes = !pc.DenyInstantNodes
	config.OpenRetrieval = !pc.RestrictRetrieval
	return config
}

// loadConfig reads and parses the JSON-with-comments config file.
func loadConfig(path string) configType {
	var config configType

	file, err := os.Open(path)
	if err != nil {
		logs.Error.Fatalln("Failed to read config file:", err)
	}
	defer file.Close()

	jr := jcr.New(file)
	if err = json.NewDecoder(jr).Decode(&config); err != nil {
		switch jerr := err.(type) {
		case *json.UnmarshalTypeError:
			lnum, cnum, _ := jr.LineAndChar(jerr.Offset)
			logs.Error.Fatalf("Unmarshall error in config file in %s at %d:%d (offset %d bytes): %s",
				jerr.Field, lnum, cnum, jerr.Offset, jerr.Error())
		case *json.SyntaxError:
			lnum, cnum, _ := jr.LineAndChar(jerr.Offset)
			logs.Error.Fatalf("Syntax error in config file at %d:%d (offset %d bytes): %s",
				lnum, cnum, jerr.Offset, jerr.Error())
		default:
			logs.Error.Fatalln("Failed to parse config file:", err)
		}
	}

	return config
}
