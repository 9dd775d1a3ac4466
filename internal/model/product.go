package model

import "encoding/json"

// Product represents a catalogue product fetched transiently for cost
// enrichment. Only the metadata collection is consumed.
type Product struct {
	ID       int64      `json:"id"`
	MetaData []MetaData `json:"meta_data"`
}

// MetaData is one key/value entry in a product's metadata collection. The
// value is kept raw because the store imposes no schema on it.
type MetaData struct {
	Key   string          `json:"key"`
	Value json.RawMessage `json:"value"`
}
