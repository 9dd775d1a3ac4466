// Command mockstore runs a small fake WooCommerce API for exercising the
// exporter locally without touching a real store:
//
//	go run ./scripts/mockstore &
//	WC_BASE_URL=http://localhost:8089 WC_CONSUMER_KEY=ck WC_CONSUMER_SECRET=cs \
//	  go run ./cmd/export
package main

import (
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"
)

const ordersPage1 = `[
	{
		"id": 42,
		"date_created": "2025-03-01T10:00:00",
		"customer_id": 7,
		"status": "completed",
		"shipping_lines": [{"total": "7.50"}, {"total": "5.00"}],
		"tax_lines": [{"total": "3.00"}],
		"line_items": [
			{"sku": "SKU-A", "quantity": 2, "total": "40.00", "product_id": 100},
			{"sku": "SKU-B", "quantity": 1, "total": "15.00", "product_id": 200}
		]
	},
	{
		"id": 43,
		"date_created": "2025-03-02T09:30:00",
		"customer_id": 0,
		"status": "processing",
		"shipping_lines": [],
		"tax_lines": [],
		"line_items": []
	}
]`

var products = map[int64]string{
	100: `{"id": 100, "meta_data": [{"key": "_wc_cog_cost", "value": "5.00"}]}`,
	200: `{"id": 200, "meta_data": []}`,
}

func main() {
	mux := http.NewServeMux()

	mux.HandleFunc("/wp-json/wc/v3/orders", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if r.URL.Query().Get("page") == "1" {
			fmt.Fprint(w, ordersPage1)
			return
		}
		fmt.Fprint(w, "[]")
	})

	mux.HandleFunc("/wp-json/wc/v3/products/", func(w http.ResponseWriter, r *http.Request) {
		idStr := strings.TrimPrefix(r.URL.Path, "/wp-json/wc/v3/products/")
		id, err := strconv.ParseInt(idStr, 10, 64)
		if err != nil {
			http.Error(w, "invalid product id", http.StatusBadRequest)
			return
		}
		body, ok := products[id]
		if !ok {
			http.Error(w, "product not found", http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, body)
	})

	log.Println("mock store listening on :8089")
	log.Fatal(http.ListenAndServe(":8089", mux))
}
