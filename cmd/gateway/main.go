// Command gateway is a development signing gateway. It accepts broadcast
// requests from the keyward chain client and answers with synthetic
// receipts, so the full request path can be exercised without a network.
package main

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"sync"

	"keyward/internal/domain"
)

type receiptCounter struct {
	mu  sync.Mutex
	seq uint32
}

func (c *receiptCounter) next() domain.Receipt {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.seq++
	return domain.Receipt{
		ID:       fmt.Sprintf("dev-%08x", c.seq),
		BlockNum: 1000 + c.seq,
		TrxNum:   c.seq % 16,
	}
}

func main() {
	counter := &receiptCounter{}

	http.HandleFunc("/broadcast", func(w http.ResponseWriter, r *http.Request) {
		defer r.Body.Close()
		var req struct {
			Operation      domain.Operation `json:"operation"`
			AuthorizingKey string           `json:"authorizing_key"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, err.Error(), 400)
			return
		}
		if req.Operation.Account == "" || req.AuthorizingKey == "" {
			http.Error(w, "missing operation or authorizing key", 400)
			return
		}
		fmt.Println("Broadcast", req.Operation.Type, "for", req.Operation.Account)
		_ = json.NewEncoder(w).Encode(counter.next())
	})

	log.Println("gateway listening on :8091")
	log.Fatal(http.ListenAndServe(":8091", nil))
}
