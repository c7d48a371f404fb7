package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"
)

const (
	baseURL = "http://localhost:8080/api"
	userID  = "demo"
)

type Transaction struct {
	AssetType       string    `json:"asset_type"`
	Ticker          string    `json:"ticker"`
	Price           float64   `json:"price"`
	Quantity        float64   `json:"quantity"`
	TransactionDate time.Time `json:"transaction_date"`
}

func main() {
	now := time.Now()
	samples := []Transaction{
		{AssetType: "stock", Ticker: "AAPL", Price: 150.25, Quantity: 10, TransactionDate: now.AddDate(0, 0, -60)},
		{AssetType: "stock", Ticker: "MSFT", Price: 290.10, Quantity: 5, TransactionDate: now.AddDate(0, 0, -45)},
		{AssetType: "stock", Ticker: "AMZN", Price: 3200.50, Quantity: 2, TransactionDate: now.AddDate(0, 0, -30)},
		{AssetType: "stock", Ticker: "GOOGL", Price: 2800.75, Quantity: 3, TransactionDate: now.AddDate(0, 0, -20)},
		{AssetType: "crypto", Ticker: "BTC", Price: 35000.00, Quantity: 0.5, TransactionDate: now.AddDate(0, 0, -90)},
		{AssetType: "crypto", Ticker: "ETH", Price: 2400.00, Quantity: 3, TransactionDate: now.AddDate(0, 0, -75)},
		{AssetType: "crypto", Ticker: "SOL", Price: 150.00, Quantity: 20, TransactionDate: now.AddDate(0, 0, -40)},
		{AssetType: "crypto", Ticker: "ADA", Price: 2.10, Quantity: 1000, TransactionDate: now.AddDate(0, 0, -25)},
	}

	for _, tx := range samples {
		createTransaction(tx)
		fmt.Printf("Created %s %s: %.4f @ %.2f\n", tx.AssetType, tx.Ticker, tx.Quantity, tx.Price)
	}
}

func createTransaction(tx Transaction) {
	body, err := json.Marshal(tx)
	if err != nil {
		log.Fatalf("marshal transaction: %v", err)
	}

	req, err := http.NewRequest(http.MethodPost, baseURL+"/transactions", bytes.NewReader(body))
	if err != nil {
		log.Fatalf("build request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-User-ID", userID)

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		log.Fatalf("create transaction: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		log.Fatalf("create transaction: unexpected status %d", resp.StatusCode)
	}
}
