//go:build staging

package staging

import (
	"encoding/json"
	"net/http"
	"testing"
)

// TestVersionEndpoint verifies the version endpoint responds
func TestVersionEndpoint(t *testing.T) {
	resp, body := makeRequest(t, "GET", "/version", nil)

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", resp.StatusCode)
	}

	var version map[string]interface{}
	if err := json.Unmarshal(body, &version); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}

	if _, ok := version["version"]; !ok {
		t.Error("Expected 'version' field in response")
	}
}

// TestShopItems verifies the catalog is loaded and served
func TestShopItems(t *testing.T) {
	resp, body := makeRequest(t, "GET", "/api/v1/shop/items", nil)

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Expected status 200, got %d. Body: %s", resp.StatusCode, string(body))
	}

	var result struct {
		Items []struct {
			ItemID string `json:"item_id"`
			Price  int    `json:"price"`
		} `json:"items"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}

	if len(result.Items) == 0 {
		t.Error("Expected at least one item in the shop catalog")
	}
}
