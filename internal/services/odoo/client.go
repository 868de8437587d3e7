package odoo

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/kolo/xmlrpc"
)

// Client represents an Odoo XML-RPC client
type Client struct {
	URL        string
	Database   string
	Username   string
	Password   string
	Uid        int
	CommonURL  string
	ObjectURL  string
	HttpClient *http.Client
}

// NewClient creates a new Odoo client
func NewClient(url, db, username, password string) *Client {
	return &Client{
		URL:        url,
		Database:   db,
		Username:   username,
		Password:   password,
		CommonURL:  fmt.Sprintf("%s/xmlrpc/2/common", url),
		ObjectURL:  fmt.Sprintf("%s/xmlrpc/2/object", url),
		HttpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// Authenticate authenticates with Odoo and returns the user ID
func (c *Client) Authenticate() (int, error) {
	client, err := xmlrpc.NewClient(c.CommonURL, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to create XML-RPC client: %w", err)
	}
	defer client.Close()

	args := []interface{}{c.Database, c.Username, c.Password, make([]interface{}, 0)}
	var uid int
	if err := client.Call("authenticate", args, &uid); err != nil {
		return 0, fmt.Errorf("authentication failed: %w", err)
	}

	c.Uid = uid
	return uid, nil
}

// SearchRead performs a generic search_read operation
// model: Odoo model name (e.g., "stock.picking")
// domain: search criteria
// fields: fields to fetch
// limit: max records
// offset: offset for pagination
// result: pointer to slice of structs with xmlrpc tags
func (c *Client) SearchRead(model string, domain []interface{}, fields []string, limit, offset int, result interface{}) error {
	client, err := xmlrpc.NewClient(c.ObjectURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create XML-RPC client: %w", err)
	}
	defer client.Close()

	args := []interface{}{
		c.Database,
		c.Uid,
		c.Password,
		model,
		"search_read",
		[]interface{}{domain},
		map[string]interface{}{
			"fields": fields,
			"limit":  limit,
			"offset": offset,
		},
	}

	// First, get raw result
	var rawResult []map[string]interface{}
	if err := client.Call("execute_kw", args, &rawResult); err != nil {
		return fmt.Errorf("failed to execute search_read: %w", err)
	}

	// Convert raw maps to target struct using JSON marshaling
	jsonData, err := json.Marshal(rawResult)
	if err != nil {
		return fmt.Errorf("failed to marshal raw result: %w", err)
	}

	if err := json.Unmarshal(jsonData, result); err != nil {
		return fmt.Errorf("failed to unmarshal into target: %w", err)
	}

	return nil
}

// Search performs a generic search operation and returns IDs
func (c *Client) Search(model string, domain []interface{}, limit, offset int) ([]int64, error) {
	client, err := xmlrpc.NewClient(c.ObjectURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create XML-RPC client: %w", err)
	}
	defer client.Close()

	args := []interface{}{
		c.Database,
		c.Uid,
		c.Password,
		model,
		"search",
		[]interface{}{domain},
		map[string]interface{}{
			"limit":  limit,
			"offset": offset,
		},
	}

	var ids []int64
	if err := client.Call("execute_kw", args, &ids); err != nil {
		return nil, fmt.Errorf("failed to execute search: %w", err)
	}

	return ids, nil
}

// CallMethod invokes an arbitrary model method on a set of record IDs,
// e.g. CallMethod("stock.picking", "action_confirm", ids).
// The result is discarded; Odoo window-action return values carry no data
// this side cares about.
func (c *Client) CallMethod(model, method string, ids []int64) error {
	client, err := xmlrpc.NewClient(c.ObjectURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create XML-RPC client: %w", err)
	}
	defer client.Close()

	args := []interface{}{
		c.Database,
		c.Uid,
		c.Password,
		model,
		method,
		[]interface{}{ids},
	}

	var result interface{}
	if err := client.Call("execute_kw", args, &result); err != nil {
		return fmt.Errorf("failed to execute %s on %s: %w", method, model, err)
	}

	return nil
}
