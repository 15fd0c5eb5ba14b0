// Package sharepoint is the Microsoft Graph client for the remote
// document store holding the payer master files. The pipeline depends
// only on listing folder children and downloading files; authentication
// and id resolution are handled once at construction.
package sharepoint

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/sirupsen/logrus"
	"golang.org/x/oauth2/clientcredentials"

	"github.com/nypeach/ps1c-d-analytics/internal/models"
)

const graphBaseURL = "https://graph.microsoft.com/v1.0"

var log = logrus.New()

// SetLogger sets a custom logger for this package
func SetLogger(logger *logrus.Logger) {
	if logger != nil {
		log = logger
	}
}

// Config holds the application registration and site coordinates needed
// to reach the document store.
type Config struct {
	TenantID     string
	ClientID     string
	ClientSecret string
	SiteHostname string
	SitePath     string
}

// Client is an authenticated handle to the site drive. It owns the
// token lifecycle internally; callers only see list and download
// operations.
type Client struct {
	httpClient *http.Client
	baseURL    string
	siteID     string
	driveID    string
}

// NewClient authenticates with the client-credentials flow and resolves
// the site and drive ids for the configured site.
func NewClient(ctx context.Context, cfg Config) (*Client, error) {
	cc := clientcredentials.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		TokenURL:     fmt.Sprintf("https://login.microsoftonline.com/%s/oauth2/v2.0/token", cfg.TenantID),
		Scopes:       []string{"https://graph.microsoft.com/.default"},
	}

	c := &Client{
		httpClient: cc.Client(ctx),
		baseURL:    graphBaseURL,
	}

	if err := c.resolveSite(ctx, cfg.SiteHostname, cfg.SitePath); err != nil {
		return nil, fmt.Errorf("authentication succeeded but site lookup failed: %w", err)
	}
	if err := c.resolveDrive(ctx); err != nil {
		return nil, fmt.Errorf("drive lookup failed: %w", err)
	}

	log.Infof("Connected to site drive %s", c.driveID)
	return c, nil
}

// newClient builds a Client on an arbitrary HTTP client and base URL.
// Used by tests against a stub Graph server.
func newClient(httpClient *http.Client, baseURL string) *Client {
	return &Client{httpClient: httpClient, baseURL: baseURL}
}

func (c *Client) resolveSite(ctx context.Context, hostname, sitePath string) error {
	var site struct {
		ID string `json:"id"`
	}
	url := fmt.Sprintf("%s/sites/%s:/sites/%s", c.baseURL, hostname, sitePath)
	if err := c.getJSON(ctx, url, &site); err != nil {
		return err
	}
	c.siteID = site.ID
	log.Debugf("Site ID retrieved: %s", c.siteID)
	return nil
}

func (c *Client) resolveDrive(ctx context.Context) error {
	var drive struct {
		ID string `json:"id"`
	}
	url := fmt.Sprintf("%s/sites/%s/drive", c.baseURL, c.siteID)
	if err := c.getJSON(ctx, url, &drive); err != nil {
		return err
	}
	c.driveID = drive.ID
	log.Debugf("Drive ID retrieved: %s", c.driveID)
	return nil
}

// listResponse is the Graph collection envelope.
type listResponse struct {
	Value []models.RemoteFile `json:"value"`
}

// ListRootDocuments lists the items at the root of the Documents
// library.
func (c *Client) ListRootDocuments(ctx context.Context) ([]models.RemoteFile, error) {
	var resp listResponse
	url := fmt.Sprintf("%s/drives/%s/root/children", c.baseURL, c.driveID)
	if err := c.getJSON(ctx, url, &resp); err != nil {
		return nil, fmt.Errorf("listing root documents: %w", err)
	}
	return resp.Value, nil
}

// ListChildren lists the items inside a folder.
func (c *Client) ListChildren(ctx context.Context, folderID string) ([]models.RemoteFile, error) {
	var resp listResponse
	url := fmt.Sprintf("%s/drives/%s/items/%s/children", c.baseURL, c.driveID, folderID)
	if err := c.getJSON(ctx, url, &resp); err != nil {
		return nil, fmt.Errorf("listing children of %s: %w", folderID, err)
	}
	return resp.Value, nil
}

// Subfolder finds a folder by name among a parent's children. Returns
// nil when no folder of that name exists.
func (c *Client) Subfolder(ctx context.Context, parentID, name string) (*models.RemoteFile, error) {
	children, err := c.ListChildren(ctx, parentID)
	if err != nil {
		return nil, err
	}
	for i := range children {
		if children[i].IsFolder() && children[i].Name == name {
			return &children[i], nil
		}
	}
	return nil, nil
}

// Download fetches a file's content by id.
func (c *Client) Download(ctx context.Context, fileID string) ([]byte, error) {
	url := fmt.Sprintf("%s/drives/%s/items/%s/content", c.baseURL, c.driveID, fileID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("downloading %s: %w", fileID, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("downloading %s: unexpected status %s", fileID, resp.Status)
	}
	return io.ReadAll(resp.Body)
}

func (c *Client) getJSON(ctx context.Context, url string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("GET %s: unexpected status %s", url, resp.Status)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
