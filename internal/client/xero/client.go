// Package xero is the client for the accounting API: bearer-authenticated
// record fetches, the connections probe used for token validation, and the
// OAuth refresh grant.
package xero

import (
	"context"
	"io"
	"net/url"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	httpclient "xero-etl/internal/client/http"
	"xero-etl/internal/token"
)

// Config carries the endpoints and client credentials, all injected from the
// environment; nothing here is hard-coded.
type Config struct {
	// APIBaseURL is the root of the authenticated API, e.g. https://api.xero.com.
	APIBaseURL string
	// AccountingBaseURL is the accounting endpoint root,
	// e.g. https://api.xero.com/api.xro/2.0.
	AccountingBaseURL string
	// TokenURL is the OAuth token endpoint.
	TokenURL string
	// ClientID and ClientSecret authenticate the refresh grant via basic auth.
	ClientID     string
	ClientSecret string
}

// Client talks to the accounting API over the shared retrying HTTP client.
type Client struct {
	http   *httpclient.HTTPClient
	cfg    Config
	logger *zap.Logger
}

// NewClient creates an API client. Pass a nil httpClient to use defaults.
func NewClient(cfg Config, httpClient *httpclient.HTTPClient, logger *zap.Logger) *Client {
	if httpClient == nil {
		httpClient = httpclient.NewHTTPClient()
	}
	return &Client{http: httpClient, cfg: cfg, logger: logger}
}

// CheckConnections performs the lightweight authenticated probe used to
// validate an access token. Any 2xx response means the token is good.
func (c *Client) CheckConnections(ctx context.Context, accessToken string) error {
	resp, err := c.http.Get(ctx, c.cfg.APIBaseURL+"/connections",
		httpclient.WithBearerToken(accessToken))
	if err != nil {
		return errors.Wrap(err, "connections probe failed")
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	resp.Body.Close()
	return nil
}

// RefreshToken exchanges the stored refresh token for a new access/refresh
// pair via the OAuth refresh grant.
func (c *Client) RefreshToken(ctx context.Context, refreshToken string) (*token.TokenSet, error) {
	form := url.Values{
		"grant_type":    {"refresh_token"},
		"refresh_token": {refreshToken},
	}

	resp, err := c.http.PostForm(ctx, c.cfg.TokenURL, form,
		httpclient.WithBasicAuth(c.cfg.ClientID, c.cfg.ClientSecret))
	if err != nil {
		return nil, errors.Wrap(err, "refresh grant failed")
	}

	var body tokenResponse
	if err := c.http.ProcessJSONResponse(resp, &body); err != nil {
		return nil, errors.Wrap(err, "failed to decode token response")
	}
	if body.AccessToken == "" || body.RefreshToken == "" {
		return nil, errors.New("token response is missing access or refresh token")
	}

	c.logger.Info("Tokens refreshed successfully")
	return &token.TokenSet{
		AccessToken:  body.AccessToken,
		RefreshToken: body.RefreshToken,
	}, nil
}

// GetInvoice fetches the canonical invoice record scoped by tenant.
func (c *Client) GetInvoice(ctx context.Context, tenantID, invoiceID, accessToken string) (*Invoice, error) {
	resp, err := c.http.Get(ctx, c.cfg.AccountingBaseURL+"/Invoices/"+url.PathEscape(invoiceID),
		httpclient.WithBearerToken(accessToken),
		httpclient.WithHeader("Xero-Tenant-Id", tenantID))
	if err != nil {
		return nil, errors.Wrapf(err, "failed to fetch invoice %s", invoiceID)
	}

	var envelope invoicesEnvelope
	if err := c.http.ProcessJSONResponse(resp, &envelope); err != nil {
		return nil, errors.Wrapf(err, "failed to decode invoice %s", invoiceID)
	}
	if len(envelope.Invoices) == 0 {
		return nil, errors.Errorf("invoice %s not present in API response", invoiceID)
	}

	invoice := envelope.Invoices[0]
	c.logger.Debug("Fetched invoice from API",
		zap.String("invoice_id", invoice.InvoiceID),
		zap.String("type", invoice.Type),
		zap.String("tenant_id", tenantID))
	return &invoice, nil
}
