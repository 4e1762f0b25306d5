// Package billing is a client of account services of regions.
package billing

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/kubeconsole/console/pkg/domain"
	"golang.org/x/sync/errgroup"
)

const accountPath = "/account/v1alpha1/account"

var ErrUnauthorized = errors.New("account service rejected the token")

type Client struct {
	http *retryablehttp.Client
}

type Option func(*retryablehttp.Client)

func WithRetry(max int, waitMin, waitMax time.Duration) Option {
	return func(c *retryablehttp.Client) {
		c.RetryMax = max
		c.RetryWaitMin = waitMin
		c.RetryWaitMax = waitMax
	}
}

func New(options ...Option) *Client {
	client := retryablehttp.NewClient()
	client.Logger = nil
	client.RetryMax = 2
	client.RetryWaitMin = 100 * time.Millisecond
	client.RetryWaitMax = time.Second
	for _, opt := range options {
		opt(client)
	}
	return &Client{http: client}
}

type accountReply struct {
	Account struct {
		UserUID          string `json:"userUID"`
		Balance          int64  `json:"balance"`
		DeductionBalance int64  `json:"deductionBalance"`
	} `json:"account"`
}

// GetBalance queries the account of the token's owner.
//
// endpoint is the base URL of the account service.
func (c *Client) GetBalance(ctx context.Context, endpoint, token string) (domain.Account, error) {
	req, err := retryablehttp.NewRequestWithContext(
		ctx, http.MethodGet, strings.TrimSuffix(endpoint, "/")+accountPath, nil,
	)
	if err != nil {
		return domain.Account{}, err
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.http.Do(req)
	if err != nil {
		return domain.Account{}, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return domain.Account{}, err
	}
	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusUnauthorized, http.StatusForbidden:
		return domain.Account{}, fmt.Errorf("%w: %s", ErrUnauthorized, body)
	default:
		return domain.Account{}, fmt.Errorf("account service: status %d: %s", resp.StatusCode, body)
	}

	reply := accountReply{}
	if err := json.Unmarshal(body, &reply); err != nil {
		return domain.Account{}, fmt.Errorf("account service: unexpected reply: %w", err)
	}
	return domain.Account{
		Balance:          reply.Account.Balance,
		DeductionBalance: reply.Account.DeductionBalance,
	}, nil
}

// RegionEndpoint fills "{domain}" in the template with the region's domain.
func RegionEndpoint(template string, region domain.Region) string {
	return strings.ReplaceAll(template, "{domain}", region.Domain)
}

// Endpoints of account services.
type Endpoints struct {
	// account service of the region where the console runs.
	Local string

	// URL template for other regions. See RegionEndpoint.
	Template string
}

// For returns the endpoint of the region.
//
// localRegionUID is the uid of the region where the console runs.
func (e Endpoints) For(region domain.Region, localRegionUID string) string {
	if e.Local != "" && region.UID.String() == localRegionUID {
		return e.Local
	}
	return RegionEndpoint(e.Template, region)
}

type RegionBalance struct {
	Region  domain.Region
	Account domain.Account
}

// CheckAllRegions queries balances of all regions in parallel.
//
// Results are in the order of regions. The first failure cancels the others.
func (c *Client) CheckAllRegions(
	ctx context.Context, regions []domain.Region, endpoints Endpoints, localRegionUID, token string,
) ([]RegionBalance, error) {
	results := make([]RegionBalance, len(regions))
	eg, egctx := errgroup.WithContext(ctx)
	for n, region := range regions {
		n, region := n, region
		eg.Go(func() error {
			account, err := c.GetBalance(egctx, endpoints.For(region, localRegionUID), token)
			if err != nil {
				return fmt.Errorf("region %s: %w", region.DisplayName, err)
			}
			results[n] = RegionBalance{Region: region, Account: account}
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// AnyOverdue reports whether some region is overdrawn.
func AnyOverdue(balances []RegionBalance) bool {
	for _, b := range balances {
		if b.Account.Overdue() {
			return true
		}
	}
	return false
}
