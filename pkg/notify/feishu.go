// Package notify sends notifications to operators.
package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/kubeconsole/console/pkg/domain"
)

// Feishu posts messages to an incoming webhook of a Feishu bot.
type Feishu struct {
	webhook string
	client  *retryablehttp.Client
}

type Option func(*retryablehttp.Client)

func WithRetry(max int, waitMin, waitMax time.Duration) Option {
	return func(c *retryablehttp.Client) {
		c.RetryMax = max
		c.RetryWaitMin = waitMin
		c.RetryWaitMax = waitMax
	}
}

func WithHTTPClient(hc *http.Client) Option {
	return func(c *retryablehttp.Client) {
		c.HTTPClient = hc
	}
}

func NewFeishu(webhook string, options ...Option) *Feishu {
	client := retryablehttp.NewClient()
	client.Logger = nil
	client.RetryMax = 3
	client.RetryWaitMin = 200 * time.Millisecond
	client.RetryWaitMax = 2 * time.Second
	for _, opt := range options {
		opt(client)
	}
	return &Feishu{webhook: webhook, client: client}
}

type text struct {
	Tag     string `json:"tag"`
	Content string `json:"content"`
}

type card struct {
	Header struct {
		Template string `json:"template"`
		Title    text   `json:"title"`
	} `json:"header"`
	Elements []struct {
		Tag  string `json:"tag"`
		Text text   `json:"text"`
	} `json:"elements"`
}

type message struct {
	MsgType string `json:"msg_type"`
	Card    card   `json:"card"`
}

type reply struct {
	Code int    `json:"code"`
	Msg  string `json:"msg"`
}

func invoiceCard(inv domain.Invoice) card {
	c := card{}
	c.Header.Template = "blue"
	c.Header.Title = text{Tag: "plain_text", Content: "New invoice application"}

	lines := []string{
		fmt.Sprintf("**Invoice**: %s", inv.ID),
		fmt.Sprintf("**User**: %s", inv.UserUID),
		fmt.Sprintf("**Title**: %s", inv.Title),
		fmt.Sprintf("**Tax ID**: %s", inv.TaxID),
		fmt.Sprintf("**Email**: %s", inv.Email),
		fmt.Sprintf("**Amount**: %d", inv.TotalAmount),
	}
	if inv.Remark != "" {
		lines = append(lines, fmt.Sprintf("**Remark**: %s", inv.Remark))
	}
	c.Elements = append(c.Elements, struct {
		Tag  string `json:"tag"`
		Text text   `json:"text"`
	}{Tag: "div", Text: text{Tag: "lark_md", Content: strings.Join(lines, "\n")}})
	return c
}

// SendInvoice tells operators an invoice is applied.
//
// 5xx responses and connection errors are retried.
func (f *Feishu) SendInvoice(ctx context.Context, inv domain.Invoice) error {
	return f.post(ctx, message{MsgType: "interactive", Card: invoiceCard(inv)})
}

func (f *Feishu) post(ctx context.Context, msg message) error {
	body, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodPost, f.webhook, body)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := f.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("feishu: status %d: %s", resp.StatusCode, payload)
	}
	r := reply{}
	if err := json.Unmarshal(payload, &r); err != nil {
		return fmt.Errorf("feishu: unexpected reply: %w", err)
	}
	if r.Code != 0 {
		return fmt.Errorf("feishu: code %d: %s", r.Code, r.Msg)
	}
	return nil
}
