package console

import "time"

// Configuration of consoled.
//
// To get `ConsoleConfig` instance, use `Unmarshal` or `LoadConsoleConfig`.
type ConsoleConfig struct {
	port          int32
	database      string
	session       *SessionConfig
	kube          *KubeConfig
	devbox        *DevboxConfig
	objectStorage *ObjectStorageConfig
	faceID        *FaceIDConfig
	feishu        *FeishuConfig
	billing       *BillingConfig
}

func (c *ConsoleConfig) Port() int32 {
	return c.port
}

// Connection string for database.
func (c *ConsoleConfig) Database() string {
	return c.database
}

func (c *ConsoleConfig) Session() *SessionConfig {
	return c.session
}

func (c *ConsoleConfig) Kube() *KubeConfig {
	return c.kube
}

func (c *ConsoleConfig) Devbox() *DevboxConfig {
	return c.devbox
}

// Object storage for real-name authentication evidences.
//
// nil when it is not configured.
func (c *ConsoleConfig) ObjectStorage() *ObjectStorageConfig {
	return c.objectStorage
}

// nil when it is not configured.
func (c *ConsoleConfig) FaceID() *FaceIDConfig {
	return c.faceID
}

// nil when it is not configured.
func (c *ConsoleConfig) Feishu() *FeishuConfig {
	return c.feishu
}

func (c *ConsoleConfig) Billing() *BillingConfig {
	return c.billing
}

type SessionConfig struct {
	secret []byte
	ttl    time.Duration
}

// HS256 key for session tokens.
func (s *SessionConfig) Secret() []byte {
	return s.secret
}

// lifetime of tokens issued by this service. default = 24h
func (s *SessionConfig) TTL() time.Duration {
	return s.ttl
}

type KubeConfig struct {
	kubeconfig    string
	instanceLabel string
	refresh       string
}

// path to kubeconfig for the service itself. Empty means "search defaults".
func (k *KubeConfig) Kubeconfig() string {
	return k.kubeconfig
}

// label key grouping resources into an instance. default = "cloud.console.io/instance"
func (k *KubeConfig) InstanceLabel() string {
	return k.instanceLabel
}

// recurring policy of cache refreshers. default = "forever:30s"
func (k *KubeConfig) Refresh() string {
	return k.refresh
}

type DevboxConfig struct {
	registry     string
	pollInterval time.Duration
	pollTimeout  time.Duration
}

// image registry host where devbox releases are pushed.
func (d *DevboxConfig) Registry() string {
	return d.registry
}

// default = 3s
func (d *DevboxConfig) PollInterval() time.Duration {
	return d.pollInterval
}

// default = 5m
func (d *DevboxConfig) PollTimeout() time.Duration {
	return d.pollTimeout
}

type ObjectStorageConfig struct {
	endpoint  string
	accessKey string
	secretKey string
	bucket    string
	secure    bool
}

func (o *ObjectStorageConfig) Endpoint() string  { return o.endpoint }
func (o *ObjectStorageConfig) AccessKey() string { return o.accessKey }
func (o *ObjectStorageConfig) SecretKey() string { return o.secretKey }
func (o *ObjectStorageConfig) Bucket() string    { return o.bucket }
func (o *ObjectStorageConfig) Secure() bool      { return o.secure }

type FaceIDConfig struct {
	secretID  string
	secretKey string
	region    string
	ruleID    string
}

func (f *FaceIDConfig) SecretID() string  { return f.secretID }
func (f *FaceIDConfig) SecretKey() string { return f.secretKey }
func (f *FaceIDConfig) Region() string    { return f.region }
func (f *FaceIDConfig) RuleID() string    { return f.ruleID }

type FeishuConfig struct {
	webhook string
}

// incoming webhook URL of the bot.
func (f *FeishuConfig) Webhook() string {
	return f.webhook
}

type BillingConfig struct {
	endpoint       string
	regionEndpoint string
}

// account service of the local region.
func (b *BillingConfig) Endpoint() string {
	return b.endpoint
}

// account service URL template for other regions.
// "{domain}" is replaced with the domain of the region.
func (b *BillingConfig) RegionEndpoint() string {
	return b.regionEndpoint
}
