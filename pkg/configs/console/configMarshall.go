package console

import (
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"
)

type Marshalled[S any] interface {
	trySeal(string) S
}

// seal marshalled object.
//
// this function CAN CAUSE PANIC if misconfiguration is found.
func TrySeal[S any](conf Marshalled[S]) S {
	return conf.trySeal("(root)")
}

type ConsoleConfigMarshall struct {
	Port          int32                        `yaml:"port"`
	Database      string                       `yaml:"database"`
	Session       *SessionConfigMarshall       `yaml:"session"`
	Kube          *KubeConfigMarshall          `yaml:"kube,omitempty"`
	Devbox        *DevboxConfigMarshall        `yaml:"devbox"`
	ObjectStorage *ObjectStorageConfigMarshall `yaml:"objectStorage,omitempty"`
	FaceID        *FaceIDConfigMarshall        `yaml:"faceId,omitempty"`
	Feishu        *FeishuConfigMarshall        `yaml:"feishu,omitempty"`
	Billing       *BillingConfigMarshall       `yaml:"billing"`
}

var _ Marshalled[*ConsoleConfig] = &ConsoleConfigMarshall{}

func (c *ConsoleConfigMarshall) trySeal(path string) *ConsoleConfig {
	kube := c.Kube
	if kube == nil {
		kube = &KubeConfigMarshall{}
	}

	conf := &ConsoleConfig{
		port:     required(c.Port, path+".port"),
		database: required(fromEnv(c.Database), path+".database"),
		session:  nonnil(c.Session, path+".session").trySeal(path + ".session"),
		kube:     kube.trySeal(path + ".kube"),
		devbox:   nonnil(c.Devbox, path+".devbox").trySeal(path + ".devbox"),
		billing:  nonnil(c.Billing, path+".billing").trySeal(path + ".billing"),
	}
	if c.ObjectStorage != nil {
		conf.objectStorage = c.ObjectStorage.trySeal(path + ".objectStorage")
	}
	if c.FaceID != nil {
		conf.faceID = c.FaceID.trySeal(path + ".faceId")
	}
	if c.Feishu != nil {
		conf.feishu = c.Feishu.trySeal(path + ".feishu")
	}
	return conf
}

type SessionConfigMarshall struct {
	Secret string `yaml:"secret"`
	TTL    string `yaml:"ttl,omitempty"`
}

func (s *SessionConfigMarshall) trySeal(path string) *SessionConfig {
	return &SessionConfig{
		secret: []byte(required(fromEnv(s.Secret), path+".secret")),
		ttl:    duration(s.TTL, 24*time.Hour, path+".ttl"),
	}
}

type KubeConfigMarshall struct {
	Kubeconfig    string `yaml:"kubeconfig,omitempty"`
	InstanceLabel string `yaml:"instanceLabel,omitempty"`
	Refresh       string `yaml:"refresh,omitempty"`
}

func (k *KubeConfigMarshall) trySeal(string) *KubeConfig {
	label := k.InstanceLabel
	if label == "" {
		label = "cloud.console.io/instance"
	}
	refresh := k.Refresh
	if refresh == "" {
		refresh = "forever:30s"
	}
	return &KubeConfig{
		kubeconfig:    k.Kubeconfig,
		instanceLabel: label,
		refresh:       refresh,
	}
}

type DevboxConfigMarshall struct {
	Registry     string `yaml:"registry"`
	PollInterval string `yaml:"pollInterval,omitempty"`
	PollTimeout  string `yaml:"pollTimeout,omitempty"`
}

func (d *DevboxConfigMarshall) trySeal(path string) *DevboxConfig {
	return &DevboxConfig{
		registry:     required(d.Registry, path+".registry"),
		pollInterval: duration(d.PollInterval, 3*time.Second, path+".pollInterval"),
		pollTimeout:  duration(d.PollTimeout, 5*time.Minute, path+".pollTimeout"),
	}
}

type ObjectStorageConfigMarshall struct {
	Endpoint  string `yaml:"endpoint"`
	AccessKey string `yaml:"accessKey"`
	SecretKey string `yaml:"secretKey"`
	Bucket    string `yaml:"bucket"`
	Secure    bool   `yaml:"secure,omitempty"`
}

func (o *ObjectStorageConfigMarshall) trySeal(path string) *ObjectStorageConfig {
	return &ObjectStorageConfig{
		endpoint:  required(o.Endpoint, path+".endpoint"),
		accessKey: required(fromEnv(o.AccessKey), path+".accessKey"),
		secretKey: required(fromEnv(o.SecretKey), path+".secretKey"),
		bucket:    required(o.Bucket, path+".bucket"),
		secure:    o.Secure,
	}
}

type FaceIDConfigMarshall struct {
	SecretID  string `yaml:"secretId"`
	SecretKey string `yaml:"secretKey"`
	Region    string `yaml:"region,omitempty"`
	RuleID    string `yaml:"ruleId"`
}

func (f *FaceIDConfigMarshall) trySeal(path string) *FaceIDConfig {
	region := f.Region
	if region == "" {
		region = "ap-guangzhou"
	}
	return &FaceIDConfig{
		secretID:  required(fromEnv(f.SecretID), path+".secretId"),
		secretKey: required(fromEnv(f.SecretKey), path+".secretKey"),
		region:    region,
		ruleID:    required(f.RuleID, path+".ruleId"),
	}
}

type FeishuConfigMarshall struct {
	Webhook string `yaml:"webhook"`
}

func (f *FeishuConfigMarshall) trySeal(path string) *FeishuConfig {
	return &FeishuConfig{webhook: validURL(fromEnv(f.Webhook), path+".webhook")}
}

type BillingConfigMarshall struct {
	Endpoint       string `yaml:"endpoint"`
	RegionEndpoint string `yaml:"regionEndpoint,omitempty"`
}

func (b *BillingConfigMarshall) trySeal(path string) *BillingConfig {
	regionEndpoint := b.RegionEndpoint
	if regionEndpoint == "" {
		regionEndpoint = "https://account-api.{domain}"
	}
	if !strings.Contains(regionEndpoint, "{domain}") {
		panic(path + `.regionEndpoint should contain "{domain}"`)
	}
	return &BillingConfig{
		endpoint:       validURL(b.Endpoint, path+".endpoint"),
		regionEndpoint: regionEndpoint,
	}
}

// values formed "env:NAME" are replaced with the environment variable NAME.
func fromEnv(v string) string {
	if name, ok := strings.CutPrefix(v, "env:"); ok {
		return os.Getenv(name)
	}
	return v
}

func duration(v string, def time.Duration, path string) time.Duration {
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		panic(fmt.Errorf("%s can not be parsed: %w", path, err))
	}
	return d
}

func validURL(v string, path string) string {
	u, err := url.Parse(required(v, path))
	if err != nil || u.Scheme == "" || u.Host == "" {
		panic(fmt.Errorf("%s is not valid URL: %s", path, v))
	}
	return v
}

func nonnil[T any](v *T, path string) *T {
	if v == nil {
		panic(path + " is required")
	}
	return v
}

func required[T comparable](v T, path string) T {
	if v == *new(T) {
		panic(path + " is required")
	}
	return v
}
