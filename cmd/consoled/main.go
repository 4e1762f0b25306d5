package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/kubeconsole/console/pkg/billing"
	configs "github.com/kubeconsole/console/pkg/configs/console"
	"github.com/kubeconsole/console/pkg/devbox"
	"github.com/kubeconsole/console/pkg/domain/console"
	"github.com/kubeconsole/console/pkg/kube/labels"
	"github.com/kubeconsole/console/pkg/kube/resources"
	"github.com/kubeconsole/console/pkg/kube/store"
	"github.com/kubeconsole/console/pkg/kubeutil"
	"github.com/kubeconsole/console/pkg/loop/recurring"
	"github.com/kubeconsole/console/pkg/metrics"
	"github.com/kubeconsole/console/pkg/notify"
	"github.com/kubeconsole/console/pkg/realname"
	"github.com/kubeconsole/console/pkg/utils/filewatch"
	"github.com/kubeconsole/console/pkg/workloads/k8s"
)

func main() {
	configPath := flag.String("config", os.Getenv("CONSOLE_CONFIG"), "path to config file. default: $CONSOLE_CONFIG")
	loglevel := flag.String("loglevel", "info", "log level. debug|info|warn|error|off")
	flag.Parse()

	conf, err := configs.LoadConsoleConfig(*configPath)
	if err != nil {
		log.Fatalf("can not read configuration: %s", err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	ctx, cancelWatch, err := filewatch.UntilModifyContext(ctx, *configPath)
	if err != nil {
		log.Fatalf("can not watch configuration: %s", err)
	}
	defer cancelWatch()

	db, err := console.New(ctx, conf.Database())
	if err != nil {
		log.Fatalf("can not connect to database: %s", err)
	}
	defer db.Close()

	admin, err := kubeutil.ConnectToK8s(conf.Kube().Kubeconfig())
	if err != nil {
		log.Fatalf("can not connect to kubernetes: %s", err)
	}

	m := metrics.New()

	server := Server{
		Console:       db,
		Admin:         admin,
		ClientFactory: kubeutil.NewClientFactory(),
		SessionSecret: conf.Session().Secret(),
		InstanceLabel: conf.Kube().InstanceLabel(),
		Metrics:       m,
		Devbox:        devboxFactory(conf.Devbox()),
		Billing:       billing.New(),
		Endpoints: billing.Endpoints{
			Local:    conf.Billing().Endpoint(),
			Template: conf.Billing().RegionEndpoint(),
		},
	}

	if rn, err := realNameService(conf, db); err != nil {
		log.Fatalf("can not set up real-name authentication: %s", err)
	} else {
		server.RealName = rn
	}
	if f := conf.Feishu(); f != nil {
		server.Notifier = notify.NewFeishu(f.Webhook())
	}

	e := BuildServer(server, *loglevel)

	policy, err := recurring.ParsePolicy(conf.Kube().Refresh())
	if err != nil {
		log.Fatalf("kube.refresh: %s", err)
	}
	refresher := store.NewRefresher(
		policy, 30*time.Second, e.Logger,
		store.New(admin.Dynamic, resources.Instance, "", labels.Everything()),
		store.New(admin.Dynamic, resources.DevBoxRelease, "", labels.Everything()),
	)
	refresher.OnFetch = m.ObserveFetch
	go func() {
		if err := refresher.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			e.Logger.Warnf("refresher stopped: %+v", err)
		}
	}()

	log.Println("registered routes:")
	for _, r := range e.Routes() {
		log.Println(r.Method, r.Path)
	}

	go func() {
		<-ctx.Done()
		if cause := context.Cause(ctx); cause != nil {
			log.Printf("shutting down: %s", cause)
		}
		graceful, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := e.Shutdown(graceful); err != nil {
			log.Printf("error on shutdown: %s", err)
		}
	}()

	if err := e.Start(fmt.Sprintf(":%d", conf.Port())); err != nil && !errors.Is(err, http.ErrServerClosed) {
		e.Logger.Fatal(err)
	}
}

func devboxFactory(conf *configs.DevboxConfig) func(kubeutil.Clients) *devbox.Devbox {
	dc := devbox.Config{
		Registry:     conf.Registry(),
		PollInterval: conf.PollInterval(),
		PollTimeout:  conf.PollTimeout(),
	}
	return func(clients kubeutil.Clients) *devbox.Devbox {
		wl := k8s.New(clients.Kube, k8s.SPDY(clients.Config, clients.Kube))
		return devbox.New(clients.Dynamic, wl, clients.Namespace, dc)
	}
}

// nil when face verification is not configured.
func realNameService(conf *configs.ConsoleConfig, db console.Console) (*realname.Service, error) {
	fc := conf.FaceID()
	if fc == nil {
		return nil, nil
	}
	faceID, err := realname.TencentFaceID(fc.SecretID(), fc.SecretKey(), fc.Region(), fc.RuleID())
	if err != nil {
		return nil, err
	}

	var objects realname.ObjectStore
	if oc := conf.ObjectStorage(); oc != nil {
		objects, err = realname.Minio(oc.Endpoint(), oc.AccessKey(), oc.SecretKey(), oc.Bucket(), oc.Secure())
		if err != nil {
			return nil, err
		}
	}
	return realname.New(faceID, objects, db.RealNames()), nil
}
