package kubeutil

import (
	"errors"

	"k8s.io/client-go/dynamic"
	"k8s.io/client-go/kubernetes"
	"k8s.io/client-go/rest"
	"k8s.io/client-go/tools/clientcmd"
)

var ErrNoNamespace = errors.New("kubeconfig has no namespace in its current context")

// Clients for one identity.
type Clients struct {
	// Namespace of the current context. It is the user's workspace.
	Namespace string

	Kube    kubernetes.Interface
	Dynamic dynamic.Interface

	// nil for fake clients.
	Config *rest.Config
}

func NewClients(conf *rest.Config, namespace string) (Clients, error) {
	kube, err := kubernetes.NewForConfig(conf)
	if err != nil {
		return Clients{}, err
	}
	dyn, err := dynamic.NewForConfig(conf)
	if err != nil {
		return Clients{}, err
	}
	return Clients{Namespace: namespace, Kube: kube, Dynamic: dyn, Config: conf}, nil
}

// ClientFactory builds clients acting as the owner of a kubeconfig.
type ClientFactory interface {
	ForKubeconfig(kubeconfig string) (Clients, error)
}

type kubeconfigFactory struct{}

// ClientFactory parsing kubeconfig with clientcmd.
func NewClientFactory() ClientFactory {
	return kubeconfigFactory{}
}

func (kubeconfigFactory) ForKubeconfig(kubeconfig string) (Clients, error) {
	cc, err := clientcmd.NewClientConfigFromBytes([]byte(kubeconfig))
	if err != nil {
		return Clients{}, err
	}
	ns, _, err := cc.Namespace()
	if err != nil {
		return Clients{}, err
	}
	raw, err := cc.RawConfig()
	if err != nil {
		return Clients{}, err
	}
	if ctx, ok := raw.Contexts[raw.CurrentContext]; !ok || ctx.Namespace == "" {
		return Clients{}, ErrNoNamespace
	}

	conf, err := cc.ClientConfig()
	if err != nil {
		return Clients{}, err
	}
	return NewClients(conf, ns)
}

// ClientFactory returning the same clients for any kubeconfig.
func Static(c Clients) ClientFactory {
	return staticFactory{c: c}
}

type staticFactory struct{ c Clients }

func (s staticFactory) ForKubeconfig(string) (Clients, error) {
	return s.c, nil
}
