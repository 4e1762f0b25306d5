package kubeutil

import (
	"os"
	"path/filepath"

	"k8s.io/client-go/rest"
	"k8s.io/client-go/tools/clientcmd"
	"k8s.io/client-go/util/homedir"
)

// detect *rest.Config of the service itself.
//
// It searches kubeconfig from (latter wins)
//
// - `~/.kube/config`
//
// - environmental variable `KUBECONFIG`
//
// - kubeconfig argument, when it is not empty.
//
// When no files are found from above, it tries to use in-cluster config.
func RESTConfig(kubeconfig string) (*rest.Config, error) {
	path := ""

	if home := homedir.HomeDir(); home != "" {
		path = filepath.Join(home, ".kube", "config")
	}
	if k := os.Getenv("KUBECONFIG"); k != "" {
		path = k
	}
	if kubeconfig != "" {
		path = kubeconfig
	}

	if path != "" {
		stat, err := os.Stat(path)
		if os.IsNotExist(err) || (err == nil && stat.IsDir()) {
			path = ""
		}
	}

	if path == "" {
		// fallback: try in-cluster
		return rest.InClusterConfig()
	}
	return clientcmd.BuildConfigFromFlags("", path)
}

// connect to the cluster where the service runs.
//
// See RESTConfig for how kubeconfig is searched.
func ConnectToK8s(kubeconfig string) (Clients, error) {
	conf, err := RESTConfig(kubeconfig)
	if err != nil {
		return Clients{}, err
	}
	return NewClients(conf, "")
}
