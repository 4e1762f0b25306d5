// Package k8s manages workloads with the typed Kubernetes client.
package k8s

import (
	"context"
	"io"

	"github.com/kubeconsole/console/pkg/kube/labels"
	kubeapps "k8s.io/api/apps/v1"
	kubecore "k8s.io/api/core/v1"
	kubeerr "k8s.io/apimachinery/pkg/api/errors"
	kubeapimeta "k8s.io/apimachinery/pkg/apis/meta/v1"
	k8s "k8s.io/client-go/kubernetes"
	"k8s.io/client-go/kubernetes/scheme"
	"k8s.io/client-go/rest"
	"k8s.io/client-go/tools/remotecommand"
)

// Streams connected to a command run in a container. Nil streams are not attached.
type Streams struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// Executor runs commands in containers.
type Executor interface {
	Exec(ctx context.Context, namespace, pod, container string, command []string, streams Streams) error
}

type spdyExecutor struct {
	config *rest.Config
	client k8s.Interface
}

// SPDY returns an Executor using the pods/exec subresource.
func SPDY(config *rest.Config, client k8s.Interface) Executor {
	return &spdyExecutor{config: config, client: client}
}

func (s *spdyExecutor) Exec(ctx context.Context, namespace, pod, container string, command []string, streams Streams) error {
	req := s.client.CoreV1().RESTClient().
		Post().
		Resource("pods").
		Namespace(namespace).
		Name(pod).
		SubResource("exec").
		VersionedParams(&kubecore.PodExecOptions{
			Container: container,
			Command:   command,
			Stdin:     streams.Stdin != nil,
			Stdout:    streams.Stdout != nil,
			Stderr:    streams.Stderr != nil,
		}, scheme.ParameterCodec)

	exec, err := remotecommand.NewSPDYExecutor(s.config, "POST", req.URL())
	if err != nil {
		return err
	}
	return exec.StreamWithContext(ctx, remotecommand.StreamOptions{
		Stdin:  streams.Stdin,
		Stdout: streams.Stdout,
		Stderr: streams.Stderr,
	})
}

// Workloads creates and finds workloads in namespaces.
type Workloads struct {
	client k8s.Interface
	exec   Executor
}

func New(client k8s.Interface, exec Executor) *Workloads {
	return &Workloads{client: client, exec: exec}
}

// ApplyDeployment creates depl, or replaces the spec of the existing one with the same name.
func (w *Workloads) ApplyDeployment(ctx context.Context, namespace string, depl *kubeapps.Deployment) (*kubeapps.Deployment, error) {
	deployments := w.client.AppsV1().Deployments(namespace)
	created, err := deployments.Create(ctx, depl, kubeapimeta.CreateOptions{})
	if err == nil {
		return created, nil
	}
	if !kubeerr.IsAlreadyExists(err) {
		return nil, err
	}

	current, err := deployments.Get(ctx, depl.Name, kubeapimeta.GetOptions{})
	if err != nil {
		return nil, err
	}
	current.Labels = depl.Labels
	current.Spec = depl.Spec
	return deployments.Update(ctx, current, kubeapimeta.UpdateOptions{})
}

// ApplyService creates svc, or replaces ports and selector of the existing one with the same name.
func (w *Workloads) ApplyService(ctx context.Context, namespace string, svc *kubecore.Service) (*kubecore.Service, error) {
	services := w.client.CoreV1().Services(namespace)
	created, err := services.Create(ctx, svc, kubeapimeta.CreateOptions{})
	if err == nil {
		return created, nil
	}
	if !kubeerr.IsAlreadyExists(err) {
		return nil, err
	}

	current, err := services.Get(ctx, svc.Name, kubeapimeta.GetOptions{})
	if err != nil {
		return nil, err
	}
	current.Labels = svc.Labels
	current.Spec.Ports = svc.Spec.Ports
	current.Spec.Selector = svc.Spec.Selector
	return services.Update(ctx, current, kubeapimeta.UpdateOptions{})
}

// FindPods lists pods matching the selector.
func (w *Workloads) FindPods(ctx context.Context, namespace string, selector labels.Selector) ([]kubecore.Pod, error) {
	resp, err := w.client.CoreV1().Pods(namespace).List(ctx, kubeapimeta.ListOptions{
		LabelSelector: selector.QueryString(),
	})
	if err != nil {
		return nil, err
	}
	return resp.Items, nil
}

func (w *Workloads) Exec(ctx context.Context, namespace, pod, container string, command []string, streams Streams) error {
	return w.exec.Exec(ctx, namespace, pod, container, command, streams)
}
