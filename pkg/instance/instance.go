// Package instance handles instances, groups of resources sharing an instance label.
package instance

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	domerr "github.com/kubeconsole/console/pkg/domain/errors"
	xe "github.com/kubeconsole/console/pkg/errors"
	"github.com/kubeconsole/console/pkg/kube/labels"
	"github.com/kubeconsole/console/pkg/kube/object"
	"github.com/kubeconsole/console/pkg/kube/resources"
	"github.com/kubeconsole/console/pkg/kube/store"
	"golang.org/x/sync/errgroup"
	kubeerr "k8s.io/apimachinery/pkg/api/errors"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/client-go/dynamic"
)

// DeleteKindError tells deleting resources of a kind has failed.
//
// Kinds before it in the deletion order are already deleted.
type DeleteKindError struct {
	Kind    string
	Message string
	Causes  []error
}

func (e *DeleteKindError) Error() string {
	causes := make([]string, 0, len(e.Causes))
	for _, c := range e.Causes {
		causes = append(causes, c.Error())
	}
	return fmt.Sprintf("%s: %s", e.Message, strings.Join(causes, "; "))
}

func (e *DeleteKindError) Unwrap() []error {
	return e.Causes
}

// Observer receives the outcome of deletions per kind.
type Observer interface {
	Deleted(kind string, n int)
	Failed(kind string, n int)
}

type nopObserver struct{}

func (nopObserver) Deleted(string, int) {}
func (nopObserver) Failed(string, int)  {}

type Option func(*Instances) *Instances

func WithObserver(o Observer) Option {
	return func(i *Instances) *Instances {
		i.observer = o
		return i
	}
}

// limit concurrent delete calls per kind.
func WithParallelism(n int) Option {
	return func(i *Instances) *Instances {
		i.parallelism = n
		return i
	}
}

func WithKinds(kinds ...resources.Kind) Option {
	return func(i *Instances) *Instances {
		i.kinds = kinds
		return i
	}
}

type Instances struct {
	client      dynamic.Interface
	label       string
	kinds       []resources.Kind
	observer    Observer
	parallelism int
}

// New handles instances with the client.
//
// label is the key of the instance label.
func New(client dynamic.Interface, label string, options ...Option) *Instances {
	i := &Instances{
		client:      client,
		label:       label,
		kinds:       resources.InstanceKinds(),
		observer:    nopObserver{},
		parallelism: 8,
	}
	for _, opt := range options {
		i = opt(i)
	}
	return i
}

func (i *Instances) selector(instanceName string) labels.Selector {
	return labels.Of(map[string]string{i.label: instanceName})
}

// names of resources to be deleted. The Instance custom resource is named after the instance.
func (i *Instances) targets(ctx context.Context, kind resources.Kind, namespace, instanceName string) ([]string, error) {
	if kind == resources.Instance {
		return []string{instanceName}, nil
	}

	objs, err := store.New(i.client, kind, namespace, i.selector(instanceName)).Fetch(ctx)
	if err != nil {
		if kubeerr.IsNotFound(err) {
			// the kind is not installed in the cluster.
			return nil, nil
		}
		return nil, err
	}

	names := make([]string, 0, len(objs))
	for _, o := range objs {
		names = append(names, o.Name())
	}
	return names, nil
}

// Delete resources of the instance, kind by kind in a fixed order.
//
// In a kind, resources are deleted in parallel, and all deletions are awaited.
// A deletion answered with 404 is a success.
// Any other failure stops Delete with *DeleteKindError;
// resources already deleted are not restored.
func (i *Instances) Delete(ctx context.Context, namespace, instanceName string) error {
	for _, kind := range i.kinds {
		names, err := i.targets(ctx, kind, namespace, instanceName)
		if err != nil {
			i.observer.Failed(kind.Name, 1)
			return xe.Wrap(&DeleteKindError{Kind: kind.Name, Message: kind.DeleteError, Causes: []error{err}})
		}
		if len(names) == 0 {
			continue
		}

		rc := i.client.Resource(kind.GVR).Namespace(namespace)
		errs := make([]error, len(names))
		eg := new(errgroup.Group)
		eg.SetLimit(i.parallelism)
		for n, name := range names {
			n, name := n, name
			eg.Go(func() error {
				if err := rc.Delete(ctx, name, metav1.DeleteOptions{}); err != nil && !kubeerr.IsNotFound(err) {
					errs[n] = err
				}
				return nil
			})
		}
		eg.Wait()

		failures := []error{}
		for _, err := range errs {
			if err != nil {
				failures = append(failures, err)
			}
		}
		i.observer.Deleted(kind.Name, len(names)-len(failures))
		if len(failures) != 0 {
			i.observer.Failed(kind.Name, len(failures))
			return xe.Wrap(&DeleteKindError{Kind: kind.Name, Message: kind.DeleteError, Causes: failures})
		}
	}
	return nil
}

// Instance is an Instance custom resource and resources labelled with it.
type Instance struct {
	Name string

	// nil when the custom resource is missing.
	Resource *object.KubeObject

	// labelled resources per kind name. Kinds without resources are omitted.
	Resources map[string][]object.KubeObject

	// kind names in catalog order, only for kinds in Resources.
	Kinds []string
}

// Get the instance.
//
// When neither the Instance custom resource nor labelled resources are found,
// it returns errors.ErrMissing.
func (i *Instances) Get(ctx context.Context, namespace, instanceName string) (Instance, error) {
	inst := Instance{Name: instanceName, Resources: map[string][]object.KubeObject{}}

	cr, err := i.client.Resource(resources.Instance.GVR).Namespace(namespace).Get(ctx, instanceName, metav1.GetOptions{})
	if err == nil {
		o := object.FromUnstructured(cr)
		inst.Resource = &o
	} else if !kubeerr.IsNotFound(err) {
		return Instance{}, xe.Wrap(err)
	}

	mu := sync.Mutex{}
	eg, egctx := errgroup.WithContext(ctx)
	eg.SetLimit(i.parallelism)
	for _, kind := range i.kinds {
		if kind == resources.Instance {
			continue
		}
		kind := kind
		eg.Go(func() error {
			objs, err := store.New(i.client, kind, namespace, i.selector(instanceName)).Fetch(egctx)
			if err != nil {
				if kubeerr.IsNotFound(err) {
					return nil
				}
				return fmt.Errorf("list %s: %w", kind.Name, err)
			}
			if len(objs) == 0 {
				return nil
			}
			mu.Lock()
			defer mu.Unlock()
			inst.Resources[kind.Name] = objs
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return Instance{}, xe.Wrap(err)
	}

	for _, kind := range i.kinds {
		if _, ok := inst.Resources[kind.Name]; ok {
			inst.Kinds = append(inst.Kinds, kind.Name)
		}
	}

	if inst.Resource == nil && len(inst.Kinds) == 0 {
		return Instance{}, xe.Wrap(fmt.Errorf("%w: instance %s/%s", domerr.ErrMissing, namespace, instanceName))
	}
	return inst, nil
}

// AsDeleteKindError extracts *DeleteKindError from err.
func AsDeleteKindError(err error) (*DeleteKindError, bool) {
	dke := new(DeleteKindError)
	if errors.As(err, &dke) {
		return dke, true
	}
	return nil, false
}
