// Package store caches objects of one kind, filled by list calls.
package store

import (
	"context"
	"sync"
	"time"

	xe "github.com/kubeconsole/console/pkg/errors"
	"github.com/kubeconsole/console/pkg/kube/labels"
	"github.com/kubeconsole/console/pkg/kube/object"
	"github.com/kubeconsole/console/pkg/kube/resources"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/client-go/dynamic"
)

// KubeStore is an in-memory cache of objects of one kind.
//
// Contents are replaced wholesale on each Fetch.
// Concurrent Fetches are not serialized: the last one to finish wins.
type KubeStore struct {
	client    dynamic.Interface
	kind      resources.Kind
	namespace string
	selector  labels.Selector

	mu        sync.RWMutex
	items     []object.KubeObject
	fetchedAt time.Time
}

// New creates an empty store.
//
// namespace "" means all namespaces.
func New(client dynamic.Interface, kind resources.Kind, namespace string, selector labels.Selector) *KubeStore {
	return &KubeStore{
		client:    client,
		kind:      kind,
		namespace: namespace,
		selector:  selector,
	}
}

func (s *KubeStore) Kind() resources.Kind {
	return s.kind
}

// Fetch lists objects with one API call and replaces the cache.
//
// Errors of the list call are returned as they are, and the cache is kept.
func (s *KubeStore) Fetch(ctx context.Context) ([]object.KubeObject, error) {
	list, err := s.client.Resource(s.kind.GVR).Namespace(s.namespace).List(
		ctx, metav1.ListOptions{LabelSelector: s.selector.QueryString()},
	)
	if err != nil {
		return nil, xe.Wrap(err)
	}

	objs := object.FromList(list)
	s.Replace(objs)
	return objs, nil
}

// Replace the whole contents.
func (s *KubeStore) Replace(objs []object.KubeObject) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = objs
	s.fetchedAt = time.Now()
}

// Add an object. An object with the same identity is replaced.
func (s *KubeStore) Add(obj object.KubeObject) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := obj.Identity()
	items := make([]object.KubeObject, 0, len(s.items)+1)
	for _, o := range s.items {
		if o.Identity() != id {
			items = append(items, o)
		}
	}
	s.items = append(items, obj)
}

// Remove an object. It reports whether the object was found.
func (s *KubeStore) Remove(id object.Identity) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	items := make([]object.KubeObject, 0, len(s.items))
	for _, o := range s.items {
		if o.Identity() != id {
			items = append(items, o)
		}
	}
	removed := len(items) != len(s.items)
	s.items = items
	return removed
}

// Items returns a snapshot of cached objects.
func (s *KubeStore) Items() []object.KubeObject {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]object.KubeObject{}, s.items...)
}

// Filter returns cached objects matching the selector.
func (s *KubeStore) Filter(selector labels.Selector) []object.KubeObject {
	s.mu.RLock()
	defer s.mu.RUnlock()

	found := []object.KubeObject{}
	for _, o := range s.items {
		if selector.Matches(o.Labels()) {
			found = append(found, o)
		}
	}
	return found
}

// Get finds a cached object by name.
func (s *KubeStore) Get(name string) (object.KubeObject, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, o := range s.items {
		if o.Name() == name {
			return o, true
		}
	}
	return object.KubeObject{}, false
}

// time of the last Replace. Zero before the first fetch.
func (s *KubeStore) FetchedAt() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.fetchedAt
}
