// Package kube helps tests using fake Kubernetes clients.
package kube

import (
	"github.com/kubeconsole/console/pkg/kube/resources"
	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"
	"k8s.io/apimachinery/pkg/runtime"
	"k8s.io/apimachinery/pkg/runtime/schema"
	dynamicfake "k8s.io/client-go/dynamic/fake"
)

// NewDynamic returns a fake dynamic client knowing every kind of the console.
func NewDynamic(objs ...runtime.Object) *dynamicfake.FakeDynamicClient {
	listKinds := map[schema.GroupVersionResource]string{}
	for _, k := range resources.All() {
		listKinds[k.GVR] = k.ObjectKind + "List"
	}
	return dynamicfake.NewSimpleDynamicClientWithCustomListKinds(runtime.NewScheme(), listKinds, objs...)
}

// Object builds an unstructured object of the kind.
func Object(kind resources.Kind, namespace, name string, labels map[string]string) *unstructured.Unstructured {
	u := &unstructured.Unstructured{}
	u.SetGroupVersionKind(kind.GVR.GroupVersion().WithKind(kind.ObjectKind))
	u.SetNamespace(namespace)
	u.SetName(name)
	if labels != nil {
		u.SetLabels(labels)
	}
	return u
}
