// Package object wraps Kubernetes objects of any kind.
package object

import (
	"fmt"
	"time"

	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"
	"k8s.io/apimachinery/pkg/types"
	"sigs.k8s.io/yaml"
)

// Identity of an object in a cluster.
type Identity struct {
	Kind      string
	Namespace string
	Name      string
}

func (i Identity) String() string {
	return fmt.Sprintf("%s/%s/%s", i.Kind, i.Namespace, i.Name)
}

// KubeObject is a read-only view of an object returned from the API server.
type KubeObject struct {
	u *unstructured.Unstructured
}

func FromUnstructured(u *unstructured.Unstructured) KubeObject {
	return KubeObject{u: u}
}

// FromList maps every item of the list.
//
// Items without kind get the kind of the list, without "List" suffix.
func FromList(list *unstructured.UnstructuredList) []KubeObject {
	kind := ""
	if lk := list.GetKind(); len(lk) > len("List") && lk[len(lk)-len("List"):] == "List" {
		kind = lk[:len(lk)-len("List")]
	}

	objs := make([]KubeObject, 0, len(list.Items))
	for i := range list.Items {
		item := &list.Items[i]
		if item.GetKind() == "" && kind != "" {
			item.SetKind(kind)
			item.SetAPIVersion(list.GetAPIVersion())
		}
		objs = append(objs, FromUnstructured(item))
	}
	return objs
}

func (o KubeObject) Kind() string       { return o.u.GetKind() }
func (o KubeObject) APIVersion() string { return o.u.GetAPIVersion() }
func (o KubeObject) Name() string       { return o.u.GetName() }
func (o KubeObject) Namespace() string  { return o.u.GetNamespace() }
func (o KubeObject) UID() types.UID     { return o.u.GetUID() }

func (o KubeObject) Labels() map[string]string      { return o.u.GetLabels() }
func (o KubeObject) Annotations() map[string]string { return o.u.GetAnnotations() }

func (o KubeObject) OwnerReferences() []metav1.OwnerReference {
	return o.u.GetOwnerReferences()
}

func (o KubeObject) CreationTimestamp() time.Time {
	return o.u.GetCreationTimestamp().Time
}

// Label returns a label value and whether it is set.
func (o KubeObject) Label(key string) (string, bool) {
	v, ok := o.u.GetLabels()[key]
	return v, ok
}

// HasOwner reports whether the object is owned by an object of the kind and name.
func (o KubeObject) HasOwner(kind, name string) bool {
	for _, ref := range o.u.GetOwnerReferences() {
		if ref.Kind == kind && ref.Name == name {
			return true
		}
	}
	return false
}

// Spec returns a deep copy of .spec, or nil.
func (o KubeObject) Spec() map[string]any {
	return o.field("spec")
}

// Status returns a deep copy of .status, or nil.
func (o KubeObject) Status() map[string]any {
	return o.field("status")
}

// NestedString reads a string field, like NestedString("status", "phase").
func (o KubeObject) NestedString(fields ...string) (string, bool) {
	v, found, err := unstructured.NestedString(o.u.Object, fields...)
	if err != nil {
		return "", false
	}
	return v, found
}

func (o KubeObject) field(name string) map[string]any {
	m, found, err := unstructured.NestedMap(o.u.Object, name)
	if err != nil || !found {
		return nil
	}
	return m
}

func (o KubeObject) Identity() Identity {
	return Identity{Kind: o.Kind(), Namespace: o.Namespace(), Name: o.Name()}
}

// Unstructured returns a deep copy of the wrapped object.
func (o KubeObject) Unstructured() *unstructured.Unstructured {
	return o.u.DeepCopy()
}

func (o KubeObject) MarshalJSON() ([]byte, error) {
	return o.u.MarshalJSON()
}

// YAML renders the object as YAML.
func (o KubeObject) YAML() ([]byte, error) {
	j, err := o.u.MarshalJSON()
	if err != nil {
		return nil, err
	}
	return yaml.JSONToYAML(j)
}
