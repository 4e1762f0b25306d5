// Package resources is the catalog of kinds which compose an instance.
package resources

import (
	"k8s.io/apimachinery/pkg/runtime/schema"
)

// Kind of resources grouped into an instance.
type Kind struct {
	// display name of the kind.
	Name string

	// kind of objects in API. It differs from Name for some custom resources.
	ObjectKind string

	GVR schema.GroupVersionResource

	// message reported when deleting resources of this kind fails.
	DeleteError string
}

func kind(name string, group, version, resource string) Kind {
	return Kind{
		Name:        name,
		ObjectKind:  name,
		GVR:         schema.GroupVersionResource{Group: group, Version: version, Resource: resource},
		DeleteError: "delete " + name + " error",
	}
}

var (
	Deployment            = kind("Deployment", "apps", "v1", "deployments")
	StatefulSet           = kind("StatefulSet", "apps", "v1", "statefulsets")
	Database              = withObjectKind(kind("Database", "apps.kubeblocks.io", "v1alpha1", "clusters"), "Cluster")
	ConfigMap             = kind("ConfigMap", "", "v1", "configmaps")
	Secret                = kind("Secret", "", "v1", "secrets")
	Job                   = kind("Job", "batch", "v1", "jobs")
	CronJob               = kind("CronJob", "batch", "v1", "cronjobs")
	Service               = kind("Service", "", "v1", "services")
	Ingress               = kind("Ingress", "networking.k8s.io", "v1", "ingresses")
	PersistentVolumeClaim = kind("PersistentVolumeClaim", "", "v1", "persistentvolumeclaims")
	ServiceMonitor        = kind("ServiceMonitor", "monitoring.coreos.com", "v1", "servicemonitors")
	Probe                 = kind("Probe", "monitoring.coreos.com", "v1", "probes")
	Role                  = kind("Role", "rbac.authorization.k8s.io", "v1", "roles")
	RoleBinding           = kind("RoleBinding", "rbac.authorization.k8s.io", "v1", "rolebindings")
	ServiceAccount        = kind("ServiceAccount", "", "v1", "serviceaccounts")
	Issuer                = kind("Issuer", "cert-manager.io", "v1", "issuers")
	Certificate           = kind("Certificate", "cert-manager.io", "v1", "certificates")
	Prometheus            = kind("Prometheus", "monitoring.coreos.com", "v1", "prometheuses")
	App                   = kind("App", "app.console.io", "v1", "apps")
	ObjectStorageBucket   = kind("ObjectStorageBucket", "objectstorage.console.io", "v1", "objectstoragebuckets")

	// custom resource representing an instance itself.
	Instance = kind("Instance", "app.console.io", "v1", "instances")

	DevBoxRelease = kind("DevBoxRelease", "devbox.console.io", "v1alpha1", "devboxreleases")
)

func withObjectKind(k Kind, objectKind string) Kind {
	k.ObjectKind = objectKind
	return k
}

// InstanceKinds returns kinds of an instance, in the order of deletion.
//
// The Instance custom resource comes last.
func InstanceKinds() []Kind {
	return []Kind{
		Deployment,
		StatefulSet,
		Database,
		ConfigMap,
		Secret,
		Job,
		CronJob,
		Service,
		Ingress,
		PersistentVolumeClaim,
		ServiceMonitor,
		Probe,
		Role,
		RoleBinding,
		ServiceAccount,
		Issuer,
		Certificate,
		Prometheus,
		App,
		ObjectStorageBucket,
		Instance,
	}
}

// kinds which keep a workspace in use; deleting a user is refused while they exist.
func WorkspaceBlockers() []Kind {
	return []Kind{Instance, ObjectStorageBucket, App, Database}
}

// All kinds known to the console.
func All() []Kind {
	return append(InstanceKinds(), DevBoxRelease)
}
