package k8s_test

import (
	"context"
	"testing"

	"github.com/kubeconsole/console/pkg/kube/labels"
	"github.com/kubeconsole/console/pkg/utils/try"
	"github.com/kubeconsole/console/pkg/workloads/k8s"
	kubeapps "k8s.io/api/apps/v1"
	kubecore "k8s.io/api/core/v1"
	kubeapimeta "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/util/intstr"
	"k8s.io/client-go/kubernetes/fake"
)

const namespace = "ns-alice"

func deployment(image string) *kubeapps.Deployment {
	return &kubeapps.Deployment{
		ObjectMeta: kubeapimeta.ObjectMeta{Name: "devbox", Namespace: namespace, Labels: map[string]string{"app": "devbox"}},
		Spec: kubeapps.DeploymentSpec{
			Selector: &kubeapimeta.LabelSelector{MatchLabels: map[string]string{"app": "devbox"}},
			Template: kubecore.PodTemplateSpec{
				Spec: kubecore.PodSpec{Containers: []kubecore.Container{{Name: "main", Image: image}}},
			},
		},
	}
}

func service(port int32) *kubecore.Service {
	return &kubecore.Service{
		ObjectMeta: kubeapimeta.ObjectMeta{Name: "devbox", Namespace: namespace},
		Spec: kubecore.ServiceSpec{
			Selector: map[string]string{"app": "devbox"},
			Ports:    []kubecore.ServicePort{{Port: port, TargetPort: intstr.FromInt32(port)}},
		},
	}
}

func TestWorkloads_ApplyDeployment(t *testing.T) {
	ctx := context.Background()
	client := fake.NewSimpleClientset()
	testee := k8s.New(client, nil)

	try.To(testee.ApplyDeployment(ctx, namespace, deployment("registry.example.com/ns-alice/devbox:v1"))).OrFatal(t)
	try.To(testee.ApplyDeployment(ctx, namespace, deployment("registry.example.com/ns-alice/devbox:v2"))).OrFatal(t)

	list := try.To(client.AppsV1().Deployments(namespace).List(ctx, kubeapimeta.ListOptions{})).OrFatal(t)
	if len(list.Items) != 1 {
		t.Fatalf("unexpected deployments: %d", len(list.Items))
	}
	if image := list.Items[0].Spec.Template.Spec.Containers[0].Image; image != "registry.example.com/ns-alice/devbox:v2" {
		t.Errorf("image is not replaced: %s", image)
	}
}

func TestWorkloads_ApplyService(t *testing.T) {
	ctx := context.Background()
	client := fake.NewSimpleClientset()
	testee := k8s.New(client, nil)

	try.To(testee.ApplyService(ctx, namespace, service(8080))).OrFatal(t)
	try.To(testee.ApplyService(ctx, namespace, service(3000))).OrFatal(t)

	svc := try.To(client.CoreV1().Services(namespace).Get(ctx, "devbox", kubeapimeta.GetOptions{})).OrFatal(t)
	if len(svc.Spec.Ports) != 1 || svc.Spec.Ports[0].Port != 3000 {
		t.Errorf("ports are not replaced: %+v", svc.Spec.Ports)
	}
}

func TestWorkloads_FindPods(t *testing.T) {
	client := fake.NewSimpleClientset(
		&kubecore.Pod{ObjectMeta: kubeapimeta.ObjectMeta{Name: "devbox-0", Namespace: namespace, Labels: map[string]string{"app": "devbox"}}},
		&kubecore.Pod{ObjectMeta: kubeapimeta.ObjectMeta{Name: "other-0", Namespace: namespace, Labels: map[string]string{"app": "other"}}},
	)
	pods := try.To(
		k8s.New(client, nil).FindPods(context.Background(), namespace, labels.Of(map[string]string{"app": "devbox"})),
	).OrFatal(t)
	if len(pods) != 1 || pods[0].Name != "devbox-0" {
		t.Errorf("unexpected pods: %v", pods)
	}
}
