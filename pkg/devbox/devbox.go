// Package devbox releases devboxes as images and deploys them.
package devbox

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/google/go-containerregistry/pkg/name"
	domerr "github.com/kubeconsole/console/pkg/domain/errors"
	xe "github.com/kubeconsole/console/pkg/errors"
	"github.com/kubeconsole/console/pkg/kube/labels"
	"github.com/kubeconsole/console/pkg/kube/object"
	"github.com/kubeconsole/console/pkg/kube/resources"
	"github.com/kubeconsole/console/pkg/quantity"
	"github.com/kubeconsole/console/pkg/utils/retry"
	"github.com/kubeconsole/console/pkg/workloads/k8s"
	kubeapps "k8s.io/api/apps/v1"
	kubecore "k8s.io/api/core/v1"
	kubeerr "k8s.io/apimachinery/pkg/api/errors"
	"k8s.io/apimachinery/pkg/api/resource"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"
	"k8s.io/apimachinery/pkg/util/intstr"
	"k8s.io/apimachinery/pkg/util/validation"
	"k8s.io/client-go/dynamic"
)

const (
	// label on pods of a devbox, valued with the devbox name.
	PodLabel = "app.kubernetes.io/name"

	// labels on workloads deployed from a release.
	DeployLabel   = "cloud.console.io/deploy-on-devbox"
	AppLabel      = "cloud.console.io/app-deploy-manager"
	containerName = "app"

	PhaseSuccess = "Success"
	PhaseFailed  = "Failed"
)

var (
	ErrInvalidRequest = errors.New("invalid request")
	ErrReleaseFailed  = errors.New("release failed")
)

type Config struct {
	// registry host where releases are pushed.
	Registry string

	PollInterval time.Duration
	PollTimeout  time.Duration
}

// Devbox works on devboxes in one namespace.
type Devbox struct {
	dynamic   dynamic.Interface
	workloads *k8s.Workloads
	namespace string
	conf      Config
}

func New(dyn dynamic.Interface, workloads *k8s.Workloads, namespace string, conf Config) *Devbox {
	return &Devbox{dynamic: dyn, workloads: workloads, namespace: namespace, conf: conf}
}

type ReleaseRequest struct {
	DevboxName string `json:"devboxName"`
	Tag        string `json:"tag"`
	ReleaseDes string `json:"releaseDes"`

	// millicores. 0 means no limit.
	CPU int64 `json:"cpu"`

	// Mi. 0 means no limit.
	Memory int64 `json:"memory"`

	Port int32 `json:"port"`
}

type Release struct {
	Name       string
	Image      string
	Deployment string

	// empty when no port is exposed.
	Service string
}

// Image builds the reference of the released image.
func (d *Devbox) Image(devboxName, tag string) (name.Tag, error) {
	if errs := validation.IsDNS1123Label(devboxName); len(errs) != 0 {
		return name.Tag{}, fmt.Errorf("%w: devboxName: %s", ErrInvalidRequest, strings.Join(errs, "; "))
	}
	ref, err := name.ParseReference(
		fmt.Sprintf("%s/%s/%s:%s", d.conf.Registry, d.namespace, devboxName, tag),
		name.StrictValidation,
	)
	if err != nil {
		return name.Tag{}, fmt.Errorf("%w: %w", ErrInvalidRequest, err)
	}
	t, ok := ref.(name.Tag)
	if !ok {
		return name.Tag{}, fmt.Errorf("%w: tag is required: %s", ErrInvalidRequest, ref)
	}
	return t, nil
}

func releaseName(devboxName, tag string) string {
	return devboxName + "-" + tag
}

// ReleaseAndDeploy releases the devbox as an image, then deploys the image.
//
// The release is polled until its phase gets Success, Failed, or the poll timeout.
// Failed is reported as ErrReleaseFailed.
func (d *Devbox) ReleaseAndDeploy(ctx context.Context, req ReleaseRequest) (Release, error) {
	image, err := d.Image(req.DevboxName, req.Tag)
	if err != nil {
		return Release{}, err
	}
	if req.Port < 0 || 65535 < req.Port {
		return Release{}, fmt.Errorf("%w: port out of range: %d", ErrInvalidRequest, req.Port)
	}

	rname := releaseName(req.DevboxName, req.Tag)
	rc := d.dynamic.Resource(resources.DevBoxRelease.GVR).Namespace(d.namespace)

	if _, err := rc.Create(ctx, d.releaseObject(rname, req), metav1.CreateOptions{}); err != nil {
		if kubeerr.IsAlreadyExists(err) {
			return Release{}, xe.Wrap(fmt.Errorf("%w: release %s already exists", domerr.ErrConflict, rname))
		}
		return Release{}, xe.Wrap(err)
	}

	pctx, cancel := context.WithTimeout(ctx, d.conf.PollTimeout)
	defer cancel()
	if _, err := retry.Blocking(
		pctx, retry.StaticBackoff(d.conf.PollInterval),
		func(ctx context.Context) (string, error) {
			u, err := rc.Get(ctx, rname, metav1.GetOptions{})
			if err != nil {
				return "", err
			}
			phase, _ := object.FromUnstructured(u).NestedString("status", "phase")
			switch phase {
			case PhaseSuccess:
				return phase, nil
			case PhaseFailed:
				return phase, fmt.Errorf("%w: %s", ErrReleaseFailed, rname)
			default:
				return phase, retry.ErrRetry
			}
		},
	); err != nil {
		return Release{}, xe.WrapWithNote("waiting release "+rname, err)
	}

	depl, err := d.workloads.ApplyDeployment(ctx, d.namespace, d.deployment(req, image))
	if err != nil {
		return Release{}, xe.Wrap(err)
	}
	release := Release{Name: rname, Image: image.String(), Deployment: depl.Name}

	if 0 < req.Port {
		svc, err := d.workloads.ApplyService(ctx, d.namespace, d.service(req))
		if err != nil {
			return Release{}, xe.Wrap(err)
		}
		release.Service = svc.Name
	}
	return release, nil
}

func (d *Devbox) releaseObject(rname string, req ReleaseRequest) *unstructured.Unstructured {
	u := &unstructured.Unstructured{Object: map[string]any{
		"spec": map[string]any{
			"devboxName": req.DevboxName,
			"newTag":     req.Tag,
			"notes":      req.ReleaseDes,
		},
	}}
	u.SetGroupVersionKind(resources.DevBoxRelease.GVR.GroupVersion().WithKind(resources.DevBoxRelease.ObjectKind))
	u.SetNamespace(d.namespace)
	u.SetName(rname)
	u.SetLabels(map[string]string{DeployLabel: req.DevboxName})
	return u
}

func (d *Devbox) workloadLabels(req ReleaseRequest) map[string]string {
	return map[string]string{
		AppLabel:    req.DevboxName,
		DeployLabel: req.DevboxName,
	}
}

func (d *Devbox) deployment(req ReleaseRequest, image name.Tag) *kubeapps.Deployment {
	one := int32(1)
	ls := d.workloadLabels(req)

	limits := kubecore.ResourceList{}
	if 0 < req.CPU {
		limits[kubecore.ResourceCPU] = resource.MustParse(quantity.FormatCPU(req.CPU))
	}
	if 0 < req.Memory {
		limits[kubecore.ResourceMemory] = resource.MustParse(quantity.FormatMemory(req.Memory))
	}

	container := kubecore.Container{
		Name:      containerName,
		Image:     image.String(),
		Resources: kubecore.ResourceRequirements{Limits: limits},
	}
	if 0 < req.Port {
		container.Ports = []kubecore.ContainerPort{{ContainerPort: req.Port}}
	}

	return &kubeapps.Deployment{
		ObjectMeta: metav1.ObjectMeta{Name: req.DevboxName, Namespace: d.namespace, Labels: ls},
		Spec: kubeapps.DeploymentSpec{
			Replicas: &one,
			Selector: &metav1.LabelSelector{MatchLabels: map[string]string{AppLabel: req.DevboxName}},
			Template: kubecore.PodTemplateSpec{
				ObjectMeta: metav1.ObjectMeta{Labels: ls},
				Spec:       kubecore.PodSpec{Containers: []kubecore.Container{container}},
			},
		},
	}
}

func (d *Devbox) service(req ReleaseRequest) *kubecore.Service {
	return &kubecore.Service{
		ObjectMeta: metav1.ObjectMeta{Name: req.DevboxName, Namespace: d.namespace, Labels: d.workloadLabels(req)},
		Spec: kubecore.ServiceSpec{
			Selector: map[string]string{AppLabel: req.DevboxName},
			Ports: []kubecore.ServicePort{
				{Port: req.Port, TargetPort: intstr.FromInt32(req.Port)},
			},
		},
	}
}

// UploadAndExtract extracts a gzipped tarball into destDir of the running devbox pod.
//
// destDir should be an absolute path.
func (d *Devbox) UploadAndExtract(ctx context.Context, devboxName, destDir string, archive io.Reader) error {
	if !path.IsAbs(destDir) {
		return fmt.Errorf("%w: destination should be absolute path: %q", ErrInvalidRequest, destDir)
	}

	pods, err := d.workloads.FindPods(ctx, d.namespace, labels.Of(map[string]string{PodLabel: devboxName}))
	if err != nil {
		return xe.Wrap(err)
	}
	var pod *kubecore.Pod
	for n := range pods {
		if pods[n].Status.Phase == kubecore.PodRunning && len(pods[n].Spec.Containers) != 0 {
			pod = &pods[n]
			break
		}
	}
	if pod == nil {
		return xe.Wrap(fmt.Errorf("%w: running pod of devbox %s", domerr.ErrMissing, devboxName))
	}

	stderr := new(bytes.Buffer)
	if err := d.workloads.Exec(
		ctx, d.namespace, pod.Name, pod.Spec.Containers[0].Name,
		[]string{"tar", "-xzf", "-", "-C", path.Clean(destDir)},
		k8s.Streams{Stdin: archive, Stdout: io.Discard, Stderr: stderr},
	); err != nil {
		return xe.WrapWithNote(strings.TrimSpace(stderr.String()), err)
	}
	return nil
}
