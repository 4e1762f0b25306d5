package handlers_test

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/kubeconsole/console/cmd/consoled/handlers"
	httptestutil "github.com/kubeconsole/console/internal/testutils/http"
	kubetest "github.com/kubeconsole/console/internal/testutils/kube"
	apidevbox "github.com/kubeconsole/console/pkg/api/types/devbox"
	"github.com/kubeconsole/console/pkg/auth"
	"github.com/kubeconsole/console/pkg/devbox"
	"github.com/kubeconsole/console/pkg/kube/resources"
	"github.com/kubeconsole/console/pkg/kubeutil"
	"github.com/kubeconsole/console/pkg/workloads/k8s"
	"github.com/labstack/echo/v4"
	kubecore "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"
	"k8s.io/apimachinery/pkg/runtime"
	dynamicfake "k8s.io/client-go/dynamic/fake"
	kubefake "k8s.io/client-go/kubernetes/fake"
	k8stesting "k8s.io/client-go/testing"
)

type executor struct {
	command []string
	stdin   []byte
}

func (e *executor) Exec(_ context.Context, _, _, _ string, command []string, streams k8s.Streams) error {
	e.command = command
	e.stdin, _ = io.ReadAll(streams.Stdin)
	return nil
}

func devboxFactory(exec k8s.Executor) handlers.DevboxFactory {
	conf := devbox.Config{Registry: "registry.example.com", PollInterval: time.Millisecond, PollTimeout: time.Second}
	return func(clients kubeutil.Clients) *devbox.Devbox {
		return devbox.New(clients.Dynamic, k8s.New(clients.Kube, exec), clients.Namespace, conf)
	}
}

func releasePhase(client *dynamicfake.FakeDynamicClient, phase string) {
	client.PrependReactor("get", "devboxreleases", func(a k8stesting.Action) (bool, runtime.Object, error) {
		u := kubetest.Object(resources.DevBoxRelease, namespace, a.(k8stesting.GetAction).GetName(), nil)
		unstructured.SetNestedField(u.Object, phase, "status", "phase")
		return true, u, nil
	})
}

func TestReleaseHandler(t *testing.T) {
	for name, testcase := range map[string]struct {
		phase string
		body  string
		then  int
	}{
		"successful release": {
			phase: devbox.PhaseSuccess,
			body:  `{"devboxName": "my-devbox", "tag": "v1", "cpu": 500, "memory": 512, "port": 8080}`,
			then:  http.StatusOK,
		},
		"failed release": {
			phase: devbox.PhaseFailed,
			body:  `{"devboxName": "my-devbox", "tag": "v1"}`,
			then:  http.StatusInternalServerError,
		},
		"invalid devbox name": {
			phase: devbox.PhaseSuccess,
			body:  `{"devboxName": "My_Devbox", "tag": "v1"}`,
			then:  http.StatusBadRequest,
		},
		"broken json": {
			phase: devbox.PhaseSuccess,
			body:  `{"devboxName": `,
			then:  http.StatusBadRequest,
		},
	} {
		t.Run(name, func(t *testing.T) {
			dyn := kubetest.NewDynamic()
			releasePhase(dyn, testcase.phase)
			kube := kubefake.NewSimpleClientset()

			c, resp := httptestutil.Post(
				echo.New(), "/api/releaseAndDeployDevbox", strings.NewReader(testcase.body),
				httptestutil.ContentType(echo.MIMEApplicationJSON),
			)
			c = auth.WithClients(c, kubeutil.Clients{Namespace: namespace, Kube: kube, Dynamic: dyn})

			err := handlers.ReleaseHandler(devboxFactory(nil))(c)
			if actual := codeOf(t, err); actual != testcase.then {
				t.Fatalf("status: actual = %d, expected = %d (%v)", actual, testcase.then, err)
			}
			if err != nil {
				return
			}

			actual := decode[apidevbox.Release](t, resp.Body.Bytes())
			expected := apidevbox.Release{
				Name:       "my-devbox-v1",
				Image:      "registry.example.com/ns-alice/my-devbox:v1",
				Deployment: "my-devbox",
				Service:    "my-devbox",
			}
			if actual != expected {
				t.Errorf("actual = %+v, expected = %+v", actual, expected)
			}
		})
	}
}

func multipartBody(t *testing.T, fields map[string]string, file []byte) (*bytes.Buffer, string) {
	t.Helper()
	buf := new(bytes.Buffer)
	w := multipart.NewWriter(buf)
	for k, v := range fields {
		if err := w.WriteField(k, v); err != nil {
			t.Fatal(err)
		}
	}
	if file != nil {
		fw, err := w.CreateFormFile("file", "app.tar.gz")
		if err != nil {
			t.Fatal(err)
		}
		fw.Write(file)
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
	return buf, w.FormDataContentType()
}

func TestUploadHandler(t *testing.T) {
	pod := &kubecore.Pod{
		ObjectMeta: metav1.ObjectMeta{
			Namespace: namespace, Name: "my-devbox-0",
			Labels: map[string]string{devbox.PodLabel: "my-devbox"},
		},
		Spec:   kubecore.PodSpec{Containers: []kubecore.Container{{Name: "devbox", Image: "devbox:latest"}}},
		Status: kubecore.PodStatus{Phase: kubecore.PodRunning},
	}

	t.Run("it extracts the file into the devbox", func(t *testing.T) {
		exec := &executor{}
		body, ctyp := multipartBody(t, map[string]string{"devboxName": "my-devbox", "path": "/home/devbox/project"}, []byte("archive"))

		c, resp := httptestutil.Post(echo.New(), "/api/uploadAndExtractFile", body, httptestutil.ContentType(ctyp))
		c = auth.WithClients(c, kubeutil.Clients{Namespace: namespace, Kube: kubefake.NewSimpleClientset(pod), Dynamic: kubetest.NewDynamic()})

		if err := handlers.UploadHandler(devboxFactory(exec))(c); err != nil {
			t.Fatal(err)
		}
		actual := decode[apidevbox.Upload](t, resp.Body.Bytes())
		expected := apidevbox.Upload{DevboxName: "my-devbox", Destination: "/home/devbox/project", Size: int64(len("archive"))}
		if actual != expected {
			t.Errorf("actual = %+v, expected = %+v", actual, expected)
		}
		if string(exec.stdin) != "archive" || strings.Join(exec.command, " ") != "tar -xzf - -C /home/devbox/project" {
			t.Errorf("exec: %q %q", exec.command, exec.stdin)
		}
	})

	for name, testcase := range map[string]struct {
		fields map[string]string
		file   []byte
		then   int
	}{
		"without file": {
			fields: map[string]string{"devboxName": "my-devbox", "path": "/home/devbox"},
			then:   http.StatusBadRequest,
		},
		"without path": {
			fields: map[string]string{"devboxName": "my-devbox"},
			file:   []byte("archive"),
			then:   http.StatusBadRequest,
		},
		"relative path": {
			fields: map[string]string{"devboxName": "my-devbox", "path": "project"},
			file:   []byte("archive"),
			then:   http.StatusBadRequest,
		},
		"unknown devbox": {
			fields: map[string]string{"devboxName": "ghost", "path": "/home/devbox"},
			file:   []byte("archive"),
			then:   http.StatusNotFound,
		},
	} {
		t.Run(name, func(t *testing.T) {
			exec := &executor{}
			body, ctyp := multipartBody(t, testcase.fields, testcase.file)
			c, _ := httptestutil.Post(echo.New(), "/api/uploadAndExtractFile", body, httptestutil.ContentType(ctyp))
			c = auth.WithClients(c, kubeutil.Clients{Namespace: namespace, Kube: kubefake.NewSimpleClientset(pod), Dynamic: kubetest.NewDynamic()})

			err := handlers.UploadHandler(devboxFactory(exec))(c)
			if actual := codeOf(t, err); actual != testcase.then {
				t.Errorf("status: actual = %d, expected = %d (%v)", actual, testcase.then, err)
			}
			if exec.command != nil {
				t.Errorf("unexpected exec: %q", exec.command)
			}
		})
	}
}
